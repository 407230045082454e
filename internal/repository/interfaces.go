package repository

import (
	"context"
	"errors"

	"onbid-goods-api/internal/domain"
)

// Sentinel errors shared by all store implementations.
var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint. For purchases this is the canonical duplicate-purchase
	// signal; the pre-insert count check is only a fast path.
	ErrDuplicate = errors.New("duplicate record")
)

// GoodsRepository defines access to the persisted goods snapshot.
type GoodsRepository interface {
	// Upsert writes the basic and price rows for one goods record in a
	// single transaction, inserting or overwriting by historyNo.
	Upsert(ctx context.Context, goods domain.Goods) error

	// FindAll returns all snapshot rows joined with their price rows,
	// newest-created first.
	FindAll(ctx context.Context) ([]domain.GoodsRecord, error)

	// FindByHistoryNo returns one record or ErrNotFound.
	FindByHistoryNo(ctx context.Context, historyNo int64) (*domain.GoodsRecord, error)

	// DeleteAll removes purchases, price rows and basic rows in dependency
	// order inside one transaction and returns the basic-row count.
	DeleteAll(ctx context.Context) (int64, error)

	// Count returns the number of basic rows.
	Count(ctx context.Context) (int64, error)
}

// PurchaseRepository defines access to the purchase ledger rows.
type PurchaseRepository interface {
	// Insert stores a purchase and fills in its generated id. A uniqueness
	// violation on historyNo is reported as ErrDuplicate.
	Insert(ctx context.Context, purchase *domain.Purchase) error

	FindByHistoryNo(ctx context.Context, historyNo int64) ([]domain.Purchase, error)
	FindAll(ctx context.Context) ([]domain.Purchase, error)
	CountByHistoryNo(ctx context.Context, historyNo int64) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
