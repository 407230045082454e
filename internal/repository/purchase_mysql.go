package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"onbid-goods-api/internal/domain"
)

// mysqlErrDuplicateEntry is the server error number for a unique key violation.
const mysqlErrDuplicateEntry = 1062

// MySQLPurchaseRepository implements PurchaseRepository on MySQL. The unique
// index on history_no is what actually enforces the at-most-one-purchase
// invariant; concurrent inserts race to the constraint, not to a count query.
type MySQLPurchaseRepository struct {
	db *sql.DB
}

// NewMySQLPurchaseRepository creates the repository and bootstraps its table.
func NewMySQLPurchaseRepository(db *sql.DB) (*MySQLPurchaseRepository, error) {
	r := &MySQLPurchaseRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize purchases schema: %w", err)
	}
	return r, nil
}

func (r *MySQLPurchaseRepository) ensureSchema() error {
	const stmt = `CREATE TABLE IF NOT EXISTS purchases (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		history_no BIGINT NOT NULL,
		purchase_price BIGINT NOT NULL,
		purchase_status VARCHAR(20) NOT NULL DEFAULT 'COMPLETED',
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_purchases_history_no (history_no)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

	_, err := r.db.Exec(stmt)
	return err
}

// Insert stores one purchase and fills in the generated id. A duplicate
// history_no maps to ErrDuplicate.
func (r *MySQLPurchaseRepository) Insert(ctx context.Context, purchase *domain.Purchase) error {
	const stmt = `INSERT INTO purchases (history_no, purchase_price, purchase_status) VALUES (?, ?, ?)`

	res, err := r.db.ExecContext(ctx, stmt, purchase.HistoryNo, purchase.PurchasePrice, purchase.PurchaseStatus)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlErrDuplicateEntry {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to insert purchase for historyNo %d: %w", purchase.HistoryNo, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read purchase id: %w", err)
	}
	purchase.ID = id
	return nil
}

// FindByHistoryNo returns the purchases for one goods round, newest first.
func (r *MySQLPurchaseRepository) FindByHistoryNo(ctx context.Context, historyNo int64) ([]domain.Purchase, error) {
	const query = `SELECT id, history_no, purchase_price, purchase_status, created_at
		FROM purchases WHERE history_no = ? ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, historyNo)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases for historyNo %d: %w", historyNo, err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

// FindAll returns every purchase, newest first.
func (r *MySQLPurchaseRepository) FindAll(ctx context.Context) ([]domain.Purchase, error) {
	const query = `SELECT id, history_no, purchase_price, purchase_status, created_at
		FROM purchases ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	return collectPurchases(rows)
}

// CountByHistoryNo returns how many purchases exist for one goods round.
func (r *MySQLPurchaseRepository) CountByHistoryNo(ctx context.Context, historyNo int64) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM purchases WHERE history_no = ?`, historyNo).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count purchases for historyNo %d: %w", historyNo, err)
	}
	return count, nil
}

// DeleteAll wipes the ledger and returns the removed row count.
func (r *MySQLPurchaseRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM purchases`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete purchases: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted purchases: %w", err)
	}
	return deleted, nil
}

func collectPurchases(rows *sql.Rows) ([]domain.Purchase, error) {
	purchases := []domain.Purchase{}
	for rows.Next() {
		var p domain.Purchase
		if err := rows.Scan(&p.ID, &p.HistoryNo, &p.PurchasePrice, &p.PurchaseStatus, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan purchase row: %w", err)
		}
		purchases = append(purchases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate purchase rows: %w", err)
	}
	return purchases, nil
}
