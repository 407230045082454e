package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"onbid-goods-api/internal/domain"
)

// MySQLGoodsRepository implements GoodsRepository on MySQL. A goods record
// is stored as two rows sharing a history_no: goods_basic (descriptive
// attributes) and goods_price (price/statistics attributes).
type MySQLGoodsRepository struct {
	db *sql.DB
}

// NewMySQLGoodsRepository creates the repository and bootstraps its tables.
func NewMySQLGoodsRepository(db *sql.DB) (*MySQLGoodsRepository, error) {
	r := &MySQLGoodsRepository{db: db}
	if err := r.ensureSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize goods schema: %w", err)
	}
	return r, nil
}

func (r *MySQLGoodsRepository) ensureSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS goods_basic (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			history_no BIGINT NOT NULL,
			goods_name VARCHAR(500),
			status_name VARCHAR(100),
			sale_type_name VARCHAR(100),
			category_name VARCHAR(300),
			bid_start_date VARCHAR(14),
			bid_close_date VARCHAR(14),
			address VARCHAR(500),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_goods_basic_history_no (history_no)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS goods_price (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			history_no BIGINT NOT NULL,
			min_bid_price BIGINT,
			appraisal_price BIGINT,
			fee_rate VARCHAR(50),
			inquiry_count INT,
			favorite_count INT,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			UNIQUE KEY uq_goods_price_history_no (history_no),
			CONSTRAINT fk_goods_price_basic FOREIGN KEY (history_no)
				REFERENCES goods_basic (history_no)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	}

	for _, stmt := range stmts {
		if _, err := r.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Upsert writes both halves of a goods record inside one transaction,
// keyed by history_no with overwrite semantics on conflict. The caller is
// responsible for rejecting records without a historyNo.
func (r *MySQLGoodsRepository) Upsert(ctx context.Context, goods domain.Goods) error {
	if goods.HistoryNo == nil {
		return fmt.Errorf("goods without historyNo cannot be persisted")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin upsert transaction: %w", err)
	}
	defer tx.Rollback()

	const upsertBasic = `
		INSERT INTO goods_basic
			(history_no, goods_name, status_name, sale_type_name, category_name, bid_start_date, bid_close_date, address)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			goods_name = VALUES(goods_name),
			status_name = VALUES(status_name),
			sale_type_name = VALUES(sale_type_name),
			category_name = VALUES(category_name),
			bid_start_date = VALUES(bid_start_date),
			bid_close_date = VALUES(bid_close_date),
			address = VALUES(address),
			updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsertBasic,
		*goods.HistoryNo, goods.GoodsName, goods.StatusName, goods.SaleTypeName,
		goods.CategoryName, goods.BidStartDate, goods.BidCloseDate, goods.Address,
	); err != nil {
		return fmt.Errorf("failed to upsert goods_basic for historyNo %d: %w", *goods.HistoryNo, err)
	}

	const upsertPrice = `
		INSERT INTO goods_price
			(history_no, min_bid_price, appraisal_price, fee_rate, inquiry_count, favorite_count)
		VALUES (?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			min_bid_price = VALUES(min_bid_price),
			appraisal_price = VALUES(appraisal_price),
			fee_rate = VALUES(fee_rate),
			inquiry_count = VALUES(inquiry_count),
			favorite_count = VALUES(favorite_count),
			updated_at = CURRENT_TIMESTAMP`

	if _, err := tx.ExecContext(ctx, upsertPrice,
		*goods.HistoryNo, goods.MinBidPrice, goods.AppraisalPrice,
		nullableString(goods.FeeRate), goods.InquiryCount, goods.FavoriteCount,
	); err != nil {
		return fmt.Errorf("failed to upsert goods_price for historyNo %d: %w", *goods.HistoryNo, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit upsert for historyNo %d: %w", *goods.HistoryNo, err)
	}
	return nil
}

const goodsSelect = `
	SELECT
		gb.id, gb.history_no, gb.goods_name, gb.status_name, gb.sale_type_name,
		gb.category_name, gb.bid_start_date, gb.bid_close_date, gb.address,
		gp.min_bid_price, gp.appraisal_price, gp.fee_rate, gp.inquiry_count, gp.favorite_count,
		gb.created_at, gb.updated_at
	FROM goods_basic gb
	LEFT JOIN goods_price gp ON gp.history_no = gb.history_no`

// FindAll returns all persisted goods, newest-created first.
func (r *MySQLGoodsRepository) FindAll(ctx context.Context) ([]domain.GoodsRecord, error) {
	rows, err := r.db.QueryContext(ctx, goodsSelect+` ORDER BY gb.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query goods: %w", err)
	}
	defer rows.Close()

	records := []domain.GoodsRecord{}
	for rows.Next() {
		record, err := scanGoodsRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate goods rows: %w", err)
	}
	return records, nil
}

// FindByHistoryNo returns one record or ErrNotFound.
func (r *MySQLGoodsRepository) FindByHistoryNo(ctx context.Context, historyNo int64) (*domain.GoodsRecord, error) {
	row := r.db.QueryRowContext(ctx, goodsSelect+` WHERE gb.history_no = ?`, historyNo)

	record, err := scanGoodsRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record, nil
}

// DeleteAll wipes the snapshot. Purchases referencing goods go first, then
// price rows, then basic rows, so no dangling references survive the call.
func (r *MySQLGoodsRepository) DeleteAll(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM purchases`); err != nil {
		return 0, fmt.Errorf("failed to delete purchases: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM goods_price`); err != nil {
		return 0, fmt.Errorf("failed to delete goods_price: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM goods_basic`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete goods_basic: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted goods: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit delete: %w", err)
	}
	return deleted, nil
}

// Count returns the number of persisted goods.
func (r *MySQLGoodsRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goods_basic`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count goods: %w", err)
	}
	return count, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanGoodsRecord(s scanner) (*domain.GoodsRecord, error) {
	var (
		record         domain.GoodsRecord
		goodsName      sql.NullString
		statusName     sql.NullString
		saleTypeName   sql.NullString
		categoryName   sql.NullString
		bidStartDate   sql.NullString
		bidCloseDate   sql.NullString
		address        sql.NullString
		minBidPrice    sql.NullInt64
		appraisalPrice sql.NullInt64
		feeRate        sql.NullString
		inquiryCount   sql.NullInt64
		favoriteCount  sql.NullInt64
	)

	err := s.Scan(
		&record.ID, &record.HistoryNo, &goodsName, &statusName, &saleTypeName,
		&categoryName, &bidStartDate, &bidCloseDate, &address,
		&minBidPrice, &appraisalPrice, &feeRate, &inquiryCount, &favoriteCount,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan goods row: %w", err)
	}

	record.GoodsName = goodsName.String
	record.StatusName = statusName.String
	record.SaleTypeName = saleTypeName.String
	record.CategoryName = categoryName.String
	record.BidStartDate = bidStartDate.String
	record.BidCloseDate = bidCloseDate.String
	record.Address = address.String
	if minBidPrice.Valid {
		record.MinBidPrice = &minBidPrice.Int64
	}
	if appraisalPrice.Valid {
		record.AppraisalPrice = &appraisalPrice.Int64
	}
	if feeRate.Valid {
		record.FeeRate = &feeRate.String
	}
	if inquiryCount.Valid {
		v := int(inquiryCount.Int64)
		record.InquiryCount = &v
	}
	if favoriteCount.Valid {
		v := int(favoriteCount.Int64)
		record.FavoriteCount = &v
	}
	return &record, nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
