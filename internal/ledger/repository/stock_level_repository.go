package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

type MySQLStockLevelRepository struct {
	db mysql.Querier
}

func NewMySQLStockLevelRepository(db mysql.Querier) *MySQLStockLevelRepository {
	return &MySQLStockLevelRepository{db: db}
}

const selectStockLevel = `
		SELECT product_id, total_purchased, total_sold, current_stock,
		       last_purchase_at, last_sale_at, updated_at
		FROM stock_levels
		WHERE product_id = ?`

func (r *MySQLStockLevelRepository) Find(ctx context.Context, productID string) (*domain.StockLevel, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectStockLevel, productID))
}

func (r *MySQLStockLevelRepository) FindForUpdate(ctx context.Context, productID string) (*domain.StockLevel, error) {
	return r.scan(r.db.QueryRowContext(ctx, selectStockLevel+"\n\t\tFOR UPDATE", productID))
}

func (r *MySQLStockLevelRepository) scan(row *sql.Row) (*domain.StockLevel, error) {
	var (
		l            domain.StockLevel
		lastPurchase sql.NullTime
		lastSale     sql.NullTime
	)
	err := row.Scan(
		&l.ProductID, &l.TotalPurchased, &l.TotalSold, &l.CurrentStock,
		&lastPurchase, &lastSale, &l.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning stock level: %w", err)
	}
	if lastPurchase.Valid {
		l.LastPurchaseAt = &lastPurchase.Time
	}
	if lastSale.Valid {
		l.LastSaleAt = &lastSale.Time
	}
	return &l, nil
}

// AddPurchased inserts the first stock level of a product or increments it.
// The upsert takes an exclusive lock on the row in both cases.
func (r *MySQLStockLevelRepository) AddPurchased(ctx context.Context, productID string, quantity int, at time.Time) error {
	query := `
		INSERT INTO stock_levels (product_id, total_purchased, total_sold, current_stock, last_purchase_at, updated_at)
		VALUES (?, ?, 0, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			total_purchased  = total_purchased + ?,
			current_stock    = current_stock + ?,
			last_purchase_at = ?,
			updated_at       = ?`

	_, err := r.db.ExecContext(ctx, query,
		productID, quantity, quantity, at, at,
		quantity, quantity, at, at,
	)
	if mysql.IsOutOfRange(err) {
		return apperrors.NewStockOverflowError(productID, quantity)
	}
	if err != nil {
		return fmt.Errorf("adding purchased stock: %w", err)
	}
	return nil
}

func (r *MySQLStockLevelRepository) AddSold(ctx context.Context, productID string, quantity int, at time.Time) error {
	query := `
		UPDATE stock_levels
		SET total_sold = total_sold + ?,
		    current_stock = current_stock - ?,
		    last_sale_at = ?,
		    updated_at = ?
		WHERE product_id = ? AND current_stock >= ?`

	result, err := r.db.ExecContext(ctx, query, quantity, quantity, at, at, productID, quantity)
	if err != nil {
		return fmt.Errorf("adding sold stock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("stock level %s not updated: missing row or stock below %d", productID, quantity)
	}
	return nil
}
