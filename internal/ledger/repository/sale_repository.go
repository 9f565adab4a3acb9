package repository

import (
	"context"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/mysql"
)

type MySQLSaleRepository struct {
	db mysql.Querier
}

func NewMySQLSaleRepository(db mysql.Querier) *MySQLSaleRepository {
	return &MySQLSaleRepository{db: db}
}

func (r *MySQLSaleRepository) Insert(ctx context.Context, s domain.SaleRecord) error {
	query := `
		INSERT INTO sales (id, product_id, quantity, unit_price, total_amount, cost_price, recorded_by, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.ProductID, s.Quantity, s.UnitPrice, s.TotalAmount, s.CostPrice, s.RecordedBy, s.Notes, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}
	return nil
}

func (r *MySQLSaleRepository) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM sales WHERE product_id = ?`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing sales: %w", err)
	}
	return total, nil
}
