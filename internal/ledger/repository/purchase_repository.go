package repository

import (
	"context"
	"fmt"

	"stockroom/internal/domain"
	"stockroom/internal/infrastructure/mysql"
)

// MySQLPurchaseRepository appends purchase rows. There is no update or delete;
// the table triggers reject both.
type MySQLPurchaseRepository struct {
	db mysql.Querier
}

func NewMySQLPurchaseRepository(db mysql.Querier) *MySQLPurchaseRepository {
	return &MySQLPurchaseRepository{db: db}
}

func (r *MySQLPurchaseRepository) Insert(ctx context.Context, p domain.PurchaseRecord) error {
	query := `
		INSERT INTO purchases (id, product_id, shelf_id, quantity, unit_cost, total_cost, recorded_by, notes, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.ProductID, p.ShelfID, p.Quantity, p.UnitCost, p.TotalCost, p.RecordedBy, p.Notes, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting purchase: %w", err)
	}
	return nil
}

func (r *MySQLPurchaseRepository) SumQuantityByProduct(ctx context.Context, productID string) (int, error) {
	var total int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM purchases WHERE product_id = ?`, productID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing purchases: %w", err)
	}
	return total, nil
}
