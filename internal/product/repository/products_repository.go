package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

// MySQLRepository reads the catalog. It never writes stock_levels; stock is
// joined in read-only for the product views.
type MySQLRepository struct {
	db mysql.Querier
}

func NewMySQLRepository(db mysql.Querier) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const productColumns = `
		p.id, p.code, p.name, p.category_id, p.cost_price, p.selling_price,
		p.reorder_level, p.expiry_date, p.is_active, p.created_at, p.updated_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanProduct(row scanner, extra ...any) (domain.Product, error) {
	var (
		p        domain.Product
		category sql.NullString
		expiry   sql.NullTime
	)
	dest := append([]any{
		&p.ID, &p.Code, &p.Name, &category, &p.CostPrice, &p.SellingPrice,
		&p.ReorderLevel, &expiry, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	}, extra...)
	if err := row.Scan(dest...); err != nil {
		return p, err
	}
	if category.Valid {
		p.CategoryID = &category.String
	}
	if expiry.Valid {
		p.ExpiryDate = &expiry.Time
	}
	return p, nil
}

func (r *MySQLRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	query := `SELECT` + productColumns + `
		FROM products p
		WHERE p.id = ?`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProductNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying product: %w", err)
	}
	return &p, nil
}

const stockColumns = `,
		COALESCE(s.total_purchased, 0), COALESCE(s.total_sold, 0), COALESCE(s.current_stock, 0)`

func (r *MySQLRepository) FindStock(ctx context.Context, id string) (*domain.ProductStock, error) {
	query := `SELECT` + productColumns + stockColumns + `
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		WHERE p.id = ?`

	var ps domain.ProductStock
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id), &ps.TotalPurchased, &ps.TotalSold, &ps.CurrentStock)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewProductNotFoundError(id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying product stock: %w", err)
	}
	ps.Product = p
	return &ps, nil
}

// FindStockByIDs returns the products among ids that exist, ordered by name.
func (r *MySQLRepository) FindStockByIDs(ctx context.Context, ids []string) ([]domain.ProductStock, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf(`SELECT`+productColumns+stockColumns+`
		FROM products p
		LEFT JOIN stock_levels s ON s.product_id = p.id
		WHERE p.id IN (%s)
		ORDER BY p.name, p.id`,
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []domain.ProductStock
	for rows.Next() {
		var ps domain.ProductStock
		p, err := scanProduct(rows, &ps.TotalPurchased, &ps.TotalSold, &ps.CurrentStock)
		if err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		ps.Product = p
		products = append(products, ps)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}

	return products, nil
}
