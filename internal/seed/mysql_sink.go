package seed

import (
	"context"

	"stockroom/internal/domain"
	mysqlinfra "stockroom/internal/infrastructure/mysql"
)

// MySQLSink inserts reference rows; a duplicate key means the row was seeded
// by an earlier run and is left as it is.
type MySQLSink struct {
	db mysqlinfra.Querier
}

func NewMySQLSink(db mysqlinfra.Querier) *MySQLSink {
	return &MySQLSink{db: db}
}

func (s *MySQLSink) SaveUser(ctx context.Context, u domain.User) error {
	return s.insert(ctx,
		`INSERT INTO users (id, email, name, role, is_active) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.Name, u.Role, u.IsActive)
}

func (s *MySQLSink) SaveCategory(ctx context.Context, c domain.Category) error {
	return s.insert(ctx,
		`INSERT INTO categories (id, name, description, is_active) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.IsActive)
}

func (s *MySQLSink) SaveZone(ctx context.Context, z domain.Zone) error {
	return s.insert(ctx,
		`INSERT INTO zones (id, code, name, sort_order, is_active) VALUES (?, ?, ?, ?, ?)`,
		z.ID, z.Code, z.Name, z.SortOrder, z.IsActive)
}

func (s *MySQLSink) SaveChamber(ctx context.Context, c domain.Chamber) error {
	return s.insert(ctx,
		`INSERT INTO chambers (id, zone_id, chamber_number, name, is_active) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.ZoneID, c.Number, c.Name, c.IsActive)
}

func (s *MySQLSink) SaveShelf(ctx context.Context, sh domain.Shelf) error {
	return s.insert(ctx,
		`INSERT INTO shelves (id, chamber_id, shelf_number, is_active) VALUES (?, ?, ?, ?)`,
		sh.ID, sh.ChamberID, sh.Number, sh.IsActive)
}

func (s *MySQLSink) SaveProduct(ctx context.Context, p domain.Product) error {
	return s.insert(ctx,
		`INSERT INTO products (id, code, name, category_id, cost_price, selling_price, reorder_level, expiry_date, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Code, p.Name, p.CategoryID, p.CostPrice, p.SellingPrice, p.ReorderLevel, p.ExpiryDate, p.IsActive)
}

func (s *MySQLSink) insert(ctx context.Context, query string, args ...any) error {
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		if mysqlinfra.IsDuplicateEntry(err) {
			return nil
		}
		return err
	}
	return nil
}
