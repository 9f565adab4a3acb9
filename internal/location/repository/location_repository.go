package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/infrastructure/mysql"
)

type MySQLRepository struct {
	db mysql.Querier
}

func NewMySQLRepository(db mysql.Querier) *MySQLRepository {
	return &MySQLRepository{db: db}
}

const activeLocations = `
		SELECT sh.id, z.code, z.name, c.chamber_number, c.name, sh.shelf_number
		FROM shelves sh
		JOIN chambers c ON c.id = sh.chamber_id
		JOIN zones z ON z.id = c.zone_id
		WHERE sh.is_active = 1 AND c.is_active = 1 AND z.is_active = 1`

// ResolveShelf returns SHELF_NOT_FOUND when the shelf, its chamber or its
// zone is missing or inactive.
func (r *MySQLRepository) ResolveShelf(ctx context.Context, shelfID string) (*domain.Location, error) {
	loc, err := scanLocation(r.db.QueryRowContext(ctx, activeLocations+" AND sh.id = ?", shelfID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewShelfNotFoundError(shelfID)
	}
	if err != nil {
		return nil, fmt.Errorf("resolving shelf: %w", err)
	}
	return &loc, nil
}

func (r *MySQLRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	rows, err := r.db.QueryContext(ctx, activeLocations+`
		ORDER BY z.sort_order, z.code, c.chamber_number, sh.shelf_number`)
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}
	defer rows.Close()

	var locations []domain.Location
	for rows.Next() {
		loc, err := scanLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning location row: %w", err)
		}
		locations = append(locations, loc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating location rows: %w", err)
	}
	return locations, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanLocation(row scanner) (domain.Location, error) {
	var (
		loc         domain.Location
		chamberName sql.NullString
	)
	err := row.Scan(&loc.ShelfID, &loc.ZoneCode, &loc.ZoneName, &loc.ChamberNumber, &chamberName, &loc.ShelfNumber)
	if err != nil {
		return loc, err
	}
	if chamberName.Valid {
		loc.ChamberName = &chamberName.String
	}
	return loc, nil
}
