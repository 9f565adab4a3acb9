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

func (r *MySQLRepository) FindUser(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, email, name, role, is_active, created_at
		FROM users
		WHERE id = ?`

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}
