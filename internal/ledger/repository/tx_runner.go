package repository

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	apperrors "stockroom/internal/errors"
	mysqlinfra "stockroom/internal/infrastructure/mysql"
	"stockroom/internal/ledger/service"
)

type TransactionManager interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

// TxRunner binds the ledger repositories to one REPEATABLE READ transaction.
type TxRunner struct {
	db     TransactionManager
	logger *zap.Logger
}

func NewTxRunner(db TransactionManager, logger *zap.Logger) *TxRunner {
	return &TxRunner{db: db, logger: logger}
}

func (r *TxRunner) RunInTx(ctx context.Context, fn func(ctx context.Context, repos service.Repositories) error) error {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead})
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return apperrors.NewTransientError("storage unavailable", fmt.Errorf("beginning transaction: %w", err))
	}
	// No-op once committed.
	defer tx.Rollback()

	repos := service.Repositories{
		StockLevels: NewMySQLStockLevelRepository(tx),
		Purchases:   NewMySQLPurchaseRepository(tx),
		Sales:       NewMySQLSaleRepository(tx),
	}
	if err := fn(ctx, repos); err != nil {
		if mysqlinfra.IsUnavailable(err) {
			return apperrors.NewTransientError("storage unavailable", err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return apperrors.NewTransientError("commit failed", fmt.Errorf("committing transaction: %w", err))
	}
	return nil
}
