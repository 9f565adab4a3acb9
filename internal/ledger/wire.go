package ledger

import (
	"database/sql"

	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/ledger/controller"
	"stockroom/internal/ledger/repository"
	"stockroom/internal/ledger/service"
	"stockroom/internal/ledger/usecase"
)

func NewModule(
	tx service.TxRunner,
	users usecase.ActorReader,
	products usecase.ProductReader,
	shelves usecase.ShelfResolver,
	cfg *config.Config,
	m *metrics.LedgerMetrics,
	logger *zap.Logger,
) *controller.LedgerController {
	ledgerSvc := service.NewLedgerService(tx, logger, cfg.Ledger.TxTimeout)

	recorder := usecase.NewTransactionRecorder(
		users,
		products,
		shelves,
		ledgerSvc,
		m,
		logger,
		usecase.RetryPolicy{
			MaxAttempts: cfg.Ledger.MaxRetryAttempts,
			Backoff:     cfg.Ledger.RetryBackoff,
		},
	)

	return controller.NewLedgerController(recorder, logger)
}

// NewMySQLTxRunner binds the ledger repositories to transactions on db.
func NewMySQLTxRunner(db *sql.DB, logger *zap.Logger) service.TxRunner {
	return repository.NewTxRunner(db, logger)
}
