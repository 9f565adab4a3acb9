package service

import (
	"context"
	"time"

	"stockroom/internal/domain"
)

// StockLevelRepository is the only write path to stock levels. Every method
// runs inside the unit of work handed out by a TxRunner.
type StockLevelRepository interface {
	// Find returns nil, nil when the product has no stock level yet.
	Find(ctx context.Context, productID string) (*domain.StockLevel, error)
	// FindForUpdate locks the row until the unit of work ends.
	FindForUpdate(ctx context.Context, productID string) (*domain.StockLevel, error)
	// AddPurchased creates the row on first purchase or increments it, taking
	// the row lock either way.
	AddPurchased(ctx context.Context, productID string, quantity int, at time.Time) error
	// AddSold requires a row previously locked with FindForUpdate.
	AddSold(ctx context.Context, productID string, quantity int, at time.Time) error
}

type PurchaseRepository interface {
	Insert(ctx context.Context, record domain.PurchaseRecord) error
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
}

type SaleRepository interface {
	Insert(ctx context.Context, record domain.SaleRecord) error
	SumQuantityByProduct(ctx context.Context, productID string) (int, error)
}

// Repositories are bound to a single unit of work.
type Repositories struct {
	StockLevels StockLevelRepository
	Purchases   PurchaseRepository
	Sales       SaleRepository
}

// TxRunner executes fn atomically. A nil return commits; any error rolls
// back every write made through repos.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
