package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry. Identity is immutable; products are deactivated,
// never deleted, because purchase and sale history references them.
type Product struct {
	ID           string
	Code         string
	Name         string
	CategoryID   *string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	ReorderLevel int
	ExpiryDate   *time.Time
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProductStock is the read model joining a product with its stock level.
// CurrentStock is zero when the product was never purchased.
type ProductStock struct {
	Product
	TotalPurchased int
	TotalSold      int
	CurrentStock   int
}

func (p ProductStock) Status() StockStatus {
	return ClassifyStock(p.CurrentStock, p.ReorderLevel)
}
