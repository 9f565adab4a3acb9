package service

import (
	"github.com/shopspring/decimal"

	"stockroom/internal/domain"
)

type PurchaseCommand struct {
	ProductID  string
	ShelfID    string
	Quantity   int
	UnitCost   decimal.Decimal
	RecordedBy string
	Notes      *string
}

type SaleCommand struct {
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	CostPrice  decimal.Decimal
	RecordedBy string
	Notes      *string
}

type PurchaseResult struct {
	Purchase      domain.PurchaseRecord
	PreviousStock int
	NewStock      int
	Level         domain.StockLevel
}

type SaleResult struct {
	Sale          domain.SaleRecord
	PreviousStock int
	NewStock      int
	Level         domain.StockLevel
}

// Reconciliation compares a stock level with the sums of its ledger rows.
type Reconciliation struct {
	ProductID         string
	TotalPurchased    int
	TotalSold         int
	CurrentStock      int
	PurchasedInLedger int
	SoldInLedger      int
}

func (r Reconciliation) Balanced() bool {
	return r.TotalPurchased == r.PurchasedInLedger &&
		r.TotalSold == r.SoldInLedger &&
		r.CurrentStock == r.TotalPurchased-r.TotalSold &&
		r.CurrentStock >= 0
}
