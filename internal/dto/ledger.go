package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePurchaseRequest struct {
	ProductID string           `json:"productId" validate:"required,uuid"`
	ShelfID   string           `json:"shelfId" validate:"required,uuid"`
	Quantity  int              `json:"quantity"`
	UnitCost  *decimal.Decimal `json:"unitCost" validate:"required"`
	Notes     *string          `json:"notes"`
}

type CreateSaleRequest struct {
	ProductID string           `json:"productId" validate:"required,uuid"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice" validate:"required"`
	Notes     *string          `json:"notes"`
}

// PurchaseInput is a purchase as received by the recorder, before any check.
type PurchaseInput struct {
	ProductID string
	ShelfID   string
	Quantity  int
	UnitCost  decimal.Decimal
	Notes     *string
}

type SaleInput struct {
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Notes     *string
}

type PurchaseDTO struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	ShelfID      string          `json:"shelfId"`
	LocationCode string          `json:"locationCode,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitCost     decimal.Decimal `json:"unitCost"`
	TotalCost    decimal.Decimal `json:"totalCost"`
	RecordedBy   string          `json:"recordedBy"`
	Notes        *string         `json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type SaleDTO struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"productId"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	CostPrice   decimal.Decimal `json:"costPrice"`
	RecordedBy  string          `json:"recordedBy"`
	Notes       *string         `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type PurchaseResponse struct {
	TraceID            string      `json:"traceId"`
	Purchase           PurchaseDTO `json:"purchase"`
	NewStockLevel      int         `json:"newStockLevel"`
	PreviousStockLevel int         `json:"previousStockLevel"`
}

type SaleResponse struct {
	TraceID            string  `json:"traceId"`
	Sale               SaleDTO `json:"sale"`
	NewStockLevel      int     `json:"newStockLevel"`
	PreviousStockLevel int     `json:"previousStockLevel"`
}

type ReconciliationResponse struct {
	TraceID           string `json:"traceId"`
	ProductID         string `json:"productId"`
	TotalPurchased    int    `json:"totalPurchased"`
	TotalSold         int    `json:"totalSold"`
	CurrentStock      int    `json:"currentStock"`
	PurchasedInLedger int    `json:"purchasedInLedger"`
	SoldInLedger      int    `json:"soldInLedger"`
	Balanced          bool   `json:"balanced"`
}
