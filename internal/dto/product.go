package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type SearchProductsRequest struct {
	ProductIDs []string `json:"productIds" validate:"required,min=1,max=100,dive,uuid"`
}

type SearchProductsResponse struct {
	TraceID  string       `json:"traceId"`
	Products []ProductDTO `json:"products"`
	NotFound []string     `json:"notFound"`
}

type ProductDTO struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	CategoryID     *string         `json:"categoryId"`
	CostPrice      decimal.Decimal `json:"costPrice"`
	SellingPrice   decimal.Decimal `json:"sellingPrice"`
	ReorderLevel   int             `json:"reorderLevel"`
	ExpiryDate     *time.Time      `json:"expiryDate,omitempty"`
	IsActive       bool            `json:"isActive"`
	TotalPurchased int             `json:"totalPurchased"`
	TotalSold      int             `json:"totalSold"`
	CurrentStock   int             `json:"currentStock"`
	StockStatus    string          `json:"stockStatus"`
}

type ProductStockResponse struct {
	TraceID string     `json:"traceId"`
	Product ProductDTO `json:"product"`
}
