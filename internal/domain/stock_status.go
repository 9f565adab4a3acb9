package domain

type StockStatus string

const (
	StockOutOfStock StockStatus = "out_of_stock"
	StockLow        StockStatus = "low_stock"
	StockIn         StockStatus = "in_stock"
)

// ClassifyStock is the single threshold rule for stock badges, filters and
// alerts. A reorder level equal to the current stock is still low.
func ClassifyStock(currentStock, reorderLevel int) StockStatus {
	switch {
	case currentStock <= 0:
		return StockOutOfStock
	case currentStock <= reorderLevel:
		return StockLow
	default:
		return StockIn
	}
}
