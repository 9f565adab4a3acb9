package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseRecord is an immutable stock-in fact.
type PurchaseRecord struct {
	ID         string
	ProductID  string
	ShelfID    string
	Quantity   int
	UnitCost   decimal.Decimal
	TotalCost  decimal.Decimal
	RecordedBy string
	Notes      *string
	CreatedAt  time.Time
}

// SaleRecord is an immutable stock-out fact. CostPrice is the product cost
// price when the sale was recorded.
type SaleRecord struct {
	ID          string
	ProductID   string
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalAmount decimal.Decimal
	CostPrice   decimal.Decimal
	RecordedBy  string
	Notes       *string
	CreatedAt   time.Time
}

// MoneyScale is the number of decimal places of the money columns.
const MoneyScale = 2

// MaxMoney is the largest amount a DECIMAL(12,2) money column holds.
var MaxMoney = decimal.New(999999999999, -MoneyScale)

// MoneyProblem returns why amount cannot be stored as money, or "" when it
// can. Amounts are never rounded on the way in.
func MoneyProblem(amount decimal.Decimal) string {
	switch {
	case amount.IsNegative():
		return "must be greater than or equal to 0"
	case !amount.Equal(amount.Truncate(MoneyScale)):
		return "must have at most 2 decimal places"
	case amount.GreaterThan(MaxMoney):
		return "must be at most " + MaxMoney.StringFixed(MoneyScale)
	}
	return ""
}

// LineTotal is quantity × unit amount. For a unit amount that passes
// MoneyProblem the product is exact at cent scale.
func LineTotal(quantity int, unit decimal.Decimal) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(MoneyScale)
}
