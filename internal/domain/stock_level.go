package domain

import (
	"fmt"
	"math"
	"time"

	apperrors "stockroom/internal/errors"
)

// StockLevel is the running balance of one product. Only the stock ledger
// mutates it, through ApplyPurchase and ApplySale.
type StockLevel struct {
	ProductID      string
	TotalPurchased int
	TotalSold      int
	CurrentStock   int
	LastPurchaseAt *time.Time
	LastSaleAt     *time.Time
	UpdatedAt      time.Time
}

// MaxQuantity is the largest count the stock columns hold (signed 32-bit).
// It bounds a single quantity as well as the running totals.
const MaxQuantity = math.MaxInt32

func NewStockLevel(productID string) *StockLevel {
	return &StockLevel{ProductID: productID}
}

// ApplyPurchase increments the balance, or leaves it untouched when the
// totals would pass MaxQuantity.
func (s *StockLevel) ApplyPurchase(quantity int, at time.Time) error {
	if quantity > MaxQuantity-s.TotalPurchased {
		return apperrors.NewStockOverflowError(s.ProductID, quantity)
	}
	s.TotalPurchased += quantity
	s.CurrentStock += quantity
	s.LastPurchaseAt = &at
	s.UpdatedAt = at
	return nil
}

// ApplySale decrements the balance, or leaves it untouched and returns an
// InsufficientStockError when fewer than quantity units are available.
func (s *StockLevel) ApplySale(quantity int, at time.Time) error {
	if s.CurrentStock < quantity {
		return apperrors.NewInsufficientStockError(s.ProductID, quantity, s.CurrentStock)
	}
	s.TotalSold += quantity
	s.CurrentStock -= quantity
	s.LastSaleAt = &at
	s.UpdatedAt = at
	return nil
}

func (s *StockLevel) Validate() error {
	if s.CurrentStock != s.TotalPurchased-s.TotalSold {
		return fmt.Errorf("stock level %s: current %d != purchased %d - sold %d",
			s.ProductID, s.CurrentStock, s.TotalPurchased, s.TotalSold)
	}
	if s.CurrentStock < 0 {
		return fmt.Errorf("stock level %s: negative stock %d", s.ProductID, s.CurrentStock)
	}
	return nil
}

func (s *StockLevel) Clone() *StockLevel {
	c := *s
	return &c
}
