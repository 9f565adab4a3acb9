package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "stockroom/internal/errors"
)

func TestStockLevel_ApplyPurchase_NewLevel(t *testing.T) {
	now := time.Now()
	level := NewStockLevel("p-1")

	require.NoError(t, level.ApplyPurchase(50, now))

	assert.Equal(t, 50, level.TotalPurchased)
	assert.Equal(t, 0, level.TotalSold)
	assert.Equal(t, 50, level.CurrentStock)
	require.NotNil(t, level.LastPurchaseAt)
	assert.Equal(t, now, *level.LastPurchaseAt)
	assert.Nil(t, level.LastSaleAt)
	assert.NoError(t, level.Validate())
}

func TestStockLevel_ApplySale(t *testing.T) {
	level := NewStockLevel("p-1")
	require.NoError(t, level.ApplyPurchase(50, time.Now()))

	err := level.ApplySale(12, time.Now())

	require.NoError(t, err)
	assert.Equal(t, 38, level.CurrentStock)
	assert.Equal(t, 12, level.TotalSold)
	assert.NotNil(t, level.LastSaleAt)
	assert.NoError(t, level.Validate())
}

func TestStockLevel_ApplySale_Insufficient(t *testing.T) {
	level := NewStockLevel("p-1")
	require.NoError(t, level.ApplyPurchase(5, time.Now()))
	before := *level

	err := level.ApplySale(6, time.Now())

	ise, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, 5, ise.Available)
	assert.Equal(t, 6, ise.Requested)
	assert.Equal(t, before, *level)
}

func TestStockLevel_ApplySale_ExactStock(t *testing.T) {
	level := NewStockLevel("p-1")
	require.NoError(t, level.ApplyPurchase(7, time.Now()))

	require.NoError(t, level.ApplySale(7, time.Now()))
	assert.Equal(t, 0, level.CurrentStock)
}

func TestStockLevel_ApplyPurchase_Overflow(t *testing.T) {
	level := NewStockLevel("p-1")
	require.NoError(t, level.ApplyPurchase(MaxQuantity, time.Now()))
	before := *level

	err := level.ApplyPurchase(1, time.Now())

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidQuantity, ve.Code)
	assert.Equal(t, before, *level)
	assert.NoError(t, level.Validate())
}

func TestStockLevel_Validate(t *testing.T) {
	assert.Error(t, (&StockLevel{ProductID: "p", TotalPurchased: 5, TotalSold: 1, CurrentStock: 3}).Validate())
	assert.Error(t, (&StockLevel{ProductID: "p", TotalPurchased: 1, TotalSold: 2, CurrentStock: -1}).Validate())
	assert.NoError(t, (&StockLevel{ProductID: "p", TotalPurchased: 5, TotalSold: 2, CurrentStock: 3}).Validate())
}

func TestStockLevel_Clone(t *testing.T) {
	level := NewStockLevel("p-1")
	require.NoError(t, level.ApplyPurchase(10, time.Now()))

	clone := level.Clone()
	require.NoError(t, clone.ApplyPurchase(5, time.Now()))

	assert.Equal(t, 10, level.CurrentStock)
	assert.Equal(t, 15, clone.CurrentStock)
}
