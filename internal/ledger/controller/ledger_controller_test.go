package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/ledger/service"
	"stockroom/internal/ledger/usecase"
)

const testProductID = "0b8f6d3e-3a4c-4d7e-9a55-6f1f8f0c1a01"

type mockRecorder struct {
	RecordPurchaseFunc func(ctx context.Context, in dto.PurchaseInput) (*usecase.PurchaseOutcome, error)
	RecordSaleFunc     func(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error)
	ReconcileFunc      func(ctx context.Context, productID string) (*service.Reconciliation, error)
}

func (m *mockRecorder) RecordPurchase(ctx context.Context, in dto.PurchaseInput) (*usecase.PurchaseOutcome, error) {
	return m.RecordPurchaseFunc(ctx, in)
}

func (m *mockRecorder) RecordSale(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error) {
	return m.RecordSaleFunc(ctx, in)
}

func (m *mockRecorder) Reconcile(ctx context.Context, productID string) (*service.Reconciliation, error) {
	return m.ReconcileFunc(ctx, productID)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestCreatePurchase_Created(t *testing.T) {
	var got dto.PurchaseInput
	recorder := &mockRecorder{RecordPurchaseFunc: func(ctx context.Context, in dto.PurchaseInput) (*usecase.PurchaseOutcome, error) {
		got = in
		return &usecase.PurchaseOutcome{
			PurchaseResult: &service.PurchaseResult{
				Purchase: domain.PurchaseRecord{
					ID: "pr-1", ProductID: in.ProductID, ShelfID: in.ShelfID, Quantity: in.Quantity,
					UnitCost: in.UnitCost, TotalCost: domain.LineTotal(in.Quantity, in.UnitCost), CreatedAt: time.Now().UTC(),
				},
				PreviousStock: 0,
				NewStock:      50,
			},
			Location: domain.Location{ZoneCode: "R", ChamberNumber: 1, ShelfNumber: 2},
		}, nil
	}}
	c := NewLedgerController(recorder, zap.NewNop())

	body := `{"productId":"` + testProductID + `","shelfId":"5d2c1b9a-1e2f-4a3b-8c4d-9e0f1a2b3c4d","quantity":50,"unitCost":"1.20"}`
	rec := httptest.NewRecorder()
	c.CreatePurchase(rec, httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, decimal.RequireFromString("1.20").Equal(got.UnitCost))

	resp := decodeBody(t, rec)
	assert.Equal(t, float64(50), resp["newStockLevel"])
	assert.Equal(t, float64(0), resp["previousStockLevel"])
	assert.NotEmpty(t, resp["traceId"])
	purchase := resp["purchase"].(map[string]any)
	assert.Equal(t, "R-C01-S02", purchase["locationCode"])
	assert.Equal(t, "60", purchase["totalCost"])
}

func TestCreatePurchase_InvalidBody(t *testing.T) {
	c := NewLedgerController(&mockRecorder{}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.CreatePurchase(rec, httptest.NewRequest(http.MethodPost, "/purchases", strings.NewReader(`{"productId":"nope","quantity":1}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, apperrors.CodeValidation, resp["code"])
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	recorder := &mockRecorder{RecordSaleFunc: func(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error) {
		return nil, apperrors.NewInsufficientStockError(in.ProductID, in.Quantity, 5)
	}}
	c := NewLedgerController(recorder, zap.NewNop())

	body := `{"productId":"` + testProductID + `","quantity":6,"unitPrice":1.80}`
	rec := httptest.NewRecorder()
	c.CreateSale(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))

	require.Equal(t, http.StatusConflict, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, apperrors.CodeInsufficientStock, resp["code"])
	details := resp["details"].(map[string]any)
	assert.Equal(t, float64(5), details["available"])
	assert.Equal(t, float64(6), details["requested"])
}

func TestCreateSale_Created(t *testing.T) {
	recorder := &mockRecorder{RecordSaleFunc: func(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error) {
		return &service.SaleResult{
			Sale: domain.SaleRecord{
				ID: "s-1", ProductID: in.ProductID, Quantity: in.Quantity, UnitPrice: in.UnitPrice,
				TotalAmount: domain.LineTotal(in.Quantity, in.UnitPrice),
			},
			PreviousStock: 50,
			NewStock:      38,
		}, nil
	}}
	c := NewLedgerController(recorder, zap.NewNop())

	body := `{"productId":"` + testProductID + `","quantity":12,"unitPrice":"1.80","notes":"walk-in"}`
	rec := httptest.NewRecorder()
	c.CreateSale(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, float64(38), resp["newStockLevel"])
	sale := resp["sale"].(map[string]any)
	assert.Equal(t, "21.6", sale["totalAmount"])
	assert.Equal(t, "walk-in", sale["notes"])
}

func TestCreateSale_MissingPrice(t *testing.T) {
	c := NewLedgerController(&mockRecorder{}, zap.NewNop())

	body := `{"productId":"` + testProductID + `","quantity":1}`
	rec := httptest.NewRecorder()
	c.CreateSale(rec, httptest.NewRequest(http.MethodPost, "/sales", strings.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReconcile_Route(t *testing.T) {
	recorder := &mockRecorder{ReconcileFunc: func(ctx context.Context, productID string) (*service.Reconciliation, error) {
		return &service.Reconciliation{
			ProductID: productID, TotalPurchased: 10, TotalSold: 4, CurrentStock: 6,
			PurchasedInLedger: 10, SoldInLedger: 4,
		}, nil
	}}
	c := NewLedgerController(recorder, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/stock/{productId}/reconciliation", c.Reconcile)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stock/"+testProductID+"/reconciliation", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["balanced"])
	assert.Equal(t, float64(6), resp["currentStock"])
}

func TestReconcile_InvalidID(t *testing.T) {
	c := NewLedgerController(&mockRecorder{}, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/stock/{productId}/reconciliation", c.Reconcile)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stock/abc/reconciliation", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
