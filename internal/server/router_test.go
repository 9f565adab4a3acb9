package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"stockroom/internal/config"
	"stockroom/internal/infrastructure/memory"
	"stockroom/internal/infrastructure/metrics"
	"stockroom/internal/ledger"
	"stockroom/internal/ledger/service"
	"stockroom/internal/location"
	"stockroom/internal/product"
	"stockroom/internal/seed"
)

var adminID = seed.UserID("admin@example.com")

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	store := memory.New()

	fixture := &seed.Fixture{
		Users:      []seed.UserFixture{{Email: "admin@example.com", Name: "Admin User", Role: "admin"}},
		Categories: []seed.CategoryFixture{{Name: "Fragrances"}},
		Zones: []seed.ZoneFixture{
			{Code: "R", Name: "Right Section", SortOrder: 1, Chambers: []string{"Top Chamber"}, ShelvesPerChamber: 2},
		},
		Products: []seed.ProductFixture{
			{Code: "FRG-001", Name: "Eau de Parfum 50ml", Category: "Fragrances", CostPrice: "25.00", SellingPrice: "40.00", ReorderLevel: 8, OpeningStock: 8, OpeningShelf: "R-C01-S01"},
		},
	}
	stocker := service.NewLedgerService(store, logger, 2*time.Second)
	_, err := seed.NewSeeder(store, stocker, logger).Apply(context.Background(), fixture)
	require.NoError(t, err)

	cfg := &config.Config{
		Ledger:  config.LedgerConfig{TxTimeout: 2 * time.Second, MaxRetryAttempts: 3, RetryBackoff: time.Millisecond},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	reg := prometheus.NewRegistry()

	return NewRouter(Controllers{
		Ledger:    ledger.NewModule(store, store, store, store, cfg, metrics.NewLedgerMetrics(reg), logger),
		Products:  product.NewModule(store, logger),
		Locations: location.NewModule(store, logger),
	}, cfg.Metrics, reg, logger)
}

func do(t *testing.T, h http.Handler, method, path, actor string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if actor != "" {
		req.Header.Set(ActorHeader, actor)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var decoded map[string]any
	if rec.Header().Get("Content-Type") == "application/json" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded))
	}
	return rec, decoded
}

func TestRouter_PurchaseThenSale(t *testing.T) {
	h := newTestRouter(t)
	productID := seed.ProductID("FRG-001")

	rec, body := do(t, h, http.MethodPost, "/purchases", adminID, map[string]any{
		"productId": productID,
		"shelfId":   seed.ShelfID("R-C01-S02"),
		"quantity":  12,
		"unitCost":  "24.50",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(8), body["previousStockLevel"])
	assert.Equal(t, float64(20), body["newStockLevel"])
	purchase := body["purchase"].(map[string]any)
	assert.Equal(t, "R-C01-S02", purchase["locationCode"])
	assert.Equal(t, "294", purchase["totalCost"])

	rec, body = do(t, h, http.MethodPost, "/sales", adminID, map[string]any{
		"productId": productID,
		"quantity":  15,
		"unitPrice": "40.00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, float64(20), body["previousStockLevel"])
	assert.Equal(t, float64(5), body["newStockLevel"])

	rec, body = do(t, h, http.MethodGet, "/products/"+productID+"/stock", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	stock := body["product"].(map[string]any)
	assert.Equal(t, float64(5), stock["currentStock"])
	assert.Equal(t, "low_stock", stock["stockStatus"])

	rec, body = do(t, h, http.MethodGet, "/stock/"+productID+"/reconciliation", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["balanced"])
	assert.Equal(t, float64(20), body["purchasedInLedger"])
	assert.Equal(t, float64(15), body["soldInLedger"])
}

func TestRouter_InsufficientStock(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodPost, "/sales", adminID, map[string]any{
		"productId": seed.ProductID("FRG-001"),
		"quantity":  10,
		"unitPrice": "40.00",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	details := body["details"].(map[string]any)
	assert.Equal(t, float64(8), details["available"])
	assert.Equal(t, float64(10), details["requested"])
}

func TestRouter_WritesRequireActor(t *testing.T) {
	h := newTestRouter(t)
	sale := map[string]any{"productId": seed.ProductID("FRG-001"), "quantity": 1, "unitPrice": "40.00"}

	rec, body := do(t, h, http.MethodPost, "/sales", "", sale)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	rec, _ = do(t, h, http.MethodPost, "/sales", "not-a-uuid", sale)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = do(t, h, http.MethodGet, "/locations", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_UnknownActorIsUnauthorized(t *testing.T) {
	h := newTestRouter(t)
	productID := seed.ProductID("FRG-001")

	rec, body := do(t, h, http.MethodPost, "/sales", seed.UserID("nobody@example.com"), map[string]any{
		"productId": productID,
		"quantity":  1,
		"unitPrice": "40.00",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", body["code"])

	rec, body = do(t, h, http.MethodGet, "/products/"+productID+"/stock", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(8), body["product"].(map[string]any)["currentStock"])
}

func TestRouter_AmountsOutsideColumnRange(t *testing.T) {
	h := newTestRouter(t)
	productID := seed.ProductID("FRG-001")
	shelfID := seed.ShelfID("R-C01-S01")

	rec, body := do(t, h, http.MethodPost, "/purchases", adminID, map[string]any{
		"productId": productID, "shelfId": shelfID, "quantity": 3, "unitCost": "0.333",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_COST", body["code"])

	rec, body = do(t, h, http.MethodPost, "/sales", adminID, map[string]any{
		"productId": productID, "quantity": 1, "unitPrice": "10000000000.00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_PRICE", body["code"])

	rec, body = do(t, h, http.MethodPost, "/purchases", adminID, map[string]any{
		"productId": productID, "shelfId": shelfID, "quantity": 2147483648, "unitCost": "1.00",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_QUANTITY", body["code"])
}

func TestRouter_Locations(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/locations", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	locations := body["locations"].([]any)
	require.Len(t, locations, 2)
	assert.Equal(t, "R-C01-S01", locations[0].(map[string]any)["code"])
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	h := newTestRouter(t)

	rec, body := do(t, h, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	do(t, h, http.MethodPost, "/sales", adminID, map[string]any{
		"productId": seed.ProductID("FRG-001"), "quantity": 2, "unitPrice": "40.00",
	})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ledger_sales_total 1")
	assert.Contains(t, rec.Body.String(), "ledger_units_sold_total 2")
}

func TestRouter_MetricsDisabled(t *testing.T) {
	h := NewRouter(Controllers{}, config.MetricsConfig{Enabled: false, Path: "/metrics"}, prometheus.NewRegistry(), zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
