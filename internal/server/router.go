package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"stockroom/internal/api"
	"stockroom/internal/config"
	ledgercontroller "stockroom/internal/ledger/controller"
	locationcontroller "stockroom/internal/location/controller"
	productcontroller "stockroom/internal/product/controller"
)

type Controllers struct {
	Ledger    *ledgercontroller.LedgerController
	Products  *productcontroller.Controller
	Locations *locationcontroller.Controller
}

// NewRouter mounts the HTTP surface. Writes to the ledger require an actor;
// reads do not. The metrics endpoint is served from gatherer when enabled.
func NewRouter(c Controllers, metricsCfg config.MetricsConfig, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(logger),
		middleware.Recoverer,
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		api.WriteJSON(w, logger, http.StatusOK, map[string]string{"status": "ok"})
	})

	if metricsCfg.Enabled && gatherer != nil {
		r.Method(http.MethodGet, metricsCfg.Path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(RequireActor(logger))
		r.Post("/purchases", c.Ledger.CreatePurchase)
		r.Post("/sales", c.Ledger.CreateSale)
	})

	r.Post("/products/search", c.Products.HandleSearchProducts)
	r.Get("/products/{productId}/stock", c.Products.HandleGetStock)
	r.Get("/stock/{productId}/reconciliation", c.Ledger.Reconcile)
	r.Get("/locations", c.Locations.HandleList)

	return r
}
