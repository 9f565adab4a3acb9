package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OperationPurchase = "purchase"
	OperationSale     = "sale"

	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeFailure  = "failure"
)

// LedgerMetrics records ledger activity. A nil *LedgerMetrics is a no-op.
type LedgerMetrics struct {
	purchases      prometheus.Counter
	unitsPurchased prometheus.Counter
	sales          prometheus.Counter
	unitsSold      prometheus.Counter
	rejections     *prometheus.CounterVec
	retries        *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	m := &LedgerMetrics{
		purchases: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_purchases_total",
			Help: "Purchases committed to the ledger.",
		}),
		unitsPurchased: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_units_purchased_total",
			Help: "Units added to stock by committed purchases.",
		}),
		sales: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_sales_total",
			Help: "Sales committed to the ledger.",
		}),
		unitsSold: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ledger_units_sold_total",
			Help: "Units removed from stock by committed sales.",
		}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_rejections_total",
			Help: "Ledger operations rejected before commit.",
		}, []string{"operation", "reason"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_tx_retries_total",
			Help: "Transaction retries after deadlocks or lock wait timeouts.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_operation_duration_seconds",
			Help:    "Duration of ledger operations in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.purchases, m.unitsPurchased, m.sales, m.unitsSold, m.rejections, m.retries, m.duration)
	return m
}

func (m *LedgerMetrics) PurchaseRecorded(quantity int) {
	if m == nil || m.purchases == nil {
		return
	}
	m.purchases.Inc()
	m.unitsPurchased.Add(float64(quantity))
}

func (m *LedgerMetrics) SaleRecorded(quantity int) {
	if m == nil || m.sales == nil {
		return
	}
	m.sales.Inc()
	m.unitsSold.Add(float64(quantity))
}

// Rejected counts an operation refused for the given reason (an error code).
func (m *LedgerMetrics) Rejected(operation, reason string) {
	if m == nil || m.rejections == nil {
		return
	}
	m.rejections.WithLabelValues(normalizeLabel(operation), normalizeLabel(reason)).Inc()
}

func (m *LedgerMetrics) Retried(operation string) {
	if m == nil || m.retries == nil {
		return
	}
	m.retries.WithLabelValues(normalizeLabel(operation)).Inc()
}

func (m *LedgerMetrics) ObserveDuration(operation, outcome string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(operation), normalizeLabel(outcome)).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
