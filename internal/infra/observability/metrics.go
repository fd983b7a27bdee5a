package observability

import (
	"time"

	"github.com/madpay/madpay-api/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Payment outcome labels for the payments_total counter.
const (
	PaymentOutcomeCompleted = "completed"
	PaymentOutcomeDeclined  = "declined"
	PaymentOutcomeRejected  = "rejected" // failed validation, never reached the gateway
)

// Metrics holds all Prometheus metrics for the API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration    *prometheus.HistogramVec
	paymentsTotal      *prometheus.CounterVec
	paymentAmount      prometheus.Histogram
	validationFailures *prometheus.CounterVec
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "madpay_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		paymentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "madpay_payments_total",
				Help: "Total payment attempts by outcome.",
			},
			[]string{"outcome"},
		),
		paymentAmount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "madpay_payment_amount_mad",
				Help:    "Requested payment amounts in MAD.",
				Buckets: []float64{10, 50, 100, 250, 500, 1000, 5000, 10000, 100000},
			},
		),
		validationFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "madpay_validation_failures_total",
				Help: "Payment validation failures by rule.",
			},
			[]string{"rule"},
		),
		cacheHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "madpay_cache_hits_total",
				Help: "Total cache hits.",
			},
			[]string{"cache"},
		),
		cacheMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "madpay_cache_misses_total",
				Help: "Total cache misses.",
			},
			[]string{"cache"},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// RecordPayment counts one payment attempt and its requested amount.
func (m *Metrics) RecordPayment(outcome string, amount float64) {
	m.paymentsTotal.WithLabelValues(outcome).Inc()
	m.paymentAmount.Observe(amount)
}

// IncrValidationFailure counts one validation rule firing.
func (m *Metrics) IncrValidationFailure(rule string) {
	m.validationFailures.WithLabelValues(rule).Inc()
}

// IncrCacheHit increments the cache hit counter.
func (m *Metrics) IncrCacheHit(cache string) {
	m.cacheHits.WithLabelValues(cache).Inc()
}

// IncrCacheMiss increments the cache miss counter.
func (m *Metrics) IncrCacheMiss(cache string) {
	m.cacheMisses.WithLabelValues(cache).Inc()
}

// GetPaymentSnapshot reads the counters back into a summary suitable
// for the GET /v1/metrics/payments endpoint.
func (m *Metrics) GetPaymentSnapshot() *domain.PaymentMetricsSnapshot {
	completed := getCounterValue(m.paymentsTotal, PaymentOutcomeCompleted)
	declined := getCounterValue(m.paymentsTotal, PaymentOutcomeDeclined)
	rejected := getCounterValue(m.paymentsTotal, PaymentOutcomeRejected)
	total := completed + declined + rejected

	cacheHits := getCounterValue(m.cacheHits, "profile")
	cacheMisses := getCounterValue(m.cacheMisses, "profile")

	declineRate := float64(0)
	if completed+declined > 0 {
		declineRate = declined / (completed + declined)
	}
	cacheHitRate := float64(0)
	if cacheHits+cacheMisses > 0 {
		cacheHitRate = cacheHits / (cacheHits + cacheMisses)
	}

	return &domain.PaymentMetricsSnapshot{
		TotalPayments:     int64(total),
		CompletedPayments: int64(completed),
		FailedPayments:    int64(declined),
		RejectedPayments:  int64(rejected),
		DeclineRate:       declineRate,
		CacheHitRate:      cacheHitRate,
		Period:            "all_time",
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for a given label.
func getCounterValue(cv *prometheus.CounterVec, label string) float64 {
	counter := cv.WithLabelValues(label)
	m := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(m); err != nil {
		return 0
	}
	if m.Counter != nil && m.Counter.Value != nil {
		return *m.Counter.Value
	}
	return 0
}
