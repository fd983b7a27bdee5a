package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/service"
)

var tracer = otel.Tracer("handler")

// GatewayProbe is the health-check view of the payment gateway.
type GatewayProbe interface {
	BreakerState() gobreaker.State
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(
	cat *catalog.Catalog,
	paySvc *service.PaymentService,
	custSvc *service.CustomerService,
	authSvc *service.AuthService,
	gw GatewayProbe,
	metrics *observability.Metrics,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(requestDurationMiddleware(metrics))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(gw))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// 1. Payment methods
		// GET /v1/payment-methods
		// GET /v1/payment-methods/{methodId}
		// GET /v1/payment-methods/{methodId}/fees
		// =============================================
		r.Get("/payment-methods", listPaymentMethodsHandler(cat, logger))
		r.Get("/payment-methods/{methodId}", getPaymentMethodHandler(cat, logger))
		r.Get("/payment-methods/{methodId}/fees", getMethodFeesHandler(paySvc, logger))

		// =============================================
		// 2. Payments
		// POST /v1/payments/validate
		// POST /v1/payments/process
		// GET  /v1/payments/{transactionId}
		// POST /v1/payments/{transactionId}/refund
		// =============================================
		r.Post("/payments/validate", validatePaymentHandler(paySvc, logger))
		r.Post("/payments/process", processPaymentHandler(paySvc, logger))
		r.Get("/payments/{transactionId}", getPaymentStatusHandler(paySvc, logger))
		r.Post("/payments/{transactionId}/refund", refundPaymentHandler(paySvc, logger))

		// =============================================
		// 3. Customers
		// =============================================
		r.Get("/customers/{customerId}/profile", getProfileHandler(custSvc, logger))
		r.Get("/customers/{customerId}/transactions", listTransactionsHandler(custSvc, logger))
		r.Get("/customers/{customerId}/dashboard", getDashboardHandler(custSvc, logger))

		// Protected profile edit
		r.Group(func(r chi.Router) {
			r.Use(JWTAuthMiddleware(authSvc, logger))
			r.Put("/customers/{customerId}/profile", updateProfileHandler(custSvc, logger))
		})

		// =============================================
		// 4. Metrics
		// GET /v1/metrics/payments
		// =============================================
		r.Get("/metrics/payments", paymentMetricsHandler(metrics))

		// =============================================
		// 5. Auth
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authRegisterHandler(authSvc, logger))
			r.Post("/login", authLoginHandler(authSvc, logger))
			r.Post("/refresh", authRefreshHandler(authSvc, logger))

			r.Group(func(r chi.Router) {
				r.Use(JWTAuthMiddleware(authSvc, logger))
				r.Post("/logout", authLogoutHandler(authSvc, logger))
			})
		})
	})

	return r
}

// requestDurationMiddleware records per-route latency histograms.
func requestDurationMiddleware(metrics *observability.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
				metrics.RecordRequestDuration(r.Method+" "+pattern, time.Since(start))
			}
		})
	}
}

// ============================================================
// Health & metrics
// ============================================================

func healthzHandler(gw GatewayProbe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "madpay-api", Status: "healthy", LatencyMs: 0, UptimePercent: 99.99, LastChecked: now},
		}

		if gw != nil {
			status := "healthy"
			switch gw.BreakerState() {
			case gobreaker.StateOpen:
				status = "unhealthy"
			case gobreaker.StateHalfOpen:
				status = "degraded"
			}
			services = append(services, domain.ServiceHealth{
				Name: "payment-gateway", Status: status, LatencyMs: 0,
				UptimePercent: 99.9, LastChecked: now,
			})
		}

		overallStatus := "healthy"
		for _, s := range services {
			if s.Status == "unhealthy" {
				overallStatus = "unhealthy"
				break
			}
			if s.Status == "degraded" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func paymentMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetPaymentSnapshot())
	}
}
