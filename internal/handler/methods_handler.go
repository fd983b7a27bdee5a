package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/service"
)

// ============================================================
// 1. Payment methods
// ============================================================

func listPaymentMethodsHandler(cat *catalog.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/payment-methods")
		defer span.End()

		var methods []domain.PaymentMethod
		if r.URL.Query().Get("popular") == "true" {
			methods = cat.Popular()
		} else {
			methods = cat.Available()
		}
		writeJSON(w, http.StatusOK, methods)
	}
}

func getPaymentMethodHandler(cat *catalog.Catalog, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/payment-methods/{methodId}")
		defer span.End()

		methodID := chi.URLParam(r, "methodId")
		span.SetAttributes(attribute.String("payment.method_id", methodID))

		method, ok := cat.Get(methodID)
		if !ok {
			handleServiceError(w, &domain.ErrNotFound{Resource: "payment method", ID: methodID}, logger)
			return
		}
		writeJSON(w, http.StatusOK, method)
	}
}

func getMethodFeesHandler(paySvc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "GET /v1/payment-methods/{methodId}/fees")
		defer span.End()

		methodID := chi.URLParam(r, "methodId")
		amount, err := parseAmount(r)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		span.SetAttributes(
			attribute.String("payment.method_id", methodID),
			attribute.Float64("payment.amount", amount),
		)

		writeJSON(w, http.StatusOK, paySvc.CalculateFees(amount, methodID))
	}
}
