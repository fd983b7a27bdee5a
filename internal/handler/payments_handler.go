package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/service"
)

// ============================================================
// 2. Payments
// ============================================================

func validatePaymentHandler(paySvc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "POST /v1/payments/validate")
		defer span.End()

		var req domain.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(attribute.String("payment.method_id", req.MethodID))

		validation := paySvc.ValidatePayment(&req)
		if validation.Errors == nil {
			validation.Errors = []string{}
		}
		writeJSON(w, http.StatusOK, validation)
	}
}

func processPaymentHandler(paySvc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/payments/process")
		defer span.End()

		var req domain.PaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		span.SetAttributes(
			attribute.String("payment.method_id", req.MethodID),
			attribute.Float64("payment.amount", req.Amount),
		)

		resp, err := paySvc.Process(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		// a rejected or declined attempt still renders as a payment
		// outcome, not a transport error
		status := http.StatusOK
		if !resp.Success && resp.TransactionID == "" {
			status = http.StatusUnprocessableEntity
		}
		writeJSON(w, status, resp)
	}
}

func getPaymentStatusHandler(paySvc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/payments/{transactionId}")
		defer span.End()

		transactionID := chi.URLParam(r, "transactionId")
		if transactionID == "" {
			writeError(w, http.StatusBadRequest, "transactionId is required")
			return
		}

		writeJSON(w, http.StatusOK, paySvc.GetPaymentStatus(ctx, transactionID))
	}
}

func refundPaymentHandler(paySvc *service.PaymentService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/payments/{transactionId}/refund")
		defer span.End()

		transactionID := chi.URLParam(r, "transactionId")
		if transactionID == "" {
			writeError(w, http.StatusBadRequest, "transactionId is required")
			return
		}

		var req struct {
			Reason string `json:"reason"`
		}
		// body is optional; a missing reason is fine
		_ = json.NewDecoder(r.Body).Decode(&req)

		writeJSON(w, http.StatusOK, paySvc.RefundPayment(ctx, transactionID, req.Reason))
	}
}
