// Package service contains application services: payment processing,
// the customer dashboard aggregation, and the mock auth flow. Services
// depend on ports, never on concrete infrastructure.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/port"
)

// Validation messages, in the order the validator reports them.
const (
	msgAmountNotPositive   = "Amount must be greater than 0"
	msgAmountExceedsLimit  = "Amount exceeds maximum limit of 1,000,000 MAD"
	msgInvalidMethod       = "Invalid payment method"
	msgMethodUnavailable   = "Selected payment method is not available"
	msgUnsupportedCurrency = "Only MAD currency is supported"
)

const declineMessage = "Payment failed. Please try again or use a different payment method."

var paymentTracer = otel.Tracer("service/payments")

// PaymentService implements the payment core: validation, fee quoting
// and processing against the downstream gateway.
type PaymentService struct {
	catalog *catalog.Catalog
	gateway port.PaymentGateway
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewPaymentService creates a PaymentService.
func NewPaymentService(cat *catalog.Catalog, gw port.PaymentGateway, metrics *observability.Metrics, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		catalog: cat,
		gateway: gw,
		metrics: metrics,
		logger:  logger,
	}
}

// ValidatePayment checks a request against the business rules. It is
// pure: no side effects, never an error. All violations are collected,
// in a fixed order, so the frontend can render the complete list.
func (s *PaymentService) ValidatePayment(req *domain.PaymentRequest) domain.PaymentValidation {
	var errs []string

	if req.Amount <= 0 {
		errs = append(errs, msgAmountNotPositive)
	}
	if req.Amount > domain.MaxPaymentAmount {
		errs = append(errs, msgAmountExceedsLimit)
	}

	method, found := s.catalog.Get(req.MethodID)
	if !found {
		errs = append(errs, msgInvalidMethod)
	} else if !method.IsAvailable {
		errs = append(errs, msgMethodUnavailable)
	}

	if req.Currency != domain.CurrencyMAD {
		errs = append(errs, msgUnsupportedCurrency)
	}

	return domain.PaymentValidation{
		IsValid: len(errs) == 0,
		Errors:  errs,
	}
}

// CalculateFees quotes the fee breakdown for an amount/method pair.
func (s *PaymentService) CalculateFees(amount float64, methodID string) domain.FeeBreakdown {
	return s.catalog.CalculateFees(amount, methodID)
}

// Process runs one payment attempt end to end.
//
// An invalid request is reported through the response (success=false,
// empty transaction id, first validation error as the message) without
// touching the gateway, so no latency is incurred. A valid request gets
// a transaction id, then settles through the gateway; a gateway decline
// also comes back as a failed response, with the id and computed fees
// intact so the attempt can be shown to the user. The returned error is
// non-nil only for context cancellation or infrastructure failures
// (e.g. open circuit breaker), never for business outcomes.
func (s *PaymentService) Process(ctx context.Context, req *domain.PaymentRequest) (*domain.PaymentResponse, error) {
	ctx, span := paymentTracer.Start(ctx, "PaymentService.Process")
	defer span.End()
	span.SetAttributes(
		attribute.String("payment.method_id", req.MethodID),
		attribute.Float64("payment.amount", req.Amount),
	)

	validation := s.ValidatePayment(req)
	if !validation.IsValid {
		for _, e := range validation.Errors {
			s.metrics.IncrValidationFailure(e)
		}
		s.metrics.RecordPayment(observability.PaymentOutcomeRejected, req.Amount)
		s.logger.Info("payment rejected by validation",
			zap.String("method_id", req.MethodID),
			zap.Float64("amount", req.Amount),
			zap.Strings("errors", validation.Errors))
		return &domain.PaymentResponse{
			Success:       false,
			TransactionID: "",
			Amount:        req.Amount,
			Fee:           0,
			Total:         req.Amount,
			Timestamp:     nowISO(),
			Status:        domain.PaymentStatusFailed,
			Message:       validation.Errors[0],
		}, nil
	}

	breakdown := s.catalog.CalculateFees(req.Amount, req.MethodID)
	transactionID := newTransactionID()

	err := s.gateway.Settle(ctx, transactionID, breakdown.Total)
	if err != nil {
		var declined *domain.ErrGatewayDeclined
		if errors.As(err, &declined) {
			s.metrics.RecordPayment(observability.PaymentOutcomeDeclined, req.Amount)
			s.logger.Warn("payment declined",
				zap.String("transaction_id", transactionID),
				zap.Float64("total", breakdown.Total))
			return &domain.PaymentResponse{
				Success:       false,
				TransactionID: transactionID,
				Amount:        req.Amount,
				Fee:           breakdown.PercentageFee + breakdown.FixedFee,
				Total:         breakdown.Total,
				Timestamp:     nowISO(),
				Status:        domain.PaymentStatusFailed,
				Message:       declineMessage,
			}, nil
		}
		// cancellation, open breaker, bulkhead timeout
		return nil, err
	}

	s.metrics.RecordPayment(observability.PaymentOutcomeCompleted, req.Amount)
	s.logger.Info("payment completed",
		zap.String("transaction_id", transactionID),
		zap.String("method_id", req.MethodID),
		zap.Float64("amount", req.Amount),
		zap.Float64("total", breakdown.Total))
	return &domain.PaymentResponse{
		Success:       true,
		TransactionID: transactionID,
		Amount:        req.Amount,
		Fee:           breakdown.PercentageFee + breakdown.FixedFee,
		Total:         breakdown.Total,
		Timestamp:     nowISO(),
		Status:        domain.PaymentStatusCompleted,
		Message:       fmt.Sprintf("Payment of %s MAD processed successfully", formatAmount(req.Amount)),
	}, nil
}

// GetPaymentStatus is a mock status lookup: it acknowledges any id as
// completed. A real implementation would query the processor.
func (s *PaymentService) GetPaymentStatus(_ context.Context, transactionID string) *domain.PaymentStatusResponse {
	return &domain.PaymentStatusResponse{
		TransactionID: transactionID,
		Status:        domain.PaymentStatusCompleted,
		Timestamp:     nowISO(),
	}
}

// RefundPayment is a mock refund: it always succeeds and mints a fresh
// refund id.
func (s *PaymentService) RefundPayment(_ context.Context, transactionID, reason string) *domain.RefundResponse {
	s.logger.Info("refund initiated",
		zap.String("transaction_id", transactionID),
		zap.String("reason", reason))
	return &domain.RefundResponse{
		Success:               true,
		OriginalTransactionID: transactionID,
		RefundTransactionID:   fmt.Sprintf("RFD-%d", time.Now().UnixMilli()),
		Timestamp:             nowISO(),
		Message:               "Refund processed successfully",
	}
}

const txAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// newTransactionID mints an id from the current time plus a random
// suffix. Uniqueness is probabilistic; collision handling is a
// non-concern at demo traffic volumes.
func newTransactionID() string {
	suffix := make([]byte, 9)
	for i := range suffix {
		suffix[i] = txAlphabet[rand.Intn(len(txAlphabet))]
	}
	return fmt.Sprintf("TX-%d-%s", time.Now().UnixMilli(), suffix)
}

// formatAmount renders an amount without trailing zeros, so 100.0
// prints as "100" and 99.99 as "99.99".
func formatAmount(a float64) string {
	return strconv.FormatFloat(a, 'f', -1, 64)
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
