package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/handler"
	"github.com/madpay/madpay-api/internal/infra/cache"
	"github.com/madpay/madpay-api/internal/infra/gateway"
	"github.com/madpay/madpay-api/internal/infra/memstore"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/service"
)

const gatewayLatency = 30 * time.Millisecond

// newServer wires the full application with a short but real gateway
// latency and no random declines.
func newServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cat := catalog.Default()
	store := memstore.NewSeeded()

	gw := gateway.NewSimulated(gateway.Config{
		Latency:     gatewayLatency,
		FailureRate: 0,
	}, logger)

	paySvc := service.NewPaymentService(cat, gw, metrics, logger)
	custSvc := service.NewCustomerService(store, store, cat,
		cache.New[*domain.CustomerProfile](time.Minute), metrics, logger)
	authSvc := service.NewAuthService(store, store, "integration-secret", 15*time.Minute, 24*time.Hour, logger)

	srv := httptest.NewServer(handler.NewRouter(cat, paySvc, custSvc, authSvc, gw, metrics, logger))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("encode: %v", err)
	}
	resp, err := http.Post(url, "application/json", &buf)
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

// TestIntegration_CheckoutFlow walks the path the checkout screen
// takes: browse methods, quote fees, validate, then process.
func TestIntegration_CheckoutFlow(t *testing.T) {
	srv := newServer(t)

	// browse the catalog
	resp, err := http.Get(srv.URL + "/v1/payment-methods")
	if err != nil {
		t.Fatalf("GET payment-methods: %v", err)
	}
	methods := decode[[]domain.PaymentMethod](t, resp)
	if len(methods) != 8 {
		t.Fatalf("len(methods) = %d, want 8", len(methods))
	}

	// quote fees for a card payment
	resp, err = http.Get(srv.URL + "/v1/payment-methods/card-visa-mastercard/fees?amount=250")
	if err != nil {
		t.Fatalf("GET fees: %v", err)
	}
	fees := decode[domain.FeeBreakdown](t, resp)
	if fees.PercentageFee != 3.75 || fees.Total != 253.75 {
		t.Errorf("fees = %+v, want 3.75/253.75", fees)
	}

	// validate the request
	req := domain.PaymentRequest{Amount: 250, Currency: "MAD", MethodID: "card-visa-mastercard"}
	validation := decode[domain.PaymentValidation](t, postJSON(t, srv.URL+"/v1/payments/validate", req))
	if !validation.IsValid {
		t.Fatalf("validation = %+v", validation)
	}

	// process; the simulated gateway must impose its latency
	start := time.Now()
	payment := decode[domain.PaymentResponse](t, postJSON(t, srv.URL+"/v1/payments/process", req))
	elapsed := time.Since(start)

	if !payment.Success || payment.Status != domain.PaymentStatusCompleted {
		t.Fatalf("payment = %+v", payment)
	}
	if payment.Total != 253.75 {
		t.Errorf("Total = %v, want 253.75", payment.Total)
	}
	if payment.Message != "Payment of 250 MAD processed successfully" {
		t.Errorf("Message = %q", payment.Message)
	}
	if elapsed < gatewayLatency {
		t.Errorf("processing took %v, want at least the %v gateway latency", elapsed, gatewayLatency)
	}

	// the mock status endpoint acknowledges the transaction
	resp, err = http.Get(srv.URL + "/v1/payments/" + payment.TransactionID)
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	status := decode[domain.PaymentStatusResponse](t, resp)
	if status.TransactionID != payment.TransactionID || status.Status != domain.PaymentStatusCompleted {
		t.Errorf("status = %+v", status)
	}

	// and a refund mints a fresh RFD id
	refund := decode[domain.RefundResponse](t, postJSON(t,
		srv.URL+"/v1/payments/"+payment.TransactionID+"/refund",
		map[string]string{"reason": "integration test"}))
	if !refund.Success || refund.OriginalTransactionID != payment.TransactionID {
		t.Errorf("refund = %+v", refund)
	}
}

// TestIntegration_RejectedPaymentSkipsLatency verifies the validation
// short-circuit returns without waiting out the gateway.
func TestIntegration_RejectedPaymentSkipsLatency(t *testing.T) {
	srv := newServer(t)

	start := time.Now()
	resp := postJSON(t, srv.URL+"/v1/payments/process", domain.PaymentRequest{
		Amount: -1, Currency: "MAD", MethodID: "bank-transfer",
	})
	elapsed := time.Since(start)

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	payment := decode[domain.PaymentResponse](t, resp)
	if payment.TransactionID != "" {
		t.Errorf("TransactionID = %q, want empty", payment.TransactionID)
	}
	if elapsed >= gatewayLatency {
		t.Errorf("rejection took %v; must not incur gateway latency", elapsed)
	}
}

// TestIntegration_CustomerJourney covers auth plus the customer read
// endpoints backed by the seeded store.
func TestIntegration_CustomerJourney(t *testing.T) {
	srv := newServer(t)

	// dashboard for the seeded demo account
	resp, err := http.Get(fmt.Sprintf("%s/v1/customers/%s/dashboard", srv.URL, memstore.DemoCustomerID))
	if err != nil {
		t.Fatalf("GET dashboard: %v", err)
	}
	dashboard := decode[domain.Dashboard](t, resp)
	if dashboard.Balance != 520.00 {
		t.Errorf("Balance = %v, want 520.00", dashboard.Balance)
	}
	if len(dashboard.RecentTransactions) != 5 {
		t.Errorf("recent = %d, want 5", len(dashboard.RecentTransactions))
	}

	// register + login a fresh customer
	reg := decode[domain.RegisterResponse](t, postJSON(t, srv.URL+"/v1/auth/register", domain.RegisterRequest{
		Name: "Journey User", Email: "journey@example.com", Password: "journey-pass-1",
	}))
	login := decode[domain.LoginResponse](t, postJSON(t, srv.URL+"/v1/auth/login", domain.LoginRequest{
		Email: "journey@example.com", Password: "journey-pass-1",
	}))
	if login.CustomerID != reg.CustomerID {
		t.Fatalf("login customer = %q, want %q", login.CustomerID, reg.CustomerID)
	}

	// authenticated profile update
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(domain.UpdateProfileRequest{Phone: "+212 69999999"})
	putReq, _ := http.NewRequest(http.MethodPut,
		fmt.Sprintf("%s/v1/customers/%s/profile", srv.URL, login.CustomerID), &buf)
	putReq.Header.Set("Content-Type", "application/json")
	putReq.Header.Set("Authorization", "Bearer "+login.AccessToken)
	putResp, err := http.DefaultClient.Do(putReq)
	if err != nil {
		t.Fatalf("PUT profile: %v", err)
	}
	updated := decode[domain.CustomerProfile](t, putResp)
	if updated.Phone != "+212 69999999" {
		t.Errorf("Phone = %q", updated.Phone)
	}
}
