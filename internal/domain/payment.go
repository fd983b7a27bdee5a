// Package domain holds the core types shared across the MAD-Pay API:
// payment methods, payment requests/responses, customers, transactions
// and the error taxonomy.
package domain

// CurrencyMAD is the only currency the platform accepts today.
const CurrencyMAD = "MAD"

// MaxPaymentAmount is the per-payment ceiling in MAD.
const MaxPaymentAmount = 1_000_000

// PaymentMethodType is the closed set of supported method families.
type PaymentMethodType string

const (
	MethodTypeCard             PaymentMethodType = "card"
	MethodTypeBank             PaymentMethodType = "bank"
	MethodTypeWallet           PaymentMethodType = "wallet"
	MethodTypeCOD              PaymentMethodType = "cod"
	MethodTypeAppBalance       PaymentMethodType = "app-balance"
	MethodTypeCashPlus         PaymentMethodType = "cash-plus"
	MethodTypeCIHBank          PaymentMethodType = "cih-bank"
	MethodTypeAttijariwafaBank PaymentMethodType = "attijariwafa-bank"
)

// FeeSchedule is the cost attached to a payment method. Percentage is
// expressed 0–100; Fixed is in MAD.
type FeeSchedule struct {
	Percentage float64 `json:"percentage"`
	Fixed      float64 `json:"fixed"`
}

// PaymentMethod is a catalog entry. Entries are immutable after catalog
// construction. A nil Fees means the method is free of charge.
type PaymentMethod struct {
	ID           string            `json:"id"`
	Type         PaymentMethodType `json:"type"`
	Label        string            `json:"label"`
	Description  string            `json:"description"`
	Icon         string            `json:"icon"`
	Instructions []string          `json:"instructions"`
	IsAvailable  bool              `json:"isAvailable"`
	IsPopular    bool              `json:"isPopular"`
	Fees         *FeeSchedule      `json:"fees,omitempty"`
}

// PaymentRequest is what the frontend submits for one payment attempt.
type PaymentRequest struct {
	Amount      float64        `json:"amount"`
	Currency    string         `json:"currency"`
	MethodID    string         `json:"methodId"`
	Description string         `json:"description,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// FeeBreakdown is the fee quote for an amount/method pair. All values
// are MAD rounded to 2 decimals; Total = BaseAmount + PercentageFee +
// FixedFee.
type FeeBreakdown struct {
	BaseAmount    float64 `json:"baseAmount"`
	PercentageFee float64 `json:"percentageFee"`
	FixedFee      float64 `json:"fixedFee"`
	Total         float64 `json:"total"`
}

// PaymentValidation is the result of checking a request against the
// business rules. Errors is empty exactly when IsValid is true.
type PaymentValidation struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// PaymentStatus is the lifecycle state of a processed payment.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentResponse is the outcome of a processing attempt. A validation
// failure carries an empty TransactionID; an attempt that reached the
// processor always has one, even when it was declined.
type PaymentResponse struct {
	Success       bool          `json:"success"`
	TransactionID string        `json:"transactionId"`
	Amount        float64       `json:"amount"`
	Fee           float64       `json:"fee"`
	Total         float64       `json:"total"`
	Timestamp     string        `json:"timestamp"`
	Status        PaymentStatus `json:"status"`
	Message       string        `json:"message"`
}

// PaymentStatusResponse is the mock status lookup payload.
type PaymentStatusResponse struct {
	TransactionID string        `json:"transactionId"`
	Status        PaymentStatus `json:"status"`
	Timestamp     string        `json:"timestamp"`
}

// RefundResponse is the mock refund payload.
type RefundResponse struct {
	Success               bool   `json:"success"`
	OriginalTransactionID string `json:"originalTransactionId"`
	RefundTransactionID   string `json:"refundTransactionId"`
	Timestamp             string `json:"timestamp"`
	Message               string `json:"message"`
}
