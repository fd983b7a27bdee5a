package domain

// Transaction direction as displayed in the history screen.
const (
	TransactionIncoming = "incoming"
	TransactionOutgoing = "outgoing"
)

// Transaction display states.
const (
	TransactionSuccess = "success"
	TransactionPending = "pending"
	TransactionFailed  = "failed"
)

// Transaction is a history entry shown to the customer. These are
// seeded demo rows; the payment processor does not persist anything
// into this list.
type Transaction struct {
	ID          string  `json:"id"`
	CustomerID  string  `json:"customerId"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Status      string  `json:"status"`
	Date        string  `json:"date"`
	Method      string  `json:"method"`
}
