package domain

import "fmt"

// Error types for consistent error handling across the API.
//
// Business-rule violations in the payment core are NOT errors: they are
// reported through PaymentValidation / PaymentResponse. The types below
// cover the surrounding app surface (lookups, auth, infrastructure).

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a malformed or out-of-range input.
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrCircuitOpen indicates the processor circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}

// ErrTimeout indicates an operation exceeded its deadline.
type ErrTimeout struct {
	Operation string
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("operation timed out: %s", e.Operation)
}

// ErrGatewayDeclined is the simulated downstream decline. The payment
// service translates it into a failed PaymentResponse; it never reaches
// the HTTP layer.
type ErrGatewayDeclined struct {
	TransactionID string
}

func (e *ErrGatewayDeclined) Error() string {
	return fmt.Sprintf("payment declined by gateway: %s", e.TransactionID)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrConflict indicates a resource already exists (e.g. duplicate email).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}
