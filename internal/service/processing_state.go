package service

import (
	"context"
	"sync"

	"github.com/madpay/madpay-api/internal/domain"
)

// ProcessingState tracks one logical in-flight payment attempt the way
// a checkout screen would: a loading flag, the last error message, and
// the last response. Starting a new attempt clears all three before the
// processor runs. Overlapping attempts are not queued or cancelled;
// whichever finishes last owns the final state.
type ProcessingState struct {
	payments *PaymentService

	mu        sync.Mutex
	isLoading bool
	errMsg    string
	response  *domain.PaymentResponse
}

// NewProcessingState wraps a PaymentService with attempt tracking.
func NewProcessingState(payments *PaymentService) *ProcessingState {
	return &ProcessingState{payments: payments}
}

// StateSnapshot is a point-in-time view of the coordinator.
type StateSnapshot struct {
	IsLoading bool                    `json:"isLoading"`
	Error     string                  `json:"error,omitempty"`
	Response  *domain.PaymentResponse `json:"response,omitempty"`
}

// Process runs one attempt through the payment service and records the
// outcome. A validation short-circuit (failed response with no
// transaction id) lands in Error; any other failed or successful
// response lands in Response; an unexpected error from the processor is
// captured as Error, never propagated as a panic to the caller.
func (p *ProcessingState) Process(ctx context.Context, req *domain.PaymentRequest) StateSnapshot {
	p.mu.Lock()
	p.isLoading = true
	p.errMsg = ""
	p.response = nil
	p.mu.Unlock()

	resp, err := p.payments.Process(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.isLoading = false
	switch {
	case err != nil:
		p.errMsg = err.Error()
	case !resp.Success && resp.TransactionID == "":
		p.errMsg = resp.Message
	default:
		p.response = resp
	}
	return p.snapshotLocked()
}

// Snapshot returns the current state.
func (p *ProcessingState) Snapshot() StateSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Reset clears the coordinator back to idle.
func (p *ProcessingState) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.isLoading = false
	p.errMsg = ""
	p.response = nil
}

func (p *ProcessingState) snapshotLocked() StateSnapshot {
	return StateSnapshot{
		IsLoading: p.isLoading,
		Error:     p.errMsg,
		Response:  p.response,
	}
}
