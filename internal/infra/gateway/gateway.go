// Package gateway implements the downstream processor boundary. The
// only implementation today is a simulation: it sleeps for a configured
// latency window and declines a configurable fraction of settlements,
// standing in for a real acquirer integration.
package gateway

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/infra/resilience"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Config holds the simulation parameters.
type Config struct {
	// Latency is how long a settlement takes end to end.
	Latency time.Duration
	// FailureRate is the probability [0,1] that a settlement is
	// declined after the latency window.
	FailureRate float64
	// MaxConcurrency caps concurrent in-flight settlements.
	MaxConcurrency int
	// Rand is the randomness source for the decline decision. Leave
	// nil for the default; tests inject a deterministic func to force
	// either branch.
	Rand func() float64
}

// Simulated is a PaymentGateway that fakes a processor. Safe for
// concurrent use; independent settlements do not serialize against
// each other below the bulkhead cap.
type Simulated struct {
	latency     time.Duration
	failureRate float64
	randFloat   func() float64
	breaker     *gobreaker.CircuitBreaker
	bulkhead    *resilience.Bulkhead
	logger      *zap.Logger
}

// NewSimulated creates the simulated gateway.
func NewSimulated(cfg Config, logger *zap.Logger) *Simulated {
	randFloat := cfg.Rand
	if randFloat == nil {
		randFloat = rand.Float64
	}
	maxConc := cfg.MaxConcurrency
	if maxConc <= 0 {
		maxConc = 50
	}
	return &Simulated{
		latency:     cfg.Latency,
		failureRate: cfg.FailureRate,
		randFloat:   randFloat,
		breaker:     resilience.NewCircuitBreaker("payment-gateway"),
		bulkhead:    resilience.NewBulkhead(maxConc),
		logger:      logger,
	}
}

// Settle simulates capturing total MAD for the given transaction. It
// waits out the latency window, then declines with the configured
// probability. Context cancellation cuts the wait short and returns
// ctx.Err().
func (g *Simulated) Settle(ctx context.Context, transactionID string, total float64) error {
	if err := g.bulkhead.Acquire(ctx); err != nil {
		return err
	}
	defer g.bulkhead.Release()

	_, err := g.breaker.Execute(func() (any, error) {
		if g.latency > 0 {
			timer := time.NewTimer(g.latency)
			defer timer.Stop()
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		if g.randFloat() < g.failureRate {
			g.logger.Info("simulated gateway decline",
				zap.String("transaction_id", transactionID),
				zap.Float64("total", total),
			)
			return nil, &domain.ErrGatewayDeclined{TransactionID: transactionID}
		}
		return nil, nil
	})

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.ErrCircuitOpen{Service: "payment-gateway"}
	}
	return err
}

// BreakerState reports the circuit breaker state for health checks.
func (g *Simulated) BreakerState() gobreaker.State {
	return g.breaker.State()
}
