// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/madpay/madpay-api/internal/domain"
)

// PaymentGateway is the downstream processor boundary. The default
// implementation simulates network latency and random declines; tests
// substitute deterministic stubs to force either branch, and a real
// acquirer integration would slot in here later.
type PaymentGateway interface {
	// Settle attempts to capture the given total for a transaction.
	// A declined attempt returns *domain.ErrGatewayDeclined.
	Settle(ctx context.Context, transactionID string, total float64) error
}

// ProfileStore retrieves and updates customer profile data.
type ProfileStore interface {
	GetProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error)
	UpdateProfile(ctx context.Context, customerID string, req *domain.UpdateProfileRequest) (*domain.CustomerProfile, error)
}

// TransactionStore retrieves customer transaction history.
type TransactionStore interface {
	ListTransactions(ctx context.Context, customerID string) ([]domain.Transaction, error)
}

// AuthStore holds credentials and refresh tokens for the mock auth flow.
type AuthStore interface {
	GetCredentialByEmail(ctx context.Context, email string) (*domain.AuthCredential, error)
	CreateCustomer(ctx context.Context, profile *domain.CustomerProfile, passwordHash string) error

	StoreRefreshToken(ctx context.Context, customerID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.RefreshTokenRecord, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, customerID string) error
}

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}
