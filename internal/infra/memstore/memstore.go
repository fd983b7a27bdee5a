// Package memstore provides the in-memory data backend for the demo.
// Everything here is mock display data seeded at startup; nothing is
// persisted and the payment processor never writes into it. The store
// implements the port interfaces so a real persistence layer can
// replace it without touching the services.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/madpay/madpay-api/internal/domain"
)

// Store is the in-memory implementation of ProfileStore,
// TransactionStore and AuthStore.
type Store struct {
	mu            sync.RWMutex
	profiles      map[string]*domain.CustomerProfile
	transactions  map[string][]domain.Transaction
	credentials   map[string]*domain.AuthCredential // keyed by email
	refreshTokens map[string]*domain.RefreshTokenRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{
		profiles:      make(map[string]*domain.CustomerProfile),
		transactions:  make(map[string][]domain.Transaction),
		credentials:   make(map[string]*domain.AuthCredential),
		refreshTokens: make(map[string]*domain.RefreshTokenRecord),
	}
}

// DemoCustomerID is the seeded demo account every screen uses.
const DemoCustomerID = "cust-demo-001"

// NewSeeded creates a store preloaded with the demo customer and the
// transaction history the app screens display.
func NewSeeded() *Store {
	s := New()

	s.profiles[DemoCustomerID] = &domain.CustomerProfile{
		CustomerID: DemoCustomerID,
		Name:       "AAA BBB",
		Email:      "aaaa@bbbb.com",
		Phone:      "+212 11111111",
		Language:   "en",
		Balance:    520.00,
		CreatedAt:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	s.transactions[DemoCustomerID] = []domain.Transaction{
		{ID: "TX-000111222", CustomerID: DemoCustomerID, Type: domain.TransactionOutgoing, Description: "Payment to Store XYZ", Amount: 120, Status: domain.TransactionSuccess, Date: "2025-01-20", Method: "Card"},
		{ID: "TX-000111223", CustomerID: DemoCustomerID, Type: domain.TransactionIncoming, Description: "Refund from Vendor", Amount: 50, Status: domain.TransactionSuccess, Date: "2025-01-19", Method: "Bank Transfer"},
		{ID: "TX-000111224", CustomerID: DemoCustomerID, Type: domain.TransactionOutgoing, Description: "Subscription Payment", Amount: 99.99, Status: domain.TransactionPending, Date: "2025-01-18", Method: "Wallet"},
		{ID: "TX-000111225", CustomerID: DemoCustomerID, Type: domain.TransactionOutgoing, Description: "Online Purchase", Amount: 245.5, Status: domain.TransactionFailed, Date: "2025-01-17", Method: "Card"},
		{ID: "TX-000111226", CustomerID: DemoCustomerID, Type: domain.TransactionIncoming, Description: "Salary Deposit", Amount: 3000, Status: domain.TransactionSuccess, Date: "2025-01-15", Method: "Bank Transfer"},
		{ID: "TX-000111227", CustomerID: DemoCustomerID, Type: domain.TransactionOutgoing, Description: "Bill Payment", Amount: 150, Status: domain.TransactionSuccess, Date: "2025-01-14", Method: "Bank Transfer"},
		{ID: "TX-000111228", CustomerID: DemoCustomerID, Type: domain.TransactionOutgoing, Description: "Restaurant Payment", Amount: 85.75, Status: domain.TransactionSuccess, Date: "2025-01-13", Method: "Card"},
		{ID: "TX-000111229", CustomerID: DemoCustomerID, Type: domain.TransactionIncoming, Description: "Bonus Credit", Amount: 25, Status: domain.TransactionSuccess, Date: "2025-01-12", Method: "Wallet"},
	}

	return s
}

// ============================================================
// ProfileStore
// ============================================================

func (s *Store) GetProfile(_ context.Context, customerID string) (*domain.CustomerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[customerID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}
	cp := *p
	return &cp, nil
}

func (s *Store) UpdateProfile(_ context.Context, customerID string, req *domain.UpdateProfileRequest) (*domain.CustomerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[customerID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "customer", ID: customerID}
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Email != "" {
		p.Email = req.Email
	}
	if req.Phone != "" {
		p.Phone = req.Phone
	}
	cp := *p
	return &cp, nil
}

// ============================================================
// TransactionStore
// ============================================================

func (s *Store) ListTransactions(_ context.Context, customerID string) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txns := s.transactions[customerID]
	out := make([]domain.Transaction, len(txns))
	copy(out, txns)
	return out, nil
}

// ============================================================
// AuthStore
// ============================================================

func (s *Store) GetCredentialByEmail(_ context.Context, email string) (*domain.AuthCredential, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.credentials[email]
	if !ok {
		return nil, nil // absent is not an error; the service decides
	}
	cc := *c
	return &cc, nil
}

func (s *Store) CreateCustomer(_ context.Context, profile *domain.CustomerProfile, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[profile.Email]; exists {
		return &domain.ErrConflict{Message: "email already registered"}
	}
	p := *profile
	s.profiles[profile.CustomerID] = &p
	s.credentials[profile.Email] = &domain.AuthCredential{
		CustomerID:   profile.CustomerID,
		Email:        profile.Email,
		PasswordHash: passwordHash,
	}
	return nil
}

func (s *Store) StoreRefreshToken(_ context.Context, customerID, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.refreshTokens[tokenHash] = &domain.RefreshTokenRecord{
		TokenHash:  tokenHash,
		CustomerID: customerID,
		ExpiresAt:  expiresAt,
	}
	return nil
}

func (s *Store) GetRefreshToken(_ context.Context, tokenHash string) (*domain.RefreshTokenRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.refreshTokens[tokenHash]
	if !ok {
		return nil, nil
	}
	rr := *r
	return &rr, nil
}

func (s *Store) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.refreshTokens, tokenHash)
	return nil
}

func (s *Store) RevokeAllRefreshTokens(_ context.Context, customerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for hash, rec := range s.refreshTokens {
		if rec.CustomerID == customerID {
			delete(s.refreshTokens, hash)
		}
	}
	return nil
}
