package service

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/port"
)

const profileCacheName = "profile"

// TransactionFilter narrows a history listing. Zero values mean "no
// filter"; Limit <= 0 returns everything.
type TransactionFilter struct {
	Type   string
	Status string
	Limit  int
}

// CustomerService serves profile, history and dashboard reads.
type CustomerService struct {
	profiles     port.ProfileStore
	transactions port.TransactionStore
	catalog      *catalog.Catalog
	cache        port.Cache[*domain.CustomerProfile]
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewCustomerService creates a CustomerService.
func NewCustomerService(
	profiles port.ProfileStore,
	transactions port.TransactionStore,
	cat *catalog.Catalog,
	cache port.Cache[*domain.CustomerProfile],
	metrics *observability.Metrics,
	logger *zap.Logger,
) *CustomerService {
	return &CustomerService{
		profiles:     profiles,
		transactions: transactions,
		catalog:      cat,
		cache:        cache,
		metrics:      metrics,
		logger:       logger,
	}
}

// GetProfile returns the customer profile, cached with a short TTL.
func (s *CustomerService) GetProfile(ctx context.Context, customerID string) (*domain.CustomerProfile, error) {
	if cached, ok := s.cache.Get(customerID); ok {
		s.metrics.IncrCacheHit(profileCacheName)
		return cached, nil
	}
	s.metrics.IncrCacheMiss(profileCacheName)

	profile, err := s.profiles.GetProfile(ctx, customerID)
	if err != nil {
		return nil, err
	}
	s.cache.Set(customerID, profile)
	return profile, nil
}

// UpdateProfile applies a partial edit and invalidates the cache entry.
func (s *CustomerService) UpdateProfile(ctx context.Context, customerID string, req *domain.UpdateProfileRequest) (*domain.CustomerProfile, error) {
	profile, err := s.profiles.UpdateProfile(ctx, customerID, req)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(customerID)
	s.logger.Info("profile updated", zap.String("customer_id", customerID))
	return profile, nil
}

// ListTransactions returns the customer's history, newest first as
// seeded, optionally filtered by direction and status.
func (s *CustomerService) ListTransactions(ctx context.Context, customerID string, filter TransactionFilter) ([]domain.Transaction, error) {
	txns, err := s.transactions.ListTransactions(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := txns[:0:0]
	for _, tx := range txns {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Status != "" && tx.Status != filter.Status {
			continue
		}
		out = append(out, tx)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	if out == nil {
		out = []domain.Transaction{}
	}
	return out, nil
}

// dashboardRecentLimit caps the transaction rows on the home screen.
const dashboardRecentLimit = 5

// GetDashboard aggregates everything the home screen needs in one
// call, fanning out the reads concurrently.
func (s *CustomerService) GetDashboard(ctx context.Context, customerID string) (*domain.Dashboard, error) {
	var (
		profile *domain.CustomerProfile
		txns    []domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profile, err = s.GetProfile(gctx, customerID)
		return err
	})
	g.Go(func() error {
		var err error
		txns, err = s.transactions.ListTransactions(gctx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalIn, totalOut float64
	for _, tx := range txns {
		if tx.Status != domain.TransactionSuccess {
			continue
		}
		switch tx.Type {
		case domain.TransactionIncoming:
			totalIn += tx.Amount
		case domain.TransactionOutgoing:
			totalOut += tx.Amount
		}
	}

	recent := txns
	if len(recent) > dashboardRecentLimit {
		recent = recent[:dashboardRecentLimit]
	}

	return &domain.Dashboard{
		Profile:            profile,
		Balance:            profile.Balance,
		PopularMethods:     s.catalog.Popular(),
		RecentTransactions: recent,
		TotalIn:            totalIn,
		TotalOut:           totalOut,
	}, nil
}
