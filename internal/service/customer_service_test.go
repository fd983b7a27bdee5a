package service_test

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/madpay/madpay-api/internal/catalog"
	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/infra/cache"
	"github.com/madpay/madpay-api/internal/infra/memstore"
	"github.com/madpay/madpay-api/internal/infra/observability"
	"github.com/madpay/madpay-api/internal/service"
)

func newCustomerService() (*service.CustomerService, *memstore.Store) {
	store := memstore.NewSeeded()
	svc := service.NewCustomerService(
		store, store,
		catalog.Default(),
		cache.New[*domain.CustomerProfile](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	return svc, store
}

func TestGetProfile_CachesSecondRead(t *testing.T) {
	store := memstore.NewSeeded()
	c := cache.New[*domain.CustomerProfile](time.Minute)
	svc := service.NewCustomerService(store, store, catalog.Default(), c, observability.NewMetrics(), zap.NewNop())
	ctx := context.Background()

	if _, err := svc.GetProfile(ctx, memstore.DemoCustomerID); err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("cache Len() = %d, want 1", c.Len())
	}

	// mutate the store underneath; cached read must still serve the old value
	_, _ = store.UpdateProfile(ctx, memstore.DemoCustomerID, &domain.UpdateProfileRequest{Name: "Changed"})
	p, err := svc.GetProfile(ctx, memstore.DemoCustomerID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.Name != "AAA BBB" {
		t.Errorf("Name = %q, want cached %q", p.Name, "AAA BBB")
	}
}

func TestUpdateProfile_InvalidatesCache(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	_, _ = svc.GetProfile(ctx, memstore.DemoCustomerID) // warm the cache

	if _, err := svc.UpdateProfile(ctx, memstore.DemoCustomerID, &domain.UpdateProfileRequest{Name: "New Name"}); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	p, err := svc.GetProfile(ctx, memstore.DemoCustomerID)
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if p.Name != "New Name" {
		t.Errorf("Name = %q, want %q after invalidation", p.Name, "New Name")
	}
}

func TestListTransactions_Filters(t *testing.T) {
	svc, _ := newCustomerService()
	ctx := context.Background()

	tests := []struct {
		name   string
		filter service.TransactionFilter
		want   int
	}{
		{"no filter", service.TransactionFilter{}, 8},
		{"incoming only", service.TransactionFilter{Type: domain.TransactionIncoming}, 3},
		{"outgoing only", service.TransactionFilter{Type: domain.TransactionOutgoing}, 5},
		{"failed only", service.TransactionFilter{Status: domain.TransactionFailed}, 1},
		{"limit", service.TransactionFilter{Limit: 3}, 3},
		{"incoming success", service.TransactionFilter{Type: domain.TransactionIncoming, Status: domain.TransactionSuccess}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txns, err := svc.ListTransactions(ctx, memstore.DemoCustomerID, tt.filter)
			if err != nil {
				t.Fatalf("ListTransactions() error = %v", err)
			}
			if len(txns) != tt.want {
				t.Errorf("len = %d, want %d", len(txns), tt.want)
			}
		})
	}
}

func TestGetDashboard_Aggregates(t *testing.T) {
	svc, _ := newCustomerService()

	d, err := svc.GetDashboard(context.Background(), memstore.DemoCustomerID)
	if err != nil {
		t.Fatalf("GetDashboard() error = %v", err)
	}
	if d.Profile == nil || d.Profile.CustomerID != memstore.DemoCustomerID {
		t.Fatalf("Profile = %+v", d.Profile)
	}
	if d.Balance != 520.00 {
		t.Errorf("Balance = %v, want 520.00", d.Balance)
	}
	if len(d.RecentTransactions) != 5 {
		t.Errorf("len(RecentTransactions) = %d, want 5", len(d.RecentTransactions))
	}
	if len(d.PopularMethods) == 0 {
		t.Error("PopularMethods empty")
	}
	for _, m := range d.PopularMethods {
		if !m.IsPopular || !m.IsAvailable {
			t.Errorf("method %q in popular list with popular=%v available=%v", m.ID, m.IsPopular, m.IsAvailable)
		}
	}
	// successful rows only: 50 + 3000 + 25 in; 120 + 150 + 85.75 out
	if d.TotalIn != 3075 {
		t.Errorf("TotalIn = %v, want 3075", d.TotalIn)
	}
	if d.TotalOut != 355.75 {
		t.Errorf("TotalOut = %v, want 355.75", d.TotalOut)
	}
}

func TestGetDashboard_UnknownCustomer(t *testing.T) {
	svc, _ := newCustomerService()

	if _, err := svc.GetDashboard(context.Background(), "cust-unknown"); err == nil {
		t.Fatal("GetDashboard() error = nil, want not found")
	}
}
