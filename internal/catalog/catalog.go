// Package catalog holds the payment method registry for the Moroccan
// market and the fee calculator that reads it. The catalog is an
// explicit immutable value handed to the services that need it, so
// tests can substitute alternate catalogs.
package catalog

import (
	"github.com/madpay/madpay-api/internal/domain"
)

// Catalog is a read-only, declaration-ordered registry of payment
// methods. It is never mutated after construction, so it is safe to
// share across goroutines without locking.
type Catalog struct {
	methods []domain.PaymentMethod
	byID    map[string]int
}

// New builds a catalog from the given methods, preserving their order.
// Later duplicates of an id are ignored.
func New(methods []domain.PaymentMethod) *Catalog {
	c := &Catalog{
		methods: make([]domain.PaymentMethod, 0, len(methods)),
		byID:    make(map[string]int, len(methods)),
	}
	for _, m := range methods {
		if _, exists := c.byID[m.ID]; exists {
			continue
		}
		c.byID[m.ID] = len(c.methods)
		c.methods = append(c.methods, m)
	}
	return c
}

// Get returns the method for id. The second return value is false when
// no such id exists; callers must handle the absent case explicitly.
func (c *Catalog) Get(id string) (*domain.PaymentMethod, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	m := c.methods[idx]
	return &m, true
}

// Available returns all methods with IsAvailable set, in catalog order.
func (c *Catalog) Available() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, 0, len(c.methods))
	for _, m := range c.methods {
		if m.IsAvailable {
			out = append(out, m)
		}
	}
	return out
}

// Popular returns the methods that are both popular and available, in
// catalog order. Used for the homepage quick-access row.
func (c *Catalog) Popular() []domain.PaymentMethod {
	out := make([]domain.PaymentMethod, 0, len(c.methods))
	for _, m := range c.methods {
		if m.IsPopular && m.IsAvailable {
			out = append(out, m)
		}
	}
	return out
}

// Len returns the number of methods in the catalog.
func (c *Catalog) Len() int {
	return len(c.methods)
}

// Default returns the production catalog: the payment methods available
// in Morocco, ordered by popularity/frequency of use.
func Default() *Catalog {
	return New([]domain.PaymentMethod{
		{
			ID:          "card-visa-mastercard",
			Type:        domain.MethodTypeCard,
			Label:       "Debit Card",
			Description: "Visa or Mastercard",
			Icon:        "💳",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Enter your card number",
				"Provide expiration date and CVV",
				"Complete 3D Secure verification",
				"Transaction completed",
			},
			Fees: &domain.FeeSchedule{Percentage: 1.5, Fixed: 0},
		},
		{
			ID:          "bank-transfer",
			Type:        domain.MethodTypeBank,
			Label:       "Bank Transfer",
			Description: "Virement bancaire - Direct bank transfer",
			Icon:        "🏦",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Provide your IBAN (starts with MA)",
				"Confirm bank details",
				"Transfer reference will be provided",
				"Bank processing takes 1-2 business days",
			},
			// Fixed fee in MAD
			Fees: &domain.FeeSchedule{Percentage: 0, Fixed: 5},
		},
		{
			ID:          "wallet-inwi-orange",
			Type:        domain.MethodTypeWallet,
			Label:       "Mobile Wallet",
			Description: "Inwi Money / Orange Money",
			Icon:        "📱",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Enter your phone number",
				"Select your provider (Inwi/Orange)",
				"Confirm the USSD prompt on your phone",
				"Enter the verification code",
			},
			Fees: &domain.FeeSchedule{Percentage: 1, Fixed: 0},
		},
		{
			ID:          "cash-plus",
			Type:        domain.MethodTypeCashPlus,
			Label:       "Cash Plus",
			Description: "Moroccan cash payment network",
			Icon:        "💵",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Generate a payment voucher",
				"Visit any Cash Plus partner location",
				"Present the voucher and complete payment",
				"Receive confirmation receipt",
			},
			Fees: &domain.FeeSchedule{Percentage: 2, Fixed: 0},
		},
		{
			ID:          "cih-bank",
			Type:        domain.MethodTypeCIHBank,
			Label:       "CIH Bank Direct",
			Description: "Direct CIH Bank account transfer",
			Icon:        "🏛️",
			IsPopular:   false,
			IsAvailable: true,
			Instructions: []string{
				"Login with your CIH Bank credentials",
				"Select 'Make Payment' option",
				"Enter recipient and amount",
				"Confirm with your CIH security method",
			},
			Fees: &domain.FeeSchedule{Percentage: 0, Fixed: 0},
		},
		{
			ID:          "attijariwafa-bank",
			Type:        domain.MethodTypeAttijariwafaBank,
			Label:       "Attijariwafa Bank Direct",
			Description: "Direct Attijariwafa Bank account transfer",
			Icon:        "🏛️",
			IsPopular:   false,
			IsAvailable: true,
			Instructions: []string{
				"Login with your Attijariwafa Bank credentials",
				"Select 'Make Payment' option",
				"Enter recipient and amount",
				"Confirm with your bank security method",
			},
			Fees: &domain.FeeSchedule{Percentage: 0, Fixed: 0},
		},
		{
			ID:          "cod",
			Type:        domain.MethodTypeCOD,
			Label:       "Cash on Delivery",
			Description: "Pay when you receive",
			Icon:        "📦",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Confirm your delivery address",
				"Select 'Cash on Delivery' option",
				"Payment will be collected at delivery",
				"Keep your delivery receipt",
			},
			// Fixed fee in MAD
			Fees: &domain.FeeSchedule{Percentage: 0, Fixed: 20},
		},
		{
			ID:          "app-balance",
			Type:        domain.MethodTypeAppBalance,
			Label:       "App Balance",
			Description: "Use your in-app wallet",
			Icon:        "💰",
			IsPopular:   true,
			IsAvailable: true,
			Instructions: []string{
				"Check your available balance",
				"Confirm the transaction amount",
				"Enter your app PIN or biometric",
				"Transaction completed instantly",
			},
			Fees: &domain.FeeSchedule{Percentage: 0, Fixed: 0},
		},
	})
}
