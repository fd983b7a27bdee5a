package domain

import "time"

// CustomerProfile is the demo customer record backing the profile and
// dashboard screens.
type CustomerProfile struct {
	CustomerID string    `json:"customerId"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Language   string    `json:"language"`
	Balance    float64   `json:"balance"`
	CreatedAt  time.Time `json:"createdAt"`
}

// UpdateProfileRequest carries partial profile edits. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Dashboard aggregates everything the home screen renders in one call.
type Dashboard struct {
	Profile            *CustomerProfile `json:"profile"`
	Balance            float64          `json:"balance"`
	PopularMethods     []PaymentMethod  `json:"popularMethods"`
	RecentTransactions []Transaction    `json:"recentTransactions"`
	TotalIn            float64          `json:"totalIn"`
	TotalOut           float64          `json:"totalOut"`
}

// SuccessResponse is a generic acknowledgement payload.
type SuccessResponse struct {
	Message string `json:"message"`
}
