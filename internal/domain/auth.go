package domain

import "time"

// RegisterRequest creates a new demo customer with credentials.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterResponse acknowledges a successful registration.
type RegisterResponse struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}

// LoginRequest authenticates with email + password.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the token pair for the session.
type LoginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int    `json:"expiresIn"`
	CustomerID   string `json:"customerId"`
	Name         string `json:"name"`
}

// RefreshRequest rotates a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthCredential is the stored credential record for a customer.
type AuthCredential struct {
	CustomerID   string
	Email        string
	PasswordHash string
}

// RefreshTokenRecord is a stored (hashed) refresh token.
type RefreshTokenRecord struct {
	TokenHash  string
	CustomerID string
	ExpiresAt  time.Time
}
