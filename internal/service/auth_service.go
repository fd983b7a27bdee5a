package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/madpay/madpay-api/internal/domain"
	"github.com/madpay/madpay-api/internal/port"
)

var authTracer = otel.Tracer("service/auth")

const bcryptCost = 12

// AuthService implements the mock auth flow: registration, login,
// refresh rotation and logout. Tokens are real JWTs so the frontend
// exercises a production-shaped flow, but nothing in the payment core
// enforces them.
type AuthService struct {
	store      port.AuthStore
	profiles   port.ProfileStore
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *zap.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(store port.AuthStore, profiles port.ProfileStore, jwtSecret string, accessTTL, refreshTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		store:      store,
		profiles:   profiles,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// Register creates a new customer with credentials.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if req.Email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	if len(req.Password) < 8 {
		return nil, &domain.ErrValidation{Field: "password", Message: "password must be at least 8 characters"}
	}

	existing, err := s.store.GetCredentialByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing credential: %w", err)
	}
	if existing != nil {
		return nil, &domain.ErrConflict{Message: "email already registered"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	profile := &domain.CustomerProfile{
		CustomerID: "cust-" + uuid.NewString(),
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Language:   "en",
		Balance:    0,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.CreateCustomer(ctx, profile, string(hash)); err != nil {
		return nil, err
	}

	s.logger.Info("customer registered",
		zap.String("customer_id", profile.CustomerID),
		zap.String("email", req.Email),
	)

	return &domain.RegisterResponse{
		CustomerID: profile.CustomerID,
		Name:       profile.Name,
		Email:      profile.Email,
		Message:    "Account created successfully",
	}, nil
}

// Login verifies credentials and issues a token pair.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	cred, err := s.store.GetCredentialByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}
	if cred == nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid email or password"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("login: failed password attempt", zap.String("customer_id", cred.CustomerID))
		return nil, &domain.ErrUnauthorized{Message: "Invalid email or password"}
	}

	return s.issueTokens(ctx, cred.CustomerID, cred.Email)
}

// Refresh rotates a refresh token and issues a new pair. The presented
// token is revoked whether or not rotation succeeds.
func (s *AuthService) Refresh(ctx context.Context, req *domain.RefreshRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Refresh")
	defer span.End()

	tokenHash := hashToken(req.RefreshToken)

	stored, err := s.store.GetRefreshToken(ctx, tokenHash)
	if err != nil {
		return nil, fmt.Errorf("get refresh token: %w", err)
	}
	if stored == nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid refresh token"}
	}
	if stored.ExpiresAt.Before(time.Now()) {
		s.logger.Warn("refresh: expired token used", zap.String("customer_id", stored.CustomerID))
		_ = s.store.RevokeRefreshToken(ctx, tokenHash)
		return nil, &domain.ErrUnauthorized{Message: "Refresh token expired"}
	}

	// rotation
	_ = s.store.RevokeRefreshToken(ctx, tokenHash)

	return s.issueTokens(ctx, stored.CustomerID, "")
}

// Logout revokes every refresh token for the customer.
func (s *AuthService) Logout(ctx context.Context, customerID string) error {
	ctx, span := authTracer.Start(ctx, "AuthService.Logout")
	defer span.End()

	if err := s.store.RevokeAllRefreshTokens(ctx, customerID); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	s.logger.Info("customer logged out", zap.String("customer_id", customerID))
	return nil
}

// JWTClaims are the custom claims carried by access tokens.
type JWTClaims struct {
	Sub   string `json:"sub"`
	Email string `json:"email,omitempty"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// ValidateAccessToken parses and verifies an access token. Used by the
// auth middleware.
func (s *AuthService) ValidateAccessToken(tokenString string) (*JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, &domain.ErrUnauthorized{Message: "Invalid or expired token"}
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token"}
	}
	if claims.Type != "access" {
		return nil, &domain.ErrUnauthorized{Message: "Invalid token type"}
	}
	return claims, nil
}

func (s *AuthService) issueTokens(ctx context.Context, customerID, email string) (*domain.LoginResponse, error) {
	accessToken, err := s.signAccessToken(customerID, email)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken, refreshHash, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}
	if err := s.store.StoreRefreshToken(ctx, customerID, refreshHash, time.Now().Add(s.refreshTTL)); err != nil {
		return nil, fmt.Errorf("store refresh token: %w", err)
	}

	// best-effort display name
	name := ""
	if profile, err := s.profiles.GetProfile(ctx, customerID); err == nil {
		name = profile.Name
	}

	return &domain.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.accessTTL.Seconds()),
		CustomerID:   customerID,
		Name:         name,
	}, nil
}

func (s *AuthService) signAccessToken(customerID, email string) (string, error) {
	now := time.Now()
	claims := JWTClaims{
		Sub:   customerID,
		Email: email,
		Type:  "access",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
			Issuer:    "madpay-api",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

func (s *AuthService) generateRefreshToken() (raw string, hashed string, err error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", "", err
	}
	raw = hex.EncodeToString(b)
	hashed = hashToken(raw)
	return raw, hashed, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}
