package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/madpay/madpay-api/internal/domain"
)

func registerAndLogin(t *testing.T, router http.Handler) *domain.LoginResponse {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", domain.RegisterRequest{
		Name:     "Flow User",
		Email:    "flow@example.com",
		Phone:    "+212 61111111",
		Password: "long-enough-pass",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, router, http.MethodPost, "/v1/auth/login", domain.LoginRequest{
		Email:    "flow@example.com",
		Password: "long-enough-pass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d, body = %s", rec.Code, rec.Body.String())
	}

	var login domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	return &login
}

func TestAuthFlow_RegisterLoginRefreshLogout(t *testing.T) {
	router := newTestRouter(alwaysApprove)
	login := registerAndLogin(t, router)

	// refresh rotates the pair
	rec := doJSON(t, router, http.MethodPost, "/v1/auth/refresh", domain.RefreshRequest{
		RefreshToken: login.RefreshToken,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh = %d, body = %s", rec.Code, rec.Body.String())
	}
	var refreshed domain.LoginResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &refreshed); err != nil {
		t.Fatalf("decode refresh: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh token not rotated")
	}

	// logout requires the bearer token
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+refreshed.AccessToken)
	out := httptest.NewRecorder()
	router.ServeHTTP(out, req)
	if out.Code != http.StatusNoContent {
		t.Fatalf("logout = %d, want 204", out.Code)
	}

	// the rotated refresh token is dead after logout
	rec = doJSON(t, router, http.MethodPost, "/v1/auth/refresh", domain.RefreshRequest{
		RefreshToken: refreshed.RefreshToken,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("refresh after logout = %d, want 401", rec.Code)
	}
}

func TestAuthFlow_LoginBadPassword(t *testing.T) {
	router := newTestRouter(alwaysApprove)
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/login", domain.LoginRequest{
		Email:    "flow@example.com",
		Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("login = %d, want 401", rec.Code)
	}
}

func TestAuthFlow_DuplicateRegister(t *testing.T) {
	router := newTestRouter(alwaysApprove)
	registerAndLogin(t, router)

	rec := doJSON(t, router, http.MethodPost, "/v1/auth/register", domain.RegisterRequest{
		Name:     "Clone",
		Email:    "flow@example.com",
		Password: "another-long-pass",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("register = %d, want 409", rec.Code)
	}
}

func TestUpdateProfile_WithToken(t *testing.T) {
	router := newTestRouter(alwaysApprove)
	login := registerAndLogin(t, router)

	req := httptest.NewRequest(http.MethodPut,
		fmt.Sprintf("/v1/customers/%s/profile", login.CustomerID),
		jsonBody(t, domain.UpdateProfileRequest{Name: "Renamed User"}))
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("update = %d, body = %s", rec.Code, rec.Body.String())
	}
	var p domain.CustomerProfile
	if err := json.Unmarshal(rec.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Name != "Renamed User" {
		t.Errorf("Name = %q", p.Name)
	}
}

func TestUpdateProfile_ForeignCustomerForbidden(t *testing.T) {
	router := newTestRouter(alwaysApprove)
	login := registerAndLogin(t, router)

	req := httptest.NewRequest(http.MethodPut, "/v1/customers/cust-demo-001/profile",
		jsonBody(t, domain.UpdateProfileRequest{Name: "Hijack"}))
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("update = %d, want 403", rec.Code)
	}
}
