package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

func TestAuthHandler_Login_Success(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.User, error) {
			if email != "rachid@example.com" || password != "secret123" {
				t.Errorf("unexpected credentials %q / %q", email, password)
			}
			return "signed.jwt.token", &domain.User{ID: "user-1", Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(auth)

	body := `{"email":"rachid@example.com","password":"secret123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, rec := newTestContext(t, req, false)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Token string       `json:"token"`
		User  *domain.User `json:"user"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Token != "signed.jwt.token" {
		t.Errorf("token: got %q", resp.Token)
	}
	if resp.User == nil || resp.User.Email != "rachid@example.com" {
		t.Errorf("user: got %+v", resp.User)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("response must not carry password material")
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	auth := &stubAuthService{
		loginFn: func(context.Context, string, string) (string, *domain.User, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(auth)

	body := `{"email":"rachid@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c, _ := newTestContext(t, req, false)

	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for the error handler, got %v", err)
	}
}

func TestAuthHandler_Login_MalformedPayload(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	cases := []struct {
		name string
		body string
	}{
		{"missing password", `{"email":"rachid@example.com"}`},
		{"bad email", `{"email":"not-an-email","password":"secret123"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tc.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			c, _ := newTestContext(t, req, false)

			err := h.Login(c)
			var httpErr *echo.HTTPError
			if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestAuthHandler_Me(t *testing.T) {
	auth := &stubAuthService{
		currentUserFn: func(_ context.Context, userID string) (*domain.User, error) {
			if userID != "user-1" {
				t.Errorf("unexpected user id %q", userID)
			}
			return &domain.User{ID: userID, Email: "rachid@example.com", Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(auth)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c, rec := newTestContext(t, req, true)

	if err := h.Me(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if user.ID != "user-1" {
		t.Errorf("user id: got %q", user.ID)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	c, _ := newTestContext(t, req, false)

	err := h.Me(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}
