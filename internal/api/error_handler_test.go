package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

func handleError(t *testing.T, err error) (int, string) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/documents", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body struct {
		Message string `json:"message"`
	}
	if decodeErr := json.Unmarshal(rec.Body.Bytes(), &body); decodeErr != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), decodeErr)
	}
	return rec.Code, body.Message
}

func TestHTTPErrorHandler_DomainErrors(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Token is not valid"},
		{"access denied", domain.ErrAccessDenied, http.StatusForbidden, "Access denied"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"user exists", domain.ErrUserExists, http.StatusConflict, "User already exists"},
		{"document not found", domain.ErrDocumentNotFound, http.StatusNotFound, "Document not found"},
		{"document not pending", domain.ErrDocumentNotPending, http.StatusConflict, "Document is already being processed or is finished"},
		{"validation", domain.ErrValidation, http.StatusBadRequest, domain.ErrValidation.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, message := handleError(t, tc.err)
			if code != tc.code {
				t.Errorf("code: got %d, want %d", code, tc.code)
			}
			if message != tc.message {
				t.Errorf("message: got %q, want %q", message, tc.message)
			}
		})
	}
}

func TestHTTPErrorHandler_WrappedDomainError(t *testing.T) {
	wrapped := fmt.Errorf("%w: pdf has no xref table", domain.ErrExtractionFailed)
	code, message := handleError(t, wrapped)
	if code != http.StatusInternalServerError {
		t.Errorf("code: got %d", code)
	}
	if message != wrapped.Error() {
		t.Errorf("message: got %q, want %q", message, wrapped.Error())
	}
}

func TestHTTPErrorHandler_EchoHTTPError(t *testing.T) {
	code, message := handleError(t, echo.NewHTTPError(http.StatusUnauthorized, "No token, authorization denied"))
	if code != http.StatusUnauthorized {
		t.Errorf("code: got %d", code)
	}
	if message != "No token, authorization denied" {
		t.Errorf("message: got %q", message)
	}
}

func TestHTTPErrorHandler_UnknownErrorIsGeneric(t *testing.T) {
	code, message := handleError(t, errors.New("mongo: socket closed"))
	if code != http.StatusInternalServerError {
		t.Errorf("code: got %d", code)
	}
	if message != "Server error" {
		t.Errorf("internal cause must not leak, got %q", message)
	}
}
