package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
	"github.com/Rami23dz/insurance-claims-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn       func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentUserFn func(ctx context.Context, userID string) (*domain.User, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

type stubUserService struct {
	users     []*domain.User
	listErr   error
	created   *ports.CreateUserInput
	createErr error
	deleted   []string
	deleteErr error
}

func (s *stubUserService) List(context.Context) ([]*domain.User, error) {
	return s.users, s.listErr
}

func (s *stubUserService) Create(_ context.Context, input ports.CreateUserInput) (*domain.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.created = &input
	return &domain.User{ID: "user-1", Username: input.Username, Email: input.Email, Role: input.Role}, nil
}

func (s *stubUserService) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type stubDocumentService struct {
	uploadFn func(ctx context.Context, input ports.UploadDocumentInput, caller ports.Caller) (*domain.Document, error)
	listFn   func(ctx context.Context, caller ports.Caller) ([]*domain.Document, error)
	getFn    func(ctx context.Context, id string, caller ports.Caller) (*domain.Document, error)
	deleteFn func(ctx context.Context, id string, caller ports.Caller) error
}

func (s *stubDocumentService) Upload(ctx context.Context, input ports.UploadDocumentInput, caller ports.Caller) (*domain.Document, error) {
	return s.uploadFn(ctx, input, caller)
}

func (s *stubDocumentService) List(ctx context.Context, caller ports.Caller) ([]*domain.Document, error) {
	return s.listFn(ctx, caller)
}

func (s *stubDocumentService) Get(ctx context.Context, id string, caller ports.Caller) (*domain.Document, error) {
	return s.getFn(ctx, id, caller)
}

func (s *stubDocumentService) Delete(ctx context.Context, id string, caller ports.Caller) error {
	return s.deleteFn(ctx, id, caller)
}

type stubProcessorService struct {
	processFn func(ctx context.Context, documentID string, caller ports.Caller) (*domain.Document, error)
}

func (s *stubProcessorService) Process(ctx context.Context, documentID string, caller ports.Caller) (*domain.Document, error) {
	return s.processFn(ctx, documentID, caller)
}

var _ ports.AuthService = (*stubAuthService)(nil)
var _ ports.UserService = (*stubUserService)(nil)
var _ ports.DocumentService = (*stubDocumentService)(nil)
var _ ports.ProcessorService = (*stubProcessorService)(nil)

// newTestContext builds an echo context with the validator wired the way the
// router does it, plus the auth claims the middleware would have injected.
func newTestContext(t *testing.T, req *http.Request, authed bool) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if authed {
		c.Set("user_id", "user-1")
		c.Set("email", "rachid@example.com")
		c.Set("role", "user")
	}
	return c, rec
}
