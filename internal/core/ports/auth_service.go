package ports

import (
	"context"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// AuthService implements login and token-holder lookup.
type AuthService interface {
	// Login verifies the credentials and returns a signed token plus the user.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// CurrentUser resolves the account behind a validated token's subject.
	CurrentUser(ctx context.Context, userID string) (*domain.User, error)
}
