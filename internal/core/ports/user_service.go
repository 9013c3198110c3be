package ports

import (
	"context"

	"github.com/Rami23dz/insurance-claims-api/internal/core/domain"
)

// CreateUserInput carries the data needed to create a user account.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     domain.Role
}

// UserService defines admin-only user management operations.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
