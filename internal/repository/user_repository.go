package repository

import (
	"context"

	"github.com/homevista/homevista-backend/internal/domain"
)

// UserRepository defines storage operations for users
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *domain.User) error
	// GetByID retrieves a user by ID, (nil, nil) when not found
	GetByID(ctx context.Context, id string) (*domain.User, error)
	// GetByEmail retrieves a user by email, (nil, nil) when not found
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// ExistsByEmail checks if a user exists with the given email
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// GetRole retrieves only the role column for a user, ("", nil) when
	// the user does not exist
	GetRole(ctx context.Context, id string) (domain.Role, error)
	// Count returns the total number of users
	Count(ctx context.Context) (int64, error)
}
