package repository

import (
	"context"
	"time"

	"github.com/homevista/homevista-backend/internal/domain"
)

// SessionRepository defines storage operations for authenticated sessions
type SessionRepository interface {
	// Create stores a session with the given time to live
	Create(ctx context.Context, session *domain.Session, ttl time.Duration) error
	// GetByRefreshToken retrieves a session by its refresh token,
	// (nil, nil) when not found or expired out of the store
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	// Delete removes a session by its refresh token
	Delete(ctx context.Context, refreshToken string) error
	// DeleteByUserID removes all sessions for a user
	DeleteByUserID(ctx context.Context, userID string) error
}
