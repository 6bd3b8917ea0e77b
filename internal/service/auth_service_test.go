package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/logger"
)

func testAuthConfig() *AuthServiceConfig {
	return &AuthServiceConfig{
		JWTSecret:          "test-secret-key",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		BcryptCost:         bcrypt.MinCost, // fast hashing in tests
	}
}

// memoryUserRepo backs the mock with an in-memory map for flows that need
// real create-then-read behavior
func memoryUserRepo() (*MockUserRepository, map[string]*domain.User) {
	users := make(map[string]*domain.User)
	byEmail := make(map[string]*domain.User)
	repo := &MockUserRepository{
		CreateFunc: func(ctx context.Context, u *domain.User) error {
			users[u.ID] = u
			byEmail[u.Email] = u
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return users[id], nil
		},
		GetByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return byEmail[email], nil
		},
		ExistsByEmailFunc: func(ctx context.Context, email string) (bool, error) {
			_, ok := byEmail[email]
			return ok, nil
		},
	}
	return repo, users
}

func memorySessionRepo() *MockSessionRepository {
	sessions := make(map[string]*domain.Session)
	return &MockSessionRepository{
		CreateFunc: func(ctx context.Context, s *domain.Session, ttl time.Duration) error {
			sessions[s.RefreshToken] = s
			return nil
		},
		GetByRefreshTokenFunc: func(ctx context.Context, token string) (*domain.Session, error) {
			return sessions[token], nil
		},
		DeleteFunc: func(ctx context.Context, token string) error {
			delete(sessions, token)
			return nil
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	userRepo, _ := memoryUserRepo()
	svc := NewAuthService(userRepo, memorySessionRepo(), NewAuthBroker(), testAuthConfig(), logger.NewNop())

	t.Run("successful registration", func(t *testing.T) {
		resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "test@example.com",
			Password: "Password1!",
			Name:     "Test User",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, "test@example.com", resp.User.Email)
		assert.Equal(t, "user", resp.User.Role)
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), &dto.RegisterRequest{
			Email:    "test@example.com",
			Password: "Password2!",
			Name:     "Another User",
		})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	userRepo, _ := memoryUserRepo()
	broker := NewAuthBroker()
	svc := NewAuthService(userRepo, memorySessionRepo(), broker, testAuthConfig(), logger.NewNop())

	hashed, _ := bcrypt.GenerateFromPassword([]byte("Password1!"), bcrypt.MinCost)
	user := &domain.User{
		ID:           "user-1",
		Email:        "login@example.com",
		PasswordHash: string(hashed),
		Name:         "Login Test",
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	_ = userRepo.CreateFunc(context.Background(), user)

	t.Run("successful login publishes signed-in event", func(t *testing.T) {
		sub := broker.Subscribe()
		defer sub.Unsubscribe()

		resp, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "Password1!",
		}, "Test-Agent", "127.0.0.1")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)

		select {
		case event := <-sub.C:
			assert.Equal(t, AuthEventSignedIn, event.Type)
			assert.Equal(t, "user-1", event.Session.UserID)
		case <-time.After(time.Second):
			t.Fatal("no auth event published on login")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "login@example.com",
			Password: "WrongPassword1!",
		}, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("non-existent user", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "missing@example.com",
			Password: "Password1!",
		}, "", "")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		inactive := &domain.User{
			ID:           "user-2",
			Email:        "inactive@example.com",
			PasswordHash: string(hashed),
			Role:         domain.RoleUser,
			IsActive:     false,
		}
		_ = userRepo.CreateFunc(context.Background(), inactive)

		_, err := svc.Login(context.Background(), &dto.LoginRequest{
			Email:    "inactive@example.com",
			Password: "Password1!",
		}, "", "")
		assert.ErrorIs(t, err, ErrUserInactive)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo, _ := memoryUserRepo()
	svc := NewAuthService(userRepo, memorySessionRepo(), NewAuthBroker(), testAuthConfig(), logger.NewNop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "refresh@example.com",
		Password: "Password1!",
		Name:     "Refresh Test",
	})
	require.NoError(t, err)

	t.Run("rotates the refresh token", func(t *testing.T) {
		refreshed, err := svc.RefreshToken(context.Background(), resp.RefreshToken)
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)
		assert.NotEqual(t, resp.RefreshToken, refreshed.RefreshToken)

		// The old token is gone after rotation
		_, err = svc.RefreshToken(context.Background(), resp.RefreshToken)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.RefreshToken(context.Background(), "no-such-token")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestAuthService_Logout(t *testing.T) {
	userRepo, _ := memoryUserRepo()
	broker := NewAuthBroker()
	svc := NewAuthService(userRepo, memorySessionRepo(), broker, testAuthConfig(), logger.NewNop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "logout@example.com",
		Password: "Password1!",
		Name:     "Logout Test",
	})
	require.NoError(t, err)

	sub := broker.Subscribe()
	defer sub.Unsubscribe()

	require.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))

	select {
	case event := <-sub.C:
		assert.Equal(t, AuthEventSignedOut, event.Type)
	case <-time.After(time.Second):
		t.Fatal("no auth event published on logout")
	}

	// Logging out an already-dead session is a no-op, not an error
	assert.NoError(t, svc.Logout(context.Background(), resp.RefreshToken))
}

func TestAuthService_ValidateToken(t *testing.T) {
	userRepo, _ := memoryUserRepo()
	svc := NewAuthService(userRepo, memorySessionRepo(), NewAuthBroker(), testAuthConfig(), logger.NewNop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "validate@example.com",
		Password: "Password1!",
		Name:     "Validate Test",
	})
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		claims, err := svc.ValidateToken(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "validate@example.com", claims.Email)
		assert.NotEmpty(t, claims.UserID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateToken(context.Background(), "not-a-jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_ResolveSession(t *testing.T) {
	userRepo, users := memoryUserRepo()
	svc := NewAuthService(userRepo, memorySessionRepo(), NewAuthBroker(), testAuthConfig(), logger.NewNop())

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "resolve@example.com",
		Password: "Password1!",
		Name:     "Resolve Test",
	})
	require.NoError(t, err)

	t.Run("valid session resolves to the role on the user row", func(t *testing.T) {
		resolution, err := svc.ResolveSession(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateAuthorized, resolution.State)
		assert.Equal(t, domain.RoleUser, resolution.Role)
		assert.False(t, resolution.IsAdmin())
	})

	t.Run("role change takes effect without a new token", func(t *testing.T) {
		users[resp.User.ID].Role = domain.RoleAdmin

		resolution, err := svc.ResolveSession(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.True(t, resolution.IsAdmin())

		users[resp.User.ID].Role = domain.RoleUser
	})

	t.Run("role lookup failure settles RoleUnknown, not error", func(t *testing.T) {
		failing := &MockUserRepository{
			GetByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
				return nil, errors.New("connection reset")
			},
		}
		failingSvc := NewAuthService(failing, memorySessionRepo(), NewAuthBroker(), testAuthConfig(), logger.NewNop())

		// Reuse the token signed with the same secret
		resolution, err := failingSvc.ResolveSession(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateRoleUnknown, resolution.State)
		assert.Equal(t, resp.User.ID, resolution.UserID)
		assert.False(t, resolution.IsAdmin())
	})

	t.Run("deleted user settles RoleUnknown", func(t *testing.T) {
		user := users[resp.User.ID]
		delete(users, resp.User.ID)
		defer func() { users[resp.User.ID] = user }()

		resolution, err := svc.ResolveSession(context.Background(), resp.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, StateRoleUnknown, resolution.State)
	})

	t.Run("invalid token is an error", func(t *testing.T) {
		_, err := svc.ResolveSession(context.Background(), "garbage")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
