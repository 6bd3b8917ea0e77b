package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/logger"
)

func activeSession(userID, email string) *domain.Session {
	return &domain.Session{
		ID:        "session-1",
		UserID:    userID,
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestResolver_InitialState(t *testing.T) {
	r := NewResolver(&MockSessionGateway{}, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
	defer r.Close()

	snapshot := r.Snapshot()
	assert.Equal(t, StateUnresolved, snapshot.State)
	assert.True(t, snapshot.Loading)
}

func TestResolver_ResolvesAdmin(t *testing.T) {
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return activeSession("user-1", "admin@example.com"), nil
		},
	}
	users := &MockUserRepository{
		GetRoleFunc: func(ctx context.Context, id string) (domain.Role, error) {
			return domain.RoleAdmin, nil
		},
	}

	r := NewResolver(gateway, users, NewAuthBroker(), logger.NewNop())
	defer r.Close()
	r.Start(context.Background())

	snapshot := r.Snapshot()
	assert.Equal(t, StateAuthorized, snapshot.State)
	assert.False(t, snapshot.Loading)
	assert.Equal(t, "user-1", snapshot.UserID)
	assert.Equal(t, domain.RoleAdmin, snapshot.Role)
}

func TestResolver_NoSessionSettlesAnonymous(t *testing.T) {
	r := NewResolver(&MockSessionGateway{}, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
	defer r.Close()
	r.Start(context.Background())

	snapshot := r.Snapshot()
	assert.Equal(t, StateAnonymous, snapshot.State)
	assert.Empty(t, snapshot.UserID)
}

func TestResolver_SessionFetchErrorSettlesAnonymous(t *testing.T) {
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return nil, errors.New("connection refused")
		},
	}

	r := NewResolver(gateway, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
	defer r.Close()
	r.Start(context.Background())

	assert.Equal(t, StateAnonymous, r.Snapshot().State)
}

func TestResolver_ExpiredSessionSettlesAnonymous(t *testing.T) {
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			s := activeSession("user-1", "a@example.com")
			s.ExpiresAt = time.Now().Add(-time.Minute)
			return s, nil
		},
	}

	r := NewResolver(gateway, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
	defer r.Close()
	r.Start(context.Background())

	assert.Equal(t, StateAnonymous, r.Snapshot().State)
}

func TestResolver_RoleLookupFailureDeniesByDefault(t *testing.T) {
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return activeSession("user-1", "a@example.com"), nil
		},
	}

	t.Run("lookup error", func(t *testing.T) {
		users := &MockUserRepository{
			GetRoleFunc: func(ctx context.Context, id string) (domain.Role, error) {
				return "", errors.New("query timeout")
			},
		}

		r := NewResolver(gateway, users, NewAuthBroker(), logger.NewNop())
		defer r.Close()
		r.Start(context.Background())

		snapshot := r.Snapshot()
		assert.Equal(t, StateRoleUnknown, snapshot.State)
		// Identity survives the failed lookup, authorization does not
		assert.Equal(t, "user-1", snapshot.UserID)
		assert.Empty(t, snapshot.Role)
	})

	t.Run("missing user row", func(t *testing.T) {
		r := NewResolver(gateway, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
		defer r.Close()
		r.Start(context.Background())

		assert.Equal(t, StateRoleUnknown, r.Snapshot().State)
	})
}

func TestResolver_ReResolvesOnAuthEvent(t *testing.T) {
	var role domain.Role = "" // starts unresolvable
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return activeSession("user-1", "a@example.com"), nil
		},
	}
	users := &MockUserRepository{
		GetRoleFunc: func(ctx context.Context, id string) (domain.Role, error) {
			return role, nil
		},
	}

	broker := NewAuthBroker()
	r := NewResolver(gateway, users, broker, logger.NewNop())
	defer r.Close()
	r.Start(context.Background())

	require.Equal(t, StateRoleUnknown, r.Snapshot().State)

	// Drain the updates emitted by the initial resolution
	for len(r.Updates()) > 0 {
		<-r.Updates()
	}

	role = domain.RoleUser
	broker.Publish(AuthEvent{Type: AuthEventTokenRefreshed})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snapshot := <-r.Updates():
			if snapshot.State == StateAuthorized {
				assert.Equal(t, domain.RoleUser, snapshot.Role)
				return
			}
		case <-deadline:
			t.Fatal("resolver never re-resolved after auth event")
		}
	}
}

func TestResolver_SignOutClearsStateEvenWhenBackendFails(t *testing.T) {
	signOutCalled := false
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return activeSession("user-1", "a@example.com"), nil
		},
		SignOutFunc: func(ctx context.Context) error {
			signOutCalled = true
			return errors.New("session store unavailable")
		},
	}
	users := &MockUserRepository{
		GetRoleFunc: func(ctx context.Context, id string) (domain.Role, error) {
			return domain.RoleUser, nil
		},
	}

	r := NewResolver(gateway, users, NewAuthBroker(), logger.NewNop())
	defer r.Close()
	r.Start(context.Background())
	require.Equal(t, StateAuthorized, r.Snapshot().State)

	r.SignOut(context.Background())

	assert.True(t, signOutCalled)
	snapshot := r.Snapshot()
	assert.Equal(t, StateAnonymous, snapshot.State)
	assert.Empty(t, snapshot.UserID)
	assert.Empty(t, snapshot.Role)
}

func TestResolver_NoMutationAfterClose(t *testing.T) {
	gateway := &MockSessionGateway{
		GetSessionFunc: func(ctx context.Context) (*domain.Session, error) {
			return activeSession("user-1", "a@example.com"), nil
		},
	}
	users := &MockUserRepository{
		GetRoleFunc: func(ctx context.Context, id string) (domain.Role, error) {
			return domain.RoleUser, nil
		},
	}

	broker := NewAuthBroker()
	r := NewResolver(gateway, users, broker, logger.NewNop())
	r.Start(context.Background())
	require.Equal(t, StateAuthorized, r.Snapshot().State)

	r.Close()
	before := r.Snapshot()

	// A late completion after teardown must be an observable no-op
	applied := r.transition(Snapshot{State: StateAnonymous})
	assert.False(t, applied)
	assert.Equal(t, before, r.Snapshot())

	// Events published after Close must not resurrect the loop either
	broker.Publish(AuthEvent{Type: AuthEventSignedOut})
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, before, r.Snapshot())
}

func TestResolver_CloseIsIdempotent(t *testing.T) {
	r := NewResolver(&MockSessionGateway{}, &MockUserRepository{}, NewAuthBroker(), logger.NewNop())
	r.Start(context.Background())

	r.Close()
	assert.NotPanics(t, func() { r.Close() })
}

func TestResolver_CloseUnsubscribesFromBroker(t *testing.T) {
	broker := NewAuthBroker()
	r := NewResolver(&MockSessionGateway{}, &MockUserRepository{}, broker, logger.NewNop())
	r.Start(context.Background())
	require.Equal(t, 1, broker.SubscriberCount())

	r.Close()
	assert.Equal(t, 0, broker.SubscriberCount())
}

func TestResolution_IsAdmin(t *testing.T) {
	tests := []struct {
		name       string
		resolution *Resolution
		want       bool
	}{
		{"nil resolution", nil, false},
		{"authorized admin", &Resolution{State: StateAuthorized, Role: domain.RoleAdmin}, true},
		{"authorized user", &Resolution{State: StateAuthorized, Role: domain.RoleUser}, false},
		{"role unknown with admin role set", &Resolution{State: StateRoleUnknown, Role: domain.RoleAdmin}, false},
		{"anonymous", &Resolution{State: StateAnonymous}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.resolution.IsAdmin())
		})
	}
}
