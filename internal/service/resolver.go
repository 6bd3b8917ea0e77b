package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/repository"
)

// ResolverState is the settled (or in-flight) outcome of session/role
// resolution.
type ResolverState string

const (
	// StateUnresolved means resolution has not started yet
	StateUnresolved ResolverState = "unresolved"
	// StateResolving means a session fetch or role lookup is in flight
	StateResolving ResolverState = "resolving"
	// StateAnonymous means there is no session
	StateAnonymous ResolverState = "anonymous"
	// StateAuthorized means both session and role resolved successfully
	StateAuthorized ResolverState = "authorized"
	// StateRoleUnknown means a session exists but the role could not be
	// resolved; authorization denies by default
	StateRoleUnknown ResolverState = "role_unknown"
)

// Resolution is the outcome of resolving a token or session into an
// identity plus authorization role.
type Resolution struct {
	State  ResolverState
	UserID string
	Email  string
	Role   domain.Role
}

// IsAdmin reports whether the resolution grants admin access. Anything
// short of a fully resolved admin role is a denial.
func (r *Resolution) IsAdmin() bool {
	return r != nil && r.State == StateAuthorized && r.Role == domain.RoleAdmin
}

// SessionGateway is the injected capability the Resolver uses to reach the
// session store. It is substituted with a double in tests.
type SessionGateway interface {
	// GetSession returns the current session, (nil, nil) when signed out
	GetSession(ctx context.Context) (*domain.Session, error)
	// SignOut destroys the session backing this gateway
	SignOut(ctx context.Context) error
}

// Snapshot is an externally visible view of the resolver's state
type Snapshot struct {
	State   ResolverState
	Loading bool
	UserID  string
	Email   string
	Role    domain.Role
}

// Resolver tracks the session and role of one client connection. It runs
// the two-phase resolution (session fetch, then role lookup keyed by the
// session's user id) once on Start and again on every auth-change event,
// and publishes a Snapshot after each settle.
//
// Failure policy: a failed session fetch settles Anonymous, a failed or
// empty role lookup settles RoleUnknown. Neither is surfaced as an error;
// authorization decisions downstream fail closed on both.
type Resolver struct {
	gateway SessionGateway
	users   repository.UserRepository
	events  *AuthBroker
	log     *logger.Logger

	mu      sync.Mutex
	state   ResolverState
	userID  string
	email   string
	role    domain.Role
	closed  bool
	sub     *AuthSubscription
	done    chan struct{}
	updates chan Snapshot
}

// NewResolver creates a Resolver in the Unresolved state
func NewResolver(gateway SessionGateway, users repository.UserRepository, events *AuthBroker, log *logger.Logger) *Resolver {
	if log == nil {
		log = logger.Get()
	}
	return &Resolver{
		gateway: gateway,
		users:   users,
		events:  events,
		log:     log,
		state:   StateUnresolved,
		done:    make(chan struct{}),
		updates: make(chan Snapshot, 16),
	}
}

// Start runs the initial resolution and subscribes to auth-change events
// for re-resolution until Close is called.
func (r *Resolver) Start(ctx context.Context) {
	r.resolve(ctx)

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.sub = r.events.Subscribe()
	sub := r.sub
	r.mu.Unlock()

	go func() {
		for {
			select {
			case _, ok := <-sub.C:
				if !ok {
					return
				}
				r.resolve(ctx)
			case <-r.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// resolve runs one session-fetch-then-role-lookup pass and settles the state
func (r *Resolver) resolve(ctx context.Context) {
	if !r.transition(Snapshot{State: StateResolving, Loading: true}) {
		return
	}

	session, err := r.gateway.GetSession(ctx)
	if err != nil {
		r.log.Warn("session fetch failed, treating as signed out", zap.Error(err))
		r.transition(Snapshot{State: StateAnonymous})
		return
	}
	if session == nil || session.Expired() {
		r.transition(Snapshot{State: StateAnonymous})
		return
	}

	// The role lookup depends on the session's user id, so it cannot be
	// reordered ahead of the session fetch.
	role, err := r.users.GetRole(ctx, session.UserID)
	if err != nil {
		r.log.Warn("role lookup failed, denying by default",
			zap.String("user_id", session.UserID),
			zap.Error(err),
		)
		r.transition(Snapshot{State: StateRoleUnknown, UserID: session.UserID, Email: session.Email})
		return
	}
	if !role.Valid() {
		r.transition(Snapshot{State: StateRoleUnknown, UserID: session.UserID, Email: session.Email})
		return
	}

	r.transition(Snapshot{
		State:  StateAuthorized,
		UserID: session.UserID,
		Email:  session.Email,
		Role:   role,
	})
}

// transition applies a snapshot unless the resolver has been closed, and
// reports whether it was applied. The closed check makes late completions
// (a query settling after teardown) observable no-ops.
func (r *Resolver) transition(next Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}

	r.state = next.State
	r.userID = next.UserID
	r.email = next.Email
	r.role = next.Role

	select {
	case r.updates <- next:
	default:
	}
	return true
}

// Snapshot returns the current resolution state
func (r *Resolver) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Snapshot{
		State:   r.state,
		Loading: r.state == StateUnresolved || r.state == StateResolving,
		UserID:  r.userID,
		Email:   r.email,
		Role:    r.role,
	}
}

// Updates returns a channel of snapshots emitted after each settle. The
// channel is closed by Close.
func (r *Resolver) Updates() <-chan Snapshot {
	return r.updates
}

// SignOut requests backend sign-out and clears local state. A failed
// backend call is logged but never blocks the local sign-out.
func (r *Resolver) SignOut(ctx context.Context) {
	if err := r.gateway.SignOut(ctx); err != nil {
		r.log.Warn("sign-out request failed, clearing local state anyway", zap.Error(err))
	}
	r.transition(Snapshot{State: StateAnonymous})
}

// Close unsubscribes from auth-change events and freezes the resolver.
// After Close, no event or late completion mutates state.
func (r *Resolver) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}
	r.closed = true
	if r.sub != nil {
		r.sub.Unsubscribe()
	}
	close(r.done)
	close(r.updates)
}

// refreshTokenGateway adapts a refresh token plus the session store into a
// SessionGateway for one client connection.
type refreshTokenGateway struct {
	sessions     repository.SessionRepository
	auth         AuthService
	refreshToken string
}

// NewRefreshTokenGateway creates a SessionGateway bound to one refresh token
func NewRefreshTokenGateway(sessions repository.SessionRepository, auth AuthService, refreshToken string) SessionGateway {
	return &refreshTokenGateway{
		sessions:     sessions,
		auth:         auth,
		refreshToken: refreshToken,
	}
}

func (g *refreshTokenGateway) GetSession(ctx context.Context) (*domain.Session, error) {
	session, err := g.sessions.GetByRefreshToken(ctx, g.refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired() {
		return nil, nil
	}
	return session, nil
}

func (g *refreshTokenGateway) SignOut(ctx context.Context) error {
	return g.auth.Logout(ctx, g.refreshToken)
}
