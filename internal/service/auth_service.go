package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/repository"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")
)

// AuthServiceConfig holds configuration for AuthService
type AuthServiceConfig struct {
	JWTSecret          string
	AccessTokenExpiry  time.Duration
	RefreshTokenExpiry time.Duration
	BcryptCost         int
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	// Register registers a new user
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	// Login authenticates a user
	Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error)
	// RefreshToken refreshes access token using refresh token
	RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error)
	// Logout logs out a user (invalidates session)
	Logout(ctx context.Context, refreshToken string) error
	// LogoutAll logs out all sessions for a user
	LogoutAll(ctx context.Context, userID string) error
	// ValidateToken validates an access token and returns its claims
	ValidateToken(ctx context.Context, token string) (*domain.Claims, error)
	// ResolveSession resolves a token into an authorization decision in
	// two phases: token validation (identity) then a role lookup against
	// the users table (authorization). A failed role lookup yields
	// RoleUnknown rather than an error so callers fail closed.
	ResolveSession(ctx context.Context, token string) (*Resolution, error)
	// GetUser retrieves user by ID
	GetUser(ctx context.Context, id string) (*domain.User, error)
}

// authService implements AuthService
type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	events      *AuthBroker
	config      *AuthServiceConfig
	log         *logger.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	events *AuthBroker,
	config *AuthServiceConfig,
	log *logger.Logger,
) AuthService {
	if config.BcryptCost == 0 {
		config.BcryptCost = bcrypt.DefaultCost
	}
	if config.AccessTokenExpiry == 0 {
		config.AccessTokenExpiry = 15 * time.Minute
	}
	if config.RefreshTokenExpiry == 0 {
		config.RefreshTokenExpiry = 7 * 24 * time.Hour
	}
	if log == nil {
		log = logger.Get()
	}
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		events:      events,
		config:      config,
		log:         log,
	}
}

// Register registers a new user
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
		Name:         req.Name,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user, tokenPair.RefreshToken, "", "")
	if err != nil {
		return nil, err
	}

	s.events.Publish(AuthEvent{Type: AuthEventSignedIn, Session: session})

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         s.toUserResponse(user),
	}, nil
}

// Login authenticates a user
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest, userAgent, ip string) (*dto.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	session, err := s.createSession(ctx, user, tokenPair.RefreshToken, userAgent, ip)
	if err != nil {
		return nil, err
	}

	s.events.Publish(AuthEvent{Type: AuthEventSignedIn, Session: session})

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         s.toUserResponse(user),
	}, nil
}

// RefreshToken refreshes access token using refresh token
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if session.Expired() {
		_ = s.sessionRepo.Delete(ctx, refreshToken)
		return nil, ErrTokenExpired
	}

	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	tokenPair, err := s.generateTokenPair(user)
	if err != nil {
		return nil, err
	}

	// Rotate: drop the old session before storing the replacement
	_ = s.sessionRepo.Delete(ctx, refreshToken)

	newSession, err := s.createSession(ctx, user, tokenPair.RefreshToken, session.UserAgent, session.IP)
	if err != nil {
		return nil, err
	}

	s.events.Publish(AuthEvent{Type: AuthEventTokenRefreshed, Session: newSession})

	return &dto.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		ExpiresIn:    tokenPair.ExpiresIn,
		User:         s.toUserResponse(user),
	}, nil
}

// Logout logs out a user (invalidates session)
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	session, err := s.sessionRepo.GetByRefreshToken(ctx, refreshToken)
	if err != nil {
		return err
	}
	if session == nil {
		return nil // Already logged out
	}

	if err := s.sessionRepo.Delete(ctx, refreshToken); err != nil {
		return err
	}

	s.events.Publish(AuthEvent{Type: AuthEventSignedOut, Session: session})
	return nil
}

// LogoutAll logs out all sessions for a user
func (s *authService) LogoutAll(ctx context.Context, userID string) error {
	if err := s.sessionRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	s.events.Publish(AuthEvent{Type: AuthEventSignedOut, Session: &domain.Session{UserID: userID}})
	return nil
}

// ValidateToken validates an access token and returns its claims
func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	email, _ := claims["email"].(string)

	return &domain.Claims{
		UserID: userID,
		Email:  email,
	}, nil
}

// ResolveSession resolves a token into an authorization decision
func (s *authService) ResolveSession(ctx context.Context, tokenString string) (*Resolution, error) {
	claims, err := s.ValidateToken(ctx, tokenString)
	if err != nil {
		return nil, err
	}

	// Second phase: the role is an attribute of the user row, not of the
	// token, so it is re-read on every resolution.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		s.log.Warn("role lookup failed, denying by default",
			zap.String("user_id", claims.UserID),
			zap.Error(err),
		)
		return &Resolution{
			State:  StateRoleUnknown,
			UserID: claims.UserID,
			Email:  claims.Email,
		}, nil
	}
	if user == nil || !user.Role.Valid() {
		return &Resolution{
			State:  StateRoleUnknown,
			UserID: claims.UserID,
			Email:  claims.Email,
		}, nil
	}
	if !user.IsActive {
		return nil, ErrUserInactive
	}

	return &Resolution{
		State:  StateAuthorized,
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}, nil
}

// GetUser retrieves user by ID
func (s *authService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *authService) createSession(ctx context.Context, user *domain.User, refreshToken, userAgent, ip string) (*domain.Session, error) {
	session := &domain.Session{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Email:        user.Email,
		RefreshToken: refreshToken,
		UserAgent:    userAgent,
		IP:           ip,
		ExpiresAt:    time.Now().Add(s.config.RefreshTokenExpiry),
		CreatedAt:    time.Now(),
	}
	if err := s.sessionRepo.Create(ctx, session, s.config.RefreshTokenExpiry); err != nil {
		return nil, err
	}
	return session, nil
}

// generateTokenPair generates access and refresh tokens
func (s *authService) generateTokenPair(user *domain.User) (*domain.TokenPair, error) {
	// Access tokens carry identity only; the role is looked up fresh from
	// the users table on each resolution.
	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":     user.ID,
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.config.AccessTokenExpiry).Unix(),
		"iat":     time.Now().Unix(),
	})

	accessTokenString, err := accessToken.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	refreshTokenBytes := make([]byte, 32)
	if _, err := rand.Read(refreshTokenBytes); err != nil {
		return nil, err
	}
	refreshTokenString := base64.URLEncoding.EncodeToString(refreshTokenBytes)

	return &domain.TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.config.AccessTokenExpiry.Seconds()),
	}, nil
}

// toUserResponse converts User to UserResponse
func (s *authService) toUserResponse(user *domain.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}
