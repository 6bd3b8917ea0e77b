package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/middleware"
	"github.com/homevista/homevista-backend/internal/repository"
	"github.com/homevista/homevista-backend/internal/response"
	"github.com/homevista/homevista-backend/internal/service"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService service.AuthService
	sessionRepo repository.SessionRepository
	userRepo    repository.UserRepository
	events      *service.AuthBroker
	log         *logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(
	authService service.AuthService,
	sessionRepo repository.SessionRepository,
	userRepo repository.UserRepository,
	events *service.AuthBroker,
	log *logger.Logger,
) *AuthHandler {
	if log == nil {
		log = logger.Get()
	}
	return &AuthHandler{
		authService: authService,
		sessionRepo: sessionRepo,
		userRepo:    userRepo,
		events:      events,
		log:         log,
	}
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fields := make(map[string]string)
	if ok, msg := req.ValidateEmail(); !ok {
		fields["email"] = msg
	}
	if ok, msg := req.ValidatePassword(); !ok {
		fields["password"] = msg
	}
	if ok, msg := req.ValidateName(); !ok {
		fields["name"] = msg
	}
	if len(fields) > 0 {
		response.ValidationError(c, fields)
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserAlreadyExists) {
			response.Error(c, http.StatusConflict, "USER_EXISTS", "Email is already registered", "")
			return
		}
		h.log.Error("registration failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	response.Created(c, resp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req, c.Request.UserAgent(), c.ClientIP())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, "Account is inactive")
		default:
			h.log.Error("login failed", zap.Error(err))
			response.InternalError(c, err)
		}
		return
	}

	response.Success(c, resp)
}

// Refresh handles POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrTokenExpired):
			response.Unauthorized(c, "Session expired, please sign in again")
		case errors.Is(err, service.ErrUserInactive):
			response.Forbidden(c, "Account is inactive")
		default:
			h.log.Error("token refresh failed", zap.Error(err))
			response.InternalError(c, err)
		}
		return
	}

	response.Success(c, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), req.RefreshToken); err != nil {
		h.log.Error("logout failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Logged out"})
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.log.Error("user lookup failed", zap.String("user_id", userID), zap.Error(err))
		response.InternalError(c, err)
		return
	}
	if user == nil {
		response.NotFound(c, "User not found")
		return
	}

	response.Success(c, dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Watch handles GET /api/v1/auth/watch. It streams the session/role
// resolution state over SSE: one event for the initial resolution and one
// for every auth change while the connection is open.
func (h *AuthHandler) Watch(c *gin.Context) {
	refreshToken := refreshTokenFrom(c)
	if refreshToken == "" {
		response.Unauthorized(c, "Refresh token required")
		return
	}

	gateway := service.NewRefreshTokenGateway(h.sessionRepo, h.authService, refreshToken)
	resolver := service.NewResolver(gateway, h.userRepo, h.events, h.log)
	defer resolver.Close()

	resolver.Start(c.Request.Context())

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	// First frame carries whatever the initial resolution settled on
	c.SSEvent("auth_state", toAuthState(resolver.Snapshot()))
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-resolver.Updates():
			if !ok {
				return false
			}
			c.SSEvent("auth_state", toAuthState(snapshot))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}

func refreshTokenFrom(c *gin.Context) string {
	if cookie, err := c.Cookie("refresh_token"); err == nil && cookie != "" {
		return cookie
	}
	return c.Query("refresh_token")
}

func toAuthState(s service.Snapshot) dto.AuthStateResponse {
	resp := dto.AuthStateResponse{
		State:   string(s.State),
		Loading: s.Loading,
		Role:    string(s.Role),
	}
	if s.UserID != "" {
		resp.User = &dto.UserResponse{
			ID:    s.UserID,
			Email: s.Email,
			Role:  string(s.Role),
		}
	}
	return resp
}
