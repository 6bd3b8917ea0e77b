package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/response"
	"github.com/homevista/homevista-backend/internal/service"
)

const (
	// UserIDKey is the context key for the resolved user id
	UserIDKey = "user_id"
	// UserEmailKey is the context key for the resolved email
	UserEmailKey = "user_email"
	// UserRoleKey is the context key for the resolved role
	UserRoleKey = "user_role"

	// SignInPath is where unauthenticated browser requests are sent
	SignInPath = "/auth/login"
	// PublicRootPath is where unauthorized browser requests are sent
	PublicRootPath = "/"
)

// RequireAuth resolves the request's bearer token (or access_token cookie)
// into an identity and role. Requests without a valid session are redirected
// to sign-in and the chain is aborted, so protected handlers never run.
func RequireAuth(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			redirectToSignIn(c)
			return
		}

		resolution, err := auth.ResolveSession(c.Request.Context(), token)
		if err != nil {
			redirectToSignIn(c)
			return
		}

		c.Set(UserIDKey, resolution.UserID)
		c.Set(UserEmailKey, resolution.Email)
		c.Set(UserRoleKey, string(resolution.Role))

		c.Next()
	}
}

// RequireAdmin gates a route tree on the admin role. It must run after
// RequireAuth. RoleUnknown (a session whose role could not be resolved)
// is denied the same as a non-admin role: authorization fails closed.
// Aborting the chain once per request keeps the redirect idempotent.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(UserRoleKey)
		if role != string(domain.RoleAdmin) {
			redirectToRoot(c)
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	const bearerPrefix = "Bearer "
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return authHeader[len(bearerPrefix):]
	}
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie
	}
	return ""
}

func redirectToSignIn(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, SignInPath)
		c.Abort()
		return
	}
	response.Unauthorized(c, "Authentication required")
	c.Abort()
}

func redirectToRoot(c *gin.Context) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, PublicRootPath)
		c.Abort()
		return
	}
	response.Forbidden(c, "Admin access required")
	c.Abort()
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
