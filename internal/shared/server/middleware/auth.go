package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/server/respond"
)

const (
	userIDKey        = "userId"
	userEmailKey     = "userEmail"
	userCreatedAtKey = "userCreatedAt"
)

// RequireAuth verifies the bearer token against the auth provider on every
// request and stores the resolved user in the gin context. No local token
// cache: a revoked token is rejected on the next call.
func RequireAuth(provider authn.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing or malformed Authorization header", nil)
			return
		}

		user, err := provider.GetUser(c.Request.Context(), token)
		if err != nil {
			respond.Error(c, http.StatusUnauthorized, "unauthorized", "Invalid or expired token", nil)
			return
		}

		c.Set(userIDKey, user.ID)
		c.Set(userEmailKey, user.Email)
		c.Set(userCreatedAtKey, user.CreatedAt)
		c.Set("accessToken", token)
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user's ID set by RequireAuth.
func UserIDFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}

// UserEmailFromContext returns the authenticated user's email set by RequireAuth.
func UserEmailFromContext(c *gin.Context) string {
	return c.GetString(userEmailKey)
}

// UserCreatedAtFromContext returns the authenticated user's creation timestamp.
func UserCreatedAtFromContext(c *gin.Context) time.Time {
	val, _ := c.Get(userCreatedAtKey)
	if t, ok := val.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// AccessTokenFromContext returns the raw bearer token for pass-through calls.
func AccessTokenFromContext(c *gin.Context) string {
	return c.GetString("accessToken")
}

func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}
