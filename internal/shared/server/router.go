package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ragdocs-backend/internal/auth"
	"ragdocs-backend/internal/documents"
	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/config"
	"ragdocs-backend/internal/shared/metrics"
	"ragdocs-backend/internal/shared/server/middleware"
	"ragdocs-backend/internal/shared/server/respond"
)

// Auth endpoints take the brunt of credential stuffing; keep them on a
// tighter budget than the rest of the API.
const (
	authRatePerMinute = 30
	authRateBurst     = 10
)

const version = "1.0.0"

// RouterDeps carries the wired handlers the router mounts.
type RouterDeps struct {
	Config           config.Config
	Provider         authn.Provider
	AuthHandler      *auth.Handler
	DocumentsHandler *documents.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"message": "Document API",
			"version": version,
			"status":  "running",
		})
	})
	r.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "document-api",
		})
	})
	r.GET("/metrics", metrics.Handler())

	authLimiter := middleware.NewRateLimiter(authRatePerMinute, authRateBurst)

	authPublic := r.Group("/")
	authPublic.Use(authLimiter.Middleware())
	deps.AuthHandler.RegisterPublicRoutes(authPublic)

	authProtected := r.Group("/")
	authProtected.Use(authLimiter.Middleware(), middleware.RequireAuth(deps.Provider))
	deps.AuthHandler.RegisterProtectedRoutes(authProtected)

	api := r.Group("/")
	api.Use(middleware.RequireAuth(deps.Provider))
	deps.DocumentsHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
