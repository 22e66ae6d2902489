package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/server/middleware"
	"ragdocs-backend/internal/shared/server/respond"
	"ragdocs-backend/internal/shared/validators"
)

// Handler wires HTTP handlers to the auth service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated auth routes.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/signup", h.signup)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/refresh", h.refresh)
}

// RegisterProtectedRoutes attaches the routes that require a session.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/logout", h.logout)
	rg.GET("/auth/me", h.me)
}

func (h *Handler) signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", signupBindingMessage(err, req), nil)
		return
	}

	outcome, err := h.Svc.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authn.ErrEmailTaken):
			respond.Error(c, http.StatusBadRequest, "email_taken", "Email is already registered", nil)
		case errors.Is(err, authn.ErrWeakPassword):
			respond.Error(c, http.StatusBadRequest, "weak_password", err.Error(), nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to sign up", nil)
		}
		return
	}

	resp := AuthResponse{
		User:    toUserResponse(outcome.User),
		Session: toSessionResponse(outcome.Session),
	}
	if outcome.EmailConfirmationRequired {
		resp.Message = "Signup successful. Please confirm your email to activate the account."
	}
	respond.JSON(c, http.StatusCreated, resp)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Email and password are required", nil)
		return
	}

	user, session, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authn.ErrInvalidCredentials) {
			respond.Error(c, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to log in", nil)
		return
	}

	respond.OK(c, AuthResponse{
		User:    toUserResponse(user),
		Session: toSessionResponse(&session),
	})
}

func (h *Handler) refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "refresh_token is required", nil)
		return
	}

	session, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, authn.ErrInvalidRefreshToken) {
			respond.Error(c, http.StatusUnauthorized, "invalid_refresh_token", "Invalid or expired refresh token", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to refresh session", nil)
		return
	}

	respond.OK(c, gin.H{"session": toSessionResponse(&session)})
}

func (h *Handler) logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), middleware.AccessTokenFromContext(c))
	respond.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) me(c *gin.Context) {
	respond.OK(c, MeResponse{
		User: UserResponse{
			ID:        middleware.UserIDFromContext(c),
			Email:     middleware.UserEmailFromContext(c),
			CreatedAt: middleware.UserCreatedAtFromContext(c),
		},
		Message: "Authenticated",
	})
}

// signupBindingMessage turns a binding failure into a user-correctable
// message, spelling out which password rule was broken.
func signupBindingMessage(err error, req SignupRequest) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request body"
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Email":
			return "A valid email is required"
		case "Password":
			if fe.Tag() == "required" {
				return "Password is required"
			}
			if msg := validators.PasswordPolicyViolation(req.Password); msg != "" {
				return msg
			}
			return "Password does not meet requirements"
		}
	}
	return "Invalid request body"
}
