package auth

import (
	"time"

	"ragdocs-backend/internal/shared/authn"
)

// SignupRequest carries signup credentials. The password policy is
// checked by the strongpassword binding rule.
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest carries a refresh token.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UserResponse is the outward-facing user representation.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionResponse is the outward-facing token pair.
type SessionResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// AuthResponse pairs a user with an issued session.
type AuthResponse struct {
	User    UserResponse     `json:"user"`
	Session *SessionResponse `json:"session,omitempty"`
	Message string           `json:"message,omitempty"`
}

// MeResponse is the authenticated identity echo.
type MeResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

func toUserResponse(user authn.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func toSessionResponse(session *authn.Session) *SessionResponse {
	if session == nil {
		return nil
	}
	return &SessionResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		ExpiresIn:    session.ExpiresIn,
		TokenType:    session.TokenType,
	}
}
