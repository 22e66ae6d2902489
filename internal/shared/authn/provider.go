package authn

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrInvalidCredentials indicates a failed email/password login.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken indicates a rejected or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrInvalidRefreshToken indicates a rejected refresh token.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// ErrEmailTaken indicates the email is already registered.
	ErrEmailTaken = errors.New("email already registered")

	// ErrWeakPassword indicates the provider rejected the password.
	ErrWeakPassword = errors.New("password does not meet requirements")
)

// User is the identity owned by the hosted auth provider.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the token pair issued by the provider. Tokens are opaque
// bearer credentials to this service.
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// SignupResult holds the provider response to a signup. Session is nil
// when the provider requires email confirmation before issuing tokens.
type SignupResult struct {
	User    User
	Session *Session
}

// Provider is the contract over the hosted auth service. All credential
// handling, token issuance, and session invalidation happen provider-side.
type Provider interface {
	SignUp(ctx context.Context, email, password string) (SignupResult, error)
	SignIn(ctx context.Context, email, password string) (User, Session, error)
	GetUser(ctx context.Context, accessToken string) (User, error)
	Refresh(ctx context.Context, refreshToken string) (Session, error)
	SignOut(ctx context.Context, accessToken string) error
}
