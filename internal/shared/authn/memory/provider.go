package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/google/uuid"

	"ragdocs-backend/internal/shared/authn"
)

const sessionTTLSeconds = 3600

// Provider is an in-memory authn.Provider for dev mode and tests. It is
// not suitable for production use: passwords are kept in plain text and
// sessions never expire.
type Provider struct {
	mu        sync.RWMutex
	users     map[string]record // email -> record
	byToken   map[string]string // access token -> email
	byRefresh map[string]string // refresh token -> email
}

type record struct {
	user     authn.User
	password string
}

// New constructs an empty in-memory provider.
func New() *Provider {
	return &Provider{
		users:     make(map[string]record),
		byToken:   make(map[string]string),
		byRefresh: make(map[string]string),
	}
}

// SignUp registers a user and immediately issues a session; the in-memory
// provider never requires email confirmation.
func (p *Provider) SignUp(ctx context.Context, email, password string) (authn.SignupResult, error) {
	if err := ctx.Err(); err != nil {
		return authn.SignupResult{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.users[email]; exists {
		return authn.SignupResult{}, authn.ErrEmailTaken
	}
	user := authn.User{
		ID:        uuid.NewString(),
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	p.users[email] = record{user: user, password: password}
	session := p.issueLocked(email)
	return authn.SignupResult{User: user, Session: &session}, nil
}

// SignIn checks credentials and issues a fresh session.
func (p *Provider) SignIn(ctx context.Context, email, password string) (authn.User, authn.Session, error) {
	if err := ctx.Err(); err != nil {
		return authn.User{}, authn.Session{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	rec, ok := p.users[email]
	if !ok || rec.password != password {
		return authn.User{}, authn.Session{}, authn.ErrInvalidCredentials
	}
	return rec.user, p.issueLocked(email), nil
}

// GetUser resolves an access token to its user.
func (p *Provider) GetUser(ctx context.Context, accessToken string) (authn.User, error) {
	if err := ctx.Err(); err != nil {
		return authn.User{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()

	email, ok := p.byToken[accessToken]
	if !ok {
		return authn.User{}, authn.ErrInvalidToken
	}
	return p.users[email].user, nil
}

// Refresh rotates a refresh token into a new session.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (authn.Session, error) {
	if err := ctx.Err(); err != nil {
		return authn.Session{}, err
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	email, ok := p.byRefresh[refreshToken]
	if !ok {
		return authn.Session{}, authn.ErrInvalidRefreshToken
	}
	delete(p.byRefresh, refreshToken)
	return p.issueLocked(email), nil
}

// SignOut invalidates the session behind the access token.
func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.byToken, accessToken)
	return nil
}

func (p *Provider) issueLocked(email string) authn.Session {
	access := randomToken()
	refresh := randomToken()
	p.byToken[access] = email
	p.byRefresh[refresh] = email
	return authn.Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    sessionTTLSeconds,
		TokenType:    "bearer",
	}
}

func randomToken() string {
	var b [24]byte
	if _, err := rand.Read(b[:]); err != nil {
		return uuid.NewString()
	}
	return hex.EncodeToString(b[:])
}

var _ authn.Provider = (*Provider)(nil)
