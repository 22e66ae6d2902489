package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"ragdocs-backend/internal/shared/authn"
)

type stubProvider struct {
	user authn.User
	err  error
}

func (s *stubProvider) SignUp(ctx context.Context, email, password string) (authn.SignupResult, error) {
	return authn.SignupResult{}, nil
}

func (s *stubProvider) SignIn(ctx context.Context, email, password string) (authn.User, authn.Session, error) {
	return authn.User{}, authn.Session{}, nil
}

func (s *stubProvider) GetUser(ctx context.Context, accessToken string) (authn.User, error) {
	if s.err != nil {
		return authn.User{}, s.err
	}
	return s.user, nil
}

func (s *stubProvider) Refresh(ctx context.Context, refreshToken string) (authn.Session, error) {
	return authn.Session{}, nil
}

func (s *stubProvider) SignOut(ctx context.Context, accessToken string) error {
	return nil
}

func newAuthRouter(p authn.Provider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(p), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c), "email": UserEmailFromContext(c)})
	})
	return r
}

func TestRequireAuthMissingHeader(t *testing.T) {
	r := newAuthRouter(&stubProvider{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthMalformedHeader(t *testing.T) {
	r := newAuthRouter(&stubProvider{})

	for _, header := range []string{"Token abc", "Bearer", "Bearer ", "abc"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, w.Code)
		}
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	r := newAuthRouter(&stubProvider{err: authn.ErrInvalidToken})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer expired-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	user := authn.User{ID: "user-1", Email: "a@example.com", CreatedAt: time.Now().UTC()}
	r := newAuthRouter(&stubProvider{user: user})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestBearerTokenParsing(t *testing.T) {
	token, ok := bearerToken("Bearer abc123")
	if !ok || token != "abc123" {
		t.Fatalf("expected abc123, got %q ok=%v", token, ok)
	}
	if _, ok := bearerToken(""); ok {
		t.Fatalf("empty header should not parse")
	}
	token, ok = bearerToken("bearer lower-scheme")
	if !ok || token != "lower-scheme" {
		t.Fatalf("scheme should be case-insensitive, got %q ok=%v", token, ok)
	}
}
