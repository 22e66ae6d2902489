package gotrue

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ragdocs-backend/internal/shared/authn"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, "test-api-key", 2*time.Second)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return client
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New("", "key", 0); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
	if _, err := New("https://auth.example.com", "", 0); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}

func TestSignUpWithSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/signup" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("apikey") != "test-api-key" {
			t.Errorf("missing apikey header")
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"refresh_token": "rt",
			"expires_in":    3600,
			"token_type":    "bearer",
			"user":          map[string]any{"id": "u1", "email": "a@example.com"},
		})
	})

	result, err := client.SignUp(context.Background(), "a@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if result.Session == nil || result.Session.AccessToken != "at" {
		t.Fatalf("expected session, got %+v", result.Session)
	}
	if result.User.ID != "u1" {
		t.Fatalf("unexpected user %+v", result.User)
	}
}

func TestSignUpConfirmationRequired(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		// Bare user object, no tokens.
		json.NewEncoder(w).Encode(map[string]any{
			"id":    "u1",
			"email": "a@example.com",
		})
	})

	result, err := client.SignUp(context.Background(), "a@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if result.Session != nil {
		t.Fatalf("expected nil session pending confirmation")
	}
	if result.User.ID != "u1" {
		t.Fatalf("unexpected user %+v", result.User)
	}
}

func TestSignUpDuplicateEmail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error_code": "user_already_exists",
			"msg":        "User already registered",
		})
	})

	_, err := client.SignUp(context.Background(), "a@example.com", "Str0ng!pass")
	if !errors.Is(err, authn.ErrEmailTaken) {
		t.Fatalf("got %v, want %v", err, authn.ErrEmailTaken)
	}
}

func TestSignUpWeakPassword(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]any{
			"error_code": "weak_password",
			"msg":        "Password should be at least 6 characters",
		})
	})

	_, err := client.SignUp(context.Background(), "a@example.com", "weak")
	if !errors.Is(err, authn.ErrWeakPassword) {
		t.Fatalf("got %v, want %v", err, authn.ErrWeakPassword)
	}
}

func TestSignInPasswordGrant(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request %s?%s", r.URL.Path, r.URL.RawQuery)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"refresh_token": "rt",
			"expires_in":    3600,
			"user":          map[string]any{"id": "u1", "email": "a@example.com"},
		})
	})

	user, session, err := client.SignIn(context.Background(), "a@example.com", "Str0ng!pass")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if user.ID != "u1" || session.AccessToken != "at" {
		t.Fatalf("unexpected result user=%+v session=%+v", user, session)
	}
	if session.TokenType != "bearer" {
		t.Fatalf("expected token type defaulted to bearer, got %q", session.TokenType)
	}
}

func TestSignInBadCredentials(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "invalid_grant"})
	})

	_, _, err := client.SignIn(context.Background(), "a@example.com", "wrong")
	if !errors.Is(err, authn.ErrInvalidCredentials) {
		t.Fatalf("got %v, want %v", err, authn.ErrInvalidCredentials)
	}
}

func TestGetUserForwardsBearer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer user-token" {
			t.Errorf("unexpected Authorization %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"id": "u1", "email": "a@example.com"})
	})

	user, err := client.GetUser(context.Background(), "user-token")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if user.ID != "u1" {
		t.Fatalf("unexpected user %+v", user)
	}
}

func TestGetUserRejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.GetUser(context.Background(), "expired"); !errors.Is(err, authn.ErrInvalidToken) {
		t.Fatalf("got %v, want %v", err, authn.ErrInvalidToken)
	}
}

func TestRefreshInvalidToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	if _, err := client.Refresh(context.Background(), "bogus"); !errors.Is(err, authn.ErrInvalidRefreshToken) {
		t.Fatalf("got %v, want %v", err, authn.ErrInvalidRefreshToken)
	}
}

func TestSignOutAcceptsNoContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	})

	if err := client.SignOut(context.Background(), "user-token"); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
}
