package gotrue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/telemetry"
)

// Client implements authn.Provider against a GoTrue-compatible auth API
// (Supabase Auth and friends).
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New constructs a GoTrue client. baseURL is the provider root, e.g.
// https://<project>.supabase.co.
func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("AUTH_URL is required")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("AUTH_API_KEY is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type credentialsBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshBody struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	TokenType    string      `json:"token_type"`
	User         *authn.User `json:"user"`
}

type errorResponse struct {
	Message          string `json:"msg"`
	ErrorCode        string `json:"error_code"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e errorResponse) text() string {
	for _, s := range []string{e.Message, e.ErrorDescription, e.ErrorCode, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

// SignUp registers a new user. The returned session is nil when the
// provider withholds tokens pending email confirmation.
func (c *Client) SignUp(ctx context.Context, email, password string) (authn.SignupResult, error) {
	var resp struct {
		sessionResponse
		// GoTrue returns the bare user object (no session) when email
		// confirmation is enabled.
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		CreatedAt time.Time `json:"created_at"`
	}
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/signup", "", credentialsBody{Email: email, Password: password})
	if err != nil {
		return authn.SignupResult{}, err
	}
	if status != http.StatusOK {
		return authn.SignupResult{}, mapSignupError(status, raw)
	}
	if err := json.Unmarshal(raw, &resp); err != nil {
		return authn.SignupResult{}, fmt.Errorf("decode signup response: %w", err)
	}

	if resp.AccessToken != "" && resp.User != nil {
		return authn.SignupResult{
			User: *resp.User,
			Session: &authn.Session{
				AccessToken:  resp.AccessToken,
				RefreshToken: resp.RefreshToken,
				ExpiresIn:    resp.ExpiresIn,
				TokenType:    normalizeTokenType(resp.TokenType),
			},
		}, nil
	}
	if resp.ID == "" {
		return authn.SignupResult{}, fmt.Errorf("signup response missing user")
	}
	return authn.SignupResult{
		User: authn.User{ID: resp.ID, Email: resp.Email, CreatedAt: resp.CreatedAt},
	}, nil
}

// SignIn exchanges credentials for a session via the password grant.
func (c *Client) SignIn(ctx context.Context, email, password string) (authn.User, authn.Session, error) {
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", credentialsBody{Email: email, Password: password})
	if err != nil {
		return authn.User{}, authn.Session{}, err
	}
	if status != http.StatusOK {
		if status == http.StatusBadRequest || status == http.StatusUnauthorized || status == http.StatusForbidden {
			return authn.User{}, authn.Session{}, authn.ErrInvalidCredentials
		}
		return authn.User{}, authn.Session{}, unexpectedStatus("sign in", status, raw)
	}

	var resp sessionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return authn.User{}, authn.Session{}, fmt.Errorf("decode token response: %w", err)
	}
	if resp.AccessToken == "" || resp.User == nil {
		return authn.User{}, authn.Session{}, authn.ErrInvalidCredentials
	}
	return *resp.User, authn.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    normalizeTokenType(resp.TokenType),
	}, nil
}

// GetUser verifies an access token with the provider and returns the
// identity it belongs to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (authn.User, error) {
	status, raw, err := c.do(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return authn.User{}, err
	}
	if status != http.StatusOK {
		return authn.User{}, authn.ErrInvalidToken
	}
	var user authn.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return authn.User{}, fmt.Errorf("decode user response: %w", err)
	}
	if user.ID == "" {
		return authn.User{}, authn.ErrInvalidToken
	}
	return user, nil
}

// Refresh exchanges a refresh token for a new session.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (authn.Session, error) {
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/token?grant_type=refresh_token", "", refreshBody{RefreshToken: refreshToken})
	if err != nil {
		return authn.Session{}, err
	}
	if status != http.StatusOK {
		return authn.Session{}, authn.ErrInvalidRefreshToken
	}
	var resp sessionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return authn.Session{}, fmt.Errorf("decode refresh response: %w", err)
	}
	if resp.AccessToken == "" {
		return authn.Session{}, authn.ErrInvalidRefreshToken
	}
	return authn.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		TokenType:    normalizeTokenType(resp.TokenType),
	}, nil
}

// SignOut invalidates the session behind the access token.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	status, raw, err := c.do(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		return unexpectedStatus("sign out", status, raw)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, bearer string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("auth provider request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return 0, nil, fmt.Errorf("read auth provider response: %w", err)
	}
	return resp.StatusCode, raw, nil
}

func mapSignupError(status int, raw []byte) error {
	var body errorResponse
	_ = json.Unmarshal(raw, &body)
	msg := strings.ToLower(body.text())
	switch {
	case strings.Contains(msg, "already registered"), strings.Contains(msg, "already exists"),
		body.ErrorCode == "user_already_exists", body.ErrorCode == "email_exists":
		return authn.ErrEmailTaken
	case strings.Contains(msg, "password"), body.ErrorCode == "weak_password":
		return authn.ErrWeakPassword
	default:
		return unexpectedStatus("sign up", status, raw)
	}
}

func unexpectedStatus(op string, status int, raw []byte) error {
	telemetry.Error("authn.provider_error", map[string]any{
		"op":     op,
		"status": status,
		"body":   truncate(string(raw), 512),
	})
	return fmt.Errorf("auth provider %s: unexpected status %d", op, status)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func normalizeTokenType(t string) string {
	if t == "" {
		return "bearer"
	}
	return t
}

var _ authn.Provider = (*Client)(nil)
