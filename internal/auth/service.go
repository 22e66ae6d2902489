package auth

import (
	"context"

	"ragdocs-backend/internal/shared/authn"
	"ragdocs-backend/internal/shared/telemetry"
)

// Service is a thin pass-through over the hosted auth provider. All
// credential handling and token issuance happen provider-side.
type Service struct {
	Provider authn.Provider
}

// SignupOutcome pairs the provider result with whether the user still
// has to confirm their email before the account is usable.
type SignupOutcome struct {
	User                      authn.User
	Session                   *authn.Session
	EmailConfirmationRequired bool
}

// Signup registers a new user. When the provider issues no session the
// account exists but is unusable until the email is confirmed.
func (s *Service) Signup(ctx context.Context, email, password string) (SignupOutcome, error) {
	result, err := s.Provider.SignUp(ctx, email, password)
	if err != nil {
		return SignupOutcome{}, err
	}
	return SignupOutcome{
		User:                      result.User,
		Session:                   result.Session,
		EmailConfirmationRequired: result.Session == nil,
	}, nil
}

// Login exchanges credentials for a token pair.
func (s *Service) Login(ctx context.Context, email, password string) (authn.User, authn.Session, error) {
	return s.Provider.SignIn(ctx, email, password)
}

// Refresh exchanges a refresh token for a fresh token pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (authn.Session, error) {
	return s.Provider.Refresh(ctx, refreshToken)
}

// Logout invalidates the session provider-side. Failures are logged
// and swallowed so the caller always observes a successful logout.
func (s *Service) Logout(ctx context.Context, accessToken string) {
	if err := s.Provider.SignOut(ctx, accessToken); err != nil {
		telemetry.Warn("auth.logout_failed", map[string]any{
			"error": err.Error(),
		})
	}
}
