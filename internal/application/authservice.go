package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ericfisherdev/semefopanel/internal/domain/jwtpayload"
	"github.com/ericfisherdev/semefopanel/internal/domain/model"
	"github.com/ericfisherdev/semefopanel/internal/domain/port/driven"
)

// Identity describes the token held in a session context, decoded for
// display only.
type Identity struct {
	User      model.DashboardUser
	Claims    jwt.MapClaims
	ExpiresAt time.Time
	Expired   bool
}

// AuthService logs users in and out of the backend and exposes who is logged in.
type AuthService struct {
	api       driven.SemefoAPI
	session   driven.SessionContext
	validator *Validator
	now       func() time.Time
}

// NewAuthService creates a new AuthService with the required dependencies.
func NewAuthService(api driven.SemefoAPI, session driven.SessionContext, validator *Validator) *AuthService {
	return &AuthService{
		api:       api,
		session:   session,
		validator: validator,
		now:       time.Now,
	}
}

// Login exchanges credentials for an access token and stores it together with
// the display name found in its payload. When the payload has no usable name
// the username typed at login is shown instead.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.DashboardUser, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	resp, err := s.api.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	claims := jwtpayload.Decode(resp.AccessToken)
	user := &model.DashboardUser{
		Username: jwtpayload.Username(claims),
		Roles:    jwtpayload.Roles(claims),
	}
	if user.Username == "" {
		user.Username = req.Username
	}

	if err := s.session.SetToken(ctx, resp.AccessToken); err != nil {
		return nil, fmt.Errorf("storing token: %w", err)
	}
	if err := s.session.SetDisplayName(ctx, user.Username); err != nil {
		return nil, fmt.Errorf("storing display name: %w", err)
	}

	slog.Info("dashboard login", "user", user.Username)
	return user, nil
}

// Logout forgets the stored token and display name.
func (s *AuthService) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Identity decodes the stored token. It returns (nil, nil) when no token is
// stored. An undecodable token still yields the cached display name.
func (s *AuthService) Identity(ctx context.Context) (*Identity, error) {
	token, err := s.session.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	name, err := s.session.DisplayName(ctx)
	if err != nil {
		return nil, err
	}

	claims := jwtpayload.Decode(token)
	id := &Identity{
		User:    model.DashboardUser{Username: name, Roles: jwtpayload.Roles(claims)},
		Claims:  claims,
		Expired: jwtpayload.Expired(claims, s.now()),
	}
	if id.User.Username == "" {
		id.User.Username = jwtpayload.Username(claims)
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		id.ExpiresAt = exp.Time
	}

	return id, nil
}
