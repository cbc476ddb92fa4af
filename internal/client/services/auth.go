// Package services contains application services for the console.
// This file defines the authentication service: login against the primary
// backend, logout, and the session probe used by the auth gate.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/client/session"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

// LoginAPI is the slice of the API client the auth service needs.
type LoginAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error)
}

// AuthService defines authentication operations for the CLI.
//
// Contract:
//   - Login: exchange email/password for a credential and store it.
//   - Logout: forget the stored credential.
//   - Authenticated: report whether a credential is stored.
//   - Whoami: describe the current operator.
//
// All methods must honor context cancellation/timeouts.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Authenticated(ctx context.Context) bool
	Whoami(ctx context.Context) (string, error)
}

// authService is the concrete AuthService backed by the API client and the
// operator's Session.
type authService struct {
	api     LoginAPI
	session *session.Session
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given API and session.
func NewAuthService(api LoginAPI, s *session.Session, log logging.Logger) AuthService {
	return &authService{api: api, session: s, log: log}
}

// Login validates input before any I/O, posts the credentials and, on
// success, stores the returned access token. A rejected login maps to
// common.ErrUnauthorized.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	creds := models.Credentials{Email: strings.TrimSpace(email), Password: string(password)}
	if err := creds.Validate(); err != nil {
		return err
	}

	resp, err := a.api.Login(ctx, creds)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			return fmt.Errorf("login error: %w", err)
		}
		var re *api.RequestError
		if errors.As(err, &re) && re.Status == 400 {
			return fmt.Errorf("login error: %w: %s", common.ErrUnauthorized, re.Error())
		}
		return fmt.Errorf("login error: %w", err)
	}

	if err := a.session.Begin(ctx, resp.AccessToken, creds.Email); err != nil {
		return fmt.Errorf("session saving error: %w", err)
	}
	a.log.Info(ctx, "operator logged in", "email", creds.Email)
	return nil
}

// Logout clears the stored credential. It is safe to call when logged out.
func (a *authService) Logout(ctx context.Context) error {
	if err := a.session.End(ctx); err != nil {
		return err
	}
	a.log.Info(ctx, "operator logged out")
	return nil
}

func (a *authService) Authenticated(ctx context.Context) bool {
	return a.session.Authenticated(ctx)
}

func (a *authService) Whoami(ctx context.Context) (string, error) {
	return a.session.Describe(ctx)
}
