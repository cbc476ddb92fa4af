package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the explicit session context shared by the API client,
// the auth service and the auth gate.
type Session struct {
	store Store
}

func New(store Store) *Session {
	return &Session{store: store}
}

// Token returns the stored credential. It satisfies the API client's token source.
func (s *Session) Token(ctx context.Context) (string, bool, error) {
	return s.store.Get(ctx)
}

// Begin stores a freshly issued credential. operator may be empty.
func (s *Session) Begin(ctx context.Context, token, operator string) error {
	if token == "" {
		return common.ErrEmptyCredential
	}
	if ops, ok := s.store.(OperatorStore); ok {
		return ops.Save(ctx, token, operator)
	}
	return s.store.Set(ctx, token)
}

// End forgets the credential.
func (s *Session) End(ctx context.Context) error {
	return s.store.Clear(ctx)
}

// Authenticated reports whether a credential is present. A store read
// failure counts as unauthenticated.
func (s *Session) Authenticated(ctx context.Context) bool {
	_, ok, err := s.store.Get(ctx)
	return err == nil && ok
}

// Describe returns a one-line label for the prompt and the whoami command.
//
// JWT claims are decoded without verification and only for display; expiry
// is never enforced here, the backend decides.
func (s *Session) Describe(ctx context.Context) (string, error) {
	token, ok, err := s.store.Get(ctx)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", common.ErrNotLoggedIn
	}

	label := "operator"
	if ops, isOp := s.store.(OperatorStore); isOp {
		if name, found, err := ops.Operator(ctx); err == nil && found {
			label = name
		}
	}

	sub, exp := peekClaims(token)
	switch {
	case sub != "" && !exp.IsZero():
		return fmt.Sprintf("%s (sub=%s, expires %s)", label, sub, exp.UTC().Format(time.RFC3339)), nil
	case sub != "":
		return fmt.Sprintf("%s (sub=%s)", label, sub), nil
	case !exp.IsZero():
		return fmt.Sprintf("%s (expires %s)", label, exp.UTC().Format(time.RFC3339)), nil
	}
	return label, nil
}

// peekClaims returns the subject and expiry of a JWT, or zero values for
// anything that is not one.
func peekClaims(token string) (string, time.Time) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}
	}
	sub, _ := claims.GetSubject()
	var exp time.Time
	if nd, err := claims.GetExpirationTime(); err == nil && nd != nil {
		exp = nd.Time
	}
	return sub, exp
}
