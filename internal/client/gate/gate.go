// Package gate guards protected console routes.
//
// A Gate starts Pending and is resolved on Mount: without a credential it
// redirects to the login route and renders nothing, otherwise it renders the
// guarded view. It does not watch the session afterwards; every navigation
// mounts a fresh Gate.
package gate

import (
	"context"
	"fmt"
)

type State int

const (
	Pending State = iota
	Unauthenticated
	Authorized
)

func (s State) String() string {
	switch s {
	case Pending:
		return "pending"
	case Unauthenticated:
		return "unauthenticated"
	case Authorized:
		return "authorized"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Checker reports whether a credential is present.
type Checker interface {
	Authenticated(ctx context.Context) bool
}

type Gate struct {
	check    Checker
	redirect func(ctx context.Context)
	render   func(ctx context.Context) error
	state    State
}

func New(check Checker, redirect func(ctx context.Context), render func(ctx context.Context) error) *Gate {
	return &Gate{check: check, redirect: redirect, render: render}
}

// Mount evaluates the session once and either redirects or renders.
// The render error, if any, is returned.
func (g *Gate) Mount(ctx context.Context) error {
	g.state = Pending
	if !g.check.Authenticated(ctx) {
		g.state = Unauthenticated
		g.redirect(ctx)
		return nil
	}
	g.state = Authorized
	return g.render(ctx)
}

func (g *Gate) State() State { return g.state }
