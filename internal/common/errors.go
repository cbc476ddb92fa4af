// Package common defines shared constants and sentinel errors used across
// the API, session and view layers of the console. Callers should use
// errors.Is to match these values.
package common

import "errors"

var (
	// Session errors.
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrEmptyCredential = errors.New("empty credential")

	// Transport / routing errors.
	ErrUnknownTarget = errors.New("unknown backend target")
	ErrUnavailable   = errors.New("backend unavailable")

	// View errors.
	ErrRecordNotFound  = errors.New("record not found")
	ErrUnknownStatus   = errors.New("unknown status")
	ErrNothingSelected = errors.New("no record selected")
)
