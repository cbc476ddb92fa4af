package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/outreach-console/internal/common"
)

// RequestError is a non-2xx answer from a backend. Body is the response text
// as received, empty when it could not be read.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	text := strings.TrimSpace(e.Body)
	if text == "" {
		text = http.StatusText(e.Status)
	}
	return fmt.Sprintf("API %d: %s", e.Status, text)
}

// Is matches common.ErrUnauthorized for 401 and 403. The client itself never
// clears the credential or redirects on these.
func (e *RequestError) Is(target error) bool {
	return target == common.ErrUnauthorized &&
		(e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// TransportError means the request never reached the server or the response
// could not be read.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool {
	return target == common.ErrUnavailable
}

// DecodeError is a 2xx body that does not have the expected shape.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
