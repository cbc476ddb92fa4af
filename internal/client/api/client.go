// Package api talks to the two backend services of the outreach platform.
//
// Every request is routed to exactly one Target. The client attaches the
// operator's bearer credential when one is stored, normalizes failures into
// RequestError, TransportError and DecodeError, and keeps no state between
// calls apart from reading the credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/dmitrijs2005/outreach-console/internal/client/api"

// Target selects a backend service.
type Target int

const (
	// Primary serves auth, leads and campaigns. It is the zero value.
	Primary Target = iota
	// Secondary serves voice calls.
	Secondary
)

func (t Target) String() string {
	switch t {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return fmt.Sprintf("target(%d)", int(t))
	}
}

// TokenSource yields the current credential; ok is false when logged out.
type TokenSource interface {
	Token(ctx context.Context) (token string, ok bool, err error)
}

// Options are the per-request knobs. A zero Method means GET. Body, when
// non-nil, is encoded as JSON.
type Options struct {
	Method string
	Header http.Header
	Body   any
}

// Body is a successful response.
type Body struct {
	Status      int
	ContentType string
	Raw         []byte
}

func (b *Body) IsJSON() bool {
	mt, _, err := mime.ParseMediaType(b.ContentType)
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}

func (b *Body) Text() string { return string(b.Raw) }

// Decode unmarshals the body as JSON regardless of the declared type.
func (b *Body) Decode(v any) error {
	return json.Unmarshal(b.Raw, v)
}

// Config configures a Client.
type Config struct {
	PrimaryURL   string
	SecondaryURL string
	// Timeout bounds one attempt; zero means no deadline.
	Timeout time.Duration
	// RetryAttempts is how many extra attempts follow a TransportError.
	// Server answers are never retried.
	RetryAttempts uint
	HTTPClient    *http.Client
	Logger        logging.Logger
}

type Client struct {
	bases   map[Target]string
	http    *http.Client
	tokens  TokenSource
	timeout time.Duration
	retries uint
	log     logging.Logger
	tracer  trace.Tracer
}

// New builds a Client. tokens may be nil, in which case no credential is sent.
func New(cfg Config, tokens TokenSource) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}
	return &Client{
		bases: map[Target]string{
			Primary:   strings.TrimRight(cfg.PrimaryURL, "/"),
			Secondary: strings.TrimRight(cfg.SecondaryURL, "/"),
		},
		http:    hc,
		tokens:  tokens,
		timeout: cfg.Timeout,
		retries: cfg.RetryAttempts,
		log:     log,
		tracer:  otel.Tracer(tracerName),
	}
}

// BaseURL resolves a target to its configured base URL.
func (c *Client) BaseURL(t Target) (string, error) {
	base, ok := c.bases[t]
	if !ok || base == "" {
		return "", fmt.Errorf("%w: %s", common.ErrUnknownTarget, t)
	}
	return base, nil
}

// Request issues one call to path on target and returns the raw success body.
func (c *Client) Request(ctx context.Context, path string, opts Options, target Target) (*Body, error) {
	base, err := c.BaseURL(target)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var payload []byte
	if opts.Body != nil {
		if payload, err = json.Marshal(opts.Body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	ctx, span := c.tracer.Start(ctx, "api.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
			attribute.String("outreach.target", target.String()),
		),
	)
	defer span.End()

	log := c.log.With("method", method, "path", path, "target", target.String())
	started := time.Now()

	attempt := func() (*Body, error) {
		b, err := c.do(ctx, method, base+path, opts.Header, payload)
		var te *TransportError
		if err != nil && !errors.As(err, &te) {
			return nil, backoff.Permanent(err)
		}
		return b, err
	}

	var body *Body
	if c.retries == 0 {
		body, err = attempt()
	} else {
		body, err = backoff.Retry[*Body](ctx, attempt,
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxTries(c.retries+1),
			backoff.WithNotify(func(err error, wait time.Duration) {
				log.Warn(ctx, "retrying request", "err", err, "wait", wait)
			}),
		)
	}
	var perm *backoff.PermanentError
	if errors.As(err, &perm) {
		err = perm.Err
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var re *RequestError
		if errors.As(err, &re) {
			span.SetAttributes(attribute.Int("http.response.status_code", re.Status))
		}
		log.Warn(ctx, "request failed", "err", err, "elapsed", time.Since(started))
		return nil, err
	}

	span.SetAttributes(attribute.Int("http.response.status_code", body.Status))
	log.Debug(ctx, "request done", "status", body.Status, "bytes", len(body.Raw), "elapsed", time.Since(started))
	return body, nil
}

func (c *Client) do(ctx context.Context, method, url string, header http.Header, payload []byte) (*Body, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rdr io.Reader
	if payload != nil {
		rdr = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		req.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())
	c.attachToken(ctx, req)
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, readErr := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil {
			raw = nil
		}
		return nil, &RequestError{Status: resp.StatusCode, Body: string(raw)}
	}
	if readErr != nil {
		return nil, &TransportError{Err: fmt.Errorf("read body: %w", readErr)}
	}

	return &Body{Status: resp.StatusCode, ContentType: resp.Header.Get("Content-Type"), Raw: raw}, nil
}

// attachToken sets the bearer header when a credential is stored. A missing
// credential never blocks the call; the backend decides.
func (c *Client) attachToken(ctx context.Context, req *http.Request) {
	if c.tokens == nil {
		return
	}
	token, ok, err := c.tokens.Token(ctx)
	if err != nil {
		c.log.Warn(ctx, "credential unavailable, sending anonymously", "err", err)
		return
	}
	if ok && token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
}

// Fetch is Request followed by decoding into out, which must be a pointer.
// When out implements models.Validator its Validate runs on the decoded value.
// A nil out discards the body.
func (c *Client) Fetch(ctx context.Context, path string, opts Options, target Target, out any) error {
	body, err := c.Request(ctx, path, opts, target)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := body.Decode(out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	if v, ok := out.(models.Validator); ok {
		if err := v.Validate(); err != nil {
			return &DecodeError{Path: path, Err: err}
		}
	}
	return nil
}

// Fetcher is the slice of Client that list consumers need.
type Fetcher interface {
	Fetch(ctx context.Context, path string, opts Options, target Target, out any) error
}

// List GETs a JSON array of T and validates every element.
func List[T models.Validator](ctx context.Context, f Fetcher, path string, target Target) ([]T, error) {
	var out []T
	if err := f.Fetch(ctx, path, Options{}, target, &out); err != nil {
		return nil, err
	}
	if err := models.ValidateAll(out); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
