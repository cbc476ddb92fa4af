package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/outreach-console/internal/client/config"
	"github.com/dmitrijs2005/outreach-console/internal/client/session"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
	"github.com/stretchr/testify/require"
)

type outputBuffer struct {
	mu sync.Mutex
	b  strings.Builder
}

func (o *outputBuffer) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.b.String()
}

func (o *outputBuffer) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.b.Reset()
}

// captureOutput redirects printlnFn for the duration of the test.
func captureOutput(t *testing.T) *outputBuffer {
	t.Helper()
	out := &outputBuffer{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.mu.Lock()
		defer out.mu.Unlock()
		return fmt.Fprintln(&out.b, a...)
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

// stubAnswers makes the prompts return answers in order, then "".
func stubAnswers(t *testing.T, answers ...string) {
	t.Helper()
	origText, origMulti := getSimpleText, getMultiline
	next := func() string {
		if len(answers) == 0 {
			return ""
		}
		a := answers[0]
		answers = answers[1:]
		return a
	}
	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return next(), nil }
	getMultiline = func(*bufio.Reader, string, io.Writer) (string, error) { return next(), nil }
	t.Cleanup(func() { getSimpleText, getMultiline = origText, origMulti })
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

const testToken = "tok-123"

// backends fakes both services and records the non-GET requests it served.
type backends struct {
	primary   *httptest.Server
	secondary *httptest.Server

	mu     sync.Mutex
	writes []string
	bodies map[string]map[string]any
}

func (b *backends) recordWrite(r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	b.mu.Lock()
	defer b.mu.Unlock()
	key := r.Method + " " + r.URL.Path
	b.writes = append(b.writes, key)
	b.bodies[key] = body
}

func (b *backends) written() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.writes...)
}

func (b *backends) body(key string) map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func authorized(w http.ResponseWriter, r *http.Request) bool {
	if r.Header.Get("Authorization") != "Bearer "+testToken {
		http.Error(w, `{"detail":"Not authenticated"}`, http.StatusUnauthorized)
		return false
	}
	return true
}

func reply(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}
}

func (b *backends) write(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !authorized(w, r) {
			return
		}
		b.recordWrite(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

const (
	leadsJSON = `[
		{"id":1,"name":"Ada Lovelace","email":"ada@acme.io","company":"Acme","stage":"new"},
		{"id":2,"name":"Grace Hopper","email":"grace@navy.mil","company":"Navy","stage":"qualified"}
	]`
	campaignsJSON = `[
		{"id":1,"name":"Spring push","offer":"20% off","status":"active",
		 "emails":[{"sequence_order":1,"subject_template":"Hi","body_template":"Hello","send_delay_hours":0}]}
	]`
	recipientsJSON = `[
		{"id":5,"campaign_id":1,"lead_id":1,"email":"ada@acme.io","current_step":1,"paused":false},
		{"id":6,"campaign_id":1,"lead_id":2,"email":"grace@navy.mil","current_step":2,"paused":true}
	]`
	timelineJSON = `[{"id":9,"recipient_id":5,"event_type":"email_sent","payload":{"step":1}}]`
	callsJSON    = `[{"id":7,"phone":"+15550100","email":"ada@acme.io","status":"completed","purpose":"demo",
		"notes":[{"id":1,"content":"call back friday"}]}]`
	callEventsJSON = `[{"id":3,"call_id":7,"event_type":"answered"}]`
)

func newBackends(t *testing.T) *backends {
	t.Helper()
	b := &backends{bodies: map[string]map[string]any{}}

	pm := http.NewServeMux()
	pm.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		var creds struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds.Password != "secret" {
			http.Error(w, `{"detail":"Incorrect email or password"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"access_token":"`+testToken+`","token_type":"bearer"}`)
	})
	pm.HandleFunc("GET /leads", reply(leadsJSON))
	pm.HandleFunc("POST /leads/", b.write(http.StatusCreated, `{"id":3,"name":"Linus","email":"linus@example.org","stage":"new"}`))
	pm.HandleFunc("DELETE /leads/{id}", b.write(http.StatusOK, `{"ok":true}`))
	pm.HandleFunc("GET /campaigns/{$}", reply(campaignsJSON))
	pm.HandleFunc("POST /campaigns/{$}", b.write(http.StatusCreated, `{"id":2,"name":"Launch","offer":"free trial","status":"draft"}`))
	pm.HandleFunc("GET /campaigns/1/recipients", reply(recipientsJSON))
	pm.HandleFunc("GET /campaigns/1/recipients/5/events", reply(timelineJSON))
	pm.HandleFunc("POST /campaigns/1/enroll", b.write(http.StatusOK, `{"ok":true}`))
	pm.HandleFunc("POST /campaigns/1/recipients/{rid}/pause", b.write(http.StatusOK, `{"ok":true}`))
	b.primary = httptest.NewServer(pm)
	t.Cleanup(b.primary.Close)

	sm := http.NewServeMux()
	sm.HandleFunc("GET /calls", reply(callsJSON))
	sm.HandleFunc("GET /calls/7/events", reply(callEventsJSON))
	sm.HandleFunc("POST /calls/start", b.write(http.StatusOK, `{"ok":true,"calls":[8]}`))
	b.secondary = httptest.NewServer(sm)
	t.Cleanup(b.secondary.Close)

	return b
}

// newTestApp builds an App against b with an in-memory session.
func newTestApp(t *testing.T, b *backends, token string) *App {
	t.Helper()
	store := session.NewMemoryStore()
	if token != "" {
		require.NoError(t, store.Save(t.Context(), token, "ops@example.org"))
	}
	cfg := &config.Config{
		PrimaryAPI:   b.primary.URL,
		SecondaryAPI: b.secondary.URL,
		AdminPath:    "admin",
	}
	return newApp(cfg, logging.Discard(), session.New(store))
}
