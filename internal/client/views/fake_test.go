package views

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
)

// step is one scripted answer of fakeFetcher.
type step struct {
	body string
	err  error
	// gate, when set, holds the answer until closed.
	gate chan struct{}
}

// fakeFetcher answers per path from a script; the last step of a path repeats.
type fakeFetcher struct {
	mu      sync.Mutex
	script  map[string][]step
	calls   []string
	started chan string
}

func newFake(script map[string][]step) *fakeFetcher {
	return &fakeFetcher{script: script, started: make(chan string, 16)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, path string, _ api.Options, _ api.Target, out any) error {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	steps := f.script[path]
	var s step
	switch {
	case len(steps) > 1:
		s, f.script[path] = steps[0], steps[1:]
	case len(steps) == 1:
		s = steps[0]
	default:
		s = step{err: &api.RequestError{Status: 404, Body: "not found"}}
	}
	f.mu.Unlock()

	if s.gate != nil {
		f.started <- path
		select {
		case <-s.gate:
		case <-ctx.Done():
			return &api.TransportError{Err: ctx.Err()}
		}
	}
	if s.err != nil {
		return s.err
	}
	return json.Unmarshal([]byte(s.body), out)
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
