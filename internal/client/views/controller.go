// Package views holds the console's local view state.
//
// Controller is the generic list view: fetch, search, status filter and
// selection over one resource kind. Driller is the on-demand nested fetch
// opened for a selected record (events, recipients, a recipient timeline).
// Leads, campaigns and calls are Controller instances configured by a
// Resource, not separate implementations.
package views

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

// Resource describes one listable record kind.
type Resource[T any] struct {
	Kind     string
	ListPath string
	Target   api.Target
	// Statuses enumerates the values accepted by SetStatusFilter besides "all".
	Statuses []string
	Status   func(T) string
	// Searchable returns the free-text fields matched by the search term.
	Searchable func(T) []string
	ID         func(T) int64
}

// Snapshot is a copy of a controller's state at one point in time.
type Snapshot[T any] struct {
	Kind         string
	Records      []T
	Loading      bool
	Error        string
	SearchTerm   string
	StatusFilter string
	Selected     *T
	LastUpdated  time.Time
}

type Controller[T models.Validator] struct {
	res Resource[T]
	api api.Fetcher
	log logging.Logger
	now func() time.Time

	mu       sync.Mutex
	gen      uint64
	records  []T
	loading  bool
	err      error
	term     string
	status   string
	selected *T
	updated  time.Time
}

func NewController[T models.Validator](res Resource[T], f api.Fetcher, log logging.Logger) *Controller[T] {
	return &Controller[T]{
		res:     res,
		api:     f,
		log:     log.With("kind", res.Kind),
		now:     time.Now,
		records: []T{},
		status:  common.StatusAll,
	}
}

func (c *Controller[T]) Resource() Resource[T] { return c.res }

// Load refetches the list and replaces the records wholesale. On failure the
// previous records are kept and the error is recorded. Only the most recently
// started Load may change state; an older one that settles late is ignored.
func (c *Controller[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.loading = true
	c.err = nil
	c.mu.Unlock()

	recs, err := api.List[T](ctx, c.api, c.res.ListPath, c.res.Target)

	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		c.log.Debug(ctx, "discarding superseded load", "gen", gen)
		return err
	}
	c.loading = false
	if err != nil {
		c.err = err
		c.log.Warn(ctx, "load failed", "err", err)
		return err
	}
	c.records = recs
	c.updated = c.now()
	if c.selected != nil {
		if fresh, ok := c.find(c.res.ID(*c.selected)); ok {
			c.selected = &fresh
		}
	}
	c.log.Debug(ctx, "records loaded", "count", len(recs))
	return nil
}

// SetSearchTerm changes the search term. It never fetches.
func (c *Controller[T]) SetSearchTerm(term string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.term = term
}

// SetStatusFilter changes the status filter; "" and "all" disable it.
func (c *Controller[T]) SetStatusFilter(status string) error {
	status = strings.ToLower(strings.TrimSpace(status))
	if status == "" {
		status = common.StatusAll
	}
	if status != common.StatusAll && !slices.Contains(c.res.Statuses, status) {
		return fmt.Errorf("%w %q for %s (want all, %s)", common.ErrUnknownStatus, status, c.res.Kind, strings.Join(c.res.Statuses, ", "))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	return nil
}

// Visible returns the records matching the search term and status filter,
// in load order.
func (c *Controller[T]) Visible() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Filter(c.res, c.records, c.term, c.status)
}

// Filter is the pure predicate behind Visible.
func Filter[T any](res Resource[T], records []T, term, status string) []T {
	needle := strings.ToLower(term)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if status != "" && status != common.StatusAll && res.Status(r) != status {
			continue
		}
		if needle != "" && !matches(res.Searchable(r), needle) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matches(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

// Select marks the record with the given id as the open detail.
func (c *Controller[T]) Select(id int64) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.find(id)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %s #%d", common.ErrRecordNotFound, c.res.Kind, id)
	}
	c.selected = &rec
	return rec, nil
}

func (c *Controller[T]) Deselect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selected = nil
}

// Selected returns the open record, if any.
func (c *Controller[T]) Selected() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		var zero T
		return zero, false
	}
	return *c.selected, true
}

func (c *Controller[T]) find(id int64) (T, bool) {
	for _, r := range c.records {
		if c.res.ID(r) == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Counts tallies records per status. Every known status is present, zero or
// not, and "all" holds the total.
func (c *Controller[T]) Counts() map[string]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[string]int, len(c.res.Statuses)+1)
	for _, s := range c.res.Statuses {
		counts[s] = 0
	}
	for _, r := range c.records {
		counts[c.res.Status(r)]++
	}
	counts[common.StatusAll] = len(c.records)
	return counts
}

func (c *Controller[T]) State() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := Snapshot[T]{
		Kind:         c.res.Kind,
		Records:      slices.Clone(c.records),
		Loading:      c.loading,
		SearchTerm:   c.term,
		StatusFilter: c.status,
		LastUpdated:  c.updated,
	}
	if c.err != nil {
		s.Error = c.err.Error()
	}
	if c.selected != nil {
		sel := *c.selected
		s.Selected = &sel
	}
	return s
}

// AutoRefresh reloads every interval until ctx is done or stop is called.
// Failures are recorded in the state like a manual refresh.
func (c *Controller[T]) AutoRefresh(ctx context.Context, interval time.Duration) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				_ = c.Load(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
	return func() {
		cancel()
		<-done
	}
}
