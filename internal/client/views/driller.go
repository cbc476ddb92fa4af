package views

import (
	"context"
	"slices"
	"sync"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
)

// DrillState is a copy of a Driller's state.
type DrillState[N any] struct {
	Key     string
	Open    bool
	Records []N
	Loading bool
}

// Driller fetches records nested under one parent. Failures degrade to an
// empty list and are only logged. When selections overlap, the result of the
// latest Load wins and earlier ones are dropped.
type Driller[N models.Validator] struct {
	api api.Fetcher
	log logging.Logger

	mu      sync.Mutex
	gen     uint64
	key     string
	open    bool
	records []N
	loading bool
}

func NewDriller[N models.Validator](f api.Fetcher, log logging.Logger) *Driller[N] {
	return &Driller[N]{api: f, log: log, records: []N{}}
}

// Load opens the detail for key and fetches path on target. The previous
// nested records are dropped before the request is sent.
func (d *Driller[N]) Load(ctx context.Context, key, path string, target api.Target) {
	d.mu.Lock()
	d.gen++
	gen := d.gen
	d.key = key
	d.open = true
	d.records = []N{}
	d.loading = true
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		if d.gen == gen {
			d.loading = false
		}
		d.mu.Unlock()
	}()

	recs, err := api.List[N](ctx, d.api, path, target)
	if err != nil {
		d.log.Warn(ctx, "nested fetch failed, showing empty", "key", key, "path", path, "err", err)
		recs = []N{}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.gen != gen || d.key != key {
		d.log.Debug(ctx, "discarding stale nested result", "key", key, "current", d.key)
		return
	}
	d.records = recs
}

// Reset closes the detail and forgets its records. In-flight loads are
// discarded when they settle.
func (d *Driller[N]) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.gen++
	d.key = ""
	d.open = false
	d.records = []N{}
	d.loading = false
}

func (d *Driller[N]) State() DrillState[N] {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DrillState[N]{
		Key:     d.key,
		Open:    d.open,
		Records: slices.Clone(d.records),
		Loading: d.loading,
	}
}
