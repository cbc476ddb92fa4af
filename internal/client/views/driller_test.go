package views

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/outreach-console/internal/client/api"
	"github.com/dmitrijs2005/outreach-console/internal/client/models"
	"github.com/dmitrijs2005/outreach-console/internal/common"
	"github.com/dmitrijs2005/outreach-console/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoCalls = `[{"id":1,"phone":"+1555","status":"completed"},{"id":2,"phone":"+1666","status":"failed"}]`

func eventIDs(evs []models.CallEvent) []int64 {
	out := []int64{}
	for _, e := range evs {
		out = append(out, e.ID)
	}
	return out
}

func TestCalls_SelectLoadsEvents(t *testing.T) {
	fake := newFake(map[string][]step{
		api.CallsPath:         {{body: twoCalls}},
		api.CallEventsPath(1): {{body: `[{"id":10,"call_id":1,"event_type":"ringing"},{"id":11,"call_id":1,"event_type":"answered"}]`}},
	})
	v := NewCalls(fake, logging.Discard())
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))

	assert.False(t, v.Detail.State().Open)

	_, err := v.Select(ctx, 1)
	require.NoError(t, err)
	st := v.Detail.State()
	assert.True(t, st.Open)
	assert.False(t, st.Loading)
	assert.Equal(t, "1", st.Key)
	assert.Equal(t, []int64{10, 11}, eventIDs(st.Records))

	v.Deselect()
	st = v.Detail.State()
	assert.False(t, st.Open)
	assert.Empty(t, st.Records)
	assert.Nil(t, v.State().Selected)
}

func TestCalls_SelectUnknownDoesNotFetch(t *testing.T) {
	fake := newFake(map[string][]step{api.CallsPath: {{body: twoCalls}}})
	v := NewCalls(fake, logging.Discard())
	require.NoError(t, v.Load(context.Background()))

	_, err := v.Select(context.Background(), 99)
	require.ErrorIs(t, err, common.ErrRecordNotFound)
	assert.Equal(t, 1, fake.callCount())
}

// Selecting A then B before A's events arrive shows only B's events,
// whatever order the responses come back in.
func TestCalls_LastSelectionWins(t *testing.T) {
	gateA, gateB := make(chan struct{}), make(chan struct{})
	fake := newFake(map[string][]step{
		api.CallsPath:         {{body: twoCalls}},
		api.CallEventsPath(1): {{body: `[{"id":10,"call_id":1,"event_type":"a"}]`, gate: gateA}},
		api.CallEventsPath(2): {{body: `[{"id":20,"call_id":2,"event_type":"b"}]`, gate: gateB}},
	})
	v := NewCalls(fake, logging.Discard())
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))

	doneA, doneB := make(chan struct{}), make(chan struct{})
	go func() { defer close(doneA); _, _ = v.Select(ctx, 1) }()
	require.Equal(t, api.CallEventsPath(1), <-fake.started)

	go func() { defer close(doneB); _, _ = v.Select(ctx, 2) }()
	require.Equal(t, api.CallEventsPath(2), <-fake.started)

	st := v.Detail.State()
	assert.True(t, st.Loading)
	assert.Empty(t, st.Records, "previous nested result dropped on reselect")

	close(gateB)
	<-doneB
	close(gateA)
	<-doneA

	st = v.Detail.State()
	assert.Equal(t, "2", st.Key)
	assert.False(t, st.Loading)
	assert.Equal(t, []int64{20}, eventIDs(st.Records))
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, int64(2), sel.ID)
}

func TestDriller_StaleLoadKeepsNewerLoadingFlag(t *testing.T) {
	gateA, gateB := make(chan struct{}), make(chan struct{})
	fake := newFake(map[string][]step{
		"/a": {{body: `[]`, gate: gateA}},
		"/b": {{body: `[{"id":1,"call_id":2,"event_type":"x"}]`, gate: gateB}},
	})
	d := NewDriller[models.CallEvent](fake, logging.Discard())
	ctx := context.Background()

	doneA, doneB := make(chan struct{}), make(chan struct{})
	go func() { defer close(doneA); d.Load(ctx, "a", "/a", api.Primary) }()
	<-fake.started
	go func() { defer close(doneB); d.Load(ctx, "b", "/b", api.Primary) }()
	<-fake.started

	close(gateA)
	<-doneA
	assert.True(t, d.State().Loading, "stale completion must not clear the newer load's flag")

	close(gateB)
	<-doneB
	assert.False(t, d.State().Loading)
	assert.Len(t, d.State().Records, 1)
}

func TestDriller_ResetDiscardsInFlight(t *testing.T) {
	gate := make(chan struct{})
	fake := newFake(map[string][]step{"/a": {{body: `[{"id":1,"call_id":1,"event_type":"x"}]`, gate: gate}}})
	d := NewDriller[models.CallEvent](fake, logging.Discard())

	done := make(chan struct{})
	go func() { defer close(done); d.Load(context.Background(), "a", "/a", api.Primary) }()
	<-fake.started

	d.Reset()
	close(gate)
	<-done

	st := d.State()
	assert.False(t, st.Open)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Records)
}

// A 404 on the events endpoint degrades the detail to an empty list.
func TestCalls_NestedNotFoundIsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/calls":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `[{"id":7,"phone":"+1","status":"completed"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, "not found")
		}
	}))
	defer srv.Close()

	client := api.New(api.Config{PrimaryURL: "http://primary.invalid", SecondaryURL: srv.URL}, nil)
	v := NewCalls(client, logging.Discard())
	ctx := context.Background()
	require.NoError(t, v.Load(ctx))

	_, err := v.Select(ctx, 7)
	require.NoError(t, err, "nested failures are not propagated")

	st := v.Detail.State()
	assert.True(t, st.Open)
	assert.False(t, st.Loading)
	assert.NotNil(t, st.Records)
	assert.Empty(t, st.Records)
	assert.Empty(t, v.State().Error, "page-level error untouched")
}
