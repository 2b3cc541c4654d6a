package pane

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeHandle is a host-side row stand-in with a fixed position.
type fakeHandle struct {
	top        int
	focused    int
	scrolledTo int
}

func (h *fakeHandle) Top() int        { return h.top }
func (h *fakeHandle) Focus()          { h.focused++ }
func (h *fakeHandle) ScrollIntoView() { h.scrolledTo++ }

type fakeObserver struct {
	observed   []string
	unobserved []string
}

func (o *fakeObserver) Observe(id string, _ Handle) { o.observed = append(o.observed, id) }
func (o *fakeObserver) Unobserve(id string)         { o.unobserved = append(o.unobserved, id) }

func TestTrackerRegisterIsIdempotent(t *testing.T) {
	obs := &fakeObserver{}
	tr := NewTracker(obs)

	first := &fakeHandle{top: 3}
	second := &fakeHandle{top: 3}
	tr.Register("a", first)
	tr.ApplyChanges([]Change{{ID: "a", Visible: true}})
	tr.Register("a", second)

	require.True(t, tr.Registered("a"))
	require.True(t, tr.IsVisible("a"), "re-register must not reset visibility")
	require.Equal(t, []string{"a"}, obs.observed, "re-register must not observe twice")
}

func TestTrackerUnregisterUnknownIsNoop(t *testing.T) {
	obs := &fakeObserver{}
	tr := NewTracker(obs)

	tr.Register("a", &fakeHandle{})
	tr.Unregister("a")
	tr.Unregister("a")
	tr.Unregister("never-registered")

	require.False(t, tr.Registered("a"))
	require.Equal(t, []string{"a"}, obs.unobserved)
}

func TestTrackerNeverContainsUnregisteredID(t *testing.T) {
	tr := NewTracker(nil)
	tr.Register("a", &fakeHandle{top: 0})
	tr.Register("b", &fakeHandle{top: 1})
	tr.Unregister("a")
	tr.Register("a", &fakeHandle{top: 2})
	tr.Unregister("a")

	require.Equal(t, []string{"b"}, tr.OrderedIDs())
}

func TestTrackerScrollDirection(t *testing.T) {
	tr := NewTracker(nil)
	require.Equal(t, DirectionDown, tr.Direction(), "default direction is down")

	tr.RecordScroll(0)
	tr.RecordScroll(5)
	require.Equal(t, DirectionDown, tr.Direction())

	tr.RecordScroll(2)
	require.Equal(t, DirectionUp, tr.Direction())

	tr.RecordScroll(2)
	require.Equal(t, DirectionUp, tr.Direction(), "unchanged offset keeps direction")
}

func TestTrackerOrdersByTopWithRegistrationTieBreak(t *testing.T) {
	tr := NewTracker(nil)
	tr.Register("low", &fakeHandle{top: 10})
	tr.Register("tie-first", &fakeHandle{top: 5})
	tr.Register("tie-second", &fakeHandle{top: 5})
	tr.Register("high", &fakeHandle{top: 0})

	require.Equal(t, []string{"high", "tie-first", "tie-second", "low"}, tr.OrderedIDs())
}

func TestTrackerApplyChangesBatchesAtomically(t *testing.T) {
	tr := NewTracker(nil)
	tr.Register("a", &fakeHandle{top: 0})
	tr.Register("b", &fakeHandle{top: 1})

	var sawDuringBatch []string
	tr.onBatch = func(changes []Change) {
		// By the time the listener runs, the whole batch is applied.
		sawDuringBatch = tr.VisibleIDs()
		require.Len(t, changes, 2)
	}
	tr.ApplyChanges([]Change{
		{ID: "a", Visible: true},
		{ID: "b", Visible: true},
		{ID: "ghost", Visible: true},
	})

	require.Equal(t, []string{"a", "b"}, sawDuringBatch)
}

func TestTrackerDropsNoopChanges(t *testing.T) {
	tr := NewTracker(nil)
	tr.Register("a", &fakeHandle{})

	batches := 0
	tr.onBatch = func([]Change) { batches++ }

	tr.ApplyChanges([]Change{{ID: "a", Visible: false}})
	require.Zero(t, batches, "invisible to invisible is not a transition")

	tr.ApplyChanges([]Change{{ID: "a", Visible: true}})
	tr.ApplyChanges([]Change{{ID: "a", Visible: true}})
	require.Equal(t, 1, batches)
}
