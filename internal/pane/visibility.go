package pane

import "sort"

// Direction is the most recent scroll direction of a region.
type Direction int

const (
	DirectionDown Direction = iota
	DirectionUp
)

func (d Direction) String() string {
	if d == DirectionUp {
		return "up"
	}
	return "down"
}

// Handle is the host layer's reference to a rendered item. The tracker never
// renders anything itself; it only asks the host where an item sits and tells
// it when focus should move there.
type Handle interface {
	// Top returns the item's vertical position within its region. Items are
	// ordered by ascending Top for next/previous navigation.
	Top() int
	// Focus moves input focus to the item.
	Focus()
	// ScrollIntoView scrolls the region the minimal amount needed to bring
	// the item fully into the viewport.
	ScrollIntoView()
}

// Change is one item's visibility transition within a batch.
type Change struct {
	ID      string
	Visible bool
}

// Observer is the platform primitive that watches handles for viewport
// intersection changes. A fake implementation that feeds synthetic batches
// into Tracker.ApplyChanges is enough for tests; the tracker works without
// any observer when the host applies changes directly.
type Observer interface {
	Observe(id string, h Handle)
	Unobserve(id string)
}

type entry struct {
	id      string
	handle  Handle
	visible bool
	seq     int
}

// Tracker records which registered items of one scrollable region are
// currently inside the viewport, and the direction of the last scroll.
// It never touches focus state; a Coordinator consumes it.
//
// All methods must be called from the UI update loop.
type Tracker struct {
	observer Observer
	entries  map[string]*entry
	nextSeq  int

	dir       Direction
	offset    int
	hasOffset bool

	onBatch func([]Change)
}

func NewTracker(observer Observer) *Tracker {
	return &Tracker{
		observer: observer,
		entries:  make(map[string]*entry),
	}
}

// Register adds an item to the region. Registering an already-known id only
// refreshes its handle; visibility and ordering ties survive re-renders.
func (t *Tracker) Register(id string, h Handle) {
	if e, ok := t.entries[id]; ok {
		e.handle = h
		return
	}
	t.entries[id] = &entry{id: id, handle: h, seq: t.nextSeq}
	t.nextSeq++
	if t.observer != nil {
		t.observer.Observe(id, h)
	}
}

// Unregister removes an item. Unknown ids are a no-op; UI re-renders may
// unregister twice.
func (t *Tracker) Unregister(id string) {
	if _, ok := t.entries[id]; !ok {
		return
	}
	delete(t.entries, id)
	if t.observer != nil {
		t.observer.Unobserve(id)
	}
}

func (t *Tracker) Registered(id string) bool {
	_, ok := t.entries[id]
	return ok
}

func (t *Tracker) IsVisible(id string) bool {
	e, ok := t.entries[id]
	return ok && e.visible
}

// RecordScroll notes the region's new scroll offset. The direction flips only
// when the offset actually moves.
func (t *Tracker) RecordScroll(offset int) {
	if t.hasOffset {
		if offset > t.offset {
			t.dir = DirectionDown
		} else if offset < t.offset {
			t.dir = DirectionUp
		}
	}
	t.offset = offset
	t.hasOffset = true
}

func (t *Tracker) Direction() Direction {
	return t.dir
}

// ApplyChanges applies one visibility batch atomically: every entry is
// updated before any listener runs, so the listener sees a consistent
// snapshot. Changes for unknown ids and changes that do not alter state are
// dropped.
func (t *Tracker) ApplyChanges(changes []Change) {
	applied := make([]Change, 0, len(changes))
	for _, ch := range changes {
		e, ok := t.entries[ch.ID]
		if !ok || e.visible == ch.Visible {
			continue
		}
		e.visible = ch.Visible
		applied = append(applied, Change{ID: e.id, Visible: e.visible})
	}
	if len(applied) > 0 && t.onBatch != nil {
		t.onBatch(applied)
	}
}

// ordered returns entries sorted by ascending Top. Identical positions keep
// registration order; that layout should not occur, but it must stay stable.
func (t *Tracker) ordered(visibleOnly bool) []*entry {
	out := make([]*entry, 0, len(t.entries))
	for _, e := range t.entries {
		if visibleOnly && !e.visible {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		ti, tj := out[i].handle.Top(), out[j].handle.Top()
		if ti != tj {
			return ti < tj
		}
		return out[i].seq < out[j].seq
	})
	return out
}

// OrderedIDs returns all registered ids by on-screen position.
func (t *Tracker) OrderedIDs() []string {
	return ids(t.ordered(false))
}

// VisibleIDs returns the currently visible ids by on-screen position.
func (t *Tracker) VisibleIDs() []string {
	return ids(t.ordered(true))
}

func ids(entries []*entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.id
	}
	return out
}
