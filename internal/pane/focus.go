package pane

// Coordinator owns the focused item id of one region and keeps it valid as
// content scrolls. It is the region facade the rendering layer talks to:
// rows register through it, and keyboard handlers call FocusNext and
// FocusPrevious.
type Coordinator struct {
	tracker   *Tracker
	focusedID string
}

func NewCoordinator(t *Tracker) *Coordinator {
	c := &Coordinator{tracker: t}
	t.onBatch = c.visibilityChanged
	return c
}

// Tracker exposes the underlying visibility tracker, mainly so callers can
// enumerate registered ids when reconciling content changes.
func (c *Coordinator) Tracker() *Tracker { return c.tracker }

func (c *Coordinator) Register(id string, h Handle)     { c.tracker.Register(id, h) }
func (c *Coordinator) Unregister(id string)             { c.tracker.Unregister(id) }
func (c *Coordinator) RecordScroll(offset int)          { c.tracker.RecordScroll(offset) }
func (c *Coordinator) ApplyVisibility(changes []Change) { c.tracker.ApplyChanges(changes) }

// SetFocusedID unconditionally sets the focused id. An empty id clears focus.
func (c *Coordinator) SetFocusedID(id string) {
	c.focusedID = id
}

func (c *Coordinator) FocusedID() string {
	return c.focusedID
}

func (c *Coordinator) IsFocused(id string) bool {
	return id != "" && c.focusedID == id
}

// FocusNext moves focus to the item below the current one, clamping at the
// bottom. The target receives input focus and is scrolled into view at the
// nearest edge.
func (c *Coordinator) FocusNext() { c.step(1) }

// FocusPrevious moves focus to the item above the current one, clamping at
// the top.
func (c *Coordinator) FocusPrevious() { c.step(-1) }

func (c *Coordinator) step(delta int) {
	if c.focusedID == "" {
		return
	}
	ordered := c.tracker.ordered(false)
	idx := -1
	for i, e := range ordered {
		if e.id == c.focusedID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	next := idx + delta
	if next < 0 || next >= len(ordered) {
		return
	}
	target := ordered[next]
	c.focusedID = target.id
	target.handle.Focus()
	target.handle.ScrollIntoView()
}

// visibilityChanged runs after a whole batch has been applied. If the focused
// item scrolled out, focus jumps to the visible item on the side the user is
// scrolling toward: topmost when scrolling down, bottommost when scrolling
// up. With nothing visible the stale id is kept; the user may scroll back.
func (c *Coordinator) visibilityChanged(changes []Change) {
	if c.focusedID == "" {
		return
	}
	hidden := false
	for _, ch := range changes {
		if ch.ID == c.focusedID && !ch.Visible {
			hidden = true
			break
		}
	}
	if !hidden || c.tracker.IsVisible(c.focusedID) {
		return
	}

	visible := c.tracker.ordered(true)
	if len(visible) == 0 {
		return
	}
	target := visible[0]
	if c.tracker.Direction() == DirectionUp {
		target = visible[len(visible)-1]
	}
	c.focusedID = target.id
	target.handle.Focus()
}
