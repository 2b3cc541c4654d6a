// Package pane coordinates keyboard focus across independently scrolling
// regions: a visibility tracker and focus coordinator per region, and a
// registry that lets any part of the app address a region by name.
package pane

import (
	"sync"

	"github.com/rs/zerolog"
)

// Well-known pane keys.
const (
	KeyCommitList = "commit-list"
	KeyFileTree   = "file-tree"
	KeyDiffView   = "diff-view"
)

// Pane is a named focusable region. FocusItem moves actual input focus to an
// item and is meant for deliberate jumps; SoftFocusItem is a passive
// highlight that must not steal whatever the user is typing or navigating
// elsewhere.
type Pane interface {
	FocusPane()
	FocusItem(itemID string)
	SoftFocusItem(itemID string)
}

// Registry maps pane keys to their handles. Construct one per application
// session and pass it to whoever needs cross-pane jumps; there is no package
// singleton.
//
// The registry carries its own mutex: lookups may come from command
// goroutines, not just the update loop.
type Registry struct {
	mu    sync.Mutex
	panes map[string]Pane
	log   zerolog.Logger
}

func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		panes: make(map[string]Pane),
		log:   log,
	}
}

// Register adds a pane under key. Re-registering a key replaces the prior
// handle, which supports remounts.
func (r *Registry) Register(key string, p Pane) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.panes[key] = p
}

func (r *Registry) Unregister(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.panes, key)
}

// FocusPane gives the named pane input focus. Unknown keys log a warning and
// do nothing; shortcuts may fire before a pane has mounted.
func (r *Registry) FocusPane(key string) {
	if p := r.lookup(key, "focus pane"); p != nil {
		p.FocusPane()
	}
}

// FocusPaneItem focuses one item inside the named pane, e.g. opening a file
// in the diff pane from the file tree.
func (r *Registry) FocusPaneItem(key, itemID string) {
	if p := r.lookup(key, "focus pane item"); p != nil {
		p.FocusItem(itemID)
	}
}

// SoftFocusPaneItem highlights one item inside the named pane without moving
// input focus.
func (r *Registry) SoftFocusPaneItem(key, itemID string) {
	if p := r.lookup(key, "soft focus pane item"); p != nil {
		p.SoftFocusItem(itemID)
	}
}

func (r *Registry) lookup(key, op string) Pane {
	r.mu.Lock()
	p, ok := r.panes[key]
	r.mu.Unlock()
	if !ok {
		r.log.Warn().Str("pane", key).Str("op", op).Msg("pane not registered")
		return nil
	}
	return p
}
