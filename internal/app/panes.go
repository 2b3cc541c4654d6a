package app

import (
	"prview/internal/pane"
)

// The three app panes implement pane.Pane over a shared *Model. Hard focus
// moves the active pane and the coordinator's focused item; soft focus only
// highlights.

type commitsPane struct{ m *Model }

func (p commitsPane) FocusPane() {
	p.m.activePane = pane.KeyCommitList
	p.m.ensureCommitFocus()
}

func (p commitsPane) FocusItem(id string) {
	if _, ok := p.m.commitIndex[id]; !ok {
		p.m.log.Warn().Str("commit", id).Msg("focus requested for unknown commit")
		return
	}
	p.m.activePane = pane.KeyCommitList
	p.m.commitCo.SetFocusedID(id)
	p.m.scrollCommitIntoView(id)
	p.m.syncCommitVisibility()
}

func (p commitsPane) SoftFocusItem(id string) {
	p.m.softCommit = id
	if p.m.cfg.SoftFocusScroll {
		p.m.scrollCommitIntoView(id)
		p.m.syncCommitVisibility()
	}
}

type filesPane struct{ m *Model }

func (p filesPane) FocusPane() {
	p.m.activePane = pane.KeyFileTree
	p.m.ensureFileFocus()
}

func (p filesPane) FocusItem(id string) {
	if _, ok := p.m.rowIndex[id]; !ok {
		p.m.log.Warn().Str("path", id).Msg("focus requested for unknown file row")
		return
	}
	p.m.activePane = pane.KeyFileTree
	p.m.fileCo.SetFocusedID(id)
	p.m.scrollFileIntoView(id)
	p.m.syncFileVisibility()
}

func (p filesPane) SoftFocusItem(id string) {
	p.m.softFile = id
	if p.m.cfg.SoftFocusScroll {
		p.m.scrollFileIntoView(id)
		p.m.syncFileVisibility()
	}
}

type diffPane struct{ m *Model }

func (p diffPane) FocusPane() {
	p.m.activePane = pane.KeyDiffView
}

// FocusItem opens a file in the diff pane; item ids here are file paths.
func (p diffPane) FocusItem(id string) {
	p.m.activePane = pane.KeyDiffView
	p.m.pendingDiffPath = id
}

// SoftFocusItem shows a file's diff without moving the keyboard off the
// current pane.
func (p diffPane) SoftFocusItem(id string) {
	p.m.pendingDiffPath = id
}

// commitHandle positions one commit row for the commit pane's tracker.
type commitHandle struct {
	m    *Model
	hash string
}

func (h commitHandle) Top() int {
	return h.m.commitIndex[h.hash]
}

func (h commitHandle) Focus() {
	h.m.commitCo.SetFocusedID(h.hash)
}

func (h commitHandle) ScrollIntoView() {
	h.m.scrollCommitIntoView(h.hash)
	h.m.syncCommitVisibility()
}

// fileHandle positions one tree row. Focusing a file row also selects it,
// which queues a diff load; directory rows only take the cursor.
type fileHandle struct {
	m    *Model
	path string
}

func (h fileHandle) Top() int {
	return h.m.rowIndex[h.path]
}

func (h fileHandle) Focus() {
	h.m.fileCo.SetFocusedID(h.path)
	h.m.selectFileRow(h.path)
}

func (h fileHandle) ScrollIntoView() {
	h.m.scrollFileIntoView(h.path)
	h.m.syncFileVisibility()
}

// hunkHandle positions one hunk header inside the diff viewport.
type hunkHandle struct {
	m   *Model
	id  string
	row int
}

func (h hunkHandle) Top() int {
	return h.row
}

func (h hunkHandle) Focus() {
	h.m.diffCo.SetFocusedID(h.id)
	h.m.diffDirty = true
}

func (h hunkHandle) ScrollIntoView() {
	h.m.scrollDiffRowIntoView(h.row)
	h.m.syncDiffVisibility()
}

// scrollIntoView adjusts a scroll offset the minimal amount needed to bring
// index into the [offset, offset+page) window: the nearest edge, not the
// top.
func scrollIntoView(offset, index, page, total int) int {
	if page < 1 {
		page = 1
	}
	maxOffset := max(0, total-page)
	offset = clamp(offset, 0, maxOffset)
	if index < offset {
		offset = index
	}
	if index >= offset+page {
		offset = index - page + 1
	}
	return clamp(offset, 0, maxOffset)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// windowChanges reports, for total rows identified by id, which fall inside
// the [offset, offset+page) window. The whole window goes out as one batch
// so the coordinator reacts to a consistent snapshot.
func windowChanges(total, offset, page int, id func(i int) string) []pane.Change {
	changes := make([]pane.Change, 0, total)
	for i := 0; i < total; i++ {
		changes = append(changes, pane.Change{
			ID:      id(i),
			Visible: i >= offset && i < offset+page,
		})
	}
	return changes
}

func (m *Model) scrollCommitIntoView(hash string) {
	idx, ok := m.commitIndex[hash]
	if !ok {
		return
	}
	m.commitScroll = scrollIntoView(m.commitScroll, idx, m.commitPageSize(), len(m.commits))
}

func (m *Model) scrollFileIntoView(path string) {
	idx, ok := m.rowIndex[path]
	if !ok {
		return
	}
	m.fileScroll = scrollIntoView(m.fileScroll, idx, m.filePageSize(), len(m.rows))
}

func (m *Model) scrollDiffRowIntoView(row int) {
	offset := scrollIntoView(m.diffView.YOffset, row, m.diffView.Height, len(m.diffRows))
	m.diffView.SetYOffset(offset)
}

func (m *Model) syncCommitVisibility() {
	m.commitCo.ApplyVisibility(windowChanges(len(m.commits), m.commitScroll, m.commitPageSize(), func(i int) string {
		return m.commits[i].Hash
	}))
}

func (m *Model) syncFileVisibility() {
	m.fileCo.ApplyVisibility(windowChanges(len(m.rows), m.fileScroll, m.filePageSize(), func(i int) string {
		return m.rows[i].Node.Path
	}))
}

func (m *Model) syncDiffVisibility() {
	hunks := m.hunkRows
	offset := m.diffView.YOffset
	page := m.diffView.Height
	changes := make([]pane.Change, 0, len(hunks))
	for i, row := range hunks {
		changes = append(changes, pane.Change{
			ID:      hunkID(i),
			Visible: row >= offset && row < offset+page,
		})
	}
	m.diffCo.ApplyVisibility(changes)
}

// ensureCommitFocus gives the commit pane a focused row if it has none yet.
func (m *Model) ensureCommitFocus() {
	if m.commitCo.FocusedID() != "" || len(m.commits) == 0 {
		return
	}
	idx := clamp(m.commitScroll, 0, len(m.commits)-1)
	m.commitCo.SetFocusedID(m.commits[idx].Hash)
}

func (m *Model) ensureFileFocus() {
	if id := m.fileCo.FocusedID(); id != "" {
		if _, ok := m.rowIndex[id]; ok {
			return
		}
	}
	if len(m.rows) == 0 {
		return
	}
	idx := clamp(m.fileScroll, 0, len(m.rows)-1)
	m.fileCo.SetFocusedID(m.rows[idx].Node.Path)
	m.selectFileRow(m.rows[idx].Node.Path)
}
