package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"prview/internal/clipboard"
	"prview/internal/config"
	"prview/internal/diffview"
	"prview/internal/filetree"
	gitint "prview/internal/git"
	"prview/internal/pane"
	"prview/internal/review"
)

type commitsLoadedMsg struct {
	commits []gitint.Commit
	err     error
}

type filesLoadedMsg struct {
	changes []gitint.FileChange
	err     error
}

type diffLoadedMsg struct {
	path string
	rows []diffview.Row
	err  error
}

type clipboardResultMsg struct {
	err error
}

type alertTickMsg struct{}

// Model is the Bubble Tea state container for the app. It is used through a
// pointer so that pane handles handed to the coordinators keep seeing the
// live state.
type Model struct {
	keys   KeyMap
	cfg    *config.Config
	log    zerolog.Logger
	client *gitint.Client
	store  review.Store

	registry *pane.Registry
	commitCo *pane.Coordinator
	fileCo   *pane.Coordinator
	diffCo   *pane.Coordinator

	width  int
	height int
	ready  bool

	activePane string

	commits        []gitint.Commit
	commitIndex    map[string]int
	commitScroll   int
	commitPage     int
	selectedCommit string
	softCommit     string

	changes    []gitint.FileChange
	tree       []*filetree.Node[gitint.FileChange]
	rows       []filetree.Row[gitint.FileChange]
	rowIndex   map[string]int
	collapsed  map[string]bool
	fileScroll int
	filePage   int
	reviewed   map[string]bool
	softFile   string

	diffPath  string
	diffRows  []diffview.Row
	hunkRows  []int
	diffView  viewport.Model
	hl        *diffview.Highlighter
	diffDirty bool

	pendingDiffPath string

	alertMsg   string
	alertUntil time.Time
	helpOpen   bool

	loadingCommits bool
	loadingFiles   bool
	loadingDiff    bool
}

func NewModel(cfg *config.Config, log zerolog.Logger, client *gitint.Client) (*Model, error) {
	store := review.NewStore(client.GitDir())
	reviewed, loadErr := store.Load()
	if reviewed == nil {
		reviewed = make(map[string]bool)
	}

	m := &Model{
		keys:        defaultKeyMap(),
		cfg:         cfg,
		log:         log,
		client:      client,
		store:       store,
		registry:    pane.NewRegistry(log),
		commitIndex: make(map[string]int),
		rowIndex:    make(map[string]int),
		collapsed:   make(map[string]bool),
		reviewed:    reviewed,
		hl:          diffview.NewHighlighter(),
		activePane:  pane.KeyFileTree,
		commitPage:  1,
		filePage:    1,
	}
	m.commitCo = pane.NewCoordinator(pane.NewTracker(nil))
	m.fileCo = pane.NewCoordinator(pane.NewTracker(nil))
	m.diffCo = pane.NewCoordinator(pane.NewTracker(nil))

	m.registry.Register(pane.KeyCommitList, commitsPane{m})
	m.registry.Register(pane.KeyFileTree, filesPane{m})
	m.registry.Register(pane.KeyDiffView, diffPane{m})

	m.diffView = viewport.New(1, 1)
	m.diffView.SetContent("Select a file to load its diff.")

	if loadErr != nil {
		m.setAlert(fmt.Sprintf("failed to load review state: %v", loadErr))
		log.Warn().Err(loadErr).Msg("review state load failed")
	}
	return m, nil
}

func (m *Model) Init() tea.Cmd {
	m.loadingCommits = true
	m.loadingFiles = true
	return tea.Batch(m.loadCommitsCmd(), m.loadFilesCmd(), alertTickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizePanes()
		m.diffDirty = true
		m.refreshDiffContent()
		m.syncCommitVisibility()
		m.syncFileVisibility()
		m.syncDiffVisibility()
		return m, m.drainPending()

	case commitsLoadedMsg:
		m.loadingCommits = false
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("failed to load commits: %v", msg.err))
			return m, nil
		}
		m.setCommits(msg.commits)
		return m, nil

	case filesLoadedMsg:
		m.loadingFiles = false
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("failed to load changed files: %v", msg.err))
			return m, nil
		}
		m.setChanges(msg.changes)
		return m, m.drainPending()

	case diffLoadedMsg:
		m.loadingDiff = false
		if msg.err != nil {
			m.diffRows = nil
			m.hunkRows = nil
			m.diffDirty = false
			m.diffView.SetContent(fmt.Sprintf("Failed to load diff for %s:\n%v", msg.path, msg.err))
			return m, nil
		}
		m.setDiff(msg.path, msg.rows)
		return m, m.drainPending()

	case clipboardResultMsg:
		if msg.err != nil {
			m.setAlert(fmt.Sprintf("copy failed: %v", msg.err))
			return m, nil
		}
		m.setAlert("Copied path to clipboard.")
		return m, nil

	case alertTickMsg:
		if m.alertMsg != "" && !m.alertUntil.IsZero() && time.Now().After(m.alertUntil) {
			m.alertMsg = ""
			m.alertUntil = time.Time{}
		}
		return m, alertTickCmd()

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, tea.Batch(cmd, m.drainPending())
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.helpOpen = !m.helpOpen
		m.resizePanes()
		return nil

	case key.Matches(msg, m.keys.Refresh):
		m.loadingCommits = true
		m.loadingFiles = true
		return tea.Batch(m.loadCommitsCmd(), m.loadFilesCmd())

	case key.Matches(msg, m.keys.Worktree):
		if m.selectedCommit == "" {
			return nil
		}
		m.selectedCommit = ""
		m.softCommit = ""
		m.loadingFiles = true
		return m.loadFilesCmd()

	case key.Matches(msg, m.keys.ToggleFocus):
		switch m.activePane {
		case pane.KeyCommitList:
			m.registry.FocusPane(pane.KeyFileTree)
		case pane.KeyFileTree:
			m.registry.FocusPane(pane.KeyDiffView)
		default:
			m.registry.FocusPane(pane.KeyCommitList)
		}
		return nil

	case key.Matches(msg, m.keys.CommitsPane):
		m.registry.FocusPane(pane.KeyCommitList)
		return nil

	case key.Matches(msg, m.keys.FilesPane):
		m.registry.FocusPane(pane.KeyFileTree)
		return nil

	case key.Matches(msg, m.keys.DiffPane):
		m.registry.FocusPane(pane.KeyDiffView)
		return nil
	}

	switch m.activePane {
	case pane.KeyCommitList:
		return m.handleCommitsKey(msg)
	case pane.KeyFileTree:
		return m.handleFilesKey(msg)
	default:
		return m.handleDiffKey(msg)
	}
}

func (m *Model) handleCommitsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.ensureCommitFocus()
		m.commitCo.FocusNext()

	case key.Matches(msg, m.keys.Up):
		m.ensureCommitFocus()
		m.commitCo.FocusPrevious()

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollCommitsWindow(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollCommitsWindow(-1)

	case key.Matches(msg, m.keys.Open):
		hash := m.commitCo.FocusedID()
		if hash == "" || hash == m.selectedCommit {
			return nil
		}
		m.selectedCommit = hash
		m.loadingFiles = true
		return m.loadFilesCmd()

	case key.Matches(msg, m.keys.Copy):
		if hash := m.commitCo.FocusedID(); hash != "" {
			return copyTextCmd(hash)
		}
	}
	return nil
}

func (m *Model) handleFilesKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.ensureFileFocus()
		m.fileCo.FocusNext()

	case key.Matches(msg, m.keys.Up):
		m.ensureFileFocus()
		m.fileCo.FocusPrevious()

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollFilesWindow(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollFilesWindow(-1)

	case key.Matches(msg, m.keys.Collapse):
		m.collapseFocusedDir()

	case key.Matches(msg, m.keys.Expand):
		m.expandFocusedDir()

	case key.Matches(msg, m.keys.Open):
		node := m.focusedNode()
		if node == nil {
			return nil
		}
		if node.IsDir() {
			m.toggleDirCollapsed(node.Path)
			return nil
		}
		m.registry.FocusPaneItem(pane.KeyDiffView, node.Path)

	case key.Matches(msg, m.keys.Review):
		m.toggleReviewed()

	case key.Matches(msg, m.keys.Copy):
		if node := m.focusedNode(); node != nil {
			return copyTextCmd(node.Path)
		}
	}
	return nil
}

func (m *Model) handleDiffKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.diffCo.FocusNext()
		m.refreshDiffContent()

	case key.Matches(msg, m.keys.Up):
		m.diffCo.FocusPrevious()
		m.refreshDiffContent()

	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollDiffWindow(1)

	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollDiffWindow(-1)

	case key.Matches(msg, m.keys.Collapse):
		m.registry.FocusPane(pane.KeyFileTree)

	case key.Matches(msg, m.keys.Copy):
		if m.diffPath != "" {
			return copyTextCmd(m.diffPath)
		}
	}
	return nil
}

// scrollCommitsWindow moves the commit list window without moving focus;
// the coordinator pulls focus back in when the focused row leaves the
// window.
func (m *Model) scrollCommitsWindow(delta int) {
	maxScroll := max(0, len(m.commits)-m.commitPageSize())
	next := clamp(m.commitScroll+delta, 0, maxScroll)
	if next == m.commitScroll {
		return
	}
	m.commitScroll = next
	m.commitCo.RecordScroll(next)
	m.syncCommitVisibility()
}

func (m *Model) scrollFilesWindow(delta int) {
	maxScroll := max(0, len(m.rows)-m.filePageSize())
	next := clamp(m.fileScroll+delta, 0, maxScroll)
	if next == m.fileScroll {
		return
	}
	m.fileScroll = next
	m.fileCo.RecordScroll(next)
	m.syncFileVisibility()
}

func (m *Model) scrollDiffWindow(delta int) {
	maxScroll := max(0, len(m.diffRows)-m.diffView.Height)
	next := clamp(m.diffView.YOffset+delta, 0, maxScroll)
	if next == m.diffView.YOffset {
		return
	}
	m.diffView.SetYOffset(next)
	m.diffCo.RecordScroll(next)
	m.syncDiffVisibility()
	m.refreshDiffContent()
}

func (m *Model) setCommits(commits []gitint.Commit) {
	known := make(map[string]bool, len(commits))
	m.commits = commits
	m.commitIndex = make(map[string]int, len(commits))
	for i, c := range commits {
		m.commitIndex[c.Hash] = i
		known[c.Hash] = true
		m.commitCo.Register(c.Hash, commitHandle{m: m, hash: c.Hash})
	}
	for _, id := range m.commitCo.Tracker().OrderedIDs() {
		if !known[id] {
			m.commitCo.Unregister(id)
		}
	}
	if id := m.commitCo.FocusedID(); id != "" {
		if _, ok := m.commitIndex[id]; !ok {
			m.commitCo.SetFocusedID("")
		}
	}
	m.commitScroll = clamp(m.commitScroll, 0, max(0, len(commits)-m.commitPageSize()))
	m.syncCommitVisibility()
}

func (m *Model) setChanges(changes []gitint.FileChange) {
	m.changes = changes
	m.tree = filetree.Build(changes, gitint.FileChange.Path)
	m.rebuildFileRows()
	if len(m.rows) == 0 {
		m.fileCo.SetFocusedID("")
		m.diffRows = nil
		m.hunkRows = nil
		m.diffPath = ""
		m.diffDirty = false
		m.diffView.SetContent("No changed files.")
		return
	}
	m.ensureFileFocus()
}

// rebuildFileRows re-flattens the tree and reconciles row registrations so
// the tracker only ever knows rows that exist in the current flattening.
func (m *Model) rebuildFileRows() {
	m.rows = filetree.Flatten(m.tree, m.collapsed)
	m.rowIndex = make(map[string]int, len(m.rows))
	for i, row := range m.rows {
		m.rowIndex[row.Node.Path] = i
		m.fileCo.Register(row.Node.Path, fileHandle{m: m, path: row.Node.Path})
	}
	for _, id := range m.fileCo.Tracker().OrderedIDs() {
		if _, ok := m.rowIndex[id]; !ok {
			m.fileCo.Unregister(id)
		}
	}
	m.fileScroll = clamp(m.fileScroll, 0, max(0, len(m.rows)-m.filePageSize()))
	m.syncFileVisibility()
}

func (m *Model) setDiff(path string, rows []diffview.Row) {
	m.diffPath = path
	m.diffRows = rows
	m.hunkRows = diffview.HunkHeaderIndices(rows)
	m.diffView.GotoTop()

	for _, id := range m.diffCo.Tracker().OrderedIDs() {
		m.diffCo.Unregister(id)
	}
	for i, row := range m.hunkRows {
		m.diffCo.Register(hunkID(i), hunkHandle{m: m, id: hunkID(i), row: row})
	}
	if len(m.hunkRows) > 0 {
		m.diffCo.SetFocusedID(hunkID(0))
	} else {
		m.diffCo.SetFocusedID("")
	}
	m.diffDirty = true
	m.refreshDiffContent()
	m.syncDiffVisibility()

	// Reflect the open file back into the tree without stealing the
	// keyboard.
	m.registry.SoftFocusPaneItem(pane.KeyFileTree, path)
	if m.selectedCommit != "" {
		m.registry.SoftFocusPaneItem(pane.KeyCommitList, m.selectedCommit)
	}
}

func (m *Model) refreshDiffContent() {
	if !m.diffDirty {
		return
	}
	m.diffDirty = false
	if len(m.diffRows) == 0 {
		return
	}
	lines := diffview.Render(m.diffRows, max(1, m.diffView.Width), m.diffCursorRow(), m.hl)
	m.diffView.SetContent(strings.Join(lines, "\n"))
}

// diffCursorRow is the row the cursor sits on: the focused hunk header, or
// the first content row when the diff has no hunks to focus.
func (m *Model) diffCursorRow() int {
	if id := m.diffCo.FocusedID(); id != "" {
		if idx, ok := m.hunkRowFor(id); ok {
			return idx
		}
	}
	return diffview.FirstRenderable(m.diffRows)
}

// hunkRowFor maps a hunk id back to its row in the current diff.
func (m *Model) hunkRowFor(id string) (int, bool) {
	for i := range m.hunkRows {
		if hunkID(i) == id {
			return m.hunkRows[i], true
		}
	}
	return 0, false
}

func hunkID(i int) string {
	return fmt.Sprintf("hunk-%d", i)
}

func (m *Model) focusedNode() *filetree.Node[gitint.FileChange] {
	id := m.fileCo.FocusedID()
	if id == "" {
		return nil
	}
	idx, ok := m.rowIndex[id]
	if !ok {
		return nil
	}
	return m.rows[idx].Node
}

// selectFileRow is the side effect of a file row taking focus: file rows
// soft-focus their diff in the diff pane, directory rows only take the
// cursor.
func (m *Model) selectFileRow(path string) {
	idx, ok := m.rowIndex[path]
	if !ok {
		return
	}
	if m.rows[idx].Node.IsDir() {
		return
	}
	m.registry.SoftFocusPaneItem(pane.KeyDiffView, path)
}

func (m *Model) collapseFocusedDir() {
	node := m.focusedNode()
	if node == nil {
		return
	}
	if node.IsDir() && !m.collapsed[node.Path] {
		m.collapsed[node.Path] = true
		m.rebuildFileRows()
		return
	}
	// On a file or an already-collapsed dir, h jumps to the parent dir.
	if parent := parentDirPath(node.Path); parent != "" {
		if _, ok := m.rowIndex[parent]; ok {
			m.fileCo.SetFocusedID(parent)
			m.scrollFileIntoView(parent)
			m.syncFileVisibility()
		}
	}
}

func (m *Model) expandFocusedDir() {
	node := m.focusedNode()
	if node == nil || !node.IsDir() {
		return
	}
	if m.collapsed[node.Path] {
		delete(m.collapsed, node.Path)
		m.rebuildFileRows()
	}
}

func (m *Model) toggleDirCollapsed(path string) {
	if m.collapsed[path] {
		delete(m.collapsed, path)
	} else {
		m.collapsed[path] = true
	}
	m.rebuildFileRows()
}

func parentDirPath(p string) string {
	idx := strings.LastIndex(p, "/")
	if idx <= 0 {
		return ""
	}
	return p[:idx]
}

// toggleReviewed flips the review mark of the focused file. On a directory
// it marks the whole subtree: everything on when something is still off,
// everything off otherwise.
func (m *Model) toggleReviewed() {
	node := m.focusedNode()
	if node == nil {
		return
	}
	if node.IsDir() {
		all := node.Status(m.isReviewed) == filetree.AllReviewed
		var paths []string
		collectFilePaths(node, &paths)
		for _, p := range paths {
			if all {
				delete(m.reviewed, p)
			} else {
				m.reviewed[p] = true
			}
		}
	} else if m.reviewed[node.Path] {
		delete(m.reviewed, node.Path)
	} else {
		m.reviewed[node.Path] = true
	}

	if err := m.store.Save(m.reviewed); err != nil {
		m.setAlert(fmt.Sprintf("failed to save review state: %v", err))
		m.log.Error().Err(err).Msg("review state save failed")
	}
}

func (m *Model) isReviewed(c gitint.FileChange) bool {
	return m.reviewed[c.Path()]
}

func collectFilePaths[T any](n *filetree.Node[T], out *[]string) {
	if !n.IsDir() {
		*out = append(*out, n.Path)
		return
	}
	for _, child := range n.Children {
		collectFilePaths(child, out)
	}
}

func (m *Model) drainPending() tea.Cmd {
	path := m.pendingDiffPath
	m.pendingDiffPath = ""
	if path == "" || path == m.diffPath {
		return nil
	}
	m.loadingDiff = true
	return m.loadDiffCmd(path)
}

func (m *Model) commitPageSize() int {
	return max(1, m.commitPage)
}

func (m *Model) filePageSize() int {
	return max(1, m.filePage)
}

func (m *Model) resizePanes() {
	footerHeight := lineCount(m.helpText())
	contentHeight := max(1, m.height-footerHeight)
	if m.alertMsg != "" {
		contentHeight = max(1, contentHeight-alertDockHeight)
	}

	commitH, fileH := leftColumnHeights(contentHeight)
	_, rightW := columnWidths(m.width, m.cfg.FilePaneWidth)

	// One title line inside each bordered pane.
	m.commitPage = max(1, commitH-1)
	m.filePage = max(1, fileH-1)

	if m.diffView.Width != rightW {
		m.diffDirty = true
	}
	m.diffView.Width = max(1, rightW)
	m.diffView.Height = max(1, contentHeight-3)
}

func (m *Model) loadCommitsCmd() tea.Cmd {
	client := m.client
	limit := m.cfg.CommitLimit
	return func() tea.Msg {
		commits, err := client.Commits(context.Background(), limit)
		return commitsLoadedMsg{commits: commits, err: err}
	}
}

func (m *Model) loadFilesCmd() tea.Cmd {
	client := m.client
	commit := m.selectedCommit
	base := m.cfg.BaseRef
	return func() tea.Msg {
		ctx := context.Background()
		if commit != "" {
			changes, err := client.ChangedFiles(ctx, commit+"^", commit)
			return filesLoadedMsg{changes: changes, err: err}
		}
		changes, err := client.ChangedFiles(ctx, base)
		if err != nil {
			return filesLoadedMsg{err: err}
		}
		untracked, err := client.UntrackedFiles(ctx)
		if err != nil {
			return filesLoadedMsg{err: err}
		}
		changes = append(changes, untracked...)
		sort.Slice(changes, func(i, j int) bool { return changes[i].Path() < changes[j].Path() })
		return filesLoadedMsg{changes: changes}
	}
}

func (m *Model) loadDiffCmd(path string) tea.Cmd {
	client := m.client
	commit := m.selectedCommit
	base := m.cfg.BaseRef
	contextLines := m.cfg.ContextLines
	return func() tea.Msg {
		ctx := context.Background()
		var raw string
		var err error
		if commit != "" {
			raw, err = client.FileDiff(ctx, path, contextLines, commit+"^", commit)
		} else {
			raw, err = client.FileDiff(ctx, path, contextLines, base)
		}
		if err != nil {
			return diffLoadedMsg{path: path, err: err}
		}
		rows, err := diffview.ParseUnified([]byte(raw))
		return diffLoadedMsg{path: path, rows: rows, err: err}
	}
}

func copyTextCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return clipboardResultMsg{err: clipboard.CopyText(context.Background(), text)}
	}
}

func alertTickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return alertTickMsg{}
	})
}

func (m *Model) setAlert(msg string) {
	m.alertMsg = msg
	m.alertUntil = time.Now().Add(3 * time.Second)
	m.resizePanes()
}

func lineCount(text string) int {
	if text == "" {
		return 0
	}
	return strings.Count(text, "\n") + 1
}
