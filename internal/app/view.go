package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"prview/internal/filetree"
	gitint "prview/internal/git"
	"prview/internal/pane"
)

const alertDockHeight = 1

var (
	focusedBorder  = lipgloss.Color("39")
	blurredBorder  = lipgloss.Color("245")
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	softStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
	reviewedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	alertStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	paneTitleStyle = lipgloss.NewStyle().Bold(true)
	statusAddStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	statusDelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

func (m *Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	footer := footerStyle.Render(truncateLinesToWidth(m.helpText(), m.width))
	footerHeight := lipgloss.Height(footer)

	dock := ""
	dockHeight := 0
	if m.alertMsg != "" {
		dock = alertStyle.Render(ansi.Truncate(m.alertMsg, max(1, m.width), ""))
		dockHeight = alertDockHeight
	}

	contentHeight := max(1, m.height-footerHeight-dockHeight)
	commitH, fileH := leftColumnHeights(contentHeight)
	leftW, rightW := columnWidths(m.width, m.cfg.FilePaneWidth)

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderCommitsPane(leftW, commitH),
		m.renderFilesPane(leftW, fileH),
	)
	right := m.renderDiffPane(rightW, contentHeight-2)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	if dock != "" {
		body = lipgloss.JoinVertical(lipgloss.Left, body, dock)
	}
	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m *Model) helpText() string {
	if !m.helpOpen {
		return "tab/1/2/3 panes | j/k move | ctrl-e/y scroll | enter open | space reviewed | w worktree | r refresh | ? help | q quit"
	}
	return strings.Join([]string{
		"Global: q quit, tab cycle pane, 1 commits, 2 files, 3 diff, r refresh, ? toggle help",
		"Commits: j/k move, ctrl-e/ctrl-y scroll, enter show commit, w back to worktree, y copy hash",
		"Files: j/k move, ctrl-e/ctrl-y scroll, h/l collapse/expand, enter open diff, space toggle reviewed, y copy path",
		"Diff: j/k next/prev hunk, ctrl-e/ctrl-y scroll, h back to files, y copy path",
	}, "\n")
}

func (m *Model) renderCommitsPane(width, height int) string {
	borderColor := blurredBorder
	if m.activePane == pane.KeyCommitList {
		borderColor = focusedBorder
	}

	title := fmt.Sprintf("Commits (%d)", len(m.commits))
	if m.loadingCommits {
		title += " (loading...)"
	}
	lines := []string{paneTitleStyle.Render(ansi.Truncate(title, max(1, width), ""))}

	page := m.commitPageSize()
	start := clamp(m.commitScroll, 0, max(0, len(m.commits)-page))
	end := min(start+page, len(m.commits))
	for i := start; i < end; i++ {
		c := m.commits[i]
		prefix := "  "
		if m.commitCo.IsFocused(c.Hash) {
			prefix = "> "
		}
		marker := " "
		if c.Hash == m.selectedCommit {
			marker = "*"
		}
		line := fmt.Sprintf("%s%s%s %s", prefix, marker, c.ShortHash, c.Subject)
		style := lipgloss.NewStyle()
		if c.Hash == m.softCommit && !m.commitCo.IsFocused(c.Hash) {
			style = softStyle
		}
		if m.commitCo.IsFocused(c.Hash) {
			style = cursorStyle
		}
		lines = append(lines, style.Render(ansi.Truncate(line, max(1, width), "")))
	}
	if len(m.commits) == 0 {
		lines = append(lines, dimStyle.Render("No commits"))
	}

	return lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFilesPane(width, height int) string {
	borderColor := blurredBorder
	if m.activePane == pane.KeyFileTree {
		borderColor = focusedBorder
	}

	title := fmt.Sprintf("Files (%d)", len(m.changes))
	if m.selectedCommit != "" {
		title = fmt.Sprintf("Files @ %s (%d)", shortHash(m.selectedCommit), len(m.changes))
	}
	if m.loadingFiles {
		title += " (loading...)"
	}
	lines := []string{paneTitleStyle.Render(ansi.Truncate(title, max(1, width), ""))}

	page := m.filePageSize()
	start := clamp(m.fileScroll, 0, max(0, len(m.rows)-page))
	end := min(start+page, len(m.rows))
	for i := start; i < end; i++ {
		lines = append(lines, m.renderFileRow(m.rows[i], width))
	}
	if len(m.rows) == 0 {
		lines = append(lines, dimStyle.Render("No changed files"))
	}

	return lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderFileRow(row filetree.Row[gitint.FileChange], width int) string {
	node := row.Node
	prefix := "  "
	if m.fileCo.IsFocused(node.Path) {
		prefix = "> "
	}
	indent := strings.Repeat("  ", row.Depth)

	var line string
	if node.IsDir() {
		icon := "[-]"
		if m.collapsed[node.Path] {
			icon = "[+]"
		}
		line = fmt.Sprintf("%s%s%s %s %s/", prefix, indent, reviewMark(node.Status(m.isReviewed)), icon, node.Name)
	} else {
		c := *node.File
		mark := "[ ]"
		if m.reviewed[node.Path] {
			mark = "[x]"
		}
		line = fmt.Sprintf("%s%s%s %s %s", prefix, indent, mark, c.Status, node.Name)
		if c.Additions > 0 || c.Deletions > 0 {
			line += " " + statusAddStyle.Render(fmt.Sprintf("+%d", c.Additions)) +
				statusDelStyle.Render(fmt.Sprintf("-%d", c.Deletions))
		}
	}

	style := lipgloss.NewStyle()
	if node.IsDir() {
		style = dimStyle
	}
	if !node.IsDir() && m.reviewed[node.Path] {
		style = reviewedStyle
	}
	if node.Path == m.softFile && !m.fileCo.IsFocused(node.Path) {
		style = softStyle
	}
	if m.fileCo.IsFocused(node.Path) {
		style = cursorStyle
	}
	return style.Render(ansi.Truncate(line, max(1, width), ""))
}

func reviewMark(s filetree.Status) string {
	switch s {
	case filetree.AllReviewed:
		return "[x]"
	case filetree.SomeReviewed:
		return "[~]"
	default:
		return "[ ]"
	}
}

func (m *Model) renderDiffPane(width, height int) string {
	borderColor := blurredBorder
	if m.activePane == pane.KeyDiffView {
		borderColor = focusedBorder
	}

	title := "Diff"
	if m.diffPath != "" {
		title = "Diff: " + m.diffPath
	}
	if m.loadingDiff {
		title += " (loading...)"
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		paneTitleStyle.Render(ansi.Truncate(title, max(1, width), "")),
		m.diffView.View(),
	)
	return lipgloss.NewStyle().
		Width(max(1, width)).
		Height(max(1, height)).
		Border(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		Render(body)
}

func shortHash(h string) string {
	if len(h) > 7 {
		return h[:7]
	}
	return h
}

func truncateLinesToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = ansi.Truncate(line, width, "")
	}
	return strings.Join(lines, "\n")
}
