package diffview

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

var (
	fileHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	hunkHeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	addStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	deleteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	numStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
)

// Render produces one display line per row, width-truncated. The cursor row
// is styled uniformly instead of syntax-highlighted so it reads as a cursor.
// hl may be nil to disable highlighting.
func Render(rows []Row, width, cursor int, hl *Highlighter) []string {
	maxOld, maxNew := 0, 0
	for _, row := range rows {
		if row.OldLine != nil && *row.OldLine > maxOld {
			maxOld = *row.OldLine
		}
		if row.NewLine != nil && *row.NewLine > maxNew {
			maxNew = *row.NewLine
		}
	}
	oldNumW := maxInt(3, digits(maxOld))
	newNumW := maxInt(3, digits(maxNew))

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, renderRow(row, width, oldNumW, newNumW, i == cursor, hl))
	}
	return lines
}

func renderRow(row Row, width, oldNumW, newNumW int, isCursor bool, hl *Highlighter) string {
	prefix := "  "
	if isCursor {
		prefix = "> "
	}

	switch row.Kind {
	case RowFileHeader:
		return ansi.Truncate(prefix+fileHeaderStyle.Render(row.Text), maxInt(1, width), "")
	case RowHunkHeader:
		return ansi.Truncate(prefix+hunkHeaderStyle.Render(row.Text), maxInt(1, width), "")
	}

	marker := " "
	style := lipgloss.NewStyle()
	switch row.Kind {
	case RowAdd:
		marker = "+"
		style = addStyle
	case RowDelete:
		marker = "-"
		style = deleteStyle
	}

	gutter := fmt.Sprintf("%*s %*s %s ",
		oldNumW, lineNum(row.OldLine),
		newNumW, lineNum(row.NewLine),
		marker)

	text := row.Text
	switch {
	case isCursor:
		return ansi.Truncate(prefix+cursorStyle.Render(gutter+text), maxInt(1, width), "")
	case hl != nil && row.Kind == RowContext:
		text = hl.Line(row.Path, text)
	default:
		text = style.Render(text)
	}
	return ansi.Truncate(prefix+numStyle.Render(gutter)+text, maxInt(1, width), "")
}

func lineNum(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}

func digits(n int) int {
	return len(fmt.Sprintf("%d", n))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// FirstRenderable returns the index of the first content row, skipping the
// leading file header.
func FirstRenderable(rows []Row) int {
	for i, row := range rows {
		if row.Kind != RowFileHeader {
			return i
		}
	}
	return 0
}

// HunkHeaderIndices lists the row indices of every hunk header, in order.
func HunkHeaderIndices(rows []Row) []int {
	var out []int
	for i, row := range rows {
		if row.Kind == RowHunkHeader {
			out = append(out, i)
		}
	}
	return out
}
