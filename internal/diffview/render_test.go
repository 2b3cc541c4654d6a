package diffview

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderMarksCursorAndChangeKinds(t *testing.T) {
	rows, err := ParseUnified([]byte(sampleDiff))
	if err != nil {
		t.Fatalf("ParseUnified returned error: %v", err)
	}

	lines := Render(rows, 80, 3, nil)
	if len(lines) != len(rows) {
		t.Fatalf("expected %d lines, got %d", len(rows), len(lines))
	}

	cursorLine := ansi.Strip(lines[3])
	if !strings.HasPrefix(cursorLine, "> ") {
		t.Fatalf("cursor line = %q, want > prefix", cursorLine)
	}
	if !strings.Contains(cursorLine, "- oldA") {
		t.Fatalf("cursor line = %q, want delete marker and text", cursorLine)
	}

	addLine := ansi.Strip(lines[4])
	if !strings.HasPrefix(addLine, "  ") {
		t.Fatalf("add line = %q, want plain prefix", addLine)
	}
	if !strings.Contains(addLine, "+ newA") {
		t.Fatalf("add line = %q, want add marker and text", addLine)
	}

	contextLine := ansi.Strip(lines[2])
	if !strings.Contains(contextLine, "1   1   keep") {
		t.Fatalf("context line = %q, want both line numbers", contextLine)
	}
}

func TestRenderTruncatesToWidth(t *testing.T) {
	rows := []Row{{
		Kind:    RowContext,
		OldLine: linePtr(1),
		NewLine: linePtr(1),
		Text:    strings.Repeat("x", 200),
		Path:    "wide.txt",
	}}

	for _, line := range Render(rows, 20, -1, nil) {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line width = %d, want <= 20", w)
		}
	}
}

func TestFirstRenderableSkipsFileHeader(t *testing.T) {
	rows, err := ParseUnified([]byte(sampleDiff))
	if err != nil {
		t.Fatalf("ParseUnified returned error: %v", err)
	}
	if got := FirstRenderable(rows); got != 1 {
		t.Fatalf("FirstRenderable = %d, want 1", got)
	}
}

func TestHunkHeaderIndices(t *testing.T) {
	rows, err := ParseUnified([]byte(sampleDiff))
	if err != nil {
		t.Fatalf("ParseUnified returned error: %v", err)
	}
	got := HunkHeaderIndices(rows)
	if len(got) != 2 || got[0] != 1 || got[1] != 6 {
		t.Fatalf("HunkHeaderIndices = %v, want [1 6]", got)
	}
}

func TestHighlighterFallsBackToPlainText(t *testing.T) {
	hl := NewHighlighter()
	if got := hl.Line("noext", ""); got != "" {
		t.Fatalf("empty line = %q, want empty", got)
	}
	// Unknown extensions must pass text through untouched.
	if got := hl.Line("file.unknownext", "plain text"); ansi.Strip(got) != "plain text" {
		t.Fatalf("unknown ext line = %q, want plain text", got)
	}
}
