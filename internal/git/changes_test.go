package git

import "testing"

func TestParseNameStatusZ(t *testing.T) {
	data := "M\x00internal/app/model.go\x00A\x00docs/notes.md\x00D\x00old/dead.go\x00R087\x00pkg/a.go\x00pkg/b.go\x00"

	changes, err := parseNameStatusZ(data)
	if err != nil {
		t.Fatalf("parseNameStatusZ() error = %v", err)
	}
	if len(changes) != 4 {
		t.Fatalf("expected 4 changes, got %d", len(changes))
	}

	if changes[0].Status != "M" || changes[0].NewPath != "internal/app/model.go" {
		t.Fatalf("unexpected modify record: %+v", changes[0])
	}
	if changes[2].Status != "D" || changes[2].OldPath != "old/dead.go" || changes[2].NewPath != "" {
		t.Fatalf("unexpected delete record: %+v", changes[2])
	}
	if changes[2].Path() != "old/dead.go" {
		t.Fatalf("delete Path() = %q, want old path", changes[2].Path())
	}

	ren := changes[3]
	if ren.Status != "R" || ren.OldPath != "pkg/a.go" || ren.NewPath != "pkg/b.go" {
		t.Fatalf("unexpected rename record: %+v", ren)
	}
}

func TestParseNameStatusZTruncated(t *testing.T) {
	if _, err := parseNameStatusZ("M\x00"); err == nil {
		t.Fatal("expected error for truncated record")
	}
	if _, err := parseNameStatusZ("R100\x00only-one-path\x00"); err == nil {
		t.Fatal("expected error for truncated rename record")
	}
}

func TestParseNumstatZ(t *testing.T) {
	data := "12\t3\tinternal/app/model.go\x001\t0\tdocs/notes.md\x00-\t-\tassets/logo.png\x005\t5\t\x00pkg/a.go\x00pkg/b.go\x00"

	counts, err := parseNumstatZ(data)
	if err != nil {
		t.Fatalf("parseNumstatZ() error = %v", err)
	}
	if len(counts) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(counts))
	}

	if n := counts["internal/app/model.go"]; n.additions != 12 || n.deletions != 3 {
		t.Fatalf("unexpected counts: %+v", n)
	}
	if n := counts["assets/logo.png"]; n.additions != 0 || n.deletions != 0 {
		t.Fatalf("binary counts should be zero, got %+v", n)
	}
	if n, ok := counts["pkg/b.go"]; !ok || n.additions != 5 {
		t.Fatalf("rename counts keyed by new path, got %+v (exists=%v)", n, ok)
	}
}

func TestParseNumstatZTruncatedRename(t *testing.T) {
	// Rename record with the new-path field missing after the old path.
	if _, err := parseNumstatZ("5\t5\t\x00pkg/a.go\x00"); err == nil {
		t.Fatal("expected error for truncated rename record")
	}
}

func TestParseLog(t *testing.T) {
	data := "abc123\x1fabc\x1fJo Doe\x1f2026-08-01\x1fAdd tree compaction\x1e\ndef456\x1fdef\x1fAn Yu\x1f2026-07-30\x1fFix pane focus\x1e"

	commits, err := parseLog(data)
	if err != nil {
		t.Fatalf("parseLog() error = %v", err)
	}
	if len(commits) != 2 {
		t.Fatalf("expected 2 commits, got %d", len(commits))
	}
	if commits[0].ShortHash != "abc" || commits[0].Subject != "Add tree compaction" {
		t.Fatalf("unexpected first commit: %+v", commits[0])
	}
	if commits[1].Author != "An Yu" || commits[1].Date != "2026-07-30" {
		t.Fatalf("unexpected second commit: %+v", commits[1])
	}
}

func TestParseLogEmpty(t *testing.T) {
	commits, err := parseLog("")
	if err != nil {
		t.Fatalf("parseLog() error = %v", err)
	}
	if len(commits) != 0 {
		t.Fatalf("expected no commits, got %d", len(commits))
	}
}
