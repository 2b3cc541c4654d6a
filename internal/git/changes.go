package git

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"prview/internal/util"
)

// FileChange is one changed file between two trees. Exactly one of OldPath
// and NewPath may be empty (pure additions and deletions); renames carry
// both.
type FileChange struct {
	OldPath   string
	NewPath   string
	Status    string // A, M, D, R, C, T, ?
	Additions int
	Deletions int
}

// Path is the display path: the new path, or the old one when deleted.
func (c FileChange) Path() string {
	if c.NewPath == "" {
		return c.OldPath
	}
	return c.NewPath
}

// ChangedFiles lists the files that differ across refs ("HEAD" for the
// worktree against HEAD, "A B" for a commit range), with per-file line
// counts, sorted by path.
func (c *Client) ChangedFiles(ctx context.Context, refs ...string) ([]FileChange, error) {
	nameArgs := append([]string{"diff", "--name-status", "-z", "-M"}, refs...)
	out, err := util.Run(ctx, c.root, "git", nameArgs...)
	if err != nil {
		return nil, err
	}
	changes, err := parseNameStatusZ(out)
	if err != nil {
		return nil, err
	}

	numArgs := append([]string{"diff", "--numstat", "-z", "-M"}, refs...)
	out, err = util.Run(ctx, c.root, "git", numArgs...)
	if err != nil {
		return nil, err
	}
	counts, err := parseNumstatZ(out)
	if err != nil {
		return nil, err
	}
	for i := range changes {
		if n, ok := counts[changes[i].Path()]; ok {
			changes[i].Additions = n.additions
			changes[i].Deletions = n.deletions
		}
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].Path() < changes[j].Path()
	})
	return changes, nil
}

// UntrackedFiles lists files git does not know about yet, as additions with
// unknown line counts.
func (c *Client) UntrackedFiles(ctx context.Context) ([]FileChange, error) {
	out, err := util.Run(ctx, c.root, "git", "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, err
	}
	var changes []FileChange
	for _, p := range strings.Split(out, "\x00") {
		if p == "" {
			continue
		}
		changes = append(changes, FileChange{NewPath: p, Status: "?"})
	}
	return changes, nil
}

// parseNameStatusZ parses `git diff --name-status -z` output: a status
// field, then one path, or two for renames and copies. The trailing NUL is
// a terminator, not a separator, and must come off before splitting or a
// phantom empty field masks truncated records.
func parseNameStatusZ(data string) ([]FileChange, error) {
	fields := strings.Split(strings.TrimSuffix(data, "\x00"), "\x00")
	changes := make([]FileChange, 0, len(fields)/2)
	for i := 0; i < len(fields); {
		status := fields[i]
		if status == "" {
			i++
			continue
		}
		if i+1 >= len(fields) {
			return nil, fmt.Errorf("truncated name-status record: %q", status)
		}
		ch := FileChange{Status: status[:1]}
		switch status[0] {
		case 'R', 'C':
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("truncated rename record: %q", status)
			}
			ch.OldPath = fields[i+1]
			ch.NewPath = fields[i+2]
			i += 3
		case 'D':
			ch.OldPath = fields[i+1]
			i += 2
		default:
			ch.NewPath = fields[i+1]
			i += 2
		}
		changes = append(changes, ch)
	}
	return changes, nil
}

type lineCounts struct {
	additions int
	deletions int
}

// parseNumstatZ parses `git diff --numstat -z` output. Regular records are
// "added\tdeleted\tpath"; rename records leave the inline path empty and
// emit the old and new paths as the following two fields. As with
// name-status, the trailing NUL terminates rather than separates.
func parseNumstatZ(data string) (map[string]lineCounts, error) {
	fields := strings.Split(strings.TrimSuffix(data, "\x00"), "\x00")
	counts := make(map[string]lineCounts)
	for i := 0; i < len(fields); {
		rec := fields[i]
		if rec == "" {
			i++
			continue
		}
		parts := strings.SplitN(rec, "\t", 3)
		if len(parts) != 3 {
			return nil, fmt.Errorf("unexpected numstat record: %q", rec)
		}
		n := lineCounts{
			additions: atoiDash(parts[0]),
			deletions: atoiDash(parts[1]),
		}
		path := parts[2]
		if path == "" {
			if i+2 >= len(fields) {
				return nil, fmt.Errorf("truncated numstat rename record: %q", rec)
			}
			path = fields[i+2]
			i += 3
		} else {
			i++
		}
		counts[path] = n
	}
	return counts, nil
}

// atoiDash handles the "-" counts git emits for binary files.
func atoiDash(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
