package diffview

import (
	"fmt"
	"strings"

	sgdiff "github.com/sourcegraph/go-diff/diff"
)

// ParseUnified turns raw `git diff` output into display rows: a file header
// per file, a hunk header per hunk, then context/delete/add rows with their
// line numbers.
func ParseUnified(raw []byte) ([]Row, error) {
	fileDiffs, err := sgdiff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, 64)
	for _, fd := range fileDiffs {
		path := normalizePath(fd)
		rows = append(rows, Row{
			Kind: RowFileHeader,
			Text: fmt.Sprintf("File: %s", path),
			Path: path,
		})

		for hunkID, h := range fd.Hunks {
			rows = append(rows, Row{
				Kind:   RowHunkHeader,
				Text:   formatHunkHeader(h),
				Path:   path,
				HunkID: hunkID,
			})

			oldLn := int(h.OrigStartLine)
			newLn := int(h.NewStartLine)
			for _, line := range strings.Split(strings.TrimSuffix(string(h.Body), "\n"), "\n") {
				if line == "" {
					continue
				}
				switch line[0] {
				case ' ':
					rows = append(rows, Row{
						Kind:    RowContext,
						OldLine: linePtr(oldLn),
						NewLine: linePtr(newLn),
						Text:    line[1:],
						Path:    path,
						HunkID:  hunkID,
					})
					oldLn++
					newLn++

				case '-':
					rows = append(rows, Row{
						Kind:    RowDelete,
						OldLine: linePtr(oldLn),
						Text:    line[1:],
						Path:    path,
						HunkID:  hunkID,
					})
					oldLn++

				case '+':
					rows = append(rows, Row{
						Kind:    RowAdd,
						NewLine: linePtr(newLn),
						Text:    line[1:],
						Path:    path,
						HunkID:  hunkID,
					})
					newLn++

				case '\\':
					// "\ No newline at end of file"
					continue
				}
			}
		}
	}
	return rows, nil
}

func normalizePath(fd *sgdiff.FileDiff) string {
	name := fd.NewName
	if name == "" || name == "/dev/null" {
		name = fd.OrigName
	}
	name = strings.TrimPrefix(name, "a/")
	name = strings.TrimPrefix(name, "b/")
	return name
}

func formatHunkHeader(h *sgdiff.Hunk) string {
	header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStartLine, h.OrigLines, h.NewStartLine, h.NewLines)
	if section := strings.TrimSpace(h.Section); section != "" {
		header += " " + section
	}
	return header
}

func linePtr(n int) *int {
	v := n
	return &v
}
