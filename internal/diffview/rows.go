package diffview

type RowKind int

const (
	RowContext RowKind = iota
	RowDelete
	RowAdd
	RowHunkHeader
	RowFileHeader
)

// Row is one display line of a unified diff. OldLine and NewLine are nil
// when the row has no number on that side.
type Row struct {
	Kind    RowKind
	OldLine *int
	NewLine *int
	Text    string
	Path    string
	HunkID  int
}
