package filetree

// Status is the derived review state of a node. It is never stored; it is
// recomputed bottom-up at query time so it always agrees with the current
// reviewed flags.
type Status int

const (
	NoneReviewed Status = iota
	SomeReviewed
	AllReviewed
)

func (s Status) String() string {
	switch s {
	case AllReviewed:
		return "all-reviewed"
	case SomeReviewed:
		return "some-reviewed"
	default:
		return "none-reviewed"
	}
}

// Status reports the node's review state: for a file it mirrors the reviewed
// predicate; for a directory it is AllReviewed iff every descendant file is
// reviewed, NoneReviewed iff none is, and SomeReviewed otherwise.
func (n *Node[T]) Status(reviewed func(T) bool) Status {
	if n.File != nil {
		if reviewed(*n.File) {
			return AllReviewed
		}
		return NoneReviewed
	}

	anyReviewed := false
	allReviewed := true
	for _, c := range n.Children {
		switch c.Status(reviewed) {
		case AllReviewed:
			anyReviewed = true
		case SomeReviewed:
			anyReviewed = true
			allReviewed = false
		case NoneReviewed:
			allReviewed = false
		}
	}
	if !anyReviewed {
		return NoneReviewed
	}
	if allReviewed {
		return AllReviewed
	}
	return SomeReviewed
}
