// Package filetree turns a flat list of changed-file records into a sorted,
// compacted directory tree with review status rolled up through directories.
package filetree

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node is one entry of the tree: a file when File is non-nil, otherwise a
// directory. Path is the slash-joined path from the tree root and is unique
// across all nodes; children's paths are prefixed by their parent's.
type Node[T any] struct {
	Name     string
	Path     string
	File     *T
	Children []*Node[T]
}

func (n *Node[T]) IsDir() bool { return n.File == nil }

var collator = collate.New(language.Und)

// Build constructs the tree for records, taking each record's path from the
// path func. It is pure and deterministic: any permutation of the same
// records yields the same tree. Records with an empty path indicate a broken
// upstream contract; they are skipped with a warning rather than crashing
// the build.
//
// Within a directory, subdirectories sort before files and names compare
// locale-aware. Chains of single-child directories collapse into one node
// named "parent/child".
func Build[T any](records []T, path func(T) string) []*Node[T] {
	root := &Node[T]{}
	byPath := make(map[string]*Node[T])

	for i := range records {
		p := strings.Trim(strings.TrimSpace(path(records[i])), "/")
		if p == "" {
			log.Warn().Msg("filetree: skipping record with empty path")
			continue
		}
		insert(root, byPath, p, &records[i])
	}

	sortNodes(root.Children)
	return compact(root.Children)
}

func insert[T any](root *Node[T], byPath map[string]*Node[T], p string, file *T) {
	parts := strings.Split(p, "/")
	parent := root
	prefix := ""
	for _, part := range parts[:len(parts)-1] {
		if prefix == "" {
			prefix = part
		} else {
			prefix = prefix + "/" + part
		}
		dir, ok := byPath[prefix]
		if !ok {
			dir = &Node[T]{Name: part, Path: prefix}
			byPath[prefix] = dir
			parent.Children = append(parent.Children, dir)
		}
		parent = dir
	}
	parent.Children = append(parent.Children, &Node[T]{
		Name: parts[len(parts)-1],
		Path: p,
		File: file,
	})
}

func sortNodes[T any](nodes []*Node[T]) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].IsDir() != nodes[j].IsDir() {
			return nodes[i].IsDir()
		}
		return collator.CompareString(nodes[i].Name, nodes[j].Name) < 0
	})
	for _, n := range nodes {
		if n.IsDir() {
			sortNodes(n.Children)
		}
	}
}

// compact collapses every directory whose sole child is itself a directory,
// repeating until a node has zero or two-plus children or its only child is
// a file. Mirrors how a reader skims a deeply nested single-child path.
func compact[T any](nodes []*Node[T]) []*Node[T] {
	for _, n := range nodes {
		if !n.IsDir() {
			continue
		}
		for len(n.Children) == 1 && n.Children[0].IsDir() {
			child := n.Children[0]
			n.Name = n.Name + "/" + child.Name
			n.Path = child.Path
			n.Children = child.Children
		}
		n.Children = compact(n.Children)
	}
	return nodes
}

// Row is one rendered line of the tree, with its indentation depth.
type Row[T any] struct {
	Node  *Node[T]
	Depth int
}

// Flatten lists the rows visible given the collapsed directory set, in
// display order.
func Flatten[T any](nodes []*Node[T], collapsed map[string]bool) []Row[T] {
	out := make([]Row[T], 0, len(nodes)*2)
	flattenInto(nodes, 0, collapsed, &out)
	return out
}

func flattenInto[T any](nodes []*Node[T], depth int, collapsed map[string]bool, out *[]Row[T]) {
	for _, n := range nodes {
		*out = append(*out, Row[T]{Node: n, Depth: depth})
		if n.IsDir() && !collapsed[n.Path] {
			flattenInto(n.Children, depth+1, collapsed, out)
		}
	}
}
