package filetree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

type change struct {
	path     string
	reviewed bool
}

func changePath(c change) string { return c.path }
func isReviewed(c change) bool { return c.reviewed }

func paths(ps ...string) []change {
	out := make([]change, len(ps))
	for i, p := range ps {
		out[i] = change{path: p}
	}
	return out
}

func TestBuildNestsAndSortsDirsBeforeFiles(t *testing.T) {
	tree := Build(paths("zz.go", "app/b.go", "app/a.go", "README.md"), changePath)

	require.Len(t, tree, 3)
	require.Equal(t, "app", tree[0].Path)
	require.True(t, tree[0].IsDir())
	require.Equal(t, "README.md", tree[1].Name)
	require.Equal(t, "zz.go", tree[2].Name)

	require.Len(t, tree[0].Children, 2)
	require.Equal(t, "app/a.go", tree[0].Children[0].Path)
	require.Equal(t, "app/b.go", tree[0].Children[1].Path)
}

func TestBuildCompactsSingleChildDirectoryChains(t *testing.T) {
	tree := Build(paths(
		"src/lib/utils/helpers/format.ts",
		"src/lib/utils/helpers/parse.ts",
	), changePath)

	require.Len(t, tree, 1)
	dir := tree[0]
	require.Equal(t, "src/lib/utils/helpers", dir.Name)
	require.Equal(t, "src/lib/utils/helpers", dir.Path)
	require.Len(t, dir.Children, 2)
	require.Equal(t, "format.ts", dir.Children[0].Name)
	require.Equal(t, "parse.ts", dir.Children[1].Name)
}

func TestBuildStopsCompactingAtFanOut(t *testing.T) {
	tree := Build(paths("a/b/one.go", "a/c/two.go"), changePath)

	require.Len(t, tree, 1)
	require.Equal(t, "a", tree[0].Name)
	require.Len(t, tree[0].Children, 2)
	require.Equal(t, "a/b", tree[0].Children[0].Name)
	require.Equal(t, "a/c", tree[0].Children[1].Name)
}

func TestBuildSkipsEmptyPaths(t *testing.T) {
	tree := Build(paths("", "  ", "ok.go"), changePath)
	require.Len(t, tree, 1)
	require.Equal(t, "ok.go", tree[0].Name)
}

func TestChildPathsArePrefixedByParent(t *testing.T) {
	tree := Build(paths("a/b/c/x.go", "a/b/y.go", "a/z.go"), changePath)
	var walk func(nodes []*Node[change], parent string)
	walk = func(nodes []*Node[change], parent string) {
		for _, n := range nodes {
			if parent != "" {
				require.True(t, len(n.Path) > len(parent) && n.Path[:len(parent)+1] == parent+"/",
					"child %q not under parent %q", n.Path, parent)
			}
			walk(n.Children, n.Path)
		}
	}
	walk(tree, "")
}

func TestStatusAggregation(t *testing.T) {
	records := []change{
		{path: "a/x.ts", reviewed: true},
		{path: "a/y.ts", reviewed: false},
		{path: "b/z.ts", reviewed: true},
	}
	tree := Build(records, changePath)

	require.Len(t, tree, 2)
	require.Equal(t, SomeReviewed, tree[0].Status(isReviewed))
	require.Equal(t, AllReviewed, tree[1].Status(isReviewed))

	require.Equal(t, AllReviewed, tree[0].Children[0].Status(isReviewed))
	require.Equal(t, NoneReviewed, tree[0].Children[1].Status(isReviewed))
}

func TestStatusRecomputesFromCurrentFlags(t *testing.T) {
	records := []change{{path: "a/x.ts"}, {path: "a/y.ts"}}
	tree := Build(records, changePath)
	dir := tree[0]

	reviewed := map[string]bool{}
	byMap := func(c change) bool { return reviewed[c.path] }

	require.Equal(t, NoneReviewed, dir.Status(byMap))
	reviewed["a/x.ts"] = true
	require.Equal(t, SomeReviewed, dir.Status(byMap))
	reviewed["a/y.ts"] = true
	require.Equal(t, AllReviewed, dir.Status(byMap))
}

func TestFlattenHonorsCollapsedDirs(t *testing.T) {
	tree := Build(paths("a/b/x.go", "a/b/y.go", "top.go"), changePath)

	rows := Flatten(tree, nil)
	require.Len(t, rows, 4) // a/b, x.go, y.go, top.go
	require.Equal(t, "a/b", rows[0].Node.Path)
	require.Equal(t, 1, rows[1].Depth)

	rows = Flatten(tree, map[string]bool{"a/b": true})
	require.Len(t, rows, 2)
	require.Equal(t, "a/b", rows[0].Node.Path)
	require.Equal(t, "top.go", rows[1].Node.Path)
}

// Feeding the same records in any permutation must yield structurally
// identical trees.
func TestBuildIsOrderIndependent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seg := rapid.SampledFrom([]string{"a", "b", "cc", "d"})
		pathGen := rapid.Custom(func(t *rapid.T) string {
			parts := rapid.SliceOfN(seg, 1, 4).Draw(t, "parts")
			p := parts[0]
			for _, s := range parts[1:] {
				p += "/" + s
			}
			return p
		})
		ps := rapid.SliceOfNDistinct(pathGen, 1, 8, rapid.ID[string]).Draw(t, "paths")

		// Leaf paths must be unique and must not collide with directory
		// paths of other records.
		records := paths(ps...)
		base := Build(records, changePath)

		perm := rapid.Permutation(records).Draw(t, "perm")
		permuted := Build(perm, changePath)

		require.Equal(t, render(base), render(permuted))
	})
}

// render serializes a tree shape for structural comparison.
func render(nodes []*Node[change]) []string {
	var out []string
	var walk func(nodes []*Node[change], depth int)
	walk = func(nodes []*Node[change], depth int) {
		for _, n := range nodes {
			kind := "f"
			if n.IsDir() {
				kind = "d"
			}
			out = append(out, string(rune('0'+depth))+kind+":"+n.Name+"@"+n.Path)
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
	return out
}
