// Package review persists which files the user has marked reviewed. Flags
// live next to the repository, under the git dir, so they survive restarts
// without polluting the worktree.
package review

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
)

type Store struct {
	path string
}

func NewStore(gitDir string) Store {
	return Store{path: filepath.Join(gitDir, ".prview", "reviewed.json")}
}

// Load returns the reviewed path set. A missing file is an empty set.
func (s Store) Load() (map[string]bool, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, err
	}

	var paths []string
	if err := json.Unmarshal(b, &paths); err != nil {
		return nil, err
	}
	reviewed := make(map[string]bool, len(paths))
	for _, p := range paths {
		reviewed[p] = true
	}
	return reviewed, nil
}

// Save writes the reviewed path set, sorted for stable diffs of the file
// itself.
func (s Store) Save(reviewed map[string]bool) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}

	paths := make([]string, 0, len(reviewed))
	for p, ok := range reviewed {
		if ok {
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	b, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}
