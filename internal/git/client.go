// Package git shells out to the git CLI for repository discovery, changed
// files, commits and per-file diffs.
package git

import (
	"context"
	"strings"

	"prview/internal/util"
)

// Client runs git commands against one repository.
type Client struct {
	root   string
	gitDir string
}

// Discover resolves the repository containing cwd.
func Discover(ctx context.Context, cwd string) (*Client, error) {
	root, err := util.Run(ctx, cwd, "git", "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, err
	}
	gitDir, err := util.Run(ctx, cwd, "git", "rev-parse", "--absolute-git-dir")
	if err != nil {
		return nil, err
	}
	return &Client{
		root:   strings.TrimSpace(root),
		gitDir: strings.TrimSpace(gitDir),
	}, nil
}

func (c *Client) Root() string   { return c.root }
func (c *Client) GitDir() string { return c.gitDir }
