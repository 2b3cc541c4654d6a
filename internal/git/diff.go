package git

import (
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"prview/internal/util"
)

// FileDiff returns the unified diff for one file across refs.
func (c *Client) FileDiff(ctx context.Context, path string, contextLines int, refs ...string) (string, error) {
	args := []string{"diff", "-U" + strconv.Itoa(contextLines), "-M"}
	args = append(args, refs...)
	args = append(args, "--", path)
	out, err := util.Run(ctx, c.root, "git", args...)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out) != "" {
		return out, nil
	}

	// Fallback for untracked paths; --no-index exits 1 when a diff exists.
	cmd := exec.CommandContext(ctx, "git", "diff", "--no-index", "--", "/dev/null", path)
	cmd.Dir = c.root
	noIndexOut, noIndexErr := cmd.CombinedOutput()
	if noIndexErr == nil {
		return string(noIndexOut), nil
	}
	var exitErr *exec.ExitError
	if errors.As(noIndexErr, &exitErr) && exitErr.ExitCode() == 1 {
		return string(noIndexOut), nil
	}

	// Not an untracked file either; treat as no diff.
	return "", nil
}
