package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"prview/internal/util"
)

// Commit is one entry of the commit list.
type Commit struct {
	Hash      string
	ShortHash string
	Author    string
	Date      string
	Subject   string
}

// Fields are separated by unit separators, records by record separators, so
// subjects may contain anything printable.
const logFormat = "%H%x1f%h%x1f%an%x1f%ad%x1f%s%x1e"

// Commits lists the most recent commits reachable from HEAD.
func (c *Client) Commits(ctx context.Context, limit int) ([]Commit, error) {
	out, err := util.Run(ctx, c.root, "git", "log",
		"-n", strconv.Itoa(limit), "--date=short", "--pretty=format:"+logFormat)
	if err != nil {
		return nil, err
	}
	return parseLog(out)
}

func parseLog(data string) ([]Commit, error) {
	var commits []Commit
	for _, rec := range strings.Split(data, "\x1e") {
		rec = strings.TrimLeft(rec, "\n")
		if rec == "" {
			continue
		}
		fields := strings.Split(rec, "\x1f")
		if len(fields) != 5 {
			return nil, fmt.Errorf("unexpected log record: %q", rec)
		}
		commits = append(commits, Commit{
			Hash:      fields[0],
			ShortHash: fields[1],
			Author:    fields[2],
			Date:      fields[3],
			Subject:   fields[4],
		})
	}
	return commits, nil
}
