package git

import (
	"strings"

	"reposync.dev/reposync/internal/shell"
)

// StatusSnapshot classifies the working copy's paths at one point in
// time. It is derived fresh on every query.
type StatusSnapshot struct {
	Untracked   []string `json:"untracked"`
	Modified    []string `json:"modified"`
	Deleted     []string `json:"deleted"`
	Conflicting []string `json:"conflicting"`
	Clean       bool     `json:"clean"`
}

// Status queries the machine-parsable porcelain status and classifies
// every path by its two-character code. Runs non-critically: a failed
// query degrades to a clean snapshot after a warning.
func (c *Client) Status() (*StatusSnapshot, error) {
	res, err := c.git([]string{"status", "--porcelain"}, shell.Opts{NonCritical: true, Quiet: true})
	if err != nil {
		return nil, err
	}
	return parseStatus(res.Stdout), nil
}

// parseStatus reads porcelain lines: two status characters, a space,
// then the path. A code can land a path in more than one bucket.
func parseStatus(lines []string) *StatusSnapshot {
	s := &StatusSnapshot{}
	for _, line := range lines {
		if len(line) < 4 {
			continue
		}
		code, path := line[:2], line[3:]
		if strings.Contains(code, "?") {
			s.Untracked = append(s.Untracked, path)
		}
		if strings.Contains(code, "M") {
			s.Modified = append(s.Modified, path)
		}
		if strings.Contains(code, "D") {
			s.Deleted = append(s.Deleted, path)
		}
		if strings.Contains(code, "U") {
			s.Conflicting = append(s.Conflicting, path)
		}
	}
	s.Clean = len(s.Untracked)+len(s.Modified)+len(s.Deleted)+len(s.Conflicting) == 0
	return s
}
