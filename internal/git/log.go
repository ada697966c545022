package git

import (
	"strings"

	"reposync.dev/reposync/internal/shell"
)

// LogEntry is one commit from the bounded history query.
type LogEntry struct {
	Commit  string `json:"commit"`
	Message string `json:"message"`
}

// Remote returns the configured remote as reported by git, or empty
// when none is set up. Cached mode answers from local configuration
// without touching the network; callers pass true unless they want a
// live query.
func (c *Client) Remote(cached bool) (string, error) {
	args := []string{"remote", "show"}
	if cached {
		args = append(args, "-n")
	}
	res, err := c.git(args, shell.Opts{Quiet: true})
	if err != nil {
		return "", err
	}
	return res.Out(), nil
}

// CommitHash returns the full hash of the latest commit, or the most
// relevant message when there is none. Runs non-critically.
func (c *Client) CommitHash() string {
	res, _ := c.logQuery(1, "%H", true)
	return res.Out()
}

// Log returns up to limit recent commits (10 when limit is not
// positive), parsed from a delimiter-separated two-field format.
func (c *Client) Log(limit int) ([]LogEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	res, err := c.logQuery(limit, "%h::%b", false)
	if err != nil {
		return nil, err
	}

	var entries []LogEntry
	for _, line := range res.Stdout {
		commit, message, ok := strings.Cut(line, "::")
		if !ok {
			continue
		}
		entries = append(entries, LogEntry{Commit: commit, Message: message})
	}
	return entries, nil
}
