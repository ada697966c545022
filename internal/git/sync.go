package git

import (
	"fmt"
	"strings"

	"reposync.dev/reposync/internal/output"
	"reposync.dev/reposync/internal/shell"
)

// conflictMarker in fetch output means the remote and local histories
// need a human.
const conflictMarker = "CONFLICT"

// CleanupResult aggregates what Cleanup found and fetched.
type CleanupResult struct {
	Changes *StatusSnapshot `json:"changes"`
	Fetch   *shell.Result   `json:"fetch"`
}

// Cleanup runs the auto-sync workflow: park local drift as an auto
// commit on a branch named after this host, then pull in remote
// changes. Steps run strictly in order, exactly once, with no
// rollback; non-critical failures are reported and the workflow
// continues with partial data.
func (c *Client) Cleanup() (*CleanupResult, error) {
	host, err := c.hostname()
	if err != nil {
		return nil, err
	}

	oldBranch, err := c.Branch()
	if err != nil {
		return nil, err
	}
	if _, err := c.SetBranch(host); err != nil {
		return nil, err
	}

	changes, err := c.Status()
	if err != nil {
		return nil, err
	}
	if !changes.Clean {
		for _, f := range append(append([]string{}, changes.Untracked...), changes.Modified...) {
			c.notify.Notify("adding file to repository", output.Info, f, true)
			_, _ = c.git([]string{"add", f}, shell.Opts{NonCritical: true})
		}
		for _, f := range changes.Deleted {
			c.notify.Notify("removing file from repository", output.Info, f, true)
			_, _ = c.git([]string{"rm", f}, shell.Opts{NonCritical: true})
		}
		if len(changes.Conflicting) > 0 {
			return nil, c.notify.Fatalf(changes,
				"there are conflicting files in the repository, resolve them first")
		}

		c.notify.Notify("auto committing changes", output.Info, changes, true)
		msg := fmt.Sprintf("%s %s auto commit", host, c.ident)
		if _, err := c.git([]string{"commit", "-m", msg}, shell.Opts{}); err != nil {
			return nil, err
		}
	}

	if _, err := c.SetBranch(oldBranch); err != nil {
		return nil, err
	}

	c.notify.Notify("fetching remote changes", output.Info, nil, true)
	fetch, _ := c.git([]string{"fetch", "--tag"}, shell.Opts{NonCritical: true})

	if strings.Contains(fetch.Out(), conflictMarker) {
		return nil, c.notify.Fatalf(fetch,
			"there is a merge conflict with the remote repository")
	}
	if len(fetch.Stdout) > 0 {
		c.notify.Notify("merging with remote changes", output.Info, fetch, true)
		msg := fmt.Sprintf("%s %s auto merge", host, c.ident)
		if _, err := c.git([]string{"merge", c.mergeBranch, "-m", msg}, shell.Opts{}); err != nil {
			return nil, err
		}
	}

	return &CleanupResult{Changes: changes, Fetch: fetch}, nil
}

// Publish runs Cleanup and then pushes the current branch to the
// current remote, setting upstream tracking.
func (c *Client) Publish() (*shell.Result, error) {
	if _, err := c.Cleanup(); err != nil {
		return nil, err
	}

	remote, err := c.Remote(true)
	if err != nil {
		return nil, err
	}
	branch, err := c.Branch()
	if err != nil {
		return nil, err
	}

	c.notify.Notify(fmt.Sprintf("pushing changes to %s/%s", remote, branch), output.Info,
		map[string]string{"remote": remote, "branch": branch}, true)
	return c.git([]string{"push", "-u", remote, branch}, shell.Opts{})
}
