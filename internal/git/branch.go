package git

import (
	"strings"

	"reposync.dev/reposync/internal/output"
	"reposync.dev/reposync/internal/shell"
)

// Branch returns the currently checked-out branch: the entry git marks
// with "*", stripped of the marker.
func (c *Client) Branch() (string, error) {
	res, err := c.branchShow(false)
	if err != nil {
		return "", err
	}
	for _, line := range res.Stdout {
		if strings.Contains(line, "*") {
			return strings.TrimSpace(strings.ReplaceAll(line, "*", "")), nil
		}
	}
	return "", nil
}

// SetBranch checks out the named branch (DefaultBranch when empty),
// creating it when it is not known on the remote. A failed checkout is
// fatal. Returns the re-queried active branch.
func (c *Client) SetBranch(name string) (string, error) {
	if name == "" {
		name = DefaultBranch
	}

	remotes, err := c.branchShow(true)
	if err != nil {
		return "", err
	}

	args := []string{"checkout"}
	if !strings.Contains(remotes.Out(), name) {
		args = append(args, "-B")
	}
	args = append(args, name)

	c.notify.Notify("checking out branch", output.Info, name, true)
	if _, err := c.git(args, shell.Opts{}); err != nil {
		return "", err
	}
	return c.Branch()
}

// branchShow lists local or remote branches, quietly.
func (c *Client) branchShow(remotes bool) (*shell.Result, error) {
	args := []string{"branch"}
	if remotes {
		args = append(args, "-r")
	}
	return c.git(args, shell.Opts{Quiet: true})
}
