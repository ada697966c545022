// Package git wraps one local working copy and drives the external
// git binary through the shell runner: status, branch and log queries
// plus the auto-sync workflow (stage, commit, fetch, merge, push).
package git

import (
	"errors"
	"path/filepath"
	"strconv"

	"reposync.dev/reposync/internal/locations"
	"reposync.dev/reposync/internal/output"
	"reposync.dev/reposync/internal/shell"
)

// DefaultBranch is the branch checked out when none is named.
const DefaultBranch = "master"

// Runner executes external commands. *shell.Runner is the real
// implementation; tests substitute doubles.
type Runner interface {
	Run(args []string, opts shell.Opts) (*shell.Result, error)
}

// Notifier reports leveled messages. *output.Notifier is the real
// implementation.
type Notifier interface {
	Notify(msg string, sev output.Severity, extra any, verbose bool) output.Record
	Fatalf(extra any, format string, args ...any) *output.FatalError
}

// Client owns the path reference to one working copy and issues git
// commands against it. Branch, status and log are never cached; every
// query runs live.
type Client struct {
	localPath string
	remoteURL string

	run      Runner
	notify   Notifier
	hostname func() (string, error)

	ident       string
	mergeBranch string
}

// Options configures a Client.
type Options struct {
	// RemoteURL is cloned from when the local path has no history yet.
	RemoteURL string
	// Ident is the product identifier embedded into auto-generated
	// commit and merge messages.
	Ident string
	// MergeBranch is the branch merged from after a fetch with new
	// data. Defaults to DefaultBranch.
	MergeBranch string
	// Hostname resolves the short machine name used for the per-host
	// branch and the auto-generated messages.
	Hostname func() (string, error)
}

// NewClient resolves (creating if needed) the local path and ensures
// it holds git history, cloning from the remote URL when it does not.
// A fresh path without a remote URL is fatal.
func NewClient(localPath string, run Runner, notify Notifier, opts Options) (*Client, error) {
	if run == nil || notify == nil {
		return nil, errors.New("git: runner and notifier are required")
	}
	if opts.Hostname == nil {
		return nil, errors.New("git: hostname resolver is required")
	}
	if opts.MergeBranch == "" {
		opts.MergeBranch = DefaultBranch
	}

	abs, err := filepath.Abs(localPath)
	if err != nil {
		return nil, err
	}
	if _, err := locations.Make(abs); err != nil {
		return nil, err
	}

	c := &Client{
		localPath:   abs,
		remoteURL:   opts.RemoteURL,
		run:         run,
		notify:      notify,
		hostname:    opts.Hostname,
		ident:       opts.Ident,
		mergeBranch: opts.MergeBranch,
	}

	probe, _ := c.git([]string{"log", "-n", "0"}, shell.Opts{NonCritical: true, Quiet: true})
	if !probe.Succeeded() {
		if c.remoteURL == "" {
			return nil, notify.Fatalf(map[string]string{"local": c.localPath},
				"a new clone without a remote URL is not possible")
		}
		notify.Notify("cloning into repository", output.Info,
			map[string]string{"remote": c.remoteURL, "local": c.localPath}, true)
		if _, err := run.Run([]string{"git", "clone", c.remoteURL, c.localPath}, shell.Opts{}); err != nil {
			return nil, err
		}
	}

	notify.Notify("git tool startup done", output.Info,
		map[string]string{"remote": c.remoteURL, "local": c.localPath}, false)
	return c, nil
}

// LocalPath returns the working copy directory.
func (c *Client) LocalPath() string {
	return c.localPath
}

// RemoteURL returns the remote URL given at construction, if any.
func (c *Client) RemoteURL() string {
	return c.remoteURL
}

// git runs a git subcommand inside the working copy.
func (c *Client) git(args []string, opts shell.Opts) (*shell.Result, error) {
	opts.Dir = c.localPath
	return c.run.Run(append([]string{"git"}, args...), opts)
}

// logQuery runs a bounded log command with an optional format.
func (c *Client) logQuery(limit int, format string, nonCritical bool) (*shell.Result, error) {
	args := []string{"log", "-n", strconv.Itoa(limit)}
	if format != "" {
		args = append(args, "--format="+format)
	}
	return c.git(args, shell.Opts{NonCritical: nonCritical, Quiet: true})
}
