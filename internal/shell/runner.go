package shell

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"reposync.dev/reposync/internal/output"
)

// DefaultTimeout bounds every command that does not ask for its own.
const DefaultTimeout = 10 * time.Second

// Opts tunes one invocation. The zero value means: no input, inherit
// no working directory, default timeout, critical, verbose.
type Opts struct {
	// Input is written to the process stdin, which is then closed.
	Input string
	// Dir overrides the process working directory.
	Dir string
	// Timeout bounds the invocation; 0 means DefaultTimeout.
	Timeout time.Duration
	// NonCritical downgrades a failure from Fatal to Warning.
	NonCritical bool
	// Quiet suppresses the Warning printed for non-critical failures.
	Quiet bool
}

// Runner spawns external processes and classifies their failures
// through the notifier.
type Runner struct {
	notifier *output.Notifier
	timeout  time.Duration
}

// NewRunner returns a runner reporting through n.
func NewRunner(n *output.Notifier) *Runner {
	return &Runner{notifier: n}
}

// SetDefaultTimeout replaces DefaultTimeout for invocations that do
// not set their own.
func (r *Runner) SetDefaultTimeout(d time.Duration) {
	r.timeout = d
}

// Run executes args[0] with the remaining arguments, blocking until it
// exits, fails to spawn, or the timeout elapses (the process is then
// force-killed). The Result is always returned; the error is non-nil
// only for a critical failure, and is then a *output.FatalError that
// has already been reported.
func (r *Runner) Run(args []string, opts Opts) (*Result, error) {
	res := &Result{Command: args, Stdin: opts.Input, Dir: opts.Dir}

	if len(args) == 0 {
		res.Exception = "empty command"
		return r.classify(res, opts)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = r.timeout
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = opts.Dir
	if opts.Input != "" {
		cmd.Stdin = strings.NewReader(opts.Input)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		res.Exception = fmt.Sprintf("command %q timed out after %s",
			strings.Join(args, " "), timeout)
		res.TimeoutSeconds = timeout.Seconds()
	case err == nil, errors.As(err, &exitErr):
		res.Stdout = splitLines(stdout.String())
		res.Stderr = splitLines(stderr.String())
		rc := cmd.ProcessState.ExitCode()
		res.ReturnCode = &rc
	default:
		res.Exception = err.Error()
	}

	return r.classify(res, opts)
}

// RunString tokenizes cmdline with shell-word rules (quoting and
// escaping respected, no metacharacter interpretation) and runs it.
func (r *Runner) RunString(cmdline string, opts Opts) (*Result, error) {
	args, err := shellquote.Split(cmdline)
	if err != nil {
		res := &Result{
			Command:   []string{cmdline},
			Exception: fmt.Sprintf("cannot tokenize command: %v", err),
		}
		return r.classify(res, opts)
	}
	return r.Run(args, opts)
}

// classify reports a failed invocation through the notifier: Fatal
// when critical, Warning otherwise. Successful invocations pass
// through untouched.
func (r *Runner) classify(res *Result, opts Opts) (*Result, error) {
	if res.Exception == "" && res.Succeeded() {
		return res, nil
	}
	if res.ReturnCode != nil {
		crit := !opts.NonCritical
		res.Critical = &crit
	}

	msg := fmt.Sprintf("error in shell command %q", strings.Join(res.Command, " "))
	if !opts.NonCritical {
		return res, r.notifier.Fatalf(res, "%s", msg)
	}
	r.notifier.Notify(msg, output.Warning, res, !opts.Quiet)
	return res, nil
}
