package git

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"reposync.dev/reposync/internal/output"
	"reposync.dev/reposync/internal/shell"
)

// fakeRunner replays canned results keyed by the joined command line
// and records every call.
type fakeRunner struct {
	results map[string]*shell.Result
	calls   []string
}

func (f *fakeRunner) Run(args []string, _ shell.Opts) (*shell.Result, error) {
	key := strings.Join(args, " ")
	f.calls = append(f.calls, key)
	if res, ok := f.results[key]; ok {
		return res, nil
	}
	rc := 0
	return &shell.Result{Command: args, ReturnCode: &rc}, nil
}

// fakeNotifier records messages and hands out FatalErrors without
// printing anything.
type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Notify(msg string, _ output.Severity, _ any, _ bool) output.Record {
	f.messages = append(f.messages, msg)
	return output.Record{Message: msg}
}

func (f *fakeNotifier) Fatalf(extra any, format string, args ...any) *output.FatalError {
	msg := fmt.Sprintf(format, args...)
	f.messages = append(f.messages, "FATAL: "+msg)
	return &output.FatalError{Message: msg, Extra: extra, Code: output.FatalExitCode}
}

func newFakeClient(results map[string]*shell.Result) (*Client, *fakeRunner, *fakeNotifier) {
	runner := &fakeRunner{results: results}
	notifier := &fakeNotifier{}
	client := &Client{
		localPath:   "/repo",
		run:         runner,
		notify:      notifier,
		hostname:    func() (string, error) { return "testhost", nil },
		ident:       "reposync",
		mergeBranch: DefaultBranch,
	}
	return client, runner, notifier
}

func stdoutResult(lines ...string) *shell.Result {
	rc := 0
	return &shell.Result{Stdout: lines, ReturnCode: &rc}
}

func TestParseStatus(t *testing.T) {
	t.Run("classifies porcelain codes", func(t *testing.T) {
		snap := parseStatus([]string{"?? a.txt", " M b.txt", " D c.txt", "UU d.txt"})

		require.Equal(t, []string{"a.txt"}, snap.Untracked)
		require.Equal(t, []string{"b.txt"}, snap.Modified)
		require.Equal(t, []string{"c.txt"}, snap.Deleted)
		require.Equal(t, []string{"d.txt"}, snap.Conflicting)
		require.False(t, snap.Clean)
	})

	t.Run("empty input is clean", func(t *testing.T) {
		snap := parseStatus(nil)

		require.Empty(t, snap.Untracked)
		require.Empty(t, snap.Modified)
		require.Empty(t, snap.Deleted)
		require.Empty(t, snap.Conflicting)
		require.True(t, snap.Clean)
	})

	t.Run("one code can hit several buckets", func(t *testing.T) {
		snap := parseStatus([]string{"MD x.txt"})

		require.Equal(t, []string{"x.txt"}, snap.Modified)
		require.Equal(t, []string{"x.txt"}, snap.Deleted)
	})
}

func TestRemoteCachedMode(t *testing.T) {
	t.Run("cached answers from local configuration", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git remote show -n": stdoutResult("origin"),
		})

		remote, err := client.Remote(true)

		require.NoError(t, err)
		require.Equal(t, "origin", remote)
		require.Equal(t, []string{"git remote show -n"}, runner.calls)
	})

	t.Run("uncached queries the remote live", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git remote show": stdoutResult("origin"),
		})

		remote, err := client.Remote(false)

		require.NoError(t, err)
		require.Equal(t, "origin", remote)
		require.Equal(t, []string{"git remote show"}, runner.calls)
	})
}

func TestStatusFailureDegradesToCleanSnapshot(t *testing.T) {
	var buf bytes.Buffer
	notifier := output.NewWriter(&buf)
	client := &Client{
		localPath:   t.TempDir(),
		run:         shell.NewRunner(notifier),
		notify:      notifier,
		hostname:    func() (string, error) { return "testhost", nil },
		ident:       "reposync",
		mergeBranch: DefaultBranch,
	}

	snap, err := client.Status()

	require.NoError(t, err)
	require.True(t, snap.Clean)
	require.NotContains(t, buf.String(), "[FATAL]")
}

func TestBranchParsing(t *testing.T) {
	client, _, _ := newFakeClient(map[string]*shell.Result{
		"git branch": stdoutResult("  main", "* feature"),
	})

	branch, err := client.Branch()

	require.NoError(t, err)
	require.Equal(t, "feature", branch)
}

func TestSetBranchCommand(t *testing.T) {
	t.Run("creates the branch when unknown on the remote", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch -r": stdoutResult("  origin/master"),
			"git branch":    stdoutResult("* feature"),
		})

		_, err := client.SetBranch("feature")

		require.NoError(t, err)
		require.Contains(t, runner.calls, "git checkout -B feature")
	})

	t.Run("plain checkout when the remote has it", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch -r": stdoutResult("  origin/master", "  origin/feature"),
			"git branch":    stdoutResult("* feature"),
		})

		_, err := client.SetBranch("feature")

		require.NoError(t, err)
		require.Contains(t, runner.calls, "git checkout feature")
	})

	t.Run("empty name falls back to master", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch -r": stdoutResult("  origin/master"),
			"git branch":    stdoutResult("* master"),
		})

		branch, err := client.SetBranch("")

		require.NoError(t, err)
		require.Equal(t, "master", branch)
		require.Contains(t, runner.calls, "git checkout master")
	})
}

func TestCleanupSequence(t *testing.T) {
	t.Run("dirty working copy is staged and committed on the host branch", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch":             stdoutResult("* master"),
			"git branch -r":          stdoutResult("  origin/master"),
			"git status --porcelain": stdoutResult("?? new.txt", " M changed.txt", " D gone.txt"),
			"git fetch --tag":        stdoutResult("new remote data"),
		})

		res, err := client.Cleanup()

		require.NoError(t, err)
		require.False(t, res.Changes.Clean)
		require.Equal(t, []string{"new remote data"}, res.Fetch.Stdout)

		require.Contains(t, runner.calls, "git checkout -B testhost")
		require.Contains(t, runner.calls, "git add new.txt")
		require.Contains(t, runner.calls, "git add changed.txt")
		require.Contains(t, runner.calls, "git rm gone.txt")
		require.Contains(t, runner.calls, "git commit -m testhost reposync auto commit")
		require.Contains(t, runner.calls, "git merge master -m testhost reposync auto merge")

		// Strict order: switch, stage, commit, restore, fetch, merge.
		require.Less(t,
			indexOf(runner.calls, "git checkout -B testhost"),
			indexOf(runner.calls, "git add new.txt"))
		require.Less(t,
			indexOf(runner.calls, "git commit -m testhost reposync auto commit"),
			indexOf(runner.calls, "git fetch --tag"))
		require.Less(t,
			indexOf(runner.calls, "git fetch --tag"),
			indexOf(runner.calls, "git merge master -m testhost reposync auto merge"))
	})

	t.Run("clean working copy commits and merges nothing", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch":    stdoutResult("* master"),
			"git branch -r": stdoutResult("  origin/master"),
		})

		res, err := client.Cleanup()

		require.NoError(t, err)
		require.True(t, res.Changes.Clean)
		for _, call := range runner.calls {
			require.NotContains(t, call, "commit")
			require.NotContains(t, call, "merge")
		}
	})

	t.Run("conflicting files are fatal", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch":             stdoutResult("* master"),
			"git branch -r":          stdoutResult("  origin/master"),
			"git status --porcelain": stdoutResult("UU clash.txt"),
		})

		_, err := client.Cleanup()

		var fatal *output.FatalError
		require.ErrorAs(t, err, &fatal)
		require.Equal(t, 23, fatal.Code)
		require.NotContains(t, runner.calls, "git fetch --tag")
	})

	t.Run("conflict marker in fetch output is fatal", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch":      stdoutResult("* master"),
			"git branch -r":   stdoutResult("  origin/master"),
			"git fetch --tag": stdoutResult("CONFLICT (content): merge conflict"),
		})

		_, err := client.Cleanup()

		var fatal *output.FatalError
		require.ErrorAs(t, err, &fatal)
		for _, call := range runner.calls {
			require.NotContains(t, call, "git merge")
		}
	})

	t.Run("quiet fetch skips the merge", func(t *testing.T) {
		client, runner, _ := newFakeClient(map[string]*shell.Result{
			"git branch":    stdoutResult("* master"),
			"git branch -r": stdoutResult("  origin/master"),
		})

		res, err := client.Cleanup()

		require.NoError(t, err)
		require.Empty(t, res.Fetch.Stdout)
		for _, call := range runner.calls {
			require.NotContains(t, call, "git merge")
		}
	})
}

func TestPublishRunsCleanupFirst(t *testing.T) {
	client, runner, _ := newFakeClient(map[string]*shell.Result{
		"git branch":         stdoutResult("* master"),
		"git branch -r":      stdoutResult("  origin/master"),
		"git remote show -n": stdoutResult("origin"),
	})

	push, err := client.Publish()

	require.NoError(t, err)
	require.True(t, push.Succeeded())
	require.Contains(t, runner.calls, "git push -u origin master")
	require.Less(t,
		indexOf(runner.calls, "git fetch --tag"),
		indexOf(runner.calls, "git push -u origin master"))
}

func indexOf(haystack []string, needle string) int {
	for i, s := range haystack {
		if s == needle {
			return i
		}
	}
	return -1
}
