package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reposync.dev/reposync/internal/config"
	"reposync.dev/reposync/internal/git"
	"reposync.dev/reposync/internal/locations"
	"reposync.dev/reposync/internal/output"
	"reposync.dev/reposync/internal/shell"
)

// ident names the product in directories and auto-generated commit
// messages.
const ident = "reposync"

// app bundles the per-invocation stack every command builds first.
type app struct {
	notifier *output.Notifier
	runner   *shell.Runner
	settings *config.Settings

	repoFlag   string
	remoteFlag string
	configPath string
}

// newApp reads the persistent flags and assembles notifier, runner and
// settings.
func newApp(cmd *cobra.Command) (*app, error) {
	flags := cmd.Flags()
	repoFlag, _ := flags.GetString("repo")
	remoteFlag, _ := flags.GetString("remote")
	timeout, _ := flags.GetDuration("timeout")
	quiet, _ := flags.GetBool("quiet")
	defaultsFlag, _ := flags.GetString("defaults")
	configFlag, _ := flags.GetString("config")

	dirs := locations.Defaults(ident)

	defaultsPath := defaultsFlag
	if defaultsPath == "" {
		defaultsPath = filepath.Join(dirs.Conf, "defaults.yaml")
	}
	configPath := configFlag
	if configPath == "" {
		configPath = filepath.Join(dirs.Conf, "config.yaml")
	}

	// A defaults file in the standard location is optional; one named
	// explicitly on the command line must exist.
	settings := config.Empty()
	if _, err := os.Stat(defaultsPath); err == nil {
		loaded, err := config.Load(defaultsPath, configPath)
		if err != nil {
			return nil, err
		}
		settings = loaded
	} else if defaultsFlag != "" {
		return nil, fmt.Errorf("defaults file %s does not exist", defaultsPath)
	}

	notifier := output.New()
	notifier.SetQuiet(quiet)

	logFile := os.Getenv("REPOSYNC_LOG_FILE")
	if logFile == "" {
		logFile = settings.String("", "log", "file")
	}
	if logFile != "" {
		if _, err := notifier.WithLogFile(logFile); err != nil {
			return nil, err
		}
	}

	runner := shell.NewRunner(notifier)
	if timeout > 0 {
		runner.SetDefaultTimeout(timeout)
	}

	return &app{
		notifier:   notifier,
		runner:     runner,
		settings:   settings,
		repoFlag:   repoFlag,
		remoteFlag: remoteFlag,
		configPath: configPath,
	}, nil
}

// client resolves the working copy path (flag, settings, then
// discovery from the current directory) and constructs the repository
// client around it.
func (a *app) client() (*git.Client, error) {
	path := a.repoFlag
	if path == "" {
		path = a.settings.String("", "repo", "path")
	}
	if path == "" {
		root, err := git.DiscoverRoot()
		if err != nil {
			return nil, errors.New("no repository given and none found here; use --repo")
		}
		path = root
	}

	remote := a.remoteFlag
	if remote == "" {
		remote = a.settings.String("", "remote", "url")
	}

	return git.NewClient(path, a.runner, a.notifier, git.Options{
		RemoteURL:   remote,
		Ident:       a.settings.String(ident, "ident"),
		MergeBranch: a.settings.String("", "merge", "branch"),
		Hostname:    a.runner.Hostname,
	})
}
