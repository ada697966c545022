// Package cli wires the cobra command surface on top of the shell
// runner, the notifier and the repository client.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command.
func NewRootCmd(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reposync",
		Short: "Reposync keeps a working copy in sync with its remote",
		Long: `Reposync keeps one local working copy in sync with one remote:
local drift is auto-committed onto a branch named after this host,
remote changes are fetched and merged, and publish pushes the current
branch upstream.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.String("repo", "", "path of the working copy (default: discovered from the current directory)")
	pf.String("remote", "", "remote URL used when a fresh clone is needed")
	pf.Duration("timeout", 0, "per-command timeout for git invocations")
	pf.Bool("quiet", false, "suppress informational messages")
	pf.String("defaults", "", "settings defaults file (default: <conf dir>/defaults.yaml)")
	pf.String("config", "", "settings override file (default: <conf dir>/config.yaml)")

	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newLogCmd())
	rootCmd.AddCommand(newBranchCmd())
	rootCmd.AddCommand(newSyncCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd(version, commit, date))

	return rootCmd
}
