package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Auto-commit local drift and merge remote changes",
		Long: `Sync parks any local changes as an auto commit on a branch named
after this host, restores the previous branch, fetches from the remote
and merges new changes. Conflicts stop the run and are left for the
operator.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}

			res, err := client.Cleanup()
			if err != nil {
				return err
			}

			if res.Changes.Clean {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to commit")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "committed %d change(s)\n",
					len(res.Changes.Untracked)+len(res.Changes.Modified)+len(res.Changes.Deleted))
			}
			if len(res.Fetch.Stdout) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "remote already up to date")
			}
			return nil
		},
	}
}
