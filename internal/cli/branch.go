package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newBranchCmd creates the branch command
func newBranchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "branch [name]",
		Short: "Show or switch the active branch",
		Long: `Without an argument, prints the currently active branch.
With a name, checks it out, creating the branch when it does not exist
on the remote yet.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}

			if len(args) == 0 {
				branch, err := client.Branch()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), branch)
				return nil
			}

			branch, err := client.SetBranch(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "on branch %s\n", branch)
			return nil
		},
	}
}
