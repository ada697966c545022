package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newLogCmd creates the log command
func newLogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent commits",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}

			entries, err := client.Log(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no history")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderLog(entries))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of commits to show")
	return cmd
}
