package cli

import (
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// newPublishCmd creates the publish command
func newPublishCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Sync, then push the current branch upstream",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}
			client, err := app.client()
			if err != nil {
				return err
			}

			if !yes && isatty.IsTerminal(os.Stdin.Fd()) {
				branch, err := client.Branch()
				if err != nil {
					return err
				}
				confirmed := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Publish branch %q?", branch),
					Default: true,
				}
				if err := survey.AskOne(prompt, &confirmed); err != nil {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "aborted")
					return nil
				}
			}

			push, err := client.Publish()
			if err != nil {
				return err
			}
			if out := push.Out(); out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "push without asking for confirmation")
	return cmd
}
