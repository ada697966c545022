package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reposync.dev/reposync/internal/config"
)

// newConfigCmd creates the config command
func newConfigCmd() *cobra.Command {
	var (
		formatter string
		write     bool
	)

	cmd := &cobra.Command{
		Use:   "config [keys...]",
		Short: "Show the merged settings, or a value inside them",
		Long: `Reads the defaults file with the override file merged on top and
prints the result, or the value found by walking the given keys.
With --write, the merged settings are written back to the override
file (the previous file is backed up first).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd)
			if err != nil {
				return err
			}

			value, ok := app.settings.Get(args...)
			if !ok {
				return fmt.Errorf("no setting under %q", strings.Join(args, "."))
			}

			rendered, err := config.Render(value, formatter)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rendered)

			if write {
				return app.settings.Save(app.configPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatter, "formatter", "f", "yaml",
		"output format: "+strings.Join(config.Styles, "|"))
	cmd.Flags().BoolVar(&write, "write", false, "write the merged settings back to the override file")
	return cmd
}
