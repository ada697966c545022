package main

import (
	"errors"
	"fmt"
	"os"

	"reposync.dev/reposync/internal/cli"
	"reposync.dev/reposync/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := cli.NewRootCmd(version, commit, date)
	if err := rootCmd.Execute(); err != nil {
		var fatal *output.FatalError
		if errors.As(err, &fatal) {
			// Already reported through the notifier.
			os.Exit(fatal.Code)
		}
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
