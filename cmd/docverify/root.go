package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"docverify/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "docverify",
		Short: "Verify documents locally or against a running verification service",
		Long: `docverify runs the document intake and verdict pipeline.

"check" runs it in-process on local files; "submit" uploads a file to a
running service.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger := logging.New(os.Stderr, nil)
			if !verbose {
				logger = logging.Discard()
			}
			slog.SetDefault(logger)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to stderr")
	root.AddCommand(newCheckCmd(), newSubmitCmd(), newVersionCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of docverify",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "docverify version %s\n", version)
		},
	}
}
