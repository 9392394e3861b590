package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/youruser/comicstrip/internal/config"
)

type rootOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "comicstrip",
		Short:         "Arrange up to ten images into a comic strip",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := config.Load().LogLevel
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cmd.AddCommand(newRenderCmd(), newGeometryCmd())
	return cmd
}
