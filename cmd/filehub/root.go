package main

import (
	"github.com/CageChen/filehub/internal/log"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "filehub",
		Short: "filehub reads, writes and serves local files",
		Long: `filehub wraps everyday file operations (read, write, append, move, copy,
list) behind one command line, and can serve folders over a REST API with
live change notifications.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := opts.logLevel
			if level == "" {
				level = "warn"
			}
			return log.Setup(level)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Path to the config file (YAML)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(fileCommands()...)
	cmd.AddCommand(newTopicsCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}
