package main

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/akademate/pkg/config"
)

var envFiles []string

func rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "flagsvc",
		Short:         "Tenant feature flag service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return config.LoadEnv(envFiles...)
		},
	}
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "dotenv files loaded before reading the environment")

	cmd.AddCommand(serveCommand(), migrateCommand(), seedCommand())
	return cmd
}
