package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	cc := newCommandContext(&configFlag)

	rootCmd := &cobra.Command{
		Use:           "retake",
		Short:         "Reconcile exported media files with their JSON sidecar metadata",
		Long:          "Retake matches media files against exporter sidecar files, copies them into a destination tree, and stamps capture time, GPS position, and album keywords onto the copies.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if shouldSkipConfig(cmd) {
				return nil
			}
			return cc.ensureConfig()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Path to configuration file")

	rootCmd.AddCommand(
		newRunCommand(cc),
		newReportCommand(cc),
		newConfigCommand(cc),
		newDepsCommand(cc),
		newVersionCommand(),
	)
	return rootCmd
}
