package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"retake/internal/deps"
)

func newDepsCommand(cc *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check availability of required external binaries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses := deps.CheckBinaries(deps.Requirements(cc.configValue().Tool.Binary))
			if jsonOutput {
				return writeJSON(cmd, statuses)
			}

			rows := make([][]string, 0, len(statuses))
			allAvailable := true
			for _, status := range statuses {
				state := "available"
				if !status.Available {
					state = "missing"
					if !status.Optional {
						allAvailable = false
					}
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "State", "Detail"},
				rows,
				nil,
			))
			if !allAvailable {
				return fmt.Errorf("required binaries are missing")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit output as JSON")
	return cmd
}
