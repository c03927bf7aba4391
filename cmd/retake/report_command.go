package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"retake/internal/pipeline"
	"retake/internal/report"
)

func newReportCommand(cc *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "List recorded reconciliation runs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := report.Open(cc.configValue().HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return err
			}
			if jsonOutput {
				return writeJSON(cmd, runViews(runs))
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRuns(runs))
			return nil
		},
	}
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit output as JSON")
	cmd.AddCommand(newReportShowCommand(cc, &jsonOutput))
	return cmd
}

func newReportShowCommand(cc *commandContext, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "show [run-id]",
		Short: "Show per-file outcomes for a run (defaults to the most recent)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := report.Open(cc.configValue().HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runID := ""
			if len(args) > 0 {
				runID = args[0]
			} else {
				latest, ok, err := store.LatestRunID(cmd.Context())
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("no runs recorded yet")
				}
				runID = latest
			}

			outcomes, err := store.Outcomes(cmd.Context(), runID)
			if err != nil {
				return err
			}
			if *jsonOutput {
				return writeJSON(cmd, outcomeViews(outcomes))
			}
			if len(outcomes) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No outcomes recorded for run %s.\n", runID)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n%s\n", runID, renderOutcomes(outcomes))
			return nil
		},
	}
}

type runView struct {
	ID          string                  `json:"id"`
	Source      string                  `json:"source"`
	Destination string                  `json:"destination"`
	StartedAt   time.Time               `json:"started_at"`
	FinishedAt  *time.Time              `json:"finished_at,omitempty"`
	Counts      map[pipeline.Status]int `json:"counts"`
	Total       int                     `json:"total"`
}

func runViews(runs []report.Run) []runView {
	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		view := runView{
			ID:          run.ID,
			Source:      run.SourceRoot,
			Destination: run.DestinationRoot,
			StartedAt:   run.StartedAt,
			Counts:      run.Counts,
			Total:       run.Total(),
		}
		if !run.FinishedAt.IsZero() {
			finished := run.FinishedAt
			view.FinishedAt = &finished
		}
		views = append(views, view)
	}
	return views
}

type outcomeView struct {
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	Status      string `json:"status"`
	Detail      string `json:"detail,omitempty"`
}

func outcomeViews(outcomes []pipeline.Outcome) []outcomeView {
	views := make([]outcomeView, 0, len(outcomes))
	for _, outcome := range outcomes {
		views = append(views, outcomeView{
			Source:      outcome.Source,
			Destination: outcome.Destination,
			Status:      string(outcome.Status),
			Detail:      outcome.Detail,
		})
	}
	return views
}

func renderRuns(runs []report.Run) string {
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		finished := "in progress"
		if !run.FinishedAt.IsZero() {
			finished = run.FinishedAt.Local().Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			finished,
			fmt.Sprintf("%d", run.Total()),
			fmt.Sprintf("%d", run.Counts[pipeline.StatusSuccess]),
			fmt.Sprintf("%d", run.Total()-run.Counts[pipeline.StatusSuccess]),
		})
	}
	return renderTable(
		[]string{"Run", "Started", "Finished", "Files", "Success", "Other"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight},
	)
}
