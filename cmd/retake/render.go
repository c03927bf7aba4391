package main

import (
	"strconv"

	"retake/internal/pipeline"
	"retake/internal/preflight"
)

func renderSummary(summary *pipeline.Summary) string {
	rows := make([][]string, 0, len(pipeline.AllStatuses)+1)
	for _, status := range pipeline.AllStatuses {
		rows = append(rows, []string{string(status), strconv.Itoa(summary.Counts[status])})
	}
	rows = append(rows, []string{"total", strconv.Itoa(summary.Total())})
	return renderTable(
		[]string{"Status", "Files"},
		rows,
		[]columnAlignment{alignLeft, alignRight},
	)
}

func renderOutcomes(outcomes []pipeline.Outcome) string {
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		rows = append(rows, []string{
			outcome.Source,
			string(outcome.Status),
			outcome.Destination,
			outcome.Detail,
		})
	}
	return renderTable(
		[]string{"Source", "Status", "Destination", "Detail"},
		rows,
		nil,
	)
}

func renderPreflight(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		state := "ok"
		if !result.Passed {
			state = "failed"
		}
		rows = append(rows, []string{result.Name, state, result.Detail})
	}
	return renderTable(
		[]string{"Check", "State", "Detail"},
		rows,
		nil,
	)
}
