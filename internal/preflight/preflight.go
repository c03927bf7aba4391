package preflight

import (
	"retake/internal/config"
	"retake/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the readiness checks for a run: the metadata tool must
// resolve, the source tree must be readable, and the destination must be
// writable with room for a full copy of the source.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckTool(cfg.Tool.Binary))
	results = append(results, CheckSourceAccess("Source tree", cfg.Paths.SourceDir))
	results = append(results, CheckDirectoryAccess("Destination tree", cfg.Paths.DestinationDir))
	results = append(results, CheckFreeSpace(cfg.Paths.SourceDir, cfg.Paths.DestinationDir))
	return results
}

// Passed reports whether every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// CheckTool verifies the metadata-writing binary resolves on PATH.
func CheckTool(binary string) Result {
	const name = "Metadata tool"
	statuses := deps.CheckBinaries(deps.Requirements(binary))
	status := statuses[0]
	if !status.Available {
		return Result{Name: name, Detail: status.Detail}
	}
	return Result{Name: name, Passed: true, Detail: status.Command}
}
