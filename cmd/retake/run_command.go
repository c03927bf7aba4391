package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"retake/internal/config"
	"retake/internal/destination"
	"retake/internal/logging"
	"retake/internal/pipeline"
	"retake/internal/preflight"
	"retake/internal/report"
	"retake/internal/sidecar"
	"retake/internal/tagging"
)

const lockFileName = ".retake.lock"

func newRunCommand(cc *commandContext) *cobra.Command {
	var (
		flatten    bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "run [source] [destination]",
		Short: "Reconcile a source tree into metadata-corrected copies",
		Long:  "Run walks the source tree, pairs each media file with its sidecar, and writes corrected copies under the destination. Positional arguments override the configured source and destination directories.",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cc.configValue()
			if err := applyRootOverrides(cfg, args); err != nil {
				return err
			}
			return runReconcile(cmd, cfg, flatten, jsonOutput)
		},
	}
	cmd.Flags().BoolVar(&flatten, "flatten", false, "Place every copy directly under the destination root instead of mirroring source subdirectories")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run report as JSON")
	return cmd
}

// applyRootOverrides substitutes positional source/destination arguments
// into the config and revalidates, so CLI-supplied roots get the same
// nesting and presence checks as configured ones.
func applyRootOverrides(cfg *config.Config, args []string) error {
	if len(args) > 0 {
		expanded, err := config.ExpandPath(args[0])
		if err != nil {
			return fmt.Errorf("resolve source path: %w", err)
		}
		cfg.Paths.SourceDir = expanded
	}
	if len(args) > 1 {
		expanded, err := config.ExpandPath(args[1])
		if err != nil {
			return fmt.Errorf("resolve destination path: %w", err)
		}
		cfg.Paths.DestinationDir = expanded
	}
	return cfg.Validate()
}

func runReconcile(cmd *cobra.Command, cfg *config.Config, flatten, jsonOutput bool) error {
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	if results := preflight.RunAll(cfg); !preflight.Passed(results) {
		fmt.Fprintln(cmd.OutOrStdout(), renderPreflight(results))
		return fmt.Errorf("preflight checks failed")
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("initialize logging: %w", err)
	}

	lock := flock.New(filepath.Join(cfg.Paths.DestinationDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire destination lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("destination %s is in use by another run", cfg.Paths.DestinationDir)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(lock.Path())
	}()

	loc, err := cfg.Location()
	if err != nil {
		loc = time.UTC
	}

	store, err := report.Open(cfg.HistoryDBPath())
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer store.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	startedAt := time.Now().UTC()
	if err := store.BeginRun(ctx, runID, cfg.Paths.SourceDir, cfg.Paths.DestinationDir, startedAt); err != nil {
		return fmt.Errorf("record run start: %w", err)
	}

	tagger := tagging.NewExifTool(cfg.Tool.Binary, cfg.ToolTimeout())
	writer := tagging.NewWriter(tagger, loc, cfg.Pipeline.VerifyCopies, logger)
	matcher := sidecar.Matcher{
		Suffix:          cfg.Matching.SidecarSuffix,
		TruncateLengths: cfg.Matching.TruncateLengths,
	}
	allocator := destination.NewAllocator(cfg.Paths.DestinationDir, cfg.Allocation.MaxCollisionAttempts)

	p := pipeline.New(pipeline.Options{
		SourceRoot: cfg.Paths.SourceDir,
		Flatten:    flatten,
	}, matcher, allocator, writer, logger)

	summary, runErr := p.Run(ctx)
	if summary != nil {
		if err := store.FinishRun(cmd.Context(), runID, time.Now().UTC(), summary); err != nil {
			logger.Warn("failed to record run outcome",
				logging.String("run_id", runID),
				logging.Error(err))
		}
	}
	if runErr != nil {
		return runErr
	}

	if jsonOutput {
		return writeJSON(cmd, runReport{
			RunID:       runID,
			Source:      cfg.Paths.SourceDir,
			Destination: cfg.Paths.DestinationDir,
			StartedAt:   startedAt,
			Outcomes:    outcomeViews(summary.Outcomes),
			Counts:      statusCounts(summary),
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Run %s\n%s\n", runID, renderSummary(summary))
	if !summary.Clean() {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", renderOutcomes(problemOutcomes(summary)))
	}
	return nil
}

type runReport struct {
	RunID       string                  `json:"run_id"`
	Source      string                  `json:"source"`
	Destination string                  `json:"destination"`
	StartedAt   time.Time               `json:"started_at"`
	Outcomes    []outcomeView           `json:"outcomes"`
	Counts      map[pipeline.Status]int `json:"counts"`
}

func statusCounts(summary *pipeline.Summary) map[pipeline.Status]int {
	counts := make(map[pipeline.Status]int, len(summary.Counts))
	for status, n := range summary.Counts {
		counts[status] = n
	}
	return counts
}

// problemOutcomes filters the summary down to files that need attention.
func problemOutcomes(summary *pipeline.Summary) []pipeline.Outcome {
	var problems []pipeline.Outcome
	for _, outcome := range summary.Outcomes {
		if outcome.Status != pipeline.StatusSuccess {
			problems = append(problems, outcome)
		}
	}
	return problems
}
