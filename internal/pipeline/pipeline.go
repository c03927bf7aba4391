package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"retake/internal/destination"
	"retake/internal/logging"
	"retake/internal/media"
	"retake/internal/sidecar"
	"retake/internal/tagging"
)

// Pipeline drives one reconciliation run: it walks the source tree, matches
// each eligible file to its sidecar, allocates a destination, and hands off
// to the writer. Files are processed sequentially in walk order, which
// keeps collision numbering, and therefore the whole report, reproducible.
type Pipeline struct {
	sourceRoot string
	flatten    bool
	matcher    sidecar.Matcher
	allocator  *destination.Allocator
	writer     *tagging.Writer
	logger     *slog.Logger
}

// Options carries per-run pipeline settings.
type Options struct {
	// SourceRoot is the read-only tree to reconcile.
	SourceRoot string
	// Flatten drops source subdirectories and places every copy directly
	// under the destination root, relying on collision numbering to keep
	// same-named files apart. Off by default: the destination mirrors the
	// source-relative structure.
	Flatten bool
}

// New assembles a pipeline. The allocator is owned by the caller and must
// be scoped to this single run.
func New(opts Options, matcher sidecar.Matcher, allocator *destination.Allocator, writer *tagging.Writer, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		sourceRoot: opts.SourceRoot,
		flatten:    opts.Flatten,
		matcher:    matcher,
		allocator:  allocator,
		writer:     writer,
		logger:     logging.WithComponent(logger, "pipeline"),
	}
}

// Run processes every eligible media file under the source root. A single
// file's failure is recorded in its outcome and never aborts the batch;
// only an unreadable source root or context cancellation stops the run.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	summary := newSummary()

	err := filepath.WalkDir(p.sourceRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == p.sourceRoot {
				return fmt.Errorf("walk source root: %w", walkErr)
			}
			summary.add(Outcome{Source: path, Status: StatusFilesystemError, Detail: walkErr.Error()})
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || !media.Eligible(path) {
			return nil
		}

		outcome := p.processFile(ctx, path)
		summary.add(outcome)
		p.logOutcome(outcome)
		return nil
	})
	if err != nil {
		return summary, err
	}

	p.logger.Info("run complete",
		logging.Int("total", summary.Total()),
		logging.Int("success", summary.Counts[StatusSuccess]),
		logging.Int("failed", summary.Counts[StatusFailed]),
	)
	return summary, nil
}

// processFile walks one file through the per-file state machine:
// Discovered → Matched|Unmatched → Extracted|ParseFailed →
// Allocated|CollisionExhausted → Written|WriteFailed.
func (p *Pipeline) processFile(ctx context.Context, path string) Outcome {
	outcome := Outcome{Source: path, Status: StatusSuccess}

	kind, _ := media.DetectKind(path)

	rel, err := filepath.Rel(p.sourceRoot, path)
	if err != nil {
		outcome.Status = StatusFilesystemError
		outcome.Detail = err.Error()
		return outcome
	}
	if p.flatten {
		rel = filepath.Base(rel)
	}

	// Matching and extraction. Both degrade rather than stop the file: the
	// copy is still produced verbatim when no metadata is available.
	var meta sidecar.Metadata
	record, err := p.matcher.Match(path, filepath.Dir(path))
	switch {
	case errors.Is(err, sidecar.ErrMetadataParse):
		outcome.Status = StatusParseError
		outcome.Detail = err.Error()
	case err != nil:
		outcome.Status = StatusFilesystemError
		outcome.Detail = err.Error()
		return outcome
	case record == nil:
		outcome.Status = StatusNoSidecar
		outcome.Detail = "no sidecar record found"
	default:
		meta = sidecar.Extract(record)
	}

	dst, err := p.allocator.Allocate(rel)
	if err != nil {
		outcome.Status = StatusCollisionExhausted
		outcome.Detail = err.Error()
		return outcome
	}

	if err := p.writer.Write(ctx, path, dst, kind, meta); err != nil {
		if errors.Is(err, tagging.ErrTool) {
			// The copy is already in place; keep it for inspection but count
			// the file as failed, not successful.
			outcome.Status = StatusFailed
			outcome.Destination = dst
			outcome.Detail = err.Error()
			return outcome
		}
		outcome.Status = StatusFilesystemError
		outcome.Detail = err.Error()
		if _, statErr := os.Lstat(dst); statErr != nil {
			// Nothing landed on disk, so the reservation can be reused.
			p.allocator.Release(dst)
		} else {
			outcome.Destination = dst
		}
		return outcome
	}

	outcome.Destination = dst
	return outcome
}

func (p *Pipeline) logOutcome(o Outcome) {
	switch o.Status {
	case StatusSuccess:
		p.logger.Info("processed", logging.String("source", o.Source), logging.String("dest", o.Destination))
	case StatusFailed:
		p.logger.Error("tool failed", logging.String("source", o.Source), logging.String("detail", o.Detail))
	default:
		p.logger.Warn("skipped", logging.String("source", o.Source), logging.String("status", string(o.Status)), logging.String("detail", o.Detail))
	}
}
