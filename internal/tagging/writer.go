package tagging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"retake/internal/fileutil"
	"retake/internal/logging"
	"retake/internal/media"
	"retake/internal/sidecar"
)

// Writer commits normalized metadata into a fresh copy of a media file.
// It creates exactly one file under the destination root per call and
// never touches the source tree.
type Writer struct {
	tagger Tagger
	loc    *time.Location
	verify bool
	logger *slog.Logger
}

// NewWriter builds a Writer. loc selects the zone capture dates are
// rendered in; nil means UTC.
func NewWriter(tagger Tagger, loc *time.Location, verify bool, logger *slog.Logger) *Writer {
	if loc == nil {
		loc = time.UTC
	}
	return &Writer{
		tagger: tagger,
		loc:    loc,
		verify: verify,
		logger: logging.WithComponent(logger, "writer"),
	}
}

// Write copies src to dst (which the allocator guarantees is unclaimed)
// and stamps the metadata fields for the media kind. A copy failure is a
// filesystem error and leaves nothing behind; a tool failure (classified
// ErrTool) leaves the copy in place so the user can inspect it.
func (w *Writer) Write(ctx context.Context, src, dst string, kind media.Kind, meta sidecar.Metadata) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	copyFn := fileutil.CopyExclusive
	if w.verify {
		copyFn = fileutil.CopyExclusiveVerified
	}
	if err := copyFn(src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", filepath.Base(src), err)
	}

	fields := BuildFields(kind, meta, w.loc)
	if len(fields) == 0 {
		w.logger.Debug("no metadata to write", logging.String("dest", dst))
		return nil
	}

	if err := w.tagger.SetFields(ctx, dst, fields); err != nil {
		return err
	}

	if meta.HasCaptureTime() {
		// Mirror the capture time onto the filesystem timestamps so importers
		// that fall back to mtime agree with the embedded fields.
		if err := os.Chtimes(dst, meta.CapturedAt, meta.CapturedAt); err != nil {
			w.logger.Warn("set file times", logging.String("dest", dst), logging.Error(err))
		}
	}

	return nil
}
