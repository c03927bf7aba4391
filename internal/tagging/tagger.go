package tagging

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"retake/internal/textutil"
)

// ErrTool classifies a metadata tool invocation that could not run or
// exited non-zero. The copy the tool was pointed at stays on disk for
// inspection; the outcome is a per-file failure, never a batch abort.
var ErrTool = errors.New("tool invocation failed")

// Field is one field=value assignment passed to the metadata tool.
type Field struct {
	Name  string
	Value string
}

// Tagger is the capability the writer depends on: something that can set
// the listed metadata fields on a file and report success or failure.
// Tests substitute a fake; production uses ExifTool.
type Tagger interface {
	SetFields(ctx context.Context, path string, fields []Field) error
}

var commandContext = exec.CommandContext

// ExifTool shells out to an exiftool-compatible binary, one invocation per
// file, under a bounded timeout.
type ExifTool struct {
	binary  string
	timeout time.Duration
}

// NewExifTool builds a Tagger around the given binary. A zero timeout
// means no bound; the run command always configures one.
func NewExifTool(binary string, timeout time.Duration) *ExifTool {
	return &ExifTool{binary: binary, timeout: timeout}
}

// SetFields invokes the tool with -Name=Value arguments for each field.
// Diagnostic output is folded into the returned error.
func (t *ExifTool) SetFields(ctx context.Context, path string, fields []Field) error {
	if len(fields) == 0 {
		return nil
	}

	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	args := make([]string, 0, len(fields)+2)
	args = append(args, "-overwrite_original")
	for _, field := range fields {
		args = append(args, "-"+field.Name+"="+field.Value)
	}
	args = append(args, path)

	cmd := commandContext(ctx, t.binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("%w: %s timed out after %s", ErrTool, t.binary, t.timeout)
		}
		diagnostic := textutil.CleanLabel(string(output))
		if diagnostic == "" {
			return fmt.Errorf("%w: %s: %v", ErrTool, t.binary, err)
		}
		return fmt.Errorf("%w: %s: %v: %s", ErrTool, t.binary, err, diagnostic)
	}
	return nil
}
