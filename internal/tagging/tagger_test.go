package tagging

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func interceptCommand(t *testing.T, mode string, captured *[]string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append([]string(nil), args...)
		}
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "RETAKE_HELPER_MODE="+mode)
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestExifToolArgs(t *testing.T) {
	var args []string
	interceptCommand(t, "success", &args)

	tool := NewExifTool("exiftool", time.Minute)
	fields := []Field{
		{Name: "DateTimeOriginal", Value: "2023:11:14 22:13:19"},
		{Name: "Keywords", Value: "Summer Trip"},
	}
	if err := tool.SetFields(context.Background(), "/dest/photo.jpg", fields); err != nil {
		t.Fatal(err)
	}

	want := []string{
		"-overwrite_original",
		"-DateTimeOriginal=2023:11:14 22:13:19",
		"-Keywords=Summer Trip",
		"/dest/photo.jpg",
	}
	if len(args) != len(want) {
		t.Fatalf("args = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Fatalf("args[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestExifToolFailureCapturesDiagnostics(t *testing.T) {
	interceptCommand(t, "failure", nil)

	tool := NewExifTool("exiftool", time.Minute)
	err := tool.SetFields(context.Background(), "/dest/photo.jpg", []Field{{Name: "CreateDate", Value: "x"}})
	if !errors.Is(err, ErrTool) {
		t.Fatalf("expected ErrTool, got %v", err)
	}
	if !strings.Contains(err.Error(), "unrecognized field") {
		t.Fatalf("diagnostic text missing from error: %v", err)
	}
}

func TestExifToolMissingBinary(t *testing.T) {
	tool := NewExifTool("retake-test-no-such-binary", time.Minute)
	err := tool.SetFields(context.Background(), "/dest/photo.jpg", []Field{{Name: "CreateDate", Value: "x"}})
	if !errors.Is(err, ErrTool) {
		t.Fatalf("expected ErrTool for missing binary, got %v", err)
	}
}

func TestExifToolTimeout(t *testing.T) {
	interceptCommand(t, "hang", nil)

	tool := NewExifTool("exiftool", 50*time.Millisecond)
	start := time.Now()
	err := tool.SetFields(context.Background(), "/dest/photo.jpg", []Field{{Name: "CreateDate", Value: "x"}})
	if !errors.Is(err, ErrTool) {
		t.Fatalf("expected ErrTool on timeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("invocation was not bounded: took %s", elapsed)
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Fatalf("timeout not reflected in error: %v", err)
	}
}

func TestExifToolSkipsEmptyFieldSet(t *testing.T) {
	tool := NewExifTool("retake-test-no-such-binary", time.Minute)
	if err := tool.SetFields(context.Background(), "/dest/photo.jpg", nil); err != nil {
		t.Fatalf("empty field set must be a no-op, got %v", err)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("RETAKE_HELPER_MODE") {
	case "success":
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "Warning: unrecognized field")
		os.Exit(1)
	case "hang":
		time.Sleep(30 * time.Second)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}
