package tagging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"retake/internal/media"
	"retake/internal/sidecar"
)

type fakeTagger struct {
	calls [][]Field
	paths []string
	err   error
}

func (f *fakeTagger) SetFields(_ context.Context, path string, fields []Field) error {
	f.paths = append(f.paths, path)
	f.calls = append(f.calls, fields)
	return f.err
}

func TestWriterCopiesAndTags(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "photo.jpg")
	dst := filepath.Join(dir, "dst", "photo.jpg")
	if err := os.MkdirAll(filepath.Dir(src), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	captured := time.Unix(1699999999, 0).UTC()
	fake := &fakeTagger{}
	w := NewWriter(fake, time.UTC, true, nil)

	meta := sidecar.Metadata{CapturedAt: captured}
	if err := w.Write(context.Background(), src, dst, media.KindImage, meta); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "jpeg" {
		t.Fatalf("copy content = %q", got)
	}
	if len(fake.paths) != 1 || fake.paths[0] != dst {
		t.Fatalf("tagger invoked with %v, want %s", fake.paths, dst)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if !info.ModTime().Equal(captured) {
		t.Fatalf("mtime = %v, want capture time %v", info.ModTime(), captured)
	}
}

func TestWriterSkipsToolForEmptyMetadata(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "out", "photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeTagger{}
	w := NewWriter(fake, time.UTC, false, nil)
	if err := w.Write(context.Background(), src, dst, media.KindImage, sidecar.Metadata{}); err != nil {
		t.Fatal(err)
	}
	if len(fake.calls) != 0 {
		t.Fatalf("tool invoked for empty metadata: %v", fake.calls)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatalf("verbatim copy missing: %v", err)
	}
}

func TestWriterKeepsCopyOnToolFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "out", "photo.jpg")
	if err := os.WriteFile(src, []byte("jpeg"), 0o644); err != nil {
		t.Fatal(err)
	}

	fake := &fakeTagger{err: errors.Join(ErrTool, errors.New("exit status 1"))}
	w := NewWriter(fake, time.UTC, false, nil)
	err := w.Write(context.Background(), src, dst, media.KindImage, sidecar.Metadata{CapturedAt: time.Unix(1699999999, 0).UTC()})
	if !errors.Is(err, ErrTool) {
		t.Fatalf("expected ErrTool, got %v", err)
	}
	if _, statErr := os.Stat(dst); statErr != nil {
		t.Fatalf("copy must survive tool failure: %v", statErr)
	}
}

func TestWriterNeverTouchesSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpg")
	dst := filepath.Join(dir, "out", "photo.jpg")
	if err := os.WriteFile(src, []byte("untouched"), 0o644); err != nil {
		t.Fatal(err)
	}
	before, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}

	w := NewWriter(&fakeTagger{}, time.UTC, true, nil)
	meta := sidecar.Metadata{CapturedAt: time.Unix(1699999999, 0).UTC()}
	if err := w.Write(context.Background(), src, dst, media.KindImage, meta); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(src)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "untouched" {
		t.Fatalf("source content changed: %q", content)
	}
	after, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Fatal("source mtime changed")
	}
}
