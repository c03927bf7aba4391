package preflight

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckSourceAccessOK(t *testing.T) {
	result := CheckSourceAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
}

func TestCheckToolMissing(t *testing.T) {
	result := CheckTool("retake-test-no-such-binary")
	if result.Passed {
		t.Fatal("expected failure for missing binary")
	}
}

func TestCheckFreeSpace(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	if err := os.WriteFile(filepath.Join(src, "a.jpg"), []byte("tiny"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckFreeSpace(src, dst)
	if !result.Passed {
		t.Fatalf("tiny tree must fit: %s", result.Detail)
	}
}

func TestPassed(t *testing.T) {
	if !Passed([]Result{{Passed: true}, {Passed: true}}) {
		t.Fatal("all-pass slice reported failed")
	}
	if Passed([]Result{{Passed: true}, {Passed: false}}) {
		t.Fatal("failing result not detected")
	}
}
