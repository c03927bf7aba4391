package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, _, exists, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Fatal("missing config reported as existing")
	}
	if cfg.Tool.Binary != "exiftool" {
		t.Fatalf("Tool.Binary = %q, want exiftool", cfg.Tool.Binary)
	}
	if cfg.Allocation.MaxCollisionAttempts != 1000 {
		t.Fatalf("MaxCollisionAttempts = %d", cfg.Allocation.MaxCollisionAttempts)
	}
	if got := cfg.Matching.TruncateLengths; len(got) != 3 || got[0] != 48 {
		t.Fatalf("TruncateLengths = %v", got)
	}
	if cfg.Pipeline.Timezone != "UTC" || !cfg.Pipeline.VerifyCopies {
		t.Fatalf("pipeline defaults = %+v", cfg.Pipeline)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[matching]
sidecar_suffix = "meta.json"
truncate_lengths = [51]

[tool]
binary = "exiv2"
timeout_seconds = 30

[pipeline]
timezone = "Europe/London"
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Fatal("config file not detected")
	}
	if cfg.Matching.SidecarSuffix != ".meta.json" {
		t.Fatalf("SidecarSuffix = %q, want leading dot added", cfg.Matching.SidecarSuffix)
	}
	if len(cfg.Matching.TruncateLengths) != 1 || cfg.Matching.TruncateLengths[0] != 51 {
		t.Fatalf("TruncateLengths = %v", cfg.Matching.TruncateLengths)
	}
	if cfg.Tool.Binary != "exiv2" || cfg.Tool.TimeoutSeconds != 30 {
		t.Fatalf("tool = %+v", cfg.Tool)
	}
	if loc, err := cfg.Location(); err != nil || loc.String() != "Europe/London" {
		t.Fatalf("Location = %v, %v", loc, err)
	}
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	path := writeConfig(t, `
[pipeline]
timezone = "Mars/Olympus_Mons"
`)
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "pipeline.timezone") {
		t.Fatalf("expected timezone validation error, got %v", err)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := writeConfig(t, `
[logging]
format = "xml"
`)
	_, _, _, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging validation error, got %v", err)
	}
}

func TestValidateRejectsNestedRoots(t *testing.T) {
	base := t.TempDir()

	cfg := Default()
	cfg.Paths.SourceDir = filepath.Join(base, "takeout")
	cfg.Paths.DestinationDir = filepath.Join(base, "takeout", "fixed")
	if err := cfg.Validate(); err == nil {
		t.Fatal("destination inside source must fail validation")
	}

	cfg = Default()
	cfg.Paths.SourceDir = filepath.Join(base, "x", "takeout")
	cfg.Paths.DestinationDir = filepath.Join(base, "x")
	if err := cfg.Validate(); err == nil {
		t.Fatal("source inside destination must fail validation")
	}

	cfg = Default()
	cfg.Paths.SourceDir = filepath.Join(base, "takeout")
	cfg.Paths.DestinationDir = cfg.Paths.SourceDir
	if err := cfg.Validate(); err == nil {
		t.Fatal("identical roots must fail validation")
	}

	cfg = Default()
	cfg.Paths.SourceDir = filepath.Join(base, "takeout")
	cfg.Paths.DestinationDir = filepath.Join(base, "fixed")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sibling roots must validate: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(target); err != nil {
		t.Fatal(err)
	}
	cfg, _, exists, err := Load(target)
	if err != nil {
		t.Fatalf("sample config did not load: %v", err)
	}
	if !exists {
		t.Fatal("sample config not detected")
	}
	if cfg.Tool.Binary != "exiftool" {
		t.Fatalf("sample Tool.Binary = %q", cfg.Tool.Binary)
	}
}
