package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Validate checks cross-field constraints after normalization.
func (c *Config) Validate() error {
	var problems []error

	if c.Allocation.MaxCollisionAttempts <= 0 {
		problems = append(problems, fmt.Errorf("allocation.max_collision_attempts: must be positive, got %d", c.Allocation.MaxCollisionAttempts))
	}

	if _, err := time.LoadLocation(c.Pipeline.Timezone); err != nil {
		problems = append(problems, fmt.Errorf("pipeline.timezone: unknown zone %q", c.Pipeline.Timezone))
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		problems = append(problems, fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format))
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level))
	}

	if err := c.validateRoots(); err != nil {
		problems = append(problems, err)
	}

	return errors.Join(problems...)
}

// validateRoots rejects layouts that would let a run write into its own
// input. The source tree must stay byte-identical across a run.
func (c *Config) validateRoots() error {
	src := strings.TrimSpace(c.Paths.SourceDir)
	dst := strings.TrimSpace(c.Paths.DestinationDir)
	if src == "" || dst == "" {
		return nil
	}
	if src == dst {
		return errors.New("paths: source_dir and destination_dir must differ")
	}
	if within(src, dst) {
		return fmt.Errorf("paths: destination_dir %q must not sit inside source_dir %q", dst, src)
	}
	// The reverse layout can also leak writes into the source tree when the
	// source contains a subdirectory named like its own path tail.
	if within(dst, src) {
		return fmt.Errorf("paths: source_dir %q must not sit inside destination_dir %q", src, dst)
	}
	return nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
