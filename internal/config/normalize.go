package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeTool()
	c.normalizePipeline()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.SourceDir) != "" {
		if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
			return fmt.Errorf("paths.source_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.DestinationDir) != "" {
		if c.Paths.DestinationDir, err = expandPath(c.Paths.DestinationDir); err != nil {
			return fmt.Errorf("paths.destination_dir: %w", err)
		}
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.SidecarSuffix = strings.TrimSpace(c.Matching.SidecarSuffix)
	if c.Matching.SidecarSuffix == "" {
		c.Matching.SidecarSuffix = defaultSidecarSuffix
	}
	if !strings.HasPrefix(c.Matching.SidecarSuffix, ".") {
		c.Matching.SidecarSuffix = "." + c.Matching.SidecarSuffix
	}
	lengths := c.Matching.TruncateLengths[:0]
	for _, n := range c.Matching.TruncateLengths {
		if n > 0 {
			lengths = append(lengths, n)
		}
	}
	c.Matching.TruncateLengths = lengths
	if len(c.Matching.TruncateLengths) == 0 {
		c.Matching.TruncateLengths = defaultTruncateLengths()
	}
}

func (c *Config) normalizeTool() {
	c.Tool.Binary = strings.TrimSpace(c.Tool.Binary)
	if c.Tool.Binary == "" {
		c.Tool.Binary = defaultToolBinary
	}
	if c.Tool.TimeoutSeconds <= 0 {
		c.Tool.TimeoutSeconds = defaultToolTimeoutSeconds
	}
}

func (c *Config) normalizePipeline() {
	c.Pipeline.Timezone = strings.TrimSpace(c.Pipeline.Timezone)
	if c.Pipeline.Timezone == "" {
		c.Pipeline.Timezone = defaultTimezone
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
