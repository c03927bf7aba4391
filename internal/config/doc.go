// Package config loads, normalizes, and validates the TOML configuration
// that drives a Retake run.
package config
