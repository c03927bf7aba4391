// Package pipeline orchestrates a reconciliation run: enumerate eligible
// media files, match sidecars, extract metadata, allocate destinations,
// write tagged copies, and collect per-file outcomes. No file's failure
// aborts the batch.
package pipeline
