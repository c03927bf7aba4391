// Package media classifies files into media kinds and owns the per-kind
// metadata field tables used by the tagging layer.
package media
