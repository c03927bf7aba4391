// Package textutil provides small text normalization helpers shared by the
// sidecar extractor and the report renderers.
package textutil
