package sidecar

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// DefaultSuffix is the conventional sidecar filename suffix.
const DefaultSuffix = ".json"

// DefaultTruncateLengths are the degraded-match truncation lengths, longest
// first. Export tools truncate long media filenames when naming sidecars;
// the exact cut points vary between export versions, so these are
// overridable through configuration.
var DefaultTruncateLengths = []int{48, 47, 46}

// duplicateMarker matches the "(n)" duplicate suffix exports insert before
// the extension: IMG_0001(1).jpg pairs with IMG_0001.jpg(1).json.
var duplicateMarker = regexp.MustCompile(`^(.*)\((\d+)\)(\.[^.]+)$`)

// Matcher locates the sidecar record for a media file. The zero value uses
// the default suffix and truncation lengths.
type Matcher struct {
	Suffix          string
	TruncateLengths []int
}

// Match probes sidecarDir for the record describing mediaPath. A nil record
// with a nil error means no sidecar exists, which is a normal outcome, not
// a failure. A non-nil error means a sidecar file was found but could not
// be read or decoded (classified ErrMetadataParse).
func (m Matcher) Match(mediaPath, sidecarDir string) (*Record, error) {
	suffix := m.Suffix
	if suffix == "" {
		suffix = DefaultSuffix
	}
	lengths := m.TruncateLengths
	if lengths == nil {
		lengths = DefaultTruncateLengths
	}

	base := filepath.Base(mediaPath)

	candidates := make([]string, 0, len(lengths)+2)
	candidates = append(candidates, base+suffix)
	for _, n := range lengths {
		if truncated, ok := truncate(base, n); ok {
			candidates = append(candidates, truncated+suffix)
		}
	}
	if sub := duplicateMarker.FindStringSubmatch(base); sub != nil {
		candidates = append(candidates, sub[1]+sub[3]+"("+sub[2]+")"+suffix)
	}

	for _, name := range candidates {
		path := filepath.Join(sidecarDir, name)
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		return load(path)
	}
	return nil, nil
}

func load(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", ErrMetadataParse, filepath.Base(path), err)
	}
	rec := &Record{Path: path}
	if err := json.Unmarshal(data, &rec.doc); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrMetadataParse, filepath.Base(path), err)
	}
	return rec, nil
}

// truncate cuts name to n runes. Reports false when the name is already
// short enough, in which case the exact-match candidate covers it.
func truncate(name string, n int) (string, bool) {
	if n <= 0 {
		return "", false
	}
	runes := []rune(name)
	if len(runes) <= n {
		return "", false
	}
	return string(runes[:n]), true
}
