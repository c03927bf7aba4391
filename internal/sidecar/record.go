package sidecar

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrMetadataParse classifies a sidecar that exists but cannot be read or
// decoded. It is reported per file and never aborts a run.
var ErrMetadataParse = errors.New("metadata parse error")

// Record is a parsed sidecar document paired with the path it was read
// from. Records are transient: produced by a Matcher, consumed by Extract,
// discarded afterwards.
type Record struct {
	Path string
	doc  document
}

// document mirrors the subset of the export sidecar schema the pipeline
// cares about. Extra fields in real exports are ignored by the decoder.
type document struct {
	Title          string     `json:"title"`
	PhotoTakenTime epochField `json:"photoTakenTime"`
	GeoData        geoField   `json:"geoData"`
	AlbumTitles    []string   `json:"albumTitles"`
}

type epochField struct {
	Timestamp flexibleString `json:"timestamp"`
}

type geoField struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// flexibleString absorbs both string and numeric encodings of the epoch
// timestamp. Exports are inconsistent on this, and a bad value must degrade
// to "absent" rather than fail the whole document.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*f = flexibleString(n.String())
		return nil
	}
	*f = ""
	return nil
}

// Coordinate is a GPS position in decimal degrees.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Metadata is the normalized field set extracted from a sidecar record.
// Every field has a valid absent state: a zero CapturedAt, a nil GPS, an
// empty Album. Malformed inputs are coerced to absent, never carried.
type Metadata struct {
	CapturedAt time.Time
	GPS        *Coordinate
	Album      string
}

// HasCaptureTime reports whether a capture timestamp was extracted.
func (m Metadata) HasCaptureTime() bool {
	return !m.CapturedAt.IsZero()
}

// Empty reports whether nothing at all was extracted; the tagging step is
// skipped entirely for such files.
func (m Metadata) Empty() bool {
	return !m.HasCaptureTime() && m.GPS == nil && m.Album == ""
}
