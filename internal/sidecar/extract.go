package sidecar

import (
	"strconv"
	"time"

	"retake/internal/textutil"
)

// futureSlack is how far past "now" a capture timestamp may sit before it
// is considered malformed. Camera clocks drift; a day covers that without
// accepting garbage epochs.
const futureSlack = 24 * time.Hour

// Extract normalizes a matched record into Metadata. Field-level problems
// (non-numeric timestamps, out-of-range coordinates, the (0,0) GPS
// sentinel) coerce the field to absent; Extract itself never fails.
func Extract(rec *Record) Metadata {
	return extractAt(rec, time.Now())
}

func extractAt(rec *Record, now time.Time) Metadata {
	var meta Metadata
	if rec == nil {
		return meta
	}

	if ts := parseEpoch(string(rec.doc.PhotoTakenTime.Timestamp), now); !ts.IsZero() {
		meta.CapturedAt = ts
	}

	if gps := normalizeGPS(rec.doc.GeoData); gps != nil {
		meta.GPS = gps
	}

	meta.Album = textutil.FirstNonEmpty(rec.doc.AlbumTitles)

	return meta
}

// parseEpoch converts an epoch-seconds value to a UTC time. Values before
// 1970 or beyond now+futureSlack are treated as absent.
func parseEpoch(raw string, now time.Time) time.Time {
	if raw == "" {
		return time.Time{}
	}
	epoch, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || epoch < 0 {
		return time.Time{}
	}
	ts := time.Unix(epoch, 0).UTC()
	if ts.After(now.Add(futureSlack)) {
		return time.Time{}
	}
	return ts
}

// normalizeGPS validates a coordinate pair. (0,0) is the exporter's "not
// recorded" sentinel and maps to absent, as do out-of-range values.
func normalizeGPS(geo geoField) *Coordinate {
	if geo.Latitude == 0 && geo.Longitude == 0 {
		return nil
	}
	if geo.Latitude < -90 || geo.Latitude > 90 {
		return nil
	}
	if geo.Longitude < -180 || geo.Longitude > 180 {
		return nil
	}
	return &Coordinate{Lat: geo.Latitude, Lon: geo.Longitude}
}
