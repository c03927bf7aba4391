package tagging

import (
	"strconv"
	"time"

	"retake/internal/media"
	"retake/internal/sidecar"
)

// toolDateFormat is the calendar representation exiftool-compatible tools
// expect for date fields.
const toolDateFormat = "2006:01:02 15:04:05"

// BuildFields maps normalized metadata onto the tool field set for the
// given media kind. Absent metadata contributes nothing: an absent capture
// time produces no date fields at all rather than a sentinel value.
func BuildFields(kind media.Kind, meta sidecar.Metadata, loc *time.Location) []Field {
	if loc == nil {
		loc = time.UTC
	}

	var fields []Field

	if meta.HasCaptureTime() {
		date := meta.CapturedAt.In(loc).Format(toolDateFormat)
		for _, name := range kind.DateFields() {
			fields = append(fields, Field{Name: name, Value: date})
		}
	}

	if meta.GPS != nil {
		latRef, lonRef := "N", "E"
		if meta.GPS.Lat < 0 {
			latRef = "S"
		}
		if meta.GPS.Lon < 0 {
			lonRef = "W"
		}
		fields = append(fields,
			Field{Name: "GPSLatitude", Value: formatCoord(meta.GPS.Lat)},
			Field{Name: "GPSLongitude", Value: formatCoord(meta.GPS.Lon)},
			Field{Name: "GPSLatitudeRef", Value: latRef},
			Field{Name: "GPSLongitudeRef", Value: lonRef},
		)
	}

	if meta.Album != "" {
		fields = append(fields, Field{Name: "Keywords", Value: meta.Album})
	}

	return fields
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
