package media

import (
	"path/filepath"
	"strings"
)

// Kind classifies a media file by its container family. The tagging field
// set differs per kind: image formats honor EXIF-style date fields while
// video containers only honor QuickTime-level dates.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

// kindByExtension is the closed set of recognized media extensions.
// Supporting a new extension is a table edit here, not a new conditional.
var kindByExtension = map[string]Kind{
	".jpg":  KindImage,
	".jpeg": KindImage,
	".heic": KindImage,
	".png":  KindImage,
	".mp4":  KindVideo,
	".mov":  KindVideo,
	".m4v":  KindVideo,
}

// dateFieldsByKind maps each kind to the date fields its container honors.
// Downstream importers read QuickTime track/media dates for video and EXIF
// dates for images; writing the wrong set leaves the capture time invisible.
var dateFieldsByKind = map[Kind][]string{
	KindImage: {"DateTimeOriginal", "CreateDate", "ModifyDate"},
	KindVideo: {"CreateDate", "MediaCreateDate", "TrackCreateDate", "ModifyDate"},
}

// DetectKind reports the media kind for a path based on its extension.
// The second return is false for unrecognized extensions.
func DetectKind(path string) (Kind, bool) {
	kind, ok := kindByExtension[strings.ToLower(filepath.Ext(path))]
	return kind, ok
}

// Eligible reports whether the path carries a recognized media extension.
func Eligible(path string) bool {
	_, ok := DetectKind(path)
	return ok
}

// DateFields returns the tool date fields for the kind, in write order.
func (k Kind) DateFields() []string {
	return dateFieldsByKind[k]
}
