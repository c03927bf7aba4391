package media

import "testing"

func TestDetectKind(t *testing.T) {
	cases := []struct {
		path string
		kind Kind
		ok   bool
	}{
		{"IMG_0001.jpg", KindImage, true},
		{"photos/IMG_0001.JPG", KindImage, true},
		{"clip.HEIC", KindImage, true},
		{"screen.png", KindImage, true},
		{"movie.mp4", KindVideo, true},
		{"movie.MOV", KindVideo, true},
		{"movie.m4v", KindVideo, true},
		{"notes.txt", "", false},
		{"archive.jpg.json", "", false},
		{"noext", "", false},
	}
	for _, tc := range cases {
		kind, ok := DetectKind(tc.path)
		if ok != tc.ok || kind != tc.kind {
			t.Errorf("DetectKind(%q) = (%q, %v), want (%q, %v)", tc.path, kind, ok, tc.kind, tc.ok)
		}
	}
}

func TestDateFieldsPerKind(t *testing.T) {
	image := KindImage.DateFields()
	if len(image) == 0 || image[0] != "DateTimeOriginal" {
		t.Fatalf("image date fields = %v, want DateTimeOriginal first", image)
	}
	video := KindVideo.DateFields()
	for _, field := range video {
		if field == "DateTimeOriginal" {
			t.Fatalf("video date fields %v must not include DateTimeOriginal", video)
		}
	}
	want := map[string]bool{"CreateDate": false, "MediaCreateDate": false, "TrackCreateDate": false, "ModifyDate": false}
	for _, field := range video {
		if _, ok := want[field]; ok {
			want[field] = true
		}
	}
	for field, seen := range want {
		if !seen {
			t.Errorf("video date fields missing %s", field)
		}
	}
}
