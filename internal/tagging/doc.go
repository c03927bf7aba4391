// Package tagging copies media files to their allocated destinations and
// embeds normalized capture metadata via an external field-setting tool.
//
// The pipeline depends on the tool only through the Tagger interface, so
// any binary that can set the documented fields can stand in for exiftool,
// and tests run against a fake.
package tagging
