// Package sidecar matches media files to their exported JSON sidecar
// records and extracts normalized capture metadata from them.
//
// Matching tolerates the filename conventions of real export tools:
// truncated long names and "(n)" duplicate markers. Extraction coerces
// malformed field values to absent rather than failing a file; only an
// unreadable or undecodable document is an error, and even that is local
// to the one file.
package sidecar
