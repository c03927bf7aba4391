// Package report persists run history in SQLite and renders run summaries.
// The stored outcomes are the externally observable result of a run; the
// same inputs always classify the same way, so a stored report can stand
// in for re-running.
package report
