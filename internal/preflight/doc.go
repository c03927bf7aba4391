// Package preflight provides readiness checks run before a reconciliation
// starts: tool availability, tree access, and destination free space. A
// failed check stops the run before any copy is made, not halfway through.
package preflight
