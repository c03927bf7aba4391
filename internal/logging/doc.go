// Package logging wires log/slog with the console and JSON handlers used
// across Retake, plus small attr helpers so call sites stay terse.
package logging
