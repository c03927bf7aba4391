// Package destination allocates unique output paths under the destination
// root. An Allocator is scoped to a single run and owned by the pipeline;
// it is never shared process-wide.
package destination
