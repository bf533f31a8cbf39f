// Package diag defines the diagnostic model used by the `check`
// subcommand's multi-file compile checker.
//
// Diagnostic is the central record: a Severity, a compact numeric Code
// (codes.go), a human-readable Message, a primary source.Span, and
// optional Notes/Fixes for richer context. Producers collect
// Diagnostics into a Bag, which supports capping, sorting, and
// deduplication, and can be rendered with FormatShortDiagnostics or
// FormatGoldenDiagnostics (golden.go).
//
// Lumen's own single-file compiler does not use this package: its
// panic-mode errors (spec §7) are plain vm.CompileError values, since a
// compile has no byte-range spans to report, only line numbers. diag
// exists for internal/driver's directory-wide checker, which does have
// multiple files and benefits from sortable, dedupable diagnostics.
package diag
