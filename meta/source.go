// Package meta holds the cross-cutting identifiers every token, AST node,
// value and diagnostic in Rimu carries: source ids and spans.
package meta

// SourceID names the origin of a piece of source text (a file path, "<repl>",
// "<string>", and so on). It never affects evaluation, only diagnostics.
type SourceID string
