package meta

import (
	"fmt"
	"strings"
)

// LabeledSpan is a secondary span in a diagnostic, with a note attached to
// it (e.g. "length: 5" pointing at the container, "index: 9" pointing at
// the index expression).
type LabeledSpan struct {
	Span  Span
	Label string
}

// ErrorReport is the renderer-neutral diagnostic shape: a primary span,
// a message, optional labeled secondary spans, and optional notes.
// Rendering to human-readable text is a self-contained concern kept here
// but never required by the core pipeline itself.
type ErrorReport struct {
	Message string
	Primary Span
	Labels  []LabeledSpan
	Notes   []string
}

// Render produces a Rust/Clang-style snippet: a location pointer, a gutter,
// the offending source line, and a caret under the primary span's start
// column. It requires the full source text the span was computed against.
func (r ErrorReport) Render(source string) string {
	var b strings.Builder
	b.WriteString(r.Message)
	b.WriteByte('\n')

	line, col := lineCol(source, r.Primary.Start)
	lines := strings.Split(source, "\n")

	fmt.Fprintf(&b, "  --> %s:%d:%d\n", r.Primary.Source, line, col)
	b.WriteString("   |\n")
	if line >= 1 && line <= len(lines) {
		fmt.Fprintf(&b, "%2d | %s\n", line, lines[line-1])
		b.WriteString("   | ")
		if col > 0 {
			b.WriteString(strings.Repeat(" ", col-1))
		}
		b.WriteByte('^')
		b.WriteByte('\n')
	}

	for _, label := range r.Labels {
		lline, lcol := lineCol(source, label.Span.Start)
		fmt.Fprintf(&b, "   = note: %d:%d: %s\n", lline, lcol, label.Label)
	}
	for _, note := range r.Notes {
		fmt.Fprintf(&b, "   = note: %s\n", note)
	}

	return b.String()
}

// lineCol converts a byte offset into 1-based line/column numbers.
func lineCol(source string, offset int) (line, col int) {
	line = 1
	lineStart := 0
	if offset > len(source) {
		offset = len(source)
	}
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return line, offset - lineStart + 1
}
