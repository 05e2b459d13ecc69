package meta

import "fmt"

// Span is a byte-offset range into a single source. Equality of spans is
// never part of value or AST equality; spans exist purely for
// diagnostics.
type Span struct {
	Source SourceID
	Start  int
	End    int
}

// NewSpan builds a Span over [start, end) of source.
func NewSpan(source SourceID, start, end int) Span {
	return Span{Source: source, Start: start, End: end}
}

// Union returns the smallest span covering both a and b. Callers are
// expected to pass spans from the same source; the union does not check.
func (s Span) Union(other Span) Span {
	start := s.Start
	if other.Start < start {
		start = other.Start
	}
	end := s.End
	if other.End > end {
		end = other.End
	}
	return Span{Source: s.Source, Start: start, End: end}
}

// Len is the number of bytes spanned.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty reports whether the span has zero length. A zero-length span may
// still be a meaningful location to point a diagnostic at (e.g. the point
// one past the end of input).
func (s Span) IsEmpty() bool {
	return s.Len() == 0
}

func (s Span) String() string {
	return fmt.Sprintf("%s:%d..%d", s.Source, s.Start, s.End)
}
