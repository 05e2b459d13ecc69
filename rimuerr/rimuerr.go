// Package rimuerr centralizes Rimu's compile and evaluation error
// taxonomy, plus conversion to meta.ErrorReport for terminal-friendly
// rendering. Lexical errors are defined in package lexer. Errors are
// concrete structs implementing error, matched by callers with errors.As.
package rimuerr

import (
	"fmt"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rimu-lang/rimu/meta"
)

// CompileError is raised by the expression or block compiler.
type CompileError struct {
	Span     meta.Span
	Found    string
	Expected []string
	Op       string // field errors: the operator name
	Field    string // the unexpected or missing field
	Missing  bool   // field errors: true when Field is required but absent
	Name     string // UnknownBlockOperator: the unrecognized key
}

func (e *CompileError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("unknown block operator %q", e.Name)
	case e.Field != "" && e.Missing:
		return fmt.Sprintf("%s: missing field %q", e.Op, e.Field)
	case e.Field != "":
		return fmt.Sprintf("%s: unexpected field %q", e.Op, e.Field)
	default:
		return fmt.Sprintf("unexpected token %q", e.Found)
	}
}

// UnexpectedToken builds an "unexpected token" compile error.
func UnexpectedToken(span meta.Span, found string, expected []string) *CompileError {
	return &CompileError{Span: span, Found: found, Expected: expected}
}

// UnknownBlockOperator builds an "unknown block operator" compile error.
func UnknownBlockOperator(span meta.Span, name string) *CompileError {
	return &CompileError{Span: span, Name: name}
}

// UnexpectedOperatorField builds a `$op: unexpected field "X"` error.
func UnexpectedOperatorField(span meta.Span, op, field string) *CompileError {
	return &CompileError{Span: span, Op: op, Field: field}
}

// MissingOperatorField builds a `$op: missing field "X"` error.
func MissingOperatorField(span meta.Span, op, field string) *CompileError {
	return &CompileError{Span: span, Op: op, Field: field, Missing: true}
}

// EvalErrorKind discriminates evaluation-time errors.
type EvalErrorKind int

const (
	EnvironmentError EvalErrorKind = iota
	MissingVariable
	CallNonFunction
	MissingArgument
	TypeError
	IndexOutOfBounds
	KeyNotFound
	RangeStartGreaterThanOrEqualToEnd
	ErrorExpression
)

// EvalError is raised by the evaluator. The evaluator is strict: the
// first EvalError aborts evaluation.
type EvalError struct {
	Kind EvalErrorKind
	Span meta.Span

	Name     string // MissingVariable
	Cause    error  // EnvironmentError
	Index    int    // MissingArgument, IndexOutOfBounds (the integer index)
	Expected string // TypeError
	Got      string // TypeError
	Length   int    // IndexOutOfBounds
	IndexSpan meta.Span // IndexOutOfBounds, KeyNotFound
	ObjectSpan meta.Span // KeyNotFound
	Key      string    // KeyNotFound
	Start    int       // RangeStartGreaterThanOrEqualToEnd
	End      int       // RangeStartGreaterThanOrEqualToEnd

	Suggestion string // "did you mean" note, if any
}

func (e *EvalError) Error() string {
	switch e.Kind {
	case EnvironmentError:
		return fmt.Sprintf("environment error: %v", e.Cause)
	case MissingVariable:
		return fmt.Sprintf("missing variable %q", e.Name)
	case CallNonFunction:
		return "cannot call a non-function value"
	case MissingArgument:
		return fmt.Sprintf("missing argument at position %d", e.Index)
	case TypeError:
		return fmt.Sprintf("expected %s, got %s", e.Expected, e.Got)
	case IndexOutOfBounds:
		return fmt.Sprintf("index %d out of bounds (length %d)", e.Index, e.Length)
	case KeyNotFound:
		return fmt.Sprintf("key %q not found", e.Key)
	case RangeStartGreaterThanOrEqualToEnd:
		return fmt.Sprintf("slice start %d is not less than end %d", e.Start, e.End)
	case ErrorExpression:
		return "evaluation reached a recovery placeholder"
	default:
		return "evaluation error"
	}
}

// NewMissingVariable builds a MissingVariable error, computing a "did you
// mean" suggestion by fuzzy-matching name against the names visible in
// scope.
func NewMissingVariable(span meta.Span, name string, visible []string) *EvalError {
	return &EvalError{Kind: MissingVariable, Span: span, Name: name, Suggestion: suggest(name, visible)}
}

// suggest returns the closest match to name among candidates (by
// Levenshtein distance via fuzzy.LevenshteinDistance), or "" if none is
// close enough to be worth surfacing.
func suggest(name string, candidates []string) string {
	best, bestDist := "", 0
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(name, c)
		if best == "" || d < bestDist {
			best, bestDist = c, d
		}
	}
	if best == "" || bestDist > 3 {
		return ""
	}
	return best
}

// Report converts an EvalError into a renderable ErrorReport.
func (e *EvalError) Report() meta.ErrorReport {
	r := meta.ErrorReport{Message: e.Error(), Primary: e.Span}
	if e.Suggestion != "" {
		r.Notes = append(r.Notes, fmt.Sprintf("did you mean %q?", e.Suggestion))
	}
	switch e.Kind {
	case IndexOutOfBounds:
		r.Labels = append(r.Labels, meta.LabeledSpan{Span: e.IndexSpan, Label: "this index"})
	case KeyNotFound:
		r.Labels = append(r.Labels,
			meta.LabeledSpan{Span: e.ObjectSpan, Label: "this object"},
			meta.LabeledSpan{Span: e.IndexSpan, Label: "this key"},
		)
	}
	return r
}

// Report converts a CompileError into a renderable ErrorReport.
func (e *CompileError) Report() meta.ErrorReport {
	return meta.ErrorReport{Message: e.Error(), Primary: e.Span}
}
