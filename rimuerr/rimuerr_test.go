package rimuerr

import (
	"testing"

	"github.com/rimu-lang/rimu/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSource meta.SourceID = "test"

func TestNewMissingVariableSuggestsCloseName(t *testing.T) {
	err := NewMissingVariable(meta.NewSpan(testSource, 0, 4), "lenght", []string{"length", "values"})
	assert.Equal(t, "length", err.Suggestion)
}

func TestNewMissingVariableNoSuggestionWhenFar(t *testing.T) {
	err := NewMissingVariable(meta.NewSpan(testSource, 0, 1), "z", []string{"completely_unrelated_name"})
	assert.Equal(t, "", err.Suggestion)
}

func TestCompileErrorMessages(t *testing.T) {
	err := UnexpectedToken(meta.NewSpan(testSource, 0, 1), ")", []string{"identifier"})
	assert.Contains(t, err.Error(), "unexpected token")

	err = UnknownBlockOperator(meta.NewSpan(testSource, 0, 1), "$bogus")
	assert.Equal(t, `unknown block operator "$bogus"`, err.Error())

	err = MissingOperatorField(meta.NewSpan(testSource, 0, 1), "$let", "in")
	assert.Equal(t, `$let: missing field "in"`, err.Error())

	err = UnexpectedOperatorField(meta.NewSpan(testSource, 0, 1), "$if", "bogus")
	assert.Equal(t, `$if: unexpected field "bogus"`, err.Error())
}

func TestEvalErrorReportLabelsIndexOutOfBounds(t *testing.T) {
	err := &EvalError{
		Kind:      IndexOutOfBounds,
		Span:      meta.NewSpan(testSource, 0, 5),
		IndexSpan: meta.NewSpan(testSource, 2, 3),
		Index:     5,
		Length:    2,
	}
	report := err.Report()
	require.Len(t, report.Labels, 1)
	assert.Equal(t, "this index", report.Labels[0].Label)
}

func TestEvalErrorReportLabelsKeyNotFound(t *testing.T) {
	err := &EvalError{
		Kind:       KeyNotFound,
		Span:       meta.NewSpan(testSource, 0, 5),
		ObjectSpan: meta.NewSpan(testSource, 0, 3),
		IndexSpan:  meta.NewSpan(testSource, 4, 5),
		Key:        "missing",
	}
	report := err.Report()
	require.Len(t, report.Labels, 2)
}
