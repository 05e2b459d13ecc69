package invariant

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreconditionPassesSilently(t *testing.T) {
	assert.NotPanics(t, func() {
		Precondition(true, "should never fire")
	})
}

func TestPreconditionPanicsOnViolation(t *testing.T) {
	assert.Panics(t, func() {
		Precondition(false, "boom: %d", 42)
	})
}

func TestInRangePanicsOutsideBounds(t *testing.T) {
	assert.Panics(t, func() {
		InRange(10, 0, 5, "x")
	})
	assert.NotPanics(t, func() {
		InRange(3, 0, 5, "x")
	})
}

func TestNotNilPanicsOnTypedNilPointer(t *testing.T) {
	var p *int
	assert.Panics(t, func() {
		NotNil(p, "p")
	})
}

func TestExpectNoErrorPanicsOnNonNilError(t *testing.T) {
	assert.Panics(t, func() {
		ExpectNoError(assertError{}, "re-parse")
	})
	assert.NotPanics(t, func() {
		ExpectNoError(nil, "re-parse")
	})
}

type assertError struct{}

func (assertError) Error() string { return "boom" }
