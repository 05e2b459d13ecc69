package eval

import (
	"testing"

	"github.com/rimu-lang/rimu/compiler"
	"github.com/rimu-lang/rimu/rimuerr"
	"github.com/rimu-lang/rimu/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evalBlockText(t *testing.T, text string, env *value.Environment) (value.Value, error) {
	t.Helper()
	block, errs := compiler.ParseBlock(testSource, text)
	require.Empty(t, errs, "unexpected parse errors for %q: %v", text, errs)
	if env == nil {
		env = value.NewEnvironment()
	}
	return EvalBlock(block, env)
}

func TestEvalBlockObjectOmitsNullEntries(t *testing.T) {
	v, err := evalBlockText(t, "a: 1\nb: null\n", nil)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, 1, obj.Len())
	_, hasB := obj.Get("b")
	assert.False(t, hasB, "null-valued entries must be omitted, not stored as null")
}

func TestEvalBlockListOmitsNullItems(t *testing.T) {
	v, err := evalBlockText(t, "- 1\n- null\n- 2\n", nil)
	require.NoError(t, err)
	l, ok := v.AsList()
	require.True(t, ok)
	assert.Len(t, l, 2)
}

func TestEvalBlockIfTrueBranch(t *testing.T) {
	v, err := evalBlockText(t, "$if: true\nthen: 1\nelse: 2\n", nil)
	require.NoError(t, err)
	n, ok := v.AsNumber()
	require.True(t, ok)
	assert.True(t, n.Equal(numOf(1)))
}

func TestEvalBlockIfFalseBranch(t *testing.T) {
	v, err := evalBlockText(t, "$if: false\nthen: 1\nelse: 2\n", nil)
	require.NoError(t, err)
	n, _ := v.AsNumber()
	assert.True(t, n.Equal(numOf(2)))
}

func TestEvalBlockIfMissingElseYieldsNull(t *testing.T) {
	v, err := evalBlockText(t, "$if: false\nthen: 1\n", nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestEvalBlockLetBindsVariablesForBody(t *testing.T) {
	v, err := evalBlockText(t, "$let:\n  x: 1\n  y: 2\nin: x + y\n", nil)
	require.NoError(t, err)
	n, _ := v.AsNumber()
	assert.True(t, n.Equal(numOf(3)))
}

func TestEvalBlockLetDoesNotLeakBindingsToParent(t *testing.T) {
	env := value.NewEnvironment()
	_, err := evalBlockText(t, "$let:\n  x: 1\nin: x\n", env)
	require.NoError(t, err)
	_, ok := env.Get("x")
	assert.False(t, ok, "$let bindings live in a child frame, not the evaluating environment")
}

func TestEvalBlockNonObjectLetVariablesIsEnvironmentError(t *testing.T) {
	_, err := evalBlockText(t, "$let: 1\nin: 1\n", nil)
	require.Error(t, err)
	evalErr, ok := err.(*rimuerr.EvalError)
	require.True(t, ok)
	assert.Equal(t, rimuerr.EnvironmentError, evalErr.Kind)
}

func TestEvalBlockLetShadowingDoesNotLeakAcrossScopes(t *testing.T) {
	// Inner shadowing does not leak: the outer binding is still visible
	// to a sibling that reads it after the inner $let has returned.
	text := "$let:\n  x: 1\nin:\n  a:\n    $let:\n      x: 2\n    in: x\n  b: x\n"
	v, err := evalBlockText(t, text, nil)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	a, _ := obj.Get("a")
	b, _ := obj.Get("b")
	an, _ := a.AsNumber()
	bn, _ := b.AsNumber()
	assert.True(t, an.Equal(numOf(2)), "inner $let shadows x to 2 within its own body")
	assert.True(t, bn.Equal(numOf(1)), "outer x must still be 1 once the inner $let returns")
}

func TestEvalBlockScenarioS1Conditional(t *testing.T) {
	env := value.NewEnvironment()
	env.Insert("five", value.NumberFromInt(5))
	env.Insert("ten", value.NumberFromInt(10))
	text := "zero:\n  $if: ten > five\n  then: five\n  else: ten\n"

	v, err := evalBlockText(t, text, env)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	require.Equal(t, 1, obj.Len())
	zero, ok := obj.Get("zero")
	require.True(t, ok)
	n, _ := zero.AsNumber()
	assert.True(t, n.Equal(numOf(5)))
}

func TestEvalBlockScenarioS2LetIn(t *testing.T) {
	env := value.NewEnvironment()
	env.Insert("ten", value.NumberFromInt(10))
	text := "zero:\n  $let:\n    one: ten\n    two: 2\n  in:\n    three: one + two\n"

	v, err := evalBlockText(t, text, env)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	zero, ok := obj.Get("zero")
	require.True(t, ok)
	inner, ok := zero.AsObject()
	require.True(t, ok)
	three, ok := inner.Get("three")
	require.True(t, ok)
	n, _ := three.AsNumber()
	assert.True(t, n.Equal(numOf(12)))
}

func TestEvalBlockCallsClosureBoundInEnvironment(t *testing.T) {
	// env binds `add` to a function with parameters a, b and body a + b;
	// the block `result: add(1, 2)` must evaluate to `{"result": 3}`.
	env := value.NewEnvironment()
	addExpr, errs := compiler.ParseExpression(testSource, "a + b")
	require.Empty(t, errs)
	env.Insert("add", value.FunctionValue(&value.Function{
		Params: []string{"a", "b"},
		Expr:   addExpr,
		Env:    env,
	}))

	v, err := evalBlockText(t, "result: add(1, 2)\n", env)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	result, ok := obj.Get("result")
	require.True(t, ok)
	n, _ := result.AsNumber()
	assert.True(t, n.Equal(numOf(3)))
}

func TestEvalBlockNullIfEntryIsOmittedBetweenSiblings(t *testing.T) {
	// The $if under "b" yields null, so "b" disappears while "a" and "c"
	// keep their source order.
	text := "a: 1\nb:\n  $if: false\n  then: 2\nc: 3\n"
	v, err := evalBlockText(t, text, nil)
	require.NoError(t, err)
	obj, ok := v.AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "c"}, obj.Keys())
}

func TestEvalBlockNestedBulletList(t *testing.T) {
	v, err := evalBlockText(t, "- - 1\n- 2\n", nil)
	require.NoError(t, err)
	l, ok := v.AsList()
	require.True(t, ok)
	require.Len(t, l, 2)
	inner, ok := l[0].AsList()
	require.True(t, ok)
	require.Len(t, inner, 1)
}

func TestEvalBlockNestedObjectUnderList(t *testing.T) {
	v, err := evalBlockText(t, "- a: 1\n  b: 2\n- a: 3\n  b: 4\n", nil)
	require.NoError(t, err)
	l, ok := v.AsList()
	require.True(t, ok)
	require.Len(t, l, 2)
	obj, ok := l[0].AsObject()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, obj.Keys())
}
