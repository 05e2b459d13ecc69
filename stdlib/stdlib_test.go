package stdlib

import (
	"testing"

	"github.com/rimu-lang/rimu/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func callNative(t *testing.T, env *value.Environment, name string, args ...value.Value) (value.Value, error) {
	t.Helper()
	v, ok := env.Get(name)
	require.True(t, ok, "native function %q must be registered", name)
	fn, ok := v.AsFunction()
	require.True(t, ok)
	require.NotNil(t, fn.Native)
	return fn.Native(args)
}

func numOf(n int) value.Value { return value.NumberFromInt(n) }

func newRegisteredEnv() *value.Environment {
	env := value.NewEnvironment()
	Register(env)
	return env
}

func TestRegisterInstallsEveryNativeFunction(t *testing.T) {
	env := newRegisteredEnv()
	for _, name := range []string{"length", "keys", "values", "type", "validate"} {
		_, ok := env.Get(name)
		assert.True(t, ok, "expected %q to be registered", name)
	}
}

func TestLengthFnOverStringListObject(t *testing.T) {
	env := newRegisteredEnv()

	v, err := callNative(t, env, "length", value.String("héllo"))
	require.NoError(t, err)
	n, _ := v.AsNumber()
	want, _ := numOf(5).AsNumber()
	assert.True(t, n.Equal(want))

	v, err = callNative(t, env, "length", value.List([]value.Value{value.NumberFromInt(1), value.NumberFromInt(2)}))
	require.NoError(t, err)
	n, _ = v.AsNumber()
	want, _ = numOf(2).AsNumber()
	assert.True(t, n.Equal(want))
}

func TestKeysAndValuesPreserveInsertionOrder(t *testing.T) {
	env := newRegisteredEnv()
	obj := value.NewObject()
	obj.Set("b", value.NumberFromInt(2))
	obj.Set("a", value.NumberFromInt(1))

	keysV, err := callNative(t, env, "keys", value.ObjectValue(obj))
	require.NoError(t, err)
	keys, _ := keysV.AsList()
	require.Len(t, keys, 2)
	k0, _ := keys[0].AsString()
	k1, _ := keys[1].AsString()
	assert.Equal(t, []string{"b", "a"}, []string{k0, k1})

	valsV, err := callNative(t, env, "values", value.ObjectValue(obj))
	require.NoError(t, err)
	vals, _ := valsV.AsList()
	require.Len(t, vals, 2)
}

func TestTypeFnNamesKind(t *testing.T) {
	env := newRegisteredEnv()
	v, err := callNative(t, env, "type", value.String("x"))
	require.NoError(t, err)
	s, _ := v.AsString()
	assert.Equal(t, "string", s)
}

func TestValidateFnAcceptsMatchingValue(t *testing.T) {
	env := newRegisteredEnv()
	schema := value.NewObject()
	schema.Set("type", value.String("string"))

	v, err := callNative(t, env, "validate", value.ObjectValue(schema), value.String("hello"))
	require.NoError(t, err)
	b, _ := v.AsBool()
	assert.True(t, b)
}

func TestValidateFnRejectsMismatchedValue(t *testing.T) {
	env := newRegisteredEnv()
	schema := value.NewObject()
	schema.Set("type", value.String("string"))

	v, err := callNative(t, env, "validate", value.ObjectValue(schema), value.NumberFromInt(1))
	require.NoError(t, err)
	b, _ := v.AsBool()
	assert.False(t, b)
}
