package value

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTruthy(t *testing.T) {
	assert.False(t, Null.Truthy())
	assert.False(t, Bool(false).Truthy())
	assert.True(t, Bool(true).Truthy())
	assert.True(t, String("").Truthy())
	assert.True(t, Number(decimal.Zero).Truthy())
	assert.True(t, List(nil).Truthy())
	assert.True(t, ObjectValue(NewObject()).Truthy())
}

func TestEqualStructural(t *testing.T) {
	a := List([]Value{String("x"), NumberFromInt(1)})
	b := List([]Value{String("x"), NumberFromInt(1)})
	assert.True(t, Equal(a, b))

	c := List([]Value{String("x"), NumberFromInt(2)})
	assert.False(t, Equal(a, c))

	oa := NewObject()
	oa.Set("a", NumberFromInt(1))
	oa.Set("b", NumberFromInt(2))
	ob := NewObject()
	ob.Set("a", NumberFromInt(1))
	ob.Set("b", NumberFromInt(2))
	assert.True(t, Equal(ObjectValue(oa), ObjectValue(ob)))

	obReordered := NewObject()
	obReordered.Set("b", NumberFromInt(2))
	obReordered.Set("a", NumberFromInt(1))
	assert.False(t, Equal(ObjectValue(oa), ObjectValue(obReordered)), "object order is observable")
}

func TestEqualFunctionIdentity(t *testing.T) {
	env := NewEnvironment()
	f1 := &Function{Params: []string{"x"}, Env: env}
	f2 := &Function{Params: []string{"x"}, Env: env}
	assert.True(t, f1.Equal(f1))
	assert.True(t, f1.Equal(f2), "same captured environment, body, and parameter list must compare equal even across distinct Function structs")

	other := NewEnvironment()
	f3 := &Function{Params: []string{"x"}, Env: other}
	assert.False(t, f1.Equal(f3), "a different captured environment makes two functions unequal even with identical params")

	f4 := &Function{Params: []string{"x", "y"}, Env: env}
	assert.False(t, f1.Equal(f4), "differing parameter lists make two functions unequal")
}

func TestObjectPreservesInsertionOrderAcrossUpdate(t *testing.T) {
	o := NewObject()
	o.Set("first", NumberFromInt(1))
	o.Set("second", NumberFromInt(2))
	o.Set("first", NumberFromInt(99))

	assert.Equal(t, []string{"first", "second"}, o.Keys())
	v, ok := o.Get("first")
	assert.True(t, ok)
	n, _ := v.AsNumber()
	assert.True(t, n.Equal(decimal.NewFromInt(99)))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "null", Null.Kind().String())
	assert.Equal(t, "number", NumberFromInt(1).Kind().String())
	assert.Equal(t, "function", FunctionValue(&Function{}).Kind().String())
}
