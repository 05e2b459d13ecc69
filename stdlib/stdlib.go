// Package stdlib registers Rimu's native function surface into a root
// Environment: host-provided functions that receive the argument vector
// directly and return a value or error.
package stdlib

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/rimu-lang/rimu/value"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Register installs every native function into env under its name.
func Register(env *value.Environment) {
	for name, fn := range functions {
		env.Insert(name, value.FunctionValue(&value.Function{Native: fn}))
	}
}

var functions = map[string]value.NativeFunc{
	"length":   lengthFn,
	"keys":     keysFn,
	"values":   valuesFn,
	"type":     typeFn,
	"validate": validateFn,
}

func lengthFn(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, fmt.Errorf("length: expected 1 argument, got %d", len(args))
	}
	switch args[0].Kind() {
	case value.KindString:
		s, _ := args[0].AsString()
		return value.NumberFromInt(len([]rune(s))), nil
	case value.KindList:
		l, _ := args[0].AsList()
		return value.NumberFromInt(len(l)), nil
	case value.KindObject:
		o, _ := args[0].AsObject()
		return value.NumberFromInt(o.Len()), nil
	default:
		return value.Value{}, fmt.Errorf("length: expected string, list, or object, got %s", args[0].Kind())
	}
}

// keysFn returns an object's keys as a list of strings, in insertion
// order.
func keysFn(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, fmt.Errorf("keys: expected 1 argument, got %d", len(args))
	}
	o, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, fmt.Errorf("keys: expected object, got %s", args[0].Kind())
	}
	out := make([]value.Value, 0, o.Len())
	for _, k := range o.Keys() {
		out = append(out, value.String(k))
	}
	return value.List(out), nil
}

// valuesFn returns an object's values as a list, in insertion order.
func valuesFn(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, fmt.Errorf("values: expected 1 argument, got %d", len(args))
	}
	o, ok := args[0].AsObject()
	if !ok {
		return value.Value{}, fmt.Errorf("values: expected object, got %s", args[0].Kind())
	}
	out := make([]value.Value, 0, o.Len())
	for _, k := range o.Keys() {
		v, _ := o.Get(k)
		out = append(out, v)
	}
	return value.List(out), nil
}

// typeFn names a value's Kind as a string, useful for `$if` conditions
// that branch on shape.
func typeFn(args []value.Value) (value.Value, error) {
	if len(args) < 1 {
		return value.Value{}, fmt.Errorf("type: expected 1 argument, got %d", len(args))
	}
	return value.String(args[0].Kind().String()), nil
}

// validateFn checks a value against a JSON Schema document, both
// expressed as Rimu values.
func validateFn(args []value.Value) (value.Value, error) {
	if len(args) < 2 {
		return value.Value{}, fmt.Errorf("validate: expected 2 arguments (schema, value), got %d", len(args))
	}
	schemaJSON, err := json.Marshal(toInterface(args[0]))
	if err != nil {
		return value.Value{}, fmt.Errorf("validate: invalid schema: %w", err)
	}
	data := toInterface(args[1])

	compiler := jsonschema.NewCompiler()
	const resource = "rimu://validate/schema.json"
	if err := compiler.AddResource(resource, bytes.NewReader(schemaJSON)); err != nil {
		return value.Value{}, fmt.Errorf("validate: invalid schema: %w", err)
	}
	schema, err := compiler.Compile(resource)
	if err != nil {
		return value.Value{}, fmt.Errorf("validate: invalid schema: %w", err)
	}
	return value.Bool(schema.Validate(data) == nil), nil
}

// toInterface converts a Rimu Value into the plain interface{} shape the
// jsonschema library validates against.
func toInterface(v value.Value) any {
	switch v.Kind() {
	case value.KindNull:
		return nil
	case value.KindBoolean:
		b, _ := v.AsBool()
		return b
	case value.KindString:
		s, _ := v.AsString()
		return s
	case value.KindNumber:
		n, _ := v.AsNumber()
		f, _ := n.Float64()
		return f
	case value.KindList:
		l, _ := v.AsList()
		out := make([]any, len(l))
		for i, item := range l {
			out[i] = toInterface(item)
		}
		return out
	case value.KindObject:
		o, _ := v.AsObject()
		out := make(map[string]any, o.Len())
		o.Range(func(key string, val value.Value) bool {
			out[key] = toInterface(val)
			return true
		})
		return out
	default:
		return nil
	}
}
