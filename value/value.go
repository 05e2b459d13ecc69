// Package value implements Rimu's runtime data model: the tagged Value
// union, fixed-precision decimal Number, insertion-ordered Object, List,
// Function closures, and the Environment chain closures capture.
// Environment lives here rather than in its own package because Function
// needs a concrete environment handle and Environment needs Value, and
// keeping both in one package avoids the import cycle.
package value

import (
	"fmt"

	"github.com/rimu-lang/rimu/ast"
	"github.com/shopspring/decimal"
)

// Kind discriminates Value variants.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindString
	KindNumber
	KindList
	KindObject
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBoolean:
		return "boolean"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	case KindFunction:
		return "function"
	default:
		return "?"
	}
}

// Value is the runtime datum Rimu evaluation produces and manipulates: a
// tagged union over null/bool/string/decimal-number/list/object/function.
// No implicit coercion between categories exists; numbers are
// fixed-precision decimal with no floating-point NaN semantics.
type Value struct {
	kind Kind

	b bool
	s string
	n decimal.Decimal
	l []Value
	o *Object
	f *Function
}

// Null is the singleton null value.
var Null = Value{kind: KindNull}

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBoolean, b: b} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Number wraps a fixed-precision decimal.
func Number(n decimal.Decimal) Value { return Value{kind: KindNumber, n: n} }

// List wraps a list of values.
func List(items []Value) Value { return Value{kind: KindList, l: items} }

// ObjectValue wraps an insertion-ordered object.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, o: o} }

// FunctionValue wraps a closure.
func FunctionValue(f *Function) Value { return Value{kind: KindFunction, f: f} }

// Kind reports the value's variant.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is Null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool, AsString, AsNumber, AsList, AsObject, AsFunction each return the
// payload and true if v is of the matching Kind, else the zero value and
// false. Callers that already know the Kind (e.g. after a type switch in
// an evaluator) may use these directly instead of re-deriving it.
func (v Value) AsBool() (bool, bool)             { return v.b, v.kind == KindBoolean }
func (v Value) AsString() (string, bool)         { return v.s, v.kind == KindString }
func (v Value) AsNumber() (decimal.Decimal, bool) { return v.n, v.kind == KindNumber }
func (v Value) AsList() ([]Value, bool)          { return v.l, v.kind == KindList }
func (v Value) AsObject() (*Object, bool)        { return v.o, v.kind == KindObject }
func (v Value) AsFunction() (*Function, bool)    { return v.f, v.kind == KindFunction }

// Truthy applies the boolean coercion rule: everything except Null and
// Boolean(false) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBoolean:
		return v.b
	default:
		return true
	}
}

// Equal implements structural equality: functions compare by
// identity of their captured environment pointer plus parameter list and
// body; everything else compares structurally.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBoolean:
		return a.b == b.b
	case KindString:
		return a.s == b.s
	case KindNumber:
		return a.n.Equal(b.n)
	case KindList:
		if len(a.l) != len(b.l) {
			return false
		}
		for i := range a.l {
			if !Equal(a.l[i], b.l[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return a.o.Equal(b.o)
	case KindFunction:
		return a.f.Equal(b.f)
	default:
		return false
	}
}

// Function is a closure: an ordered parameter list, a body (expression or
// block), and a reference to the lexical environment it was defined in.
type Function struct {
	Params []string
	Expr   *ast.Expression // body, if a single expression
	Block  *ast.Block      // body, if a block
	Env    *Environment
	Native NativeFunc // set instead of Expr/Block/Env for a host-provided function
}

// Equal compares functions by identity of captured environment plus
// parameter list and body pointer.
func (f *Function) Equal(other *Function) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	if f.Env != other.Env {
		return false
	}
	if f.Expr != other.Expr || f.Block != other.Block {
		return false
	}
	if len(f.Params) != len(other.Params) {
		return false
	}
	for i := range f.Params {
		if f.Params[i] != other.Params[i] {
			return false
		}
	}
	return true
}

// NativeFunc is a host-provided function registered into the root
// environment: it receives the argument vector directly and returns a
// value or error.
type NativeFunc func(args []Value) (Value, error)

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBoolean:
		if v.b {
			return "true"
		}
		return "false"
	case KindString:
		return v.s
	case KindNumber:
		return v.n.String()
	case KindList:
		return fmt.Sprintf("%v", v.l)
	case KindObject:
		return "<object>"
	case KindFunction:
		return "<function>"
	default:
		return "?"
	}
}
