package eval

import (
	"github.com/rimu-lang/rimu/ast"
	"github.com/rimu-lang/rimu/internal/invariant"
	"github.com/rimu-lang/rimu/rimuerr"
	"github.com/rimu-lang/rimu/value"
)

// EvalExpression reduces an expression tree to a value against env.
func EvalExpression(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	switch expr.Kind {
	case ast.ExprNull:
		return value.Null, nil
	case ast.ExprBoolean:
		return value.Bool(expr.Bool), nil
	case ast.ExprString:
		return value.String(expr.Str), nil
	case ast.ExprNumber:
		return value.Number(expr.Num), nil

	case ast.ExprList:
		items := make([]value.Value, len(expr.Items))
		for i := range expr.Items {
			v, err := EvalExpression(&expr.Items[i], env)
			if err != nil {
				return value.Value{}, err
			}
			items[i] = v
		}
		return value.List(items), nil

	case ast.ExprObject:
		obj := value.NewObject()
		for _, entry := range expr.Fields {
			v, err := EvalExpression(&entry.Value, env)
			if err != nil {
				return value.Value{}, err
			}
			obj.Set(entry.Key.Name, v)
		}
		return value.ObjectValue(obj), nil

	case ast.ExprIdentifier:
		v, ok := env.Get(expr.Name)
		if !ok {
			return value.Value{}, rimuerr.NewMissingVariable(expr.Span, expr.Name, env.Names())
		}
		return v, nil

	case ast.ExprUnary:
		return evalUnary(expr, env)

	case ast.ExprBinary:
		return evalBinary(expr, env)

	case ast.ExprCall:
		return evalCall(expr, env)

	case ast.ExprGetIndex:
		return evalGetIndex(expr, env)

	case ast.ExprGetKey:
		return evalGetKey(expr, env)

	case ast.ExprGetSlice:
		return evalGetSlice(expr, env)

	case ast.ExprError:
		return value.Value{}, &rimuerr.EvalError{Kind: rimuerr.ErrorExpression, Span: expr.Span}

	default:
		return value.Value{}, &rimuerr.EvalError{Kind: rimuerr.ErrorExpression, Span: expr.Span}
	}
}

func typeError(offender ast.Expression, expected, got string) error {
	return &rimuerr.EvalError{Kind: rimuerr.TypeError, Span: offender.Span, Expected: expected, Got: got}
}

func evalUnary(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	right, err := EvalExpression(expr.Right, env)
	if err != nil {
		return value.Value{}, err
	}
	switch expr.UnaryOp {
	case ast.Negate:
		n, ok := right.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "number", right.Kind().String())
		}
		return value.Number(n.Neg()), nil
	case ast.Not:
		return value.Bool(!right.Truthy()), nil
	default:
		return value.Value{}, typeError(*expr, "unary operand", right.Kind().String())
	}
}

func evalBinary(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	// Short-circuit operators evaluate the right operand conditionally,
	// so they're handled before the uniform eager-evaluate-both-sides
	// path below.
	switch expr.BinaryOp {
	case ast.And:
		left, err := EvalExpression(expr.Left, env)
		if err != nil {
			return value.Value{}, err
		}
		if !left.Truthy() {
			return value.Bool(false), nil
		}
		right, err := EvalExpression(expr.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.Truthy()), nil

	case ast.Or:
		left, err := EvalExpression(expr.Left, env)
		if err != nil {
			return value.Value{}, err
		}
		if left.Truthy() {
			return value.Bool(true), nil
		}
		right, err := EvalExpression(expr.Right, env)
		if err != nil {
			return value.Value{}, err
		}
		return value.Bool(right.Truthy()), nil
	}

	left, err := EvalExpression(expr.Left, env)
	if err != nil {
		return value.Value{}, err
	}
	right, err := EvalExpression(expr.Right, env)
	if err != nil {
		return value.Value{}, err
	}

	switch expr.BinaryOp {
	case ast.Equal:
		return value.Bool(value.Equal(left, right)), nil
	case ast.NotEqual:
		return value.Bool(!value.Equal(left, right)), nil

	case ast.Xor:
		lb, ok := left.AsBool()
		if !ok {
			return value.Value{}, typeError(*expr.Left, "boolean", left.Kind().String())
		}
		rb, ok := right.AsBool()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "boolean", right.Kind().String())
		}
		return value.Bool(lb != rb), nil

	case ast.Add:
		return evalAdd(expr, left, right)

	case ast.Subtract, ast.Multiply, ast.Divide, ast.Rem:
		ln, ok := left.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Left, "number", left.Kind().String())
		}
		rn, ok := right.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "number", right.Kind().String())
		}
		switch expr.BinaryOp {
		case ast.Subtract:
			return value.Number(ln.Sub(rn)), nil
		case ast.Multiply:
			return value.Number(ln.Mul(rn)), nil
		case ast.Divide:
			if rn.IsZero() {
				return value.Value{}, typeError(*expr.Right, "non-zero divisor", "zero")
			}
			return value.Number(ln.Div(rn)), nil
		case ast.Rem:
			if rn.IsZero() {
				return value.Value{}, typeError(*expr.Right, "non-zero divisor", "zero")
			}
			return value.Number(ln.Mod(rn)), nil
		}

	case ast.Greater, ast.GreaterEqual, ast.Less, ast.LessEqual:
		ln, ok := left.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Left, "number", left.Kind().String())
		}
		rn, ok := right.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "number", right.Kind().String())
		}
		cmp := ln.Cmp(rn)
		switch expr.BinaryOp {
		case ast.Greater:
			return value.Bool(cmp > 0), nil
		case ast.GreaterEqual:
			return value.Bool(cmp >= 0), nil
		case ast.Less:
			return value.Bool(cmp < 0), nil
		case ast.LessEqual:
			return value.Bool(cmp <= 0), nil
		}
	}

	return value.Value{}, typeError(*expr, "valid operands", "incompatible types")
}

// evalAdd implements `+`'s three forms: numeric addition, string
// concatenation, and list concatenation.
func evalAdd(expr *ast.Expression, left, right value.Value) (value.Value, error) {
	if ln, ok := left.AsNumber(); ok {
		rn, ok := right.AsNumber()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "number", right.Kind().String())
		}
		return value.Number(ln.Add(rn)), nil
	}
	if ls, ok := left.AsString(); ok {
		rs, ok := right.AsString()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "string", right.Kind().String())
		}
		return value.String(ls + rs), nil
	}
	if ll, ok := left.AsList(); ok {
		rl, ok := right.AsList()
		if !ok {
			return value.Value{}, typeError(*expr.Right, "list", right.Kind().String())
		}
		out := make([]value.Value, 0, len(ll)+len(rl))
		out = append(out, ll...)
		out = append(out, rl...)
		return value.List(out), nil
	}
	return value.Value{}, typeError(*expr.Left, "number, string, or list", left.Kind().String())
}

func evalCall(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	fnVal, err := EvalExpression(expr.Function, env)
	if err != nil {
		return value.Value{}, err
	}
	fn, ok := fnVal.AsFunction()
	if !ok {
		return value.Value{}, &rimuerr.EvalError{Kind: rimuerr.CallNonFunction, Span: expr.Function.Span}
	}

	args := make([]value.Value, len(expr.Args))
	for i := range expr.Args {
		v, err := EvalExpression(&expr.Args[i], env)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if fn.Native != nil {
		return fn.Native(args)
	}

	call := fn.Env.NewChild()
	for i, param := range fn.Params {
		if i >= len(args) {
			return value.Value{}, &rimuerr.EvalError{Kind: rimuerr.MissingArgument, Span: expr.Span, Index: i}
		}
		call.Insert(param, args[i])
	}

	if fn.Block != nil {
		return EvalBlock(fn.Block, call)
	}
	return EvalExpression(fn.Expr, call)
}

func evalGetIndex(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	container, err := EvalExpression(expr.Container, env)
	if err != nil {
		return value.Value{}, err
	}
	idxVal, err := EvalExpression(expr.Index, env)
	if err != nil {
		return value.Value{}, err
	}
	idxNum, ok := idxVal.AsNumber()
	if !ok || !idxNum.IsInteger() {
		return value.Value{}, typeError(*expr.Index, "integer", idxVal.Kind().String())
	}
	index := int(idxNum.IntPart())

	if list, ok := container.AsList(); ok {
		i, ok := resolveIndex(index, len(list))
		if !ok {
			return value.Value{}, &rimuerr.EvalError{
				Kind: rimuerr.IndexOutOfBounds, Span: expr.Container.Span,
				IndexSpan: expr.Index.Span, Index: index, Length: len(list),
			}
		}
		return list[i], nil
	}
	if s, ok := container.AsString(); ok {
		runes := []rune(s)
		i, ok := resolveIndex(index, len(runes))
		if !ok {
			return value.Value{}, &rimuerr.EvalError{
				Kind: rimuerr.IndexOutOfBounds, Span: expr.Container.Span,
				IndexSpan: expr.Index.Span, Index: index, Length: len(runes),
			}
		}
		return value.String(string(runes[i])), nil
	}
	return value.Value{}, typeError(*expr.Container, "list or string", container.Kind().String())
}

func evalGetKey(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	container, err := EvalExpression(expr.Container, env)
	if err != nil {
		return value.Value{}, err
	}
	obj, ok := container.AsObject()
	if !ok {
		return value.Value{}, typeError(*expr.Container, "object", container.Kind().String())
	}
	v, ok := obj.Get(expr.Key.Name)
	if !ok {
		return value.Value{}, &rimuerr.EvalError{
			Kind: rimuerr.KeyNotFound, Span: expr.Key.Span,
			ObjectSpan: expr.Container.Span, IndexSpan: expr.Key.Span, Key: expr.Key.Name,
		}
	}
	return v, nil
}

func evalGetSlice(expr *ast.Expression, env *value.Environment) (value.Value, error) {
	container, err := EvalExpression(expr.Container, env)
	if err != nil {
		return value.Value{}, err
	}

	var length int
	list, isList := container.AsList()
	str, isString := container.AsString()
	var runes []rune
	switch {
	case isList:
		length = len(list)
	case isString:
		runes = []rune(str)
		length = len(runes)
	default:
		return value.Value{}, typeError(*expr.Container, "list or string", container.Kind().String())
	}

	start := 0
	if expr.Start != nil {
		v, err := EvalExpression(expr.Start, env)
		if err != nil {
			return value.Value{}, err
		}
		n, ok := v.AsNumber()
		if !ok || !n.IsInteger() {
			return value.Value{}, typeError(*expr.Start, "integer", v.Kind().String())
		}
		start = normalizeSliceBound(int(n.IntPart()), length)
	}

	end := length
	if expr.End != nil {
		v, err := EvalExpression(expr.End, env)
		if err != nil {
			return value.Value{}, err
		}
		n, ok := v.AsNumber()
		if !ok || !n.IsInteger() {
			return value.Value{}, typeError(*expr.End, "integer", v.Kind().String())
		}
		end = normalizeSliceBound(int(n.IntPart()), length)
	}

	if start >= end {
		return value.Value{}, &rimuerr.EvalError{
			Kind: rimuerr.RangeStartGreaterThanOrEqualToEnd, Span: expr.Span, Start: start, End: end,
		}
	}

	if isList {
		return value.List(append([]value.Value(nil), list[start:end]...)), nil
	}
	return value.String(string(runes[start:end])), nil
}

// resolveIndex maps a possibly-negative index onto [0, length), returning
// ok=false when it falls outside that range. Negative indices count from
// the end.
func resolveIndex(index, length int) (int, bool) {
	i := index
	if i < 0 {
		i += length
	}
	if i < 0 || i >= length {
		return 0, false
	}
	return i, true
}

// normalizeSliceBound maps a slice bound (which may be negative, and may
// legitimately equal length for an end bound) onto [0, length].
func normalizeSliceBound(bound, length int) int {
	b := bound
	if b < 0 {
		b += length
	}
	if b < 0 {
		b = 0
	}
	if b > length {
		b = length
	}
	invariant.InRange(b, 0, length, "normalized slice bound")
	return b
}
