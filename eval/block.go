// Package eval implements Rimu's tree-walking evaluator: a block
// evaluator and an expression evaluator that together reduce an AST
// against an Environment to a Value, with null-omission in object and
// list positions and first-error-wins failure semantics.
package eval

import (
	"github.com/rimu-lang/rimu/ast"
	"github.com/rimu-lang/rimu/rimuerr"
	"github.com/rimu-lang/rimu/value"
)

// EvalBlock reduces a block tree to a value against env.
func EvalBlock(block *ast.Block, env *value.Environment) (value.Value, error) {
	return evalBlock(block, env)
}

func evalBlock(block *ast.Block, env *value.Environment) (value.Value, error) {
	switch block.BKind {
	case ast.BlockExpression:
		return EvalExpression(block.Expr, env)

	case ast.BlockObject:
		obj := value.NewObject()
		for _, entry := range block.Entries {
			v, err := evalBlock(&entry.Value, env)
			if err != nil {
				return value.Value{}, err
			}
			if v.IsNull() {
				continue // null omission
			}
			obj.Set(entry.Key.Name, v)
		}
		return value.ObjectValue(obj), nil

	case ast.BlockList:
		var items []value.Value
		for i := range block.Items {
			v, err := evalBlock(&block.Items[i], env)
			if err != nil {
				return value.Value{}, err
			}
			if v.IsNull() {
				continue
			}
			items = append(items, v)
		}
		return value.List(items), nil

	case ast.BlockIf:
		cond, err := evalBlock(block.Cond, env)
		if err != nil {
			return value.Value{}, err
		}
		if cond.Truthy() {
			if block.Cons == nil {
				return value.Null, nil
			}
			return evalBlock(block.Cons, env)
		}
		if block.Alt == nil {
			return value.Null, nil
		}
		return evalBlock(block.Alt, env)

	case ast.BlockLet:
		varsVal, err := evalBlock(block.Vars, env)
		if err != nil {
			return value.Value{}, err
		}
		obj, ok := varsVal.AsObject()
		if !ok {
			return value.Value{}, &rimuerr.EvalError{
				Kind:  rimuerr.EnvironmentError,
				Span:  block.Vars.Span,
				Cause: errNonObjectLetVariables,
			}
		}
		child := env.NewChild()
		obj.Range(func(key string, v value.Value) bool {
			child.Insert(key, v)
			return true
		})
		return evalBlock(block.Body, child)

	default:
		return value.Value{}, &rimuerr.EvalError{Kind: rimuerr.ErrorExpression, Span: block.Span}
	}
}

var errNonObjectLetVariables = nonObjectLetVariablesError{}

type nonObjectLetVariablesError struct{}

func (nonObjectLetVariablesError) Error() string {
	return "$let variables must evaluate to an object"
}
