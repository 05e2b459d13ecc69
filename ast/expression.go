// Package ast defines Rimu's two syntax trees, Expression and Block.
// Every node carries the span of source text it was compiled from.
package ast

import (
	"github.com/rimu-lang/rimu/meta"
	"github.com/shopspring/decimal"
)

// UnaryOp is a prefix operator.
type UnaryOp int

const (
	Negate UnaryOp = iota
	Not
)

// BinaryOp is an infix operator.
type BinaryOp int

const (
	Add BinaryOp = iota
	Subtract
	Multiply
	Divide
	Rem
	Greater
	GreaterEqual
	Less
	LessEqual
	Equal
	NotEqual
	And
	Or
	Xor
)

// ObjectKey is a span-wrapped object literal key.
type ObjectKey struct {
	Name string
	Span meta.Span
}

// ObjectEntry pairs a literal key with its value expression in an object
// literal `{ key: expr, ... }`.
type ObjectEntry struct {
	Key   ObjectKey
	Value Expression
}

// Expression is one node of the expression AST. Exactly one of the typed
// fields is meaningful, selected by Kind; this mirrors a tagged union
// using a discriminated struct.
type Expression struct {
	Kind ExprKind
	Span meta.Span

	// Null has no payload.
	Bool   bool
	Str    string
	Num    decimal.Decimal
	Name   string // Identifier
	Items  []Expression
	Fields []ObjectEntry

	UnaryOp UnaryOp
	Right   *Expression

	BinaryOp BinaryOp
	Left     *Expression
	// Right is reused for the binary right operand.

	Function *Expression
	Args     []Expression

	Container *Expression
	Index     *Expression // GetIndex
	Key       *ObjectKey  // GetKey
	Start     *Expression // GetSlice, nilable
	End       *Expression // GetSlice, nilable
}

// ExprKind discriminates Expression variants.
type ExprKind int

const (
	ExprNull ExprKind = iota
	ExprBoolean
	ExprString
	ExprNumber
	ExprList
	ExprObject
	ExprIdentifier
	ExprUnary
	ExprBinary
	ExprCall
	ExprGetIndex
	ExprGetKey
	ExprGetSlice
	ExprError // recovery sentinel left where compilation failed locally
)

// NullExpr builds a Null expression node.
func NullExpr(span meta.Span) Expression { return Expression{Kind: ExprNull, Span: span} }

// BooleanExpr builds a Boolean literal node.
func BooleanExpr(b bool, span meta.Span) Expression {
	return Expression{Kind: ExprBoolean, Bool: b, Span: span}
}

// StringExpr builds a String literal node.
func StringExpr(s string, span meta.Span) Expression {
	return Expression{Kind: ExprString, Str: s, Span: span}
}

// NumberExpr builds a Number literal node.
func NumberExpr(n decimal.Decimal, span meta.Span) Expression {
	return Expression{Kind: ExprNumber, Num: n, Span: span}
}

// ListExpr builds a List literal node.
func ListExpr(items []Expression, span meta.Span) Expression {
	return Expression{Kind: ExprList, Items: items, Span: span}
}

// ObjectExpr builds an Object literal node.
func ObjectExpr(fields []ObjectEntry, span meta.Span) Expression {
	return Expression{Kind: ExprObject, Fields: fields, Span: span}
}

// IdentifierExpr builds an Identifier node.
func IdentifierExpr(name string, span meta.Span) Expression {
	return Expression{Kind: ExprIdentifier, Name: name, Span: span}
}

// UnaryExpr builds a Unary node.
func UnaryExpr(op UnaryOp, right Expression, span meta.Span) Expression {
	return Expression{Kind: ExprUnary, UnaryOp: op, Right: &right, Span: span}
}

// BinaryExpr builds a Binary node.
func BinaryExpr(op BinaryOp, left, right Expression, span meta.Span) Expression {
	return Expression{Kind: ExprBinary, BinaryOp: op, Left: &left, Right: &right, Span: span}
}

// CallExpr builds a Call node.
func CallExpr(function Expression, args []Expression, span meta.Span) Expression {
	return Expression{Kind: ExprCall, Function: &function, Args: args, Span: span}
}

// GetIndexExpr builds a GetIndex node (`c[e]`).
func GetIndexExpr(container, index Expression, span meta.Span) Expression {
	return Expression{Kind: ExprGetIndex, Container: &container, Index: &index, Span: span}
}

// GetKeyExpr builds a GetKey node (`c.name`).
func GetKeyExpr(container Expression, key ObjectKey, span meta.Span) Expression {
	return Expression{Kind: ExprGetKey, Container: &container, Key: &key, Span: span}
}

// GetSliceExpr builds a GetSlice node (`c[s:e]`); start and end may each be
// nil when that bound was omitted.
func GetSliceExpr(container Expression, start, end *Expression, span meta.Span) Expression {
	return Expression{Kind: ExprGetSlice, Container: &container, Start: start, End: end, Span: span}
}

// ErrorExpr builds a recovery sentinel node.
func ErrorExpr(span meta.Span) Expression { return Expression{Kind: ExprError, Span: span} }
