package ast

import "github.com/rimu-lang/rimu/meta"

// BlockEntry pairs a span-wrapped key with its value block in an object
// block.
type BlockEntry struct {
	Key   ObjectKey
	Value Block
}

// BlockKind discriminates Block variants.
type BlockKind int

const (
	BlockObject BlockKind = iota
	BlockList
	BlockExpression
	BlockIf
	BlockLet
)

// Block is one node of the block AST. The `$if` and `$let` operations are
// flattened onto Block directly (rather than nested one level behind a
// separate Operation type) because Go has no sum-of-sums ergonomics and
// every consumer of Block already switches on BKind.
type Block struct {
	BKind BlockKind
	Span  meta.Span

	Entries []BlockEntry // Object
	Items   []Block      // List
	Expr    *Expression  // Expression
	Cond    *Block       // If: condition
	Cons    *Block       // If: consequent, nilable
	Alt     *Block       // If: alternative, nilable
	Vars    *Block       // Let: variables
	Body    *Block       // Let: body
}

// ObjectBlock builds an Object block node.
func ObjectBlock(entries []BlockEntry, span meta.Span) Block {
	return Block{BKind: BlockObject, Entries: entries, Span: span}
}

// ListBlock builds a List block node.
func ListBlock(items []Block, span meta.Span) Block {
	return Block{BKind: BlockList, Items: items, Span: span}
}

// ExpressionBlock builds an Expression block node.
func ExpressionBlock(expr Expression, span meta.Span) Block {
	return Block{BKind: BlockExpression, Expr: &expr, Span: span}
}

// IfBlock builds an `$if` operation block node.
func IfBlock(cond Block, cons, alt *Block, span meta.Span) Block {
	return Block{BKind: BlockIf, Cond: &cond, Cons: cons, Alt: alt, Span: span}
}

// LetBlock builds a `$let` operation block node.
func LetBlock(vars, body Block, span meta.Span) Block {
	return Block{BKind: BlockLet, Vars: &vars, Body: &body, Span: span}
}
