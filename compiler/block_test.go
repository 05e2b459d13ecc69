package compiler

import (
	"testing"

	"github.com/rimu-lang/rimu/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseBlock(t *testing.T, text string) ast.Block {
	t.Helper()
	block, errs := ParseBlock(testSource, text)
	require.Empty(t, errs, "unexpected parse errors for %q: %v", text, errs)
	return *block
}

func TestParseBlockSimpleObject(t *testing.T) {
	block := parseBlock(t, "a: 1\nb: 2\n")
	require.Equal(t, ast.BlockObject, block.BKind)
	require.Len(t, block.Entries, 2)
	assert.Equal(t, "a", block.Entries[0].Key.Name)
	assert.Equal(t, "b", block.Entries[1].Key.Name)
}

func TestParseBlockNestedObject(t *testing.T) {
	block := parseBlock(t, "a:\n  b: 1\n  c: 2\n")
	require.Equal(t, ast.BlockObject, block.BKind)
	require.Len(t, block.Entries, 1)
	nested := block.Entries[0].Value
	require.Equal(t, ast.BlockObject, nested.BKind)
	require.Len(t, nested.Entries, 2)
}

func TestParseBlockScalarList(t *testing.T) {
	block := parseBlock(t, "- 1\n- 2\n- 3\n")
	require.Equal(t, ast.BlockList, block.BKind)
	require.Len(t, block.Items, 3)
	for _, item := range block.Items {
		assert.Equal(t, ast.BlockExpression, item.BKind)
	}
}

func TestParseBlockMultiKeyObjectUnderOneBullet(t *testing.T) {
	block := parseBlock(t, "- a: 1\n  b: 2\n")
	require.Equal(t, ast.BlockList, block.BKind)
	require.Len(t, block.Items, 1)
	entry := block.Items[0]
	require.Equal(t, ast.BlockObject, entry.BKind)
	require.Len(t, entry.Entries, 2)
	assert.Equal(t, "a", entry.Entries[0].Key.Name)
	assert.Equal(t, "b", entry.Entries[1].Key.Name)
}

func TestParseBlockNestedBulletsMakeNestedLists(t *testing.T) {
	block := parseBlock(t, "- - 1\n- 2\n")
	require.Equal(t, ast.BlockList, block.BKind)
	require.Len(t, block.Items, 2)
	inner := block.Items[0]
	require.Equal(t, ast.BlockList, inner.BKind)
	require.Len(t, inner.Items, 1)
	assert.Equal(t, ast.BlockExpression, inner.Items[0].BKind)
	assert.Equal(t, ast.BlockExpression, block.Items[1].BKind)
}

func TestParseBlockBareDashItemWithIndentedBody(t *testing.T) {
	block := parseBlock(t, "-\n  a: 1\n  b: 2\n")
	require.Equal(t, ast.BlockList, block.BKind)
	require.Len(t, block.Items, 1)
	entry := block.Items[0]
	require.Equal(t, ast.BlockObject, entry.BKind)
	require.Len(t, entry.Entries, 2)
}

func TestParseBlockUnaryMinusIsNotAList(t *testing.T) {
	block := parseBlock(t, "x: -5\n")
	require.Equal(t, ast.BlockObject, block.BKind)
	val := block.Entries[0].Value
	require.Equal(t, ast.BlockExpression, val.BKind)
	require.Equal(t, ast.ExprUnary, val.Expr.Kind)
	assert.Equal(t, ast.Negate, val.Expr.UnaryOp)
}

func TestParseBlockIfOperator(t *testing.T) {
	text := "$if: cond\nthen: 1\nelse: 2\n"
	block := parseBlock(t, text)
	require.Equal(t, ast.BlockIf, block.BKind)
	require.NotNil(t, block.Cons)
	require.NotNil(t, block.Alt)
}

func TestParseBlockLetOperator(t *testing.T) {
	text := "$let:\n  x: 1\nin: x\n"
	block := parseBlock(t, text)
	require.Equal(t, ast.BlockLet, block.BKind)
	require.NotNil(t, block.Vars)
	require.NotNil(t, block.Body)
}

func TestParseBlockLetMissingInReportsError(t *testing.T) {
	text := "$let:\n  x: 1\n"
	_, errs := ParseBlock(testSource, text)
	require.Len(t, errs, 1, "a $let without an `in` field must be reported")
	assert.Equal(t, `$let: missing field "in"`, errs[0].Error())
}

func TestParseBlockIfUnexpectedFieldReportsError(t *testing.T) {
	text := "$if: true\nthen: 1\nbogus: 2\n"
	_, errs := ParseBlock(testSource, text)
	require.Len(t, errs, 1)
	assert.Equal(t, `$if: unexpected field "bogus"`, errs[0].Error())
}

func TestParseBlockDollarDollarEscapesToLiteralKey(t *testing.T) {
	block := parseBlock(t, "$$if: 1\n")
	require.Equal(t, ast.BlockObject, block.BKind)
	require.Len(t, block.Entries, 1)
	assert.Equal(t, "$if", block.Entries[0].Key.Name)
}

func TestParseBlockUnknownOperatorReportsError(t *testing.T) {
	_, errs := ParseBlock(testSource, "$bogus: 1\n")
	require.Len(t, errs, 1)
	assert.Equal(t, `unknown block operator "$bogus"`, errs[0].Error())
}

func TestParseBlockBareExpression(t *testing.T) {
	block := parseBlock(t, "1 + 2\n")
	require.Equal(t, ast.BlockExpression, block.BKind)
	assert.Equal(t, ast.ExprBinary, block.Expr.Kind)
}
