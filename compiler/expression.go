// Package compiler implements Rimu's two compilers: a Pratt-style
// precedence-climbing expression compiler and a block compiler that
// assembles an indented token stream into the Block tree, recognizing
// operator objects. Both run in recovery
// mode: a local failure is recorded and a recovery sentinel substituted
// so compilation can continue and report more than one error per pass.
package compiler

import (
	"github.com/rimu-lang/rimu/ast"
	"github.com/rimu-lang/rimu/lexer"
	"github.com/rimu-lang/rimu/meta"
	"github.com/rimu-lang/rimu/rimuerr"
	"github.com/rimu-lang/rimu/token"
	"github.com/shopspring/decimal"
)

// precedence levels, lowest to highest.
const (
	precNone = iota
	precOr
	precAnd
	precXor
	precEquality
	precComparison
	precTerm
	precFactor
	precUnary
	precPostfix
	precPrimary
)

var binaryPrecedence = map[token.Type]int{
	token.OrOr:         precOr,
	token.AndAnd:       precAnd,
	token.Caret:        precXor,
	token.EqualEqual:   precEquality,
	token.NotEqual:     precEquality,
	token.Less:         precComparison,
	token.LessEqual:    precComparison,
	token.Greater:      precComparison,
	token.GreaterEqual: precComparison,
	token.Plus:         precTerm,
	token.Minus:        precTerm,
	token.Star:         precFactor,
	token.Slash:        precFactor,
	token.Percent:      precFactor,
}

var binaryOps = map[token.Type]ast.BinaryOp{
	token.OrOr:         ast.Or,
	token.AndAnd:       ast.And,
	token.Caret:        ast.Xor,
	token.EqualEqual:   ast.Equal,
	token.NotEqual:     ast.NotEqual,
	token.Less:         ast.Less,
	token.LessEqual:    ast.LessEqual,
	token.Greater:      ast.Greater,
	token.GreaterEqual: ast.GreaterEqual,
	token.Plus:         ast.Add,
	token.Minus:        ast.Subtract,
	token.Star:         ast.Multiply,
	token.Slash:        ast.Divide,
	token.Percent:      ast.Rem,
}

// ExpressionParser holds the mutable state of one expression compile
// pass over a token slice: a cursor plus an accumulating error list.
// Exported so the block compiler can drive it line-by-line over slices
// of the shared token stream.
type ExpressionParser struct {
	source meta.SourceID
	toks   []token.Token
	pos    int
	errs   []error
}

// NewExpressionParser builds a parser over toks, a slice with no
// structural Indent/Dedent/EndOfLine tokens; the block compiler is
// responsible for slicing those out before calling in.
func NewExpressionParser(source meta.SourceID, toks []token.Token) *ExpressionParser {
	return &ExpressionParser{source: source, toks: toks}
}

// ParseExpression tokenizes text with the line lexer and compiles a full
// expression from it, requiring the token stream be fully consumed.
func ParseExpression(source meta.SourceID, text string) (*ast.Expression, []error) {
	toks, lexErrs := tokenizeExprLine(source, text)
	p := NewExpressionParser(source, toks)
	expr := p.Parse()
	if !p.atEnd() {
		tok := p.peek()
		p.errs = append(p.errs, rimuerr.UnexpectedToken(tok.Span, tok.Type.String(), nil))
	}
	return &expr, append(lexErrs, p.errs...)
}

func tokenizeExprLine(source meta.SourceID, text string) ([]token.Token, []error) {
	return lexer.TokenizeLine(source, text, 0)
}

// Errors returns the accumulated compile errors after Parse.
func (p *ExpressionParser) Errors() []error { return p.errs }

func (p *ExpressionParser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *ExpressionParser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *ExpressionParser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *ExpressionParser) check(t token.Type) bool {
	return p.peek().Type == t
}

func (p *ExpressionParser) match(t token.Type) bool {
	if p.check(t) {
		p.advance()
		return true
	}
	return false
}

func (p *ExpressionParser) expect(t token.Type, expected string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	found := p.peek()
	p.errs = append(p.errs, rimuerr.UnexpectedToken(found.Span, found.Type.String(), []string{expected}))
	return found, false
}

// Parse compiles one full expression at the lowest precedence level.
func (p *ExpressionParser) Parse() ast.Expression {
	return p.parsePrecedence(precOr)
}

func (p *ExpressionParser) parsePrecedence(min int) ast.Expression {
	left := p.parseUnary()

	for {
		prec, ok := binaryPrecedence[p.peek().Type]
		if !ok || prec < min {
			break
		}
		opTok := p.advance()
		right := p.parsePrecedence(prec + 1)
		left = ast.BinaryExpr(binaryOps[opTok.Type], left, right, left.Span.Union(right.Span))
	}
	return left
}

func (p *ExpressionParser) parseUnary() ast.Expression {
	switch p.peek().Type {
	case token.Minus:
		tok := p.advance()
		right := p.parseUnary()
		return ast.UnaryExpr(ast.Negate, right, tok.Span.Union(right.Span))
	case token.Bang:
		tok := p.advance()
		right := p.parseUnary()
		return ast.UnaryExpr(ast.Not, right, tok.Span.Union(right.Span))
	default:
		return p.parsePostfix()
	}
}

func (p *ExpressionParser) parsePostfix() ast.Expression {
	expr := p.parsePrimary()

	for {
		switch p.peek().Type {
		case token.LParen:
			expr = p.parseCall(expr)
		case token.LBracket:
			expr = p.parseIndexOrSlice(expr)
		case token.Dot:
			expr = p.parseGetKey(expr)
		default:
			return expr
		}
	}
}

func (p *ExpressionParser) parseCall(fn ast.Expression) ast.Expression {
	open := p.advance() // (
	var args []ast.Expression
	if !p.check(token.RParen) {
		args = append(args, p.Parse())
		for p.match(token.Comma) {
			args = append(args, p.Parse())
		}
	}
	closeTok, ok := p.expect(token.RParen, ")")
	if !ok {
		p.recoverTo(token.RParen)
		return ast.ErrorExpr(fn.Span.Union(open.Span))
	}
	return ast.CallExpr(fn, args, fn.Span.Union(closeTok.Span))
}

func (p *ExpressionParser) parseIndexOrSlice(container ast.Expression) ast.Expression {
	open := p.advance() // [

	if p.check(token.Colon) {
		p.advance()
		return p.finishSlice(container, open, nil)
	}

	first := p.Parse()
	if p.match(token.Colon) {
		return p.finishSlice(container, open, &first)
	}

	closeTok, ok := p.expect(token.RBracket, "]")
	if !ok {
		p.recoverTo(token.RBracket)
		return ast.ErrorExpr(container.Span.Union(open.Span))
	}
	return ast.GetIndexExpr(container, first, container.Span.Union(closeTok.Span))
}

func (p *ExpressionParser) finishSlice(container ast.Expression, open token.Token, start *ast.Expression) ast.Expression {
	var end *ast.Expression
	if !p.check(token.RBracket) {
		e := p.Parse()
		end = &e
	}
	closeTok, ok := p.expect(token.RBracket, "]")
	if !ok {
		p.recoverTo(token.RBracket)
		return ast.ErrorExpr(container.Span.Union(open.Span))
	}
	return ast.GetSliceExpr(container, start, end, container.Span.Union(closeTok.Span))
}

func (p *ExpressionParser) parseGetKey(container ast.Expression) ast.Expression {
	p.advance() // .
	nameTok, ok := p.expect(token.Identifier, "identifier")
	if !ok {
		return ast.ErrorExpr(container.Span.Union(nameTok.Span))
	}
	key := ast.ObjectKey{Name: nameTok.Text, Span: nameTok.Span}
	return ast.GetKeyExpr(container, key, container.Span.Union(nameTok.Span))
}

func (p *ExpressionParser) parsePrimary() ast.Expression {
	tok := p.peek()
	switch tok.Type {
	case token.Null:
		p.advance()
		return ast.NullExpr(tok.Span)
	case token.Boolean:
		p.advance()
		return ast.BooleanExpr(tok.BooleanValue(), tok.Span)
	case token.Number:
		p.advance()
		n, err := decimal.NewFromString(tok.Text)
		if err != nil {
			p.errs = append(p.errs, rimuerr.UnexpectedToken(tok.Span, "invalid number", nil))
			return ast.ErrorExpr(tok.Span)
		}
		return ast.NumberExpr(n, tok.Span)
	case token.String:
		p.advance()
		return ast.StringExpr(tok.Text, tok.Span)
	case token.Identifier:
		p.advance()
		return ast.IdentifierExpr(tok.Text, tok.Span)
	case token.LParen:
		return p.parseParen()
	case token.LBracket:
		return p.parseListLiteral()
	case token.LBrace:
		return p.parseObjectLiteral()
	default:
		p.errs = append(p.errs, rimuerr.UnexpectedToken(tok.Span, tok.Type.String(),
			[]string{"null", "true", "false", "number", "string", "identifier", "(", "[", "{"}))
		if !p.atEnd() {
			p.advance()
		}
		return ast.ErrorExpr(tok.Span)
	}
}

func (p *ExpressionParser) parseParen() ast.Expression {
	open := p.advance()
	inner := p.Parse()
	closeTok, ok := p.expect(token.RParen, ")")
	if !ok {
		p.recoverTo(token.RParen)
		return ast.ErrorExpr(open.Span.Union(inner.Span))
	}
	inner.Span = open.Span.Union(closeTok.Span)
	return inner
}

func (p *ExpressionParser) parseListLiteral() ast.Expression {
	open := p.advance()
	var items []ast.Expression
	if !p.check(token.RBracket) {
		items = append(items, p.Parse())
		for p.match(token.Comma) {
			if p.check(token.RBracket) {
				break
			}
			items = append(items, p.Parse())
		}
	}
	closeTok, ok := p.expect(token.RBracket, "]")
	if !ok {
		p.recoverTo(token.RBracket)
		return ast.ErrorExpr(open.Span)
	}
	return ast.ListExpr(items, open.Span.Union(closeTok.Span))
}

func (p *ExpressionParser) parseObjectLiteral() ast.Expression {
	open := p.advance()
	var entries []ast.ObjectEntry
	for !p.check(token.RBrace) && !p.atEnd() {
		keyTok, ok := p.expect(token.Identifier, "identifier")
		if !ok {
			p.recoverTo(token.RBrace)
			return ast.ErrorExpr(open.Span)
		}
		if _, ok := p.expect(token.Colon, ":"); !ok {
			p.recoverTo(token.RBrace)
			return ast.ErrorExpr(open.Span)
		}
		val := p.Parse()
		entries = append(entries, ast.ObjectEntry{
			Key:   ast.ObjectKey{Name: keyTok.Text, Span: keyTok.Span},
			Value: val,
		})
		if !p.match(token.Comma) {
			break
		}
	}
	closeTok, ok := p.expect(token.RBrace, "}")
	if !ok {
		p.recoverTo(token.RBrace)
		return ast.ErrorExpr(open.Span)
	}
	return ast.ObjectExpr(entries, open.Span.Union(closeTok.Span))
}

// recoverTo consumes tokens through the first occurrence of closer,
// tracking nested delimiters of the same family so a failed group
// doesn't stop at an inner closer.
func (p *ExpressionParser) recoverTo(closer token.Type) {
	opener, depth := matchingOpener(closer), 1
	for !p.atEnd() {
		t := p.advance().Type
		switch t {
		case opener:
			depth++
		case closer:
			depth--
			if depth == 0 {
				return
			}
		}
	}
}

func matchingOpener(closer token.Type) token.Type {
	switch closer {
	case token.RParen:
		return token.LParen
	case token.RBracket:
		return token.LBracket
	case token.RBrace:
		return token.LBrace
	default:
		return token.ILLEGAL
	}
}
