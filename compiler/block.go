package compiler

import (
	"github.com/rimu-lang/rimu/ast"
	"github.com/rimu-lang/rimu/lexer"
	"github.com/rimu-lang/rimu/meta"
	"github.com/rimu-lang/rimu/rimuerr"
	"github.com/rimu-lang/rimu/token"
)

// BlockParser compiles a fully-dented token stream into the Block tree.
// It operates over the whole document's tokens at once;
// nested scopes are recognized purely from Indent/Dedent structure rather
// than by re-tokenizing per line.
type BlockParser struct {
	source meta.SourceID
	toks   []token.Token
	pos    int
	errs   []error
}

// NewBlockParser builds a parser over a complete dented token stream, as
// produced by lexer.Tokenize.
func NewBlockParser(source meta.SourceID, toks []token.Token) *BlockParser {
	return &BlockParser{source: source, toks: toks}
}

// ParseBlock lexes the full document, then compiles its block tree.
func ParseBlock(source meta.SourceID, text string) (*ast.Block, []error) {
	toks, lexErrs := lexer.Tokenize(source, text)
	p := NewBlockParser(source, toks)
	block := p.parseProduction()
	errs := append(lexErrs, p.errs...)
	if !p.atEnd() {
		tok := p.peek()
		errs = append(errs, rimuerr.UnexpectedToken(tok.Span, tok.Type.String(), nil))
	}
	return &block, errs
}

func (p *BlockParser) peek() token.Token {
	if p.pos >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[p.pos]
}

func (p *BlockParser) peekAt(offset int) token.Token {
	i := p.pos + offset
	if i >= len(p.toks) {
		return token.Token{Type: token.EOF}
	}
	return p.toks[i]
}

func (p *BlockParser) atEnd() bool { return p.pos >= len(p.toks) }

func (p *BlockParser) advance() token.Token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *BlockParser) check(t token.Type) bool { return p.peek().Type == t }

func (p *BlockParser) expect(t token.Type, expected string) (token.Token, bool) {
	if p.check(t) {
		return p.advance(), true
	}
	found := p.peek()
	p.errs = append(p.errs, rimuerr.UnexpectedToken(found.Span, found.Type.String(), []string{expected}))
	return found, false
}

// isKeyToken reports whether t may open an object entry as its key (a
// string or identifier); Rimu's reserved keywords (null/true/false and
// if/then/else/let/in) double as ordinary key text, which is how `$if`
// and `$let`'s own field names are accepted.
func isKeyToken(t token.Type) bool {
	switch t {
	case token.String, token.Identifier, token.Null, token.Boolean,
		token.If, token.Then, token.Else, token.Let, token.In:
		return true
	default:
		return false
	}
}

// parseProduction compiles one block body by trying, in order, the three
// productions: list, object, then a bare expression.
func (p *BlockParser) parseProduction() ast.Block {
	switch {
	case p.checkListStart():
		return p.parseList()
	case p.checkObjectStart():
		return p.parseObject()
	default:
		return p.parseExpressionLine()
	}
}

// checkListStart recognizes a list item opening at the current position:
// either a synthesized bullet Indent immediately followed by `-`, or (for
// a bare `-` item whose body is entirely on subsequent real-indented
// lines, so no bullet Indent was synthesized) a `-` directly followed by
// EndOfLine. A `-` directly followed by a value token with no preceding
// Indent is a unary-minus expression, not a list.
func (p *BlockParser) checkListStart() bool {
	i := 0
	for p.peekAt(i).Type == token.Indent {
		i++
	}
	if p.peekAt(i).Type != token.Minus {
		return false
	}
	if i == 0 {
		return p.peekAt(1).Type == token.EndOfLine
	}
	return true
}

func (p *BlockParser) checkObjectStart() bool {
	return isKeyToken(p.peek().Type) && p.peekAt(1).Type == token.Colon
}

// parseList compiles a sequence of `-`-introduced items.
func (p *BlockParser) parseList() ast.Block {
	start := p.peek().Span
	var items []ast.Block
	for p.checkListStart() {
		items = append(items, p.parseListItem())
	}
	span := start
	if len(items) > 0 {
		span = start.Union(items[len(items)-1].Span)
	}
	return ast.ListBlock(items, span)
}

// parseListItem compiles one list item: an optional synthesized bullet
// Indent, the `-` itself, and either an inline production (object
// continuation or scalar expression) or, for a bare `-`, a standard
// complex value on the following real-indented lines.
func (p *BlockParser) parseListItem() ast.Block {
	hadBulletIndent := p.check(token.Indent)
	if hadBulletIndent {
		p.advance()
	}
	minusTok, _ := p.expect(token.Minus, "-")

	var value ast.Block
	if p.check(token.EndOfLine) {
		p.advance()
		if _, ok := p.expect(token.Indent, "indent"); ok {
			value = p.parseProduction()
			p.expect(token.Dedent, "dedent")
		} else {
			value = ast.ExpressionBlock(ast.ErrorExpr(minusTok.Span), minusTok.Span)
		}
	} else {
		value = p.parseProduction()
	}

	if hadBulletIndent {
		p.expect(token.Dedent, "dedent")
	}
	return value
}

// parseObject compiles a sequence of `Key Colon Value` entries, then
// resolves `$`-operator reinterpretation.
func (p *BlockParser) parseObject() ast.Block {
	start := p.peek().Span
	var entries []ast.BlockEntry
	for p.checkObjectStart() {
		keyTok := p.advance()
		p.expect(token.Colon, ":")
		val := p.parseValuePosition()
		entries = append(entries, ast.BlockEntry{
			Key:   ast.ObjectKey{Name: keyTok.Text, Span: keyTok.Span},
			Value: val,
		})
	}
	span := start
	if len(entries) > 0 {
		span = start.Union(entries[len(entries)-1].Value.Span)
	}
	return p.resolveOperators(ast.ObjectBlock(entries, span))
}

// parseValuePosition compiles a value position: either a simple value
// (single expression line) or a complex value (nested block under an
// Indent/Dedent pair).
func (p *BlockParser) parseValuePosition() ast.Block {
	if p.check(token.EndOfLine) {
		p.advance()
		if _, ok := p.expect(token.Indent, "indent"); !ok {
			span := p.peek().Span
			return ast.ExpressionBlock(ast.ErrorExpr(span), span)
		}
		body := p.parseProduction()
		p.expect(token.Dedent, "dedent")
		return body
	}
	return p.parseExpressionLine()
}

// parseExpressionLine compiles a single embedded expression from the
// tokens up to (excluding) the next EndOfLine, then consumes it.
func (p *BlockParser) parseExpressionLine() ast.Block {
	startPos := p.pos
	for p.pos < len(p.toks) && p.toks[p.pos].Type != token.EndOfLine {
		p.pos++
	}
	slice := p.toks[startPos:p.pos]

	ep := NewExpressionParser(p.source, slice)
	expr := ep.Parse()
	p.errs = append(p.errs, ep.Errors()...)
	if ep.pos < len(slice) {
		tok := slice[ep.pos]
		p.errs = append(p.errs, rimuerr.UnexpectedToken(tok.Span, tok.Type.String(), nil))
	}

	if p.check(token.EndOfLine) {
		p.advance()
	}
	return ast.ExpressionBlock(expr, expr.Span)
}

// resolveOperators inspects a freshly-built object block for `$`-prefixed
// keys. A key starting with exactly one
// `$` reinterprets the whole object as a block operation; `$$` escapes to
// a literal `$`-prefixed ordinary key.
func (p *BlockParser) resolveOperators(block ast.Block) ast.Block {
	var opKey *ast.ObjectKey
	var opValue ast.Block
	opName := ""
	finalEntries := make([]ast.BlockEntry, 0, len(block.Entries))

	for _, e := range block.Entries {
		name := e.Key.Name
		switch {
		case len(name) >= 2 && name[0] == '$' && name[1] == '$':
			unescaped := ast.ObjectKey{Name: "$" + name[2:], Span: e.Key.Span}
			finalEntries = append(finalEntries, ast.BlockEntry{Key: unescaped, Value: e.Value})
		case len(name) >= 1 && name[0] == '$':
			if opKey != nil {
				p.errs = append(p.errs, rimuerr.UnexpectedOperatorField(e.Key.Span, opName, name))
				continue
			}
			k := e.Key
			opKey = &k
			opName = name
			opValue = e.Value
		default:
			finalEntries = append(finalEntries, e)
		}
	}

	if opKey == nil {
		return ast.ObjectBlock(finalEntries, block.Span)
	}

	switch opName {
	case "$if":
		return p.resolveIf(opValue, finalEntries, block.Span)
	case "$let":
		return p.resolveLet(*opKey, opValue, finalEntries, block.Span)
	default:
		p.errs = append(p.errs, rimuerr.UnknownBlockOperator(opKey.Span, opName))
		return ast.ObjectBlock(finalEntries, block.Span)
	}
}

func (p *BlockParser) resolveIf(cond ast.Block, fields []ast.BlockEntry, span meta.Span) ast.Block {
	var cons, alt *ast.Block
	for _, e := range fields {
		switch e.Key.Name {
		case "then":
			v := e.Value
			cons = &v
		case "else":
			v := e.Value
			alt = &v
		default:
			p.errs = append(p.errs, rimuerr.UnexpectedOperatorField(e.Key.Span, "$if", e.Key.Name))
		}
	}
	return ast.IfBlock(cond, cons, alt, span)
}

func (p *BlockParser) resolveLet(opKey ast.ObjectKey, vars ast.Block, fields []ast.BlockEntry, span meta.Span) ast.Block {
	var body *ast.Block
	for _, e := range fields {
		switch e.Key.Name {
		case "in":
			v := e.Value
			body = &v
		default:
			p.errs = append(p.errs, rimuerr.UnexpectedOperatorField(e.Key.Span, "$let", e.Key.Name))
		}
	}
	if body == nil {
		p.errs = append(p.errs, rimuerr.MissingOperatorField(opKey.Span, "$let", "in"))
		nullExpr := ast.NullExpr(span)
		fallback := ast.ExpressionBlock(nullExpr, span)
		body = &fallback
	}
	return ast.LetBlock(vars, *body, span)
}
