package lexer

import (
	"fmt"
	"strings"

	"github.com/rimu-lang/rimu/internal/invariant"
	"github.com/rimu-lang/rimu/meta"
	"github.com/rimu-lang/rimu/token"
)

// DocumentError is raised by the document lexer when a line's leading
// whitespace is narrower than the current indentation level but matches
// no level on the indentation stack. A wider width is an ordinary indent.
type DocumentError struct {
	Span     meta.Span
	Found    int
	Expected []int
}

func (e *DocumentError) Error() string {
	return "inconsistent leading whitespace"
}

// Report converts the error into a renderable diagnostic, noting the
// indentation widths that would have been consistent.
func (e *DocumentError) Report() meta.ErrorReport {
	return meta.ErrorReport{
		Message: e.Error(),
		Primary: e.Span,
		Notes: []string{
			fmt.Sprintf("found a width of %d; expected one of %v", e.Found, e.Expected),
		},
	}
}

// documentScanner walks physical lines of source text, tracking an
// indentation stack, and emits Indent/Dedent/EndOfLine structural tokens
// around the line lexer's token stream.
type documentScanner struct {
	source      meta.SourceID
	text        string
	indentStack []int
	tokens      []token.Token
	errs        []error
}

// Tokenize runs the full two-layer lexer (document lexer delegating to the
// line lexer) over source text, returning a single flat token stream with
// Indent/Dedent/EndOfLine markers, plus any accumulated lexical errors.
// Tokenization runs in recovery mode: it keeps going past errors so that
// block compilation can proceed over a partial, best-effort token stream.
func Tokenize(source meta.SourceID, text string) ([]token.Token, []error) {
	d := &documentScanner{source: source, text: text, indentStack: []int{0}}
	d.run()
	return d.tokens, d.errs
}

func (d *documentScanner) top() int {
	return d.indentStack[len(d.indentStack)-1]
}

func (d *documentScanner) run() {
	offset := 0
	lines := splitLinesKeepEnds(d.text)

	for _, line := range lines {
		content, ending := splitLineEnding(line)
		lineStart := offset
		contentEnd := lineStart + len(content)
		endingEnd := contentEnd + len(ending)
		offset = endingEnd

		space, rest, restStart := leadingSpace(content)
		if rest == "" {
			// Blank (whitespace-only) line: no tokens, indentation unchanged.
			continue
		}

		d.emitDents(len(space), lineStart, lineStart+restStart)
		consumed := d.emitListIndents(rest, lineStart+restStart, restStart)

		toks, errs := TokenizeLine(d.source, rest[consumed:], lineStart+restStart+consumed)
		d.tokens = append(d.tokens, toks...)
		d.errs = append(d.errs, errs...)

		d.tokens = append(d.tokens, token.Token{
			Type: token.EndOfLine,
			Span: meta.NewSpan(d.source, contentEnd, endingEnd),
		})
	}

	for len(d.indentStack) > 1 {
		d.dedent(len(d.text))
	}
}

// emitDents pushes/pops the indentation stack for the width of a line's
// leading whitespace, emitting Indent/Dedent tokens as needed.
func (d *documentScanner) emitDents(width, spaceStart, spaceEnd int) {
	current := d.top()
	switch {
	case width == current:
		return
	case width > current:
		d.indentStack = append(d.indentStack, width)
		d.tokens = append(d.tokens, token.Token{
			Type: token.Indent,
			Span: meta.NewSpan(d.source, spaceEnd-(width-current), spaceEnd),
		})
	case contains(d.indentStack, width):
		for d.top() > width {
			d.dedent(spaceEnd)
		}
	default:
		d.errs = append(d.errs, &DocumentError{
			Span:     meta.NewSpan(d.source, spaceStart, spaceEnd),
			Found:    width,
			Expected: append([]int(nil), d.indentStack...),
		})
		// Recover by forcing this width to become a new valid level: pop
		// down to the nearest level below it, then adopt width as current.
		// Real Dedent/Indent tokens are emitted for the adjustment so the
		// dent stream stays balanced even on the error path.
		for len(d.indentStack) > 1 && d.top() > width {
			d.dedent(spaceEnd)
		}
		if d.top() != width {
			d.indentStack = append(d.indentStack, width)
			d.tokens = append(d.tokens, token.Token{
				Type: token.Indent,
				Span: meta.NewSpan(d.source, spaceStart, spaceEnd),
			})
		}
	}
}

func (d *documentScanner) dedent(at int) {
	invariant.Invariant(len(d.indentStack) > 1, "dedent must never pop the base indentation level")
	d.indentStack = d.indentStack[:len(d.indentStack)-1]
	d.tokens = append(d.tokens, token.Token{
		Type: token.Dedent,
		Span: meta.NewSpan(d.source, at, at),
	})
}

// emitListIndents pushes one level onto the real indentation stack for
// every leading `-` bullet that introduces a list item on this line: the
// bullet acts as a virtual nested scope, so a multi-entry object inside a
// list item parses as one block, with subsequent keys aligned to the
// first key's column. Pushing onto the same stack emitDents already maintains
// means a later line whose leading whitespace falls back to or below the
// bullet's column pops it with an ordinary Dedent; no separate
// unmatched-Indent bookkeeping is needed, and the Indent/Dedent stream
// stays balanced.
//
// Each consumed bullet emits its Indent followed by the bullet's own Minus
// token, so nested bullets (`- - x`) keep Indent/Minus pairs adjacent for
// the block compiler; the returned byte count tells the caller how much of
// rest the line lexer must no longer see. restStart is rest's absolute
// byte offset in the source; column is its offset within the line.
func (d *documentScanner) emitListIndents(rest string, restStart, column int) int {
	index := 0
	for index < len(rest) && rest[index] == '-' && isBulletDash(rest, index) {
		tail := rest[index+1:]
		nonBlank := firstNonSpace(tail)
		if nonBlank < 0 {
			break
		}
		end := index + 1 + nonBlank
		width := column + end
		d.indentStack = append(d.indentStack, width)
		d.tokens = append(d.tokens,
			token.Token{
				Type: token.Indent,
				Span: meta.NewSpan(d.source, restStart+index, restStart+end),
			},
			token.Token{
				Type: token.Minus,
				Text: "-",
				Span: meta.NewSpan(d.source, restStart+index, restStart+index+1),
			},
		)
		index = end
	}
	return index
}

// isBulletDash reports whether the `-` at rest[index] introduces a list
// item rather than a unary-minus expression: a bullet must either end the
// line or be followed by whitespace (`- 5`), so `-5` and `-x` tokenize as
// plain negation instead of a one-item list.
func isBulletDash(rest string, index int) bool {
	if index+1 >= len(rest) {
		return true
	}
	c := rest[index+1]
	return c == ' ' || c == '\t'
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func firstNonSpace(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return i
		}
	}
	return -1
}

// leadingSpace splits content into its leading run of spaces/tabs and the
// rest of the line. It returns ("", "", 0) when the line is entirely
// blank (no non-whitespace content).
func leadingSpace(content string) (space, rest string, restStart int) {
	i := 0
	for i < len(content) && (content[i] == ' ' || content[i] == '\t') {
		i++
	}
	if i == len(content) {
		return "", "", 0
	}
	return content[:i], content[i:], i
}

// splitLinesKeepEnds splits text into physical lines, each line retaining
// its trailing line-ending bytes so that spans stay faithful to byte
// offsets in the original text.
func splitLinesKeepEnds(text string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			lines = append(lines, text[start:i+1])
			start = i + 1
		}
	}
	if start < len(text) {
		lines = append(lines, text[start:])
	}
	return lines
}

// splitLineEnding splits a line (as produced by splitLinesKeepEnds) into
// its content and its line-ending bytes (\r\n, \n, or none for the last
// unterminated line).
func splitLineEnding(line string) (content, ending string) {
	if strings.HasSuffix(line, "\r\n") {
		return line[:len(line)-2], line[len(line)-2:]
	}
	if strings.HasSuffix(line, "\n") {
		return line[:len(line)-1], line[len(line)-1:]
	}
	return line, ""
}
