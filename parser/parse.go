// Copyright 2020-2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package parser

import (
	"strconv"
	"strings"

	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/source"
	"github.com/fernlang/fern/token"
)

// treeParser consumes the token stream and builds the syntax tree.
//
// It never aborts: when the input deviates from the grammar it recovers
// either by synthesizing a placeholder for the construct it expected
// (insertion recovery) or by discarding tokens until a synchronizing token
// (skip recovery), and records a diagnostic either way.
type treeParser struct {
	parser *Parser
	tokens []token.Token
	pos    int

	// When positive, `do` is not a block opener: we are parsing a loop
	// predicate whose `do` belongs to the loop.
	noDo int
}

// peek returns the current token without consuming it.
//
// The token stream always ends in an EOF token, which peek returns forever
// once reached.
func (t *treeParser) peek() token.Token {
	return t.tokens[t.pos]
}

// peekAt returns the token n positions ahead of the current one.
func (t *treeParser) peekAt(n int) token.Token {
	if t.pos+n >= len(t.tokens) {
		return t.tokens[len(t.tokens)-1]
	}
	return t.tokens[t.pos+n]
}

// next consumes and returns the current token. The EOF token is never
// consumed.
func (t *treeParser) next() token.Token {
	tok := t.tokens[t.pos]
	if tok.Kind != token.EOF {
		t.pos++
	}
	return tok
}

// at returns whether the current token has any of the given kinds.
func (t *treeParser) at(kinds ...token.Kind) bool {
	return t.peek().Is(kinds...)
}

// accept consumes the current token if it has the given kind.
func (t *treeParser) accept(kind token.Kind) (token.Token, bool) {
	if t.at(kind) {
		return t.next(), true
	}
	return token.Token{}, false
}

// expect consumes a token of the given kind, or performs insertion
// recovery: it records a zero-width diagnostic at the current position and
// returns the zero token without consuming anything, so the caller can
// carry on as if the token had been there.
func (t *treeParser) expect(kind token.Kind, format string, args ...any) token.Token {
	if tok, ok := t.accept(kind); ok {
		return tok
	}
	t.parser.diagnostics.Errorf(t.here(), format, args...)
	return token.Token{}
}

// here returns the zero-width span at the current position.
func (t *treeParser) here() source.Span {
	return t.parser.file.Point(t.peek().Start)
}

// skipNewlines discards newline tokens, for positions where a line break
// continues the current construct.
func (t *treeParser) skipNewlines() {
	for t.at(token.Newline) {
		t.next()
	}
}

// skipTerminators discards newline and semicolon tokens.
func (t *treeParser) skipTerminators() {
	for t.at(token.Newline, token.Semi) {
		t.next()
	}
}

// recoverTo is skip recovery: it discards tokens until one matches stop or
// the input ends.
func (t *treeParser) recoverTo(stop func(token.Token) bool) {
	for !t.at(token.EOF) && !stop(t.peek()) {
		t.next()
	}
}

// expectedExpression is insertion recovery for a missing expression: it
// records the diagnostic at the current position and synthesizes a
// placeholder node there.
func (t *treeParser) expectedExpression() *ast.MissingNode {
	at := t.here()
	t.parser.diagnostics.Errorf(at, "Expected to be able to parse an expression.")
	return &ast.MissingNode{Extent: ast.At(at)}
}

// canStartExpression returns whether a token can begin an expression.
func canStartExpression(tok token.Token) bool {
	switch tok.Kind {
	case token.Ident, token.Constant,
		token.InstanceVariable, token.ClassVariable, token.GlobalVariable,
		token.Integer, token.Float, token.String, token.Symbol,
		token.KwSelf, token.KwNil, token.KwTrue, token.KwFalse,
		token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil,
		token.KwBegin, token.KwDef, token.KwClass, token.KwModule,
		token.KwDefined, token.KwNot,
		token.LParen, token.LBracket, token.LBrace,
		token.Minus, token.Plus, token.Bang, token.Tilde,
		token.ColonColon:
		return true
	}
	return false
}

// canStartArgument returns whether a token can begin a paren-less argument.
// The modifier keywords are excluded so that `return if x` reads as a
// modifier, not as an if-expression argument.
func canStartArgument(tok token.Token) bool {
	switch tok.Kind {
	case token.KwIf, token.KwUnless, token.KwWhile, token.KwUntil:
		return false
	}
	return canStartExpression(tok)
}

// integerValue reifies an integer literal token.
func (t *treeParser) integerValue(tok token.Token) int64 {
	text := strings.ReplaceAll(tok.Text(), "_", "")
	value, err := strconv.ParseInt(text, 0, 64)
	if err != nil {
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrRange {
			t.parser.diagnostics.Errorf(tok.Span, "Integer literal is out of range.")
		} else {
			t.parser.diagnostics.Errorf(tok.Span, "Invalid integer literal.")
		}
	}
	return value
}

// floatValue reifies a float literal token.
func (t *treeParser) floatValue(tok token.Token) float64 {
	text := strings.ReplaceAll(tok.Text(), "_", "")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// ErrRange clamps to an infinity, which is the value we want; only
		// malformed syntax is worth a diagnostic.
		if numErr, ok := err.(*strconv.NumError); ok && numErr.Err == strconv.ErrSyntax {
			t.parser.diagnostics.Errorf(tok.Span, "Invalid float literal.")
		}
	}
	return value
}

// stringValue resolves the escape sequences of a string literal token,
// including its delimiters.
func stringValue(text string) string {
	if len(text) < 2 {
		return ""
	}
	quote := text[0]
	body := text[1:]
	if body[len(body)-1] == quote {
		// An unterminated literal keeps everything after the open quote.
		body = body[:len(body)-1]
	}

	if !strings.ContainsRune(body, '\\') {
		return body
	}

	var buf strings.Builder
	for i := 0; i < len(body); i++ {
		b := body[i]
		if b != '\\' || i+1 == len(body) {
			buf.WriteByte(b)
			continue
		}
		i++
		esc := body[i]

		if quote == '\'' {
			// Single-quoted strings only escape the quote and the
			// backslash itself.
			if esc != '\'' && esc != '\\' {
				buf.WriteByte('\\')
			}
			buf.WriteByte(esc)
			continue
		}

		switch esc {
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		case 's':
			buf.WriteByte(' ')
		case 'a':
			buf.WriteByte('\a')
		case 'b':
			buf.WriteByte('\b')
		case 'e':
			buf.WriteByte(0x1b)
		case 'f':
			buf.WriteByte('\f')
		case 'v':
			buf.WriteByte('\v')
		case '0':
			buf.WriteByte(0)
		case 'x':
			var value byte
			var digits int
			for digits < 2 && i+1 < len(body) && isHexDigit(body[i+1]) {
				i++
				value = value<<4 | hexValue(body[i])
				digits++
			}
			buf.WriteByte(value)
		case 'u':
			var value rune
			var digits int
			for digits < 4 && i+1 < len(body) && isHexDigit(body[i+1]) {
				i++
				value = value<<4 | rune(hexValue(body[i]))
				digits++
			}
			buf.WriteRune(value)
		default:
			buf.WriteByte(esc)
		}
	}
	return buf.String()
}

func hexValue(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
