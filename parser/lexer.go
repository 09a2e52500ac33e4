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
	"bytes"
	"fmt"

	"github.com/fernlang/fern/encoding"
	"github.com/fernlang/fern/source"
	"github.com/fernlang/fern/token"
)

// lexer tokenizes a source file under the parser's active encoding.
//
// The lexer never fails: byte sequences that are invalid in the active
// encoding become [token.Unrecognized] tokens with a diagnostic attached,
// and the tree builder decides how to recover. Comments do not become
// tokens; they go straight to the parser's comment list.
type lexer struct {
	parser *Parser
	src    []byte

	cursor int

	// Newlines inside parentheses and brackets are line continuations, not
	// statement terminators.
	parenDepth int

	tokens []token.Token
}

func (l *lexer) lex() []token.Token {
	defer func() {
		if panicked := recover(); panicked != nil {
			panic(fmt.Sprintf("panic while lexing at offset %d: %v", l.cursor, panicked))
		}
	}()

	for l.cursor < len(l.src) {
		start := l.cursor
		b := l.src[l.cursor]

		switch {
		case b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v':
			l.cursor++

		case b == '\\' && l.peekByteAt(1) == '\n':
			// Explicit line continuation.
			l.cursor += 2

		case b == '\n':
			l.cursor++
			if l.parenDepth == 0 {
				l.push(token.Newline, start)
			}

		case b == '#':
			l.lexInlineComment()

		case b == '=' && l.atLineStart() && l.hasWordAt("=begin"):
			l.lexEmbeddedDocument()

		case b == '_' && l.atLineStart() && l.hasWordAt("__END__"):
			// Everything from __END__ on is data, not source.
			l.parser.pushComment(CommentOther, l.parser.file.Span(start, len(l.src)))
			l.cursor = len(l.src)

		case b >= '0' && b <= '9':
			l.lexNumber()

		case b == '"' || b == '\'':
			l.lexString()

		case b == '@':
			l.lexInstanceVariable()

		case b == '$':
			l.lexGlobalVariable()

		case b == '_' || l.enc().IsAlphaChar(l.rest()):
			l.lexIdentifier()

		default:
			l.lexOperator()
		}
	}

	l.tokens = append(l.tokens, token.Token{
		Kind: token.EOF,
		Span: l.parser.file.EOF(),
	})
	return l.tokens
}

func (l *lexer) push(kind token.Kind, start int) token.Token {
	tok := token.Token{Kind: kind, Span: l.parser.file.Span(start, l.cursor)}
	l.tokens = append(l.tokens, tok)
	return tok
}

func (l *lexer) enc() encoding.Encoding {
	return l.parser.enc
}

func (l *lexer) rest() []byte {
	return l.src[l.cursor:]
}

func (l *lexer) peekByteAt(n int) byte {
	if l.cursor+n >= len(l.src) {
		return 0
	}
	return l.src[l.cursor+n]
}

func (l *lexer) atLineStart() bool {
	return l.cursor == 0 || l.src[l.cursor-1] == '\n'
}

// hasWordAt reports whether the given word appears at the cursor, followed
// by whitespace or end of input.
func (l *lexer) hasWordAt(word string) bool {
	if !bytes.HasPrefix(l.rest(), []byte(word)) {
		return false
	}
	next := l.peekByteAt(len(word))
	return next == 0 || next == ' ' || next == '\t' || next == '\r' || next == '\n'
}

func (l *lexer) errorf(span source.Span, format string, args ...any) {
	l.parser.diagnostics.Errorf(span, format, args...)
}

// lexInlineComment consumes a # comment through the end of its line. The
// trailing newline is not part of the comment.
func (l *lexer) lexInlineComment() {
	start := l.cursor
	if nl := bytes.IndexByte(l.rest(), '\n'); nl != -1 {
		l.cursor += nl
	} else {
		l.cursor = len(l.src)
	}
	l.parser.pushComment(CommentInline, l.parser.file.Span(start, l.cursor))
}

// lexEmbeddedDocument consumes an =begin/=end block. The cursor is at the
// `=` of `=begin`, at the start of a line.
func (l *lexer) lexEmbeddedDocument() {
	start := l.cursor

	for {
		nl := bytes.IndexByte(l.rest(), '\n')
		if nl == -1 {
			l.cursor = len(l.src)
			l.errorf(l.parser.file.Span(start, start+len("=begin")),
				"Unterminated embedded document.")
			break
		}
		l.cursor += nl + 1

		if l.hasWordAt("=end") {
			// The =end line belongs to the document, up to but not
			// including its newline.
			if nl := bytes.IndexByte(l.rest(), '\n'); nl != -1 {
				l.cursor += nl
			} else {
				l.cursor = len(l.src)
			}
			break
		}
	}

	l.parser.pushComment(CommentEmbeddedDocument, l.parser.file.Span(start, l.cursor))
}

// lexIdentifier consumes an identifier, constant, or keyword. The cursor is
// at a valid identifier start character.
func (l *lexer) lexIdentifier() {
	start := l.cursor
	upper := l.enc().IsUpperChar(l.rest())
	l.cursor += max(1, l.enc().CharWidth(l.rest()))

	for l.cursor < len(l.src) {
		if l.src[l.cursor] == '_' {
			l.cursor++
			continue
		}
		if l.enc().IsAlnumChar(l.rest()) {
			l.cursor += l.enc().CharWidth(l.rest())
			continue
		}
		break
	}

	// Method names may end in ? or !, but not ?= or != (those are operator
	// boundaries).
	if b := l.peekByteAt(0); (b == '?' || b == '!') && l.peekByteAt(1) != '=' {
		l.cursor++
	}

	text := string(l.src[start:l.cursor])
	kind := token.LookupKeyword(text)
	if kind == token.Ident && upper {
		kind = token.Constant
	}
	l.push(kind, start)
}

// lexInstanceVariable consumes an @ivar or @@cvar.
func (l *lexer) lexInstanceVariable() {
	start := l.cursor
	l.cursor++ // @
	kind := token.InstanceVariable
	what := "instance"
	if l.peekByteAt(0) == '@' {
		l.cursor++
		kind = token.ClassVariable
		what = "class"
	}

	if l.peekByteAt(0) != '_' && !l.enc().IsAlphaChar(l.rest()) {
		tok := l.push(token.Unrecognized, start)
		l.errorf(tok.Span, "Incomplete %s variable.", what)
		return
	}

	l.consumeIdentifierChars()
	l.push(kind, start)
}

// lexGlobalVariable consumes a $gvar, including the punctuation globals like
// `$!`.
func (l *lexer) lexGlobalVariable() {
	start := l.cursor
	l.cursor++ // $

	switch {
	case l.peekByteAt(0) == '_' || l.enc().IsAlphaChar(l.rest()):
		l.consumeIdentifierChars()
	case l.cursor < len(l.src) && !isSpaceByte(l.src[l.cursor]):
		l.cursor += max(1, l.enc().CharWidth(l.rest()))
	default:
		tok := l.push(token.Unrecognized, start)
		l.errorf(tok.Span, "Incomplete global variable.")
		return
	}
	l.push(token.GlobalVariable, start)
}

func (l *lexer) consumeIdentifierChars() {
	for l.cursor < len(l.src) {
		if l.src[l.cursor] == '_' {
			l.cursor++
			continue
		}
		if l.enc().IsAlnumChar(l.rest()) {
			l.cursor += l.enc().CharWidth(l.rest())
			continue
		}
		break
	}
}

// lexNumber consumes an integer or float literal. Validation is left to the
// tree builder, which reifies the value with strconv; the lexer only decides
// the extent and whether the literal is integral.
func (l *lexer) lexNumber() {
	start := l.cursor

	if l.src[l.cursor] == '0' && l.cursor+1 < len(l.src) {
		switch l.peekByteAt(1) {
		case 'x', 'X':
			l.cursor += 2
			l.takeDigits(isHexDigit)
			l.push(token.Integer, start)
			return
		case 'b', 'B':
			l.cursor += 2
			l.takeDigits(func(b byte) bool { return b == '0' || b == '1' })
			l.push(token.Integer, start)
			return
		case 'o', 'O':
			l.cursor += 2
			l.takeDigits(isOctalDigit)
			l.push(token.Integer, start)
			return
		}
	}

	l.takeDigits(isDecimalDigit)
	kind := token.Integer

	// A . only makes this a float if a digit follows; `1..2` is a range and
	// `1.succ` is a call.
	if l.peekByteAt(0) == '.' && isDecimalDigit(l.peekByteAt(1)) {
		l.cursor++
		l.takeDigits(isDecimalDigit)
		kind = token.Float
	}

	if b := l.peekByteAt(0); b == 'e' || b == 'E' {
		after := l.peekByteAt(1)
		sign := after == '+' || after == '-'
		digit := isDecimalDigit(after) || (sign && isDecimalDigit(l.peekByteAt(2)))
		if digit {
			l.cursor += 2
			if sign {
				l.cursor++
			}
			l.takeDigits(isDecimalDigit)
			kind = token.Float
		}
	}

	tok := l.push(kind, start)
	if l.src[l.cursor-1] == '_' {
		l.errorf(tok.Span, "Number literal cannot end with a `_`.")
	}
}

func (l *lexer) takeDigits(valid func(byte) bool) {
	for l.cursor < len(l.src) {
		b := l.src[l.cursor]
		if b != '_' && !valid(b) {
			break
		}
		l.cursor++
	}
}

// lexString consumes a single- or double-quoted string literal, including
// both quotes. Escape resolution happens in the tree builder.
func (l *lexer) lexString() {
	start := l.cursor
	quote := l.src[l.cursor]
	l.cursor++

	for l.cursor < len(l.src) {
		b := l.src[l.cursor]
		if b == '\\' && l.cursor+1 < len(l.src) {
			l.cursor += 2
			continue
		}
		l.cursor++
		if b == quote {
			l.push(token.String, start)
			return
		}
	}

	tok := l.push(token.String, start)
	l.errorf(tok.Span, "Expected a closing delimiter for the string literal.")
}

// lexSymbol consumes a :name symbol. The cursor is at the colon, and the
// character after it is known to start an identifier.
func (l *lexer) lexSymbol() {
	start := l.cursor
	l.cursor++ // :
	l.consumeIdentifierChars()
	if b := l.peekByteAt(0); b == '?' || b == '!' || b == '=' {
		l.cursor++
	}
	l.push(token.Symbol, start)
}

// lexOperator consumes punctuation and operators with maximal munch, and is
// the fallthrough for bytes nothing else claims.
func (l *lexer) lexOperator() {
	start := l.cursor
	b := l.src[l.cursor]

	two := [2]byte{b, l.peekByteAt(1)}
	three := [3]byte{b, l.peekByteAt(1), l.peekByteAt(2)}

	kind := token.Unrecognized
	width := 1

	switch string(three[:]) {
	case "<=>":
		kind, width = token.Compare, 3
	case "===":
		kind, width = token.EqEqEq, 3
	case "**=":
		kind, width = token.StarStarEq, 3
	case "<<=":
		kind, width = token.LtLtEq, 3
	case ">>=":
		kind, width = token.GtGtEq, 3
	case "&&=":
		kind, width = token.AmpAmpEq, 3
	case "||=":
		kind, width = token.PipePipeEq, 3
	case "...":
		kind, width = token.DotDotDot, 3
	}

	if kind == token.Unrecognized {
		switch string(two[:]) {
		case "==":
			kind, width = token.EqEq, 2
		case "=~":
			kind, width = token.Match, 2
		case "=>":
			kind, width = token.Arrow, 2
		case "!=":
			kind, width = token.NotEq, 2
		case "<=":
			kind, width = token.LtEq, 2
		case ">=":
			kind, width = token.GtEq, 2
		case "<<":
			kind, width = token.LtLt, 2
		case ">>":
			kind, width = token.GtGt, 2
		case "&&":
			kind, width = token.AmpAmp, 2
		case "||":
			kind, width = token.PipePipe, 2
		case "&.":
			kind, width = token.AmpDot, 2
		case "..":
			kind, width = token.DotDot, 2
		case "::":
			kind, width = token.ColonColon, 2
		case "**":
			kind, width = token.StarStar, 2
		case "+=":
			kind, width = token.PlusEq, 2
		case "-=":
			kind, width = token.MinusEq, 2
		case "*=":
			kind, width = token.StarEq, 2
		case "/=":
			kind, width = token.SlashEq, 2
		case "%=":
			kind, width = token.PercentEq, 2
		case "&=":
			kind, width = token.AmpEq, 2
		case "|=":
			kind, width = token.PipeEq, 2
		case "^=":
			kind, width = token.CaretEq, 2
		}
	}

	if kind == token.Unrecognized {
		switch b {
		case '+':
			kind = token.Plus
		case '-':
			kind = token.Minus
		case '*':
			kind = token.Star
		case '/':
			kind = token.Slash
		case '%':
			kind = token.Percent
		case '=':
			kind = token.Eq
		case '<':
			kind = token.Lt
		case '>':
			kind = token.Gt
		case '&':
			kind = token.Amp
		case '|':
			kind = token.Pipe
		case '^':
			kind = token.Caret
		case '~':
			kind = token.Tilde
		case '!':
			kind = token.Bang
		case '.':
			kind = token.Dot
		case ',':
			kind = token.Comma
		case ';':
			kind = token.Semi
		case '(':
			kind = token.LParen
			l.parenDepth++
		case ')':
			kind = token.RParen
			l.parenDepth = max(0, l.parenDepth-1)
		case '[':
			kind = token.LBracket
			l.parenDepth++
		case ']':
			kind = token.RBracket
			l.parenDepth = max(0, l.parenDepth-1)
		case '{':
			kind = token.LBrace
		case '}':
			kind = token.RBrace
		case ':':
			if l.peekByteAt(1) == '_' || l.enc().IsAlphaChar(l.src[l.cursor+1:]) {
				l.lexSymbol()
				return
			}
			kind = token.Colon
		}
	}

	if kind != token.Unrecognized {
		l.cursor += width
		l.push(kind, start)
		return
	}

	// Nothing claimed this byte. Either it is not a valid character in the
	// active encoding, or it is a character with no meaning in the grammar.
	if w := l.enc().CharWidth(l.rest()); w == 0 {
		for l.cursor < len(l.src) && l.enc().CharWidth(l.rest()) == 0 {
			l.cursor++
		}
		tok := l.push(token.Unrecognized, start)
		l.errorf(tok.Span, "Invalid byte sequence in %s.", l.enc().Name())
	} else {
		l.cursor += w
		tok := l.push(token.Unrecognized, start)
		l.errorf(tok.Span, "Unexpected character %q.", tok.Text())
	}
}

func isSpaceByte(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n' || b == '\f' || b == '\v'
}

func isDecimalDigit(b byte) bool { return b >= '0' && b <= '9' }
func isOctalDigit(b byte) bool   { return b >= '0' && b <= '7' }
func isHexDigit(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
