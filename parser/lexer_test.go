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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/token"
)

// lexAll tokenizes src under a fresh parser and returns the tokens along with
// the parser, for tests that inspect comments or diagnostics.
func lexAll(t *testing.T, src string) ([]token.Token, *Parser) {
	t.Helper()
	p := New([]byte(src))
	l := &lexer{parser: p, src: p.file.Bytes()}
	return l.lex(), p
}

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestLexKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src  string
		want []token.Kind
	}{
		{"", []token.Kind{token.EOF}},
		{"   \t\r", []token.Kind{token.EOF}},
		{
			"class Foo;",
			[]token.Kind{token.KwClass, token.Constant, token.Semi, token.EOF},
		},
		{
			"x = 1 + 2.5",
			[]token.Kind{
				token.Ident, token.Eq, token.Integer, token.Plus, token.Float,
				token.EOF,
			},
		},
		{
			"a&.b ||= c <=> d",
			[]token.Kind{
				token.Ident, token.AmpDot, token.Ident, token.PipePipeEq,
				token.Ident, token.Compare, token.Ident, token.EOF,
			},
		},
		{
			"defined?(x)",
			[]token.Kind{token.KwDefined, token.LParen, token.Ident, token.RParen, token.EOF},
		},
		{
			"@x @@y $z $!",
			[]token.Kind{
				token.InstanceVariable, token.ClassVariable,
				token.GlobalVariable, token.GlobalVariable, token.EOF,
			},
		},
		{
			":sym :set= a ? b",
			[]token.Kind{
				token.Symbol, token.Symbol, token.Ident, token.Unrecognized,
				token.Ident, token.EOF,
			},
		},
		{
			"empty? ready!",
			[]token.Kind{token.Ident, token.Ident, token.EOF},
		},
		{
			// `!=` after an identifier is an operator, not a `!` method name
			// followed by `=`.
			"a != b",
			[]token.Kind{token.Ident, token.NotEq, token.Ident, token.EOF},
		},
		{
			"1..2 1...2 1.5",
			[]token.Kind{
				token.Integer, token.DotDot, token.Integer,
				token.Integer, token.DotDotDot, token.Integer,
				token.Float, token.EOF,
			},
		},
		{
			"0x1F 0b1010 0o777 1_000 6.02e23 1e-3",
			[]token.Kind{
				token.Integer, token.Integer, token.Integer, token.Integer,
				token.Float, token.Float, token.EOF,
			},
		},
		{
			// `1.succ` is a method call on an integer, not a float.
			"1.succ",
			[]token.Kind{token.Integer, token.Dot, token.Ident, token.EOF},
		},
		{
			`"double" 'single'`,
			[]token.Kind{token.String, token.String, token.EOF},
		},
		{
			"Foo::Bar.baz",
			[]token.Kind{
				token.Constant, token.ColonColon, token.Constant, token.Dot,
				token.Ident, token.EOF,
			},
		},
		{
			"a\nb",
			[]token.Kind{token.Ident, token.Newline, token.Ident, token.EOF},
		},
		{
			// An escaped newline continues the line.
			"a \\\nb",
			[]token.Kind{token.Ident, token.Ident, token.EOF},
		},
	}
	for _, tt := range tests {
		tokens, _ := lexAll(t, tt.src)
		assert.Equal(t, tt.want, kinds(tokens), "lexing %q", tt.src)
	}
}

func TestLexSpans(t *testing.T) {
	t.Parallel()

	tokens, _ := lexAll(t, "class Foo;")
	require.Len(t, tokens, 4)

	spans := []struct{ start, end int }{{0, 5}, {6, 9}, {9, 10}, {10, 10}}
	for i, want := range spans {
		assert.Equal(t, want.start, tokens[i].Span.Start, "token %d", i)
		assert.Equal(t, want.end, tokens[i].Span.End, "token %d", i)
	}
	assert.Equal(t, "Foo", tokens[1].Text())
}

func TestLexNewlineInParens(t *testing.T) {
	t.Parallel()

	// Newlines inside parentheses and brackets are line continuations.
	tokens, _ := lexAll(t, "f(\n1,\n2\n)\n[\n3\n]")
	assert.Equal(t, []token.Kind{
		token.Ident, token.LParen, token.Integer, token.Comma, token.Integer,
		token.RParen, token.Newline,
		token.LBracket, token.Integer, token.RBracket, token.EOF,
	}, kinds(tokens))
}

func TestLexComments(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, "# Meow!")
	assert.Equal(t, []token.Kind{token.EOF}, kinds(tokens))
	require.Len(t, p.Comments(), 1)

	c := p.Comments()[0]
	assert.Equal(t, CommentInline, c.Kind)
	assert.Equal(t, 0, c.Start)
	assert.Equal(t, 7, c.End)
	assert.Equal(t, "# Meow!", c.Text())
}

func TestLexCommentExcludesNewline(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, "a # trailing\nb")
	assert.Equal(t, []token.Kind{
		token.Ident, token.Newline, token.Ident, token.EOF,
	}, kinds(tokens))
	require.Len(t, p.Comments(), 1)
	assert.Equal(t, "# trailing", p.Comments()[0].Text())
}

func TestLexEmbeddedDocument(t *testing.T) {
	t.Parallel()

	src := "=begin\ndocs\n=end\nx"
	tokens, p := lexAll(t, src)
	assert.Equal(t, []token.Kind{token.Newline, token.Ident, token.EOF}, kinds(tokens))

	require.Len(t, p.Comments(), 1)
	c := p.Comments()[0]
	assert.Equal(t, CommentEmbeddedDocument, c.Kind)
	assert.Equal(t, "=begin\ndocs\n=end", c.Text())
}

func TestLexEmbeddedDocumentUnterminated(t *testing.T) {
	t.Parallel()

	_, p := lexAll(t, "=begin\nnever closed")
	require.Len(t, p.Comments(), 1)
	require.Equal(t, 1, p.Report().Len())
	assert.Equal(t, "Unterminated embedded document.", p.Diagnostics()[0].Message)
}

func TestLexEndData(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, "x\n__END__\nanything at all")
	assert.Equal(t, []token.Kind{token.Ident, token.Newline, token.EOF}, kinds(tokens))

	require.Len(t, p.Comments(), 1)
	c := p.Comments()[0]
	assert.Equal(t, CommentOther, c.Kind)
	assert.Equal(t, "__END__\nanything at all", c.Text())
}

func TestLexEndDataMidLine(t *testing.T) {
	t.Parallel()

	// __END__ only terminates the file at the start of a line.
	tokens, _ := lexAll(t, "x = __END__")
	assert.Equal(t, []token.Kind{
		token.Ident, token.Eq, token.Ident, token.EOF,
	}, kinds(tokens))
}

func TestLexStringUnterminated(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, `"never closed`)
	assert.Equal(t, []token.Kind{token.String, token.EOF}, kinds(tokens))
	require.Equal(t, 1, p.Report().Len())
	assert.Equal(t, "Expected a closing delimiter for the string literal.",
		p.Diagnostics()[0].Message)
}

func TestLexStringEscapedQuote(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, `"a\"b"`)
	assert.Equal(t, []token.Kind{token.String, token.EOF}, kinds(tokens))
	assert.Zero(t, p.Report().Len())
	assert.Equal(t, `"a\"b"`, tokens[0].Text())
}

func TestLexNumberTrailingUnderscore(t *testing.T) {
	t.Parallel()

	_, p := lexAll(t, "1_000_")
	require.Equal(t, 1, p.Report().Len())
	assert.Equal(t, "Number literal cannot end with a `_`.", p.Diagnostics()[0].Message)
}

func TestLexIncompleteVariables(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src, message string
	}{
		{"@", "Incomplete instance variable."},
		{"@1", "Incomplete instance variable."},
		{"@@", "Incomplete class variable."},
		{"$", "Incomplete global variable."},
	}
	for _, tt := range tests {
		tokens, p := lexAll(t, tt.src)
		assert.Equal(t, token.Unrecognized, tokens[0].Kind, "lexing %q", tt.src)
		require.Equal(t, 1, p.Report().Len(), "lexing %q", tt.src)
		assert.Equal(t, tt.message, p.Diagnostics()[0].Message, "lexing %q", tt.src)
	}
}

func TestLexInvalidBytes(t *testing.T) {
	t.Parallel()

	// 0xFF can never begin a UTF-8 character. The whole invalid run becomes a
	// single token.
	tokens, p := lexAll(t, "x \xff\xfe y")
	assert.Equal(t, []token.Kind{
		token.Ident, token.Unrecognized, token.Ident, token.EOF,
	}, kinds(tokens))
	require.Equal(t, 1, p.Report().Len())
	assert.Equal(t, "Invalid byte sequence in utf-8.", p.Diagnostics()[0].Message)
}

func TestLexUnexpectedCharacter(t *testing.T) {
	t.Parallel()

	tokens, p := lexAll(t, "x ` y")
	assert.Equal(t, []token.Kind{
		token.Ident, token.Unrecognized, token.Ident, token.EOF,
	}, kinds(tokens))
	require.Equal(t, 1, p.Report().Len())
	assert.Equal(t, "Unexpected character \"`\".", p.Diagnostics()[0].Message)
}

func TestLexKeywordsNotPrefixes(t *testing.T) {
	t.Parallel()

	tokens, _ := lexAll(t, "end endless classes")
	assert.Equal(t, []token.Kind{
		token.KwEnd, token.Ident, token.Ident, token.EOF,
	}, kinds(tokens))
}
