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

package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/encoding"
	"github.com/fernlang/fern/parser"
)

func TestParseNeverFails(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		";;;\n\n;;",
		"class Foo;",
		"def",
		"end end end",
		"1 +",
		"((((",
		"\"unterminated",
		"@ @@ $",
		"\xff\xfe\xfd",
		"if if if",
		"x = = = 3",
		"} ] )",
	}
	for _, src := range inputs {
		p := parser.New([]byte(src))
		tree := p.Parse()
		require.NotNil(t, tree, "parsing %q", src)
		require.NotNil(t, tree.Statements, "parsing %q", src)
		assert.Equal(t, 0, tree.Span().Start, "parsing %q", src)
		assert.Equal(t, len(src), tree.Span().End, "parsing %q", src)
	}
}

func TestParseUnclosedClass(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("class Foo;"))
	tree := p.Parse()

	require.Len(t, tree.Statements.Body, 1)
	class, ok := tree.Statements.Body[0].(*ast.ClassNode)
	require.True(t, ok)
	name, ok := class.Name.(*ast.ConstantReadNode)
	require.True(t, ok)
	assert.Equal(t, "Foo", name.Name)
	require.Len(t, class.Body.Body, 1)
	assert.IsType(t, &ast.MissingNode{}, class.Body.Body[0])

	diags := p.Diagnostics()
	require.Len(t, diags, 2)

	// The missing expression is diagnosed first, at the zero-width point
	// where the class body ran out of input.
	assert.Equal(t, "Expected to be able to parse an expression.", diags[0].Message)
	assert.Equal(t, 10, diags[0].Start)
	assert.Equal(t, 10, diags[0].End)

	assert.Equal(t, "Expected an `end` to close the `class` statement.", diags[1].Message)
	assert.Equal(t, 10, diags[1].Start)
	assert.Equal(t, 10, diags[1].End)
}

func TestParseComments(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("# Meow!"))
	tree := p.Parse()

	assert.Empty(t, tree.Statements.Body)
	assert.Empty(t, p.Diagnostics())

	require.Len(t, p.Comments(), 1)
	c := p.Comments()[0]
	assert.Equal(t, parser.CommentInline, c.Kind)
	assert.Equal(t, 0, c.Start)
	assert.Equal(t, 7, c.End)
}

func TestCommentAt(t *testing.T) {
	t.Parallel()

	src := "x = 1 # one\ny = 2 # two\n"
	p := parser.New([]byte(src))
	p.Parse()
	require.Len(t, p.Comments(), 2)

	c, ok := p.CommentAt(8)
	require.True(t, ok)
	assert.Equal(t, "# one", c.Text())

	c, ok = p.CommentAt(18)
	require.True(t, ok)
	assert.Equal(t, "# two", c.Text())

	_, ok = p.CommentAt(0)
	assert.False(t, ok)
	_, ok = p.CommentAt(len(src))
	assert.False(t, ok)
}

func TestMagicEncodingComment(t *testing.T) {
	t.Parallel()

	var changed int
	p := parser.New([]byte("# encoding: ascii\nx = 1\n"))
	p.RegisterEncodingChangedCallback(func(p *parser.Parser) {
		changed++
		assert.Equal(t, "ascii", p.Encoding().Name())
	})
	p.Parse()

	assert.True(t, p.EncodingChanged())
	assert.Equal(t, "ascii", p.Encoding().Name())
	assert.Equal(t, 1, changed)
	assert.Empty(t, p.Diagnostics())
}

func TestMagicEncodingCommentForms(t *testing.T) {
	t.Parallel()

	tests := []struct {
		src     string
		name    string
		changed bool
	}{
		{"# encoding: iso-8859-7\n", "iso-8859-7", true},
		{"# -*- coding: binary -*-\n", "binary", true},
		{"# Coding = ascii\n", "ascii", true},
		{"  # encoding: ascii\n", "ascii", true},
		{"#!/usr/bin/env fern\n# encoding: ascii\n", "ascii", true},
		// Redundant UTF-8 declarations are not a change.
		{"# encoding: utf-8\n", "utf-8", false},
		// Only the first line (or the one after a shebang) is magic.
		{"x = 1\n# encoding: ascii\n", "utf-8", false},
		// A trailing comment on a line of code is never magic.
		{"x = 1 # encoding: ascii\n", "utf-8", false},
		{"", "utf-8", false},
	}
	for _, tt := range tests {
		p := parser.New([]byte(tt.src))
		p.Parse()
		assert.Equal(t, tt.name, p.Encoding().Name(), "parsing %q", tt.src)
		assert.Equal(t, tt.changed, p.EncodingChanged(), "parsing %q", tt.src)
	}
}

func TestEncodingDecodeCallback(t *testing.T) {
	t.Parallel()

	var calls int
	p := parser.New([]byte("# encoding: meow\n"))
	p.RegisterEncodingDecodeCallback(func(_ *parser.Parser, name string, width int) encoding.Encoding {
		calls++
		assert.Equal(t, "meow", name)
		assert.Equal(t, 4, width)
		return encoding.Binary
	})
	p.Parse()

	assert.Equal(t, 1, calls)
	assert.True(t, p.EncodingChanged())
	assert.Equal(t, "binary", p.Encoding().Name())
	assert.Empty(t, p.Diagnostics())
}

func TestEncodingDecodeDeclined(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("# encoding: meow\n"))
	p.RegisterEncodingDecodeCallback(func(*parser.Parser, string, int) encoding.Encoding {
		return nil
	})
	p.Parse()

	assert.False(t, p.EncodingChanged())
	assert.Equal(t, "utf-8", p.Encoding().Name())

	diags := p.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "Could not understand the encoding specified on the source file.",
		diags[0].Message)
	assert.Equal(t, 0, diags[0].Start)
	assert.Equal(t, 0, diags[0].End)
}

func TestUnknownEncoding(t *testing.T) {
	t.Parallel()

	// Without a decode callback, an unknown name is immediately an error.
	p := parser.New([]byte("# encoding: meow\n"))
	p.Parse()

	require.Len(t, p.Diagnostics(), 1)
	assert.Equal(t, "Could not understand the encoding specified on the source file.",
		p.Diagnostics()[0].Message)
}

func TestWithEncoding(t *testing.T) {
	t.Parallel()

	// 0xE1 is a letter in ISO-8859-7, so it lexes as an identifier.
	src := []byte{0xE1, ' ', '=', ' ', '1'}
	p := parser.New(src, parser.WithEncoding(encoding.ISO8859_7))
	tree := p.Parse()

	assert.Empty(t, p.Diagnostics())
	require.Len(t, tree.Statements.Body, 1)
	write, ok := tree.Statements.Body[0].(*ast.LocalVariableWriteNode)
	require.True(t, ok)
	assert.Equal(t, "\xE1", write.Name)

	// The same bytes are invalid under the UTF-8 default.
	p = parser.New(src)
	p.Parse()
	assert.NotEmpty(t, p.Diagnostics())
}

func TestWithPath(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("class Foo;"), parser.WithPath("scratch.fern"))
	p.Parse()
	require.NotEmpty(t, p.Diagnostics())
	assert.Equal(t, "scratch.fern:1:11: error: Expected to be able to parse an expression.",
		p.Diagnostics()[0].String())
}

func TestParseResets(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("# comment\nclass Foo;"))
	p.Parse()
	comments, diags := len(p.Comments()), len(p.Diagnostics())
	require.NotZero(t, comments)
	require.NotZero(t, diags)

	// A second parse of the same source starts from a clean slate.
	p.Parse()
	assert.Len(t, p.Comments(), comments)
	assert.Len(t, p.Diagnostics(), diags)
}

func TestRelease(t *testing.T) {
	t.Parallel()

	p := parser.New([]byte("x = [1, 2]"))
	tree := p.Parse()
	p.Release()

	// The tree is unaffected by the release.
	require.Len(t, tree.Statements.Body, 1)
	write, ok := tree.Statements.Body[0].(*ast.LocalVariableWriteNode)
	require.True(t, ok)
	assert.Equal(t, "x", write.Name)
	assert.Equal(t, "[1, 2]", write.Value.Span().Text())

	assert.Panics(t, func() { p.Parse() })
	assert.Panics(t, func() { p.Release() })
}
