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

package fern_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern"
	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/parser"
)

func TestParse(t *testing.T) {
	t.Parallel()

	result := fern.ParseString("x = 1 # one\n")
	require.NotNil(t, result.Program)
	assert.Empty(t, result.Diagnostics)
	require.Len(t, result.Comments, 1)
	assert.Equal(t, "# one", result.Comments[0].Text())
	assert.Equal(t, "utf-8", result.Encoding.Name())
	assert.False(t, result.EncodingChanged)

	require.Len(t, result.Program.Statements.Body, 1)
	write, ok := result.Program.Statements.Body[0].(*ast.LocalVariableWriteNode)
	require.True(t, ok)
	assert.Equal(t, "x", write.Name)
}

func TestParseWithOptions(t *testing.T) {
	t.Parallel()

	result := fern.ParseString("class Foo;", parser.WithPath("scratch.fern"))
	require.Len(t, result.Diagnostics, 2)
	assert.Equal(t, "scratch.fern:1:11: error: Expected to be able to parse an expression.",
		result.Diagnostics[0].String())
}

func TestParseEncodingComment(t *testing.T) {
	t.Parallel()

	result := fern.ParseString("# encoding: iso-8859-7\n")
	assert.True(t, result.EncodingChanged)
	assert.Equal(t, "iso-8859-7", result.Encoding.Name())
}

func TestDump(t *testing.T) {
	t.Parallel()

	dump := fern.ParseString("42").Dump()
	assert.True(t, strings.HasPrefix(dump, "ProgramNode\n"))
	assert.Contains(t, dump, "value: 42")
}
