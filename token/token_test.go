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

package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fernlang/fern/source"
	"github.com/fernlang/fern/token"
)

func TestKindString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind token.Kind
		want string
	}{
		{token.Ident, "Ident"},
		{token.KwDefined, "defined?"},
		{token.KwEnd, "end"},
		{token.Compare, "<=>"},
		{token.PipePipeEq, "||="},
		{token.EOF, "EOF"},
		{token.Unrecognized, "Unrecognized"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestLookupKeyword(t *testing.T) {
	t.Parallel()

	assert.Equal(t, token.KwClass, token.LookupKeyword("class"))
	assert.Equal(t, token.KwDefined, token.LookupKeyword("defined?"))
	assert.Equal(t, token.Ident, token.LookupKeyword("classes"))
	assert.Equal(t, token.Ident, token.LookupKeyword("Class"))
	assert.Equal(t, token.Ident, token.LookupKeyword(""))
}

func TestKindPredicates(t *testing.T) {
	t.Parallel()

	assert.True(t, token.KwAnd.IsKeyword())
	assert.True(t, token.KwWhile.IsKeyword())
	assert.False(t, token.Ident.IsKeyword())
	assert.False(t, token.Plus.IsKeyword())

	assert.True(t, token.Newline.IsTerminator())
	assert.True(t, token.Semi.IsTerminator())
	assert.True(t, token.EOF.IsTerminator())
	assert.False(t, token.Comma.IsTerminator())
}

func TestToken(t *testing.T) {
	t.Parallel()

	f := source.NewFile("test.fern", []byte("class Foo"))
	tok := token.Token{Kind: token.KwClass, Span: f.Span(0, 5)}

	assert.Equal(t, "class", tok.Text())
	assert.True(t, tok.Is(token.KwClass, token.KwModule))
	assert.False(t, tok.Is(token.KwModule))
	assert.False(t, tok.IsZero())
	assert.True(t, token.Token{}.IsZero())
}
