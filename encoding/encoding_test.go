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

package encoding_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fernlang/fern/encoding"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want encoding.Encoding
	}{
		{"ascii", encoding.ASCII},
		{"US-ASCII", encoding.ASCII},
		{"ANSI_X3.4-1968", encoding.ASCII},
		{"utf-8", encoding.UTF8},
		{"UTF-8", encoding.UTF8},
		{"utf8", encoding.UTF8},
		{"binary", encoding.Binary},
		{"ASCII-8BIT", encoding.Binary},
		{"iso-8859-1", encoding.ISO8859_1},
		{"Latin-1", encoding.ISO8859_1},
		{"ISO-8859-7", encoding.ISO8859_7},
		{"meow", nil},
		{"", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, encoding.Lookup(tt.name), "Lookup(%q)", tt.name)
	}
}

func TestASCII(t *testing.T) {
	t.Parallel()

	enc := encoding.ASCII
	assert.Equal(t, 1, enc.Width())
	assert.Equal(t, 1, enc.CharWidth([]byte("a")))
	assert.True(t, enc.IsAlphaChar([]byte("a")))
	assert.True(t, enc.IsAlnumChar([]byte("7")))
	assert.False(t, enc.IsAlphaChar([]byte("7")))
	assert.True(t, enc.IsUpperChar([]byte("Z")))
	assert.False(t, enc.IsUpperChar([]byte("z")))

	// The 7-bit restriction: high bytes are not characters at all.
	assert.Equal(t, 0, enc.CharWidth([]byte{0xE1}))
	assert.False(t, enc.IsAlphaChar([]byte{0xE1}))
	assert.Equal(t, 0, enc.CharWidth(nil))
}

func TestBinary(t *testing.T) {
	t.Parallel()

	enc := encoding.Binary
	// Every byte is a valid character, but only ASCII letters classify.
	assert.Equal(t, 1, enc.CharWidth([]byte{0xE1}))
	assert.False(t, enc.IsAlphaChar([]byte{0xE1}))
	assert.True(t, enc.IsAlphaChar([]byte("x")))
}

func TestUTF8(t *testing.T) {
	t.Parallel()

	enc := encoding.UTF8
	assert.Equal(t, 4, enc.Width())

	assert.Equal(t, 1, enc.CharWidth([]byte("a")))
	assert.Equal(t, 2, enc.CharWidth([]byte("é")))
	assert.Equal(t, 3, enc.CharWidth([]byte("語")))
	assert.Equal(t, 4, enc.CharWidth([]byte("😀")))
	// A stray continuation byte is not a character.
	assert.Equal(t, 0, enc.CharWidth([]byte{0x80}))
	// A truncated multi-byte sequence is not a character.
	assert.Equal(t, 0, enc.CharWidth([]byte{0xE8, 0xAA}))

	assert.True(t, enc.IsAlphaChar([]byte("é")))
	assert.True(t, enc.IsAlnumChar([]byte("é")))
	assert.False(t, enc.IsUpperChar([]byte("é")))
	assert.True(t, enc.IsUpperChar([]byte("É")))
	assert.False(t, enc.IsAlphaChar([]byte("3")))
	assert.True(t, enc.IsAlnumChar([]byte("3")))
}

func TestISO8859_7(t *testing.T) {
	t.Parallel()

	enc := encoding.ISO8859_7
	require.Equal(t, "iso-8859-7", enc.Name())

	// 0xC1 is capital alpha, 0xE1 is lowercase alpha.
	assert.True(t, enc.IsAlphaChar([]byte{0xC1}))
	assert.True(t, enc.IsUpperChar([]byte{0xC1}))
	assert.True(t, enc.IsAlphaChar([]byte{0xE1}))
	assert.False(t, enc.IsUpperChar([]byte{0xE1}))

	// 0xD2 is unassigned and 0xFF is unassigned.
	assert.False(t, enc.IsAlphaChar([]byte{0xD2}))
	assert.False(t, enc.IsAlphaChar([]byte{0xFF}))

	// The scattered accented capitals in the Bx row.
	for _, b := range []byte{0xB6, 0xB8, 0xB9, 0xBA, 0xBC, 0xBE, 0xBF} {
		assert.True(t, enc.IsUpperChar([]byte{b}), "byte %#x", b)
	}
	// 0xB7 is the middle dot, not a letter.
	assert.False(t, enc.IsAlphaChar([]byte{0xB7}))

	// 0xC0 (accented iota) is lowercase despite sitting before the capital
	// block.
	assert.True(t, enc.IsAlphaChar([]byte{0xC0}))
	assert.False(t, enc.IsUpperChar([]byte{0xC0}))
}

func TestISO8859_1(t *testing.T) {
	t.Parallel()

	enc := encoding.ISO8859_1
	assert.True(t, enc.IsUpperChar([]byte{0xC0}))
	assert.True(t, enc.IsAlphaChar([]byte{0xE0}))
	assert.False(t, enc.IsUpperChar([]byte{0xE0}))
	// Multiplication and division signs sit inside the letter blocks but are
	// not letters.
	assert.False(t, enc.IsAlphaChar([]byte{0xD7}))
	assert.False(t, enc.IsAlphaChar([]byte{0xF7}))
}
