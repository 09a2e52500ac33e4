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

// Package encoding defines the character classification strategies the lexer
// uses to interpret raw source bytes.
//
// Exactly one [Encoding] is active per parse. It starts out as [UTF8] and may
// change at most once, when the lexer finds a magic encoding comment at the
// top of the file. Hosts can supply encodings the parser does not know about
// by registering a decode callback on the parser.
//
// Identifier legality is a property of the active encoding: the lexer asks
// the encoding whether the bytes at the cursor form an alphabetic,
// alphanumeric, or uppercase character, and how wide that character is, and
// never assumes a fixed alphabet of its own.
package encoding

import "strings"

// Encoding is a named character classification strategy over raw bytes.
//
// All predicates take the byte slice beginning at the character in question
// and running to the end of the source; implementations examine at most
// [Encoding.Width] bytes of it.
type Encoding interface {
	// Name returns the canonical name of this encoding, e.g. "utf-8".
	Name() string

	// Width returns the maximum width of a character, in bytes. Single-byte
	// encodings return 1.
	Width() int

	// CharWidth returns the width in bytes of the character beginning at
	// src[0], or 0 if src does not begin with a valid character.
	CharWidth(src []byte) int

	// IsAlphaChar returns whether src begins with an alphabetic character.
	IsAlphaChar(src []byte) bool

	// IsAlnumChar returns whether src begins with an alphanumeric character.
	IsAlnumChar(src []byte) bool

	// IsUpperChar returns whether src begins with an uppercase character.
	IsUpperChar(src []byte) bool
}

// Classification bits for the single-byte encoding tables. Each table entry
// describes one of the 256 byte values of the encoding.
const (
	alphabetic   uint8 = 1 << 0
	alphanumeric uint8 = 1 << 1
	uppercase    uint8 = 1 << 2
)

// singleByte is an [Encoding] driven entirely by a 256-entry classification
// table.
type singleByte struct {
	name  string
	table *[256]uint8
}

func (e *singleByte) Name() string { return e.name }
func (e *singleByte) Width() int   { return 1 }

func (e *singleByte) CharWidth(src []byte) int {
	if len(src) == 0 {
		return 0
	}
	return 1
}

func (e *singleByte) IsAlphaChar(src []byte) bool {
	return len(src) > 0 && e.table[src[0]]&alphabetic != 0
}

func (e *singleByte) IsAlnumChar(src []byte) bool {
	return len(src) > 0 && e.table[src[0]]&alphanumeric != 0
}

func (e *singleByte) IsUpperChar(src []byte) bool {
	return len(src) > 0 && e.table[src[0]]&uppercase != 0
}

// Lookup finds a built-in encoding by name.
//
// Matching is case-insensitive and recognizes the common aliases for each
// encoding ("ASCII", "US-ASCII", "BINARY", and so on). Returns nil if the
// name matches no built-in encoding.
func Lookup(name string) Encoding {
	switch strings.ToLower(name) {
	case "ascii", "us-ascii", "ansi_x3.4-1968":
		return ASCII
	case "utf-8", "utf8":
		return UTF8
	case "binary", "ascii-8bit":
		return Binary
	case "iso-8859-1", "iso8859-1", "latin-1", "latin1":
		return ISO8859_1
	case "iso-8859-7", "iso8859-7":
		return ISO8859_7
	}
	return nil
}
