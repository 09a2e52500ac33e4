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

package encoding

import (
	"unicode"
	"unicode/utf8"
)

// UTF8 is the default encoding for a parse.
var UTF8 Encoding = utf8Encoding{}

type utf8Encoding struct{}

func (utf8Encoding) Name() string { return "utf-8" }
func (utf8Encoding) Width() int   { return 4 }

func (utf8Encoding) CharWidth(src []byte) int {
	r, size := utf8.DecodeRune(src)
	if r == utf8.RuneError && size < 2 {
		// DecodeRune reports failure as (RuneError, 0) for empty input and
		// (RuneError, 1) for an invalid byte sequence. RuneError with size
		// >= 2 is a literal U+FFFD in the source, which is valid.
		return 0
	}
	return size
}

func (e utf8Encoding) IsAlphaChar(src []byte) bool {
	r := e.decode(src)
	return r >= 0 && unicode.IsLetter(r)
}

func (e utf8Encoding) IsAlnumChar(src []byte) bool {
	r := e.decode(src)
	return r >= 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

func (e utf8Encoding) IsUpperChar(src []byte) bool {
	r := e.decode(src)
	return r >= 0 && unicode.IsUpper(r)
}

func (e utf8Encoding) decode(src []byte) rune {
	if e.CharWidth(src) == 0 {
		return -1
	}
	r, _ := utf8.DecodeRune(src)
	return r
}
