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

// Built-in single-byte encodings.
var (
	// ASCII is the 7-bit US-ASCII encoding. Bytes above 0x7F are invalid.
	ASCII Encoding = &ascii{singleByte{name: "ascii", table: &asciiTable}}

	// Binary is the ASCII-8BIT encoding: every byte is a valid character,
	// but only the ASCII range is alphanumeric.
	Binary Encoding = &singleByte{name: "binary", table: &asciiTable}

	// ISO8859_1 is the Latin-1 encoding.
	ISO8859_1 Encoding = &singleByte{name: "iso-8859-1", table: &iso8859_1Table}

	// ISO8859_7 is the Latin/Greek encoding.
	ISO8859_7 Encoding = &singleByte{name: "iso-8859-7", table: &iso8859_7Table}
)

// ascii restricts the table-driven classifier to the 7-bit range: unlike
// Binary, a byte above 0x7F is not a valid character at all.
type ascii struct {
	singleByte
}

func (e *ascii) CharWidth(src []byte) int {
	if len(src) == 0 || src[0] >= 0x80 {
		return 0
	}
	return 1
}

var (
	asciiTable     [256]uint8
	iso8859_1Table [256]uint8
	iso8859_7Table [256]uint8
)

func init() {
	classify := func(table *[256]uint8, lo, hi int, bits uint8) {
		for b := lo; b <= hi; b++ {
			table[b] |= bits
		}
	}

	classify(&asciiTable, '0', '9', alphanumeric)
	classify(&asciiTable, 'A', 'Z', alphabetic|alphanumeric|uppercase)
	classify(&asciiTable, 'a', 'z', alphabetic|alphanumeric)

	// Latin-1 is ASCII plus the accented letter blocks; 0xD7 and 0xF7 are
	// the multiplication and division signs, not letters.
	iso8859_1Table = asciiTable
	classify(&iso8859_1Table, 0xC0, 0xDE, alphabetic|alphanumeric|uppercase)
	classify(&iso8859_1Table, 0xDF, 0xFF, alphabetic|alphanumeric)
	iso8859_1Table[0xAA] = alphabetic | alphanumeric
	iso8859_1Table[0xB5] = alphabetic | alphanumeric
	iso8859_1Table[0xBA] = alphabetic | alphanumeric
	iso8859_1Table[0xD7] = 0
	iso8859_1Table[0xF7] = 0

	// Latin/Greek. The accented capitals are scattered through the Bx row,
	// 0xD2 is unassigned, and the lowercase block runs 0xDC through 0xFE.
	iso8859_7Table = asciiTable
	for _, b := range []int{0xB6, 0xB8, 0xB9, 0xBA, 0xBC, 0xBE, 0xBF} {
		iso8859_7Table[b] = alphabetic | alphanumeric | uppercase
	}
	iso8859_7Table[0xC0] = alphabetic | alphanumeric
	classify(&iso8859_7Table, 0xC1, 0xD1, alphabetic|alphanumeric|uppercase)
	classify(&iso8859_7Table, 0xD3, 0xDB, alphabetic|alphanumeric|uppercase)
	classify(&iso8859_7Table, 0xDC, 0xFE, alphabetic|alphanumeric)
}
