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

// Package token defines the lexical elements produced by the lexer.
package token

import (
	"fmt"

	"github.com/fernlang/fern/source"
)

// Token is a single lexical element of a source file.
//
// The zero value is the nil token, which has kind [Unrecognized] and a zero
// span.
type Token struct {
	Kind Kind
	source.Span
}

// IsZero returns whether this is the zero token.
func (t Token) IsZero() bool {
	return t.Kind == Unrecognized && t.Span.IsZero()
}

// Text returns the source text of this token.
func (t Token) Text() string {
	return t.Span.Text()
}

// Is returns whether this token has any of the given kinds.
func (t Token) Is(kinds ...Kind) bool {
	for _, kind := range kinds {
		if t.Kind == kind {
			return true
		}
	}
	return false
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d:%d", t.Kind, t.Text(), t.Start, t.End)
}
