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

package ast

import (
	"fmt"
	"strings"

	"github.com/fernlang/fern/source"
)

// Extent carries a node's source span. It is embedded in every node and
// implements [source.Spanner] on its behalf.
type Extent struct {
	Range source.Span
}

// At wraps a span as an [Extent], for use in node literals.
func At(span source.Span) Extent {
	return Extent{Range: span}
}

// Span implements [source.Spanner].
func (e Extent) Span() source.Span {
	return e.Range
}

// KindName returns the name of a node's kind, e.g. "ProgramNode".
func KindName(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*ast.")
}
