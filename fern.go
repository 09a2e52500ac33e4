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

// Package fern is the one-shot entry point for parsing Fern source code.
//
// It wraps the [parser] package's Parser lifecycle into single calls: each
// of [Parse] and [ParseString] creates a parser, runs it, and hands back
// everything it produced. Hosts that need callbacks, parser reuse, or
// explicit release should use the parser package directly.
package fern

import (
	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/buffer"
	"github.com/fernlang/fern/encoding"
	"github.com/fernlang/fern/parser"
	"github.com/fernlang/fern/report"
)

// Result bundles the products of one parse.
//
// The tree and every span in it borrow the source bytes the parse was given;
// they stay valid for as long as those bytes do.
type Result struct {
	// The root of the syntax tree. Never nil: parsing is total, and errors
	// surface in Diagnostics instead.
	Program *ast.ProgramNode

	// The comments found in the source, in source order.
	Comments []parser.Comment

	// The problems found in the source, in detection order.
	Diagnostics []report.Diagnostic

	// The encoding the source was parsed under, after any magic encoding
	// comment has been applied.
	Encoding encoding.Encoding

	// Whether a magic comment switched the encoding away from the default.
	EncodingChanged bool
}

// Parse parses src as a Fern program.
//
// src is borrowed, not copied: it must stay live and unmodified for as long
// as the result is in use.
func Parse(src []byte, opts ...parser.Option) Result {
	p := parser.New(src, opts...)
	program := p.Parse()
	return Result{
		Program:         program,
		Comments:        p.Comments(),
		Diagnostics:     p.Diagnostics(),
		Encoding:        p.Encoding(),
		EncodingChanged: p.EncodingChanged(),
	}
}

// ParseString is [Parse] for string input.
func ParseString(src string, opts ...parser.Option) Result {
	return Parse([]byte(src), opts...)
}

// Dump renders the result's syntax tree as indented, human-readable text.
// See [ast.PrettyPrint].
func (r Result) Dump() string {
	buf := buffer.New()
	defer buf.Free()
	ast.PrettyPrint(buf, r.Program)
	return buf.String()
}
