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

// Package report defines the diagnostic collector populated during a parse.
//
// A [Report] is an append-only ordered list: diagnostics are recorded in the
// order the parser detects them, which is usually but not always strict
// source order (lookahead can defer detection). The order is part of the
// observable behavior and is never re-sorted.
package report

import (
	"fmt"

	"github.com/fernlang/fern/source"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Error indicates input the parser had to recover from.
	Error Level = 1 + iota
	// Warning indicates something that probably should not be ignored.
	Warning
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return fmt.Sprintf("Level(%d)", int8(l))
	}
}

// Diagnostic is a single problem found during a parse.
type Diagnostic struct {
	Level   Level
	Message string

	// The source range the diagnostic refers to. A zero-width span marks a
	// position where something was expected but absent, rather than a
	// malformed range.
	source.Span
}

// String implements [fmt.Stringer].
func (d Diagnostic) String() string {
	loc := d.StartLoc()
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Path(), loc.Line, loc.Column, d.Level, d.Message)
}

// Report is an append-only ordered collection of diagnostics.
//
// The zero value is an empty report ready to use. A Report is not safe for
// concurrent use; each parse owns its own.
type Report struct {
	diagnostics []Diagnostic
}

// Errorf appends an error-level diagnostic at the given span.
func (r *Report) Errorf(span source.Span, format string, args ...any) {
	r.push(Error, span, format, args...)
}

// Warnf appends a warning-level diagnostic at the given span.
func (r *Report) Warnf(span source.Span, format string, args ...any) {
	r.push(Warning, span, format, args...)
}

func (r *Report) push(level Level, span source.Span, format string, args ...any) {
	r.diagnostics = append(r.diagnostics, Diagnostic{
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Span:    span,
	})
}

// Diagnostics returns the recorded diagnostics in detection order.
//
// The returned slice aliases the report's storage and must not be mutated.
func (r *Report) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Len returns the number of recorded diagnostics.
func (r *Report) Len() int {
	return len(r.diagnostics)
}

// HasErrors returns whether any error-level diagnostic was recorded.
func (r *Report) HasErrors() bool {
	for _, d := range r.diagnostics {
		if d.Level == Error {
			return true
		}
	}
	return false
}

// Reset drops all recorded diagnostics.
func (r *Report) Reset() {
	r.diagnostics = nil
}
