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

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/rivo/uniseg"

	"github.com/fernlang/fern/source"
)

// Renderer renders diagnostics as annotated source snippets.
//
// The output is meant for humans, not machines:
//
//	error: Expected to be able to parse an expression.
//	 --> scratch.fern:1:11
//	  |
//	1 | class Foo;
//	  |           ^
type Renderer struct {
	// Styles applied around the severity word and the underline. Both may be
	// left zero for monochrome output.
	StyleError, StyleWarning func(string) string
}

// Render writes a rendered diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	style := func(s string) string { return s }
	switch {
	case d.Level == Error && r.StyleError != nil:
		style = r.StyleError
	case d.Level == Warning && r.StyleWarning != nil:
		style = r.StyleWarning
	}

	start := d.StartLoc()
	if _, err := fmt.Fprintf(w, "%s: %s\n --> %s:%d:%d\n",
		style(d.Level.String()), d.Message, d.Path(), start.Line, start.Column); err != nil {
		return err
	}

	if d.Span.IsZero() {
		return nil
	}

	line := sourceLine(d, start)
	gutter := len(fmt.Sprint(start.Line))

	// Underline from the span's start to its end, clamped to the first line
	// of the span; point spans get a single caret.
	prefix := line[:min(start.Column-1, len(line))]
	marked := line[len(prefix):]
	if width := d.Len(); width > 0 && width < len(marked) {
		marked = marked[:width]
	}
	underline := strings.Repeat("^", max(1, uniseg.StringWidth(expandTabs(marked))))

	_, err := fmt.Fprintf(w, "%*s |\n%d | %s\n%*s | %s%s\n",
		gutter, "", start.Line, expandTabs(line),
		gutter, "",
		strings.Repeat(" ", uniseg.StringWidth(expandTabs(prefix))),
		style(underline))
	return err
}

// RenderAll renders every diagnostic in the report, separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, rep *Report) error {
	for i, d := range rep.Diagnostics() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

func sourceLine(d Diagnostic, start source.Location) string {
	src := d.File.Bytes()
	lo := start.Offset - (start.Column - 1)
	hi := lo
	for hi < len(src) && src[hi] != '\n' {
		hi++
	}
	return string(src[lo:hi])
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
