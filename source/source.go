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

// Package source defines the source view abstraction that the rest of the
// parser is built on: an immutable byte range addressed by byte offsets.
//
// A [File] borrows the bytes it was created with; it never copies or mutates
// them. Every location produced by the lexer, the parser, the comment
// collector, and the diagnostic collector is a [Span] into a single File, so
// offsets remain valid for exactly as long as the underlying bytes do.
package source

import (
	"bytes"
	"fmt"
	"slices"
	"sync"
)

// File is a single source file being parsed.
//
// It contains additional book-keeping information for resolving span
// locations into editor coordinates.
//
// A nil *File behaves like an empty file with the path name "".
type File struct {
	path string
	src  []byte

	once sync.Once
	// A prefix sum of the line lengths of src. Given a byte offset, the line
	// containing that offset is recovered with a binary search on this list.
	//
	// Alternatively, this slice can be interpreted as the index after each
	// \n in the original file.
	lineIndex []int
}

// NewFile constructs a new source file around src.
//
// src is borrowed, not copied: it must not be mutated while the File, any
// Span into it, or any syntax tree built from it is in use.
func NewFile(path string, src []byte) *File {
	return &File{path: path, src: src}
}

// Path returns this file's filesystem path.
//
// It doesn't need to be a real path; it is only used for display.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Bytes returns this file's contents.
func (f *File) Bytes() []byte {
	if f == nil {
		return nil
	}
	return f.src
}

// Len returns the length of this file, in bytes.
func (f *File) Len() int {
	if f == nil {
		return 0
	}
	return len(f.src)
}

// Span is a shorthand for creating a new [Span].
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{f, start, end}
}

// Point returns the zero-width span at the given offset.
//
// Zero-width spans mark positions where something was expected but absent.
func (f *File) Point(offset int) Span {
	return f.Span(offset, offset)
}

// EOF returns the zero-width span at the end of the file.
func (f *File) EOF() Span {
	return f.Point(f.Len())
}

// Location resolves a byte offset into a line/column pair.
//
// This operation is O(log n) after the first call, which builds the line
// index.
func (f *File) Location(offset int) Location {
	if f == nil {
		return Location{Offset: offset, Line: 1, Column: 1}
	}

	lines := f.lines()

	// Find the greatest index such that lines[line] <= offset.
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: offset - lines[line] + 1,
	}
}

func (f *File) lines() []int {
	// Compute the prefix sum on-demand.
	f.once.Do(func() {
		f.lineIndex = append(f.lineIndex, 0)

		// We add 1 to the return value of IndexByte because we want to work
		// with the index immediately *after* the newline byte.
		var next int
		src := f.src
		for {
			newline := bytes.IndexByte(src, '\n') + 1
			if newline == 0 {
				break
			}

			src = src[newline:]
			next += newline
			f.lineIndex = append(f.lineIndex, next)
		}
	})
	return f.lineIndex
}

// Spanner is any type with a [Span].
type Spanner interface {
	// Should return the zero [Span] to indicate that it does not contribute
	// span information.
	Span() Span
}

// Span is a byte range within a [File].
type Span struct {
	// The file this span refers to.
	*File

	// The start and end byte offsets for this span. The range is half-open:
	// [Start, End). Start == End is a zero-width point span.
	Start, End int
}

// IsZero returns whether or not this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// IsPoint returns whether this span is a zero-width point.
func (s Span) IsPoint() bool {
	return s.Start == s.End
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Bytes returns the bytes corresponding to this span.
func (s Span) Bytes() []byte {
	if s.IsZero() {
		return nil
	}
	return s.File.Bytes()[s.Start:s.End]
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return string(s.Bytes())
}

// Contains returns whether this span wholly contains another span.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// StartLoc returns the start location for this span.
func (s Span) StartLoc() Location {
	return s.File.Location(s.Start)
}

// EndLoc returns the end location for this span.
func (s Span) EndLoc() Location {
	return s.File.Location(s.End)
}

// Span implements [Spanner].
func (s Span) Span() Span {
	return s
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	start := s.StartLoc()
	return fmt.Sprintf("%q:%d:%d[%d:%d]", s.Path(), start.Line, start.Column, s.Start, s.End)
}

// Join joins a collection of spans, returning the smallest span that
// contains all of them.
//
// Zero spans among spans are ignored. If every span in spans is zero,
// returns the zero span.
func Join(spans ...Spanner) Span {
	var joined Span
	for _, spanner := range spans {
		if spanner == nil {
			continue
		}

		span := spanner.Span()
		if span.IsZero() {
			continue
		}

		if joined.IsZero() {
			joined = span
			continue
		}

		joined.Start = min(joined.Start, span.Start)
		joined.End = max(joined.End, span.End)
	}
	return joined
}

// Location is a user-displayable location within a source file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed. The column is
	// measured in bytes, independent of the active encoding's character
	// width.
	//
	// Because these are 1-indexed, a zero Line can be used as a sentinel.
	Line, Column int
}
