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

// Package parser implements the Fern parsing engine: an encoding-aware lexer
// and an error-recovering recursive-descent tree builder.
//
// A [Parser] is the unit of parsing. It borrows the source bytes for the
// duration of a parse, runs the magic-comment encoding scan, and then drives
// the lexer token by token, collecting comments and diagnostics on the way.
// Parsing never fails: [Parser.Parse] always produces a tree rooted at an
// [ast.ProgramNode], with every deviation from the grammar recorded in the
// diagnostic list.
//
// Parsers are single-threaded and independent: a host may run any number of
// parses concurrently, one Parser per goroutine, with no synchronization.
package parser

import (
	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/encoding"
	"github.com/fernlang/fern/internal/interval"
	"github.com/fernlang/fern/report"
	"github.com/fernlang/fern/source"
)

// DecodeFunc is a host-supplied hook for resolving encoding names the engine
// does not recognize.
//
// It receives the name declared in the source's magic comment and the
// presumed character width (the byte length of the name). It returns the
// encoding to switch to, or nil to decline, in which case the engine records
// a diagnostic and keeps the default encoding.
type DecodeFunc func(p *Parser, name string, width int) encoding.Encoding

// CommentKind classifies a [Comment].
type CommentKind int8

const (
	// CommentInline is a `#` comment running to the end of its line.
	CommentInline CommentKind = iota
	// CommentEmbeddedDocument is an `=begin`/`=end` delimited block.
	CommentEmbeddedDocument
	// CommentOther covers the remaining comment-like regions, currently only
	// the `__END__` data section.
	CommentOther
)

// String implements [fmt.Stringer].
func (k CommentKind) String() string {
	switch k {
	case CommentInline:
		return "inline"
	case CommentEmbeddedDocument:
		return "embedded document"
	default:
		return "other"
	}
}

// Comment is a single comment encountered during a parse.
//
// Comments are never attached to tree nodes; they are collected in source
// order so that consumers can re-associate them with nodes by position.
type Comment struct {
	Kind CommentKind
	source.Span
}

// Option configures a [Parser].
type Option func(*Parser)

// WithPath sets the display path used in rendered diagnostics.
func WithPath(path string) Option {
	return func(p *Parser) { p.path = path }
}

// WithEncoding overrides the default encoding a parse starts in.
//
// A magic encoding comment in the source can still switch it.
func WithEncoding(enc encoding.Encoding) Option {
	return func(p *Parser) { p.enc = enc }
}

// Parser is the top-level parsing context.
//
// It owns the comment list, the diagnostic list, and the active encoding
// state for one parse. The tree returned by [Parser.Parse] is not owned by
// the Parser: it stays valid after [Parser.Release], for as long as the
// source bytes do.
type Parser struct {
	path string
	file *source.File

	enc        encoding.Encoding
	encChanged bool

	changedCallback func(*Parser)
	decodeCallback  DecodeFunc

	comments    []Comment
	diagnostics report.Report

	// Lazily built index over comments, for position queries.
	commentIndex *interval.Map[int, Comment]

	released bool
}

// New creates a Parser around src.
//
// src is borrowed: it must stay live and unmodified for as long as the
// Parser, or any tree produced by it, is in use. The default encoding is
// [encoding.UTF8].
func New(src []byte, opts ...Option) *Parser {
	p := &Parser{enc: encoding.UTF8}
	for _, opt := range opts {
		opt(p)
	}
	p.file = source.NewFile(p.path, src)
	return p
}

// File returns the source file being parsed.
func (p *Parser) File() *source.File {
	return p.file
}

// Encoding returns the active encoding.
func (p *Parser) Encoding() encoding.Encoding {
	return p.enc
}

// EncodingChanged returns whether a magic comment switched the encoding
// during the parse.
func (p *Parser) EncodingChanged() bool {
	return p.encChanged
}

// RegisterEncodingChangedCallback installs a hook invoked synchronously, on
// the parsing goroutine, when a magic comment switches the active encoding.
//
// The callback must not re-enter the Parser.
func (p *Parser) RegisterEncodingChangedCallback(fn func(*Parser)) {
	p.changedCallback = fn
}

// RegisterEncodingDecodeCallback installs a hook consulted when a magic
// comment names an encoding the engine does not know. See [DecodeFunc].
func (p *Parser) RegisterEncodingDecodeCallback(fn DecodeFunc) {
	p.decodeCallback = fn
}

// Comments returns the comments encountered during the parse, in source
// order. Reading it before [Parser.Parse] returns is undefined.
func (p *Parser) Comments() []Comment {
	return p.comments
}

// Diagnostics returns the diagnostics recorded during the parse, in
// detection order.
func (p *Parser) Diagnostics() []report.Diagnostic {
	return p.diagnostics.Diagnostics()
}

// Report returns the underlying diagnostic collector.
func (p *Parser) Report() *report.Report {
	return &p.diagnostics
}

// CommentAt returns the comment whose span contains the given byte offset.
//
// The index backing this query is built on first use, after a parse.
func (p *Parser) CommentAt(offset int) (Comment, bool) {
	if p.commentIndex == nil {
		p.commentIndex = new(interval.Map[int, Comment])
		for _, c := range p.comments {
			if c.Len() == 0 {
				continue
			}
			// Comment spans are half-open; the map's intervals are closed.
			p.commentIndex.Insert(c.Start, c.End-1, c)
		}
	}
	return p.commentIndex.Get(offset)
}

// Parse runs the parse and returns the root of the tree.
//
// Parse always returns a non-nil tree, for any input whatsoever; syntax
// problems surface in [Parser.Diagnostics], never as a failure of Parse
// itself. The comment and diagnostic lists are reset at the start of each
// call.
func (p *Parser) Parse() *ast.ProgramNode {
	if p.released {
		panic("fern/parser: Parse called on a released Parser")
	}

	p.comments = p.comments[:0]
	p.diagnostics.Reset()
	p.commentIndex = nil
	p.encChanged = false

	// The encoding scan runs before tokenization so that the lexer's very
	// first token is classified under the declared encoding.
	p.scanEncoding()

	l := &lexer{parser: p, src: p.file.Bytes()}
	tokens := l.lex()

	tp := &treeParser{parser: p, tokens: tokens}
	return tp.parseProgram()
}

// Release drops the Parser's comment list, diagnostic list, and encoding
// state. The Parser is unusable afterward; trees it produced are unaffected.
//
// Release must be called at most once.
func (p *Parser) Release() {
	if p.released {
		panic("fern/parser: double Release")
	}
	p.released = true
	p.comments = nil
	p.diagnostics.Reset()
	p.commentIndex = nil
	p.changedCallback = nil
	p.decodeCallback = nil
	p.enc = nil
	p.file = nil
}

func (p *Parser) pushComment(kind CommentKind, span source.Span) {
	p.comments = append(p.comments, Comment{Kind: kind, Span: span})
}
