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

package parser

import (
	"bytes"

	"github.com/fernlang/fern/encoding"
)

// scanEncoding looks for a magic encoding comment in the first one or two
// lines of the source and switches the active encoding accordingly.
//
// The switch happens at most once per parse, before tokenization begins.
// Encoding comments further down the file have no effect; the lexer captures
// them as ordinary comments.
func (p *Parser) scanEncoding() {
	src := p.file.Bytes()

	line := firstLine(src)
	if bytes.HasPrefix(line, []byte("#!")) {
		// A shebang pushes the magic comment to the second line.
		src = src[len(line):]
		if len(src) > 0 && src[0] == '\n' {
			src = src[1:]
		}
		line = firstLine(src)
	}

	name, ok := magicEncodingName(line)
	if !ok {
		return
	}

	if enc := encoding.Lookup(name); enc != nil {
		p.setEncoding(enc)
		return
	}

	if p.decodeCallback != nil {
		// The presumed width handed to the host is the byte length of the
		// declared name.
		if enc := p.decodeCallback(p, name, len(name)); enc != nil {
			p.enc = enc
			p.encChanged = true
			return
		}
	}

	p.diagnostics.Errorf(p.file.Point(0),
		"Could not understand the encoding specified on the source file.")
}

func (p *Parser) setEncoding(enc encoding.Encoding) {
	if enc.Name() == p.enc.Name() {
		return
	}

	p.enc = enc
	p.encChanged = true
	if p.changedCallback != nil {
		p.changedCallback(p)
	}
}

func firstLine(src []byte) []byte {
	if nl := bytes.IndexByte(src, '\n'); nl != -1 {
		return src[:nl]
	}
	return src
}

// magicEncodingName extracts the declared encoding name from a line like
//
//	# encoding: iso-8859-7
//	# -*- coding: utf-8 -*-
//
// Both the `encoding` and `coding` spellings are recognized, separated from
// the name by `:` or `=`. Matching is case-insensitive. The line must be a
// comment, with nothing but whitespace before the `#`; a trailing comment on
// a line of code is never magic.
func magicEncodingName(line []byte) (string, bool) {
	comment := bytes.TrimLeft(line, " \t")
	if len(comment) == 0 || comment[0] != '#' {
		return "", false
	}

	// Match case-insensitively, but report the name as written.
	idx := bytes.Index(bytes.ToLower(comment), []byte("coding"))
	if idx == -1 {
		return "", false
	}

	rest := comment[idx+len("coding"):]
	rest = bytes.TrimLeft(rest, " \t")
	if len(rest) == 0 || (rest[0] != ':' && rest[0] != '=') {
		return "", false
	}
	rest = bytes.TrimLeft(rest[1:], " \t")

	var i int
	for i < len(rest) && isEncodingNameByte(rest[i]) {
		i++
	}
	if i == 0 {
		return "", false
	}
	return string(rest[:i]), true
}

func isEncodingNameByte(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z', b >= 'A' && b <= 'Z', b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.':
		return true
	}
	return false
}
