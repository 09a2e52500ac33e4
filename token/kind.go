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

package token

// Kind identifies the lexical class of a [Token].
type Kind uint8

const (
	// Unrecognized is the kind of the zero token, and of tokens minted from
	// byte sequences that are invalid in the active encoding.
	Unrecognized Kind = iota
	// EOF is the virtual token at the end of input.
	EOF

	// Newline is a line break in a position where it terminates a statement.
	Newline
	Semi

	Ident
	Constant
	InstanceVariable
	ClassVariable
	GlobalVariable

	Integer
	Float
	String
	Symbol

	// Keywords.
	KwAnd
	KwBegin
	KwBreak
	KwClass
	KwDef
	KwDefined
	KwDo
	KwElse
	KwElsif
	KwEnd
	KwEnsure
	KwFalse
	KwIf
	KwModule
	KwNext
	KwNil
	KwNot
	KwOr
	KwRescue
	KwReturn
	KwSelf
	KwThen
	KwTrue
	KwUnless
	KwUntil
	KwWhile

	// Punctuation and operators.
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Comma
	Dot
	AmpDot
	DotDot
	DotDotDot
	Colon
	ColonColon
	Arrow // =>

	Eq
	EqEq
	EqEqEq
	NotEq
	Match // =~
	Compare
	Lt
	LtEq
	Gt
	GtEq
	LtLt
	GtGt
	Plus
	Minus
	Star
	StarStar
	Slash
	Percent
	Amp
	Pipe
	Caret
	Tilde
	Bang
	AmpAmp
	PipePipe

	// Compound assignment operators, e.g. +=.
	PlusEq
	MinusEq
	StarEq
	StarStarEq
	SlashEq
	PercentEq
	AmpEq
	PipeEq
	CaretEq
	LtLtEq
	GtGtEq
	AmpAmpEq
	PipePipeEq

	kindCount
)

var kindNames = [kindCount]string{
	Unrecognized:     "Unrecognized",
	EOF:              "EOF",
	Newline:          "Newline",
	Semi:             "Semi",
	Ident:            "Ident",
	Constant:         "Constant",
	InstanceVariable: "InstanceVariable",
	ClassVariable:    "ClassVariable",
	GlobalVariable:   "GlobalVariable",
	Integer:          "Integer",
	Float:            "Float",
	String:           "String",
	Symbol:           "Symbol",
	KwAnd:            "and",
	KwBegin:          "begin",
	KwBreak:          "break",
	KwClass:          "class",
	KwDef:            "def",
	KwDefined:        "defined?",
	KwDo:             "do",
	KwElse:           "else",
	KwElsif:          "elsif",
	KwEnd:            "end",
	KwEnsure:         "ensure",
	KwFalse:          "false",
	KwIf:             "if",
	KwModule:         "module",
	KwNext:           "next",
	KwNil:            "nil",
	KwNot:            "not",
	KwOr:             "or",
	KwRescue:         "rescue",
	KwReturn:         "return",
	KwSelf:           "self",
	KwThen:           "then",
	KwTrue:           "true",
	KwUnless:         "unless",
	KwUntil:          "until",
	KwWhile:          "while",
	LParen:           "(",
	RParen:           ")",
	LBracket:         "[",
	RBracket:         "]",
	LBrace:           "{",
	RBrace:           "}",
	Comma:            ",",
	Dot:              ".",
	AmpDot:           "&.",
	DotDot:           "..",
	DotDotDot:        "...",
	Colon:            ":",
	ColonColon:       "::",
	Arrow:            "=>",
	Eq:               "=",
	EqEq:             "==",
	EqEqEq:           "===",
	NotEq:            "!=",
	Match:            "=~",
	Compare:          "<=>",
	Lt:               "<",
	LtEq:             "<=",
	Gt:               ">",
	GtEq:             ">=",
	LtLt:             "<<",
	GtGt:             ">>",
	Plus:             "+",
	Minus:            "-",
	Star:             "*",
	StarStar:         "**",
	Slash:            "/",
	Percent:          "%",
	Amp:              "&",
	Pipe:             "|",
	Caret:            "^",
	Tilde:            "~",
	Bang:             "!",
	AmpAmp:           "&&",
	PipePipe:         "||",
	PlusEq:           "+=",
	MinusEq:          "-=",
	StarEq:           "*=",
	StarStarEq:       "**=",
	SlashEq:          "/=",
	PercentEq:        "%=",
	AmpEq:            "&=",
	PipeEq:           "|=",
	CaretEq:          "^=",
	LtLtEq:           "<<=",
	GtGtEq:           ">>=",
	AmpAmpEq:         "&&=",
	PipePipeEq:       "||=",
}

// String implements [fmt.Stringer].
//
// For keywords and operators this is the token's spelling; for everything
// else it is the name of the lexical class.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Unrecognized"
	}
	return kindNames[k]
}

// IsKeyword returns whether this kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k >= KwAnd && k <= KwWhile
}

// IsTerminator returns whether this kind ends a statement.
func (k Kind) IsTerminator() bool {
	return k == Newline || k == Semi || k == EOF
}

var keywords = map[string]Kind{
	"and":      KwAnd,
	"begin":    KwBegin,
	"break":    KwBreak,
	"class":    KwClass,
	"def":      KwDef,
	"defined?": KwDefined,
	"do":       KwDo,
	"else":     KwElse,
	"elsif":    KwElsif,
	"end":      KwEnd,
	"ensure":   KwEnsure,
	"false":    KwFalse,
	"if":       KwIf,
	"module":   KwModule,
	"next":     KwNext,
	"nil":      KwNil,
	"not":      KwNot,
	"or":       KwOr,
	"rescue":   KwRescue,
	"return":   KwReturn,
	"self":     KwSelf,
	"then":     KwThen,
	"true":     KwTrue,
	"unless":   KwUnless,
	"until":    KwUntil,
	"while":    KwWhile,
}

// LookupKeyword maps an identifier spelling to its keyword kind.
//
// Returns [Ident] if the spelling is not a reserved word.
func LookupKeyword(spelling string) Kind {
	if kind, ok := keywords[spelling]; ok {
		return kind
	}
	return Ident
}
