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

// Package ast defines the syntax tree produced by the parser.
//
// The node set is closed: every node kind is a struct in this package, and
// consumers dispatch on kind with a type switch. Every node embeds an
// [Extent] covering its full extent, and a node's span always contains the
// spans of all of its children.
//
// Trees are exclusively owned. Nodes never point back at their parent, and a
// tree never shares nodes with another tree, so a completed tree is fully
// self-contained: it remains valid regardless of what happens to the parser
// that built it, for as long as the underlying source bytes are live.
package ast

import "github.com/fernlang/fern/source"

// Node is implemented by every syntax tree node.
type Node interface {
	source.Spanner
	isNode()
}

// ProgramNode is the root of every syntax tree, even for empty or fully
// invalid input.
type ProgramNode struct {
	Extent
	Statements *StatementsNode
}

// StatementsNode is an ordered sequence of statements, such as a program
// body, a method body, or a branch of a conditional.
type StatementsNode struct {
	Extent
	Body []Node
}

// MissingNode is the placeholder substituted where the parser expected a
// construct it could not find. The span is the zero-width point at which the
// construct was expected.
type MissingNode struct {
	Extent
}

// ClassNode is a class declaration: `class Name < Superclass ... end`.
type ClassNode struct {
	Extent
	// The class path; a *ConstantReadNode, *ConstantPathNode, or
	// *MissingNode.
	Name Node
	// The superclass expression, or nil if the declaration has none.
	Superclass Node
	Body       *StatementsNode
}

// ModuleNode is a module declaration: `module Name ... end`.
type ModuleNode struct {
	Extent
	Name Node
	Body *StatementsNode
}

// DefNode is a method definition.
type DefNode struct {
	Extent
	// The singleton receiver for `def self.foo` style definitions, or nil.
	Receiver   Node
	Name       string
	Parameters *ParametersNode
	Body       *StatementsNode
}

// ParametersNode is a method or block parameter list.
type ParametersNode struct {
	Extent
	Requireds []*RequiredParameterNode
	Optionals []*OptionalParameterNode
	// The `*rest` parameter, or nil.
	Rest *RestParameterNode
	// The `&block` parameter, or nil.
	Block *BlockParameterNode
}

// RequiredParameterNode is a plain positional parameter.
type RequiredParameterNode struct {
	Extent
	Name string
}

// OptionalParameterNode is a positional parameter with a default value.
type OptionalParameterNode struct {
	Extent
	Name  string
	Value Node
}

// RestParameterNode is a splat parameter: `*rest`.
type RestParameterNode struct {
	Extent
	// Empty for an anonymous `*`.
	Name string
}

// BlockParameterNode is a block capture parameter: `&block`.
type BlockParameterNode struct {
	Extent
	Name string
}

// CallNode is a method call.
//
// Operator applications desugar to calls: `a + b` is a call of `+` on `a`
// with argument `b`, and `!a` is a call of `!` on `a`. Bare identifiers that
// take arguments, parentheses, or a block are also calls.
type CallNode struct {
	Extent
	// The receiver expression, or nil for calls on the implicit receiver.
	Receiver Node
	// Whether the call uses the safe navigation operator `&.`.
	SafeNavigation bool
	Name           string
	// The argument list, or nil when no arguments were written.
	Arguments *ArgumentsNode
	// The attached `{ }` or `do end` block, or nil.
	Block *BlockNode
}

// ArgumentsNode is a call argument list.
type ArgumentsNode struct {
	Extent
	Arguments []Node
}

// BlockNode is a `{ |args| ... }` or `do |args| ... end` block.
type BlockNode struct {
	Extent
	Parameters *ParametersNode
	Body       *StatementsNode
}

// IndexNode is a subscript read: `recv[args]`.
type IndexNode struct {
	Extent
	Receiver  Node
	Arguments *ArgumentsNode
}

// AndNode is a short-circuiting conjunction, spelled `&&` or `and`.
type AndNode struct {
	Extent
	Left, Right Node
}

// OrNode is a short-circuiting disjunction, spelled `||` or `or`.
type OrNode struct {
	Extent
	Left, Right Node
}

// RangeNode is a range literal: `a..b` or `a...b`.
type RangeNode struct {
	Extent
	// Either endpoint may be nil for a beginless or endless range.
	Left, Right Node
	// Whether the range excludes its upper endpoint (`...`).
	ExcludeEnd bool
}

// DefinedNode is a `defined?(expr)` check.
type DefinedNode struct {
	Extent
	Value Node
}

// IfNode is an `if`/`elsif` conditional, including the modifier form.
type IfNode struct {
	Extent
	Predicate  Node
	Statements *StatementsNode
	// The `elsif` chain (*IfNode) or final `else` (*ElseNode), or nil.
	Consequent Node
}

// UnlessNode is an `unless` conditional, including the modifier form.
type UnlessNode struct {
	Extent
	Predicate  Node
	Statements *StatementsNode
	Consequent *ElseNode
}

// ElseNode is the `else` clause of a conditional or begin block.
type ElseNode struct {
	Extent
	Statements *StatementsNode
}

// WhileNode is a `while` loop, including the modifier form.
type WhileNode struct {
	Extent
	Predicate  Node
	Statements *StatementsNode
}

// UntilNode is an `until` loop, including the modifier form.
type UntilNode struct {
	Extent
	Predicate  Node
	Statements *StatementsNode
}

// BeginNode is a `begin ... end` block with optional rescue handling.
type BeginNode struct {
	Extent
	Statements *StatementsNode
	Rescue     *RescueNode
	Else       *ElseNode
	Ensure     *EnsureNode
}

// RescueNode is one `rescue` clause; subsequent clauses chain through
// Consequent.
type RescueNode struct {
	Extent
	// The exception class expressions, e.g. `rescue A, B`.
	Exceptions []Node
	// The capture target of `rescue => e`, or nil.
	Reference  Node
	Statements *StatementsNode
	Consequent *RescueNode
}

// EnsureNode is the `ensure` clause of a begin block.
type EnsureNode struct {
	Extent
	Statements *StatementsNode
}

// ReturnNode is a `return` statement.
type ReturnNode struct {
	Extent
	// The returned values, or nil for a bare `return`.
	Arguments *ArgumentsNode
}

// BreakNode is a `break` statement.
type BreakNode struct {
	Extent
	Arguments *ArgumentsNode
}

// NextNode is a `next` statement.
type NextNode struct {
	Extent
	Arguments *ArgumentsNode
}

// LocalVariableReadNode is a bare identifier in value position.
type LocalVariableReadNode struct {
	Extent
	Name string
}

// LocalVariableWriteNode is an assignment to a bare identifier.
type LocalVariableWriteNode struct {
	Extent
	Name  string
	Value Node
}

// ConstantReadNode is a reference to a constant: `Foo`.
type ConstantReadNode struct {
	Extent
	Name string
}

// ConstantPathNode is a scoped constant reference: `Foo::Bar`.
//
// Parent is nil for a root reference (`::Foo`).
type ConstantPathNode struct {
	Extent
	Parent Node
	Child  *ConstantReadNode
}

// ConstantWriteNode is an assignment to a constant.
type ConstantWriteNode struct {
	Extent
	// The target; a *ConstantReadNode or *ConstantPathNode.
	Target Node
	Value  Node
}

// InstanceVariableReadNode is an `@ivar` read.
type InstanceVariableReadNode struct {
	Extent
	Name string
}

// InstanceVariableWriteNode is an `@ivar` assignment.
type InstanceVariableWriteNode struct {
	Extent
	Name  string
	Value Node
}

// ClassVariableReadNode is a `@@cvar` read.
type ClassVariableReadNode struct {
	Extent
	Name string
}

// ClassVariableWriteNode is a `@@cvar` assignment.
type ClassVariableWriteNode struct {
	Extent
	Name  string
	Value Node
}

// GlobalVariableReadNode is a `$gvar` read.
type GlobalVariableReadNode struct {
	Extent
	Name string
}

// GlobalVariableWriteNode is a `$gvar` assignment.
type GlobalVariableWriteNode struct {
	Extent
	Name  string
	Value Node
}

// IndexWriteNode is a subscript assignment: `recv[args] = value`.
type IndexWriteNode struct {
	Extent
	Receiver  Node
	Arguments *ArgumentsNode
	Value     Node
}

// AttributeWriteNode is an attribute assignment: `recv.attr = value`.
type AttributeWriteNode struct {
	Extent
	Receiver Node
	Name     string
	Value    Node
}

// OperatorWriteNode is a compound assignment such as `x += 1` or `x ||= y`.
//
// Target is the read form of the assignment target; Operator is the
// operator's spelling without the trailing `=`, e.g. "+" or "||".
type OperatorWriteNode struct {
	Extent
	Target   Node
	Operator string
	Value    Node
}

// SelfNode is the `self` expression.
type SelfNode struct {
	Extent
}

// NilNode is the `nil` literal.
type NilNode struct {
	Extent
}

// TrueNode is the `true` literal.
type TrueNode struct {
	Extent
}

// FalseNode is the `false` literal.
type FalseNode struct {
	Extent
}

// IntegerNode is an integer literal.
type IntegerNode struct {
	Extent
	Value int64
}

// FloatNode is a floating point literal.
type FloatNode struct {
	Extent
	Value float64
}

// StringNode is a string literal.
type StringNode struct {
	Extent
	// The string's content with escape sequences resolved.
	Unescaped string
}

// SymbolNode is a symbol literal: `:name`.
type SymbolNode struct {
	Extent
	Name string
}

// ArrayNode is an array literal.
type ArrayNode struct {
	Extent
	Elements []Node
}

// HashNode is a hash literal.
type HashNode struct {
	Extent
	Elements []*AssocNode
}

// AssocNode is a single key/value pair in a hash literal, in either `k => v`
// or `label: v` form.
type AssocNode struct {
	Extent
	Key, Value Node
}

// ParenthesesNode is a parenthesized expression or statement sequence.
type ParenthesesNode struct {
	Extent
	Body *StatementsNode
}

func (*ProgramNode) isNode()               {}
func (*StatementsNode) isNode()            {}
func (*MissingNode) isNode()               {}
func (*ClassNode) isNode()                 {}
func (*ModuleNode) isNode()                {}
func (*DefNode) isNode()                   {}
func (*ParametersNode) isNode()            {}
func (*RequiredParameterNode) isNode()     {}
func (*OptionalParameterNode) isNode()     {}
func (*RestParameterNode) isNode()         {}
func (*BlockParameterNode) isNode()        {}
func (*CallNode) isNode()                  {}
func (*ArgumentsNode) isNode()             {}
func (*BlockNode) isNode()                 {}
func (*IndexNode) isNode()                 {}
func (*AndNode) isNode()                   {}
func (*OrNode) isNode()                    {}
func (*RangeNode) isNode()                 {}
func (*DefinedNode) isNode()               {}
func (*IfNode) isNode()                    {}
func (*UnlessNode) isNode()                {}
func (*ElseNode) isNode()                  {}
func (*WhileNode) isNode()                 {}
func (*UntilNode) isNode()                 {}
func (*BeginNode) isNode()                 {}
func (*RescueNode) isNode()                {}
func (*EnsureNode) isNode()                {}
func (*ReturnNode) isNode()                {}
func (*BreakNode) isNode()                 {}
func (*NextNode) isNode()                  {}
func (*LocalVariableReadNode) isNode()     {}
func (*LocalVariableWriteNode) isNode()    {}
func (*ConstantReadNode) isNode()          {}
func (*ConstantPathNode) isNode()          {}
func (*ConstantWriteNode) isNode()         {}
func (*InstanceVariableReadNode) isNode()  {}
func (*InstanceVariableWriteNode) isNode() {}
func (*ClassVariableReadNode) isNode()     {}
func (*ClassVariableWriteNode) isNode()    {}
func (*GlobalVariableReadNode) isNode()    {}
func (*GlobalVariableWriteNode) isNode()   {}
func (*IndexWriteNode) isNode()            {}
func (*AttributeWriteNode) isNode()        {}
func (*OperatorWriteNode) isNode()         {}
func (*SelfNode) isNode()                  {}
func (*NilNode) isNode()                   {}
func (*TrueNode) isNode()                  {}
func (*FalseNode) isNode()                 {}
func (*IntegerNode) isNode()               {}
func (*FloatNode) isNode()                 {}
func (*StringNode) isNode()                {}
func (*SymbolNode) isNode()                {}
func (*ArrayNode) isNode()                 {}
func (*HashNode) isNode()                  {}
func (*AssocNode) isNode()                 {}
func (*ParenthesesNode) isNode()           {}
