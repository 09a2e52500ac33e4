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
	"reflect"

	"github.com/fernlang/fern/buffer"
)

// PrettyPrint renders a tree as indented, human-readable text into buf.
//
// This is debugging output, not a stable machine-readable format. The only
// guarantees are that the output is deterministic for a given tree and that
// it begins with the root node's kind name (so a tree rooted at a
// [ProgramNode] always starts with the text "ProgramNode").
func PrettyPrint(buf *buffer.Buffer, node Node) {
	p := printer{buf: buf}
	p.node(node, 0)
}

type printer struct {
	buf *buffer.Buffer
}

func (p *printer) node(n Node, depth int) {
	if n == nil {
		p.buf.AppendString("nil\n")
		return
	}

	p.buf.AppendString(KindName(n))
	p.buf.AppendByte('\n')
	depth++

	switch n := n.(type) {
	case *ProgramNode:
		p.child(depth, "statements", n.Statements)
	case *StatementsNode:
		p.list(depth, "body", n.Body)
	case *MissingNode:
		// Nothing to print beyond the kind.

	case *ClassNode:
		p.child(depth, "name", n.Name)
		p.child(depth, "superclass", n.Superclass)
		p.child(depth, "body", n.Body)
	case *ModuleNode:
		p.child(depth, "name", n.Name)
		p.child(depth, "body", n.Body)
	case *DefNode:
		p.child(depth, "receiver", n.Receiver)
		p.scalar(depth, "name", n.Name)
		p.child(depth, "parameters", n.Parameters)
		p.child(depth, "body", n.Body)
	case *ParametersNode:
		p.list(depth, "requireds", nodes(n.Requireds))
		p.list(depth, "optionals", nodes(n.Optionals))
		p.child(depth, "rest", n.Rest)
		p.child(depth, "block", n.Block)
	case *RequiredParameterNode:
		p.scalar(depth, "name", n.Name)
	case *OptionalParameterNode:
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *RestParameterNode:
		p.scalar(depth, "name", n.Name)
	case *BlockParameterNode:
		p.scalar(depth, "name", n.Name)

	case *CallNode:
		p.child(depth, "receiver", n.Receiver)
		if n.SafeNavigation {
			p.scalar(depth, "safe_navigation", "true")
		}
		p.scalar(depth, "name", n.Name)
		p.child(depth, "arguments", n.Arguments)
		p.child(depth, "block", n.Block)
	case *ArgumentsNode:
		p.list(depth, "arguments", n.Arguments)
	case *BlockNode:
		p.child(depth, "parameters", n.Parameters)
		p.child(depth, "body", n.Body)
	case *IndexNode:
		p.child(depth, "receiver", n.Receiver)
		p.child(depth, "arguments", n.Arguments)

	case *AndNode:
		p.child(depth, "left", n.Left)
		p.child(depth, "right", n.Right)
	case *OrNode:
		p.child(depth, "left", n.Left)
		p.child(depth, "right", n.Right)
	case *RangeNode:
		p.child(depth, "left", n.Left)
		p.child(depth, "right", n.Right)
		p.scalar(depth, "exclude_end", fmt.Sprint(n.ExcludeEnd))
	case *DefinedNode:
		p.child(depth, "value", n.Value)

	case *IfNode:
		p.child(depth, "predicate", n.Predicate)
		p.child(depth, "statements", n.Statements)
		p.child(depth, "consequent", n.Consequent)
	case *UnlessNode:
		p.child(depth, "predicate", n.Predicate)
		p.child(depth, "statements", n.Statements)
		p.child(depth, "consequent", n.Consequent)
	case *ElseNode:
		p.child(depth, "statements", n.Statements)
	case *WhileNode:
		p.child(depth, "predicate", n.Predicate)
		p.child(depth, "statements", n.Statements)
	case *UntilNode:
		p.child(depth, "predicate", n.Predicate)
		p.child(depth, "statements", n.Statements)

	case *BeginNode:
		p.child(depth, "statements", n.Statements)
		p.child(depth, "rescue", n.Rescue)
		p.child(depth, "else", n.Else)
		p.child(depth, "ensure", n.Ensure)
	case *RescueNode:
		p.list(depth, "exceptions", n.Exceptions)
		p.child(depth, "reference", n.Reference)
		p.child(depth, "statements", n.Statements)
		p.child(depth, "consequent", n.Consequent)
	case *EnsureNode:
		p.child(depth, "statements", n.Statements)

	case *ReturnNode:
		p.child(depth, "arguments", n.Arguments)
	case *BreakNode:
		p.child(depth, "arguments", n.Arguments)
	case *NextNode:
		p.child(depth, "arguments", n.Arguments)

	case *LocalVariableReadNode:
		p.scalar(depth, "name", n.Name)
	case *LocalVariableWriteNode:
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *ConstantReadNode:
		p.scalar(depth, "name", n.Name)
	case *ConstantPathNode:
		p.child(depth, "parent", n.Parent)
		p.child(depth, "child", n.Child)
	case *ConstantWriteNode:
		p.child(depth, "target", n.Target)
		p.child(depth, "value", n.Value)
	case *InstanceVariableReadNode:
		p.scalar(depth, "name", n.Name)
	case *InstanceVariableWriteNode:
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *ClassVariableReadNode:
		p.scalar(depth, "name", n.Name)
	case *ClassVariableWriteNode:
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *GlobalVariableReadNode:
		p.scalar(depth, "name", n.Name)
	case *GlobalVariableWriteNode:
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *IndexWriteNode:
		p.child(depth, "receiver", n.Receiver)
		p.child(depth, "arguments", n.Arguments)
		p.child(depth, "value", n.Value)
	case *AttributeWriteNode:
		p.child(depth, "receiver", n.Receiver)
		p.scalar(depth, "name", n.Name)
		p.child(depth, "value", n.Value)
	case *OperatorWriteNode:
		p.child(depth, "target", n.Target)
		p.scalar(depth, "operator", n.Operator)
		p.child(depth, "value", n.Value)

	case *SelfNode, *NilNode, *TrueNode, *FalseNode:
		// Nothing to print beyond the kind.
	case *IntegerNode:
		p.scalar(depth, "value", fmt.Sprint(n.Value))
	case *FloatNode:
		p.scalar(depth, "value", fmt.Sprint(n.Value))
	case *StringNode:
		p.field(depth, "unescaped")
		p.buf.Appendf("%q\n", n.Unescaped)
	case *SymbolNode:
		p.scalar(depth, "name", n.Name)
	case *ArrayNode:
		p.list(depth, "elements", n.Elements)
	case *HashNode:
		p.list(depth, "elements", nodes(n.Elements))
	case *AssocNode:
		p.child(depth, "key", n.Key)
		p.child(depth, "value", n.Value)
	case *ParenthesesNode:
		p.child(depth, "body", n.Body)

	default:
		panic(fmt.Sprintf("fern/ast: unknown node kind %T", n))
	}
}

func (p *printer) field(depth int, name string) {
	for range depth {
		p.buf.AppendString("  ")
	}
	p.buf.AppendString(name)
	p.buf.AppendString(": ")
}

func (p *printer) scalar(depth int, name, value string) {
	p.field(depth, name)
	p.buf.AppendString(value)
	p.buf.AppendByte('\n')
}

func (p *printer) child(depth int, name string, node Node) {
	// Typed nils arrive here as non-nil interfaces; normalize them so the
	// output reads "nil" rather than a kind name over an empty node.
	if isNil(node) {
		p.field(depth, name)
		p.buf.AppendString("nil\n")
		return
	}
	p.field(depth, name)
	p.node(node, depth)
}

func (p *printer) list(depth int, name string, items []Node) {
	p.field(depth, name)
	p.buf.Appendf("(%d)\n", len(items))
	for _, item := range items {
		for range depth + 1 {
			p.buf.AppendString("  ")
		}
		p.node(item, depth+1)
	}
}

// nodes converts a slice of concrete nodes to a slice of [Node].
func nodes[N Node](in []N) []Node {
	out := make([]Node, len(in))
	for i, n := range in {
		out[i] = n
	}
	return out
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	v := reflect.ValueOf(n)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
