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

package ast_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/buffer"
)

func dump(t *testing.T, node ast.Node) string {
	t.Helper()
	buf := buffer.New()
	defer buf.Free()
	ast.PrettyPrint(buf, node)
	return buf.String()
}

func TestKindName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ProgramNode", ast.KindName(&ast.ProgramNode{}))
	assert.Equal(t, "IntegerNode", ast.KindName(&ast.IntegerNode{}))
}

func TestPrettyPrint(t *testing.T) {
	t.Parallel()

	// x = 1 + 2
	tree := &ast.ProgramNode{
		Statements: &ast.StatementsNode{
			Body: []ast.Node{
				&ast.LocalVariableWriteNode{
					Name: "x",
					Value: &ast.CallNode{
						Receiver: &ast.IntegerNode{Value: 1},
						Name:     "+",
						Arguments: &ast.ArgumentsNode{
							Arguments: []ast.Node{&ast.IntegerNode{Value: 2}},
						},
					},
				},
			},
		},
	}

	want := strings.Join([]string{
		"ProgramNode",
		"  statements: StatementsNode",
		"    body: (1)",
		"      LocalVariableWriteNode",
		"        name: x",
		"        value: CallNode",
		"          receiver: IntegerNode",
		"            value: 1",
		"          name: +",
		"          arguments: ArgumentsNode",
		"            arguments: (1)",
		"              IntegerNode",
		"                value: 2",
		"          block: nil",
		"",
	}, "\n")

	if diff := cmp.Diff(want, dump(t, tree)); diff != "" {
		t.Errorf("unexpected dump (-want +got):\n%s", diff)
	}
}

func TestPrettyPrintNilChildren(t *testing.T) {
	t.Parallel()

	// Typed nils must print as nil, not as a kind name.
	tree := &ast.ClassNode{
		Name: &ast.ConstantReadNode{Name: "Foo"},
	}

	want := strings.Join([]string{
		"ClassNode",
		"  name: ConstantReadNode",
		"    name: Foo",
		"  superclass: nil",
		"  body: nil",
		"",
	}, "\n")
	assert.Equal(t, want, dump(t, tree))
}

func TestPrettyPrintString(t *testing.T) {
	t.Parallel()

	// String content is quoted so control characters stay visible.
	got := dump(t, &ast.StringNode{Unescaped: "a\nb"})
	assert.Equal(t, "StringNode\n  unescaped: \"a\\nb\"\n", got)
}

func TestPrettyPrintEmptyProgram(t *testing.T) {
	t.Parallel()

	got := dump(t, &ast.ProgramNode{Statements: &ast.StatementsNode{}})
	want := strings.Join([]string{
		"ProgramNode",
		"  statements: StatementsNode",
		"    body: (0)",
		"",
	}, "\n")
	assert.Equal(t, want, dump(t, &ast.ProgramNode{Statements: &ast.StatementsNode{}}))
	assert.True(t, strings.HasPrefix(got, "ProgramNode"))
}
