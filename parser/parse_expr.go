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
	"reflect"
	"strings"

	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/source"
	"github.com/fernlang/fern/token"
)

// Expression parsing is layered by precedence, loosest first:
//
//	parseExpression   and, or
//	parseNot          not
//	parseAssignment   =, +=, ||=, ...        (right associative)
//	parseBinary       operator table below   (precedence climbing)
//	parseUnary        -, +, !, ~, defined?
//	parsePostfix      .foo, &.foo, ::Bar, [i]
//	parsePrimary      literals, variables, keyword constructs, ( [ {
//
// Operator applications desugar to [ast.CallNode] except for `&&`/`||`/`and`/
// `or` (logical nodes) and `..`/`...` (range nodes).
func (t *treeParser) parseExpression() ast.Node {
	lhs := t.parseNot()
	for {
		switch t.peek().Kind {
		case token.KwAnd:
			t.next()
			t.skipNewlines()
			rhs := t.parseNot()
			lhs = &ast.AndNode{
				Extent: ast.At(source.Join(lhs.Span(), rhs.Span())),
				Left:   lhs,
				Right:  rhs,
			}
		case token.KwOr:
			t.next()
			t.skipNewlines()
			rhs := t.parseNot()
			lhs = &ast.OrNode{
				Extent: ast.At(source.Join(lhs.Span(), rhs.Span())),
				Left:   lhs,
				Right:  rhs,
			}
		default:
			return lhs
		}
	}
}

func (t *treeParser) parseNot() ast.Node {
	tok, ok := t.accept(token.KwNot)
	if !ok {
		return t.parseAssignment()
	}
	operand := t.parseNot()
	return &ast.CallNode{
		Extent:   ast.At(source.Join(tok.Span, operand.Span())),
		Receiver: operand,
		Name:     "!",
	}
}

func (t *treeParser) parseAssignment() ast.Node {
	lhs := t.parseBinary(0)

	tok := t.peek()
	switch {
	case tok.Kind == token.Eq:
		t.next()
		t.skipNewlines()
		value := t.parseAssignment()
		return t.assignTo(lhs, value)

	case isOperatorAssign(tok.Kind):
		t.next()
		t.skipNewlines()
		value := t.parseAssignment()
		return &ast.OperatorWriteNode{
			Extent:   ast.At(source.Join(lhs.Span(), value.Span())),
			Target:   lhs,
			Operator: strings.TrimSuffix(tok.Text(), "="),
			Value:    value,
		}
	}
	return lhs
}

func isOperatorAssign(kind token.Kind) bool {
	return kind >= token.PlusEq && kind <= token.PipePipeEq
}

// assignTo rewrites the expression parsed on the left of an `=` into the
// matching write node. Expressions that are not valid assignment targets get
// a diagnostic and are preserved under an [ast.OperatorWriteNode] so that
// both sides survive in the tree.
func (t *treeParser) assignTo(lhs, value ast.Node) ast.Node {
	extent := ast.At(source.Join(lhs.Span(), value.Span()))

	switch target := lhs.(type) {
	case *ast.LocalVariableReadNode:
		return &ast.LocalVariableWriteNode{Extent: extent, Name: target.Name, Value: value}
	case *ast.InstanceVariableReadNode:
		return &ast.InstanceVariableWriteNode{Extent: extent, Name: target.Name, Value: value}
	case *ast.ClassVariableReadNode:
		return &ast.ClassVariableWriteNode{Extent: extent, Name: target.Name, Value: value}
	case *ast.GlobalVariableReadNode:
		return &ast.GlobalVariableWriteNode{Extent: extent, Name: target.Name, Value: value}
	case *ast.ConstantReadNode, *ast.ConstantPathNode:
		return &ast.ConstantWriteNode{Extent: extent, Target: lhs, Value: value}
	case *ast.IndexNode:
		return &ast.IndexWriteNode{
			Extent:    extent,
			Receiver:  target.Receiver,
			Arguments: target.Arguments,
			Value:     value,
		}
	case *ast.CallNode:
		if target.Receiver != nil && !target.SafeNavigation &&
			target.Arguments == nil && target.Block == nil {
			return &ast.AttributeWriteNode{
				Extent:   extent,
				Receiver: target.Receiver,
				Name:     target.Name,
				Value:    value,
			}
		}
	}

	t.parser.diagnostics.Errorf(lhs.Span(), "Expected a valid assignment target.")
	return &ast.OperatorWriteNode{Extent: extent, Target: lhs, Operator: "=", Value: value}
}

// binaryPrecedence orders the infix operators handled by parseBinary.
// Higher binds tighter.
var binaryPrecedence = map[token.Kind]int{
	token.DotDot: 1, token.DotDotDot: 1,
	token.PipePipe: 2,
	token.AmpAmp:   3,
	token.EqEq:     4, token.NotEq: 4, token.EqEqEq: 4, token.Match: 4, token.Compare: 4,
	token.Lt: 5, token.LtEq: 5, token.Gt: 5, token.GtEq: 5,
	token.Pipe: 6, token.Caret: 6,
	token.Amp:  7,
	token.LtLt: 8, token.GtGt: 8,
	token.Plus: 9, token.Minus: 9,
	token.Star: 10, token.Slash: 10, token.Percent: 10,
	token.StarStar: 11,
}

func (t *treeParser) parseBinary(minPrec int) ast.Node {
	lhs := t.parseUnary()
	for {
		tok := t.peek()
		prec, ok := binaryPrecedence[tok.Kind]
		if !ok || prec < minPrec {
			return lhs
		}
		t.next()
		t.skipNewlines()

		// Exponentiation is the one right-associative infix operator.
		nextMin := prec + 1
		if tok.Kind == token.StarStar {
			nextMin = prec
		}
		rhs := t.parseBinary(nextMin)
		lhs = t.buildBinary(lhs, tok, rhs)
	}
}

func (t *treeParser) buildBinary(lhs ast.Node, op token.Token, rhs ast.Node) ast.Node {
	extent := ast.At(source.Join(lhs.Span(), op.Span, rhs.Span()))

	switch op.Kind {
	case token.AmpAmp:
		return &ast.AndNode{Extent: extent, Left: lhs, Right: rhs}
	case token.PipePipe:
		return &ast.OrNode{Extent: extent, Left: lhs, Right: rhs}
	case token.DotDot, token.DotDotDot:
		return &ast.RangeNode{
			Extent:     extent,
			Left:       lhs,
			Right:      rhs,
			ExcludeEnd: op.Kind == token.DotDotDot,
		}
	}

	return &ast.CallNode{
		Extent:   extent,
		Receiver: lhs,
		Name:     op.Text(),
		Arguments: &ast.ArgumentsNode{
			Extent:    ast.At(rhs.Span()),
			Arguments: []ast.Node{rhs},
		},
	}
}

func (t *treeParser) parseUnary() ast.Node {
	switch tok := t.peek(); tok.Kind {
	case token.Bang:
		t.next()
		operand := t.parseUnary()
		return unaryCall(tok, operand, "!")
	case token.Tilde:
		t.next()
		operand := t.parseUnary()
		return unaryCall(tok, operand, "~")
	case token.Minus:
		t.next()
		// Exponentiation binds tighter than arithmetic unary, so the operand
		// absorbs any `**` chain: `-a ** b` is `-(a ** b)`.
		operand := t.parseBinary(binaryPrecedence[token.StarStar])
		// Fold negation into adjacent numeric literals so `-1` is a literal,
		// not a method call.
		switch lit := operand.(type) {
		case *ast.IntegerNode:
			lit.Value = -lit.Value
			lit.Range = source.Join(tok.Span, lit.Range)
			return lit
		case *ast.FloatNode:
			lit.Value = -lit.Value
			lit.Range = source.Join(tok.Span, lit.Range)
			return lit
		}
		return unaryCall(tok, operand, "-@")
	case token.Plus:
		t.next()
		operand := t.parseBinary(binaryPrecedence[token.StarStar])
		switch lit := operand.(type) {
		case *ast.IntegerNode:
			lit.Range = source.Join(tok.Span, lit.Range)
			return lit
		case *ast.FloatNode:
			lit.Range = source.Join(tok.Span, lit.Range)
			return lit
		}
		return unaryCall(tok, operand, "+@")
	case token.KwDefined:
		t.next()
		var value ast.Node
		var closeTok token.Token
		if _, ok := t.accept(token.LParen); ok {
			value = t.parseExpression()
			closeTok = t.expect(token.RParen, "Expected a closing parenthesis after `defined?`.")
		} else {
			// A paren-less operand extends through equality but stops at
			// `&&`: `defined? a == b` asks about the comparison, while
			// `defined? a && b` asks only about `a`.
			value = t.parseBinary(binaryPrecedence[token.EqEq])
		}
		return &ast.DefinedNode{
			Extent: ast.At(source.Join(tok.Span, value.Span(), closeTok.Span)),
			Value:  value,
		}
	}
	return t.parsePostfix()
}

func unaryCall(op token.Token, operand ast.Node, name string) *ast.CallNode {
	return &ast.CallNode{
		Extent:   ast.At(source.Join(op.Span, operand.Span())),
		Receiver: operand,
		Name:     name,
	}
}

func (t *treeParser) parsePostfix() ast.Node {
	node := t.parsePrimary()
	for {
		switch t.peek().Kind {
		case token.Dot, token.AmpDot:
			op := t.next()
			t.skipNewlines()
			name, nameSpan := t.parseMethodName(op)
			call := &ast.CallNode{
				Receiver:       node,
				SafeNavigation: op.Kind == token.AmpDot,
				Name:           name,
			}
			if t.at(token.LParen) {
				call.Arguments = t.parseParenArguments()
			}
			call.Block = t.parseMaybeBlock()
			call.Range = source.Join(
				node.Span(), op.Span, nameSpan,
				spanOf(call.Arguments), spanOf(call.Block),
			)
			node = call

		case token.ColonColon:
			op := t.next()
			if child, ok := t.accept(token.Constant); ok {
				node = &ast.ConstantPathNode{
					Extent: ast.At(source.Join(node.Span(), op.Span, child.Span)),
					Parent: node,
					Child: &ast.ConstantReadNode{
						Extent: ast.At(child.Span),
						Name:   child.Text(),
					},
				}
				continue
			}
			// `recv::meth` is a method call.
			name, nameSpan := t.parseMethodName(op)
			call := &ast.CallNode{Receiver: node, Name: name}
			if t.at(token.LParen) {
				call.Arguments = t.parseParenArguments()
			}
			call.Block = t.parseMaybeBlock()
			call.Range = source.Join(
				node.Span(), op.Span, nameSpan,
				spanOf(call.Arguments), spanOf(call.Block),
			)
			node = call

		case token.LBracket:
			open := t.next()
			args := t.parseArgumentList(token.RBracket)
			closeTok := t.expect(token.RBracket, "Expected a closing bracket for the index operator.")
			args.Range = source.Join(open.Span, args.Range, closeTok.Span)
			node = &ast.IndexNode{
				Extent:    ast.At(source.Join(node.Span(), args.Range)),
				Receiver:  node,
				Arguments: args,
			}

		default:
			return node
		}
	}
}

// parseMethodName reads the method name after a `.`, `&.`, or `::`. Keywords
// are allowed as method names.
func (t *treeParser) parseMethodName(op token.Token) (string, source.Span) {
	tok := t.peek()
	if tok.Is(token.Ident, token.Constant) || tok.Kind.IsKeyword() {
		t.next()
		return tok.Text(), tok.Span
	}
	t.parser.diagnostics.Errorf(t.here(), "Expected a method name after `%s`.", op.Text())
	return "", t.here()
}

// parseMaybeBlock parses a trailing `{ }` or `do end` block if one is
// present.
func (t *treeParser) parseMaybeBlock() *ast.BlockNode {
	switch t.peek().Kind {
	case token.LBrace:
		open := t.next()
		params := t.parseMaybeBlockParameters()
		body := t.parseStatements(func(tok token.Token) bool {
			return tok.Kind == token.RBrace
		})
		closeTok := t.expect(token.RBrace, "Expected a closing brace for the block.")
		return &ast.BlockNode{
			Extent: ast.At(source.Join(
				open.Span, spanOf(params), body.Span(), closeTok.Span,
			)),
			Parameters: params,
			Body:       body,
		}
	case token.KwDo:
		if t.noDo > 0 {
			return nil
		}
		open := t.next()
		params := t.parseMaybeBlockParameters()
		t.skipTerminators()
		body := t.parseStatements(func(tok token.Token) bool {
			return tok.Kind == token.KwEnd
		})
		closeTok := t.expectEnd("do")
		return &ast.BlockNode{
			Extent: ast.At(source.Join(
				open.Span, spanOf(params), body.Span(), closeTok.Span,
			)),
			Parameters: params,
			Body:       body,
		}
	}
	return nil
}

// parseMaybeBlockParameters parses the `|a, b|` parameter list at the start
// of a block, if present.
func (t *treeParser) parseMaybeBlockParameters() *ast.ParametersNode {
	open, ok := t.accept(token.Pipe)
	if !ok {
		return nil
	}
	params := t.parseParameterList(func(tok token.Token) bool {
		return tok.Kind == token.Pipe
	})
	closeTok := t.expect(token.Pipe, "Expected a closing `|` for the block parameters.")
	params.Range = source.Join(open.Span, params.Range, closeTok.Span)
	return params
}

func (t *treeParser) parsePrimary() ast.Node {
	switch tok := t.peek(); tok.Kind {
	case token.Integer:
		t.next()
		return &ast.IntegerNode{Extent: ast.At(tok.Span), Value: t.integerValue(tok)}
	case token.Float:
		t.next()
		return &ast.FloatNode{Extent: ast.At(tok.Span), Value: t.floatValue(tok)}
	case token.String:
		t.next()
		return &ast.StringNode{Extent: ast.At(tok.Span), Unescaped: stringValue(tok.Text())}
	case token.Symbol:
		t.next()
		return &ast.SymbolNode{Extent: ast.At(tok.Span), Name: strings.TrimPrefix(tok.Text(), ":")}

	case token.KwSelf:
		t.next()
		return &ast.SelfNode{Extent: ast.At(tok.Span)}
	case token.KwNil:
		t.next()
		return &ast.NilNode{Extent: ast.At(tok.Span)}
	case token.KwTrue:
		t.next()
		return &ast.TrueNode{Extent: ast.At(tok.Span)}
	case token.KwFalse:
		t.next()
		return &ast.FalseNode{Extent: ast.At(tok.Span)}

	case token.InstanceVariable:
		t.next()
		return &ast.InstanceVariableReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}
	case token.ClassVariable:
		t.next()
		return &ast.ClassVariableReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}
	case token.GlobalVariable:
		t.next()
		return &ast.GlobalVariableReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}

	case token.Constant:
		t.next()
		return &ast.ConstantReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}

	case token.ColonColon:
		// Root constant reference: `::Foo`.
		t.next()
		child := t.expect(token.Constant, "Expected a constant after `::`.")
		return &ast.ConstantPathNode{
			Extent: ast.At(source.Join(tok.Span, child.Span)),
			Child: &ast.ConstantReadNode{
				Extent: ast.At(child.Span),
				Name:   child.Text(),
			},
		}

	case token.Ident:
		return t.parseIdentifier()

	case token.LParen:
		t.next()
		t.skipTerminators()
		body := t.parseStatements(func(tok token.Token) bool {
			return tok.Kind == token.RParen
		})
		closeTok := t.expect(token.RParen, "Expected a closing parenthesis.")
		return &ast.ParenthesesNode{
			Extent: ast.At(source.Join(tok.Span, body.Span(), closeTok.Span)),
			Body:   body,
		}

	case token.LBracket:
		return t.parseArrayLiteral()
	case token.LBrace:
		return t.parseHashLiteral()

	case token.KwIf:
		return t.parseIf()
	case token.KwUnless:
		return t.parseUnless()
	case token.KwWhile:
		return t.parseWhile()
	case token.KwUntil:
		return t.parseUntil()
	case token.KwBegin:
		return t.parseBegin()
	case token.KwDef:
		return t.parseDef()
	case token.KwClass:
		return t.parseClass()
	case token.KwModule:
		return t.parseModule()

	case token.Unrecognized:
		// The lexer already diagnosed this token; swallow it and substitute a
		// placeholder so parsing makes progress.
		t.next()
		return &ast.MissingNode{Extent: ast.At(t.parser.file.Point(tok.Start))}
	}

	missing := t.expectedExpression()
	// Skip recovery: consume the offending token unless it is one that some
	// enclosing construct is likely waiting for.
	switch t.peek().Kind {
	case token.EOF, token.Newline, token.Semi, token.Comma,
		token.RParen, token.RBracket, token.RBrace,
		token.KwEnd, token.KwThen, token.KwDo,
		token.KwElse, token.KwElsif, token.KwRescue, token.KwEnsure:
	default:
		t.next()
	}
	return missing
}

// parseIdentifier handles a leading identifier, which is a local variable
// read unless arguments, parentheses, or a block turn it into a call.
func (t *treeParser) parseIdentifier() ast.Node {
	tok := t.next()

	if t.at(token.LParen) {
		call := &ast.CallNode{Name: tok.Text(), Arguments: t.parseParenArguments()}
		call.Block = t.parseMaybeBlock()
		call.Range = source.Join(tok.Span, call.Arguments.Range, spanOf(call.Block))
		return call
	}

	next := t.peek()
	startsCommand := canStartArgument(next) &&
		!next.Is(token.LBracket, token.LBrace, token.LParen, token.Plus, token.Minus)
	if next.Is(token.Plus, token.Minus) &&
		next.Start > tok.End && t.peekAt(1).Start == next.End &&
		canStartExpression(t.peekAt(1)) {
		// `puts -1`: a sign that is detached from the identifier but attached
		// to its operand starts an argument, not an infix operation.
		startsCommand = true
	}
	if startsCommand {
		// Paren-less command call: `puts 1, 2`.
		args := t.parseCommandArguments()
		call := &ast.CallNode{Name: tok.Text(), Arguments: args}
		call.Block = t.parseMaybeBlock()
		call.Range = source.Join(tok.Span, args.Range, spanOf(call.Block))
		return call
	}

	if block := t.parseMaybeBlock(); block != nil {
		return &ast.CallNode{
			Extent: ast.At(source.Join(tok.Span, block.Range)),
			Name:   tok.Text(),
			Block:  block,
		}
	}

	return &ast.LocalVariableReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}
}

// parseCommandArguments parses the comma-separated arguments of a paren-less
// call, up to the end of the logical line.
func (t *treeParser) parseCommandArguments() *ast.ArgumentsNode {
	args := &ast.ArgumentsNode{}
	var assocs []*ast.AssocNode
	for {
		if assoc := t.maybeLabelAssoc(); assoc != nil {
			assocs = append(assocs, assoc)
		} else {
			args.Arguments = append(args.Arguments, t.parseAssignment())
		}
		if _, ok := t.accept(token.Comma); !ok {
			break
		}
		t.skipNewlines()
	}
	t.appendAssocArgument(args, assocs)
	args.Range = joinNodes(args.Arguments)
	return args
}

// parseParenArguments parses a parenthesized argument list, starting at the
// opening parenthesis.
func (t *treeParser) parseParenArguments() *ast.ArgumentsNode {
	open := t.next()
	args := &ast.ArgumentsNode{}
	var assocs []*ast.AssocNode
	for !t.at(token.RParen, token.EOF) {
		if assoc := t.maybeLabelAssoc(); assoc != nil {
			assocs = append(assocs, assoc)
		} else {
			args.Arguments = append(args.Arguments, t.parseAssignment())
		}
		if _, ok := t.accept(token.Comma); !ok {
			break
		}
	}
	t.appendAssocArgument(args, assocs)
	closeTok := t.expect(token.RParen, "Expected a closing parenthesis for the argument list.")
	args.Range = source.Join(open.Span, joinNodes(args.Arguments), closeTok.Span)
	return args
}

// parseArgumentList parses comma-separated arguments until the closing
// token, which is left unconsumed.
func (t *treeParser) parseArgumentList(closing token.Kind) *ast.ArgumentsNode {
	args := &ast.ArgumentsNode{}
	for !t.at(closing, token.EOF) {
		args.Arguments = append(args.Arguments, t.parseAssignment())
		if _, ok := t.accept(token.Comma); !ok {
			break
		}
	}
	args.Range = joinNodes(args.Arguments)
	if args.Range.IsZero() {
		args.Range = t.here()
	}
	return args
}

// maybeLabelAssoc recognizes a `label: value` keyword argument. The label
// identifier and the colon must be adjacent, which distinguishes the label
// from a symbol argument.
func (t *treeParser) maybeLabelAssoc() *ast.AssocNode {
	keyTok := t.peek()
	if !keyTok.Is(token.Ident, token.Constant, token.String) {
		return nil
	}
	colon := t.peekAt(1)
	if colon.Kind != token.Colon || colon.Start != keyTok.End {
		return nil
	}
	t.next()
	t.next()

	var key ast.Node
	keySpan := source.Join(keyTok.Span, colon.Span)
	if keyTok.Kind == token.String {
		key = &ast.SymbolNode{Extent: ast.At(keySpan), Name: stringValue(keyTok.Text())}
	} else {
		key = &ast.SymbolNode{Extent: ast.At(keySpan), Name: keyTok.Text()}
	}

	value := t.parseAssignment()
	return &ast.AssocNode{
		Extent: ast.At(source.Join(keySpan, value.Span())),
		Key:    key,
		Value:  value,
	}
}

// appendAssocArgument folds trailing keyword arguments into a single hash
// argument at the end of the list.
func (t *treeParser) appendAssocArgument(args *ast.ArgumentsNode, assocs []*ast.AssocNode) {
	if len(assocs) == 0 {
		return
	}
	var span source.Span
	for _, a := range assocs {
		span = source.Join(span, a.Range)
	}
	args.Arguments = append(args.Arguments, &ast.HashNode{
		Extent:   ast.At(span),
		Elements: assocs,
	})
}

func (t *treeParser) parseArrayLiteral() ast.Node {
	open := t.next()
	array := &ast.ArrayNode{}
	for !t.at(token.RBracket, token.EOF) {
		array.Elements = append(array.Elements, t.parseAssignment())
		if _, ok := t.accept(token.Comma); !ok {
			break
		}
	}
	closeTok := t.expect(token.RBracket, "Expected a closing bracket for the array literal.")
	array.Range = source.Join(open.Span, joinNodes(array.Elements), closeTok.Span)
	return array
}

func (t *treeParser) parseHashLiteral() ast.Node {
	open := t.next()
	hash := &ast.HashNode{}
	for !t.at(token.RBrace, token.EOF) {
		assoc := t.maybeLabelAssoc()
		if assoc == nil {
			key := t.parseAssignment()
			t.expect(token.Arrow, "Expected a `=>` between the hash key and value.")
			value := t.parseAssignment()
			assoc = &ast.AssocNode{
				Extent: ast.At(source.Join(key.Span(), value.Span())),
				Key:    key,
				Value:  value,
			}
		}
		hash.Elements = append(hash.Elements, assoc)
		if _, ok := t.accept(token.Comma); !ok {
			break
		}
	}
	closeTok := t.expect(token.RBrace, "Expected a closing brace for the hash literal.")
	var elems source.Span
	for _, e := range hash.Elements {
		elems = source.Join(elems, e.Range)
	}
	hash.Range = source.Join(open.Span, elems, closeTok.Span)
	return hash
}

// spanOf returns a node's span, tolerating nil and typed-nil nodes.
func spanOf(n ast.Node) source.Span {
	if n == nil {
		return source.Span{}
	}
	if v := reflect.ValueOf(n); v.Kind() == reflect.Pointer && v.IsNil() {
		return source.Span{}
	}
	return n.Span()
}

// joinNodes joins the spans of a node list.
func joinNodes(nodes []ast.Node) source.Span {
	var span source.Span
	for _, n := range nodes {
		span = source.Join(span, n.Span())
	}
	return span
}
