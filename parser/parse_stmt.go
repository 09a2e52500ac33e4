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
	"github.com/fernlang/fern/ast"
	"github.com/fernlang/fern/source"
	"github.com/fernlang/fern/token"
)

// parseProgram is the grammar's entry point. The returned root spans the
// whole file, statements or not.
func (t *treeParser) parseProgram() *ast.ProgramNode {
	stmts := t.parseStatements(func(tok token.Token) bool {
		return tok.Kind == token.EOF
	})
	file := t.parser.file
	return &ast.ProgramNode{
		Extent:     ast.At(file.Span(0, file.Len())),
		Statements: stmts,
	}
}

// stopAt builds a statement-list terminator predicate.
func stopAt(kinds ...token.Kind) func(token.Token) bool {
	return func(tok token.Token) bool {
		return tok.Is(kinds...)
	}
}

// parseStatements parses a terminator-separated statement sequence until a
// token matching isEnd, which is left unconsumed.
//
// Hitting end of input before the stop token is an error: the sequence was
// promised more, so an expression placeholder is diagnosed and appended at
// the point of the missing statement.
func (t *treeParser) parseStatements(isEnd func(token.Token) bool) *ast.StatementsNode {
	start := t.peek().Start
	stmts := new(ast.StatementsNode)
	for {
		t.skipTerminators()
		tok := t.peek()
		if isEnd(tok) {
			break
		}
		if tok.Kind == token.EOF {
			stmts.Body = append(stmts.Body, t.expectedExpression())
			break
		}

		stmts.Body = append(stmts.Body, t.parseStatement())

		next := t.peek()
		if next.Kind.IsTerminator() || isEnd(next) {
			continue
		}
		t.parser.diagnostics.Errorf(t.here(), "Expected a newline or semicolon after the statement.")
		t.recoverTo(func(tok token.Token) bool {
			return tok.Kind.IsTerminator() || isEnd(tok)
		})
	}

	stmts.Range = joinNodes(stmts.Body)
	if stmts.Range.IsZero() {
		stmts.Range = t.parser.file.Point(start)
	}
	return stmts
}

func (t *treeParser) parseStatement() ast.Node {
	var stmt ast.Node
	switch t.peek().Kind {
	case token.KwReturn, token.KwBreak, token.KwNext:
		stmt = t.parseJump()
	default:
		stmt = t.parseExpression()
	}

	// Modifier keywords wrap the statement they follow, innermost first:
	// `a if b while c` loops the conditional.
	for {
		switch t.peek().Kind {
		case token.KwIf:
			kw := t.next()
			pred := t.parseExpression()
			stmt = &ast.IfNode{
				Extent:     ast.At(source.Join(stmt.Span(), kw.Span, pred.Span())),
				Predicate:  pred,
				Statements: wrapStatement(stmt),
			}
		case token.KwUnless:
			kw := t.next()
			pred := t.parseExpression()
			stmt = &ast.UnlessNode{
				Extent:     ast.At(source.Join(stmt.Span(), kw.Span, pred.Span())),
				Predicate:  pred,
				Statements: wrapStatement(stmt),
			}
		case token.KwWhile:
			kw := t.next()
			pred := t.parseExpression()
			stmt = &ast.WhileNode{
				Extent:     ast.At(source.Join(stmt.Span(), kw.Span, pred.Span())),
				Predicate:  pred,
				Statements: wrapStatement(stmt),
			}
		case token.KwUntil:
			kw := t.next()
			pred := t.parseExpression()
			stmt = &ast.UntilNode{
				Extent:     ast.At(source.Join(stmt.Span(), kw.Span, pred.Span())),
				Predicate:  pred,
				Statements: wrapStatement(stmt),
			}
		default:
			return stmt
		}
	}
}

func wrapStatement(stmt ast.Node) *ast.StatementsNode {
	return &ast.StatementsNode{
		Extent: ast.At(stmt.Span()),
		Body:   []ast.Node{stmt},
	}
}

// parseJump parses `return`, `break`, and `next`, with their optional
// paren-less argument lists.
func (t *treeParser) parseJump() ast.Node {
	kw := t.next()
	var args *ast.ArgumentsNode
	if canStartArgument(t.peek()) {
		args = t.parseCommandArguments()
	}
	extent := ast.At(source.Join(kw.Span, spanOf(args)))

	switch kw.Kind {
	case token.KwReturn:
		return &ast.ReturnNode{Extent: extent, Arguments: args}
	case token.KwBreak:
		return &ast.BreakNode{Extent: extent, Arguments: args}
	default:
		return &ast.NextNode{Extent: extent, Arguments: args}
	}
}

func (t *treeParser) expectEnd(construct string) token.Token {
	return t.expect(token.KwEnd, "Expected an `end` to close the `%s` statement.", construct)
}

// acceptThen consumes the separator between a predicate and its body: a
// `then`, a terminator, or both.
func (t *treeParser) acceptThen() {
	t.skipTerminators()
	t.accept(token.KwThen)
}

func (t *treeParser) parseIf() ast.Node {
	kw := t.next()
	node := t.parseConditionalTail(kw)
	endTok := t.expectEnd("if")
	node.Range = source.Join(node.Range, endTok.Span)
	return node
}

// parseConditionalTail parses the predicate, body, and elsif/else chain of a
// conditional. The closing `end` belongs to the caller.
func (t *treeParser) parseConditionalTail(kw token.Token) *ast.IfNode {
	pred := t.parseExpression()
	t.acceptThen()
	body := t.parseStatements(stopAt(token.KwElsif, token.KwElse, token.KwEnd))

	node := &ast.IfNode{Predicate: pred, Statements: body}
	switch t.peek().Kind {
	case token.KwElsif:
		ekw := t.next()
		node.Consequent = t.parseConditionalTail(ekw)
	case token.KwElse:
		node.Consequent = t.parseElse(stopAt(token.KwEnd))
	}
	node.Range = source.Join(kw.Span, pred.Span(), body.Span(), spanOf(node.Consequent))
	return node
}

func (t *treeParser) parseElse(isEnd func(token.Token) bool) *ast.ElseNode {
	kw := t.next()
	body := t.parseStatements(isEnd)
	return &ast.ElseNode{
		Extent:     ast.At(source.Join(kw.Span, body.Span())),
		Statements: body,
	}
}

func (t *treeParser) parseUnless() ast.Node {
	kw := t.next()
	pred := t.parseExpression()
	t.acceptThen()
	body := t.parseStatements(stopAt(token.KwElse, token.KwEnd))

	var consequent *ast.ElseNode
	if t.at(token.KwElse) {
		consequent = t.parseElse(stopAt(token.KwEnd))
	}
	endTok := t.expectEnd("unless")

	return &ast.UnlessNode{
		Extent: ast.At(source.Join(
			kw.Span, pred.Span(), body.Span(), spanOf(consequent), endTok.Span,
		)),
		Predicate:  pred,
		Statements: body,
		Consequent: consequent,
	}
}

func (t *treeParser) parseWhile() ast.Node {
	kw := t.next()
	t.noDo++
	pred := t.parseExpression()
	t.noDo--
	t.accept(token.KwDo)
	body := t.parseStatements(stopAt(token.KwEnd))
	endTok := t.expectEnd("while")

	return &ast.WhileNode{
		Extent:     ast.At(source.Join(kw.Span, pred.Span(), body.Span(), endTok.Span)),
		Predicate:  pred,
		Statements: body,
	}
}

func (t *treeParser) parseUntil() ast.Node {
	kw := t.next()
	t.noDo++
	pred := t.parseExpression()
	t.noDo--
	t.accept(token.KwDo)
	body := t.parseStatements(stopAt(token.KwEnd))
	endTok := t.expectEnd("until")

	return &ast.UntilNode{
		Extent:     ast.At(source.Join(kw.Span, pred.Span(), body.Span(), endTok.Span)),
		Predicate:  pred,
		Statements: body,
	}
}

func (t *treeParser) parseBegin() ast.Node {
	kw := t.next()
	body := t.parseStatements(stopAt(
		token.KwRescue, token.KwElse, token.KwEnsure, token.KwEnd,
	))
	rescue, elseNode, ensure := t.parseRescueChain()
	endTok := t.expectEnd("begin")

	return &ast.BeginNode{
		Extent: ast.At(source.Join(
			kw.Span, body.Span(),
			spanOf(rescue), spanOf(elseNode), spanOf(ensure),
			endTok.Span,
		)),
		Statements: body,
		Rescue:     rescue,
		Else:       elseNode,
		Ensure:     ensure,
	}
}

// parseRescueChain parses the rescue/else/ensure tail shared by `begin`
// blocks and method bodies. All three results may be nil.
func (t *treeParser) parseRescueChain() (*ast.RescueNode, *ast.ElseNode, *ast.EnsureNode) {
	var rescue, last *ast.RescueNode
	for t.at(token.KwRescue) {
		clause := t.parseRescueClause()
		if rescue == nil {
			rescue = clause
		} else {
			last.Consequent = clause
		}
		last = clause
	}

	var elseNode *ast.ElseNode
	if t.at(token.KwElse) {
		if rescue == nil {
			t.parser.diagnostics.Warnf(t.here(), "An `else` without a `rescue` has no effect.")
		}
		elseNode = t.parseElse(stopAt(token.KwEnsure, token.KwEnd))
	}

	var ensure *ast.EnsureNode
	if t.at(token.KwEnsure) {
		ekw := t.next()
		body := t.parseStatements(stopAt(token.KwEnd))
		ensure = &ast.EnsureNode{
			Extent:     ast.At(source.Join(ekw.Span, body.Span())),
			Statements: body,
		}
	}
	return rescue, elseNode, ensure
}

func (t *treeParser) parseRescueClause() *ast.RescueNode {
	kw := t.next()
	clause := new(ast.RescueNode)

	if canStartArgument(t.peek()) {
		for {
			clause.Exceptions = append(clause.Exceptions, t.parseBinary(0))
			if _, ok := t.accept(token.Comma); !ok {
				break
			}
		}
	}
	if _, ok := t.accept(token.Arrow); ok {
		ref := t.expect(token.Ident, "Expected a variable name after `=>`.")
		if !ref.Span.IsZero() {
			clause.Reference = &ast.LocalVariableReadNode{
				Extent: ast.At(ref.Span),
				Name:   ref.Text(),
			}
		}
	}
	t.acceptThen()
	clause.Statements = t.parseStatements(stopAt(
		token.KwRescue, token.KwElse, token.KwEnsure, token.KwEnd,
	))
	clause.Range = source.Join(
		kw.Span, joinNodes(clause.Exceptions),
		spanOf(clause.Reference), clause.Statements.Span(),
	)
	return clause
}

func (t *treeParser) parseClass() ast.Node {
	kw := t.next()
	name := t.parseConstantPathName("class")

	var superclass ast.Node
	if _, ok := t.accept(token.Lt); ok {
		superclass = t.parseExpression()
	}
	body := t.parseStatements(stopAt(token.KwEnd))
	endTok := t.expectEnd("class")

	return &ast.ClassNode{
		Extent: ast.At(source.Join(
			kw.Span, name.Span(), spanOf(superclass), body.Span(), endTok.Span,
		)),
		Name:       name,
		Superclass: superclass,
		Body:       body,
	}
}

func (t *treeParser) parseModule() ast.Node {
	kw := t.next()
	name := t.parseConstantPathName("module")
	body := t.parseStatements(stopAt(token.KwEnd))
	endTok := t.expectEnd("module")

	return &ast.ModuleNode{
		Extent: ast.At(source.Join(kw.Span, name.Span(), body.Span(), endTok.Span)),
		Name:   name,
		Body:   body,
	}
}

// parseConstantPathName parses the `Foo`, `Foo::Bar`, or `::Foo` name of a
// class or module declaration.
func (t *treeParser) parseConstantPathName(construct string) ast.Node {
	var node ast.Node
	switch {
	case t.at(token.Constant):
		tok := t.next()
		node = &ast.ConstantReadNode{Extent: ast.At(tok.Span), Name: tok.Text()}
	case t.at(token.ColonColon):
		op := t.next()
		child := t.expect(token.Constant, "Expected a constant after `::`.")
		node = &ast.ConstantPathNode{
			Extent: ast.At(source.Join(op.Span, child.Span)),
			Child: &ast.ConstantReadNode{
				Extent: ast.At(child.Span),
				Name:   child.Text(),
			},
		}
	default:
		t.parser.diagnostics.Errorf(t.here(), "Expected a constant name after `%s`.", construct)
		return &ast.MissingNode{Extent: ast.At(t.here())}
	}

	for t.at(token.ColonColon) {
		op := t.next()
		child := t.expect(token.Constant, "Expected a constant after `::`.")
		node = &ast.ConstantPathNode{
			Extent: ast.At(source.Join(node.Span(), op.Span, child.Span)),
			Parent: node,
			Child: &ast.ConstantReadNode{
				Extent: ast.At(child.Span),
				Name:   child.Text(),
			},
		}
	}
	return node
}

func (t *treeParser) parseDef() ast.Node {
	kw := t.next()
	def := new(ast.DefNode)

	// Singleton definitions: `def self.foo` and `def Foo.bar`.
	if t.at(token.KwSelf) && t.peekAt(1).Kind == token.Dot {
		recv := t.next()
		t.next()
		def.Receiver = &ast.SelfNode{Extent: ast.At(recv.Span)}
	} else if t.at(token.Constant) && t.peekAt(1).Kind == token.Dot {
		recv := t.next()
		t.next()
		def.Receiver = &ast.ConstantReadNode{Extent: ast.At(recv.Span), Name: recv.Text()}
	}

	def.Name = t.parseDefName()

	if t.at(token.LParen) {
		open := t.next()
		params := t.parseParameterList(stopAt(token.RParen))
		closeTok := t.expect(token.RParen, "Expected a closing parenthesis for the parameter list.")
		params.Range = source.Join(open.Span, params.Range, closeTok.Span)
		def.Parameters = params
	} else if t.at(token.Ident, token.Star, token.Amp) {
		def.Parameters = t.parseParameterList(func(tok token.Token) bool {
			return tok.Kind.IsTerminator()
		})
	}

	body := t.parseStatements(stopAt(
		token.KwEnd, token.KwRescue, token.KwElse, token.KwEnsure,
	))
	if t.at(token.KwRescue, token.KwElse, token.KwEnsure) {
		// A method body with a rescue tail is an implicit begin block.
		rescue, elseNode, ensure := t.parseRescueChain()
		begin := &ast.BeginNode{
			Extent: ast.At(source.Join(
				body.Span(), spanOf(rescue), spanOf(elseNode), spanOf(ensure),
			)),
			Statements: body,
			Rescue:     rescue,
			Else:       elseNode,
			Ensure:     ensure,
		}
		body = &ast.StatementsNode{Extent: ast.At(begin.Range), Body: []ast.Node{begin}}
	}
	def.Body = body
	endTok := t.expectEnd("def")

	def.Range = source.Join(
		kw.Span, spanOf(def.Receiver), spanOf(def.Parameters),
		body.Span(), endTok.Span,
	)
	return def
}

// parseDefName reads a definition's method name: an identifier, a constant,
// a keyword, an operator, or the subscript forms `[]` and `[]=`. Setter
// names take their trailing `=` only when it is adjacent.
func (t *treeParser) parseDefName() string {
	tok := t.peek()
	switch {
	case tok.Is(token.Ident, token.Constant) || tok.Kind.IsKeyword():
		t.next()
		name := tok.Text()
		if eq := t.peek(); eq.Kind == token.Eq && eq.Start == tok.End {
			t.next()
			name += "="
		}
		return name

	case tok.Kind == token.LBracket && t.peekAt(1).Kind == token.RBracket:
		t.next()
		closeTok := t.next()
		name := "[]"
		if eq := t.peek(); eq.Kind == token.Eq && eq.Start == closeTok.End {
			t.next()
			name += "="
		}
		return name

	case isOperatorMethodName(tok.Kind):
		t.next()
		return tok.Text()
	}

	t.parser.diagnostics.Errorf(t.here(), "Expected a method name after `def`.")
	return ""
}

func isOperatorMethodName(kind token.Kind) bool {
	switch kind {
	case token.EqEq, token.EqEqEq, token.NotEq, token.Match, token.Compare,
		token.Lt, token.LtEq, token.Gt, token.GtEq,
		token.LtLt, token.GtGt,
		token.Plus, token.Minus, token.Star, token.StarStar,
		token.Slash, token.Percent,
		token.Amp, token.Pipe, token.Caret, token.Tilde, token.Bang:
		return true
	}
	return false
}

// parseParameterList parses method or block parameters until a token
// matching isEnd, which is left unconsumed.
func (t *treeParser) parseParameterList(isEnd func(token.Token) bool) *ast.ParametersNode {
	start := t.here()
	params := new(ast.ParametersNode)
	for !isEnd(t.peek()) && !t.at(token.EOF) && !t.peek().Kind.IsTerminator() {
		switch tok := t.peek(); tok.Kind {
		case token.Star:
			star := t.next()
			rest := &ast.RestParameterNode{Extent: ast.At(star.Span)}
			if name, ok := t.accept(token.Ident); ok {
				rest.Name = name.Text()
				rest.Range = source.Join(star.Span, name.Span)
			}
			if params.Rest != nil {
				t.parser.diagnostics.Errorf(rest.Range, "Unexpected second splat parameter.")
			} else {
				params.Rest = rest
			}

		case token.Amp:
			amp := t.next()
			name := t.expect(token.Ident, "Expected a parameter name after `&`.")
			block := &ast.BlockParameterNode{
				Extent: ast.At(source.Join(amp.Span, name.Span)),
				Name:   name.Text(),
			}
			if params.Block != nil {
				t.parser.diagnostics.Errorf(block.Range, "Unexpected second block parameter.")
			} else {
				params.Block = block
			}

		case token.Ident:
			nameTok := t.next()
			if _, ok := t.accept(token.Eq); ok {
				value := t.parseAssignment()
				params.Optionals = append(params.Optionals, &ast.OptionalParameterNode{
					Extent: ast.At(source.Join(nameTok.Span, value.Span())),
					Name:   nameTok.Text(),
					Value:  value,
				})
			} else {
				params.Requireds = append(params.Requireds, &ast.RequiredParameterNode{
					Extent: ast.At(nameTok.Span),
					Name:   nameTok.Text(),
				})
			}

		default:
			t.parser.diagnostics.Errorf(t.here(), "Expected a parameter name.")
			t.next()
			continue
		}

		if _, ok := t.accept(token.Comma); !ok {
			break
		}
	}

	params.Range = start
	for _, p := range params.Requireds {
		params.Range = source.Join(params.Range, p.Range)
	}
	for _, p := range params.Optionals {
		params.Range = source.Join(params.Range, p.Range)
	}
	params.Range = source.Join(params.Range, spanOf(params.Rest), spanOf(params.Block))
	return params
}
