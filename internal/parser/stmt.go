package parser

import (
	"javacomp/internal/diag"
	"javacomp/internal/lexer"
)

func (p *Parser) block() *Node {
	n := NewNode(KindStmtBlock)
	n.Tok = p.expect("{", diag.CodeMissingBrace)
	for !p.checkLex("}") && !p.isAtEnd() {
		n.AppendChild(p.safeStatement())
	}
	p.expect("}", diag.CodeMissingBrace)
	return n
}

func (p *Parser) safeStatement() (n *Node) {
	defer func() {
		if r := recover(); r != nil {
			d, ok := r.(*diag.Diagnostic)
			if !ok {
				panic(r)
			}
			p.log.Log(d)
			p.recoverTo(followStatement)
			if p.checkLex(";") {
				p.advance()
			}
			n = NewNode(KindAmbiguous)
		}
	}()
	return p.statement()
}

// statement is the flat per-keyword dispatch the teacher's statement()
// method uses (internal/parser/parser.go), generalized to the Java-like
// statement grammar of spec §4.4.
func (p *Parser) statement() *Node {
	switch {
	case p.checkLex("{"):
		return p.block()
	case p.checkReserved(lexer.RWIf):
		return p.ifStmt()
	case p.checkReserved(lexer.RWWhile):
		return p.whileStmt()
	case p.checkReserved(lexer.RWDo):
		return p.doStmt()
	case p.checkReserved(lexer.RWFor):
		return p.forStmt()
	case p.checkReserved(lexer.RWReturn):
		return p.returnStmt()
	case p.checkReserved(lexer.RWBreak):
		return p.breakStmt()
	case p.checkReserved(lexer.RWContinue):
		return p.continueStmt()
	case p.checkReserved(lexer.RWSwitch):
		return p.switchStmt()
	case p.checkReserved(lexer.RWThrow):
		return p.throwStmt()
	case p.checkReserved(lexer.RWTry):
		return p.tryStmt()
	case p.checkLex(";"):
		p.advance()
		return NewNode(KindStmtBlock) // empty statement
	}

	if p.peek(0).Class == lexer.Identifier && p.peek(1).Lexeme == ":" {
		return p.labeledStmt()
	}
	if _, ok := primitiveNames[p.peek(0).Reserved]; ok {
		return p.localVarDecl()
	}
	if p.peek(0).Class == lexer.Identifier {
		return p.localVarOrExprStmt()
	}
	return p.exprStmt()
}

// localVarOrExprStmt resolves local-declaration-vs-expression-statement
// ambiguity (spec §4.4, §8 scenario 5) the same way castOrParenExpr
// resolves cast-vs-paren: both productions are attempted speculatively
// on cloned token streams inside one ambiguity frame. Only one
// candidate parsing cleanly is not a real ambiguity, so that candidate's
// node returns directly; when both parse cleanly, a KindAmbiguous node
// is built with both subtrees as children and the declaration is
// declared the winner, since it parses fully whenever both forms do
// (spec: "the resolver picks the declaration because it parses fully").
func (p *Parser) localVarOrExprStmt() *Node {
	p.log.AmbiguityBegin()
	declNode, declSub, declOK := p.speculate(func(sub *Parser) *Node { return sub.localVarDecl() })
	exprNode, exprSub, exprOK := p.speculate(func(sub *Parser) *Node { return sub.exprStmt() })

	switch {
	case declOK && exprOK:
		amb := NewNode(KindAmbiguous)
		amb.AppendChild(declNode)
		amb.AppendChild(exprNode)
		amb.Payload = AmbiguousPayload{Winner: 0}
		p.log.Resolve(0)
		p.commitSpeculation(declSub)
		return amb
	case declOK:
		p.log.Resolve(0)
		p.commitSpeculation(declSub)
		return declNode
	case exprOK:
		p.log.Resolve(1)
		p.commitSpeculation(exprSub)
		return exprNode
	default:
		p.log.AmbiguityEnd()
		return p.exprStmt()
	}
}

// looksLikeLocalVarDecl is the lookahead-4 reduction the for-loop init
// clause uses (spec §4.4, GLOSSARY "reduction rule"): a primitive
// keyword always starts a declaration; an identifier starts one only
// when followed eventually by another identifier before a '(' or '=' at
// the same bracket depth 0 — i.e. peek(1) is itself an identifier
// (`Foo bar`), or peek(1) opens an array-dimension pair that is itself
// followed by a name. A for-loop's init clause never hits the
// declaration-vs-assignment ambiguity the general statement position
// does (spec §8 scenario 5 is about a bare top-level identifier, not an
// init clause already disambiguated by the surrounding `for (...)`), so
// this cheap heuristic is kept rather than given the full speculative
// treatment localVarOrExprStmt uses.
func (p *Parser) looksLikeLocalVarDecl() bool {
	if _, ok := primitiveNames[p.peek(0).Reserved]; ok {
		return true
	}
	if p.peek(0).Class != lexer.Identifier {
		return false
	}
	k := 1
	for p.peek(k).Lexeme == "." && p.peek(k+1).Class == lexer.Identifier {
		k += 2
	}
	for p.peek(k).Lexeme == "[" && p.peek(k+1).Lexeme == "]" {
		k += 2
	}
	return p.peek(k).Class == lexer.Identifier
}

func (p *Parser) localVarDecl() *Node {
	n := NewNode(KindStmtLocalVar)
	ty := p.typeRef()
	n.Tok = ty.Tok
	n.AppendChild(ty)
	name := p.expectIdent()
	n.AppendChild(p.declaratorRest(ty, name))
	for p.matchLex(",") {
		nextName := p.expectIdent()
		n.AppendChild(p.declaratorRest(ty, nextName))
	}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) exprStmt() *Node {
	n := NewNode(KindStmtExpr)
	e := p.expression()
	n.Tok = e.Tok
	n.AppendChild(e)
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) ifStmt() *Node {
	n := NewNode(KindStmtIf)
	n.Tok = p.advance()
	p.expect("(", diag.CodeMissingBrace)
	n.AppendChild(p.expression())
	p.expect(")", diag.CodeMissingBrace)
	n.AppendChild(p.safeStatement())
	if p.matchReserved(lexer.RWElse) {
		n.AppendChild(p.safeStatement())
	}
	return n
}

func (p *Parser) whileStmt() *Node {
	n := NewNode(KindStmtWhile)
	n.Tok = p.advance()
	p.expect("(", diag.CodeMissingBrace)
	n.AppendChild(p.expression())
	p.expect(")", diag.CodeMissingBrace)
	n.AppendChild(p.safeStatement())
	return n
}

func (p *Parser) doStmt() *Node {
	n := NewNode(KindStmtDo)
	n.Tok = p.advance()
	n.AppendChild(p.safeStatement())
	p.expect("while", diag.CodeMissingName) // keyword-as-lexeme: reserved word check done via lexeme here
	p.expect("(", diag.CodeMissingBrace)
	n.AppendChild(p.expression())
	p.expect(")", diag.CodeMissingBrace)
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) forStmt() *Node {
	n := NewNode(KindStmtFor)
	n.Tok = p.advance()
	p.expect("(", diag.CodeMissingBrace)

	init := NewNode(KindStmtBlock)
	if !p.checkLex(";") {
		if p.looksLikeLocalVarDecl() {
			init.AppendChild(p.localVarDeclNoSemi())
		} else {
			init.AppendChild(p.expression())
			for p.matchLex(",") {
				init.AppendChild(p.expression())
			}
		}
	}
	p.expect(";", diag.CodeMissingSemicolon)
	n.AppendChild(init)

	cond := NewNode(KindStmtBlock)
	if !p.checkLex(";") {
		cond.AppendChild(p.expression())
	}
	p.expect(";", diag.CodeMissingSemicolon)
	n.AppendChild(cond)

	update := NewNode(KindStmtBlock)
	if !p.checkLex(")") {
		update.AppendChild(p.expression())
		for p.matchLex(",") {
			update.AppendChild(p.expression())
		}
	}
	p.expect(")", diag.CodeMissingBrace)
	n.AppendChild(update)

	n.AppendChild(p.safeStatement())
	return n
}

func (p *Parser) localVarDeclNoSemi() *Node {
	n := NewNode(KindStmtLocalVar)
	ty := p.typeRef()
	n.Tok = ty.Tok
	n.AppendChild(ty)
	name := p.expectIdent()
	n.AppendChild(p.declaratorRest(ty, name))
	for p.matchLex(",") {
		nextName := p.expectIdent()
		n.AppendChild(p.declaratorRest(ty, nextName))
	}
	return n
}

func (p *Parser) returnStmt() *Node {
	n := NewNode(KindStmtReturn)
	n.Tok = p.advance()
	if !p.checkLex(";") {
		n.AppendChild(p.expression())
	}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) breakStmt() *Node {
	n := NewNode(KindStmtBreak)
	n.Tok = p.advance()
	if p.peek(0).Class == lexer.Identifier {
		label := p.advance()
		n.Payload = LabelPayload{Label: label.Lexeme}
	}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) continueStmt() *Node {
	n := NewNode(KindStmtContinue)
	n.Tok = p.advance()
	if p.peek(0).Class == lexer.Identifier {
		label := p.advance()
		n.Payload = LabelPayload{Label: label.Lexeme}
	}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) throwStmt() *Node {
	n := NewNode(KindStmtThrow)
	n.Tok = p.advance()
	n.AppendChild(p.expression())
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) labeledStmt() *Node {
	n := NewNode(KindStmtLabeled)
	label := p.advance()
	p.advance() // ':'
	n.Tok = label
	n.Payload = LabelPayload{Label: label.Lexeme}
	n.AppendChild(p.safeStatement())
	return n
}

func (p *Parser) switchStmt() *Node {
	n := NewNode(KindStmtSwitch)
	n.Tok = p.advance()
	p.expect("(", diag.CodeMissingBrace)
	n.AppendChild(p.expression())
	p.expect(")", diag.CodeMissingBrace)
	p.expect("{", diag.CodeMissingBrace)
	for p.checkReserved(lexer.RWCase) || p.checkReserved(lexer.RWDefault) {
		n.AppendChild(p.switchCase())
	}
	p.expect("}", diag.CodeMissingBrace)
	return n
}

func (p *Parser) switchCase() *Node {
	n := NewNode(KindSwitchCase)
	isDefault := p.checkReserved(lexer.RWDefault)
	n.Tok = p.advance()
	if !isDefault {
		n.AppendChild(p.expression())
	}
	p.expect(":", diag.CodeMissingName)
	for !p.checkReserved(lexer.RWCase) && !p.checkReserved(lexer.RWDefault) && !p.checkLex("}") && !p.isAtEnd() {
		n.AppendChild(p.safeStatement())
	}
	n.Payload = SwitchCasePayload{IsDefault: isDefault}
	return n
}

func (p *Parser) tryStmt() *Node {
	n := NewNode(KindStmtTry)
	n.Tok = p.advance()
	n.AppendChild(p.block())
	for p.checkReserved(lexer.RWCatch) {
		n.AppendChild(p.catchClause())
	}
	if p.matchReserved(lexer.RWFinally) {
		n.AppendChild(p.block())
	}
	return n
}

func (p *Parser) catchClause() *Node {
	n := NewNode(KindStmtBlock)
	n.Tok = p.advance()
	p.expect("(", diag.CodeMissingBrace)
	p.modifiers()
	ty := p.typeRef()
	name := p.expectIdent()
	n.AppendChild(ty)
	n.Payload = DeclaratorPayload{Name: name.Lexeme}
	p.expect(")", diag.CodeMissingBrace)
	n.AppendChild(p.block())
	return n
}
