package parser

import (
	"javacomp/internal/diag"
	"javacomp/internal/lexer"
)

var primitiveNames = map[lexer.ReservedID]string{
	lexer.RWVoid: "void", lexer.RWInt: "int", lexer.RWLong: "long",
	lexer.RWShort: "short", lexer.RWByte: "byte", lexer.RWChar: "char",
	lexer.RWBoolean: "boolean", lexer.RWFloat: "float", lexer.RWDouble: "double",
}

// typeRef parses a primitive or reference type name followed by any
// number of `[]` dimension suffixes attached to the type itself (spec
// §4.4: "a dimension may be written on the type, the declarator, or
// both, and the two must agree").
func (p *Parser) typeRef() *Node {
	n := NewNode(KindType)
	tok := p.peek(0)
	var name string
	var primitive bool
	if pname, ok := primitiveNames[tok.Reserved]; ok {
		p.advance()
		name, primitive = pname, true
	} else {
		id := p.expectIdent()
		name = id.Lexeme
		for p.checkLex(".") && p.peek(1).Class == lexer.Identifier {
			p.advance()
			next := p.expectIdent()
			name += "." + next.Lexeme
		}
	}
	n.Tok = tok
	dim := 0
	for p.checkLex("[") && p.peek(1).Lexeme == "]" {
		p.advance()
		p.advance()
		dim++
	}
	n.Payload = TypePayload{Name: name, Dimension: dim, Primitive: primitive}
	return n
}

// declaratorDims consumes any `[]` suffixes following a declarator name
// (`int x[]`) and reconciles them against the type's own dimension per
// spec §4.4: both zero is fine, both equal-and-nonzero is fine (and a
// duplicate-dimension diagnostic per spec's edge case), one zero and
// the other nonzero is fine (the nonzero wins), both nonzero and
// unequal is an ambiguous-dimension error.
func (p *Parser) declaratorDims(typeDim int) int {
	declDim := 0
	for p.checkLex("[") && p.peek(1).Lexeme == "]" {
		p.advance()
		p.advance()
		declDim++
	}
	switch {
	case typeDim == 0:
		return declDim
	case declDim == 0:
		return typeDim
	case typeDim == declDim:
		p.logErr(diag.CodeDuplicateDimension, p.peek(0))
		return typeDim
	default:
		p.logErr(diag.CodeAmbiguousDimension, p.peek(0))
		return typeDim
	}
}

func (p *Parser) fieldDecl(mods ModifierBits, ty *Node, name lexer.Token) *Node {
	n := NewNode(KindStmtLocalVar) // reused shape: one or more declarators sharing a base type
	n.Tok = name
	n.AppendChild(ty)
	n.AppendChild(p.declaratorRest(ty, name))
	for p.matchLex(",") {
		nextName := p.expectIdent()
		n.AppendChild(p.declaratorRest(ty, nextName))
	}
	n.Payload = ModifierPayload{Bits: mods}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) declaratorRest(ty *Node, name lexer.Token) *Node {
	typeDim := ty.Payload.(TypePayload).Dimension
	dim := p.declaratorDims(typeDim)
	d := NewNode(KindVariableDeclarator)
	d.Tok = name
	if p.matchLex("=") {
		d.AppendChild(p.expression())
	}
	d.Payload = DeclaratorPayload{Name: name.Lexeme, Dimension: dim}
	return d
}

func (p *Parser) methodDecl(mods ModifierBits, ret *Node, name lexer.Token) *Node {
	n := NewNode(KindMethodHeader)
	n.Tok = name
	n.AppendChild(ret)
	p.expect("(", diag.CodeMissingBrace)
	for !p.checkLex(")") {
		n.AppendChild(p.parameter())
		if !p.matchLex(",") {
			break
		}
	}
	p.expect(")", diag.CodeMissingBrace)
	for p.checkLex("[") && p.peek(1).Lexeme == "]" {
		p.advance()
		p.advance()
	}
	if p.matchReserved(lexer.RWThrows) {
		p.qualifiedName()
		for p.matchLex(",") {
			p.qualifiedName()
		}
	}
	n.Payload = MethodHeaderPayload{Name: name.Lexeme, ReturnType: ret.Payload.(TypePayload)}
	if p.matchLex(";") {
		return n // abstract or interface method: no body
	}
	n.AppendChild(p.block())
	_ = mods
	return n
}

func (p *Parser) constructorDecl(mods ModifierBits) *Node {
	name := p.advance()
	n := NewNode(KindMethodHeader)
	n.Tok = name
	p.expect("(", diag.CodeMissingBrace)
	for !p.checkLex(")") {
		n.AppendChild(p.parameter())
		if !p.matchLex(",") {
			break
		}
	}
	p.expect(")", diag.CodeMissingBrace)
	if p.matchReserved(lexer.RWThrows) {
		p.qualifiedName()
		for p.matchLex(",") {
			p.qualifiedName()
		}
	}
	n.Payload = MethodHeaderPayload{Name: name.Lexeme, IsConstructor: true}
	n.AppendChild(p.block())
	_ = mods
	return n
}

func (p *Parser) parameter() *Node {
	n := NewNode(KindParameter)
	ty := p.typeRef()
	name := p.expectIdent()
	dim := p.declaratorDims(ty.Payload.(TypePayload).Dimension)
	n.Tok = name
	n.AppendChild(ty)
	n.Payload = DeclaratorPayload{Name: name.Lexeme, Dimension: dim}
	return n
}
