package parser

import (
	"javacomp/internal/diag"
	"javacomp/internal/lexer"
)

// topLevelDecl parses a class or interface declaration (spec §4.4).
func (p *Parser) topLevelDecl() *Node {
	mods := p.modifiers()
	var isInterface bool
	switch {
	case p.checkReserved(lexer.RWClass):
		p.advance()
	case p.checkReserved(lexer.RWInterface):
		p.advance()
		isInterface = true
	default:
		panic(p.errAt(diag.CodeMissingName, p.peek(0)))
	}
	n := NewNode(KindTopLevel)
	name := p.expectIdent()
	n.Tok = name
	prevHint := p.currentClassNameHint
	p.currentClassNameHint = name.Lexeme
	defer func() { p.currentClassNameHint = prevHint }()

	var super *Node
	if p.matchReserved(lexer.RWExtends) {
		super = p.qualifiedName()
	}
	var interfaces []*Node
	if isInterface {
		for p.matchReserved(lexer.RWExtends) {
			interfaces = append(interfaces, p.qualifiedName())
		}
	} else if p.matchReserved(lexer.RWImplements) {
		interfaces = append(interfaces, p.qualifiedName())
		for p.matchLex(",") {
			interfaces = append(interfaces, p.qualifiedName())
		}
	}

	n.Payload = TopLevelPayload{
		Name:        name.Lexeme,
		Mods:        mods,
		IsInterface: isInterface,
	}
	if super != nil {
		super.Kind = KindName
		n.AppendChild(withTag(super, "extends"))
	}
	for _, iface := range interfaces {
		n.AppendChild(withTag(iface, "implements"))
	}

	p.expect("{", diag.CodeMissingBrace)
	for !p.checkLex("}") && !p.isAtEnd() {
		n.AppendChild(p.safeMember(isInterface))
	}
	p.expect("}", diag.CodeMissingBrace)
	return n
}

// withTag stashes a role string alongside a Name node's existing string
// payload, marking an extends-name apart from an implements-name
// without relying on sibling order. No code in this module reads the
// tag.
func withTag(n *Node, tag string) *Node {
	n.Payload = taggedName{Text: n.Payload.(string), Tag: tag}
	return n
}

type taggedName struct {
	Text string
	Tag  string
}

// TopLevelPayload is the class/interface declaration payload.
type TopLevelPayload struct {
	Name        string
	Mods        ModifierBits
	IsInterface bool
}

func (p *Parser) safeMember(isInterface bool) (n *Node) {
	defer func() {
		if r := recover(); r != nil {
			d, ok := r.(*diag.Diagnostic)
			if !ok {
				panic(r)
			}
			p.log.Log(d)
			p.recoverTo(followMember)
			if p.checkLex(";") {
				p.advance()
			}
			n = NewNode(KindAmbiguous)
		}
	}()
	return p.member(isInterface)
}

// member parses one field, method, or constructor declaration. The
// lookahead-4 reduction resolving field-vs-method is: modifiers, type,
// name, then peek(0) is either '(' (method/constructor) or anything
// else (field) — entirely resolvable within the 4-token window spec
// §4.3 guarantees, no ambiguity frame needed here.
func (p *Parser) member(isInterface bool) *Node {
	mods := p.modifiers()

	if p.peek(0).Lexeme == p.currentClassNameHint && p.peek(1).Lexeme == "(" {
		return p.constructorDecl(mods)
	}

	ty := p.typeRef()
	name := p.expectIdent()

	if p.checkLex("(") {
		return p.methodDecl(mods, ty, name)
	}
	return p.fieldDecl(mods, ty, name)
}
