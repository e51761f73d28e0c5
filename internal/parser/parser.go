// parser.go implements the reduction-based parser of spec §4.3: 4-token
// lookahead, no backtracking once a reduction commits, ambiguity frames
// for the cases 4 lookahead tokens can't locally resolve, and FOLLOW-set
// recovery. Structurally grounded on the teacher's internal/parser/
// parser.go (match/consume/check/peek utility methods, a flat
// statement() dispatch, precedence-climbing expression parsing) —
// generalized from the teacher's dynamically-typed scripting grammar to
// the Java-like surface and the kind-tagged AST of spec §3.
package parser

import (
	"javacomp/internal/diag"
	"javacomp/internal/lexer"
	"javacomp/internal/tokstream"
)

type Parser struct {
	tokens      *tokstream.Stream
	log         *diag.Log
	file        string
	sourceLines []string

	currentClassNameHint string // simple name of the enclosing class, used to spot constructors
}

func New(src *tokstream.Stream, log *diag.Log, file string, sourceLines []string) *Parser {
	return &Parser{tokens: src, log: log, file: file, sourceLines: sourceLines}
}

// --- token utilities, grounded on the teacher's check/match/consume/peek ---

func (p *Parser) peek(k int) lexer.Token { return p.tokens.Peek(k) }

func (p *Parser) isAtEnd() bool { return p.peek(0).Class == lexer.EOF }

func (p *Parser) checkLex(lex string) bool { return p.peek(0).Lexeme == lex && !p.isAtEnd() }

func (p *Parser) checkReserved(rw lexer.ReservedID) bool { return p.peek(0).Reserved == rw }

func (p *Parser) matchLex(lex string) bool {
	if p.checkLex(lex) {
		p.tokens.Consume()
		return true
	}
	return false
}

func (p *Parser) matchReserved(rw lexer.ReservedID) bool {
	if p.checkReserved(rw) {
		p.tokens.Consume()
		return true
	}
	return false
}

func (p *Parser) advance() lexer.Token { return p.tokens.Consume() }

func (p *Parser) span(tok lexer.Token) Span { return spanOfToken(tok) }

// expect consumes a token with the given lexeme or panics a syntax
// diagnostic — mirroring the teacher's consume(t, msg) panic-on-failure
// idiom (internal/parser/parser.go), except the payload is a
// *diag.Diagnostic instead of a bare Go error so the recovery layer can
// type-switch on it safely.
func (p *Parser) expect(lex string, code diag.Code) lexer.Token {
	if p.checkLex(lex) {
		return p.advance()
	}
	panic(p.errAt(code, p.peek(0), lex))
}

func (p *Parser) expectIdent() lexer.Token {
	if p.peek(0).Class == lexer.Identifier && p.peek(0).Reserved == lexer.RWNone {
		return p.advance()
	}
	panic(p.errAt(diag.CodeMissingName, p.peek(0)))
}

func (p *Parser) errAt(code diag.Code, tok lexer.Token, args ...interface{}) *diag.Diagnostic {
	sp := diag.Span{BeginLine: tok.StartLine, BeginCol: tok.StartCol, EndLine: tok.EndLine, EndCol: tok.EndCol}
	d := diag.New(code, p.file, sp, args...)
	if p.sourceLines != nil && tok.StartLine > 0 && tok.StartLine <= len(p.sourceLines) {
		d = d.WithSource(p.sourceLines[tok.StartLine-1])
	}
	return d
}

func (p *Parser) logErr(code diag.Code, tok lexer.Token, args ...interface{}) {
	p.log.Log(p.errAt(code, tok, args...))
}

// --- entry point ---

// ParseCompilationUnit parses imports, an optional package declaration,
// and every top-level class/interface declaration (spec §4.3, §4.4).
func (p *Parser) ParseCompilationUnit() *Node {
	cu := NewNode(KindCompilationUnit)
	for p.checkReserved(lexer.RWPackage) {
		cu.AppendChild(p.packageDecl())
	}
	for p.checkReserved(lexer.RWImport) {
		cu.AppendChild(p.importDecl())
	}
	for !p.isAtEnd() {
		cu.AppendChild(p.safeTopLevel())
	}
	return cu
}

func (p *Parser) safeTopLevel() (n *Node) {
	defer func() {
		if r := recover(); r != nil {
			d, ok := r.(*diag.Diagnostic)
			if !ok {
				panic(r)
			}
			p.log.Log(d)
			p.recoverTo(followTopLevel)
			if p.checkLex("}") {
				p.advance()
			}
			n = NewNode(KindAmbiguous)
		}
	}()
	return p.topLevelDecl()
}

func (p *Parser) packageDecl() *Node {
	start := p.advance() // 'package'
	n := NewNode(KindPackageDecl)
	n.Tok = start
	name := p.qualifiedName()
	n.AppendChild(name)
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) importDecl() *Node {
	start := p.advance() // 'import'
	n := NewNode(KindImport)
	n.Tok = start
	onDemand := false
	name := p.qualifiedName()
	if p.matchLex(".") {
		p.expect("*", diag.CodeMissingName)
		onDemand = true
	}
	n.AppendChild(name)
	n.Payload = ImportPayload{OnDemand: onDemand}
	p.expect(";", diag.CodeMissingSemicolon)
	return n
}

func (p *Parser) qualifiedName() *Node {
	n := NewNode(KindName)
	tok := p.expectIdent()
	n.Tok = tok
	n.Span = p.span(tok)
	text := tok.Lexeme
	for p.checkLex(".") && p.peek(1).Class == lexer.Identifier {
		p.advance()
		next := p.expectIdent()
		text += "." + next.Lexeme
		n.Span = unionSpan(n.Span, p.span(next))
	}
	n.Payload = text
	return n
}

// modifiers consumes a run of modifier keywords, returning the combined
// bitset (spec §3: "a variable carries modifier bits").
func (p *Parser) modifiers() ModifierBits {
	var bits ModifierBits
	for {
		switch {
		case p.matchReserved(lexer.RWPublic):
			bits |= ModPublic
		case p.matchReserved(lexer.RWPrivate):
			bits |= ModPrivate
		case p.matchReserved(lexer.RWProtected):
			bits |= ModProtected
		case p.matchReserved(lexer.RWStatic):
			bits |= ModStatic
		case p.matchReserved(lexer.RWFinal):
			bits |= ModFinal
		case p.matchReserved(lexer.RWAbstract):
			bits |= ModAbstract
		case p.matchReserved(lexer.RWSynchronized):
			bits |= ModSynchronized
		case p.matchReserved(lexer.RWNative):
			bits |= ModNative
		case p.matchReserved(lexer.RWTransient):
			bits |= ModTransient
		case p.matchReserved(lexer.RWVolatile):
			bits |= ModVolatile
		case p.matchReserved(lexer.RWStrictfp):
			bits |= ModStrictfp
		default:
			return bits
		}
	}
}
