package parser

import "javacomp/internal/lexer"

// followSet is a small set of lexemes a recovery point scans for (spec
// §4.3: "the parser consults a per-error FOLLOW set and skips tokens
// until a member of that set is at peek(0)").
type followSet map[string]bool

func follow(lexemes ...string) followSet {
	fs := make(followSet, len(lexemes))
	for _, l := range lexemes {
		fs[l] = true
	}
	return fs
}

var (
	followStatement = follow(";", "}")
	followMember    = follow(";", "}")
	followTopLevel  = follow("}")
)

// recoverTo skips tokens until a member of fs is at peek(0) or EOF is
// reached. It never re-enters the production that failed (spec §4.3) —
// callers always return to their caller after recoverTo, they never
// loop back into the same parse function.
func (p *Parser) recoverTo(fs followSet) {
	for {
		tok := p.tokens.Peek(0)
		if tok.Class == lexer.EOF {
			return
		}
		if fs[tok.Lexeme] {
			return
		}
		p.tokens.Consume()
	}
}
