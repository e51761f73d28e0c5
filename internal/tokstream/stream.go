// Package tokstream is the in-core Token Stream component (spec §4.1):
// 4-token lookahead over an external lexer, with a clone facility the
// parser uses to speculate past an ambiguity without committing.
package tokstream

import "javacomp/internal/lexer"

const lookahead = 4

// Source is the minimal external-lexer contract this component
// consumes (spec §6's "token source" collaborator): produce the next
// token, and support being cloned for speculative parsing.
type Source interface {
	Next() lexer.Token
	Copy() Source
}

type scannerSource struct{ sc *lexer.Scanner }

func (s *scannerSource) Next() lexer.Token { return s.sc.Next() }
func (s *scannerSource) Copy() Source      { return &scannerSource{sc: s.sc.Copy()} }

// FromScanner adapts a *lexer.Scanner to Source.
func FromScanner(sc *lexer.Scanner) Source { return &scannerSource{sc: sc} }

// Stream buffers up to `lookahead` tokens read from Source, dropping
// comments as it fills the window (spec §4.1: "comments are dropped
// during peek"). Peeks are idempotent until a Consume.
type Stream struct {
	src  Source
	buf  [lookahead]lexer.Token
	n    int // number of valid entries in buf, always refilled to lookahead; past EOF the window repeats EOF
}

func New(src Source) *Stream {
	s := &Stream{src: src}
	s.fill()
	return s
}

func (s *Stream) fill() {
	for s.n < lookahead {
		t := s.next()
		s.buf[s.n] = t
		s.n++
	}
}

// next reads one non-comment token from the underlying source; EOF
// recurs forever once reached.
func (s *Stream) next() lexer.Token {
	for {
		t := s.src.Next()
		if t.Class == lexer.Comment {
			continue
		}
		return t
	}
}

// Peek returns the token k positions ahead (k in [0, 3]) without
// consuming it.
func (s *Stream) Peek(k int) lexer.Token {
	if k < 0 || k >= lookahead {
		panic("tokstream: Peek out of [0,3] range")
	}
	return s.buf[k]
}

// Consume returns and drops the token at position 0, sliding the
// window and pulling in one fresh token at the back.
func (s *Stream) Consume() lexer.Token {
	t := s.buf[0]
	copy(s.buf[:], s.buf[1:])
	s.n--
	s.fill()
	return t
}

// Copy clones the stream: an independent cursor over a cloned source,
// sharing the same underlying byte buffer but not the read position
// (spec §4.1, §9). Used to open an ambiguity frame.
func (s *Stream) Copy() *Stream {
	clone := &Stream{src: s.src.Copy(), buf: s.buf, n: s.n}
	return clone
}
