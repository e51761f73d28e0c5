package tokstream

import (
	"testing"

	"javacomp/internal/lexer"
)

func newStream(src string) *Stream {
	sc := lexer.NewScanner(lexer.NewBuffer([]byte(src)))
	return New(FromScanner(sc))
}

func TestPeekIsIdempotent(t *testing.T) {
	s := newStream("a b c d e")
	first := s.Peek(0)
	second := s.Peek(0)
	if first.Lexeme != second.Lexeme {
		t.Fatalf("peek(0) changed across calls: %q then %q", first.Lexeme, second.Lexeme)
	}
	if s.Peek(1).Lexeme != "b" || s.Peek(3).Lexeme != "d" {
		t.Fatalf("lookahead window wrong: %+v", s.buf)
	}
}

func TestConsumeSlidesWindow(t *testing.T) {
	s := newStream("a b c d e f")
	got := s.Consume()
	if got.Lexeme != "a" {
		t.Fatalf("Consume() = %q, want a", got.Lexeme)
	}
	if s.Peek(0).Lexeme != "b" || s.Peek(3).Lexeme != "e" {
		t.Fatalf("window after consume wrong: %+v", s.buf)
	}
}

func TestEOFRecurs(t *testing.T) {
	s := newStream("a")
	s.Consume()
	for i := 0; i < 3; i++ {
		if s.Peek(0).Class != lexer.EOF {
			t.Fatalf("expected EOF to recur, got %+v", s.Peek(0))
		}
		s.Consume()
	}
}

func TestCopyIsIndependent(t *testing.T) {
	s := newStream("a b c d e f")
	clone := s.Copy()
	clone.Consume()
	clone.Consume()
	if s.Peek(0).Lexeme != "a" {
		t.Fatalf("original stream mutated by clone consume: %q", s.Peek(0).Lexeme)
	}
	if clone.Peek(0).Lexeme != "c" {
		t.Fatalf("clone did not advance: %q", clone.Peek(0).Lexeme)
	}
}
