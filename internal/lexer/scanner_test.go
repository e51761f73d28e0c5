package lexer

import "testing"

func scanAll(src string) []Token {
	sc := NewScanner(NewBuffer([]byte(src)))
	var toks []Token
	for {
		t := sc.Next()
		toks = append(toks, t)
		if t.Class == EOF {
			break
		}
	}
	return toks
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks := scanAll("class C { int x; }")
	want := []struct {
		class Class
		rw    ReservedID
		lex   string
	}{
		{Identifier, RWClass, "class"},
		{Identifier, RWNone, "C"},
		{Separator, RWNone, "{"},
		{Identifier, RWInt, "int"},
		{Identifier, RWNone, "x"},
		{Separator, RWNone, ";"},
		{Separator, RWNone, "}"},
		{EOF, RWNone, ""},
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, w := range want {
		if toks[i].Class != w.class || toks[i].Reserved != w.rw || toks[i].Lexeme != w.lex {
			t.Errorf("token %d = %+v, want class=%v rw=%v lex=%q", i, toks[i], w.class, w.rw, w.lex)
		}
	}
}

func TestScanNumberSuffixes(t *testing.T) {
	cases := []struct {
		src  string
		kind NumericKind
		bits int
	}{
		{"1", NumInt, 32},
		{"1L", NumInt, 64},
		{"1.5", NumFloat, 32},
		{"1.5f", NumFloat, 32},
		{"1.5d", NumFloat, 64},
		{"1e10", NumFloat, 32},
	}
	for _, c := range cases {
		toks := scanAll(c.src)
		if toks[0].NumKind != c.kind || toks[0].NumBits != c.bits {
			t.Errorf("scan(%q) = kind=%v bits=%v, want kind=%v bits=%v", c.src, toks[0].NumKind, toks[0].NumBits, c.kind, c.bits)
		}
	}
}

func TestScanOperators(t *testing.T) {
	toks := scanAll("a += 1 && b != c")
	var lex []string
	for _, tk := range toks {
		if tk.Class != EOF {
			lex = append(lex, tk.Lexeme)
		}
	}
	want := []string{"a", "+=", "1", "&&", "b", "!=", "c"}
	if len(lex) != len(want) {
		t.Fatalf("got %v, want %v", lex, want)
	}
	for i := range want {
		if lex[i] != want[i] {
			t.Errorf("token %d = %q, want %q", i, lex[i], want[i])
		}
	}
}

func TestScannerCopyIsIndependent(t *testing.T) {
	sc := NewScanner(NewBuffer([]byte("a b c")))
	sc.Next() // consume "a"
	clone := sc.Copy()
	clone.Next() // consume "b" on the clone only
	tk := sc.Next()
	if tk.Lexeme != "b" {
		t.Fatalf("original scanner advanced past the clone's read: got %q", tk.Lexeme)
	}
}

func TestLineColumnTracking(t *testing.T) {
	toks := scanAll("a\nb")
	if toks[0].StartLine != 1 {
		t.Errorf("a: StartLine = %d, want 1", toks[0].StartLine)
	}
	if toks[1].StartLine != 2 {
		t.Errorf("b: StartLine = %d, want 2", toks[1].StartLine)
	}
}
