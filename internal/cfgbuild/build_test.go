package cfgbuild

import (
	"testing"

	"github.com/kr/pretty"

	"javacomp/internal/diag"
	"javacomp/internal/lexer"
	"javacomp/internal/parser"
	"javacomp/internal/tokstream"
)

func parseMethod(t *testing.T, methodSrc string) *parser.Node {
	t.Helper()
	src := "class T { " + methodSrc + " }"
	buf := lexer.NewBuffer([]byte(src))
	sc := lexer.NewScanner(buf)
	stream := tokstream.New(tokstream.FromScanner(sc))
	log := diag.NewLog()
	p := parser.New(stream, log, "t.java", nil)
	cu := p.ParseCompilationUnit()
	if log.HasError() {
		t.Fatalf("parse errors: %v", log.Entries())
	}
	top := cu.FirstChild
	for c := top.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == parser.KindMethodHeader {
			return c
		}
	}
	t.Fatal("no method found")
	return nil
}

func TestBuildStraightLineMethod(t *testing.T) {
	m := parseMethod(t, "int add(int a, int b) { return a + b; }")
	log := diag.NewLog()
	b := NewBuilder(nil, log, "t.java")
	g := b.BuildMethod(m)
	if len(g.Blocks) != 1 {
		t.Fatalf("expected a single block, got %d", len(g.Blocks))
	}
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
}

func TestBuildIfElseSplitsBlocks(t *testing.T) {
	m := parseMethod(t, `int max(int a, int b) {
		if (a > b) { return a; } else { return b; }
	}`)
	log := diag.NewLog()
	b := NewBuilder(nil, log, "t.java")
	g := b.BuildMethod(m)
	if len(g.Blocks) < 4 {
		t.Fatalf("expected at least 4 blocks (entry/then/else/join), got %d", len(g.Blocks))
	}
}

func TestBuildWhileLoopHasBackEdge(t *testing.T) {
	m := parseMethod(t, `int sum(int n) {
		int total = 0;
		while (n > 0) {
			total += n;
			n = n - 1;
		}
		return total;
	}`)
	log := diag.NewLog()
	b := NewBuilder(nil, log, "t.java")
	g := b.BuildMethod(m)
	found := false
	for _, blk := range g.Blocks {
		if blk.InLoop {
			found = true
		}
	}
	if !found {
		t.Fatal("expected at least one block marked InLoop")
	}
}

func TestPreIncLowersToThreeInstructionsPlusReturn(t *testing.T) {
	m := parseMethod(t, "void run() { b = 1; ++b + b; return; }")
	log := diag.NewLog()
	b := NewBuilder([]string{"b"}, log, "t.java")
	g := b.BuildMethod(m)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	// b = 1 (1 assign), ++b (1 in-place arith), ++b + b (1 arith), return (1).
	if len(g.Instrs) != 4 {
		t.Fatalf("expected 4 instructions, got %d:\n%s", len(g.Instrs), pretty.Sprint(g.Instrs))
	}
}

func TestPostIncLowersToFourInstructionsPlusReturn(t *testing.T) {
	m := parseMethod(t, "void run() { b = 1; b++ + b; return; }")
	log := diag.NewLog()
	b := NewBuilder([]string{"b"}, log, "t.java")
	g := b.BuildMethod(m)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	// b = 1 (1 assign), b++ (1 snapshot + 1 in-place arith), b++ + b (1 arith), return (1).
	if len(g.Instrs) != 5 {
		t.Fatalf("expected 5 instructions, got %d:\n%s", len(g.Instrs), pretty.Sprint(g.Instrs))
	}
}

func TestUnboundBreakDiagnosed(t *testing.T) {
	m := parseMethod(t, "void run() { break; }")
	log := diag.NewLog()
	b := NewBuilder(nil, log, "t.java")
	b.BuildMethod(m)
	if !log.HasError() {
		t.Fatal("expected an unbound-break diagnostic")
	}
}
