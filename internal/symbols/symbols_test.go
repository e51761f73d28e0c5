package symbols

import (
	"testing"

	"javacomp/internal/diag"
	"javacomp/internal/lexer"
	"javacomp/internal/parser"
	"javacomp/internal/tokstream"
)

func parseUnit(t *testing.T, src string) (*parser.Node, *diag.Log) {
	t.Helper()
	buf := lexer.NewBuffer([]byte(src))
	sc := lexer.NewScanner(buf)
	stream := tokstream.New(tokstream.FromScanner(sc))
	log := diag.NewLog()
	p := parser.New(stream, log, "test.java", nil)
	return p.ParseCompilationUnit(), log
}

func TestPass1RegistersMembersAndMethods(t *testing.T) {
	cu, plog := parseUnit(t, `
class Counter {
    private int value;
    public int get() { return value; }
    public void add(int delta) { value = value + delta; }
}`)
	if plog.HasError() {
		t.Fatalf("parse errors: %v", plog.Entries())
	}
	log := diag.NewLog()
	table := NewTable(log)
	table.ResolvePass1(cu)

	ct, ok := table.Classes["Counter"]
	if !ok {
		t.Fatal("expected class Counter to be registered")
	}
	if _, ok := ct.Members.lookup("value"); !ok {
		t.Fatal("expected member 'value' to be registered")
	}
	if len(ct.Methods) != 2 {
		t.Fatalf("expected 2 methods, got %d", len(ct.Methods))
	}
}

func TestMethodOverloadsMangleDistinctly(t *testing.T) {
	cu, _ := parseUnit(t, `
class Ops {
    public int add(int a) { return a; }
    public int add(int a, int b) { return a; }
}`)
	log := diag.NewLog()
	table := NewTable(log)
	table.ResolvePass1(cu)
	ct := table.Classes["Ops"]
	if log.HasError() {
		t.Fatalf("unexpected duplicate-method diagnostic: %v", log.Entries())
	}
	if len(ct.Methods) != 2 {
		t.Fatalf("expected 2 distinct overloads, got %d", len(ct.Methods))
	}
}

func TestDuplicateMemberDiagnosed(t *testing.T) {
	cu, _ := parseUnit(t, `
class Dup {
    int x;
    int x;
}`)
	log := diag.NewLog()
	table := NewTable(log)
	table.ResolvePass1(cu)
	if !log.HasError() {
		t.Fatal("expected a duplicate-member diagnostic")
	}
}
