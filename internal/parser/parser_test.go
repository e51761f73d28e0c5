package parser

import (
	"testing"

	"javacomp/internal/diag"
	"javacomp/internal/exprengine"
	"javacomp/internal/lexer"
	"javacomp/internal/tokstream"
)

func parse(t *testing.T, src string) (*Node, *diag.Log) {
	t.Helper()
	buf := lexer.NewBuffer([]byte(src))
	sc := lexer.NewScanner(buf)
	stream := tokstream.New(tokstream.FromScanner(sc))
	log := diag.NewLog()
	p := New(stream, log, "test.java", nil)
	return p.ParseCompilationUnit(), log
}

func TestParseEmptyClass(t *testing.T) {
	cu, log := parse(t, "class Foo { }")
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	top := cu.FirstChild
	if top == nil || top.Kind != KindTopLevel {
		t.Fatalf("expected a TopLevel node, got %v", cu.Children())
	}
	payload := top.Payload.(TopLevelPayload)
	if payload.Name != "Foo" || payload.IsInterface {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestParseFieldAndMethod(t *testing.T) {
	src := `
class Counter {
    private int value;
    public int get() {
        return value;
    }
    public void add(int delta) {
        value = value + delta;
    }
}`
	cu, log := parse(t, src)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	top := cu.FirstChild
	kinds := []Kind{}
	for c := top.FirstChild; c != nil; c = c.NextSibling {
		kinds = append(kinds, c.Kind)
	}
	if len(kinds) != 3 {
		t.Fatalf("expected 3 members, got %d (%v)", len(kinds), kinds)
	}
	if kinds[0] != KindStmtLocalVar {
		t.Fatalf("expected a field declaration first, got %v", kinds[0])
	}
	if kinds[1] != KindMethodHeader || kinds[2] != KindMethodHeader {
		t.Fatalf("expected two method headers, got %v", kinds)
	}
}

func TestParseControlFlowAndExpressions(t *testing.T) {
	src := `
class Loop {
    public int sum(int n) {
        int total = 0;
        for (int i = 0; i < n; i++) {
            if (i % 2 == 0) {
                total += i;
            } else {
                continue;
            }
        }
        return total;
    }
}`
	_, log := parse(t, src)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
}

func TestParseCastAmbiguityResolvesToCast(t *testing.T) {
	src := `
class Box {
    public Object get() {
        return (Object) this;
    }
}`
	_, log := parse(t, src)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
}

// TestCastParenAmbiguityBuildsAmbiguousNode covers the genuine
// `(a)b`-shaped case where both the cast and the parenthesized-
// expression productions parse cleanly: the parser must surface a real
// KindAmbiguous node with both candidates as children, not silently pick
// a winner and discard the loser.
func TestCastParenAmbiguityBuildsAmbiguousNode(t *testing.T) {
	buf := lexer.NewBuffer([]byte("(count) value"))
	sc := lexer.NewScanner(buf)
	stream := tokstream.New(tokstream.FromScanner(sc))
	log := diag.NewLog()
	p := New(stream, log, "t.java", nil)

	n := p.unaryExpr()
	if n.Kind != KindAmbiguous {
		t.Fatalf("expected a KindAmbiguous node, got %v", n.Kind)
	}
	if len(n.Children()) != 2 {
		t.Fatalf("expected 2 candidate children, got %d", len(n.Children()))
	}
	payload, ok := n.Payload.(AmbiguousPayload)
	if !ok {
		t.Fatal("expected an AmbiguousPayload")
	}
	if payload.Winner != 0 {
		t.Fatalf("expected the cast candidate (index 0) to win, got %d", payload.Winner)
	}
	if n.Children()[0].Payload.(OperatorPayload).Op != exprengine.OpCast {
		t.Fatal("expected the winning child to be the cast candidate")
	}
}

// TestLocalVarOrExprStmtPicksExpressionWhenUnambiguous covers the
// common, non-ambiguous case spec §8 scenario 5 contrasts against: a
// bare assignment statement never opens a KindAmbiguous node, since the
// declaration candidate never parses.
func TestLocalVarOrExprStmtPicksExpressionWhenUnambiguous(t *testing.T) {
	src := `
class Box {
    void run() {
        count = 1;
    }
}`
	cu, log := parse(t, src)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
	method := cu.FirstChild.FirstChild
	body := method.LastChild
	stmt := body.FirstChild
	if stmt.Kind != KindStmtExpr {
		t.Fatalf("expected a plain expression statement, got %v", stmt.Kind)
	}
}

func TestParseSwitchAndTry(t *testing.T) {
	src := `
class Thing {
    public void run(int code) {
        switch (code) {
            case 1:
                break;
            default:
                break;
        }
        try {
            doWork();
        } catch (Exception e) {
        } finally {
        }
    }
    private void doWork() {}
}`
	_, log := parse(t, src)
	if log.HasError() {
		t.Fatalf("unexpected errors: %v", log.Entries())
	}
}

func TestRecoversFromMissingSemicolon(t *testing.T) {
	src := `
class Broken {
    public void run() {
        int x = 1
        int y = 2;
    }
}`
	_, log := parse(t, src)
	if !log.HasError() {
		t.Fatal("expected a missing-semicolon diagnostic")
	}
}
