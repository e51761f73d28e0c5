package cfg

import "testing"

// buildDiamond builds entry -> {then, els} -> join, the textbook
// dominance-frontier example (then/els's frontier is {join}, entry/join
// have none).
func buildDiamond() *Graph {
	g := NewGraph()
	then := g.NewBlock()
	els := g.NewBlock()
	join := g.NewBlock()
	g.AddEdge(g.Entry, then, EdgeBranchTrue)
	g.AddEdge(g.Entry, els, EdgeBranchFalse)
	g.AddEdge(then, join, EdgeUnconditional)
	g.AddEdge(els, join, EdgeUnconditional)
	g.Build()
	return g
}

func TestIdomOfJoinIsEntry(t *testing.T) {
	g := buildDiamond()
	join := 3
	if g.Idom(join) != g.Entry {
		t.Fatalf("expected join's idom to be entry, got %d", g.Idom(join))
	}
}

func TestDominanceFrontierOfBranches(t *testing.T) {
	g := buildDiamond()
	then, els, join := 1, 2, 3
	if !g.DominanceFrontier(then).Has(join) {
		t.Fatal("expected join in then's dominance frontier")
	}
	if !g.DominanceFrontier(els).Has(join) {
		t.Fatal("expected join in else's dominance frontier")
	}
	if !g.DominanceFrontier(g.Entry).IsEmpty() {
		t.Fatal("expected entry's dominance frontier to be empty")
	}
}

func TestDominatesTransitively(t *testing.T) {
	g := buildDiamond()
	join := 3
	if !g.Dominates(g.Entry, join) {
		t.Fatal("expected entry to dominate join")
	}
	if g.Dominates(1, join) {
		t.Fatal("then-block does not dominate join (else also reaches it)")
	}
}

func TestPostorderVisitsEveryBlock(t *testing.T) {
	g := buildDiamond()
	if len(g.Postorder()) != len(g.Blocks) {
		t.Fatalf("expected postorder to cover every block, got %d of %d", len(g.Postorder()), len(g.Blocks))
	}
}

func TestLoopBackEdgeMarksBlock(t *testing.T) {
	g := NewGraph()
	body := g.NewBlock()
	g.AddEdge(g.Entry, body, EdgeUnconditional)
	g.AddEdge(body, body, EdgeLoopBack)
	g.Build()
	if !g.Blocks[body].InLoop {
		t.Fatal("expected loop body block to be marked InLoop")
	}
}
