package ssa

import (
	"testing"

	"javacomp/internal/cfg"
)

// buildDiamondWithDef builds entry -> {then, else} -> join where
// variable 0 is defined in both then and else, and used in join.
func buildDiamondWithDef() *cfg.Graph {
	g := cfg.NewGraph()
	then := g.NewBlock()
	els := g.NewBlock()
	join := g.NewBlock()
	g.AddEdge(g.Entry, then, cfg.EdgeBranchTrue)
	g.AddEdge(g.Entry, els, cfg.EdgeBranchFalse)
	g.AddEdge(then, join, cfg.EdgeUnconditional)
	g.AddEdge(els, join, cfg.EdgeUnconditional)

	in := g.NewInstr(cfg.OpInit, then)
	in.Dest = 0

	in2 := g.NewInstr(cfg.OpInit, els)
	in2.Dest = 0

	use := g.NewInstr(cfg.OpReturn, join)
	use.Operands = []int{0}

	g.Build()
	return g
}

func TestPhiInsertedAtJoin(t *testing.T) {
	g := buildDiamondWithDef()
	Build(g, 1, 0)

	join := 3
	found := false
	for _, id := range g.Blocks[join].Instrs {
		if g.Instrs[id].Op == cfg.OpPhi {
			found = true
			if len(g.Instrs[id].Operands) != 2 {
				t.Fatalf("expected phi with 2 operands, got %d", len(g.Instrs[id].Operands))
			}
		}
	}
	if !found {
		t.Fatal("expected a phi instruction at the join block")
	}
}

func TestRenamingProducesDistinctVersions(t *testing.T) {
	g := buildDiamondWithDef()
	Build(g, 1, 0)

	then, els := 1, 2
	thenDef := g.Instrs[g.Blocks[then].Instrs[0]].Dest
	elseDef := g.Instrs[g.Blocks[els].Instrs[0]].Dest
	if thenDef == elseDef {
		t.Fatal("expected distinct SSA versions for the two definitions")
	}
}
