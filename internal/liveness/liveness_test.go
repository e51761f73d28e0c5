package liveness

import (
	"testing"

	"javacomp/internal/cfg"
)

// buildLinear builds entry -> def(v0) -> use(v0), so v0 is live out of
// the def block and live in to the use block, but not live in to entry
// (no predecessor defines or uses it before the def block).
func buildLinear() (*cfg.Graph, int) {
	g := cfg.NewGraph()
	defBlock := g.NewBlock()
	useBlock := g.NewBlock()
	g.AddEdge(g.Entry, defBlock, cfg.EdgeUnconditional)
	g.AddEdge(defBlock, useBlock, cfg.EdgeUnconditional)

	in := g.NewInstr(cfg.OpInit, defBlock)
	in.Dest = 0

	use := g.NewInstr(cfg.OpReturn, useBlock)
	use.Operands = []int{0}

	g.Build()
	return g, defBlock
}

func TestLiveOutOfDefBlock(t *testing.T) {
	g, defBlock := buildLinear()
	r := Compute(g, 1)
	if !r.LiveOut[defBlock].Has(0) {
		t.Fatal("expected variable 0 to be live out of the defining block")
	}
	if r.LiveIn[g.Entry].Has(0) {
		t.Fatal("did not expect variable 0 to be live into the entry block")
	}
}

func TestInstrLiveOutIncludesLaterUse(t *testing.T) {
	g, defBlock := buildLinear()
	r := Compute(g, 1)
	defInstrID := g.Blocks[defBlock].Instrs[0]
	if !r.InstrLiveOut[defInstrID].Has(0) {
		t.Fatal("expected variable 0 live immediately after its definition, since a later block uses it")
	}
}
