package ssaview

import (
	"strings"
	"testing"

	"javacomp/internal/cfg"
	"javacomp/internal/ssa"
)

func TestDumpRendersPhiAtJoin(t *testing.T) {
	g := cfg.NewGraph()
	then := g.NewBlock()
	els := g.NewBlock()
	join := g.NewBlock()
	g.AddEdge(g.Entry, then, cfg.EdgeBranchTrue)
	g.AddEdge(g.Entry, els, cfg.EdgeBranchFalse)
	g.AddEdge(then, join, cfg.EdgeUnconditional)
	g.AddEdge(els, join, cfg.EdgeUnconditional)

	in := g.NewInstr(cfg.OpAssign, then)
	in.Dest = 0
	in.Operands = []int{g.InternLiteral("1")}
	in2 := g.NewInstr(cfg.OpAssign, els)
	in2.Dest = 0
	in2.Operands = []int{g.InternLiteral("2")}
	ret := g.NewInstr(cfg.OpReturn, join)
	ret.Operands = []int{0}

	g.Build()
	ssa.Build(g, 1, 0)

	m := Dump(g, 1, "f")
	text := m.String()
	if !strings.Contains(text, "phi") {
		t.Fatalf("expected rendered module to contain a phi instruction, got:\n%s", text)
	}
}
