package optimize

import (
	"testing"

	"javacomp/internal/cfg"
	"javacomp/internal/compilerconfig"
	"javacomp/internal/regalloc"
)

// buildManyLive builds one block defining n variables all read by a
// final return, forcing every pair to interfere simultaneously.
func buildManyLive(n int) *cfg.Graph {
	g := cfg.NewGraph()
	b := g.Entry
	operands := make([]int, n)
	for v := 0; v < n; v++ {
		in := g.NewInstr(cfg.OpInit, b)
		in.Dest = v
		operands[v] = v
	}
	ret := g.NewInstr(cfg.OpReturn, b)
	ret.Operands = operands
	g.Build()
	return g
}

func TestRunConvergesWithoutSpillWhenRegistersSuffice(t *testing.T) {
	g := buildManyLive(3)
	cfgc := compilerconfig.Config{Allocator: compilerconfig.GraphColoring, NumRegisters: 4}
	res := Run(g, 3, 0, cfgc)
	if res.Rebuilds != 0 {
		t.Fatalf("expected no spill-driven rebuilds, got %d", res.Rebuilds)
	}
	for _, in := range g.Instrs {
		if in.Op == cfg.OpPhi {
			t.Fatal("expected phis eliminated after allocation")
		}
	}
}

func TestRunRebuildsOnSpill(t *testing.T) {
	g := buildManyLive(6)
	cfgc := compilerconfig.Config{Allocator: compilerconfig.GraphColoring, NumRegisters: 2}
	res := Run(g, 6, 0, cfgc)
	if res.Rebuilds == 0 {
		t.Fatal("expected at least one spill-driven rebuild with K=2 for 6 mutually-live variables")
	}
	foundSpill := false
	for _, a := range res.Allocation.Assignments {
		if a.Kind == regalloc.Stack {
			foundSpill = true
		}
	}
	if !foundSpill {
		t.Fatal("expected at least one variable assigned to the stack")
	}
}

func TestRunWithLinearScanNeverRebuilds(t *testing.T) {
	g := buildManyLive(6)
	cfgc := compilerconfig.Config{Allocator: compilerconfig.LinearScan, NumRegisters: 2}
	res := Run(g, 6, 0, cfgc)
	if res.Rebuilds != 0 {
		t.Fatal("linear-scan should never trigger a driver rebuild")
	}
}
