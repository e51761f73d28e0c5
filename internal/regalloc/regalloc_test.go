package regalloc

import (
	"testing"

	"javacomp/internal/cfg"
	"javacomp/internal/liveness"
)

// buildAllLive builds a single block defining n variables that are all
// read by a final instruction, so every pair interferes.
func buildAllLive(n int) (*cfg.Graph, *liveness.Result) {
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
	live := liveness.Compute(g, n)
	return g, live
}

func TestGraphColorAssignsDistinctRegistersWhenEnough(t *testing.T) {
	g, live := buildAllLive(3)
	res, spilled := GraphColor(g, 3, live, 4)
	if len(spilled) != 0 {
		t.Fatalf("expected no spills with K=4 for 3 mutually-live vars, got %v", spilled)
	}
	seen := map[int]bool{}
	for _, a := range res.Assignments {
		if a.Kind != Register {
			t.Fatalf("expected every variable in a register, got %+v", a)
		}
		if seen[a.Location] {
			t.Fatalf("two interfering variables assigned the same register %d", a.Location)
		}
		seen[a.Location] = true
	}
}

func TestGraphColorSpillsWhenOverconstrained(t *testing.T) {
	g, live := buildAllLive(5)
	res, spilled := GraphColor(g, 5, live, 2)
	if len(spilled) == 0 {
		t.Fatal("expected spills with K=2 for 5 mutually-live variables")
	}
	for _, v := range spilled {
		if res.Assignments[v].Kind != Stack {
			t.Fatalf("variable %d reported as spilled but not assigned a stack slot", v)
		}
	}
}

func TestLinearScanRespectsRegisterBudget(t *testing.T) {
	g, live := buildAllLive(5)
	res := LinearScan(g, 5, live, 2)
	regCount := 0
	for _, a := range res.Assignments {
		if a.Kind == Register {
			regCount++
		}
	}
	if regCount > 2 {
		t.Fatalf("linear-scan assigned %d simultaneous registers with K=2", regCount)
	}
	if res.StackSlots == 0 {
		t.Fatal("expected at least one spill slot when 5 variables compete for 2 registers")
	}
}

func TestInjectSpillCodeBracketsReferences(t *testing.T) {
	g, live := buildAllLive(3)
	_, spilled := GraphColor(g, 3, live, 1)
	if len(spilled) == 0 {
		t.Fatal("expected at least one spill with K=1")
	}
	slotOf := map[int]int{}
	for i, v := range spilled {
		slotOf[v] = i
	}
	newNumVars := InjectSpillCode(g, 3, spilled, slotOf)
	if newNumVars <= 3 {
		t.Fatal("expected spill injection to extend the variable universe")
	}
	foundRead, foundWrite := false, false
	for _, in := range g.Instrs {
		if in.Op == cfg.OpRead {
			foundRead = true
		}
		if in.Op == cfg.OpWrite {
			foundWrite = true
		}
	}
	if !foundRead {
		t.Fatal("expected at least one OpRead bracketing a spilled reference")
	}
	if !foundWrite {
		t.Fatal("expected at least one OpWrite bracketing a spilled definition")
	}
}
