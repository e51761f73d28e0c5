// Package optimize is the per-method optimizer driver (spec §4.10): it
// takes a three-address cfg.Graph fresh out of internal/cfgbuild and
// runs SSA construction, liveness, and register allocation, looping on
// graph-coloring's spill-injection until the allocation converges.
// Grounded on the teacher's internal/compiler top-level Compile
// function shape — one driver function per compilation unit that
// strings together the phases in a fixed order and returns a single
// result value — generalized here to a per-method loop that can
// re-enter earlier phases when a spill forces a rebuild.
package optimize

import (
	"javacomp/internal/cfg"
	"javacomp/internal/compilerconfig"
	"javacomp/internal/liveness"
	"javacomp/internal/regalloc"
	"javacomp/internal/ssa"
)

// Result is everything a back-end emitter needs out of one method's
// optimization run (spec §6: "for each method definition: (cfg,
// locals_pool, parameter_vector, allocation of every variable)" — the
// locals pool and parameter vector are cfgbuild's responsibility;
// this package contributes the graph in its final allocated form plus
// the allocation itself).
type Result struct {
	Graph      *cfg.Graph
	NumVars    int
	Allocation *regalloc.Result
	Rebuilds   int // how many spill-driven graph-coloring restarts ran
}

// Run executes spec §4.10's driver loop for one method: build
// postorder/dominance (already done by cfgbuild.Builder.BuildMethod
// before g is handed here), run SSA, compute liveness, allocate; if
// graph-coloring reports spills, inject spill code, rebuild
// postorder/dominance, and loop. memberCount is the count of the
// flat variable array's leading member-variable prefix (spec §4.7:
// "member variables start at version 0 with no defining instruction").
func Run(g *cfg.Graph, numVars, memberCount int, cfgc compilerconfig.Config) *Result {
	rebuilds := 0
	for {
		numVars = ssa.Build(g, numVars, memberCount)
		live := liveness.Compute(g, numVars)

		if cfgc.Allocator == compilerconfig.LinearScan {
			alloc := regalloc.LinearScan(g, numVars, live, cfgc.NumRegisters)
			regalloc.EliminatePhis(g)
			return &Result{Graph: g, NumVars: numVars, Allocation: alloc, Rebuilds: rebuilds}
		}

		alloc, spilled := regalloc.GraphColor(g, numVars, live, cfgc.NumRegisters)
		if len(spilled) == 0 {
			regalloc.EliminatePhis(g)
			return &Result{Graph: g, NumVars: numVars, Allocation: alloc, Rebuilds: rebuilds}
		}

		slotOf := make(map[int]int, len(spilled))
		for _, v := range spilled {
			slotOf[v] = alloc.Assignments[v].Location
		}
		numVars = regalloc.InjectSpillCode(g, numVars, spilled, slotOf)
		g.Build() // re-derive postorder/dominance over the mutated CFG (spec §4.10)
		rebuilds++
	}
}
