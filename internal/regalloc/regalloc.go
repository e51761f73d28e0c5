// Package regalloc is the two interchangeable register allocators
// spec §4.9 names — graph-coloring with George coalescing and
// optimistic spill, and a greedy linear-scan — plus the spill-code
// injector that feeds a mutated CFG back to the optimizer driver.
// Grounded on the teacher's internal/compiler constant-folding pass
// shape (a worklist-driven rewrite of the instruction stream that
// mutates in place and reports what it changed) generalized from a
// single fixed-point fold to the Build/Simplify/Coalesce/Freeze/Spill/
// Select state machine; the underlying graph bookkeeping reuses
// idxset.Set the same way internal/liveness and internal/ssa do.
package regalloc

import (
	"sort"

	"javacomp/internal/cfg"
	"javacomp/internal/idxset"
	"javacomp/internal/liveness"
)

// Kind tags where an allocated variable ultimately lives.
type Kind int

const (
	Undefined Kind = iota
	Register
	Stack
)

// Assignment is the per-variable allocation result spec §4.9's closing
// line names: "(kind, location)".
type Assignment struct {
	Kind     Kind
	Location int
}

// Result is the whole-method allocation: one Assignment per variable
// in the flat variable array, plus how many stack slots were handed
// out (the back end sizes the frame from this).
type Result struct {
	Assignments []Assignment
	StackSlots  int
}

// interferenceGraph is an adjacency-set-per-node undirected graph plus
// the move-relation spec §4.9's Build/Coalesce states need.
type interferenceGraph struct {
	n          int
	adj        []*idxset.Set
	moveWith   []*idxset.Set // nodes connected to this one by an OpAssign
	insideUses []int
	outsideUses []int
}

func newInterferenceGraph(n int) *interferenceGraph {
	g := &interferenceGraph{n: n, adj: make([]*idxset.Set, n), moveWith: make([]*idxset.Set, n), insideUses: make([]int, n), outsideUses: make([]int, n)}
	for i := 0; i < n; i++ {
		g.adj[i] = idxset.New(n)
		g.moveWith[i] = idxset.New(n)
	}
	return g
}

func (g *interferenceGraph) addInterference(a, b int) {
	if a == b {
		return
	}
	g.adj[a].Add(b)
	g.adj[b].Add(a)
}

func (g *interferenceGraph) addMove(a, b int) {
	if a == b {
		return
	}
	g.moveWith[a].Add(b)
	g.moveWith[b].Add(a)
}

func (g *interferenceGraph) degree(n int) int { return g.adj[n].Len() }

// buildInterference implements spec §4.9's Build state: pairwise
// conjunction of each instruction's live-in and live-out (approximated
// here, as is standard, by every pair simultaneously present in an
// instruction's InstrLiveOut plus that instruction's own Dest), and
// move edges from OpAssign instructions connecting two distinct
// variables.
func buildInterference(g *cfg.Graph, numVars int, live *liveness.Result) *interferenceGraph {
	ig := newInterferenceGraph(numVars)

	for _, b := range g.Blocks {
		for _, id := range b.Instrs {
			in := g.Instrs[id]
			out := live.InstrLiveOut[id]
			elems := out.Elems()
			for i := range elems {
				for j := i + 1; j < len(elems); j++ {
					if in.Op == cfg.OpAssign && in.Dest == elems[i] && len(in.Operands) == 1 && in.Operands[0] == elems[j] {
						continue
					}
					if in.Op == cfg.OpAssign && in.Dest == elems[j] && len(in.Operands) == 1 && in.Operands[0] == elems[i] {
						continue
					}
					ig.addInterference(elems[i], elems[j])
				}
			}
			if in.Dest >= 0 {
				for _, v := range elems {
					if v == in.Dest {
						continue
					}
					if in.Op == cfg.OpAssign && len(in.Operands) == 1 && in.Operands[0] == v {
						continue
					}
					ig.addInterference(in.Dest, v)
				}
			}
			if in.Op == cfg.OpAssign && in.Dest >= 0 && len(in.Operands) == 1 && !cfg.IsLiteral(in.Operands[0]) && in.Operands[0] != in.Dest {
				ig.addMove(in.Dest, in.Operands[0])
			}
			for _, v := range usesOf(in) {
				if b.InLoop {
					ig.insideUses[v]++
				} else {
					ig.outsideUses[v]++
				}
			}
			if in.Dest >= 0 {
				if b.InLoop {
					ig.insideUses[in.Dest]++
				} else {
					ig.outsideUses[in.Dest]++
				}
			}
		}
	}
	return ig
}

// usesOf returns in's variable-operand uses, excluding literal pool
// references (which carry no interference/interval weight of their
// own) and phi operands (counted on the predecessor edge, not here).
func usesOf(in *cfg.Instr) []int {
	if in.Op == cfg.OpPhi {
		return nil
	}
	var vars []int
	for _, opnd := range in.Operands {
		if cfg.IsLiteral(opnd) {
			continue
		}
		vars = append(vars, opnd)
	}
	return vars
}

// spillPriority is spec §4.9's Spill-state cost function: lower wins
// (cheaper to spill).
func (g *interferenceGraph) spillPriority(n int) float64 {
	deg := g.degree(n)
	if deg == 0 {
		deg = 1
	}
	cost := float64(g.outsideUses[n] + 10*g.insideUses[n])
	return cost / float64(deg)
}

// coalesceState tracks which original variable ids have been merged
// into which representative, per George's rule (spec §4.9: "tracking
// which original variables merged").
type coalesceState struct {
	rep []int
}

func newCoalesceState(n int) *coalesceState {
	c := &coalesceState{rep: make([]int, n)}
	for i := range c.rep {
		c.rep[i] = i
	}
	return c
}

func (c *coalesceState) find(n int) int {
	for c.rep[n] != n {
		n = c.rep[n]
	}
	return n
}

func (c *coalesceState) union(a, b int) {
	ra, rb := c.find(a), c.find(b)
	if ra != rb {
		c.rep[rb] = ra
	}
}

// GraphColor runs the Build → Simplify → Coalesce → Freeze → Spill →
// Select state machine (spec §4.9). K is the physical register count.
// Returns the allocation plus the set of variable ids that must be
// spilled — a non-empty spill set means the caller must run
// InjectSpillCode and re-run the whole optimizer pipeline (spec
// §4.10's "restart from Build on the mutated CFG").
func GraphColor(g *cfg.Graph, numVars int, live *liveness.Result, k int) (*Result, []int) {
	ig := buildInterference(g, numVars, live)
	cs := newCoalesceState(numVars)

	removed := make([]bool, numVars)
	var colorStack []int
	var spilled []int

	remainingDegree := func(n int) int {
		d := 0
		for _, m := range ig.adj[n].Elems() {
			if !removed[m] {
				d++
			}
		}
		return d
	}

	activeMoveRelated := func(n int) bool {
		for _, m := range ig.moveWith[n].Elems() {
			if !removed[m] {
				return true
			}
		}
		return false
	}

	frozen := make([]bool, numVars)

	for {
		progress := true
		for progress {
			progress = false
			// Simplify: push non-move-related nodes with degree < K.
			// A frozen node counts as non-move-related here, per Freeze.
			for n := 0; n < numVars; n++ {
				if removed[n] {
					continue
				}
				if (frozen[n] || !activeMoveRelated(n)) && remainingDegree(n) < k {
					removed[n] = true
					colorStack = append(colorStack, n)
					progress = true
				}
			}
			if progress {
				continue
			}
			// Coalesce (George): try every move pair still present.
			coalescedAny := false
			for n := 0; n < numVars; n++ {
				if removed[n] {
					continue
				}
				for _, m := range ig.moveWith[n].Elems() {
					if removed[m] || cs.find(n) == cs.find(m) {
						continue
					}
					if georgeSafe(ig, removed, n, m, k) {
						mergeNodes(ig, cs, n, m)
						coalescedAny = true
						break
					}
				}
				if coalescedAny {
					break
				}
			}
			if coalescedAny {
				progress = true
				continue
			}
			// Freeze: demote one low-degree move-related node.
			for n := 0; n < numVars; n++ {
				if removed[n] || frozen[n] {
					continue
				}
				if activeMoveRelated(n) && remainingDegree(n) < k {
					frozen[n] = true
					progress = true
					break
				}
			}
		}

		// Nothing left simplifiable/coalescable/freezable: either done or spill.
		remaining := 0
		worst := -1
		var worstPriority float64
		for n := 0; n < numVars; n++ {
			if removed[n] {
				continue
			}
			remaining++
			p := ig.spillPriority(n)
			if worst == -1 || p < worstPriority {
				worst = n
				worstPriority = p
			}
		}
		if remaining == 0 {
			break
		}
		// Spill: push the lowest-priority node as a potential spill and
		// continue simplifying; Select decides for real which pushed
		// nodes actually ran out of registers.
		removed[worst] = true
		colorStack = append(colorStack, worst)
		spilled = append(spilled, worst)
	}

	// Select: unwind the stack, assigning the lowest free color.
	color := make([]int, numVars)
	for i := range color {
		color[i] = -1
	}
	actuallySpilled := map[int]bool{}
	for i := len(colorStack) - 1; i >= 0; i-- {
		n := colorStack[i]
		used := idxset.New(k + 1)
		for _, m := range ig.adj[n].Elems() {
			rm := cs.find(m)
			if rm != cs.find(n) && color[rm] >= 0 {
				used.Add(color[rm])
			}
		}
		chosen := -1
		for c := 0; c < k; c++ {
			if !used.Has(c) {
				chosen = c
				break
			}
		}
		rep := cs.find(n)
		if chosen == -1 {
			actuallySpilled[n] = true
			continue
		}
		color[rep] = chosen
	}

	res := &Result{Assignments: make([]Assignment, numVars)}
	slot := 0
	var spillList []int
	for n := 0; n < numVars; n++ {
		rep := cs.find(n)
		if actuallySpilled[n] {
			res.Assignments[n] = Assignment{Kind: Stack, Location: slot}
			slot++
			spillList = append(spillList, n)
			continue
		}
		res.Assignments[n] = Assignment{Kind: Register, Location: color[rep]}
	}
	res.StackSlots = slot
	return res, spillList
}

// georgeSafe implements George's conservative coalescing test (spec
// §4.9): coalescing x and y is safe iff every neighbor of x already
// interferes with y or has degree < K (so it's colorable regardless).
func georgeSafe(ig *interferenceGraph, removed []bool, x, y, k int) bool {
	for _, t := range ig.adj[x].Elems() {
		if removed[t] {
			continue
		}
		if ig.adj[y].Has(t) {
			continue
		}
		deg := 0
		for _, m := range ig.adj[t].Elems() {
			if !removed[m] {
				deg++
			}
		}
		if deg >= k {
			return false
		}
	}
	return true
}

// mergeNodes folds x into y's union-find class and rewrites both graphs
// so every later query sees one merged node (spec §4.9: "coalesce
// rewrites the coalesce graph... and the move/interference graphs").
func mergeNodes(ig *interferenceGraph, cs *coalesceState, x, y int) {
	cs.union(y, x)
	rep := cs.find(y)
	other := x
	if rep == x {
		other = y
	}
	for _, n := range ig.adj[other].Elems() {
		ig.addInterference(rep, n)
	}
	for _, n := range ig.moveWith[other].Elems() {
		if n != rep {
			ig.addMove(rep, n)
		}
	}
	ig.moveWith[rep].Remove(other)
	ig.moveWith[other].Remove(rep)
	ig.insideUses[rep] += ig.insideUses[other]
	ig.outsideUses[rep] += ig.outsideUses[other]
}

// interval is a variable's live range expressed in program-point
// indices (spec §4.9's linear-scan: "start = min, end = max program
// point where the variable is live").
type interval struct {
	variable   int
	start, end int
}

// programOrder returns every instruction id in an order consistent
// with the dominator-tree preorder the rest of the pipeline already
// computes, giving linear-scan a total program-point ordering.
func programOrder(g *cfg.Graph) []int {
	var order []int
	visited := make([]bool, len(g.Blocks))
	type frame struct {
		block int
		next  int
	}
	var stack []frame
	stack = append(stack, frame{g.Entry, 0})
	visited[g.Entry] = true
	order = append(order, g.Blocks[g.Entry].Instrs...)
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		advanced := false
		for top.next < len(g.Blocks) {
			child := top.next
			top.next++
			if g.Idom(child) == top.block && !visited[child] {
				visited[child] = true
				order = append(order, g.Blocks[child].Instrs...)
				stack = append(stack, frame{child, 0})
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}
		stack = stack[:len(stack)-1]
	}
	return order
}

// computeIntervals derives per-variable [start,end] program-point
// ranges from the instruction order and each instruction's live-out
// set: a variable's interval spans from its first appearance (def or
// use) to the last instruction at which it is still live-out.
func computeIntervals(g *cfg.Graph, numVars int, live *liveness.Result) []interval {
	order := programOrder(g)
	pos := make(map[int]int, len(order))
	for i, id := range order {
		pos[id] = i
	}

	starts := make([]int, numVars)
	ends := make([]int, numVars)
	seen := make([]bool, numVars)
	for i := range starts {
		starts[i] = -1
		ends[i] = -1
	}

	touch := func(v, p int) {
		if !seen[v] || p < starts[v] {
			starts[v] = p
		}
		if !seen[v] || p > ends[v] {
			ends[v] = p
		}
		seen[v] = true
	}

	for _, id := range order {
		in := g.Instrs[id]
		p := pos[id]
		if in.Dest >= 0 {
			touch(in.Dest, p)
		}
		for _, v := range usesOf(in) {
			touch(v, p)
		}
		for _, v := range live.InstrLiveOut[id].Elems() {
			touch(v, p)
		}
	}

	var out []interval
	for v := 0; v < numVars; v++ {
		if seen[v] {
			out = append(out, interval{variable: v, start: starts[v], end: ends[v]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].start < out[j].start })
	return out
}

// LinearScan implements spec §4.9's greedy linear-scan allocator. It
// never reports a spill set for the caller to rebuild from — stack
// slots are assigned inline as spills occur — matching spec's
// description of linear-scan as a single-pass allocator (unlike
// graph-coloring's restart-on-spill).
func LinearScan(g *cfg.Graph, numVars int, live *liveness.Result, k int) *Result {
	intervals := computeIntervals(g, numVars, live)

	res := &Result{Assignments: make([]Assignment, numVars)}
	for i := range res.Assignments {
		res.Assignments[i] = Assignment{Kind: Undefined}
	}

	var active []interval // sorted by increasing end
	regOf := map[int]int{}
	slot := 0

	expireOldIntervals := func(cur interval) {
		var kept []interval
		for _, it := range active {
			if it.end < cur.start {
				continue
			}
			kept = append(kept, it)
		}
		active = kept
	}

	for _, cur := range intervals {
		expireOldIntervals(cur)
		if len(active) == k {
			// Spill the active interval with the largest end.
			worst := active[len(active)-1]
			if worst.end > cur.end {
				// Steal worst's register for cur and spill worst instead.
				stolen := regOf[worst.variable]
				delete(regOf, worst.variable)
				regOf[cur.variable] = stolen
				active = active[:len(active)-1]
				active = insertByEnd(active, cur)
				res.Assignments[cur.variable] = Assignment{Kind: Register, Location: stolen}
				res.Assignments[worst.variable] = Assignment{Kind: Stack, Location: slot}
				slot++
			} else {
				res.Assignments[cur.variable] = Assignment{Kind: Stack, Location: slot}
				slot++
			}
			continue
		}
		used := make([]bool, k)
		for _, it := range active {
			used[regOf[it.variable]] = true
		}
		r := 0
		for r < k && used[r] {
			r++
		}
		regOf[cur.variable] = r
		res.Assignments[cur.variable] = Assignment{Kind: Register, Location: r}
		active = insertByEnd(active, cur)
	}

	res.StackSlots = slot
	return res
}

func insertByEnd(active []interval, it interval) []interval {
	i := sort.Search(len(active), func(i int) bool { return active[i].end >= it.end })
	active = append(active, interval{})
	copy(active[i+1:], active[i:])
	active[i] = it
	return active
}
