// Package ssa transforms a cfg.Graph already in three-address form
// into pruned SSA (spec §7): phi placement driven by iterated
// dominance frontiers, followed by a preorder-DFS renaming pass using
// one version stack per variable. Grounded on the teacher's
// internal/compiler locals-table "slot reuse across blocks" shape
// (internal/compiler/compiler.go), inverted here since SSA renaming
// needs a *version per definition* instead of one mutable slot per
// name.
package ssa

import "javacomp/internal/cfg"

// Build runs phi placement then renaming over g in place. numVars is
// the size of the per-method flat variable array (members first, then
// locals); memberCount of the leading prefix starts its SSA version at
// 0 with no defining instruction, matching spec §7's rule that a
// member variable's initial value flows in from outside the method.
// Returns the new variable-universe size: renaming mints one fresh
// dense id per SSA version, so the array grows past numVars.
func Build(g *cfg.Graph, numVars, memberCount int) int {
	defBlocks := collectDefBlocks(g, numVars)
	placePhis(g, numVars, defBlocks)
	return rename(g, numVars, memberCount)
}

func collectDefBlocks(g *cfg.Graph, numVars int) [][]int {
	defBlocks := make([][]int, numVars)
	for _, in := range g.Instrs {
		if in.Dest < 0 {
			continue
		}
		defBlocks[in.Dest] = appendUnique(defBlocks[in.Dest], in.Block)
	}
	return defBlocks
}

func appendUnique(s []int, v int) []int {
	for _, x := range s {
		if x == v {
			return s
		}
	}
	return append(s, v)
}

// placePhis is the standard dominance-frontier worklist algorithm
// (Cytron et al., spec §7): iterate each variable's defining blocks,
// add a phi at every block in the iterated dominance frontier that
// doesn't already have one, and seed the worklist with any newly
// phi'd block (since a phi counts as a new definition).
func placePhis(g *cfg.Graph, numVars int, defBlocks [][]int) {
	hasPhi := make([][]bool, numVars)
	for v := range hasPhi {
		hasPhi[v] = make([]bool, len(g.Blocks))
	}

	for v := 0; v < numVars; v++ {
		worklist := append([]int{}, defBlocks[v]...)
		onWorklist := make(map[int]bool, len(worklist))
		for _, b := range worklist {
			onWorklist[b] = true
		}
		for len(worklist) > 0 {
			b := worklist[len(worklist)-1]
			worklist = worklist[:len(worklist)-1]
			for _, d := range g.DominanceFrontier(b).Elems() {
				if hasPhi[v][d] {
					continue
				}
				hasPhi[v][d] = true
				insertPhi(g, v, d)
				if !onWorklist[d] {
					worklist = append(worklist, d)
					onWorklist[d] = true
				}
			}
		}
	}
}

func insertPhi(g *cfg.Graph, variable, block int) {
	in := &cfg.Instr{
		ID:              len(g.Instrs),
		Op:              cfg.OpPhi,
		Dest:            variable,
		Block:           block,
		Operands:        make([]int, len(g.Blocks[block].Preds)),
		PhiOperandIndex: make([]int, len(g.Blocks[block].Preds)),
	}
	for i := range in.PhiOperandIndex {
		in.PhiOperandIndex[i] = i
		in.Operands[i] = variable // placeholder; renaming overwrites with versioned slots
	}
	g.Instrs = append(g.Instrs, in)
	// Phis live at the front of their block's instruction list (spec
	// §7: "every phi in a block logically executes before any non-phi
	// instruction").
	g.Blocks[block].Instrs = append([]int{in.ID}, g.Blocks[block].Instrs...)
}

// version is a (original variable, SSA generation) pair. The renamer
// mints a fresh dense variable id per generation so every later pass
// keeps treating "variable id" as a flat array index, rather than
// carrying a separate (base, generation) tuple through liveness and
// allocation.
type renamer struct {
	g           *cfg.Graph
	nextID      int
	stacks      [][]int // per original variable, stack of current SSA ids
	origOf      map[int]int
	visitedOnce []bool
}

// rename performs the standard preorder-DFS-over-the-dominator-tree
// renaming pass (spec §7). Member variables (indices < memberCount)
// start with version 0 already bound to their original index, carrying
// no defining instruction, per spec: a member's value on method entry
// is whatever the caller left it as, not something this method
// defines.
func rename(g *cfg.Graph, numVars, memberCount int) int {
	r := &renamer{g: g, nextID: numVars, stacks: make([][]int, numVars), origOf: make(map[int]int)}
	for v := 0; v < numVars; v++ {
		r.stacks[v] = []int{v}
		r.origOf[v] = v
	}

	type frame struct {
		block     int
		next      int
		pushCount []int // per original variable, how many versions this block pushed
	}
	visited := make([]bool, len(g.Blocks))

	var stack []frame
	stack = append(stack, frame{block: g.Entry})
	visited[g.Entry] = true

	renameBlock := func(f *frame) {
		f.pushCount = make([]int, numVars)
		fresh := func(orig int) int {
			id := r.freshVersion(orig)
			f.pushCount[r.currentOrig(orig)]++
			return id
		}
		for _, id := range g.Blocks[f.block].Instrs {
			in := g.Instrs[id]
			if in.Op == cfg.OpPhi {
				in.Dest = fresh(in.Dest)
				continue
			}
			for i, opnd := range in.Operands {
				if cfg.IsLiteral(opnd) {
					continue
				}
				orig := r.currentOrig(opnd)
				in.Operands[i] = r.top(orig)
			}
			if in.Dest >= 0 {
				in.Dest = fresh(in.Dest)
			}
		}
		for _, e := range g.Blocks[f.block].Succs {
			succ := e.To
			predIdx := indexOfPred(g.Blocks[succ].Preds, f.block)
			for _, id := range g.Blocks[succ].Instrs {
				in := g.Instrs[id]
				if in.Op != cfg.OpPhi || predIdx < 0 || predIdx >= len(in.Operands) {
					continue
				}
				orig := r.phiOrig(in, predIdx)
				in.Operands[predIdx] = r.top(orig)
			}
		}
	}

	popFrame := func(f frame) {
		for orig, n := range f.pushCount {
			s := r.stacks[orig]
			r.stacks[orig] = s[:len(s)-n]
		}
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == 0 {
			renameBlock(top)
		}
		advanced := false
		for top.next < len(g.Blocks) {
			child := top.next
			top.next++
			if g.Idom(child) == top.block && !visited[child] {
				visited[child] = true
				stack = append(stack, frame{block: child})
				advanced = true
				break
			}
		}
		if advanced {
			continue
		}
		popFrame(*top)
		stack = stack[:len(stack)-1]
	}

	return r.nextID
}

// phiOrig recovers the original-variable identity a phi's operand slot
// was created for, since insertPhi seeds operands with the original
// variable id before any renaming touches the block.
func (r *renamer) phiOrig(in *cfg.Instr, predIdx int) int {
	return r.currentOrig(in.Operands[predIdx])
}

func (r *renamer) currentOrig(id int) int {
	if orig, ok := r.origOf[id]; ok {
		return orig
	}
	return id
}

func (r *renamer) freshVersion(orig int) int {
	base := r.currentOrig(orig)
	id := r.nextID
	r.nextID++
	r.origOf[id] = base
	r.stacks[base] = append(r.stacks[base], id)
	return id
}

func (r *renamer) top(orig int) int {
	s := r.stacks[orig]
	return s[len(s)-1]
}

func indexOfPred(preds []int, block int) int {
	for i, p := range preds {
		if p == block {
			return i
		}
	}
	return -1
}
