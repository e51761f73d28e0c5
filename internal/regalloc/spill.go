package regalloc

import "javacomp/internal/cfg"

// InjectSpillCode rewrites g in place for every variable in spilled
// (spec §4.9's Spill-code rule): each instruction that reads a spilled
// variable gets a fresh temporary loaded with OpRead immediately
// before it, rewriting the read to use the temporary; each instruction
// that writes one gets an OpWrite appended immediately after, storing
// the written value out to its slot. New temporaries extend numVars;
// the returned value is the new variable-universe size the caller must
// re-run SSA/liveness/allocation against (spec §4.10: "re-populate
// variables/instructions and loop").
//
// slotOf maps a spilled variable to the stack slot regalloc already
// assigned it, so repeated spills of the same original variable across
// rebuild iterations land on the same slot.
func InjectSpillCode(g *cfg.Graph, numVars int, spilled []int, slotOf map[int]int) int {
	if len(spilled) == 0 {
		return numVars
	}
	isSpilled := make([]bool, numVars)
	for _, v := range spilled {
		isSpilled[v] = true
	}

	nextVar := numVars
	freshTemp := func() int {
		v := nextVar
		nextVar++
		return v
	}

	for _, b := range g.Blocks {
		var rewritten []int
		for _, id := range b.Instrs {
			in := g.Instrs[id]
			if in.Op == cfg.OpPhi {
				rewritten = append(rewritten, id)
				continue
			}
			for i, opnd := range in.Operands {
				if cfg.IsLiteral(opnd) || !isSpilled[opnd] {
					continue
				}
				tmp := freshTemp()
				read := &cfg.Instr{
					ID:       len(g.Instrs),
					Op:       cfg.OpRead,
					Dest:     tmp,
					Operands: []int{opnd},
					Const:    slotOf[opnd],
					Block:    b.ID,
				}
				g.Instrs = append(g.Instrs, read)
				rewritten = append(rewritten, read.ID)
				in.Operands[i] = tmp
			}
			rewritten = append(rewritten, id)
			if in.Dest >= 0 && isSpilled[in.Dest] {
				tmp := freshTemp()
				orig := in.Dest
				in.Dest = tmp
				write := &cfg.Instr{
					ID:       len(g.Instrs),
					Op:       cfg.OpWrite,
					Dest:     orig,
					Operands: []int{tmp},
					Const:    slotOf[orig],
					Block:    b.ID,
				}
				g.Instrs = append(g.Instrs, write)
				rewritten = append(rewritten, write.ID)
			}
		}
		b.Instrs = rewritten
	}

	return nextVar
}

// EliminatePhis drops every OpPhi instruction from every block (spec
// §4.10: "after allocation, eliminate phi... the back end lowers phi
// via parallel moves"). This package does not emit the parallel moves
// itself — that belongs to the back-end emitter, an external
// collaborator per this module's scope.
func EliminatePhis(g *cfg.Graph) {
	for _, b := range g.Blocks {
		var kept []int
		for _, id := range b.Instrs {
			if g.Instrs[id].Op == cfg.OpPhi {
				continue
			}
			kept = append(kept, id)
		}
		b.Instrs = kept
	}
}
