// Package liveness computes SSA-aware live-in/live-out sets per block
// (spec §8): a standard backward worklist dataflow over
// def/use bitsets, except a phi's operands are never counted as uses
// at the phi's own block — they are uses at the *predecessor* the
// operand corresponds to, per spec §8's "a phi's operand is live out
// of the predecessor edge it's attached to, not live into the phi's
// block". Grounded on the teacher's internal/compiler reachability
// scan (a single forward worklist marking dead code after a return),
// generalized from a one-bit reachable/unreachable flag to full
// per-block use/def/live-in/live-out sets, and reversed to a backward
// pass since liveness flows against control flow.
package liveness

import (
	"javacomp/internal/cfg"
	"javacomp/internal/idxset"
)

type set = idxset.Set

func newSet(universe int) *set { return idxset.New(universe) }

// Result is the per-block use/def/live-in/live-out bitsets plus an
// instruction-granularity live-out snapshot the register allocators
// consume to build the interference graph.
type Result struct {
	Use, Def        []*set
	LiveIn, LiveOut []*set
	// InstrLiveOut[i] is the live-out set immediately after instruction
	// i — computed backward within a block from that block's LiveOut,
	// retiring each instruction's Dest and adding its Operands.
	InstrLiveOut []*set
}

func Compute(g *cfg.Graph, numVars int) *Result {
	r := &Result{
		Use:          make([]*set, len(g.Blocks)),
		Def:          make([]*set, len(g.Blocks)),
		LiveIn:       make([]*set, len(g.Blocks)),
		LiveOut:      make([]*set, len(g.Blocks)),
		InstrLiveOut: make([]*set, len(g.Instrs)),
	}
	for i := range g.Blocks {
		r.Use[i] = newSet(numVars)
		r.Def[i] = newSet(numVars)
		r.LiveIn[i] = newSet(numVars)
		r.LiveOut[i] = newSet(numVars)
	}

	for bi, b := range g.Blocks {
		for _, id := range b.Instrs {
			in := g.Instrs[id]
			if in.Op == cfg.OpPhi {
				if in.Dest >= 0 {
					r.Def[bi].Add(in.Dest)
				}
				continue // phi operands are uses on the predecessor edge, not here
			}
			for _, opnd := range in.Operands {
				if cfg.IsLiteral(opnd) {
					continue
				}
				if !r.Def[bi].Has(opnd) {
					r.Use[bi].Add(opnd)
				}
			}
			if in.Dest >= 0 {
				r.Def[bi].Add(in.Dest)
			}
		}
	}

	// Each phi's operand is a use that lives out of its corresponding
	// predecessor block (spec §8), folded into that predecessor's Use
	// set here so the ordinary backward dataflow below handles it with
	// no special case.
	for _, b := range g.Blocks {
		for _, id := range b.Instrs {
			in := g.Instrs[id]
			if in.Op != cfg.OpPhi {
				continue
			}
			for i, opnd := range in.Operands {
				if i >= len(b.Preds) || cfg.IsLiteral(opnd) {
					continue
				}
				pred := b.Preds[i]
				if !r.Def[pred].Has(opnd) {
					r.Use[pred].Add(opnd)
				}
			}
		}
	}

	changed := true
	for changed {
		changed = false
		for bi := len(g.Blocks) - 1; bi >= 0; bi-- {
			b := g.Blocks[bi]
			newOut := newSet(numVars)
			for _, e := range b.Succs {
				newOut.Union(r.LiveIn[e.To])
			}
			if !newOut.Equals(r.LiveOut[bi]) {
				r.LiveOut[bi] = newOut
				changed = true
			}
			newIn := r.LiveOut[bi].Copy()
			newIn.Subtract(r.Def[bi])
			newIn.Union(r.Use[bi])
			if !newIn.Equals(r.LiveIn[bi]) {
				r.LiveIn[bi] = newIn
				changed = true
			}
		}
	}

	for _, b := range g.Blocks {
		live := r.LiveOut[b.ID].Copy()
		for i := len(b.Instrs) - 1; i >= 0; i-- {
			id := b.Instrs[i]
			in := g.Instrs[id]
			r.InstrLiveOut[id] = live.Copy()
			if in.Op == cfg.OpPhi {
				if in.Dest >= 0 {
					live.Remove(in.Dest)
				}
				continue
			}
			if in.Dest >= 0 {
				live.Remove(in.Dest)
			}
			for _, opnd := range in.Operands {
				if cfg.IsLiteral(opnd) {
					continue
				}
				live.Add(opnd)
			}
		}
	}

	return r
}
