// Package ssaview lowers an allocated-SSA cfg.Graph into a throwaway
// LLVM IR module purely for human/golden-file inspection: package
// tests and `cmd/javacomp -dump-llvm` print the result with a
// familiar, independently-parseable SSA text syntax. Nothing in the
// production pipeline consumes this package's output — the back-end
// emitter this core hands data to targets the JIL container format
// (spec §6), not LLVM IR.
//
// Grounded on the teacher's go.mod dependency closure, which already
// pulls in github.com/llir/llvm (v0.3.6) and its github.com/llir/ll
// sibling; no direct call site of either existed in the teacher's own
// source, so this package is the first concrete user of that
// dependency in this tree.
package ssaview

import (
	"fmt"
	"strconv"

	"javacomp/internal/cfg"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

// Dump renders g as one LLVM function named funcName inside a fresh
// module, using a 64-bit integer for every variable (this view does
// not track the source language's real types — it exists to make
// control flow and value flow legible, not to be a faithful back end).
func Dump(g *cfg.Graph, numVars int, funcName string) *ir.Module {
	m := ir.NewModule()
	fn := m.NewFunc(funcName, types.I64)

	blocks := make([]*ir.Block, len(g.Blocks))
	for _, b := range g.Blocks {
		blocks[b.ID] = fn.NewBlock(fmt.Sprintf("bb%d", b.ID))
	}

	// values[blockID][varID] is the SSA value most recently defined for
	// varID within blockID's own instruction stream; cross-block lookups
	// fall back to a zero constant, since this view has no use for a
	// fully faithful reaching-definition resolution outside the block
	// being rendered.
	values := make([]map[int]value.Value, len(g.Blocks))
	for i := range values {
		values[i] = map[int]value.Value{}
	}

	lookup := func(bi, v int) value.Value {
		if cfg.IsLiteral(v) {
			return literalValue(g, v)
		}
		if val, ok := values[bi][v]; ok {
			return val
		}
		return constant.NewInt(types.I64, 0)
	}

	for _, b := range g.Blocks {
		blk := blocks[b.ID]
		for _, id := range b.Instrs {
			in := g.Instrs[id]
			switch in.Op {
			case cfg.OpArith:
				lhs, rhs := operand(lookup, b.ID, in, 0), operand(lookup, b.ID, in, 1)
				values[b.ID][in.Dest] = arith(blk, in.SubOp, lhs, rhs)
			case cfg.OpCompare:
				lhs, rhs := operand(lookup, b.ID, in, 0), operand(lookup, b.ID, in, 1)
				values[b.ID][in.Dest] = blk.NewICmp(comparePred(in.SubOp), lhs, rhs)
			case cfg.OpLogicalNot:
				values[b.ID][in.Dest] = blk.NewXor(operand(lookup, b.ID, in, 0), constant.NewInt(types.I64, 1))
			case cfg.OpAssign, cfg.OpInit:
				if len(in.Operands) > 0 {
					values[b.ID][in.Dest] = operand(lookup, b.ID, in, 0)
				} else {
					values[b.ID][in.Dest] = constant.NewInt(types.I64, 0)
				}
			case cfg.OpPhi:
				var incs []*ir.Incoming
				for i, opnd := range in.Operands {
					if i >= len(b.Preds) {
						continue
					}
					pred := b.Preds[i]
					incs = append(incs, ir.NewIncoming(lookup(pred, opnd), blocks[pred]))
				}
				values[b.ID][in.Dest] = blk.NewPhi(incs...)
			case cfg.OpRead:
				values[b.ID][in.Dest] = constant.NewInt(types.I64, 0)
			case cfg.OpReturn:
				if len(in.Operands) > 0 {
					blk.NewRet(operand(lookup, b.ID, in, 0))
				} else {
					blk.NewRet(nil)
				}
			}
		}
		if blk.Term == nil {
			wireTerm(blk, b, blocks)
		}
	}

	return m
}

// literalValue resolves a negative literal-pool reference (cfg.IsLiteral)
// back to its source lexeme and parses it as a 64-bit integer constant;
// a non-numeric lexeme (a string/char/bool literal the CFG never needs
// to do arithmetic on) renders as zero, since this view's job is shape,
// not a faithful literal-kind encoding.
func literalValue(g *cfg.Graph, ref int) value.Value {
	n, err := strconv.ParseInt(g.Literal(ref), 10, 64)
	if err != nil {
		return constant.NewInt(types.I64, 0)
	}
	return constant.NewInt(types.I64, n)
}

func operand(lookup func(int, int) value.Value, blockID int, in *cfg.Instr, i int) value.Value {
	if i >= len(in.Operands) {
		return constant.NewInt(types.I64, 0)
	}
	return lookup(blockID, in.Operands[i])
}

func arith(blk *ir.Block, op string, lhs, rhs value.Value) value.Value {
	switch op {
	case "-":
		return blk.NewSub(lhs, rhs)
	case "*":
		return blk.NewMul(lhs, rhs)
	case "/":
		return blk.NewSDiv(lhs, rhs)
	case "%":
		return blk.NewSRem(lhs, rhs)
	default:
		return blk.NewAdd(lhs, rhs)
	}
}

func comparePred(op string) enum.IPred {
	switch op {
	case "<":
		return enum.IPredSLT
	case "<=":
		return enum.IPredSLE
	case ">":
		return enum.IPredSGT
	case ">=":
		return enum.IPredSGE
	case "!=":
		return enum.IPredNE
	default:
		return enum.IPredEQ
	}
}

// wireTerm emits a fallthrough/branch terminator for blocks whose
// three-address form never emitted an explicit OpJump/OpReturn — e.g.
// a fallthrough edge into the next block in source order.
func wireTerm(blk *ir.Block, b *cfg.Block, blocks []*ir.Block) {
	if len(b.Succs) == 0 {
		blk.NewUnreachable()
		return
	}
	if len(b.Succs) == 1 {
		blk.NewBr(blocks[b.Succs[0].To])
		return
	}
	// A conditional branch without a recorded OpTest condition: render
	// a two-way branch on a constant true, since this view's job is
	// shape, not a faithful re-derivation of the original predicate.
	blk.NewCondBr(constant.NewInt(types.I1, 1), blocks[b.Succs[0].To], blocks[b.Succs[1].To])
}
