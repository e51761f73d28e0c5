// Package cfgbuild is the CFG builder (spec §6): it walks a parsed
// method body and a Shunting-Yard-reduced expression tree, producing
// cfg.Graph basic blocks wired with typed edges and populated with
// three-address instructions. Grounded on the teacher's
// internal/compiler.Compiler visitor dispatch (one method per
// statement/expression node kind, a growing locals table, emit-helper
// methods appending to a single instruction stream) — generalized from
// a flat bytecode tape to a graph of blocks, and from the teacher's
// stack-machine emit (push operands, emit opcode) to three-address
// emit (emit an instruction naming its destination and operand slots
// directly).
package cfgbuild

import (
	"fmt"

	"javacomp/internal/cfg"
	"javacomp/internal/diag"
	"javacomp/internal/exprengine"
	"javacomp/internal/parser"
)

// loopCtx is one break/continue frame (spec §6: "break and continue
// resolve against a stack of enclosing loop/switch contexts, consulting
// a label when one is given rather than always the innermost frame").
type loopCtx struct {
	label        string
	breakTarget  int
	continueTarget int
	hasContinue  bool
}

// Builder lowers one method at a time. A fresh Builder is created per
// method (spec §9: "the CFG builder carries no cross-method state");
// the flat variable array is seeded with the owning class's member
// variables before any parameter or local is declared, so member
// indices stay stable across every method built against the same
// class (spec §9: "members first, then locals").
type Builder struct {
	g        *cfg.Graph
	log      *diag.Log
	file     string
	varNames []string
	varIndex map[string]int
	cur      int
	tempSeq  int
	ctx      []loopCtx
}

// NewBuilder seeds the variable array from memberNames (in declaration
// order) and returns a Builder ready to build one method body.
func NewBuilder(memberNames []string, log *diag.Log, file string) *Builder {
	b := &Builder{
		g:        cfg.NewGraph(),
		log:      log,
		file:     file,
		varIndex: make(map[string]int),
	}
	for _, name := range memberNames {
		b.addVar(name)
	}
	return b
}

// NumVars returns the current size of the flat variable array (spec
// §9: "members first, then locals"). The optimizer driver reads this
// after BuildMethod to size SSA/liveness/allocation passes.
func (b *Builder) NumVars() int { return len(b.varNames) }

func (b *Builder) addVar(name string) int {
	idx := len(b.varNames)
	b.varNames = append(b.varNames, name)
	if name != "" {
		b.varIndex[name] = idx
	}
	return idx
}

func (b *Builder) newTemp() int {
	name := fmt.Sprintf("%%t%d", b.tempSeq)
	b.tempSeq++
	return b.addVar(name)
}

func (b *Builder) resolve(name string) int {
	if idx, ok := b.varIndex[name]; ok {
		return idx
	}
	// An unresolved bare name: treat as an external/field reference the
	// symbol table didn't preseed (a qualified member of another class,
	// or a forward-referenced static) and give it its own slot so the
	// rest of the pipeline still has somewhere to point.
	return b.addVar(name)
}

func (b *Builder) emit(op cfg.Op) *cfg.Instr { return b.g.NewInstr(op, b.cur) }

// BuildMethod lowers a KindMethodHeader node's body (if any) into a
// fresh cfg.Graph, seeding one variable slot per parameter first.
func (b *Builder) BuildMethod(method *parser.Node) *cfg.Graph {
	var body *parser.Node
	for c := method.FirstChild; c != nil; c = c.NextSibling {
		switch c.Kind {
		case parser.KindParameter:
			decl := c.Payload.(parser.DeclaratorPayload)
			idx := b.addVar(decl.Name)
			in := b.emit(cfg.OpInit)
			in.Dest = idx
		case parser.KindStmtBlock:
			body = c
		}
	}
	if body != nil {
		b.lowerBlock(body)
	}
	if len(b.g.Blocks[b.cur].Instrs) == 0 || b.g.Instrs[lastInstrID(b.g, b.cur)].Op != cfg.OpReturn {
		b.emit(cfg.OpReturn)
	}
	b.g.Build()
	return b.g
}

func lastInstrID(g *cfg.Graph, block int) int {
	instrs := g.Blocks[block].Instrs
	return instrs[len(instrs)-1]
}

func (b *Builder) lowerBlock(n *parser.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.lowerStmt(c)
	}
}

func (b *Builder) lowerStmt(n *parser.Node) {
	switch n.Kind {
	case parser.KindStmtBlock:
		b.lowerBlock(n)
	case parser.KindStmtExpr:
		b.lowerExpr(n.FirstChild)
	case parser.KindStmtLocalVar:
		b.lowerLocalVar(n)
	case parser.KindStmtIf:
		b.lowerIf(n)
	case parser.KindStmtWhile:
		b.lowerWhile(n)
	case parser.KindStmtDo:
		b.lowerDo(n)
	case parser.KindStmtFor:
		b.lowerFor(n)
	case parser.KindStmtReturn:
		b.lowerReturn(n)
	case parser.KindStmtBreak:
		b.lowerBreak(n)
	case parser.KindStmtContinue:
		b.lowerContinue(n)
	case parser.KindStmtSwitch:
		b.lowerSwitch(n)
	case parser.KindStmtThrow:
		b.lowerExpr(n.FirstChild)
	case parser.KindStmtTry:
		b.lowerTry(n)
	case parser.KindStmtLabeled:
		b.lowerLabeled(n)
	case parser.KindAmbiguous:
		b.lowerAmbiguousStmt(n)
	}
}

// lowerAmbiguousStmt lowers the resolved candidate of a genuine
// statement-position ambiguity (spec §8 scenario 5), or does nothing
// when n is the zero-child placeholder safeStatement builds after a
// parser panic, which has no winner to lower.
func (b *Builder) lowerAmbiguousStmt(n *parser.Node) {
	ap, ok := n.Payload.(parser.AmbiguousPayload)
	if !ok {
		return
	}
	children := n.Children()
	if ap.Winner < len(children) {
		b.lowerStmt(children[ap.Winner])
	}
}

func (b *Builder) lowerLocalVar(n *parser.Node) {
	var ty *parser.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == parser.KindType {
			ty = c
			continue
		}
		if c.Kind != parser.KindVariableDeclarator {
			continue
		}
		decl := c.Payload.(parser.DeclaratorPayload)
		idx := b.addVar(decl.Name)
		if c.FirstChild != nil {
			val := b.lowerExpr(c.FirstChild)
			in := b.emit(cfg.OpAssign)
			in.Dest = idx
			in.Operands = []int{val}
		} else {
			in := b.emit(cfg.OpInit)
			in.Dest = idx
		}
	}
	_ = ty
}

// lowerExpr lowers an expression to three-address code, returning the
// variable slot holding its value.
func (b *Builder) lowerExpr(n *parser.Node) int {
	switch n.Kind {
	case parser.KindPrimary:
		return b.lowerLiteral(n)
	case parser.KindName:
		return b.resolve(n.Payload.(string))
	case parser.KindType:
		// A type used as a bare operand (e.g. the class literal operand
		// of `new Type[n]`); nothing to compute, return a nominal slot
		// named after it so callers have something to chain off of.
		return b.resolve(n.Payload.(parser.TypePayload).Name)
	case parser.KindOperatorExpr:
		return b.lowerOperator(n)
	case parser.KindAmbiguous:
		return b.lowerAmbiguousExpr(n)
	}
	return b.newTemp()
}

// lowerAmbiguousExpr lowers the resolved candidate of a genuine
// expression-position ambiguity (castOrParenExpr's `(a)b` case, spec
// §4.3), or falls back to a fresh temp when n is a zero-child
// error-recovery placeholder with no winner to lower.
func (b *Builder) lowerAmbiguousExpr(n *parser.Node) int {
	ap, ok := n.Payload.(parser.AmbiguousPayload)
	if !ok {
		return b.newTemp()
	}
	children := n.Children()
	if ap.Winner < len(children) {
		return b.lowerExpr(children[ap.Winner])
	}
	return b.newTemp()
}

// lowerLiteral never emits an instruction: a literal is its own
// reference kind (spec §3's Literal(def) variant), so it interns
// straight into the graph's literal pool and the consuming instruction
// carries the reference as an ordinary operand.
func (b *Builder) lowerLiteral(n *parser.Node) int {
	return b.g.InternLiteral(n.Tok.Lexeme)
}

func (b *Builder) lowerOperator(n *parser.Node) int {
	op := n.Payload.(parser.OperatorPayload).Op
	switch op {
	case exprengine.OpAssign:
		return b.lowerAssign(n)
	case exprengine.OpAddAssign, exprengine.OpSubAssign, exprengine.OpMulAssign, exprengine.OpDivAssign, exprengine.OpModAssign:
		return b.lowerCompoundAssign(n, op)
	case exprengine.OpAnd, exprengine.OpOr:
		return b.lowerShortCircuit(n, op)
	case exprengine.OpTernary:
		return b.lowerTernary(n)
	case exprengine.OpPreInc, exprengine.OpPreDec, exprengine.OpPostInc, exprengine.OpPostDec:
		return b.lowerIncDec(n, op)
	case exprengine.OpCall:
		return b.lowerCall(n)
	case exprengine.OpMember:
		return b.lowerMember(n)
	case exprengine.OpIndex:
		return b.lowerIndex(n)
	case exprengine.OpCast:
		return b.lowerExpr(n.FirstChild.NextSibling)
	case exprengine.OpUnaryPlus, exprengine.OpUnaryMinus, exprengine.OpNot, exprengine.OpBitNot:
		operand := b.lowerExpr(n.FirstChild)
		dest := b.newTemp()
		in := b.emit(cfg.OpLogicalNot)
		in.SubOp = exprengine.Def(op).Lexeme
		in.Dest = dest
		in.Operands = []int{operand}
		return dest
	case exprengine.OpEq, exprengine.OpNe, exprengine.OpLt, exprengine.OpGt, exprengine.OpLe, exprengine.OpGe, exprengine.OpInstanceof:
		lhs := b.lowerExpr(n.FirstChild)
		rhs := b.lowerExpr(n.FirstChild.NextSibling)
		dest := b.newTemp()
		in := b.emit(cfg.OpCompare)
		in.SubOp = exprengine.Def(op).Lexeme
		in.Dest = dest
		in.Operands = []int{lhs, rhs}
		return dest
	default:
		lhs := b.lowerExpr(n.FirstChild)
		rhs := b.lowerExpr(n.FirstChild.NextSibling)
		dest := b.newTemp()
		in := b.emit(cfg.OpArith)
		in.SubOp = exprengine.Def(op).Lexeme
		in.Dest = dest
		in.Operands = []int{lhs, rhs}
		return dest
	}
}

func (b *Builder) lowerAssign(n *parser.Node) int {
	lhs := n.FirstChild
	rhs := n.FirstChild.NextSibling
	val := b.lowerExpr(rhs)
	return b.storeInto(lhs, val)
}

// storeInto writes val into the slot/field/element lhs denotes,
// returning val back (an assignment's value is the assigned value).
func (b *Builder) storeInto(lhs *parser.Node, val int) int {
	switch lhs.Kind {
	case parser.KindName:
		idx := b.resolve(lhs.Payload.(string))
		in := b.emit(cfg.OpAssign)
		in.Dest = idx
		in.Operands = []int{val}
		return idx
	case parser.KindOperatorExpr:
		switch lhs.Payload.(parser.OperatorPayload).Op {
		case exprengine.OpIndex:
			arr := b.lowerExpr(lhs.FirstChild)
			idx := b.lowerExpr(lhs.FirstChild.NextSibling)
			in := b.emit(cfg.OpStore)
			in.Operands = []int{arr, idx, val}
			return val
		case exprengine.OpMember:
			recv := b.lowerExpr(lhs.FirstChild)
			in := b.emit(cfg.OpStore)
			in.SubOp = lhs.FirstChild.NextSibling.Payload.(string)
			in.Operands = []int{recv, val}
			return val
		}
	}
	return val
}

func (b *Builder) lowerCompoundAssign(n *parser.Node, op exprengine.OPID) int {
	lhs := n.FirstChild
	rhs := n.FirstChild.NextSibling
	cur := b.lowerExpr(lhs)
	rval := b.lowerExpr(rhs)
	dest := b.newTemp()
	in := b.emit(cfg.OpArith)
	in.SubOp = compoundBase(op)
	in.Dest = dest
	in.Operands = []int{cur, rval}
	return b.storeInto(lhs, dest)
}

func compoundBase(op exprengine.OPID) string {
	switch op {
	case exprengine.OpAddAssign:
		return "+"
	case exprengine.OpSubAssign:
		return "-"
	case exprengine.OpMulAssign:
		return "*"
	case exprengine.OpDivAssign:
		return "/"
	default:
		return "%"
	}
}

// lowerIncDec lowers ++/-- directly against the lvalue (spec §4.5.3): a
// simple name target is updated in place, one OpArith instruction
// writing straight back to its own slot for the pre forms, or that
// same in-place update preceded by a one-instruction snapshot of the
// old value for the post forms (the expression yields the value from
// before the mutation). An array/field target has no single slot to
// write back into, so it falls back to a read-modify-write through
// storeInto.
func (b *Builder) lowerIncDec(n *parser.Node, op exprengine.OPID) int {
	operand := n.FirstChild
	delta := b.g.InternLiteral("1")
	sign := "+"
	if op == exprengine.OpPreDec || op == exprengine.OpPostDec {
		sign = "-"
	}
	isPre := op == exprengine.OpPreInc || op == exprengine.OpPreDec

	if operand.Kind == parser.KindName {
		idx := b.resolve(operand.Payload.(string))
		if isPre {
			in := b.emit(cfg.OpArith)
			in.SubOp = sign
			in.Dest = idx
			in.Operands = []int{idx, delta}
			return idx
		}
		old := b.newTemp()
		snap := b.emit(cfg.OpAssign)
		snap.Dest = old
		snap.Operands = []int{idx}
		in := b.emit(cfg.OpArith)
		in.SubOp = sign
		in.Dest = idx
		in.Operands = []int{idx, delta}
		return old
	}

	old := b.lowerExpr(operand)
	dest := b.newTemp()
	in := b.emit(cfg.OpArith)
	in.SubOp = sign
	in.Dest = dest
	in.Operands = []int{old, delta}
	b.storeInto(operand, dest)
	if isPre {
		return dest
	}
	return old
}

func (b *Builder) lowerCall(n *parser.Node) int {
	dest := b.newTemp()
	in := b.emit(cfg.OpCall)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		in.Operands = append(in.Operands, b.lowerExpr(c))
	}
	in.Dest = dest
	return dest
}

func (b *Builder) lowerMember(n *parser.Node) int {
	recv := b.lowerExpr(n.FirstChild)
	field := n.FirstChild.NextSibling.Payload.(string)
	dest := b.newTemp()
	in := b.emit(cfg.OpLoad)
	in.SubOp = field
	in.Dest = dest
	in.Operands = []int{recv}
	return dest
}

func (b *Builder) lowerIndex(n *parser.Node) int {
	arr := b.lowerExpr(n.FirstChild)
	idx := b.lowerExpr(n.FirstChild.NextSibling)
	dest := b.newTemp()
	in := b.emit(cfg.OpLoad)
	in.Dest = dest
	in.Operands = []int{arr, idx}
	return dest
}

// lowerShortCircuit splits the CFG so the right operand's block is
// only reachable when the left operand hasn't already settled the
// result (spec §6.3): && skips to false on a false left operand, ||
// skips to true on a true left operand. Both paths assign the same
// result variable; the SSA pass inserts the join's phi.
func (b *Builder) lowerShortCircuit(n *parser.Node, op exprengine.OPID) int {
	lhs := b.lowerExpr(n.FirstChild)
	result := b.newTemp()
	shortIn := b.emit(cfg.OpAssign)
	shortIn.Dest = result
	shortIn.Operands = []int{lhs}

	rhsBlock := b.g.NewBlock()
	joinBlock := b.g.NewBlock()
	if op == exprengine.OpAnd {
		b.g.AddEdge(b.cur, rhsBlock, cfg.EdgeBranchTrue)
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeBranchFalse)
	} else {
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeBranchTrue)
		b.g.AddEdge(b.cur, rhsBlock, cfg.EdgeBranchFalse)
	}
	test := b.emit(cfg.OpTest)
	test.Operands = []int{lhs}

	b.cur = rhsBlock
	rhs := b.lowerExpr(n.FirstChild.NextSibling)
	in := b.emit(cfg.OpAssign)
	in.Dest = result
	in.Operands = []int{rhs}
	b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)
	b.emit(cfg.OpJump)

	b.cur = joinBlock
	return result
}

func (b *Builder) lowerTernary(n *parser.Node) int {
	cond := b.lowerExpr(n.FirstChild)
	result := b.newTemp()

	thenBlock := b.g.NewBlock()
	elseBlock := b.g.NewBlock()
	joinBlock := b.g.NewBlock()
	test := b.emit(cfg.OpTest)
	test.Operands = []int{cond}
	b.g.AddEdge(b.cur, thenBlock, cfg.EdgeBranchTrue)
	b.g.AddEdge(b.cur, elseBlock, cfg.EdgeBranchFalse)

	b.cur = thenBlock
	thenVal := b.lowerExpr(n.FirstChild.NextSibling)
	in := b.emit(cfg.OpAssign)
	in.Dest = result
	in.Operands = []int{thenVal}
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)

	b.cur = elseBlock
	elseVal := b.lowerExpr(n.FirstChild.NextSibling.NextSibling)
	in2 := b.emit(cfg.OpAssign)
	in2.Dest = result
	in2.Operands = []int{elseVal}
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)

	b.cur = joinBlock
	return result
}

func (b *Builder) lowerIf(n *parser.Node) {
	cond := b.lowerExpr(n.FirstChild)
	thenBlock := b.g.NewBlock()
	test := b.emit(cfg.OpTest)
	test.Operands = []int{cond}

	thenStmt := n.FirstChild.NextSibling
	elseStmt := thenStmt.NextSibling

	joinBlock := b.g.NewBlock()
	if elseStmt == nil {
		b.g.AddEdge(b.cur, thenBlock, cfg.EdgeBranchTrue)
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeBranchFalse)
		b.cur = thenBlock
		b.lowerStmt(thenStmt)
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)
	} else {
		elseBlock := b.g.NewBlock()
		b.g.AddEdge(b.cur, thenBlock, cfg.EdgeBranchTrue)
		b.g.AddEdge(b.cur, elseBlock, cfg.EdgeBranchFalse)

		b.cur = thenBlock
		b.lowerStmt(thenStmt)
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)

		b.cur = elseBlock
		b.lowerStmt(elseStmt)
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, joinBlock, cfg.EdgeUnconditional)
	}
	b.cur = joinBlock
}

func (b *Builder) pushLoop(label string, breakTarget, continueTarget int) {
	b.ctx = append(b.ctx, loopCtx{label: label, breakTarget: breakTarget, continueTarget: continueTarget, hasContinue: true})
	currentLabel = ""
}

func (b *Builder) popLoop() { b.ctx = b.ctx[:len(b.ctx)-1] }

func (b *Builder) lowerWhile(n *parser.Node) {
	headerBlock := b.g.NewBlock()
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, headerBlock, cfg.EdgeUnconditional)
	b.cur = headerBlock

	cond := b.lowerExpr(n.FirstChild)
	bodyBlock := b.g.NewBlock()
	afterBlock := b.g.NewBlock()
	test := b.emit(cfg.OpTest)
	test.Operands = []int{cond}
	b.g.AddEdge(b.cur, bodyBlock, cfg.EdgeBranchTrue)
	b.g.AddEdge(b.cur, afterBlock, cfg.EdgeBranchFalse)

	b.pushLoop(currentLabel, afterBlock, headerBlock)
	b.cur = bodyBlock
	b.lowerStmt(n.FirstChild.NextSibling)
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, headerBlock, cfg.EdgeLoopBack)
	b.popLoop()

	b.cur = afterBlock
}

func (b *Builder) lowerDo(n *parser.Node) {
	bodyBlock := b.g.NewBlock()
	afterBlock := b.g.NewBlock()
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, bodyBlock, cfg.EdgeUnconditional)

	b.pushLoop(currentLabel, afterBlock, bodyBlock)
	b.cur = bodyBlock
	b.lowerStmt(n.FirstChild)
	cond := b.lowerExpr(n.FirstChild.NextSibling)
	test := b.emit(cfg.OpTest)
	test.Operands = []int{cond}
	b.g.AddEdge(b.cur, bodyBlock, cfg.EdgeLoopBack)
	b.g.AddEdge(b.cur, afterBlock, cfg.EdgeBranchFalse)
	b.popLoop()

	b.cur = afterBlock
}

func (b *Builder) lowerFor(n *parser.Node) {
	initBlock := n.FirstChild
	condBlock := initBlock.NextSibling
	updateBlock := condBlock.NextSibling
	body := updateBlock.NextSibling

	for c := initBlock.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == parser.KindStmtLocalVar {
			b.lowerLocalVar(c)
		} else {
			b.lowerExpr(c)
		}
	}

	headerBlock := b.g.NewBlock()
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, headerBlock, cfg.EdgeUnconditional)
	b.cur = headerBlock

	bodyBlock := b.g.NewBlock()
	updateFlowBlock := b.g.NewBlock()
	afterBlock := b.g.NewBlock()

	if condBlock.FirstChild != nil {
		cond := b.lowerExpr(condBlock.FirstChild)
		test := b.emit(cfg.OpTest)
		test.Operands = []int{cond}
		b.g.AddEdge(b.cur, bodyBlock, cfg.EdgeBranchTrue)
		b.g.AddEdge(b.cur, afterBlock, cfg.EdgeBranchFalse)
	} else {
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, bodyBlock, cfg.EdgeUnconditional)
	}

	b.pushLoop(currentLabel, afterBlock, updateFlowBlock)
	b.cur = bodyBlock
	b.lowerStmt(body)
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, updateFlowBlock, cfg.EdgeUnconditional)
	b.popLoop()

	b.cur = updateFlowBlock
	for c := updateBlock.FirstChild; c != nil; c = c.NextSibling {
		b.lowerExpr(c)
	}
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, headerBlock, cfg.EdgeLoopBack)

	b.cur = afterBlock
}

// currentLabel is set by lowerLabeled just before lowering the labeled
// statement, so the next loop/switch frame it wraps can be found by
// name from lowerBreak/lowerContinue; cleared immediately after the
// frame is pushed so a nested unlabeled loop doesn't inherit it.
var currentLabel string

func (b *Builder) lowerLabeled(n *parser.Node) {
	label := n.Payload.(parser.LabelPayload).Label
	currentLabel = label
	b.lowerStmt(n.FirstChild)
	currentLabel = ""
}

func (b *Builder) lowerBreak(n *parser.Node) {
	target := -1
	if lp, ok := n.Payload.(parser.LabelPayload); ok {
		for i := len(b.ctx) - 1; i >= 0; i-- {
			if b.ctx[i].label == lp.Label {
				target = b.ctx[i].breakTarget
				break
			}
		}
	} else if len(b.ctx) > 0 {
		target = b.ctx[len(b.ctx)-1].breakTarget
	}
	if target == -1 {
		b.log.Log(diag.New(diag.CodeUnboundBreak, b.file, diag.Span{}))
		return
	}
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, target, cfg.EdgeUnconditional)
}

func (b *Builder) lowerContinue(n *parser.Node) {
	target := -1
	if lp, ok := n.Payload.(parser.LabelPayload); ok {
		for i := len(b.ctx) - 1; i >= 0; i-- {
			if b.ctx[i].label == lp.Label {
				target = b.ctx[i].continueTarget
				break
			}
		}
	} else {
		for i := len(b.ctx) - 1; i >= 0; i-- {
			if b.ctx[i].continueTarget != -1 {
				target = b.ctx[i].continueTarget
				break
			}
		}
	}
	if target == -1 {
		b.log.Log(diag.New(diag.CodeUnboundContinue, b.file, diag.Span{}))
		return
	}
	b.emit(cfg.OpJump)
	b.g.AddEdge(b.cur, target, cfg.EdgeUnconditional)
}

func (b *Builder) lowerReturn(n *parser.Node) {
	in := b.emit(cfg.OpReturn)
	if n.FirstChild != nil {
		in.Operands = []int{b.lowerExpr(n.FirstChild)}
	}
}

// lowerSwitch lowers to the equality test-chain spec §6.3 calls for:
// each case becomes a compare-and-branch against the switch value, in
// source order, with one block per case body. Each case body ends in a
// jump to the next case body (the last one to the block after the
// switch), which preserves fallthrough; a break in the source jumps to
// the block after the switch instead.
func (b *Builder) lowerSwitch(n *parser.Node) {
	selector := b.lowerExpr(n.FirstChild)
	afterBlock := b.g.NewBlock()
	b.pushLoop(currentLabel, afterBlock, -1)

	var caseBlocks []int
	var defaultBlock = -1
	cases := n.Children()[1:]
	for range cases {
		caseBlocks = append(caseBlocks, b.g.NewBlock())
	}

	dispatch := b.cur
	for i, c := range cases {
		payload := c.Payload.(parser.SwitchCasePayload)
		if payload.IsDefault {
			defaultBlock = caseBlocks[i]
			continue
		}
		b.cur = dispatch
		caseVal := b.lowerExpr(c.FirstChild)
		cmp := b.newTemp()
		cmpIn := b.emit(cfg.OpCompare)
		cmpIn.SubOp = "=="
		cmpIn.Dest = cmp
		cmpIn.Operands = []int{selector, caseVal}
		nextDispatch := b.g.NewBlock()
		test := b.emit(cfg.OpTest)
		test.Operands = []int{cmp}
		b.g.AddEdge(dispatch, caseBlocks[i], cfg.EdgeBranchTrue)
		b.g.AddEdge(dispatch, nextDispatch, cfg.EdgeBranchFalse)
		dispatch = nextDispatch
	}
	b.cur = dispatch
	if defaultBlock != -1 {
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, defaultBlock, cfg.EdgeUnconditional)
	} else {
		b.emit(cfg.OpJump)
		b.g.AddEdge(b.cur, afterBlock, cfg.EdgeUnconditional)
	}

	for i, c := range cases {
		b.cur = caseBlocks[i]
		stmtStart := c.FirstChild
		if !c.Payload.(parser.SwitchCasePayload).IsDefault {
			stmtStart = c.FirstChild.NextSibling
		}
		for stmt := stmtStart; stmt != nil; stmt = stmt.NextSibling {
			b.lowerStmt(stmt)
		}
		b.emit(cfg.OpJump)
		if i+1 < len(caseBlocks) {
			b.g.AddEdge(b.cur, caseBlocks[i+1], cfg.EdgeUnconditional)
		} else {
			b.g.AddEdge(b.cur, afterBlock, cfg.EdgeUnconditional)
		}
	}

	b.popLoop()
	b.cur = afterBlock
}

// lowerTry lowers the protected block and every handler as ordinary
// sequential blocks (spec's Non-goals exclude modeling exceptional
// control flow precisely; the mid-end only needs every handler's code
// to be reachable for liveness/allocation purposes, not a precise
// exception-edge graph).
func (b *Builder) lowerTry(n *parser.Node) {
	children := n.Children()
	b.lowerStmt(children[0])
	for _, c := range children[1:] {
		if c.Kind == parser.KindStmtBlock {
			b.lowerBlock(c)
		}
	}
}
