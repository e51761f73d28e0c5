// Package parser implements the reduction-based parser (spec §4.3) and
// the AST it builds (spec §3). Node shapes follow the teacher's
// visitor-per-kind Expr/Stmt split (internal/parser/ast.go,
// internal/parser/stmt.go) in spirit — closed set of kinds, children in
// grammar order — but the representation itself is the kind-tagged,
// sibling-linked tree spec §3 and §9 call for ("tagged variants over
// type-punning"; "arena + dense indices"), not a Go interface per node
// type, since the spec's CFG builder and tests need to walk children
// generically without a type switch per visitor method.
package parser

import (
	"javacomp/internal/exprengine"
	"javacomp/internal/lexer"
)

type Kind int

const (
	KindCompilationUnit Kind = iota
	KindImport
	KindPackageDecl
	KindTopLevel // class or interface declaration
	KindMethodHeader
	KindVariableDeclarator
	KindParameter
	KindType
	KindName
	KindPrimary
	KindOperatorExpr // a binary/unary/assignment/ternary/call/index/member reduction
	KindAmbiguous

	KindStmtBlock
	KindStmtExpr
	KindStmtLocalVar
	KindStmtIf
	KindStmtWhile
	KindStmtDo
	KindStmtFor
	KindStmtReturn
	KindStmtBreak
	KindStmtContinue
	KindStmtSwitch
	KindSwitchCase
	KindStmtThrow
	KindStmtTry
	KindStmtLabeled
)

func (k Kind) String() string {
	names := [...]string{
		"CompilationUnit", "Import", "PackageDecl", "TopLevel", "MethodHeader",
		"VariableDeclarator", "Parameter", "Type", "Name", "Primary",
		"OperatorExpr", "Ambiguous", "StmtBlock", "StmtExpr", "StmtLocalVar",
		"StmtIf", "StmtWhile", "StmtDo", "StmtFor", "StmtReturn", "StmtBreak",
		"StmtContinue", "StmtSwitch", "SwitchCase", "StmtThrow", "StmtTry",
		"StmtLabeled",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// ModifierBits is the modifier-bitset AST payload spec §3 names.
type ModifierBits uint32

const (
	ModPublic ModifierBits = 1 << iota
	ModPrivate
	ModProtected
	ModStatic
	ModFinal
	ModAbstract
	ModSynchronized
	ModNative
	ModTransient
	ModVolatile
	ModStrictfp
)

// Span is the [from,to) byte range plus line/col a node covers.
type Span struct {
	From, To                     int
	BeginLine, BeginCol          int
	EndLine, EndCol              int
}

func spanOfToken(t lexer.Token) Span {
	return Span{From: t.From, To: t.To, BeginLine: t.StartLine, BeginCol: t.StartCol, EndLine: t.EndLine, EndCol: t.EndCol}
}

func unionSpan(a, b Span) Span {
	s := a
	if b.From < s.From {
		s.From, s.BeginLine, s.BeginCol = b.From, b.BeginLine, b.BeginCol
	}
	if b.To > s.To {
		s.To, s.EndLine, s.EndCol = b.To, b.EndLine, b.EndCol
	}
	return s
}

// Node is the single AST node representation used by every kind (spec
// §3, §9: tagged variants over type-punning, closed kind set, payload
// shape keyed by kind).
type Node struct {
	Kind Kind
	Tok  lexer.Token // token copy attached to leaf-ish nodes (spec §4.1: "the parser copies them")
	Span Span

	FirstChild, LastChild   *Node
	NextSibling, PrevSibling *Node
	Parent                  *Node

	Payload interface{}
}

func NewNode(kind Kind) *Node { return &Node{Kind: kind} }

// AppendChild links child as the new last child of n, maintaining the
// doubly linked sibling chain and widening n's span to cover it.
func (n *Node) AppendChild(child *Node) {
	child.Parent = n
	if n.LastChild == nil {
		n.FirstChild = child
		n.LastChild = child
	} else {
		child.PrevSibling = n.LastChild
		n.LastChild.NextSibling = child
		n.LastChild = child
	}
	if n.FirstChild == child {
		n.Span = child.Span
	} else {
		n.Span = unionSpan(n.Span, child.Span)
	}
}

// Children returns n's children in grammar order.
func (n *Node) Children() []*Node {
	var out []*Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// Payload types, one per AST construct spec §3 names a shape for.

type DeclaratorPayload struct {
	Name      string
	Dimension int // declarator-attached array dimension, e.g. `x[]`
}

type TypePayload struct {
	Name      string // primitive lexeme or reference type name
	Dimension int
	Primitive bool
}

type OperatorPayload struct {
	Op exprengine.OPID
}

type ImportPayload struct {
	OnDemand bool // `import pkg.*;`
}

type ModifierPayload struct {
	Bits ModifierBits
}

type ConstructorPayload struct {
	IsSuper bool // a `super(...)` call as the first statement
}

type SwitchCasePayload struct {
	IsDefault bool
}

type MethodHeaderPayload struct {
	Name          string
	ReturnType    TypePayload
	IsConstructor bool
}

type LabelPayload struct {
	Label string
}

// AmbiguousPayload marks a KindAmbiguous node built from a genuine
// grammar ambiguity (spec §3, §8 scenario 5): every candidate
// interpretation that parsed without error is attached as a child, in
// the order attempted, and Winner names which child index the resolver
// chose. Later passes walk only Children()[Winner].
type AmbiguousPayload struct {
	Winner int
}
