// Package symbols is the name resolver (spec §5): pass one
// (ResolvePass1) walks every compilation unit building a flat top-level
// descriptor per class/interface (member table and method table)
// without descending into method bodies; it leaves the Literals table
// empty and records no modifier bits. MethodScope, Declare and Resolve
// layer parameter/local scopes over the member table and diagnose an
// unresolved name, but no package in this module calls them, so method
// bodies are not name-resolved and unresolved references in them are
// not diagnosed. Grounded on the teacher's internal/compiler two-phase
// register/slot bookkeeping (internal/compiler/compiler.go's locals
// table growing as statements are visited) generalized to a
// class-shaped, hierarchical table instead of a flat register file.
package symbols

import (
	"fmt"

	"javacomp/internal/diag"
	"javacomp/internal/parser"
)

// DefKind is the closed set of things a Definition can denote (spec
// §5's "variable, method, or literal constant").
type DefKind int

const (
	DefVariable DefKind = iota
	DefMethod
	DefNumberLiteral
	DefCharLiteral
	DefBooleanLiteral
	DefStringLiteral
	DefNullLiteral
)

// Definition is one resolved name: a member variable, a local, a
// parameter, a method (keyed by its mangled name), or a literal
// constant interned into the owning class's literal table.
type Definition struct {
	Kind      DefKind
	Name      string
	Mangled   string // methods only: simple name ∥ JIL-encoded parameter types
	TypeName  string
	Dimension int
	IsMember  bool
	Index     int // dense slot within its owning scope's variable array
	Node      *parser.Node
}

// Scope is one nested name-resolution frame: a class body, a method
// body, or a block. Lookups walk outward through Parent.
type Scope struct {
	Parent *Scope
	names  map[string]*Definition
}

func newScope(parent *Scope) *Scope {
	return &Scope{Parent: parent, names: make(map[string]*Definition)}
}

func (s *Scope) declare(def *Definition) (*Definition, bool) {
	if existing, ok := s.names[def.Name]; ok {
		return existing, false
	}
	s.names[def.Name] = def
	return def, true
}

func (s *Scope) lookup(name string) (*Definition, bool) {
	for sc := s; sc != nil; sc = sc.Parent {
		if d, ok := sc.names[name]; ok {
			return d, true
		}
	}
	return nil, false
}

// ClassTable is the per-class top-level descriptor spec §5 names:
// member table, method table, and a Literals slice that nothing fills.
// It holds no CFG; cfgbuild builds method CFGs separately and none is
// stored here.
type ClassTable struct {
	Name       string
	IsInterface bool
	Super      string
	Interfaces []string
	Members    *Scope
	Methods    map[string]*Definition // mangled name -> definition
	Literals   []*Definition
	Node       *parser.Node
}

// Table is the whole-program result of pass one: every top-level
// class/interface keyed by simple name.
type Table struct {
	Classes map[string]*ClassTable
	log     *diag.Log
}

func NewTable(log *diag.Log) *Table {
	return &Table{Classes: make(map[string]*ClassTable), log: log}
}

// ResolvePass1 registers every top-level declaration's members and
// method signatures without resolving method bodies (spec §5: "pass
// one registers every top-level name before any body is visited, so
// forward references and mutual recursion between classes just work").
func (t *Table) ResolvePass1(cu *parser.Node) {
	for c := cu.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind != parser.KindTopLevel {
			continue
		}
		t.registerClass(c)
	}
}

func (t *Table) registerClass(n *parser.Node) *ClassTable {
	payload := n.Payload.(parser.TopLevelPayload)
	if _, exists := t.Classes[payload.Name]; exists {
		t.log.Log(diag.New(diag.CodeDuplicateClass, "", diag.Span{}, payload.Name))
	}
	ct := &ClassTable{
		Name:        payload.Name,
		IsInterface: payload.IsInterface,
		Members:     newScope(nil),
		Methods:     make(map[string]*Definition),
		Node:        n,
	}
	t.Classes[payload.Name] = ct

	idx := 0
	for m := n.FirstChild; m != nil; m = m.NextSibling {
		switch m.Kind {
		case parser.KindStmtLocalVar:
			ct.registerFields(m, &idx, t.log)
		case parser.KindMethodHeader:
			ct.registerMethod(m, t.log)
		}
	}
	return ct
}

func (ct *ClassTable) registerFields(n *parser.Node, idx *int, log *diag.Log) {
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
		def := &Definition{
			Kind:      DefVariable,
			Name:      decl.Name,
			TypeName:  ty.Payload.(parser.TypePayload).Name,
			Dimension: decl.Dimension,
			IsMember:  true,
			Index:     *idx,
			Node:      c,
		}
		*idx++
		if _, ok := ct.Members.declare(def); !ok {
			log.Log(diag.New(diag.CodeDuplicateMember, "", diag.Span{}, decl.Name))
		}
	}
}

// MemberNames returns every member field name in declaration order
// (by Index), the shape cfgbuild.NewBuilder needs to seed a method's
// flat variable array with "members first" (spec §9).
func (ct *ClassTable) MemberNames() []string {
	names := make([]string, len(ct.Members.names))
	for _, def := range ct.Members.names {
		if def.Kind == DefVariable {
			names[def.Index] = def.Name
		}
	}
	return names
}

// mangle implements spec §5's method name-mangling: simple name, then
// one JIL-encoded suffix per parameter type so overloads coexist in
// the flat Methods map.
func mangle(name string, params []*parser.Node) string {
	s := name
	for _, p := range params {
		d := p.Payload.(parser.DeclaratorPayload)
		var ty *parser.Node
		for c := p.FirstChild; c != nil; c = c.NextSibling {
			if c.Kind == parser.KindType {
				ty = c
				break
			}
		}
		tp := ty.Payload.(parser.TypePayload)
		s += "|" + jilEncode(tp.Name, d.Dimension)
	}
	return s
}

// jilEncode mirrors the JVM-style field-descriptor encoding spec §5
// names ("JIL-encoded parameter types"): array dimension as a run of
// '[', then a one-letter primitive code or 'L'+name+';'.
func jilEncode(typeName string, dim int) string {
	s := ""
	for i := 0; i < dim; i++ {
		s += "["
	}
	switch typeName {
	case "int":
		return s + "I"
	case "long":
		return s + "J"
	case "short":
		return s + "S"
	case "byte":
		return s + "B"
	case "char":
		return s + "C"
	case "boolean":
		return s + "Z"
	case "float":
		return s + "F"
	case "double":
		return s + "D"
	case "void":
		return s + "V"
	default:
		return s + "L" + typeName + ";"
	}
}

func (ct *ClassTable) registerMethod(n *parser.Node, log *diag.Log) {
	header := n.Payload.(parser.MethodHeaderPayload)
	var params []*parser.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind == parser.KindParameter {
			params = append(params, c)
		}
	}
	key := mangle(header.Name, params)
	def := &Definition{Kind: DefMethod, Name: header.Name, Mangled: key, TypeName: header.ReturnType.Name, Node: n}
	if _, exists := ct.Methods[key]; exists {
		log.Log(diag.New(diag.CodeDuplicateMethod, "", diag.Span{}, header.Name))
	}
	ct.Methods[key] = def
}

// MethodScope resolves one method body in pass two: parameters and
// locals layer a fresh Scope on top of the owning class's member
// Scope, so an unqualified name checks locals, then parameters, then
// members, in that order (spec §5).
func (t *Table) MethodScope(ct *ClassTable, method *parser.Node) *Scope {
	scope := newScope(ct.Members)
	idx := 0
	for c := method.FirstChild; c != nil; c = c.NextSibling {
		if c.Kind != parser.KindParameter {
			continue
		}
		decl := c.Payload.(parser.DeclaratorPayload)
		var ty *parser.Node
		for gc := c.FirstChild; gc != nil; gc = gc.NextSibling {
			if gc.Kind == parser.KindType {
				ty = gc
			}
		}
		def := &Definition{Kind: DefVariable, Name: decl.Name, TypeName: ty.Payload.(parser.TypePayload).Name, Dimension: decl.Dimension, Index: idx, Node: c}
		idx++
		if _, ok := scope.declare(def); !ok {
			t.log.Log(diag.New(diag.CodeDuplicateParameter, "", diag.Span{}, decl.Name))
		}
	}
	return scope
}

// Declare adds a local declared mid-body (from a local-var-decl
// statement encountered while walking a method's CFG) to scope,
// growing the dense index from the already-declared count.
func (t *Table) Declare(scope *Scope, name, typeName string, dim int, node *parser.Node) *Definition {
	count := 0
	for s := scope; s != nil; s = s.Parent {
		count += len(s.names)
	}
	def := &Definition{Kind: DefVariable, Name: name, TypeName: typeName, Dimension: dim, Index: count, Node: node}
	if existing, ok := scope.declare(def); !ok {
		t.log.Log(diag.New(diag.CodeDuplicateLocal, "", diag.Span{}, name))
		return existing
	}
	return def
}

// Resolve looks a bare name up through scope, logging an undefined-
// reference diagnostic (spec §5, §7) on miss.
func (t *Table) Resolve(scope *Scope, name string) (*Definition, bool) {
	if d, ok := scope.lookup(name); ok {
		return d, true
	}
	t.log.Log(diag.New(diag.CodeUndefinedReference, "", diag.Span{}, name))
	return nil, false
}

func (ct *ClassTable) String() string {
	return fmt.Sprintf("class %s (members=%d methods=%d)", ct.Name, len(ct.Members.names), len(ct.Methods))
}
