// Package idxset is the Index Set component (spec §2, §9): a
// fixed-width set of dense small integers with union/intersect/subtract/
// iterate, the workhorse underneath dominance, liveness, and
// interference-graph construction. It is backed by
// golang.org/x/tools/container/intsets.Sparse, the Go tools
// repository's dataflow-analysis bitset (used the same way by go/ssa's
// dominance and liveness passes) rather than a hand-rolled word array.
package idxset

import "golang.org/x/tools/container/intsets"

// Set is a set of non-negative ints bounded by a fixed Universe size —
// every index produced by this module's dense-ID arenas (blocks,
// instructions, variables) fits the same universe within one method.
type Set struct {
	s        intsets.Sparse
	universe int
}

// New returns an empty set over [0, universe).
func New(universe int) *Set {
	return &Set{universe: universe}
}

func (s *Set) checkRange(i int) {
	if i < 0 || i >= s.universe {
		panic("idxset: index out of universe range")
	}
}

func (s *Set) Add(i int) { s.checkRange(i); s.s.Insert(i) }

func (s *Set) Remove(i int) { s.checkRange(i); s.s.Remove(i) }

func (s *Set) Has(i int) bool { return s.s.Has(i) }

func (s *Set) IsEmpty() bool { return s.s.IsEmpty() }

func (s *Set) Len() int { return s.s.Len() }

// Union sets s = s ∪ other, returning whether s changed.
func (s *Set) Union(other *Set) bool {
	var tmp intsets.Sparse
	tmp.Copy(&s.s)
	s.s.UnionWith(&other.s)
	return !tmp.Equals(&s.s)
}

// Intersect sets s = s ∩ other, returning whether s changed.
func (s *Set) Intersect(other *Set) bool {
	var tmp intsets.Sparse
	tmp.Copy(&s.s)
	s.s.IntersectionWith(&other.s)
	return !tmp.Equals(&s.s)
}

// Subtract sets s = s \ other, returning whether s changed.
func (s *Set) Subtract(other *Set) bool {
	var tmp intsets.Sparse
	tmp.Copy(&s.s)
	s.s.DifferenceWith(&other.s)
	return !tmp.Equals(&s.s)
}

// Intersects reports whether s and other share any member — the
// predicate the interference-graph builder runs pairwise over every
// instruction's live-in/live-out (spec §4.9 Build).
func (s *Set) Intersects(other *Set) bool { return s.s.Intersects(&other.s) }

func (s *Set) Equals(other *Set) bool { return s.s.Equals(&other.s) }

func (s *Set) Copy() *Set {
	c := New(s.universe)
	c.s.Copy(&s.s)
	return c
}

// Elems returns the set members in ascending order.
func (s *Set) Elems() []int {
	return s.s.AppendTo(make([]int, 0, s.s.Len()))
}
