package exprengine

import "testing"

func TestPopRequiredHigherPrecedenceWaits(t *testing.T) {
	s := &Stack{}
	s.Push(OpAdd) // precedence 10
	if s.PopRequired(OpMul) {
		t.Fatal("higher-precedence incoming operator should not force a pop")
	}
}

func TestPopRequiredLowerPrecedencePops(t *testing.T) {
	s := &Stack{}
	s.Push(OpMul) // precedence 11
	if !s.PopRequired(OpAdd) {
		t.Fatal("lower-precedence incoming operator should force a pop")
	}
}

func TestPopRequiredSamePrecedenceLeftAssoc(t *testing.T) {
	s := &Stack{}
	s.Push(OpAdd)
	if !s.PopRequired(OpSub) {
		t.Fatal("same-precedence left-associative operators should pop")
	}
}

func TestPopRequiredSamePrecedenceRightAssoc(t *testing.T) {
	s := &Stack{}
	s.Push(OpAssign)
	if s.PopRequired(OpAssign) {
		t.Fatal("same-precedence right-associative operators should not pop")
	}
}

func TestLookupDefaultBinary(t *testing.T) {
	id, ok := Lookup("+")
	if !ok || id != OpAdd {
		t.Fatalf("Lookup(+) = %v, %v; want OpAdd, true", id, ok)
	}
}
