package idxset

import (
	"reflect"
	"testing"
)

func TestUnionIntersectSubtract(t *testing.T) {
	a := New(16)
	a.Add(1)
	a.Add(3)
	a.Add(5)

	b := New(16)
	b.Add(3)
	b.Add(5)
	b.Add(7)

	u := a.Copy()
	u.Union(b)
	if got := u.Elems(); !reflect.DeepEqual(got, []int{1, 3, 5, 7}) {
		t.Errorf("union = %v", got)
	}

	i := a.Copy()
	i.Intersect(b)
	if got := i.Elems(); !reflect.DeepEqual(got, []int{3, 5}) {
		t.Errorf("intersect = %v", got)
	}

	d := a.Copy()
	d.Subtract(b)
	if got := d.Elems(); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("subtract = %v", got)
	}

	if !a.Intersects(b) {
		t.Error("expected a and b to intersect")
	}
}

func TestEmptyAndEquals(t *testing.T) {
	a := New(8)
	if !a.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	a.Add(2)
	b := New(8)
	b.Add(2)
	if !a.Equals(b) {
		t.Fatal("sets with the same member should be equal")
	}
}

func TestOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on out-of-universe index")
		}
	}()
	New(4).Add(10)
}
