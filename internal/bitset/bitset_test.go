package bitset_test

import (
	"reflect"
	"testing"

	"github.com/NNRepos/enum-spanner-go/internal/bitset"
)

func TestSetGetClear(t *testing.T) {
	s := bitset.New(100)
	if !s.IsEmpty() {
		t.Fatal("new set should be empty")
	}
	s.Set(3)
	s.Set(65)
	s.Set(99)
	if s.Get(0) {
		t.Error("Get(0) should be false")
	}
	if !s.Get(3) || !s.Get(65) || !s.Get(99) {
		t.Error("Get() should be true for every set member")
	}
	if got, want := s.PopCount(), 3; got != want {
		t.Errorf("PopCount() = %d, want %d", got, want)
	}
	s.Clear(65)
	if s.Get(65) {
		t.Error("Clear(65) then Get(65) should be false")
	}
	if got, want := s.PopCount(), 2; got != want {
		t.Errorf("PopCount() after Clear = %d, want %d", got, want)
	}
}

func TestSetOrAnd(t *testing.T) {
	a := bitset.FromSlice(10, []int{1, 2, 3})
	b := bitset.FromSlice(10, []int{2, 3, 4})

	or := a.Clone()
	or.Or(b)
	if got, want := or.Slice(), []int{1, 2, 3, 4}; !reflect.DeepEqual(got, want) {
		t.Errorf("Or: got %v, want %v", got, want)
	}

	and := a.Clone()
	and.And(b)
	if got, want := and.Slice(), []int{2, 3}; !reflect.DeepEqual(got, want) {
		t.Errorf("And: got %v, want %v", got, want)
	}
}

func TestSetEqual(t *testing.T) {
	a := bitset.FromSlice(64, []int{1, 2})
	b := bitset.FromSlice(64, []int{1, 2})
	c := bitset.FromSlice(64, []int{1, 3})
	if !a.Equal(b) {
		t.Error("a should equal b")
	}
	if a.Equal(c) {
		t.Error("a should not equal c")
	}
}

func TestSetIterateOrder(t *testing.T) {
	s := bitset.FromSlice(200, []int{199, 0, 130, 64, 63})
	var got []int
	s.Iterate(func(i int) { got = append(got, i) })
	want := []int{0, 63, 64, 130, 199}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Iterate order = %v, want %v", got, want)
	}
}

func TestSetCloneIndependent(t *testing.T) {
	a := bitset.FromSlice(10, []int{1})
	b := a.Clone()
	b.Set(2)
	if a.Get(2) {
		t.Error("mutating the clone should not affect the original")
	}
}
