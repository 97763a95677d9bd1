package bitset_test

import (
	"reflect"
	"testing"

	"github.com/NNRepos/enum-spanner-go/internal/bitset"
)

func TestMatrixSetGet(t *testing.T) {
	m := bitset.NewMatrix(3, 4)
	m.Set(0, 1)
	m.Set(2, 3)
	if !m.Get(0, 1) || !m.Get(2, 3) {
		t.Error("Get should be true for every edge Set")
	}
	if m.Get(1, 1) {
		t.Error("Get should be false for an edge never Set")
	}
}

func TestIdentityMatrix(t *testing.T) {
	m := bitset.Identity(4)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if got, want := m.Get(i, j), i == j; got != want {
				t.Errorf("Identity Get(%d,%d) = %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestMatrixReach(t *testing.T) {
	m := bitset.NewMatrix(3, 3)
	m.Set(0, 1)
	m.Set(1, 2)
	sources := bitset.FromSlice(3, []int{0})
	reach := m.Reach(sources)
	if got, want := reach.Slice(), []int{1}; !reflect.DeepEqual(got, want) {
		t.Errorf("Reach({0}) = %v, want %v", got, want)
	}
}

func TestMatrixComposeChainsTransitions(t *testing.T) {
	// ab: 0 -> 1, bc: 1 -> 0. Composed: 0 -> 0 only.
	ab := bitset.NewMatrix(2, 2)
	ab.Set(0, 1)
	bc := bitset.NewMatrix(2, 2)
	bc.Set(1, 0)

	composed := ab.Compose(bc)
	if !composed.Get(0, 0) {
		t.Error("Compose should chain 0->1->0 into 0->0")
	}
	if composed.Get(0, 1) {
		t.Error("Compose should not introduce edge 0->1")
	}
}

func TestMatrixComposeWithIdentityIsNoop(t *testing.T) {
	m := bitset.NewMatrix(3, 3)
	m.Set(0, 2)
	m.Set(1, 1)
	id := bitset.Identity(3)
	composed := m.Compose(id)
	for i := 0; i < 3; i++ {
		if !composed.Row(i).Equal(m.Row(i)) {
			t.Errorf("Compose with identity changed row %d", i)
		}
	}
}
