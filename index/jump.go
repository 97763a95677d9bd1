package index

import (
	"sort"

	"github.com/NNRepos/enum-spanner-go/internal/bitset"
)

// anchorIndex returns the index of level within idx.anchors, or -1 if level
// is not itself an anchor.
func (idx *Index) anchorIndex(level int) int {
	i := sort.SearchInts(idx.anchors, level)
	if i < len(idx.anchors) && idx.anchors[i] == level {
		return i
	}
	return -1
}

// Jump implements J(ℓ, q) (§4.E): given a state q present at an anchor
// level, it returns the next anchor level and the set of states reachable
// there from q, without needing to re-walk the intervening levels one byte
// at a time. ok is false when level is not an anchor or is the last one.
//
// The reachable set holds the states entered by the last byte transition
// into the landing level, before any zero-width transition there, and is
// already intersected with DAG().Level(next).
func (idx *Index) Jump(level int, state int) (next int, reachable *bitset.Set, ok bool) {
	i := idx.anchorIndex(level)
	if i < 0 || i >= len(idx.step) {
		return 0, nil, false
	}
	sources := bitset.New(idx.dag.VA().NumStates())
	sources.Set(state)
	reach := idx.step[i].Reach(sources)
	reach.And(idx.dag.Level(idx.anchors[i+1]))
	return idx.anchors[i+1], reach, true
}
