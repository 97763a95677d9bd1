package dag

import (
	"github.com/NNRepos/enum-spanner-go/internal/bitset"
	"github.com/NNRepos/enum-spanner-go/va"
)

// trim runs the reverse co-reachability pass over an already forward-built
// DAG, replacing each levels[ℓ] with the subset able to reach an accepting
// state by the end of the document. Idempotent: running it again on an
// already-trimmed DAG leaves every level unchanged, since a state kept by
// the first pass still satisfies the same reachability test.
func trim(d *DAG) {
	n := len(d.levels) - 1 // last level index
	automaton := d.va

	kept := make([]*bitset.Set, len(d.levels))
	kept[n] = bitset.New(automaton.NumStates())
	d.levels[n].Iterate(func(q int) {
		for _, step := range automaton.MarkerClosure([]va.StateID{va.StateID(q)}) {
			if s := automaton.State(step.State); s != nil && s.IsMatch() {
				kept[n].Set(q)
				return
			}
		}
	})

	for level := n - 1; level >= 0; level-- {
		kept[level] = bitset.New(automaton.NumStates())
		b := d.doc[level]
		nextKept := kept[level+1]
		d.levels[level].Iterate(func(q int) {
			if reachesKept(automaton, va.StateID(q), b, nextKept) {
				kept[level].Set(q)
			}
		})
	}

	d.levels = kept
}

// reachesKept reports whether q can, via its own epsilon/marker closure,
// reach a ByteRange state whose range admits b and whose target is in
// nextKept.
func reachesKept(automaton *va.VA, q va.StateID, b byte, nextKept *bitset.Set) bool {
	for _, step := range automaton.MarkerClosure([]va.StateID{q}) {
		s := automaton.State(step.State)
		if s == nil || s.Kind() != va.KindByteRange {
			continue
		}
		lo, hi, next := s.ByteRange()
		if b >= lo && b <= hi && nextKept.Get(int(next)) {
			return true
		}
	}
	return false
}
