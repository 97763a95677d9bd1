// Package dag builds the product DAG: the level-by-level set of variable-set
// automaton states reachable after consuming each prefix of a document,
// together with the trimming pass that discards states unable to reach an
// accepting state by the end of the document. It is the foundation package
// index and enum walk to answer reachability and enumeration queries.
package dag

import (
	"github.com/NNRepos/enum-spanner-go/internal/bitset"
	"github.com/NNRepos/enum-spanner-go/va"
)

// TrimMode selects how aggressively the DAG discards states that cannot
// reach an accepting state.
type TrimMode int

const (
	// FullTrimming runs the reverse co-reachability pass (§4.D), discarding
	// every state not on some accepting path. Smaller DAG, more build time.
	FullTrimming TrimMode = iota
	// NoTrimming skips the reverse pass; every forward-reachable state is
	// kept even if it cannot reach acceptance. Cheaper to build, larger DAG.
	NoTrimming
)

// DAG is the product of a VA and a document: for each level ℓ (document
// position, 0..len(doc)), the set of VA states reachable after consuming
// doc[0:ℓ], closed over epsilon and marker transitions.
type DAG struct {
	va     *va.VA
	doc    []byte
	levels []*bitset.Set // levels[ℓ] = R[ℓ], universe = va.NumStates()
}

// NumLevels returns len(doc)+1.
func (d *DAG) NumLevels() int { return len(d.levels) }

// VA returns the automaton the DAG was built from.
func (d *DAG) VA() *va.VA { return d.va }

// Doc returns the document the DAG was built against.
func (d *DAG) Doc() []byte { return d.doc }

// Level returns R[ℓ], the set of VA states present at level ℓ. Returns nil
// if ℓ is out of range.
func (d *DAG) Level(level int) *bitset.Set {
	if level < 0 || level >= len(d.levels) {
		return nil
	}
	return d.levels[level]
}

// Accepting returns the subset of Level(level) that are VA accepting
// states.
func (d *DAG) Accepting(level int) *bitset.Set {
	r := d.Level(level)
	if r == nil {
		return nil
	}
	out := bitset.New(d.va.NumStates())
	r.Iterate(func(q int) {
		if s := d.va.State(va.StateID(q)); s != nil && s.IsMatch() {
			out.Set(q)
		}
	})
	return out
}

// HasMatch reports whether any level's accepting set is non-empty.
func (d *DAG) HasMatch() bool {
	for level := 0; level < len(d.levels); level++ {
		if !d.Accepting(level).IsEmpty() {
			return true
		}
	}
	return false
}
