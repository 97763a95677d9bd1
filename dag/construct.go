package dag

import (
	"fmt"

	"github.com/NNRepos/enum-spanner-go/internal/bitset"
	"github.com/NNRepos/enum-spanner-go/internal/errs"
	"github.com/NNRepos/enum-spanner-go/va"
)

// Options configures DAG construction.
type Options struct {
	Trimming TrimMode
	// MaxStates caps the total number of (level, state) vertices across the
	// whole DAG. Zero means unbounded. Exceeding it returns ErrOutOfBudget.
	MaxStates int
}

// DefaultOptions returns FullTrimming with no budget cap.
func DefaultOptions() Options {
	return Options{Trimming: FullTrimming}
}

// Build runs the forward scan (§4.C) constructing R[0..len(doc)], then the
// reverse trimming pass (§4.D) unless opts.Trimming is NoTrimming.
func Build(automaton *va.VA, doc []byte, opts Options) (*DAG, error) {
	numLevels := len(doc) + 1
	levels := make([]*bitset.Set, numLevels)

	levels[0] = closureSet(automaton, []va.StateID{automaton.Start()})
	total := levels[0].PopCount()
	if opts.MaxStates > 0 && total > opts.MaxStates {
		return nil, fmt.Errorf("%w: level 0 exceeds budget", errs.ErrOutOfBudget)
	}

	for level := 0; level < len(doc); level++ {
		b := doc[level]
		var seeds []va.StateID
		levels[level].Iterate(func(q int) {
			s := automaton.State(va.StateID(q))
			if s == nil || s.Kind() != va.KindByteRange {
				return
			}
			lo, hi, next := s.ByteRange()
			if b >= lo && b <= hi {
				seeds = append(seeds, next)
			}
		})
		levels[level+1] = closureSet(automaton, seeds)
		total += levels[level+1].PopCount()
		if opts.MaxStates > 0 && total > opts.MaxStates {
			return nil, fmt.Errorf("%w: level %d exceeds budget", errs.ErrOutOfBudget, level+1)
		}
	}

	d := &DAG{va: automaton, doc: doc, levels: levels}
	if opts.Trimming == FullTrimming {
		trim(d)
	}
	return d, nil
}

// closureSet computes the marker closure of seeds and returns it as a Set
// over the automaton's state universe.
func closureSet(automaton *va.VA, seeds []va.StateID) *bitset.Set {
	out := bitset.New(automaton.NumStates())
	if len(seeds) == 0 {
		return out
	}
	for _, step := range automaton.MarkerClosure(seeds) {
		out.Set(int(step.State))
	}
	return out
}
