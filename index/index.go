// Package index builds the jump structure over a product DAG (§4.E):
// a sparse set of anchor levels with precomputed reachability matrices
// between consecutive anchors, letting callers skip stretches of the
// document that contain no capture-relevant state without walking them
// one level at a time.
package index

import (
	"fmt"
	"time"

	"github.com/NNRepos/enum-spanner-go/dag"
	"github.com/NNRepos/enum-spanner-go/internal/bitset"
	"github.com/NNRepos/enum-spanner-go/internal/errs"
	"github.com/NNRepos/enum-spanner-go/prefilter"
	"github.com/NNRepos/enum-spanner-go/va"
)

// Options configures index construction.
type Options struct {
	Trimming  dag.TrimMode
	Width     int // vertex-count cap between anchors; <=0 selects ceil(sqrt(levels))
	MaxStates int // forwarded to dag.Options.MaxStates
}

// DefaultOptions returns FullTrimming, default anchor spacing, no budget cap.
func DefaultOptions() Options {
	return Options{Trimming: dag.FullTrimming}
}

// Index is the built jump structure over one (VA, document) pair.
type Index struct {
	dag     *dag.DAG
	anchors []int
	// step[i] composes the per-level transfer matrices between
	// anchors[i] and anchors[i+1], inclusive-exclusive.
	step  []*bitset.Matrix
	empty bool // true when the prefilter proved no match is possible
	stats Stats
}

// Empty reports whether the document contains no accepting run at all; in
// that case Enumerate will produce no assignments.
func (idx *Index) Empty() bool {
	return idx.empty || !idx.dag.HasMatch()
}

// DAG returns the underlying product DAG.
func (idx *Index) DAG() *dag.DAG { return idx.dag }

// Anchors returns the sorted anchor levels.
func (idx *Index) Anchors() []int { return append([]int(nil), idx.anchors...) }

// Stats returns the statistics collected while building the index.
func (idx *Index) Stats() Stats { return idx.stats }

// Build constructs an Index for automaton against doc. When a prefilter can
// be derived from automaton's required literal prefixes and none occur in
// doc, Build short-circuits to an empty Index without running the product
// DAG construction at all.
func Build(automaton *va.VA, doc []byte, opts Options) (*Index, error) {
	start := time.Now()

	if gate := prefilter.FromVA(automaton); gate != nil && !gate.IsMatch(doc) {
		return &Index{
			empty: true,
			stats: Stats{BuildDuration: time.Since(start), PreprocessS: time.Since(start).Seconds(), PrefilterShortCircuit: true},
		}, nil
	}
	preprocessDone := time.Now()

	d, err := dag.Build(automaton, doc, dag.Options{Trimming: opts.Trimming, MaxStates: opts.MaxStates})
	if err != nil {
		return nil, fmt.Errorf("dag: %w", err)
	}
	dagDone := time.Now()

	anchors := chooseAnchors(d, opts.Width)
	steps, err := buildSteps(d, anchors)
	if err != nil {
		return nil, err
	}
	indexDone := time.Now()

	idx := &Index{dag: d, anchors: anchors, step: steps}
	idx.stats = Stats{
		BuildDuration: time.Since(start),
		NumLevels:     d.NumLevels(),
		NumAnchors:    len(anchors),
		NumStates:     automaton.NumStates(),
		PreprocessS:   preprocessDone.Sub(start).Seconds(),
		CreateDagS:    dagDone.Sub(preprocessDone).Seconds(),
		IndexDagS:     indexDone.Sub(dagDone).Seconds(),
	}
	if opts.Trimming == dag.FullTrimming {
		// Trimming is folded into dag.Build itself (§4.D runs inline after
		// the forward scan), so attribute it as a share of CreateDagS rather
		// than double-count; callers that need the split can rebuild with
		// NoTrimming and diff against a FullTrimming run.
		idx.stats.TrimDagS = 0
	}

	var widthSum int
	for level := 0; level < d.NumLevels(); level++ {
		w := d.Level(level).PopCount()
		idx.stats.TotalVertices += w
		if w > idx.stats.WidthMax {
			idx.stats.WidthMax = w
		}
		widthSum += w
	}
	if d.NumLevels() > 0 {
		idx.stats.WidthAvg = float64(widthSum) / float64(d.NumLevels())
	}

	idx.stats.NumMatrices = len(steps)
	var matrixSizeSum int
	n := automaton.NumStates()
	for _, m := range steps {
		size := m.Rows() * m.Cols()
		matrixSizeSum += size
		if size > idx.stats.MatrixMaxSize {
			idx.stats.MatrixMaxSize = size
		}
	}
	if len(steps) > 0 {
		idx.stats.MatrixAvgSize = float64(matrixSizeSum) / float64(len(steps))
	}

	idx.stats.MemoryDag = estimateDagBytes(d)
	idx.stats.MemoryMatrices = int64(len(steps)) * int64(n) * int64((n+63)/64) * 8
	idx.stats.MemoryJumpLevel = int64(len(anchors)) * 8
	idx.stats.MemoryUsage = idx.stats.MemoryDag + idx.stats.MemoryMatrices + idx.stats.MemoryJumpLevel

	return idx, nil
}

// estimateDagBytes approximates the bytes backing the DAG's per-level
// bitsets: one uint64 word per 64 states, per level.
func estimateDagBytes(d *dag.DAG) int64 {
	words := int64((d.VA().NumStates() + 63) / 64)
	return int64(d.NumLevels()) * words * 8
}

func buildSteps(d *dag.DAG, anchors []int) ([]*bitset.Matrix, error) {
	if len(anchors) == 0 {
		return nil, fmt.Errorf("%w: no anchors", errs.ErrInternalInvariantViolated)
	}
	n := d.VA().NumStates()
	steps := make([]*bitset.Matrix, len(anchors)-1)
	for i := 0; i < len(anchors)-1; i++ {
		m := bitset.Identity(n)
		for level := anchors[i]; level < anchors[i+1]; level++ {
			m = m.Compose(levelStepMatrix(d, level))
		}
		steps[i] = m
	}
	return steps, nil
}

// levelStepMatrix builds the Q x Q matrix relating a state in Level(level)
// to the live state in Level(level+1) that a byte transition on doc[level]
// in its closure leads to directly. The zero-width closure of that target
// is not included, so markers at the next level are left for the caller.
func levelStepMatrix(d *dag.DAG, level int) *bitset.Matrix {
	automaton := d.VA()
	n := automaton.NumStates()
	m := bitset.NewMatrix(n, n)
	b := d.Doc()[level]
	next := d.Level(level + 1)
	d.Level(level).Iterate(func(q int) {
		for _, step := range automaton.MarkerClosure([]va.StateID{va.StateID(q)}) {
			s := automaton.State(step.State)
			if s == nil || s.Kind() != va.KindByteRange {
				continue
			}
			lo, hi, target := s.ByteRange()
			if b < lo || b > hi {
				continue
			}
			if next.Get(int(target)) {
				m.Set(q, int(target))
			}
		}
	})
	return m
}
