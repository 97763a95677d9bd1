// Package enum implements the bounded-delay enumerator (§4.F): it walks the
// variable-set automaton against a document, consulting the jump index to
// skip whole byte-consuming stretches in one matrix lookup rather than
// simulating them one byte at a time, and yields every distinct
// capture-variable assignment reachable by some accepting run.
package enum

import (
	"context"

	"github.com/NNRepos/enum-spanner-go/index"
	"github.com/NNRepos/enum-spanner-go/internal/errs"
	"github.com/NNRepos/enum-spanner-go/va"
)

// event is one node of the persistent history list threaded through the
// recursive walk: either "variable opened at position start" (open==true,
// end unused) or "variable closed, spanning [start,end)" (open==false).
// Frames are shared between sibling branches (a Split never mutates its
// parent's list), so no copying is needed on backtrack.
type event struct {
	parent   *event
	variable va.Variable
	open     bool
	start    int
	end      int
}

// Enumerator streams the distinct assignments of automaton against doc,
// using idx's trimmed per-level state sets to prune automaton paths that
// cannot reach acceptance, and idx.Jump to skip from one marker-bearing
// anchor level to the next without re-walking the document byte by byte.
type Enumerator struct {
	automaton *va.VA
	doc       []byte
	idx       *index.Index
	order     []va.Variable
}

// New creates an Enumerator. idx must have been built from automaton
// against doc (typically via index.Build(automaton, doc, ...)).
func New(automaton *va.VA, doc []byte, idx *index.Index) *Enumerator {
	return &Enumerator{automaton: automaton, doc: doc, idx: idx, order: automaton.Variables()}
}

// Enumerate calls yield once per distinct Assignment reachable by some
// accepting run, in the order the depth-first walk discovers them. It
// stops early if yield returns false or ctx is done.
func (e *Enumerator) Enumerate(ctx context.Context, yield func(va.Assignment) bool) error {
	w := &walker{e: e, ctx: ctx, seen: make(map[string]bool), yield: yield}
	w.walk(0, e.automaton.Start(), nil)
	return w.err
}

// All collects every distinct assignment into a slice; convenience for
// callers and tests that do not need streaming/cancellation.
func (e *Enumerator) All(ctx context.Context) ([]va.Assignment, error) {
	var out []va.Assignment
	err := e.Enumerate(ctx, func(a va.Assignment) bool {
		out = append(out, a)
		return true
	})
	return out, err
}

type walker struct {
	e       *Enumerator
	ctx     context.Context
	seen    map[string]bool
	yield   func(va.Assignment) bool
	stopped bool
	err     error
}

// walk enters level at state with a fresh cycle guard and dispatches to
// walkState. Every caller that advances to a new document level (the
// initial call, and the landing states from a jump) comes through here.
func (w *walker) walk(level int, state va.StateID, hist *event) {
	w.walkState(level, state, hist, make(map[va.StateID]bool, 8))
}

// walkState performs the pruned depth-first simulation described in the
// package comment. level is the current document position (always an
// anchor level by construction: 0, or the landing level of a prior Jump);
// state is the automaton state the simulation currently occupies; hist is
// the persistent open/close history of variables on this path so far.
//
// onLevel guards against the harmless pure Split/Epsilon cycles a nested
// nullable closure can produce at a single level (e.g. (?:a*)*): it tracks
// the states currently on the zero-width recursion stack for this level
// and refuses to re-enter one, the same way va.HasMarkerCycle only rejects
// cycles that actually cross a marker. Sibling branches that reconverge on
// the same state (not a true recursion cycle) are unaffected, since the
// entry is removed again once the branch that added it returns.
func (w *walker) walkState(level int, state va.StateID, hist *event, onLevel map[va.StateID]bool) {
	if w.stopped || w.err != nil {
		return
	}
	select {
	case <-w.ctx.Done():
		w.err = w.ctx.Err()
		return
	default:
	}

	live := w.e.idx.DAG().Level(level)
	if live == nil || !live.Get(int(state)) {
		return // pruned: not on any accepting path from here
	}

	if onLevel[state] {
		return
	}
	onLevel[state] = true
	defer delete(onLevel, state)

	s := w.e.automaton.State(state)
	if s == nil {
		w.err = errs.ErrInternalInvariantViolated
		return
	}

	switch s.Kind() {
	case va.KindMatch:
		if level == len(w.e.doc) {
			w.emit(hist)
		}
	case va.KindSplit:
		left, right := s.Split()
		w.walkState(level, left, hist, onLevel)
		w.walkState(level, right, hist, onLevel)
	case va.KindEpsilon:
		w.walkState(level, s.Epsilon(), hist, onLevel)
	case va.KindMarker:
		m, next := s.MarkerTransition()
		w.walkState(level, next, w.applyMarker(level, hist, m), onLevel)
	case va.KindByteRange:
		// Skip straight to the next marker-bearing anchor level via the
		// jump index's precomposed reachability matrix (§4.E), instead of
		// consuming doc one byte at a time: ok is false only when level
		// isn't an anchor (shouldn't happen, since every level this walk
		// visits either is 0 or was landed on by a prior Jump) or when
		// level is the last anchor and there's no document left to jump
		// across.
		next, reachable, ok := w.e.idx.Jump(level, int(state))
		if !ok {
			return
		}
		reachable.Iterate(func(q int) {
			w.walk(next, va.StateID(q), hist)
		})
	}
}

// applyMarker appends an open event for m.Open, or resolves the nearest
// unclosed instance of m.Variable and appends its finished span for a
// close. A close always has a matching open earlier on the same path,
// since the automaton only ever emits a variable's close marker after its
// open on any one run.
func (w *walker) applyMarker(level int, hist *event, m va.Marker) *event {
	if m.Open {
		return &event{parent: hist, variable: m.Variable, open: true, start: level}
	}
	start := level
	for f := hist; f != nil; f = f.parent {
		if f.variable.ID == m.Variable.ID && f.open {
			start = f.start
			break
		}
	}
	return &event{parent: hist, variable: m.Variable, open: false, start: start, end: level}
}

// emit builds the Assignment for one accepting path from its history list
// and delivers it to yield, skipping assignments already seen on an
// earlier path.
func (w *walker) emit(hist *event) {
	a := make(va.Assignment)
	for f := hist; f != nil; f = f.parent {
		if f.open {
			continue
		}
		if _, exists := a[f.variable.Name]; exists {
			continue // nearer-to-leaf close already recorded for this variable
		}
		a[f.variable.Name] = va.Span{Start: f.start, End: f.end}
	}

	key := a.Key(w.e.order)
	if w.seen[key] {
		return
	}
	w.seen[key] = true
	if !w.yield(a) {
		w.stopped = true
	}
}
