// Package naive implements reference enumerators used only to cross-check
// the indexed engine's soundness, completeness, and distinctness (§8
// properties 1-3) on small inputs: EnumerateQuadratic mirrors the
// substring-scan shape of naive_quadratic.rs, and EnumerateCubic mirrors
// naive_cubic.rs's re-match-every-substring approach. Both deliberately
// avoid the product DAG, jump index, and enumerator packages entirely, so
// a bug shared between those packages cannot also hide here.
package naive

import (
	"github.com/NNRepos/enum-spanner-go/frontend"
	"github.com/NNRepos/enum-spanner-go/va"
)

// compileRaw parses pattern without the unanchored .* wrap, so the
// resulting automaton matches only exactly what the pattern describes,
// anchored at both ends of whatever byte range it is run against.
func compileRaw(pattern string) (*va.VA, error) {
	parsed, err := frontend.ParseRaw(pattern)
	if err != nil {
		return nil, err
	}
	return va.NewCompiler(va.DefaultCompilerConfig()).Compile(parsed.Root, parsed.Variables, parsed.GroupVariable)
}

// EnumerateQuadratic finds every distinct assignment of pattern against
// doc by, for each start position s, running one forward simulation of the
// raw (anchored-at-neither-end-by-wrapping) automaton over doc[s:],
// emitting an assignment whenever the simulation reaches an accepting
// state — mirroring naive_quadratic.rs's per-start bitset evolution. This
// is O(n) simulations of O(n) steps each, hence quadratic in len(doc).
func EnumerateQuadratic(pattern string, doc []byte) ([]va.Assignment, error) {
	automaton, err := compileRaw(pattern)
	if err != nil {
		return nil, err
	}
	order := automaton.Variables()

	var out []va.Assignment
	for start := 0; start <= len(doc); start++ {
		seen := make(map[string]bool)
		w := &rawWalker{automaton: automaton, doc: doc, order: order, requireFullConsume: false}
		w.walk(start, automaton.Start(), nil, func(a va.Assignment) {
			key := a.Key(order)
			if !seen[key] {
				seen[key] = true
				out = append(out, a)
			}
		})
	}
	return out, nil
}

// EnumerateCubic finds every distinct assignment of pattern against doc by
// trying every substring doc[s:e] and fully re-matching it against pattern
// anchored at both ends, mirroring naive_cubic.rs's Regex::new(&format!("^{}$",
// pattern)) loop. O(n^2) substrings, each requiring an O(n) match, hence
// cubic in len(doc).
func EnumerateCubic(pattern string, doc []byte) ([]va.Assignment, error) {
	automaton, err := compileRaw(pattern)
	if err != nil {
		return nil, err
	}
	order := automaton.Variables()

	var out []va.Assignment
	seen := make(map[string]bool)
	for s := 0; s <= len(doc); s++ {
		for e := s; e <= len(doc); e++ {
			w := &rawWalker{automaton: automaton, doc: doc[s:e], order: order, requireFullConsume: true}
			w.walk(0, automaton.Start(), nil, func(a va.Assignment) {
				shifted := shiftAssignment(a, s)
				key := shifted.Key(order)
				if !seen[key] {
					seen[key] = true
					out = append(out, shifted)
				}
			})
		}
	}
	return out, nil
}

func shiftAssignment(a va.Assignment, by int) va.Assignment {
	out := make(va.Assignment, len(a))
	for name, sp := range a {
		out[name] = va.Span{Start: sp.Start + by, End: sp.End + by}
	}
	return out
}

// event is the same persistent open/close history node used by package
// enum's walker; duplicated here (rather than imported) so naive has no
// dependency on the package it exists to cross-check.
type event struct {
	parent   *event
	variable va.Variable
	open     bool
	start    int
	end      int
}

// rawWalker performs an unpruned depth-first simulation of automaton over
// doc starting at some level. Unlike enum.walker it never consults a
// product DAG: every reachable path is explored.
type rawWalker struct {
	automaton *va.VA
	doc       []byte
	order     []va.Variable
	// requireFullConsume selects EnumerateCubic's semantics (match only at
	// level == len(doc)) versus EnumerateQuadratic's (match at any level).
	requireFullConsume bool
}

func (w *rawWalker) walk(level int, state va.StateID, hist *event, emit func(va.Assignment)) {
	s := w.automaton.State(state)
	if s == nil {
		return
	}

	switch s.Kind() {
	case va.KindMatch:
		if !w.requireFullConsume || level == len(w.doc) {
			emit(buildAssignment(hist))
		}
	case va.KindSplit:
		left, right := s.Split()
		w.walk(level, left, hist, emit)
		w.walk(level, right, hist, emit)
	case va.KindEpsilon:
		w.walk(level, s.Epsilon(), hist, emit)
	case va.KindMarker:
		m, next := s.MarkerTransition()
		w.walk(level, next, applyMarker(hist, m, level), emit)
	case va.KindByteRange:
		if level >= len(w.doc) {
			return
		}
		b := w.doc[level]
		lo, hi, next := s.ByteRange()
		if b < lo || b > hi {
			return
		}
		w.walk(level+1, next, hist, emit)
	}
}

func applyMarker(hist *event, m va.Marker, level int) *event {
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

func buildAssignment(hist *event) va.Assignment {
	a := make(va.Assignment)
	for f := hist; f != nil; f = f.parent {
		if f.open {
			continue
		}
		if _, exists := a[f.variable.Name]; exists {
			continue
		}
		a[f.variable.Name] = va.Span{Start: f.start, End: f.end}
	}
	return a
}
