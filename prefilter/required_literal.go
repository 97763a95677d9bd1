package prefilter

import (
	"github.com/coregx/ahocorasick"

	"github.com/NNRepos/enum-spanner-go/internal/bytescan"
	"github.com/NNRepos/enum-spanner-go/va"
)

// maxRequiredLiteral caps how many bytes extractRequiredLiteral will chase,
// guarding against degenerate automata with an enormous straight-line run.
const maxRequiredLiteral = 64

// Gate is a cheap, conservative pre-check derived from a VA's required
// literal: a run of bytes that must occur verbatim in any document the
// automaton accepts, extracted by following the unique unbranching path
// from the start state. It lets index.Build skip product-DAG construction
// entirely when the literal is absent. Grounded on the Aho-Corasick
// strategy in the teacher's meta/compile.go, adapted to a single-pattern
// gate instead of a multi-alternative dispatch table.
type Gate struct {
	literal []byte
	auto    *ahocorasick.Automaton
}

// IsMatch reports whether the gate's literal occurs anywhere in doc. A
// false result proves no accepting run exists; true only means the literal
// is present, not that a match exists.
func (g *Gate) IsMatch(doc []byte) bool {
	if g == nil {
		return true
	}
	if len(g.literal) == 1 {
		// A single required byte needs no Aho-Corasick automaton at all.
		return bytescan.FindByte(doc, g.literal[0]) >= 0
	}
	if g.auto == nil {
		return true
	}
	return g.auto.IsMatch(doc)
}

// FromVA builds a Gate from automaton's required literal prefix, or
// returns nil when no useful literal can be extracted (e.g. the pattern
// starts with a branch or a variable-width class).
func FromVA(automaton *va.VA) *Gate {
	lit := extractRequiredLiteral(automaton)
	if len(lit) == 0 {
		return nil
	}
	if len(lit) == 1 {
		return &Gate{literal: lit}
	}
	builder := ahocorasick.NewBuilder()
	builder.AddPattern(lit)
	auto, err := builder.Build()
	if err != nil {
		return nil
	}
	return &Gate{literal: lit, auto: auto}
}

// extractRequiredLiteral walks forward from the start state as long as the
// marker/epsilon closure at each step contains exactly one ByteRange state
// transitioning on a single concrete byte (lo == hi). On the first step the
// unanchored prefix's any-byte loop (a ByteRange whose successor leads back
// to the start state) is not counted. Any other branch (Split),
// variable-width class, or end of the automaton stops the walk.
func extractRequiredLiteral(automaton *va.VA) []byte {
	seeds := []va.StateID{automaton.Start()}
	var out []byte
	for len(out) < maxRequiredLiteral {
		var byteState *va.State
		count := 0
		for _, step := range automaton.MarkerClosure(seeds) {
			s := automaton.State(step.State)
			if s == nil || s.Kind() != va.KindByteRange {
				continue
			}
			if len(out) == 0 {
				_, _, next := s.ByteRange()
				loops := false
				for _, back := range automaton.MarkerClosure([]va.StateID{next}) {
					loops = loops || back.State == automaton.Start()
				}
				if loops {
					continue
				}
			}
			byteState = s
			count++
		}
		if count != 1 {
			break
		}
		lo, hi, next := byteState.ByteRange()
		if lo != hi {
			break
		}
		out = append(out, lo)
		seeds = []va.StateID{next}
	}
	return out
}
