package va

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Builder constructs a VA incrementally, mirroring the teacher's low-level
// NFA builder: Add* methods append states, Patch fixes up forward
// references left dangling during recursive compilation.
type Builder struct {
	states []State
	start  StateID
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 32), start: InvalidState}
}

// AddMatch adds an accepting state.
func (b *Builder) AddMatch() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindMatch})
	return id
}

// AddByteRange adds a state transitioning on [lo, hi] to next.
func (b *Builder) AddByteRange(lo, hi byte, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindByteRange, lo: lo, hi: hi, next: next})
	return id
}

// AddSplit adds a state with two epsilon-successors.
func (b *Builder) AddSplit(left, right StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindSplit, left: left, right: right})
	return id
}

// AddEpsilon adds a state with a single epsilon-successor.
func (b *Builder) AddEpsilon(next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindEpsilon, next: next})
	return id
}

// AddMarker adds a marker transition state for m, to next.
func (b *Builder) AddMarker(m Marker, next StateID) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindMarker, marker: m, next: next})
	return id
}

// Patch rewrites the successor of a ByteRange/Epsilon/Marker state. Split
// states use PatchSplit since they have two successors.
func (b *Builder) Patch(id, target StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state id out of bounds", StateID: id}
	}
	s := &b.states[id]
	switch s.kind {
	case KindByteRange, KindEpsilon, KindMarker:
		s.next = target
		return nil
	default:
		return &BuildError{Message: fmt.Sprintf("cannot patch state of kind %s", s.kind), StateID: id}
	}
}

// PatchSplit rewrites both successors of a Split state.
func (b *Builder) PatchSplit(id StateID, left, right StateID) error {
	if int(id) >= len(b.states) {
		return &BuildError{Message: "state id out of bounds", StateID: id}
	}
	s := &b.states[id]
	if s.kind != KindSplit {
		return &BuildError{Message: fmt.Sprintf("expected Split state, got %s", s.kind), StateID: id}
	}
	s.left, s.right = left, right
	return nil
}

// SetStart records the automaton's start state.
func (b *Builder) SetStart(start StateID) { b.start = start }

// States returns the number of states added so far.
func (b *Builder) States() int { return len(b.states) }

// Validate checks that the start state and every transition target is in
// range.
func (b *Builder) Validate() error {
	if b.start == InvalidState {
		return &BuildError{Message: "start state not set", StateID: InvalidState}
	}
	if int(b.start) >= len(b.states) {
		return &BuildError{Message: "start state out of bounds", StateID: b.start}
	}
	for i, s := range b.states {
		id := StateID(i)
		switch s.kind {
		case KindByteRange, KindEpsilon, KindMarker:
			if int(s.next) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid next state %d", s.next), StateID: id}
			}
		case KindSplit:
			if int(s.left) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid left state %d", s.left), StateID: id}
			}
			if int(s.right) >= len(b.states) {
				return &BuildError{Message: fmt.Sprintf("invalid right state %d", s.right), StateID: id}
			}
		}
	}
	return nil
}

// Build finalizes the automaton and records its variable list; accepting
// states are simply its KindMatch states. vars must list every Variable referenced by a marker added via
// AddMarker; Build normalizes it to ascending ID order regardless of the
// order the caller collected them in, so Variables() and Assignment.Key
// always iterate in a stable, ID-determined sequence.
func (b *Builder) Build(vars []Variable) (*VA, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	sorted := append([]Variable(nil), vars...)
	slices.SortFunc(sorted, func(a, c Variable) int { return a.ID - c.ID })
	v := &VA{
		states: b.states,
		start:  b.start,
		vars:   sorted,
	}
	return v, nil
}
