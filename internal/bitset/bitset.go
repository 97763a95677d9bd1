// Package bitset provides a dense, word-packed bit set and a boolean
// matrix built on top of it, used by package dag for per-level state sets
// and by package index for composed reachability matrices. There is no
// bitset/matrix library anywhere in the reference corpus this engine was
// built against; the teacher's own internal/sparse package hand-rolls a
// comparable set structure over stdlib slices, so this package follows
// that precedent rather than reaching for an unrepresented dependency.
package bitset

import "math/bits"

const wordBits = 64

// Set is a fixed-universe bit set over [0, n).
type Set struct {
	n     int
	words []uint64
}

// New creates a Set with universe size n.
func New(n int) *Set {
	return &Set{n: n, words: make([]uint64, (n+wordBits-1)/wordBits)}
}

// Len returns the set's universe size.
func (s *Set) Len() int { return s.n }

// Set adds i to the set.
func (s *Set) Set(i int) { s.words[i/wordBits] |= 1 << uint(i%wordBits) }

// Clear removes i from the set.
func (s *Set) Clear(i int) { s.words[i/wordBits] &^= 1 << uint(i%wordBits) }

// Get reports whether i is in the set.
func (s *Set) Get(i int) bool { return s.words[i/wordBits]&(1<<uint(i%wordBits)) != 0 }

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	for _, w := range s.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// PopCount returns the number of members.
func (s *Set) PopCount() int {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// Or sets s to the union of s and other. Both must share the same universe.
func (s *Set) Or(other *Set) {
	for i := range s.words {
		s.words[i] |= other.words[i]
	}
}

// And sets s to the intersection of s and other.
func (s *Set) And(other *Set) {
	for i := range s.words {
		s.words[i] &= other.words[i]
	}
}

// Equal reports whether s and other have the same members.
func (s *Set) Equal(other *Set) bool {
	if len(s.words) != len(other.words) {
		return false
	}
	for i := range s.words {
		if s.words[i] != other.words[i] {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s *Set) Clone() *Set {
	c := &Set{n: s.n, words: make([]uint64, len(s.words))}
	copy(c.words, s.words)
	return c
}

// Iterate calls f for every member of s, in ascending order.
func (s *Set) Iterate(f func(i int)) {
	for wi, w := range s.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			f(wi*wordBits + b)
			w &= w - 1
		}
	}
}

// Slice returns the members of s as a sorted slice.
func (s *Set) Slice() []int {
	out := make([]int, 0, s.PopCount())
	s.Iterate(func(i int) { out = append(out, i) })
	return out
}

// FromSlice builds a Set of universe n containing exactly the given
// members.
func FromSlice(n int, members []int) *Set {
	s := New(n)
	for _, m := range members {
		s.Set(m)
	}
	return s
}
