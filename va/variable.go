package va

import "fmt"

// Variable is a capture variable declared by the pattern, identified by a
// dense zero-based ID assigned in declaration order. Synthetic variables
// (the implicit "match" wrapper; see frontend) are ordinary Variables too.
type Variable struct {
	ID   int
	Name string
}

func (v Variable) String() string { return v.Name }

// Marker labels a marker transition: either the opening or the closing
// boundary of a Variable's span. ID gives a dense 2*N id space
// (open = 2*id, close = 2*id+1) used to index marker-indexed bitsets.
type Marker struct {
	Variable Variable
	Open     bool
}

// ID returns the dense marker id: 2*Variable.ID for an open marker,
// 2*Variable.ID+1 for a close marker.
func (m Marker) ID() int {
	if m.Open {
		return 2 * m.Variable.ID
	}
	return 2*m.Variable.ID + 1
}

func (m Marker) String() string {
	if m.Open {
		return fmt.Sprintf("%s⊢", m.Variable.Name) // ⊢
	}
	return fmt.Sprintf("%s⊣", m.Variable.Name) // ⊣
}
