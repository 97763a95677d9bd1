// Package frontend turns a regex pattern string into the inputs package va
// needs to build a variable-set automaton: a rewritten regexp/syntax tree
// (wrapped for unanchored substring search) together with the ordered list
// of capture variables it declares and a mapping from capture nodes to
// variable identity.
package frontend

import (
	"regexp/syntax"

	"github.com/NNRepos/enum-spanner-go/va"
)

// ParseResult is the output of Parse: a regexp/syntax tree ready for
// package va to walk, plus the variables it declares.
type ParseResult struct {
	// Root is the rewritten syntax tree: unnamed capture groups are left as
	// plain groups (no marker will be emitted for them), named groups map
	// into GroupVariable, and, from Parse (not ParseRaw), the tree is
	// wrapped with a leading and trailing "any byte, zero or more times" so
	// the match is an unanchored substring search.
	Root *syntax.Regexp

	// Variables lists the declared capture variables in declaration order.
	// Variable.ID is the dense index into this slice.
	Variables []va.Variable

	// GroupVariable maps a capture node in Root to the variable it opens
	// and closes. Capture nodes absent from this map are plain
	// (non-capturing) groups.
	GroupVariable map[*syntax.Regexp]va.Variable
}
