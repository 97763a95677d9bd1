package frontend

import (
	"fmt"
	"regexp/syntax"
	"strings"

	"github.com/NNRepos/enum-spanner-go/internal/errs"
	"github.com/NNRepos/enum-spanner-go/va"
)

// Parse compiles pattern with regexp/syntax, rejects the constructs this
// engine does not support, collects and deduplicates named capture groups
// into variables, and wraps the result for unanchored substring search.
//
// Group names are deduplicated by the portion before the first "__": a
// pattern may repeat a variable name as "x__1", "x__2" to capture it at
// several places in the pattern while still producing a single Variable
// named "x". A pattern with no named groups gets one synthetic variable,
// "match", spanning the whole pattern.
func Parse(pattern string) (*ParseResult, error) {
	re, vars, groupVar, err := parseCommon(pattern)
	if err != nil {
		return nil, err
	}
	re = wrapUnanchored(re)
	return &ParseResult{Root: re, Variables: vars, GroupVariable: groupVar}, nil
}

// ParseRaw is like Parse but skips the leading/trailing unanchored wrap:
// the returned tree matches only the exact substring it is compiled
// against, anchored at both ends. It exists for package naive's reference
// enumerators, which supply their own external loop over candidate
// substrings (mirroring the original's from_regex(regex, raw) mode) rather
// than relying on the compiled automaton's own unanchored search.
func ParseRaw(pattern string) (*ParseResult, error) {
	re, vars, groupVar, err := parseCommon(pattern)
	if err != nil {
		return nil, err
	}
	return &ParseResult{Root: re, Variables: vars, GroupVariable: groupVar}, nil
}

func parseCommon(pattern string) (*syntax.Regexp, []va.Variable, map[*syntax.Regexp]va.Variable, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, nil, nil, &errs.CompileError{Pattern: pattern, Pos: -1, Err: fmt.Errorf("%w: %v", errs.ErrRegexSyntax, err)}
	}

	if err := checkSupported(re); err != nil {
		return nil, nil, nil, &errs.CompileError{Pattern: pattern, Pos: -1, Err: err}
	}

	vars, groupVar := collectVariables(re)
	if len(vars) == 0 {
		v := va.Variable{ID: 0, Name: "match"}
		wrapped := &syntax.Regexp{Op: syntax.OpCapture, Sub: []*syntax.Regexp{re}, Name: v.Name, Cap: 1}
		groupVar[wrapped] = v
		vars = []va.Variable{v}
		re = wrapped
	}

	return re, vars, groupVar, nil
}

// checkSupported rejects constructs outside this engine's scope: anchors,
// word boundaries (look-around), and non-ASCII literals/classes.
func checkSupported(re *syntax.Regexp) error {
	switch re.Op {
	case syntax.OpBeginLine, syntax.OpEndLine, syntax.OpBeginText, syntax.OpEndText:
		return fmt.Errorf("%w: anchors are not supported", errs.ErrRegexUnsupported)
	case syntax.OpWordBoundary, syntax.OpNoWordBoundary:
		return fmt.Errorf("%w: word-boundary assertions are not supported", errs.ErrRegexUnsupported)
	case syntax.OpLiteral:
		for _, r := range re.Rune {
			if r > 127 {
				return fmt.Errorf("%w: non-ASCII literal %q", errs.ErrRegexUnsupported, r)
			}
		}
	case syntax.OpCharClass:
		for _, r := range re.Rune {
			if r > 127 {
				return fmt.Errorf("%w: non-ASCII character class", errs.ErrRegexUnsupported)
			}
		}
	}
	for _, sub := range re.Sub {
		if err := checkSupported(sub); err != nil {
			return err
		}
	}
	return nil
}

// collectVariables walks re, deduplicating named capture groups by the
// portion of their name before the first "__".
func collectVariables(re *syntax.Regexp) ([]va.Variable, map[*syntax.Regexp]va.Variable) {
	byName := make(map[string]va.Variable)
	groupVar := make(map[*syntax.Regexp]va.Variable)
	var vars []va.Variable

	var walk func(n *syntax.Regexp)
	walk = func(n *syntax.Regexp) {
		if n.Op == syntax.OpCapture && n.Name != "" {
			canonical := n.Name
			if i := strings.Index(canonical, "__"); i >= 0 {
				canonical = canonical[:i]
			}
			v, ok := byName[canonical]
			if !ok {
				v = va.Variable{ID: len(vars), Name: canonical}
				byName[canonical] = v
				vars = append(vars, v)
			}
			groupVar[n] = v
		}
		for _, sub := range n.Sub {
			walk(sub)
		}
	}
	walk(re)
	return vars, groupVar
}

// wrapUnanchored wraps re with a leading and trailing "any byte, zero or
// more times" so matching is unanchored substring search regardless of
// where in the document the pattern's own content begins or ends. Anchors
// are rejected outright by checkSupported, so this wrap always applies.
func wrapUnanchored(re *syntax.Regexp) *syntax.Regexp {
	anyByte := &syntax.Regexp{Op: syntax.OpAnyChar}
	prefix := &syntax.Regexp{Op: syntax.OpStar, Sub: []*syntax.Regexp{anyByte}}
	suffix := &syntax.Regexp{Op: syntax.OpStar, Sub: []*syntax.Regexp{{Op: syntax.OpAnyChar}}}
	return &syntax.Regexp{Op: syntax.OpConcat, Sub: []*syntax.Regexp{prefix, re, suffix}}
}
