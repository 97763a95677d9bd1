package va

import (
	"fmt"
	"regexp/syntax"

	"github.com/NNRepos/enum-spanner-go/internal/errs"
)

// CompilerConfig configures VA compilation. Mirrors the teacher's
// CompilerConfig/DefaultCompilerConfig shape.
type CompilerConfig struct {
	// MaxRecursionDepth limits recursion during compilation, guarding
	// against pathological patterns. Zero means DefaultCompilerConfig's
	// value.
	MaxRecursionDepth int
}

// DefaultCompilerConfig returns sensible defaults.
func DefaultCompilerConfig() CompilerConfig {
	return CompilerConfig{MaxRecursionDepth: 1000}
}

// Compiler turns a rewritten regexp/syntax tree plus a capture-to-variable
// mapping (see package frontend) into a VA by Thompson construction, adding
// a marker-open/marker-close pair around every mapped capture node.
type Compiler struct {
	config   CompilerConfig
	builder  *Builder
	groupVar map[*syntax.Regexp]Variable
	depth    int
}

// NewCompiler creates a Compiler with the given configuration.
func NewCompiler(config CompilerConfig) *Compiler {
	if config.MaxRecursionDepth == 0 {
		config.MaxRecursionDepth = 1000
	}
	return &Compiler{config: config}
}

// Compile builds a VA from re, emitting marker transitions for every
// capture node present in groupVar, and returns it with vars as its
// variable list.
func (c *Compiler) Compile(re *syntax.Regexp, vars []Variable, groupVar map[*syntax.Regexp]Variable) (*VA, error) {
	c.builder = NewBuilder()
	c.groupVar = groupVar
	c.depth = 0

	start, end, err := c.compile(re)
	if err != nil {
		return nil, err
	}

	match := c.builder.AddMatch()
	if err := c.builder.Patch(end, match); err != nil {
		return nil, err
	}
	c.builder.SetStart(start)

	built, err := c.builder.Build(vars)
	if err != nil {
		return nil, err
	}
	if built.HasMarkerCycle() {
		return nil, errs.ErrRegexMarkerCycle
	}
	return built, nil
}

// compile recursively compiles re, returning a (start, end) fragment where
// end is a dangling state to be patched by the caller.
func (c *Compiler) compile(re *syntax.Regexp) (start, end StateID, err error) {
	c.depth++
	if c.depth > c.config.MaxRecursionDepth {
		return InvalidState, InvalidState, fmt.Errorf("%w: pattern too deeply nested", errs.ErrRegexUnsupported)
	}
	defer func() { c.depth-- }()

	switch re.Op {
	case syntax.OpLiteral:
		return c.compileLiteral(re.Rune)
	case syntax.OpCharClass:
		return c.compileCharClass(re.Rune)
	case syntax.OpAnyChar, syntax.OpAnyCharNotNL:
		return c.compileAnyChar(re.Op == syntax.OpAnyCharNotNL)
	case syntax.OpConcat:
		return c.compileConcat(re.Sub)
	case syntax.OpAlternate:
		return c.compileAlternate(re.Sub)
	case syntax.OpStar:
		return c.compileStar(re.Sub[0])
	case syntax.OpPlus:
		return c.compilePlus(re.Sub[0])
	case syntax.OpQuest:
		return c.compileQuest(re.Sub[0])
	case syntax.OpRepeat:
		return c.compileRepeat(re.Sub[0], re.Min, re.Max)
	case syntax.OpCapture:
		return c.compileCapture(re)
	case syntax.OpEmptyMatch:
		return c.compileEmptyMatch()
	default:
		return InvalidState, InvalidState, fmt.Errorf("%w: regex op %v", errs.ErrRegexUnsupported, re.Op)
	}
}

func (c *Compiler) compileEmptyMatch() (start, end StateID, err error) {
	id := c.builder.AddEpsilon(InvalidState)
	return id, id, nil
}

func (c *Compiler) compileLiteral(runes []rune) (start, end StateID, err error) {
	if len(runes) == 0 {
		return c.compileEmptyMatch()
	}
	var first, prev StateID = InvalidState, InvalidState
	for _, r := range runes {
		if r > 127 {
			return InvalidState, InvalidState, fmt.Errorf("%w: non-ASCII literal", errs.ErrRegexUnsupported)
		}
		b := byte(r)
		id := c.builder.AddByteRange(b, b, InvalidState)
		if first == InvalidState {
			first = id
		}
		if prev != InvalidState {
			if err := c.builder.Patch(prev, id); err != nil {
				return InvalidState, InvalidState, err
			}
		}
		prev = id
	}
	return first, prev, nil
}

func (c *Compiler) compileCharClass(ranges []rune) (start, end StateID, err error) {
	if len(ranges) == 0 {
		return c.compileEmptyMatch()
	}
	target := c.builder.AddEpsilon(InvalidState)
	firstID := InvalidState
	for i := 0; i < len(ranges); i += 2 {
		lo, hi := ranges[i], ranges[i+1]
		if lo > 127 || hi > 127 {
			return InvalidState, InvalidState, fmt.Errorf("%w: non-ASCII character class", errs.ErrRegexUnsupported)
		}
		id := c.builder.AddByteRange(byte(lo), byte(hi), target)
		if firstID == InvalidState {
			firstID = id
			continue
		}
		// Chain additional ranges as alternatives via a split.
		firstID = c.builder.AddSplit(firstID, id)
	}
	return firstID, target, nil
}

// compileAnyChar compiles '.'. notNL excludes the newline byte; otherwise
// every byte 0x00-0xFF is accepted.
func (c *Compiler) compileAnyChar(notNL bool) (start, end StateID, err error) {
	target := c.builder.AddEpsilon(InvalidState)
	if !notNL {
		id := c.builder.AddByteRange(0x00, 0xFF, target)
		return id, target, nil
	}
	lo := c.builder.AddByteRange(0x00, 0x09, target)
	hi := c.builder.AddByteRange(0x0B, 0xFF, target)
	split := c.builder.AddSplit(lo, hi)
	return split, target, nil
}

func (c *Compiler) compileConcat(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	start, end, err = c.compile(subs[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for _, sub := range subs[1:] {
		nextStart, nextEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(end, nextStart); err != nil {
			return InvalidState, InvalidState, err
		}
		end = nextEnd
	}
	return start, end, nil
}

func (c *Compiler) compileAlternate(subs []*syntax.Regexp) (start, end StateID, err error) {
	if len(subs) == 0 {
		return c.compileEmptyMatch()
	}
	if len(subs) == 1 {
		return c.compile(subs[0])
	}
	join := c.builder.AddEpsilon(InvalidState)
	starts := make([]StateID, len(subs))
	for i, sub := range subs {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(e, join); err != nil {
			return InvalidState, InvalidState, err
		}
		starts[i] = s
	}
	return c.splitChain(starts), join, nil
}

func (c *Compiler) splitChain(targets []StateID) StateID {
	if len(targets) == 1 {
		return targets[0]
	}
	return c.builder.AddSplit(targets[0], c.splitChain(targets[1:]))
}

func (c *Compiler) compileStar(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

func (c *Compiler) compilePlus(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, split); err != nil {
		return InvalidState, InvalidState, err
	}
	return subStart, end, nil
}

func (c *Compiler) compileQuest(sub *syntax.Regexp) (start, end StateID, err error) {
	subStart, subEnd, err := c.compile(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	end = c.builder.AddEpsilon(InvalidState)
	split := c.builder.AddSplit(subStart, end)
	if err := c.builder.Patch(subEnd, end); err != nil {
		return InvalidState, InvalidState, err
	}
	return split, end, nil
}

// compileRepeat expands a{m,n} into m mandatory copies followed by (n-m)
// optional copies, or (m-1) mandatory copies followed by a one-or-more when
// n == -1 (so a{m,} still requires at least m total repetitions).
func (c *Compiler) compileRepeat(sub *syntax.Regexp, min, max int) (start, end StateID, err error) {
	if max == -1 {
		if min == 0 {
			return c.compileStar(sub)
		}
		var frags []struct{ s, e StateID }
		for i := 0; i < min-1; i++ {
			s, e, err := c.compile(sub)
			if err != nil {
				return InvalidState, InvalidState, err
			}
			frags = append(frags, struct{ s, e StateID }{s, e})
		}
		tailStart, tailEnd, err := c.compilePlus(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		return c.chain(frags, tailStart, tailEnd)
	}
	if min == max {
		if min == 0 {
			return c.compileEmptyMatch()
		}
		var frags []struct{ s, e StateID }
		for i := 0; i < min-1; i++ {
			s, e, err := c.compile(sub)
			if err != nil {
				return InvalidState, InvalidState, err
			}
			frags = append(frags, struct{ s, e StateID }{s, e})
		}
		lastStart, lastEnd, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		return c.chain(frags, lastStart, lastEnd)
	}
	// min < max: min mandatory copies followed by (max-min) optional copies.
	var frags []struct{ s, e StateID }
	for i := 0; i < min; i++ {
		s, e, err := c.compile(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		frags = append(frags, struct{ s, e StateID }{s, e})
	}
	// optCount == max-min >= 1 here since min < max was just checked.
	optStart, optEnd, err := c.compileQuest(sub)
	if err != nil {
		return InvalidState, InvalidState, err
	}
	for i := 1; i < max-min; i++ {
		qs, qe, err := c.compileQuest(sub)
		if err != nil {
			return InvalidState, InvalidState, err
		}
		if err := c.builder.Patch(optEnd, qs); err != nil {
			return InvalidState, InvalidState, err
		}
		optEnd = qe
	}
	return c.chain(frags, optStart, optEnd)
}

func (c *Compiler) chain(frags []struct{ s, e StateID }, tailStart, tailEnd StateID) (start, end StateID, err error) {
	if len(frags) == 0 {
		return tailStart, tailEnd, nil
	}
	start = frags[0].s
	prevEnd := frags[0].e
	for _, f := range frags[1:] {
		if err := c.builder.Patch(prevEnd, f.s); err != nil {
			return InvalidState, InvalidState, err
		}
		prevEnd = f.e
	}
	if err := c.builder.Patch(prevEnd, tailStart); err != nil {
		return InvalidState, InvalidState, err
	}
	return start, tailEnd, nil
}

// compileCapture compiles a capture node. When the node is mapped to a
// Variable in c.groupVar, it wraps the inner fragment with an open marker
// before and a close marker after; otherwise it is a plain, non-capturing
// group and compiles straight through.
func (c *Compiler) compileCapture(re *syntax.Regexp) (start, end StateID, err error) {
	v, ok := c.groupVar[re]
	if !ok {
		return c.compile(re.Sub[0])
	}
	innerStart, innerEnd, err := c.compile(re.Sub[0])
	if err != nil {
		return InvalidState, InvalidState, err
	}
	open := c.builder.AddMarker(Marker{Variable: v, Open: true}, innerStart)
	end = c.builder.AddEpsilon(InvalidState)
	closeID := c.builder.AddMarker(Marker{Variable: v, Open: false}, end)
	if err := c.builder.Patch(innerEnd, closeID); err != nil {
		return InvalidState, InvalidState, err
	}
	return open, end, nil
}
