package spanner

import (
	"github.com/NNRepos/enum-spanner-go/dag"
	"github.com/NNRepos/enum-spanner-go/frontend"
	"github.com/NNRepos/enum-spanner-go/index"
	"github.com/NNRepos/enum-spanner-go/va"
)

// CompiledPattern is a parsed and Thompson-constructed variable-set
// automaton, ready to be run against any number of documents via
// BuildIndex. It is safe for concurrent use by multiple goroutines, since
// BuildIndex never mutates it.
//
// Example:
//
//	pat, err := spanner.Compile(`(?P<key>\w+)=(?P<value>\w+)`)
//	if err != nil {
//	    log.Fatal(err)
//	}
type CompiledPattern struct {
	automaton *va.VA
	pattern   string
	variables []va.Variable
}

// Pattern returns the original pattern string.
func (c *CompiledPattern) Pattern() string { return c.pattern }

// Variables returns the capture variables declared by the pattern, in the
// order collectVariables first encountered them. A pattern with no named
// groups has exactly one variable, "match".
func (c *CompiledPattern) Variables() []va.Variable { return append([]va.Variable(nil), c.variables...) }

// Automaton returns the compiled variable-set automaton, for callers that
// need direct access (e.g. internal/vadump code generation).
func (c *CompiledPattern) Automaton() *va.VA { return c.automaton }

// Compile parses pattern, rejects unsupported constructs (anchors,
// word-boundary assertions, non-ASCII literals), and builds its
// variable-set automaton. The pattern is always matched unanchored: an
// accepting run may start and end anywhere in a document, mirroring
// stdlib regexp's default substring-search semantics.
//
// Example:
//
//	pat, err := spanner.Compile(`(?P<word>[a-z]+)`)
func Compile(pattern string) (*CompiledPattern, error) {
	parsed, err := frontend.Parse(pattern)
	if err != nil {
		return nil, err
	}
	automaton, err := va.NewCompiler(va.DefaultCompilerConfig()).Compile(parsed.Root, parsed.Variables, parsed.GroupVariable)
	if err != nil {
		return nil, err
	}
	return &CompiledPattern{automaton: automaton, pattern: pattern, variables: parsed.Variables}, nil
}

// MustCompile is like Compile but panics if pattern is invalid. Intended
// for patterns known to be valid at init time.
func MustCompile(pattern string) *CompiledPattern {
	c, err := Compile(pattern)
	if err != nil {
		panic("spanner: Compile(`" + pattern + "`): " + err.Error())
	}
	return c
}

// BuildOptions configures index construction against one document.
type BuildOptions struct {
	// Trimming selects FullTrimming (default) or NoTrimming; see dag.TrimMode.
	Trimming TrimMode
	// Width caps how many DAG vertices may accumulate between consecutive
	// anchors of the jump index before one is forced; zero selects the
	// default ceil(sqrt(n)), n being the number of levels.
	Width int
	// MemoryCeiling caps the number of (level, state) vertices the product
	// DAG may allocate; zero means unbounded. Exceeded budgets return
	// ErrOutOfBudget wrapped in a BuildError.
	MemoryCeiling int
}

// TrimMode selects how aggressively BuildIndex discards states that cannot
// reach an accepting state. It is an alias of dag.TrimMode so callers need
// not import the dag package for this one value.
type TrimMode = dag.TrimMode

// FullTrimming and NoTrimming mirror dag's constants for callers that only
// import the root package.
const (
	FullTrimming = dag.FullTrimming
	NoTrimming   = dag.NoTrimming
)

// BuildIndex builds the product DAG, trims it, and computes the jump index
// for compiled against doc. The returned Index is read-only and may be
// enumerated any number of times, concurrently, via Enumerate.
//
// Example:
//
//	idx, err := spanner.BuildIndex(pat, []byte("key=value"), spanner.BuildOptions{})
func BuildIndex(compiled *CompiledPattern, doc []byte, opts BuildOptions) (*index.Index, error) {
	idxOpts := index.Options{
		Trimming:  opts.Trimming,
		Width:     opts.Width,
		MaxStates: opts.MemoryCeiling,
	}
	idx, err := index.Build(compiled.automaton, doc, idxOpts)
	if err != nil {
		return nil, &BuildError{Stage: "index", Level: -1, Err: err}
	}
	return idx, nil
}
