package spanner

import (
	"context"

	"github.com/NNRepos/enum-spanner-go/enum"
	"github.com/NNRepos/enum-spanner-go/index"
	"github.com/NNRepos/enum-spanner-go/va"
)

// Assignment maps a variable's name to the half-open byte span it was
// bound to by one accepting run. It is an alias of va.Assignment.
type Assignment = va.Assignment

// Span is a half-open byte range [Start, End) within a document. It is an
// alias of va.Span.
type Span = va.Span

// Enumerate streams every distinct Assignment of compiled reachable in idx
// (built by BuildIndex against some document), calling yield once per
// assignment in discovery order. It stops early if yield returns false or
// ctx is done.
//
// Example:
//
//	pat := spanner.MustCompile(`(?P<word>[a-z]+)`)
//	idx, _ := spanner.BuildIndex(pat, []byte("go gopher"), spanner.BuildOptions{})
//	err := spanner.Enumerate(context.Background(), pat, idx, func(a spanner.Assignment) bool {
//	    fmt.Println(a["word"])
//	    return true
//	})
func Enumerate(ctx context.Context, compiled *CompiledPattern, idx *index.Index, yield func(Assignment) bool) error {
	if idx.Empty() {
		return nil
	}
	e := enum.New(compiled.automaton, idx.DAG().Doc(), idx)
	return e.Enumerate(ctx, yield)
}

// EnumerateAll is a convenience wrapper around Enumerate that collects
// every distinct assignment into a slice.
func EnumerateAll(ctx context.Context, compiled *CompiledPattern, idx *index.Index) ([]Assignment, error) {
	var out []Assignment
	err := Enumerate(ctx, compiled, idx, func(a Assignment) bool {
		out = append(out, a)
		return true
	})
	return out, err
}

// Stats returns the statistics collected while building idx (§6 IndexStats).
func Stats(idx *index.Index) index.Stats { return idx.Stats() }
