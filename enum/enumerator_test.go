package enum

import (
	"context"
	"sort"
	"testing"

	"github.com/NNRepos/enum-spanner-go/frontend"
	"github.com/NNRepos/enum-spanner-go/index"
	"github.com/NNRepos/enum-spanner-go/va"
)

func build(t *testing.T, pattern, doc string) (*va.VA, *index.Index) {
	t.Helper()
	parsed, err := frontend.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	automaton, err := va.NewCompiler(va.DefaultCompilerConfig()).Compile(parsed.Root, parsed.Variables, parsed.GroupVariable)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	idx, err := index.Build(automaton, []byte(doc), index.DefaultOptions())
	if err != nil {
		t.Fatalf("index.Build(%q, %q): %v", pattern, doc, err)
	}
	return automaton, idx
}

func keys(assignments []va.Assignment) []string {
	var out []string
	for _, a := range assignments {
		out = append(out, assignmentString(a))
	}
	sort.Strings(out)
	return out
}

func assignmentString(a va.Assignment) string {
	s := ""
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		sp := a[name]
		s += name + sp.String() + " "
	}
	return s
}

func TestEnumerateSingleLiteral(t *testing.T) {
	automaton, idx := build(t, "(?P<x>ab)", "ab")
	e := New(automaton, []byte("ab"), idx)
	got, err := e.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d assignments, want 1: %v", len(got), keys(got))
	}
	if got[0]["x"] != (va.Span{Start: 0, End: 2}) {
		t.Errorf("x = %v, want [0,2)", got[0]["x"])
	}
}

func TestEnumerateOverlappingMatches(t *testing.T) {
	// "a+" against "aaa" has several distinct maximal/partial captures once
	// wrapped unanchored; exercise that more than one distinct span surfaces.
	automaton, idx := build(t, "(?P<x>a+)", "aaa")
	e := New(automaton, []byte("aaa"), idx)
	got, err := e.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) < 2 {
		t.Fatalf("got %d assignments, want more than one: %v", len(got), keys(got))
	}
	seen := make(map[string]bool)
	for _, k := range keys(got) {
		if seen[k] {
			t.Errorf("duplicate assignment emitted: %s", k)
		}
		seen[k] = true
	}
}

func TestEnumerateNoMatch(t *testing.T) {
	automaton, idx := build(t, "(?P<x>z)", "abc")
	e := New(automaton, []byte("abc"), idx)
	got, err := e.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %d assignments, want 0: %v", len(got), keys(got))
	}
}

func TestEnumerateTwoVariables(t *testing.T) {
	automaton, idx := build(t, "(?P<x>a)(?P<y>b)", "ab")
	e := New(automaton, []byte("ab"), idx)
	got, err := e.All(context.Background())
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d assignments, want 1: %v", len(got), keys(got))
	}
	if got[0]["x"] != (va.Span{Start: 0, End: 1}) || got[0]["y"] != (va.Span{Start: 1, End: 2}) {
		t.Errorf("got x=%v y=%v", got[0]["x"], got[0]["y"])
	}
}

func TestEnumerateStopsOnYieldFalse(t *testing.T) {
	automaton, idx := build(t, "(?P<x>a+)", "aaa")
	e := New(automaton, []byte("aaa"), idx)
	count := 0
	err := e.Enumerate(context.Background(), func(va.Assignment) bool {
		count++
		return false
	})
	if err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	if count != 1 {
		t.Fatalf("yield called %d times, want 1", count)
	}
}

func TestEnumerateCancelledContext(t *testing.T) {
	automaton, idx := build(t, "(?P<x>a+)", "aaa")
	e := New(automaton, []byte("aaa"), idx)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.All(ctx)
	if err == nil {
		t.Fatal("expected context-cancellation error")
	}
}
