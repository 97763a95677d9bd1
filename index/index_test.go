package index_test

import (
	"testing"

	"github.com/NNRepos/enum-spanner-go/frontend"
	"github.com/NNRepos/enum-spanner-go/index"
	"github.com/NNRepos/enum-spanner-go/va"
)

func compile(t *testing.T, pattern string) *va.VA {
	t.Helper()
	parsed, err := frontend.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q): %v", pattern, err)
	}
	automaton, err := va.NewCompiler(va.DefaultCompilerConfig()).Compile(parsed.Root, parsed.Variables, parsed.GroupVariable)
	if err != nil {
		t.Fatalf("Compile(%q): %v", pattern, err)
	}
	return automaton
}

func TestBuildPrefilterShortCircuit(t *testing.T) {
	automaton := compile(t, "needle")
	idx, err := index.Build(automaton, []byte("no match in this haystack"), index.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !idx.Empty() {
		t.Error("expected Empty() when the required literal is absent")
	}
	if !idx.Stats().PrefilterShortCircuit {
		t.Error("expected PrefilterShortCircuit to be recorded")
	}
}

func TestBuildNotEmptyWhenMatchPresent(t *testing.T) {
	automaton := compile(t, "(?P<x>needle)")
	idx, err := index.Build(automaton, []byte("find the needle here"), index.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Empty() {
		t.Error("expected a non-empty index")
	}
}

func TestAnchorsSpanDocument(t *testing.T) {
	automaton := compile(t, "a")
	doc := make([]byte, 50)
	for i := range doc {
		doc[i] = 'a'
	}
	idx, err := index.Build(automaton, doc, index.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	anchors := idx.Anchors()
	if len(anchors) < 2 {
		t.Fatalf("expected at least 2 anchors, got %d", len(anchors))
	}
	if anchors[0] != 0 {
		t.Errorf("first anchor = %d, want 0", anchors[0])
	}
	if last := anchors[len(anchors)-1]; last != len(doc) {
		t.Errorf("last anchor = %d, want %d", last, len(doc))
	}
	for i := 1; i < len(anchors); i++ {
		if anchors[i] <= anchors[i-1] {
			t.Fatalf("anchors not strictly increasing at %d: %v", i, anchors)
		}
	}
}

func TestJumpFromNonAnchorFails(t *testing.T) {
	automaton := compile(t, "a")
	doc := make([]byte, 30)
	for i := range doc {
		doc[i] = 'a'
	}
	idx, err := index.Build(automaton, doc, index.Options{Width: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	anchors := idx.Anchors()
	// The check applies only when anchors[0]+1 is not itself an anchor;
	// every level holding a live marker state is one, whatever the width.
	if len(anchors) > 1 && anchors[1] > anchors[0]+1 {
		if _, _, ok := idx.Jump(anchors[0]+1, 0); ok {
			t.Error("Jump from a non-anchor level should fail")
		}
	}
}

func TestJumpFromAnchorLandsOnNextAnchor(t *testing.T) {
	automaton := compile(t, "a")
	doc := make([]byte, 30)
	for i := range doc {
		doc[i] = 'a'
	}
	idx, err := index.Build(automaton, doc, index.Options{Width: 5})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	anchors := idx.Anchors()
	start := idx.DAG().Level(anchors[0])
	var state = -1
	start.Iterate(func(q int) {
		if state < 0 {
			state = q
		}
	})
	if state < 0 {
		t.Fatal("expected a live state at the first anchor")
	}
	next, _, ok := idx.Jump(anchors[0], state)
	if !ok {
		t.Fatal("expected Jump to succeed from an anchor level")
	}
	if next != anchors[1] {
		t.Errorf("Jump landed on %d, want %d", next, anchors[1])
	}
}

func TestStatsPopulated(t *testing.T) {
	automaton := compile(t, "(?P<x>a+)")
	idx, err := index.Build(automaton, []byte("aaa"), index.DefaultOptions())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	stats := idx.Stats()
	if stats.NumLevels != 4 {
		t.Errorf("NumLevels = %d, want 4", stats.NumLevels)
	}
	if stats.NumStates <= 0 {
		t.Error("expected NumStates > 0")
	}
	if stats.MemoryUsage <= 0 {
		t.Error("expected MemoryUsage > 0")
	}
}
