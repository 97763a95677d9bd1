package spanner_test

import (
	"context"
	"testing"

	spanner "github.com/NNRepos/enum-spanner-go"
)

func TestCompileAndEnumerate(t *testing.T) {
	pat, err := spanner.Compile(`(?P<word>[a-z]+)`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	idx, err := spanner.BuildIndex(pat, []byte("go gopher"), spanner.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if idx.Empty() {
		t.Fatal("expected at least one match")
	}

	got, err := spanner.EnumerateAll(context.Background(), pat, idx)
	if err != nil {
		t.Fatalf("EnumerateAll: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected non-empty assignment list")
	}
	for _, a := range got {
		if _, ok := a["word"]; !ok {
			t.Errorf("assignment missing variable %q: %v", "word", a)
		}
	}
}

func TestCompileRejectsAnchors(t *testing.T) {
	_, err := spanner.Compile(`^abc$`)
	if err == nil {
		t.Fatal("expected an error for an anchored pattern")
	}
}

func TestBuildIndexPrefilterShortCircuit(t *testing.T) {
	pat := spanner.MustCompile(`zzz`)
	idx, err := spanner.BuildIndex(pat, []byte("no such literal here"), spanner.BuildOptions{})
	if err != nil {
		t.Fatalf("BuildIndex: %v", err)
	}
	if !idx.Empty() {
		t.Fatal("expected Empty() for a document missing the required literal")
	}
	if !idx.Stats().PrefilterShortCircuit {
		t.Error("expected PrefilterShortCircuit to be recorded")
	}
}

func TestMustCompilePanicsOnInvalidPattern(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected MustCompile to panic on invalid pattern")
		}
	}()
	spanner.MustCompile(`(`)
}
