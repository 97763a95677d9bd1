package prefilter

import (
	"testing"

	"github.com/NNRepos/enum-spanner-go/frontend"
	"github.com/NNRepos/enum-spanner-go/va"
)

func compileVA(t *testing.T, pattern string) *va.VA {
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

func TestFromVASingleByteLiteral(t *testing.T) {
	automaton := compileVA(t, "z")
	gate := FromVA(automaton)
	if gate == nil {
		t.Fatal("expected a non-nil gate for a single-byte literal")
	}
	if !gate.IsMatch([]byte("xyz")) {
		t.Error("IsMatch should find the literal byte")
	}
	if gate.IsMatch([]byte("abc")) {
		t.Error("IsMatch should reject a document missing the literal byte")
	}
}

func TestFromVAMultiByteLiteral(t *testing.T) {
	automaton := compileVA(t, "hello")
	gate := FromVA(automaton)
	if gate == nil {
		t.Fatal("expected a non-nil gate for a multi-byte literal")
	}
	if !gate.IsMatch([]byte("say hello world")) {
		t.Error("IsMatch should find the literal")
	}
	if gate.IsMatch([]byte("goodbye world")) {
		t.Error("IsMatch should reject a document missing the literal")
	}
}

func TestFromVANoLiteral(t *testing.T) {
	automaton := compileVA(t, "(a|b).*")
	if gate := FromVA(automaton); gate != nil {
		t.Errorf("expected nil gate for a branching prefix, got %v", gate)
	}
}

func TestGateNilIsAlwaysMatch(t *testing.T) {
	var gate *Gate
	if !gate.IsMatch([]byte("anything")) {
		t.Error("a nil gate must never rule out a match")
	}
}
