package vadump

import (
	"bytes"
	"go/parser"
	"go/token"
	"testing"

	"github.com/NNRepos/enum-spanner-go/frontend"
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

func TestGenerateProducesValidGo(t *testing.T) {
	patterns := []string{"a", "(?P<x>a+)b", "(?P<x>a)|(?P<y>b)", "(?P<x>a){2,4}"}
	for _, p := range patterns {
		automaton := compile(t, p)

		var buf bytes.Buffer
		if err := WriteTo(automaton, DefaultOptions(), &buf); err != nil {
			t.Fatalf("WriteTo(%q): %v", p, err)
		}

		fset := token.NewFileSet()
		if _, err := parser.ParseFile(fset, p+".go", buf.String(), parser.AllErrors); err != nil {
			t.Fatalf("generated source for %q is not valid Go: %v\n%s", p, err, buf.String())
		}
	}
}

func TestGenerateContainsConstructorName(t *testing.T) {
	automaton := compile(t, "abc")
	var buf bytes.Buffer
	if err := WriteTo(automaton, Options{Package: "gen", VarName: "Pattern"}, &buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("func NewPattern()")) {
		t.Errorf("expected generated source to declare NewPattern, got:\n%s", buf.String())
	}
}
