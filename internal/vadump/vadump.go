// Package vadump generates Go source representing a compiled variable-set
// automaton as static table literals, so a program can embed a precompiled
// pattern and skip frontend.Parse/va.Compiler.Compile at startup. Grounded
// on the code-generation shape of the KromDaniel-regengo example: a
// jen.File built up with one statement per declaration, then rendered to a
// writer or saved to disk.
package vadump

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/NNRepos/enum-spanner-go/va"
)

// Options configures generation.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
	// VarName is the identifier the generated *va.VA builder function is
	// named after; the generated function is named "New<VarName>".
	VarName string
}

// DefaultOptions returns Package "vadump" and VarName "VA".
func DefaultOptions() Options {
	return Options{Package: "vadump", VarName: "VA"}
}

// Generate renders a Go source file defining a zero-argument constructor
// function that rebuilds automaton via va.Builder calls, without
// depending on frontend or regexp/syntax at all.
func Generate(automaton *va.VA, opts Options) (*jen.File, error) {
	if opts.Package == "" {
		opts = DefaultOptions()
	}
	f := jen.NewFile(opts.Package)
	f.HeaderComment(fmt.Sprintf("Code generated by vadump for a %d-state automaton. DO NOT EDIT.", automaton.NumStates()))

	funcName := "New" + opts.VarName

	var body []jen.Code
	body = append(body, jen.Id("b").Op(":=").Qual(vaPkg, "NewBuilder").Call())

	for id := 0; id < automaton.NumStates(); id++ {
		s := automaton.State(va.StateID(id))
		if s == nil {
			continue
		}
		body = append(body, stateStatement(s)...)
	}

	body = append(body, jen.Id("b").Dot("SetStart").Call(jen.Lit(int(automaton.Start()))))

	varsCode := make([]jen.Code, 0, len(automaton.Variables()))
	for _, v := range automaton.Variables() {
		varsCode = append(varsCode, jen.Qual(vaPkg, "Variable").Values(jen.Dict{
			jen.Id("ID"):   jen.Lit(v.ID),
			jen.Id("Name"): jen.Lit(v.Name),
		}))
	}
	body = append(body,
		jen.Id("vars").Op(":=").Index().Qual(vaPkg, "Variable").Values(varsCode...),
		jen.Return(jen.Id("b").Dot("Build").Call(jen.Id("vars"))),
	)

	f.Func().Id(funcName).Params().Params(jen.Op("*").Qual(vaPkg, "VA"), jen.Error()).Block(body...)

	return f, nil
}

// WriteTo renders the generated file for automaton to w.
func WriteTo(automaton *va.VA, opts Options, w io.Writer) error {
	f, err := Generate(automaton, opts)
	if err != nil {
		return err
	}
	return f.Render(w)
}

// Save renders the generated file for automaton and writes it to path.
func Save(automaton *va.VA, opts Options, path string) error {
	f, err := Generate(automaton, opts)
	if err != nil {
		return err
	}
	return f.Save(path)
}

const vaPkg = "github.com/NNRepos/enum-spanner-go/va"

// stateStatement returns the jen statements that recreate s via Builder
// calls. Every state is added in id order, so the id-th AddX call always
// produces StateID(id); callers rely on this to wire up successor
// references that appear before their target is built (Patch is not
// needed at generation time since the full graph, including back-edges
// from loops, is already known).
func stateStatement(s *va.State) []jen.Code {
	switch s.Kind() {
	case va.KindMatch:
		return []jen.Code{jen.Id("b").Dot("AddMatch").Call()}
	case va.KindByteRange:
		lo, hi, next := s.ByteRange()
		return []jen.Code{jen.Id("b").Dot("AddByteRange").Call(jen.Lit(lo), jen.Lit(hi), jen.Qual(vaPkg, "StateID").Call(jen.Lit(int(next))))}
	case va.KindSplit:
		left, right := s.Split()
		return []jen.Code{jen.Id("b").Dot("AddSplit").Call(
			jen.Qual(vaPkg, "StateID").Call(jen.Lit(int(left))),
			jen.Qual(vaPkg, "StateID").Call(jen.Lit(int(right))),
		)}
	case va.KindEpsilon:
		return []jen.Code{jen.Id("b").Dot("AddEpsilon").Call(jen.Qual(vaPkg, "StateID").Call(jen.Lit(int(s.Epsilon()))))}
	case va.KindMarker:
		m, next := s.MarkerTransition()
		markerExpr := jen.Qual(vaPkg, "Marker").Values(jen.Dict{
			jen.Id("Variable"): jen.Qual(vaPkg, "Variable").Values(jen.Dict{
				jen.Id("ID"):   jen.Lit(m.Variable.ID),
				jen.Id("Name"): jen.Lit(m.Variable.Name),
			}),
			jen.Id("Open"): jen.Lit(m.Open),
		})
		return []jen.Code{jen.Id("b").Dot("AddMarker").Call(markerExpr, jen.Qual(vaPkg, "StateID").Call(jen.Lit(int(next))))}
	default:
		return nil
	}
}
