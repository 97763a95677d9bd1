// Package spanner implements constant-delay enumeration of distinct
// capture-variable assignments for a regex matched against a document,
// following the variable-set-automaton / product-DAG / jump-index design.
package spanner

import "github.com/NNRepos/enum-spanner-go/internal/errs"

// Sentinel errors, matched with errors.Is. These are the taxonomy roots;
// CompileError and BuildError wrap them with positional/contextual detail.
var (
	ErrRegexUnsupported          = errs.ErrRegexUnsupported
	ErrRegexSyntax               = errs.ErrRegexSyntax
	ErrRegexMarkerCycle          = errs.ErrRegexMarkerCycle
	ErrDocumentIO                = errs.ErrDocumentIO
	ErrOutOfBudget               = errs.ErrOutOfBudget
	ErrInternalInvariantViolated = errs.ErrInternalInvariantViolated
)

// CompileError reports a failure to turn a pattern into a variable-set
// automaton, with the offending pattern and byte offset when known.
type CompileError = errs.CompileError

// BuildError reports a failure while building the product DAG or jump index
// for a compiled automaton against a specific document.
type BuildError = errs.BuildError
