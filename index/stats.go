package index

import "time"

// Stats reports the cost, shape, and memory footprint of an Index build
// (§6 IndexStats). Build populates PreprocessS, CreateDagS and IndexDagS;
// CompileRegexS and EnumerateS stay zero unless a caller sets them. The byte-count
// fields are estimates based on the dense bitset/matrix representations,
// since Go does not expose precise per-allocation accounting the way the
// original's arena allocator does.
type Stats struct {
	NumResults    int // set by callers that count Enumerate's output; zero until then
	WidthAvg      float64
	WidthMax      int
	CompileRegexS float64
	PreprocessS   float64
	CreateDagS    float64
	TrimDagS      float64 // always zero: trimming runs inside dag.Build and counts toward CreateDagS
	IndexDagS     float64
	EnumerateS    float64 // set by callers that time Enumerate; zero until then

	MemoryUsage    int64 // MemoryDag + MemoryMatrices + MemoryJumpLevel
	MemoryDag      int64
	MemoryMatrices int64
	MemoryJumpLevel int64

	NumMatrices   int
	MatrixAvgSize float64
	MatrixMaxSize int
	NumLevels     int

	// BuildDuration, NumAnchors, NumStates, TotalVertices, and
	// PrefilterShortCircuit are this package's own, finer-grained
	// diagnostics; they are not part of the external IndexStats contract
	// but are useful for the CLI's --benchmark-file tooling.
	BuildDuration         time.Duration
	NumAnchors            int
	NumStates             int
	TotalVertices         int
	PrefilterShortCircuit bool
}
