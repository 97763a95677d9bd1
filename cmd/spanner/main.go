// Command spanner enumerates every distinct capture-variable assignment a
// regex pattern matches against a document, printing one line per
// assignment. It also doubles as the benchmark driver described in §6,
// reading a JSON array of benchmark cases and printing a JSON array of
// IndexStats results.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"time"

	spanner "github.com/NNRepos/enum-spanner-go"
	"github.com/NNRepos/enum-spanner-go/internal/vadump"
	"github.com/NNRepos/enum-spanner-go/naive"
)

func main() {
	var (
		benchmarkFile = flag.String("benchmark-file", "", "read benchmark cases from a JSON file and print results as a JSON array")
		naiveQuadratic = flag.Bool("naive-quadratic", false, "use the O(|regex| * |text|^2) reference enumerator instead of the indexed engine")
		repetitions   = flag.Int("repetitions", 0, "with --benchmark-file, values above 1 add inter-result delay statistics (each case is still enumerated once)")
		emitGo        = flag.String("emit-go", "", "write the compiled automaton as generated Go source to this path instead of enumerating")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <regex> [file]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Enumerates every distinct capture-variable assignment of <regex>\nagainst <file> (or standard input). Flags:\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *benchmarkFile != "" {
		if err := runBenchmarkFile(*benchmarkFile, *naiveQuadratic, *repetitions); err != nil {
			log.Fatal(err)
		}
		return
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}
	pattern := args[0]

	var doc []byte
	var err error
	if len(args) >= 2 {
		doc, err = os.ReadFile(args[1])
	} else {
		doc, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		log.Fatalf("reading document: %v", err)
	}

	pat, err := spanner.Compile(pattern)
	if err != nil {
		log.Fatalf("compile: %v", err)
	}

	if *emitGo != "" {
		if err := emitGoSource(pat, *emitGo); err != nil {
			log.Fatalf("emit-go: %v", err)
		}
		return
	}

	if *naiveQuadratic {
		runNaiveQuadratic(pattern, doc)
		return
	}

	runIndexed(pat, doc)
}

func runIndexed(pat *spanner.CompiledPattern, doc []byte) {
	idx, err := spanner.BuildIndex(pat, doc, spanner.BuildOptions{})
	if err != nil {
		log.Fatalf("build index: %v", err)
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	count := 0
	err = spanner.Enumerate(context.Background(), pat, idx, func(a spanner.Assignment) bool {
		count++
		printAssignment(w, count, a)
		return true
	})
	if err != nil {
		log.Fatalf("enumerate: %v", err)
	}
}

func runNaiveQuadratic(pattern string, doc []byte) {
	got, err := naive.EnumerateQuadratic(pattern, doc)
	if err != nil {
		log.Fatalf("naive-quadratic: %v", err)
	}
	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for i, a := range got {
		printAssignment(w, i+1, a)
	}
}

// printAssignment writes one line per assignment: "<n> - name:start,end ..."
// sorted by variable name for deterministic output, mirroring the
// original's -b/--bytes-offset verbose format.
func printAssignment(w io.Writer, n int, a spanner.Assignment) {
	names := make([]string, 0, len(a))
	for name := range a {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(w, "%d -", n)
	for _, name := range names {
		sp := a[name]
		fmt.Fprintf(w, " %s:%d,%d", name, sp.Start, sp.End)
	}
	fmt.Fprintln(w)
}

func emitGoSource(pat *spanner.CompiledPattern, path string) error {
	automaton := pat.Automaton()
	return vadump.Save(automaton, vadump.DefaultOptions(), path)
}

// benchmarkCase mirrors §6's Benchmark JSON input shape.
type benchmarkCase struct {
	Name     string `json:"name"`
	Comment  string `json:"comment"`
	Filename string `json:"filename"`
	Regex    string `json:"regex"`
	Trimming string `json:"trimming,omitempty"`
	Length   *int   `json:"length,omitempty"`
}

// benchmarkResult mirrors §6's Benchmark JSON output shape, embedding the
// IndexStats fields at the top level plus the benchmark name and an
// optional delay breakdown.
type benchmarkResult struct {
	Benchmark string  `json:"benchmark"`
	NumLevels int     `json:"num_levels"`
	WidthAvg  float64 `json:"width_avg"`
	WidthMax  int     `json:"width_max"`

	CompileRegexS float64 `json:"compile_regex_s"`
	PreprocessS   float64 `json:"preprocess_s"`
	CreateDagS    float64 `json:"create_dag_s"`
	TrimDagS      float64 `json:"trim_dag_s"`
	IndexDagS     float64 `json:"index_dag_s"`
	EnumerateS    float64 `json:"enumerate_s"`

	MemoryUsage     int64 `json:"memory_usage"`
	MemoryDag       int64 `json:"memory_dag"`
	MemoryMatrices  int64 `json:"memory_matrices"`
	MemoryJumpLevel int64 `json:"memory_jump_level"`

	NumMatrices   int     `json:"num_matrices"`
	MatrixAvgSize float64 `json:"matrix_avg_size"`
	MatrixMaxSize int     `json:"matrix_max_size"`
	NumResults    int     `json:"num_results"`

	Delay *delayStats `json:"delay,omitempty"`
}

type delayStats struct {
	Min  float64 `json:"delay_min"`
	Max  float64 `json:"delay_max"`
	Avg  float64 `json:"delay_avg"`
	Hist []int   `json:"delay_hist"`
}

func runBenchmarkFile(path string, naiveQuadratic bool, repetitions int) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading benchmark file: %w", err)
	}
	var cases []benchmarkCase
	if err := json.Unmarshal(raw, &cases); err != nil {
		return fmt.Errorf("parsing benchmark file: %w", err)
	}

	results := make([]benchmarkResult, 0, len(cases))
	for _, c := range cases {
		r, err := runBenchmarkCase(c, naiveQuadratic, repetitions)
		if err != nil {
			return fmt.Errorf("benchmark %q: %w", c.Name, err)
		}
		results = append(results, r)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func runBenchmarkCase(c benchmarkCase, naiveQuadratic bool, repetitions int) (benchmarkResult, error) {
	doc, err := os.ReadFile(c.Filename)
	if err != nil {
		return benchmarkResult{}, err
	}

	compileStart := time.Now()
	pat, err := spanner.Compile(c.Regex)
	if err != nil {
		return benchmarkResult{}, err
	}
	compileRegexS := time.Since(compileStart).Seconds()

	if naiveQuadratic {
		enumStart := time.Now()
		got, err := naive.EnumerateQuadratic(c.Regex, doc)
		if err != nil {
			return benchmarkResult{}, err
		}
		return benchmarkResult{
			Benchmark:     c.Name,
			CompileRegexS: compileRegexS,
			EnumerateS:    time.Since(enumStart).Seconds(),
			NumResults:    len(got),
		}, nil
	}

	opts := spanner.BuildOptions{Trimming: trimmingFromString(c.Trimming)}
	idx, err := spanner.BuildIndex(pat, doc, opts)
	if err != nil {
		return benchmarkResult{}, err
	}
	stats := idx.Stats()

	enumStart := time.Now()
	var gaps []time.Duration
	last := enumStart
	count := 0
	err = spanner.Enumerate(context.Background(), pat, idx, func(spanner.Assignment) bool {
		now := time.Now()
		gaps = append(gaps, now.Sub(last))
		last = now
		count++
		return true
	})
	if err != nil {
		return benchmarkResult{}, err
	}
	enumerateS := time.Since(enumStart).Seconds()

	result := benchmarkResult{
		Benchmark:       c.Name,
		NumLevels:       stats.NumLevels,
		WidthAvg:        stats.WidthAvg,
		WidthMax:        stats.WidthMax,
		CompileRegexS:   compileRegexS,
		PreprocessS:     stats.PreprocessS,
		CreateDagS:      stats.CreateDagS,
		TrimDagS:        stats.TrimDagS,
		IndexDagS:       stats.IndexDagS,
		EnumerateS:      enumerateS,
		MemoryUsage:     stats.MemoryUsage,
		MemoryDag:       stats.MemoryDag,
		MemoryMatrices:  stats.MemoryMatrices,
		MemoryJumpLevel: stats.MemoryJumpLevel,
		NumMatrices:     stats.NumMatrices,
		MatrixAvgSize:   stats.MatrixAvgSize,
		MatrixMaxSize:   stats.MatrixMaxSize,
		NumResults:      count,
	}

	if repetitions > 1 {
		result.Delay = delayHistogram(gaps)
	}
	return result, nil
}

func trimmingFromString(s string) spanner.TrimMode {
	if s == "NoTrimming" {
		return spanner.NoTrimming
	}
	return spanner.FullTrimming
}

// delayHistogram buckets inter-result gaps into 1-microsecond-wide bins,
// mirroring benchmark.rs's hist[d/1000] bucketing of nanosecond deltas.
func delayHistogram(gaps []time.Duration) *delayStats {
	if len(gaps) == 0 {
		return &delayStats{}
	}
	min, max, sum := gaps[0], gaps[0], time.Duration(0)
	for _, g := range gaps {
		if g < min {
			min = g
		}
		if g > max {
			max = g
		}
		sum += g
	}
	hist := make([]int, max.Microseconds()+1)
	for _, g := range gaps {
		hist[g.Microseconds()]++
	}
	return &delayStats{
		Min:  min.Seconds() * 1e6,
		Max:  max.Seconds() * 1e6,
		Avg:  (sum.Seconds() * 1e6) / float64(len(gaps)),
		Hist: hist,
	}
}
