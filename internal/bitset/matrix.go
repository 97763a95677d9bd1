package bitset

// Matrix is a dense rows x cols boolean matrix, stored as one Set per row.
// It represents a reachability relation: Matrix[i][j] means "j is reachable
// from i in one composed step". Composition (Compose) implements boolean
// matrix multiplication, used to fold a chain of per-level transfer
// matrices into a single anchor-to-anchor reachability matrix.
type Matrix struct {
	rows, cols int
	row        []*Set
}

// NewMatrix creates a zero Matrix of the given shape.
func NewMatrix(rows, cols int) *Matrix {
	m := &Matrix{rows: rows, cols: cols, row: make([]*Set, rows)}
	for i := range m.row {
		m.row[i] = New(cols)
	}
	return m
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Set records an edge i -> j.
func (m *Matrix) Set(i, j int) { m.row[i].Set(j) }

// Get reports whether edge i -> j is present.
func (m *Matrix) Get(i, j int) bool { return m.row[i].Get(j) }

// Row returns the row set for i. Callers must not mutate the result.
func (m *Matrix) Row(i int) *Set { return m.row[i] }

// Identity returns the n x n identity matrix (every i -> i, nothing else).
func Identity(n int) *Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Set(i, i)
	}
	return m
}

// Reach returns the union of rows named by sources: the set of columns
// reachable from any member of sources in one step through m.
func (m *Matrix) Reach(sources *Set) *Set {
	out := New(m.cols)
	sources.Iterate(func(i int) { out.Or(m.row[i]) })
	return out
}

// Compose returns the boolean matrix product m * other: edge i -> k exists
// in the result iff there is some j with m[i][j] and other[j][k]. m.cols
// must equal other.rows.
func (m *Matrix) Compose(other *Matrix) *Matrix {
	out := NewMatrix(m.rows, other.cols)
	for i := 0; i < m.rows; i++ {
		reach := other.Reach(m.row[i])
		out.row[i].Or(reach)
	}
	return out
}
