package automaton

import "fmt"

// intMatrix is a sparse matrix of (a,b) int32 pairs, addressed by
// (row, col). It backs the ACTION table, where a cell holds an action
// code in a and its operand in b.
//
// Adapted from gorgo's lr/sparse.IntMatrix (COO / triplet encoding),
// which served the same purpose for the grammar-compiler's ACTION
// table. Here the matrix is built once at load time and never mutated
// again. Triplets are kept sorted by (row, col): set inserts each one
// at its place, and values scans linearly, stopping once it is past
// the requested cell.
//
//	https://medium.com/@jmaxg3/101-ways-to-store-a-sparse-matrix-c7f2bf15a229
type intMatrix struct {
	triplets []triplet
	rowcnt   int
	colcnt   int
	nullval  int32
}

type triplet struct {
	row, col int
	a, b     int32
}

// defaultNullValue is the empty-cell marker (min int32).
const defaultNullValue = -2147483648

func newIntMatrix(m, n int, nullValue int32) *intMatrix {
	return &intMatrix{rowcnt: m, colcnt: n, nullval: nullValue}
}

func (m *intMatrix) M() int { return m.rowcnt }
func (m *intMatrix) N() int { return m.colcnt }

func (m *intMatrix) NullValue() int32 { return m.nullval }

func (m *intMatrix) ValueCount() int { return len(m.triplets) }

// set stores a (a,b) pair at (i,j), appending or overwriting.
func (m *intMatrix) set(i, j int, a, b int32) {
	for k, t := range m.triplets {
		if t.row == i && t.col == j {
			m.triplets[k].a, m.triplets[k].b = a, b
			return
		}
		if t.row > i || (t.row == i && t.col > j) {
			m.triplets = append(m.triplets, triplet{})
			copy(m.triplets[k+1:], m.triplets[k:])
			m.triplets[k] = triplet{row: i, col: j, a: a, b: b}
			return
		}
	}
	m.triplets = append(m.triplets, triplet{row: i, col: j, a: a, b: b})
}

// values returns the (a,b) pair stored at (i,j), or (null,null).
func (m *intMatrix) values(i, j int) (int32, int32) {
	for _, t := range m.triplets {
		if t.row == i && t.col == j {
			return t.a, t.b
		}
		if t.row > i || (t.row == i && t.col > j) {
			break
		}
	}
	return m.nullval, m.nullval
}

func (t triplet) String() string {
	return fmt.Sprintf("(%d,%d)=[%d,%d]", t.row, t.col, t.a, t.b)
}
