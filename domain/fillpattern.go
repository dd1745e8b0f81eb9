package domain

import "github.com/ctessum/sparse"

// FillPattern is an N×N structural sparsity mask, backed by the same
// dense-array type the teacher uses for every gridded field
// (vargrid.go's CTMData.Data), repurposed here to hold 0/1 markers
// instead of physical quantities.
type FillPattern struct {
	n     int
	array *sparse.DenseArray
}

// NewFillPattern allocates an n×n fill pattern, all entries zero.
func NewFillPattern(n int) *FillPattern {
	return &FillPattern{n: n, array: sparse.ZerosDense(n, n)}
}

// Set marks entry (row, col) as structurally nonzero.
func (f *FillPattern) Set(row, col int) {
	f.array.Set(1, row, col)
}

// Has reports whether (row, col) was marked.
func (f *FillPattern) Has(row, col int) bool {
	return f.array.Get(row, col) != 0
}

// Union reports whether (row, col) is marked in either f or other —
// used to assert the Jacobian-coverage invariant (ofill ∪ dfill).
func (f *FillPattern) Union(other *FillPattern, row, col int) bool {
	return f.Has(row, col) || other.Has(row, col)
}
