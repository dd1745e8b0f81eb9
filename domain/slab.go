package domain

import "github.com/fusionwall/clustercore/integrator"

// Slab is the two-dimensional logical concentration array C[xi][k]:
// nonnegative reals for xi in [0, Mx) and k in [0, N). It is owned by
// the external integrator; this package only ever reads and writes
// through it, never allocates it on the integrator's behalf beyond the
// local-process reference Vector below.
type Slab [][]float64

// NewSlab allocates a zeroed slab of mx grid points by n degrees of
// freedom, for use with the single-process reference integrator.
func NewSlab(mx, n int) Slab {
	s := make(Slab, mx)
	for xi := range s {
		s[xi] = make([]float64, n)
	}
	return s
}

// Flatten copies the slab into a single contiguous vector in
// row-major (xi, then k) order, for use with integrator.Vector.
func (s Slab) Flatten() []float64 {
	if len(s) == 0 {
		return nil
	}
	n := len(s[0])
	out := make([]float64, len(s)*n)
	for xi, row := range s {
		copy(out[xi*n:(xi+1)*n], row)
	}
	return out
}

// Unflatten overwrites s in place from a contiguous vector produced by
// Flatten.
func (s Slab) Unflatten(v []float64) {
	if len(s) == 0 {
		return
	}
	n := len(s[0])
	for xi := range s {
		copy(s[xi], v[xi*n:(xi+1)*n])
	}
}

// localVector wraps Flatten/Unflatten as an integrator.Vector for the
// single-process reference solver.
type localVector struct {
	slab Slab
	flat []float64
}

// NewLocalVector returns an integrator.Vector view over slab, for
// driving domain callbacks through integrator.ExplicitEuler in tests.
func NewLocalVector(slab Slab) integrator.Vector {
	return &localVector{slab: slab, flat: slab.Flatten()}
}

func (v *localVector) Local() []float64  { return v.flat }
func (v *localVector) Global() []float64 { return v.flat }
func (v *localVector) GhostUpdate()      { v.slab.Unflatten(v.flat) }
