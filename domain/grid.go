// Package domain implements the 1-D spatial assembly driver: per-grid-
// point composition of the cluster catalogue, reaction graph,
// transport, trap-mutation, flux and temperature components into a
// residual vector, plus assembly of the block-sparse Jacobian with a
// fixed ofill/dfill fill pattern. Grounded on the teacher's
// framework.go/vargrid.go/neighbors.go/list.go: the InMAPdata-shaped
// aggregate (reconstructed here from its call sites across those
// files, since its declaration was not present in the retrieved
// source), the cached-connectivity idiom, and the DomainManipulator-
// style driver loop.
package domain

// Grid is the ordered sequence of depth coordinates, possibly
// nonuniform, plus the current surface index. x[0] and x[Mx-1] are the
// reserved boundary cells.
type Grid struct {
	X          []float64
	SurfacePos int
}

// Mx returns the number of grid points.
func (g Grid) Mx() int { return len(g.X) }

// StepLeft returns hL = x[xi] - x[xi-1].
func (g Grid) StepLeft(xi int) float64 { return g.X[xi] - g.X[xi-1] }

// StepRight returns hR = x[xi+1] - x[xi].
func (g Grid) StepRight(xi int) float64 { return g.X[xi+1] - g.X[xi] }

// DepthIndex returns d(xi) = x[xi] - x[surfacePos], the distance from
// the surface used by the advection cutoff. Trap mutation uses the
// index-based Bucket instead.
func (g Grid) DepthIndex(xi int) float64 { return g.X[xi] - g.X[g.SurfacePos] }

// Bucket returns the trap-mutation depth bucket for grid point xi: the
// zero-based count of grid points strictly beyond the surface.
func (g Grid) Bucket(xi int) int { return xi - g.SurfacePos - 1 }
