// Package transport implements the diffusion and advection stencils
// that contribute to the residual and Jacobian at each grid point, in
// the style of the teacher's science.go Mixing/UpwindAdvection
// operators generalized from a fixed-spacing horizontal grid to the
// nonuniform 1-D depth grid this core assembles.
package transport

import "github.com/fusionwall/clustercore/cluster"

// Diffusion holds, per diffusing cluster, the set of cluster ids that
// participate in the nonuniform three-point stencil.
type Diffusion struct {
	net         *cluster.Network
	diffusingID []int
}

// NewDiffusion returns a Diffusion operator over every cluster in net
// with a nonzero diffusion coefficient.
func NewDiffusion(net *cluster.Network) *Diffusion {
	d := &Diffusion{net: net}
	for _, c := range net.GetAll() {
		if c.DiffusionCoefficient > 0 {
			d.diffusingID = append(d.diffusingID, c.ID)
		}
	}
	return d
}

// FillSetter marks entry (row, col) of a sparsity-pattern matrix as
// structurally nonzero. domain.FillPattern (backed by
// *sparse.DenseArray) implements this.
type FillSetter interface {
	Set(row, col int)
}

// InitializeOffDiagonal marks the diagonal entry (id, id) in ofill for
// every diffusing cluster: diffusion never couples different species.
func (d *Diffusion) InitializeOffDiagonal(ofill FillSetter) {
	for _, id := range d.diffusingID {
		ofill.Set(id, id)
	}
}

// Compute adds the nonuniform three-point second-derivative
// contribution D_c·[2/(hL+hR)·((Cl-Cm)/hL + (Cr-Cm)/hR)] to out, for
// every diffusing cluster, reading concentrations at the left, middle
// and right grid points.
func (d *Diffusion) Compute(concLeft, concMid, concRight []float64, out []float64, hL, hR float64) {
	scale := 2 / (hL + hR)
	for _, id := range d.diffusingID {
		dcoef := d.net.Cluster(id).DiffusionCoefficient
		out[id] += dcoef * scale * ((concLeft[id]-concMid[id])/hL + (concRight[id]-concMid[id])/hR)
	}
}

// StencilCoeffs is one diffusing cluster's three Jacobian stencil
// coefficients, in (middle, left, right) order, matching
// computePartialsForDiffusion's emission order.
type StencilCoeffs struct {
	ID              int
	Middle, Left, Right float64
}

// ComputePartials emits, per diffusing cluster, its id and the three
// stencil coefficients in fixed (middle, left, right) order.
func (d *Diffusion) ComputePartials(hL, hR float64) []StencilCoeffs {
	scale := 2 / (hL + hR)
	out := make([]StencilCoeffs, len(d.diffusingID))
	for i, id := range d.diffusingID {
		dcoef := d.net.Cluster(id).DiffusionCoefficient
		out[i] = StencilCoeffs{
			ID:     id,
			Middle: -dcoef * scale * (1/hL + 1/hR),
			Left:   dcoef * scale / hL,
			Right:  dcoef * scale / hR,
		}
	}
	return out
}

// DiffusingIDs returns the cluster ids this operator diffuses, in
// fixed iteration order.
func (d *Diffusion) DiffusingIDs() []int { return d.diffusingID }
