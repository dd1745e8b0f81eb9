package transport

import "github.com/fusionwall/clustercore/cluster"

// Advection holds per-cluster effective velocity and a cutoff distance
// from the surface beyond which advection does not apply.
type Advection struct {
	net         *cluster.Network
	advectingID []int
	velocity    map[int]float64
	cutoff      map[int]float64
}

// NewAdvection returns an Advection operator. velocity and cutoff are
// keyed by cluster id; a cluster absent from velocity does not
// advect.
func NewAdvection(net *cluster.Network, velocity, cutoff map[int]float64) *Advection {
	a := &Advection{net: net, velocity: velocity, cutoff: cutoff}
	for id := range velocity {
		a.advectingID = append(a.advectingID, id)
	}
	return a
}

// InitializeOffDiagonal marks the diagonal entry for every advecting
// cluster, same contract as Diffusion.InitializeOffDiagonal.
func (a *Advection) InitializeOffDiagonal(ofill FillSetter) {
	for _, id := range a.advectingID {
		ofill.Set(id, id)
	}
}

// Compute adds the two-point upwind advection contribution to out,
// for clusters whose distanceFromSurface is within their configured
// cutoff; clusters beyond cutoff contribute nothing.
func (a *Advection) Compute(concMid, concRight []float64, out []float64, hR, distanceFromSurface float64) {
	for _, id := range a.advectingID {
		if distanceFromSurface > a.cutoff[id] {
			continue
		}
		v := a.velocity[id]
		out[id] += v * (concRight[id] - concMid[id]) / hR
	}
}

// ComputePartials emits, per advecting cluster within cutoff, its id
// and the two stencil coefficients (middle, right).
func (a *Advection) ComputePartials(hR, distanceFromSurface float64) []StencilCoeffs {
	var out []StencilCoeffs
	for _, id := range a.advectingID {
		if distanceFromSurface > a.cutoff[id] {
			continue
		}
		v := a.velocity[id]
		out = append(out, StencilCoeffs{
			ID:     id,
			Middle: -v / hR,
			Right:  v / hR,
		})
	}
	return out
}
