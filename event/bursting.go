package event

import (
	"math"
	"math/rand"

	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/domain"
)

// BurstingController detects and applies bubble bursting: the
// spontaneous release of a supersaturated He bubble at the free
// surface.
type BurstingController struct {
	Rng *rand.Rand

	LatticeConstant float64 // a_lat, m
	Tau             float64 // depth scale, m
	FluxAmplitude   float64 // particles/m2/s
}

// BubbleRadius estimates the nascent-bubble radius from the total He
// density heDensity (atoms/m^3) at a grid point of width dx:
// r = (√3/4)·a_lat + ∛(3 a_lat³ n_V / (8π)) - ∛(3 a_lat³ / (8π)),
// n_V = heDensity·Δx/4.
func (b *BurstingController) BubbleRadius(heDensity, dx float64) float64 {
	nV := heDensity * dx / 4
	a := b.LatticeConstant
	term := func(n float64) float64 {
		return cbrt(3 * a * a * a * n / (8 * math.Pi))
	}
	return (math.Sqrt(3)/4)*a + term(nV) - term(1)
}

func cbrt(x float64) float64 {
	if x < 0 {
		return -math.Cbrt(-x)
	}
	return math.Cbrt(x)
}

// BurstProbability returns the bursting probability at a grid point
// whose bubble radius is r and whose distance from the surface is d:
// deterministic (1) if r >= d, otherwise
// prefactor·(1 − (d−r)/d)·min(1, exp(−(d−τ)/(2τ))).
func (b *BurstingController) BurstProbability(r, d, prefactor float64) float64 {
	if r >= d {
		return 1
	}
	if d == 0 {
		return 1
	}
	return prefactor * (1 - (d-r)/d) * math.Min(1, math.Exp(-(d-b.Tau)/(2*b.Tau)))
}

// Prefactor returns fluxAmplitude·Δt·0.1.
func (b *BurstingController) Prefactor(dt float64) float64 {
	return b.FluxAmplitude * dt * 0.1
}

// ShouldBurst draws against the controller's PRNG and reports whether
// bursting fires at this grid point this step.
func (b *BurstingController) ShouldBurst(r, d, dt float64) bool {
	p := b.BurstProbability(r, d, b.Prefactor(dt))
	if p >= 1 {
		return true
	}
	return b.Rng.Float64() < p
}

// PostBurst applies the post-event state mutation at grid point xi: He/
// D/T concentrations are zeroed, every HeV cluster's concentration is
// transferred to its same-size V cluster, and PSI super clusters with a
// V axis have their zeroth moment folded into the V cluster at the
// bounds' mean V count before every moment is zeroed. This last step is
// a simplification of the full distributional transfer: only the
// zeroth-moment value l0 is added, once, to that single V cluster; the
// rest of the bundle's V-axis distribution (its other lattice points
// and its first moments) is not transferred to any V cluster.
func PostBurst(net *cluster.Network, slab domain.Slab, xi int) {
	conc := slab[xi]
	for _, c := range net.GetAllKind(cluster.KindRegular) {
		he, hasHe := c.Composition[cluster.He]
		d, hasD := c.Composition[cluster.D]
		tr, hasT := c.Composition[cluster.T]
		if !hasHe && !hasD && !hasT {
			continue
		}
		v, hasV := c.Composition[cluster.V]
		if hasV && hasHe && v > 0 {
			if vCluster, ok := net.Get(cluster.V, v); ok {
				conc[vCluster.ID] += conc[c.ID]
			}
		}
		_ = he
		_ = d
		_ = tr
		conc[c.ID] = 0
	}

	for _, c := range net.GetAllKind(cluster.KindSuper) {
		if !c.IsMoment0 {
			continue
		}
		bounds, hasV := c.Bounds[cluster.V]
		if !hasV {
			continue
		}
		meanV := (bounds[0] + bounds[1]) / 2
		if vCluster, ok := net.Get(cluster.V, meanV); ok {
			conc[vCluster.ID] += conc[c.ID]
		}
		conc[c.ID] = 0
		for _, momentID := range c.MomentIDs {
			conc[momentID] = 0
		}
	}
}
