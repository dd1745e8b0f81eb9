// Package event implements the two discrete-event state machines
// interleaved with continuous time integration: surface movement and
// bubble bursting. Per the design notes, both are expressed as a
// synchronous predicate function (t, state) -> switch values (which
// also refreshes and broadcasts the interstitial counters) and a
// mutator (events, state) -> state', avoiding coroutine control flow — the
// same closure-returning-closure shape as the teacher's
// SteadyStateConvergenceCheck/Calculations in run.go, generalized from
// a DomainManipulator pipeline to an explicit two-function contract.
package event

import (
	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/comm"
	"github.com/fusionwall/clustercore/domain"
)

// SurfaceController tracks the density threshold and owns the
// collective broadcast of updated counters.
type SurfaceController struct {
	Communicator comm.Communicator

	RhoMaterial float64 // target atomic density, atoms/m^3
	VInit       float64 // initial vacancy density subtracted from rho
}

// Threshold returns (rho - v_init) * Δx at grid point xi.
func (s *SurfaceController) Threshold(d *domain.Domain, xi int) float64 {
	dx := d.Grid.StepRight(xi)
	return (s.RhoMaterial - s.VInit) * dx
}

// InterstitialEfflux computes the efflux of interstitials into the
// surface: sum over I clusters of size·D·C·(2/(hL(hL+hR)))·hL at the
// immediate interior grid point.
func (s *SurfaceController) InterstitialEfflux(net *cluster.Network, d *domain.Domain, slab domain.Slab) float64 {
	xi := d.Grid.SurfacePos + 1
	if xi <= 0 || xi >= len(slab)-1 {
		return 0
	}
	hL := d.Grid.StepLeft(xi)
	hR := d.Grid.StepRight(xi)
	coeff := 2 / (hL * (hL + hR)) * hL

	var total float64
	for _, c := range net.GetAllKind(cluster.KindRegular) {
		size, ok := c.Composition[cluster.I]
		if !ok || len(c.Composition) != 1 {
			continue
		}
		total += float64(size) * c.DiffusionCoefficient * slab[xi][c.ID] * coeff
	}
	return total
}

// EventFunction evaluates the surface-movement event: it updates
// state.PreviousIFlux, broadcasts (nInterstitial, previousIFlux) from
// the owning process, and returns fvalues where fvalues[0] reaching
// zero (from below, as NInterstitial rises past threshold) triggers an
// advance and fvalues[1] reaching zero (from above, as NInterstitial
// falls past -threshold/10) triggers a retreat. The threshold asymmetry
// (threshold vs -threshold/10) is preserved literally, per the design
// notes, and not rationalized.
func (s *SurfaceController) EventFunction(net *cluster.Network, d *domain.Domain, slab domain.Slab, state *comm.CounterState) ([3]float64, error) {
	xi := d.Grid.SurfacePos + 1
	threshold := s.Threshold(d, xi)

	state.PreviousIFlux = s.InterstitialEfflux(net, d, slab)

	owner, err := s.Communicator.AllReduceOwner(true)
	if err != nil {
		return [3]float64{}, err
	}
	if owner < 0 {
		owner = s.Communicator.Rank()
	}
	if err := s.Communicator.Bcast(owner, state); err != nil {
		return [3]float64{}, err
	}

	var fvalues [3]float64
	if state.NInterstitial > threshold {
		fvalues[0] = 0
	} else {
		fvalues[0] = state.NInterstitial - threshold
	}
	if state.NInterstitial < -threshold/10 {
		fvalues[1] = 0
	} else {
		fvalues[1] = state.NInterstitial + threshold/10
	}
	fvalues[2] = 1 // reserved
	return fvalues, nil
}

// PostEventResult carries the outcome of PostEvent: whether the solver
// should be asked to terminate (surface left the grid) and, if so, how
// many grid points the outer driver should extrude before resuming.
type PostEventResult struct {
	Terminated   bool
	PendingOffset int
}

// PostEvent advances or retreats the surface index per the fired
// switches, repeating an advance until NInterstitial falls below the
// next threshold. If the surface would leave the grid (xi < 0), it
// requests termination with the number of grid points to re-extrude.
func (s *SurfaceController) PostEvent(d *domain.Domain, state *comm.CounterState, advance, retreat bool) PostEventResult {
	var result PostEventResult
	switch {
	case advance:
		for {
			xi := d.Grid.SurfacePos + 1
			threshold := s.Threshold(d, xi)
			if state.NInterstitial <= threshold {
				break
			}
			d.Grid.SurfacePos--
			state.NInterstitial -= threshold
			result.PendingOffset++
			if d.Grid.SurfacePos < 0 {
				result.Terminated = true
				return result
			}
		}
	case retreat:
		xi := d.Grid.SurfacePos + 1
		threshold := s.Threshold(d, xi)
		d.Grid.SurfacePos++
		state.NInterstitial += threshold / 10
	}
	return result
}

// CounterClosure computes the expected Δ nInterstitial across an event
// per the mass-balance invariant: previousIFlux·Δt - sputteringYield·
// fluxAmplitude·Δt.
func CounterClosure(previousIFlux, sputteringYield, fluxAmplitude, dt float64) float64 {
	return previousIFlux*dt - sputteringYield*fluxAmplitude*dt
}
