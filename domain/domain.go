package domain

import (
	"math"

	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/flux"
	"github.com/fusionwall/clustercore/reaction"
	"github.com/fusionwall/clustercore/temperature"
	"github.com/fusionwall/clustercore/trapmutation"
	"github.com/fusionwall/clustercore/transport"
)

// temperatureTolerance is the "small tolerance" of §4.F/§4.G beyond
// which a temperature change triggers a network rate rebuild.
const temperatureTolerance = 1e-12

// Domain is the per-process aggregate the external integrator drives:
// the grid, the cluster network, the reaction graph, the transport/
// trap-mutation/flux/temperature operators, and the two precomputed
// Jacobian fill patterns.
type Domain struct {
	Network      *cluster.Network
	Graph        *reaction.Graph
	Diffusion    *transport.Diffusion
	Advection    *transport.Advection
	TrapMutation *trapmutation.Operator
	Fluxes       []*flux.Profile
	Temperature  temperature.Field

	Grid  Grid
	OFill *FillPattern
	DFill *FillPattern

	// dFillMap[row] is the sorted set of columns with a nonzero entry
	// at that row, the union of every reaction's column signature,
	// built once at CreateSolverContext.
	dFillMap [][]int

	// rightOffset configures whether xi=Mx-1 is a plain reflecting
	// boundary (0) or a free surface with bulk-flux accounting (1).
	rightOffset int

	// setTemperatureCalls counts invocations since the last reset, the
	// observable spec.md §8 uses to assert "sum of calls to
	// setTemperature across a step of uniform temperature equals one".
	setTemperatureCalls int
}

// New constructs a Domain from its already-built components. Grid,
// OFill and DFill are populated by CreateSolverContext.
func New(net *cluster.Network, graph *reaction.Graph, diff *transport.Diffusion, adv *transport.Advection, tm *trapmutation.Operator, fluxes []*flux.Profile, temp temperature.Field) *Domain {
	return &Domain{
		Network:      net,
		Graph:        graph,
		Diffusion:    diff,
		Advection:    adv,
		TrapMutation: tm,
		Fluxes:       fluxes,
		Temperature:  temp,
	}
}

// CreateSolverContext builds the depth grid from cumulative step sizes
// dx (length mx-1), computes the surface position as the given
// percentile of the grid, and assembles the ofill/dfill block-fill
// patterns (dfill covers both the reaction connectivity and every
// trap-mutation entry a grid point of this size can produce).
// rightOffset configures the right boundary policy (0 = reflecting,
// 1 = free surface).
func (d *Domain) CreateSolverContext(mx int, dx []float64, surfacePercentile float64, rightOffset int) {
	x := make([]float64, mx)
	for i := 1; i < mx; i++ {
		x[i] = x[i-1] + dx[i-1]
	}
	surfacePos := int(surfacePercentile * float64(mx-1))
	d.Grid = Grid{X: x, SurfacePos: surfacePos}
	d.rightOffset = rightOffset

	n := d.Network.Size()
	d.OFill = NewFillPattern(n)
	d.DFill = NewFillPattern(n)

	d.Diffusion.InitializeOffDiagonal(d.OFill)
	if d.Advection != nil {
		d.Advection.InitializeOffDiagonal(d.OFill)
	}

	d.dFillMap = make([][]int, n)
	for id := 0; id < n; id++ {
		cols := d.Network.Connectivity(id)
		d.dFillMap[id] = cols
		for _, col := range cols {
			d.DFill.Set(id, col)
		}
	}
	for bucket := 0; bucket < mx; bucket++ {
		for _, e := range d.TrapMutation.ComputePartials(bucket) {
			d.DFill.Set(e.Row, e.Col)
		}
	}
}

// InitializeConcentration zeroes every entry of slab, then seeds an
// initial vacancy population in [surfacePos+1, Mx-2] if a V1 cluster
// exists in the catalogue.
func (d *Domain) InitializeConcentration(slab Slab, initialVacancyDensity float64) {
	for xi := range slab {
		for k := range slab[xi] {
			slab[xi][k] = 0
		}
	}
	v1, ok := d.Network.Get(cluster.V, 1)
	if !ok {
		return
	}
	mx := d.Grid.Mx()
	for xi := d.Grid.SurfacePos + 1; xi <= mx-2; xi++ {
		if xi < 0 || xi >= len(slab) {
			continue
		}
		slab[xi][v1.ID] = initialVacancyDensity
	}
}

// UpdateConcentration is the residual loop: for each interior grid
// point in [xs, xs+xm), assembles incident flux, diffusion/advection,
// trap mutation and reaction fluxes into residual, identity rows at
// the reservoir and boundary.
func (d *Domain) UpdateConcentration(slab Slab, residual Slab, t float64, xs, xm int) error {
	mx := d.Grid.Mx()
	for xi := xs; xi < xs+xm; xi++ {
		if xi <= d.Grid.SurfacePos || xi == mx-1 {
			copy(residual[xi], slab[xi])
			continue
		}

		tAtPoint := d.Temperature.At(xi, t)
		if math.Abs(tAtPoint-d.Network.Temperature()) > temperatureTolerance {
			if d.Network.SetTemperature(tAtPoint) {
				d.setTemperatureCalls++
				d.Graph.SetTemperature(tAtPoint)
				d.TrapMutation.UpdateRate()
			}
		}

		out := residual[xi]
		for k := range out {
			out[k] = 0
		}

		for _, f := range d.Fluxes {
			if f.NeedsRebuild(d.Grid.SurfacePos) {
				f.Build(d.Grid.X, d.Grid.SurfacePos)
			}
			f.Add(xi, out)
		}

		hL, hR := d.Grid.StepLeft(xi), d.Grid.StepRight(xi)
		d.Diffusion.Compute(slab[xi-1], slab[xi], slab[xi+1], out, hL, hR)
		if d.Advection != nil {
			distance := math.Abs(d.Grid.DepthIndex(xi))
			d.Advection.Compute(slab[xi], slab[xi+1], out, hR, distance)
		}

		bucket := d.Grid.Bucket(xi)
		d.TrapMutation.Apply(bucket, slab[xi], out)

		for id := 0; id < d.Network.Size(); id++ {
			out[id] += d.Graph.GetTotalFlux(id, slab[xi])
		}
	}
	return nil
}

// JacobianSink is the minimal write contract the assembler needs from
// the solver's sparse Jacobian object: add value at the block row
// (rowXi, rowID), block column (colXi, colID). Passing both grid
// indices lets the solver address a neighboring grid point's block
// via its own flat row/col offset (e.g. row = rowXi*n+rowID) instead
// of forcing every entry onto the current grid point's diagonal
// block.
type JacobianSink interface {
	Add(rowXi, rowID, colXi, colID int, value float64)
}

// ComputeOffDiagonalJacobian stamps the diffusion/advection stencil
// entries (row=xi's cluster id, col=same id at xi-1/xi/xi+1) into J
// for every interior grid point.
func (d *Domain) ComputeOffDiagonalJacobian(slab Slab, J JacobianSink, xs, xm int) {
	mx := d.Grid.Mx()
	for xi := xs; xi < xs+xm; xi++ {
		if xi <= d.Grid.SurfacePos || xi == mx-1 {
			continue
		}
		hL, hR := d.Grid.StepLeft(xi), d.Grid.StepRight(xi)
		for _, sc := range d.Diffusion.ComputePartials(hL, hR) {
			J.Add(xi, sc.ID, xi, sc.ID, sc.Middle)
			J.Add(xi, sc.ID, xi-1, sc.ID, sc.Left)
			J.Add(xi, sc.ID, xi+1, sc.ID, sc.Right)
		}
		if d.Advection != nil {
			distance := math.Abs(d.Grid.DepthIndex(xi))
			for _, sc := range d.Advection.ComputePartials(hR, distance) {
				J.Add(xi, sc.ID, xi, sc.ID, sc.Middle)
				J.Add(xi, sc.ID, xi+1, sc.ID, sc.Right)
			}
		}
	}
}

// ComputeDiagonalJacobian loads concentrations and asks each cluster
// for its row of partial derivatives (only dFillMap[row] columns are
// read), then adds the trap-mutation diagonal rows. Every entry here
// stays within the current grid point's block (rowXi == colXi == xi).
func (d *Domain) ComputeDiagonalJacobian(slab Slab, J JacobianSink, xs, xm int) {
	mx := d.Grid.Mx()
	n := d.Network.Size()
	row := make([]float64, n)
	for xi := xs; xi < xs+xm; xi++ {
		if xi <= d.Grid.SurfacePos || xi == mx-1 {
			continue
		}
		conc := slab[xi]
		for id := 0; id < n; id++ {
			for k := range row {
				row[k] = 0
			}
			d.Graph.GetPartialDerivatives(id, conc, row)
			for _, col := range d.dFillMap[id] {
				if row[col] != 0 {
					J.Add(xi, id, xi, col, row[col])
				}
			}
		}
		bucket := d.Grid.Bucket(xi)
		for _, e := range d.TrapMutation.ComputePartials(bucket) {
			J.Add(xi, e.Row, xi, e.Col, e.Value)
		}
	}
}

// MassBalance sums every cluster's concentration by species across
// owned grid points, scaled by the local cell width, for the
// -helium_retention/-xenon_retention monitors.
func (d *Domain) MassBalance(slab Slab) map[cluster.Species]float64 {
	out := make(map[cluster.Species]float64)
	for xi, row := range slab {
		width := cellWidth(d.Grid, xi)
		for id, v := range row {
			c := d.Network.Cluster(id)
			if c.Kind != cluster.KindRegular {
				continue
			}
			for species, count := range c.Composition {
				out[species] += v * width * float64(count)
			}
		}
	}
	return out
}

func cellWidth(g Grid, xi int) float64 {
	switch {
	case xi == 0:
		return g.StepRight(0)
	case xi == len(g.X)-1:
		return g.StepLeft(xi)
	default:
		return (g.StepLeft(xi) + g.StepRight(xi)) / 2
	}
}

// SetTemperatureCalls returns the number of network rate rebuilds
// since the last ResetSetTemperatureCalls, the observable spec.md uses
// to assert the temperature-change-detection boundary behavior.
func (d *Domain) SetTemperatureCalls() int { return d.setTemperatureCalls }

// ResetSetTemperatureCalls zeroes the counter.
func (d *Domain) ResetSetTemperatureCalls() { d.setTemperatureCalls = 0 }
