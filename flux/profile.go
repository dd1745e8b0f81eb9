// Package flux computes the depth-profiled incident-particle source
// term, in the accumulation style of the teacher's io.go
// Emissions/EmisRecord/AddEmisFlux machinery generalized from emission
// stacks to a single implantation beam.
package flux

import "math"

// Profile precomputes F[xi], the incident-flux contribution at every
// grid point, from the current surface position. The profile is
// invalidated (recomputed) whenever the surface moves.
type Profile struct {
	amplitude   float64 // particles/m2/s at the peak
	meanRange   float64 // m, depth of peak implantation
	straggle    float64 // m, Gaussian width
	speciesID   int     // cluster id the flux is injected into (He1, D1, ...)

	values      []float64
	builtSurface int
}

// NewProfile constructs a flux profile targeting speciesID (typically
// the monomer cluster of the implanted species).
func NewProfile(amplitude, meanRange, straggle float64, speciesID int) *Profile {
	return &Profile{amplitude: amplitude, meanRange: meanRange, straggle: straggle, speciesID: speciesID, builtSurface: -1}
}

// Build recomputes F[xi] for the grid x given the current surface
// index. A Gaussian implantation profile centered meanRange below the
// surface, in the spirit of a TRIM-derived stopping profile.
func (p *Profile) Build(x []float64, surfacePos int) {
	p.values = make([]float64, len(x))
	if surfacePos < 0 || surfacePos >= len(x) {
		p.builtSurface = surfacePos
		return
	}
	surfaceCoord := x[surfacePos]
	for xi, coord := range x {
		d := coord - surfaceCoord - p.meanRange
		p.values[xi] = p.amplitude * math.Exp(-d*d/(2*p.straggle*p.straggle))
	}
	p.builtSurface = surfacePos
}

// NeedsRebuild reports whether the profile must be rebuilt because the
// surface has moved since the last Build.
func (p *Profile) NeedsRebuild(surfacePos int) bool { return p.builtSurface != surfacePos }

// Add adds this profile's contribution at grid point xi into out.
func (p *Profile) Add(xi int, out []float64) {
	if xi < 0 || xi >= len(p.values) {
		return
	}
	out[p.speciesID] += p.values[xi]
}

// At returns F[xi] directly, for diagnostics.
func (p *Profile) At(xi int) float64 {
	if xi < 0 || xi >= len(p.values) {
		return 0
	}
	return p.values[xi]
}
