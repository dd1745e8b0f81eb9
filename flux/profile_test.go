package flux

import "testing"

func TestProfilePeaksAtMeanRange(t *testing.T) {
	x := make([]float64, 20)
	for i := range x {
		x[i] = float64(i) * 0.1e-9 // 0.1 nm spacing
	}
	p := NewProfile(1e20, 1e-9, 0.3e-9, 5)
	p.Build(x, 0)

	peakIdx := 0
	for i, v := range p.values {
		if v > p.values[peakIdx] {
			peakIdx = i
		}
	}
	// mean range 1nm / 0.1nm spacing = index 10 from the surface.
	if peakIdx != 10 {
		t.Errorf("peak at index %d, want 10", peakIdx)
	}
}

func TestProfileRebuildTracksSurfaceMove(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	p := NewProfile(1, 1, 1, 0)
	p.Build(x, 1)
	if p.NeedsRebuild(1) {
		t.Errorf("NeedsRebuild(1) = true right after Build(x, 1)")
	}
	if !p.NeedsRebuild(2) {
		t.Errorf("NeedsRebuild(2) = false after the surface moved")
	}
}

func TestAddOutOfRangeIsNoop(t *testing.T) {
	x := []float64{0, 1, 2}
	p := NewProfile(1, 0, 1, 0)
	p.Build(x, 0)
	out := []float64{0}
	p.Add(-1, out)
	p.Add(99, out)
	if out[0] != 0 {
		t.Errorf("out-of-range Add mutated out: %v", out)
	}
}
