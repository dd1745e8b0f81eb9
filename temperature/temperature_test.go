package temperature

import "testing"

func TestConstant(t *testing.T) {
	c := Constant(900)
	if c.At(3, 10) != 900 {
		t.Errorf("Constant.At = %v, want 900", c.At(3, 10))
	}
}

func TestProfileOutOfRange(t *testing.T) {
	p := Profile{Values: []float64{1, 2, 3}}
	if p.At(5, 0) != 0 {
		t.Errorf("Profile.At out of range = %v, want 0", p.At(5, 0))
	}
	if p.At(1, 0) != 2 {
		t.Errorf("Profile.At(1) = %v, want 2", p.At(1, 0))
	}
}

func TestHeatEquationConvergesTowardUniform(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4}
	h := &HeatEquation{Values: []float64{300, 300, 600, 300, 300}, Diffusivity: 0.05}

	for i := 0; i < 500; i++ {
		h.Step(x, 0.1)
	}

	// The interior peak should have relaxed substantially toward the
	// boundary-held values, without the boundaries themselves moving
	// (they are never updated by Step).
	if h.Values[0] != 300 || h.Values[len(h.Values)-1] != 300 {
		t.Errorf("boundary values changed: %v", h.Values)
	}
	if h.Values[2] >= 600 {
		t.Errorf("center value did not relax: %v", h.Values[2])
	}
}
