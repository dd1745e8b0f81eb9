package transport

import (
	"testing"

	"github.com/fusionwall/clustercore/cluster"
)

type boolFill struct{ m map[[2]int]bool }

func newBoolFill() *boolFill { return &boolFill{m: map[[2]int]bool{}} }
func (f *boolFill) Set(row, col int) { f.m[[2]int{row, col}] = true }

func buildDiffusingNetwork(t *testing.T) *cluster.Network {
	t.Helper()
	clusters := []cluster.Cluster{
		{ID: 0, Kind: cluster.KindRegular, Composition: cluster.Composition{cluster.He: 1}, DiffusionCoefficient: 2.0},
		{ID: 1, Kind: cluster.KindRegular, Composition: cluster.Composition{cluster.V: 1}, DiffusionCoefficient: 0},
	}
	net, err := cluster.NewNetwork(clusters)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return net
}

func TestDiffusionOnlyDiagonal(t *testing.T) {
	net := buildDiffusingNetwork(t)
	d := NewDiffusion(net)

	fill := newBoolFill()
	d.InitializeOffDiagonal(fill)

	if !fill.m[[2]int{0, 0}] {
		t.Errorf("expected diagonal entry (0,0) to be set for the diffusing cluster")
	}
	if len(fill.m) != 1 {
		t.Errorf("expected exactly 1 fill entry (no cross-species coupling), got %d", len(fill.m))
	}
}

func TestDiffusionComputeUniformGrid(t *testing.T) {
	net := buildDiffusingNetwork(t)
	d := NewDiffusion(net)

	left := []float64{1, 0}
	mid := []float64{4, 0}
	right := []float64{9, 0}
	out := make([]float64, 2)

	d.Compute(left, mid, right, out, 1.0, 1.0)

	// Uniform grid, h=1: 2/(h+h) * ((1-4)/1 + (9-4)/1) = 1*(−3+5) = 2;
	// scaled by D=2 => 4.
	want := 4.0
	if out[0] != want {
		t.Errorf("out[0] = %v, want %v", out[0], want)
	}
	if out[1] != 0 {
		t.Errorf("out[1] = %v, want 0 (non-diffusing cluster untouched)", out[1])
	}
}

func TestAdvectionCutoff(t *testing.T) {
	net := buildDiffusingNetwork(t)
	a := NewAdvection(net, map[int]float64{0: 1.0}, map[int]float64{0: 5.0})

	mid := []float64{2, 0}
	right := []float64{3, 0}
	out := make([]float64, 2)

	a.Compute(mid, right, out, 1.0, 10.0) // beyond cutoff
	if out[0] != 0 {
		t.Errorf("beyond cutoff: out[0] = %v, want 0", out[0])
	}

	out2 := make([]float64, 2)
	a.Compute(mid, right, out2, 1.0, 2.0) // within cutoff
	want := 1.0 * (3.0 - 2.0) / 1.0
	if out2[0] != want {
		t.Errorf("within cutoff: out[0] = %v, want %v", out2[0], want)
	}
}
