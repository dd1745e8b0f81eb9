package cluster

import "testing"

func buildHeVITestNetwork(t *testing.T) *Network {
	t.Helper()
	var clusters []Cluster
	id := 0
	for s := 1; s <= 10; s++ {
		clusters = append(clusters, Cluster{ID: id, Kind: KindRegular, Composition: Composition{He: s}})
		id++
	}
	for s := 1; s <= 10; s++ {
		clusters = append(clusters, Cluster{ID: id, Kind: KindRegular, Composition: Composition{V: s}})
		id++
	}
	for s := 1; s <= 10; s++ {
		clusters = append(clusters, Cluster{ID: id, Kind: KindRegular, Composition: Composition{I: s}})
		id++
	}
	for a := 1; a <= 9; a++ {
		for b := 1; b <= a; b++ {
			clusters = append(clusters, Cluster{ID: id, Kind: KindRegular, Composition: Composition{He: a, V: b}})
			id++
		}
	}
	net, err := NewNetwork(clusters)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	return net
}

func TestCompositionIndexRoundTrip(t *testing.T) {
	net := buildHeVITestNetwork(t)

	if net.Size() != 75 {
		t.Fatalf("Size() = %d, want 75", net.Size())
	}

	cases := []struct {
		id   int
		comp Composition
	}{
		{0, Composition{He: 1}},
		{9, Composition{He: 10}},
		{10, Composition{V: 1}},
		{19, Composition{V: 10}},
		{20, Composition{I: 1}},
		{29, Composition{I: 10}},
	}
	for _, c := range cases {
		got := net.Cluster(c.id)
		if !got.Composition.Equal(c.comp) {
			t.Errorf("id %d: composition = %v, want %v", c.id, got.Composition, c.comp)
		}
	}

	for id := 30; id < 75; id++ {
		c := net.Cluster(id)
		if c.Composition.Count(He) == 0 || c.Composition.Count(V) == 0 {
			t.Errorf("id %d: expected a HeV composition, got %v", id, c.Composition)
		}
		// round-trip: looking the composition back up must return the same id.
		got, ok := net.GetByComposition(c.Composition)
		if !ok || got.ID != id {
			t.Errorf("id %d: GetByComposition round-trip failed, got id=%d ok=%v", id, got.ID, ok)
		}
	}
}

func TestGetAndGetAll(t *testing.T) {
	net := buildHeVITestNetwork(t)

	he3, ok := net.Get(He, 3)
	if !ok || he3.ID != 2 {
		t.Fatalf("Get(He, 3) = %+v, %v; want id 2", he3, ok)
	}

	all := net.GetAll()
	if len(all) != net.Size() {
		t.Fatalf("GetAll() length = %d, want %d", len(all), net.Size())
	}
	for i, c := range all {
		if c.ID != i {
			t.Fatalf("GetAll()[%d].ID = %d, want %d (ids must iterate in dense order)", i, c.ID, i)
		}
	}
}

func TestSuperClusterReconstruction(t *testing.T) {
	// A super cluster spanning He in [2,6], V in [1,3], with zeroth
	// moment id 0 and first-moment ids 1 (He axis) and 2 (V axis).
	zero := Cluster{
		ID:   0,
		Kind: KindSuper,
		Bounds: map[Species][2]int{
			He: {2, 6},
			V:  {1, 3},
		},
		SectionWidths: map[Species]int{He: 5, V: 3},
		MomentIDs:     map[Species]int{He: 1, V: 2},
	}
	momentHe := Cluster{ID: 1, Kind: KindSuper, SuperID: 0, Axis: He}
	momentV := Cluster{ID: 2, Kind: KindSuper, SuperID: 0, Axis: V}

	net, err := NewNetwork([]Cluster{zero, momentHe, momentV})
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}

	conc := []float64{100, 10, -5} // l0, l1_He, l1_V

	// At the mean point (he=4, v=2), d_axis = 0 for both axes, so the
	// reconstruction must equal l0 exactly (moment-consistency
	// invariant).
	mean := net.ReconstructSuper(0, map[Species]int{He: 4, V: 2}, conc)
	if mean != 100 {
		t.Errorf("ReconstructSuper at mean = %v, want 100 (C_super(mean) = l0)", mean)
	}

	// At he=6 (edge), d_he = 2*(6-4)/(5-1) = 1, so value = l0 + l1_He.
	edge := net.ReconstructSuper(0, map[Species]int{He: 6, V: 2}, conc)
	want := 100.0 + 10.0
	if edge != want {
		t.Errorf("ReconstructSuper at he edge = %v, want %v", edge, want)
	}
}

func TestSetTemperatureRecomputesOnce(t *testing.T) {
	c := Cluster{ID: 0, Kind: KindRegular, Composition: Composition{He: 1}}
	net, err := NewNetwork([]Cluster{c})
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	net.SetDiffusionParameters(0, 1e-7, 0.2)

	if !net.SetTemperature(1000) {
		t.Fatalf("first SetTemperature(1000) should report a recompute")
	}
	d1 := net.Cluster(0).DiffusionCoefficient
	if d1 <= 0 {
		t.Fatalf("DiffusionCoefficient = %v, want > 0", d1)
	}

	// A change within 1e-12 K must not trigger recomputation (boundary
	// behavior: at most one setTemperature-equivalent call per
	// genuinely new temperature).
	if net.SetTemperature(1000 + 1e-13) {
		t.Errorf("SetTemperature with a sub-tolerance delta reported a recompute")
	}

	if !net.SetTemperature(500) {
		t.Errorf("SetTemperature(500) should report a recompute after a genuine change")
	}
	d2 := net.Cluster(0).DiffusionCoefficient
	if d2 >= d1 {
		t.Errorf("DiffusionCoefficient at lower T = %v, want < %v (Arrhenius law)", d2, d1)
	}
}
