package trapmutation

import (
	"math"
	"testing"

	"github.com/fusionwall/clustercore/cluster"
)

func buildW110Network(t *testing.T) *cluster.Network {
	t.Helper()
	var clusters []cluster.Cluster
	id := 0
	for s := 1; s <= 9; s++ {
		clusters = append(clusters, cluster.Cluster{ID: id, Kind: cluster.KindRegular, Composition: cluster.Composition{cluster.He: s}})
		id++
	}
	clusters = append(clusters, cluster.Cluster{ID: id, Kind: cluster.KindRegular, Composition: cluster.Composition{cluster.I: 1}})
	id++
	for s := 1; s <= 9; s += 2 {
		clusters = append(clusters, cluster.Cluster{ID: id, Kind: cluster.KindRegular, Composition: cluster.Composition{cluster.He: s, cluster.V: s}})
		id++
	}
	net, err := cluster.NewNetwork(clusters)
	if err != nil {
		t.Fatalf("NewNetwork: %v", err)
	}
	net.SetDiffusionParameters(0, 1e-7, 0.1) // He1 diffusion params
	return net
}

func TestTrapMutationMassBalanceInvariant(t *testing.T) {
	net := buildW110Network(t)
	net.SetTemperature(1000)
	op := NewOperator(net, W110())
	op.UpdateRate()

	conc := make([]float64, net.Size())
	for k := range conc {
		conc[k] = float64(k * k)
	}
	out := make([]float64, net.Size())

	muts := op.Apply(0, conc, out) // first bucket beyond surface
	if len(muts) == 0 {
		t.Fatalf("expected at least one mutation to fire at bucket 0")
	}

	iID, ok := net.Get(cluster.I, 1)
	if !ok {
		t.Fatalf("network missing I1")
	}

	var sumHeOut float64
	for _, m := range muts {
		if out[m.HeliumID]+out[m.HeVacancyID] != 0 {
			t.Errorf("mutation %+v: out[He]+out[HeV] = %v, want 0", m, out[m.HeliumID]+out[m.HeVacancyID])
		}
		sumHeOut += out[m.HeliumID]
	}
	if out[iID.ID] != -sumHeOut {
		t.Errorf("out[I] = %v, want %v (= -sum of He outflows)", out[iID.ID], -sumHeOut)
	}
}

func TestTrapMutationRateDecreasesWithTemperature(t *testing.T) {
	net := buildW110Network(t)
	op := NewOperator(net, W110())

	net.SetTemperature(1000)
	rateHot := op.UpdateRate()

	net.SetTemperature(500)
	rateCold := op.UpdateRate()

	if rateCold >= rateHot {
		t.Errorf("rate at 500K = %v, want less than rate at 1000K = %v (Arrhenius law)", rateCold, rateHot)
	}

	// Self-consistency: recompute the same closed-form law independently
	// and require an exact match (this is the same formula the operator
	// implements, so it pins down the implementation rather than an
	// external numeric fixture).
	dHe1 := net.Cluster(0).DiffusionCoefficient
	want := 4 * dHe1 * math.Exp(-W110().ActivationEnergy()/(boltzmannEV*500))
	if rateCold != want {
		t.Errorf("rate at 500K = %v, want %v", rateCold, want)
	}
}

func TestTrapMutationDeepBucketNoFiring(t *testing.T) {
	net := buildW110Network(t)
	net.SetTemperature(1000)
	op := NewOperator(net, W110())
	op.UpdateRate()

	conc := make([]float64, net.Size())
	out := make([]float64, net.Size())
	muts := op.Apply(op.rule.MaxBucket(), conc, out)
	if muts != nil {
		t.Errorf("expected no mutations beyond MaxBucket, got %v", muts)
	}
	for _, v := range out {
		if v != 0 {
			t.Errorf("expected no residual contribution beyond MaxBucket, got %v", out)
			break
		}
	}
}

func TestComputePartialsMatchesApplyJacobian(t *testing.T) {
	net := buildW110Network(t)
	net.SetTemperature(1000)
	op := NewOperator(net, W110())
	op.UpdateRate()

	entries := op.ComputePartials(0)
	if len(entries) == 0 {
		t.Fatalf("expected nonzero Jacobian entries at bucket 0")
	}
	for _, e := range entries {
		if e.Row == e.Col {
			if e.Value != -op.Rate() {
				t.Errorf("diagonal entry %+v, want value %v", e, -op.Rate())
			}
		} else if e.Value != op.Rate() {
			t.Errorf("off-diagonal entry %+v, want value %v", e, op.Rate())
		}
	}
}
