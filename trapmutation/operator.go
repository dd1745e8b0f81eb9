package trapmutation

import (
	"math"

	"github.com/fusionwall/clustercore/cluster"
)

const boltzmannEV = 8.617333262e-5 // eV/K

// Operator ties a Rule to a built cluster.Network: it resolves He_s,
// HeV_{s,v} and I cluster ids once at construction, then applies the
// source term and its Jacobian contribution at each grid point the
// assembler visits.
type Operator struct {
	net  *cluster.Network
	rule Rule

	heliumID        map[int]int      // size -> He_s cluster id
	heVacancyID     map[[2]int]int   // (size, v) -> HeV_{s,v} cluster id
	interstitialID  int
	hasInterstitial bool

	rate float64 // k_tm(T), recomputed by UpdateRate
}

// Mutation is one resolved (He_s -> HeV_{s,v} + I) firing at a depth
// bucket.
type Mutation struct {
	HeliumID    int
	HeVacancyID int
	Size, V     int
}

// NewOperator resolves the rule's table against net's catalogue. Sizes
// whose He or HeV cluster is absent from the network are silently
// skipped (per the "logic error" policy: a missing product cluster
// means no reaction at this site).
func NewOperator(net *cluster.Network, rule Rule) *Operator {
	op := &Operator{net: net, rule: rule, heliumID: map[int]int{}, heVacancyID: map[[2]int]int{}}
	for s := 1; s <= rule.MaxHeliumSize(); s++ {
		if c, ok := net.Get(cluster.He, s); ok {
			op.heliumID[s] = c.ID
		}
	}
	for s := 1; s <= rule.MaxHeliumSize(); s++ {
		for b := 0; b < rule.MaxBucket(); b++ {
			v, ok := rule.Product(s, b)
			if !ok {
				continue
			}
			if c, ok := net.GetByComposition(cluster.Composition{cluster.He: s, cluster.V: v}); ok {
				op.heVacancyID[[2]int{s, v}] = c.ID
			}
		}
	}
	if c, ok := net.Get(cluster.I, 1); ok {
		op.interstitialID = c.ID
		op.hasInterstitial = true
	}
	return op
}

// UpdateRate recomputes k_tm from the current He-monomer diffusion
// coefficient: k_tm(T) = 4·D_He1(T)·exp(-E_a/kT). Called whenever the
// assembler detects a network temperature change.
func (op *Operator) UpdateRate() float64 {
	var dHe1 float64
	if id, ok := op.heliumID[1]; ok {
		dHe1 = op.net.Cluster(id).DiffusionCoefficient
	}
	t := op.net.Temperature()
	op.rate = 4 * dHe1 * math.Exp(-op.rule.ActivationEnergy()/(boltzmannEV*t))
	return op.rate
}

// Rate returns the currently cached k_tm.
func (op *Operator) Rate() float64 { return op.rate }

// mutationsAt returns every resolved mutation that fires at the given
// depth bucket.
func (op *Operator) mutationsAt(bucket int) []Mutation {
	var out []Mutation
	for s := 1; s <= op.rule.MaxHeliumSize(); s++ {
		v, ok := op.rule.Product(s, bucket)
		if !ok {
			continue
		}
		heID, ok := op.heliumID[s]
		if !ok {
			continue
		}
		hevID, ok := op.heVacancyID[[2]int{s, v}]
		if !ok {
			continue
		}
		out = append(out, Mutation{HeliumID: heID, HeVacancyID: hevID, Size: s, V: v})
	}
	return out
}

// Apply adds the trap-mutation source term to out for every mutation
// firing at bucket, reading helium concentrations from conc. Deeper
// grid points (bucket >= rule.MaxBucket()) contribute nothing.
func (op *Operator) Apply(bucket int, conc, out []float64) []Mutation {
	if bucket < 0 || bucket >= op.rule.MaxBucket() {
		return nil
	}
	muts := op.mutationsAt(bucket)
	for _, m := range muts {
		flux := op.rate * conc[m.HeliumID]
		out[m.HeliumID] -= flux
		out[m.HeVacancyID] += flux
		if op.hasInterstitial {
			out[op.interstitialID] += flux
		}
	}
	return muts
}

// JacobianEntry is one (row, col, value) Jacobian contribution from
// trap mutation.
type JacobianEntry struct {
	Row, Col int
	Value    float64
}

// ComputePartials emits, per mutation firing at bucket, three entries:
// (He, He) = -k_tm, (HeV, He) = +k_tm, (I, He) = +k_tm.
func (op *Operator) ComputePartials(bucket int) []JacobianEntry {
	if bucket < 0 || bucket >= op.rule.MaxBucket() {
		return nil
	}
	var out []JacobianEntry
	for _, m := range op.mutationsAt(bucket) {
		out = append(out,
			JacobianEntry{Row: m.HeliumID, Col: m.HeliumID, Value: -op.rate},
			JacobianEntry{Row: m.HeVacancyID, Col: m.HeliumID, Value: op.rate},
		)
		if op.hasInterstitial {
			out = append(out, JacobianEntry{Row: op.interstitialID, Col: m.HeliumID, Value: op.rate})
		}
	}
	return out
}
