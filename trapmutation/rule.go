// Package trapmutation implements the modified trap-mutation operator:
// the depth- and material-indexed nonlinear source converting He_s
// clusters into HeV_{s,v} plus a self-interstitial near the free
// surface. Materials are small value types implementing Rule, in the
// same one-interface/many-concrete-mechanism style as
// science/chem/simplechem's Mechanism value type.
package trapmutation

// Rule is the material-specific crystallographic-surface rule set: for
// each helium cluster size and depth bucket, the preferred product
// vacancy count, plus the activation energy used to derive the
// trap-mutation rate from the current He-monomer diffusion
// coefficient.
type Rule interface {
	// Name identifies the material/surface combination, e.g. "W110".
	Name() string
	// Product returns the preferred vacancy count v for a He cluster of
	// size s at the given depth bucket (0 = first grid point beyond the
	// surface). ok is false if this (s, bucket) pair has no rule —
	// trap mutation does not fire for it.
	Product(s, bucket int) (v int, ok bool)
	// MaxBucket returns the number of depth buckets with any rule;
	// grid points deeper than this never trap-mutate.
	MaxBucket() int
	// MaxHeliumSize returns the largest He cluster size this rule set
	// has any entry for.
	MaxHeliumSize() int
	// ActivationEnergy returns E_a (eV) used in the rate law
	// k_tm(T) = 4·D_He1(T)·exp(-E_a/kT).
	ActivationEnergy() float64
}

// tableRule is the shared implementation backing every concrete
// material: a lookup table keyed by (size, bucket).
type tableRule struct {
	name       string
	table      map[[2]int]int
	maxBucket  int
	maxSize    int
	activation float64
}

func (r tableRule) Name() string           { return r.name }
func (r tableRule) MaxBucket() int         { return r.maxBucket }
func (r tableRule) MaxHeliumSize() int     { return r.maxSize }
func (r tableRule) ActivationEnergy() float64 { return r.activation }

func (r tableRule) Product(s, bucket int) (int, bool) {
	v, ok := r.table[[2]int{s, bucket}]
	return v, ok
}
