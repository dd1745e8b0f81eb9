// Package reaction enumerates the production/combination/dissociation/
// emission reactions over a cluster.Network and evaluates per-cluster
// flux and Jacobian partial derivatives from them.
package reaction

import "math"

// Kind distinguishes the three reaction shapes the catalogue can
// identify between a cluster pair at construction time (Combination
// also covers production).
type Kind int

const (
	// Combination: A + B -> Product, rate k*C_A*C_B (this also covers
	// what the catalogue calls "production").
	Combination Kind = iota
	// Dissociation: Reactant -> ProductA + ProductB, rate k*C_Reactant.
	Dissociation
	// Emission: Reactant -> Product (+ an untracked emitted species),
	// rate k*C_Reactant.
	Emission
)

// RateLaw is the functional form used to recompute K from temperature.
type RateLaw int

const (
	Arrhenius RateLaw = iota
	DiffusionLimited
	Constant
)

const boltzmannEV = 8.617333262e-5 // eV/K

// MomentCoeff is one entry of the degree-3 moment-coupling tensor for a
// reaction between super clusters: a coefficient carrying moment
// "from" of one participant into moment "to" of the product.
type MomentCoeff struct {
	From int
	To   int
	Coeff float64
}

// Reaction is an immutable record referencing cluster ids, never
// pointers, so that connectivity rows and partial-derivative emission
// stay cheap value operations.
type Reaction struct {
	Kind Kind

	// Combination: A, B are reactants, Products[0] is the product.
	// Dissociation: A is the reactant, Products are the two products.
	// Emission: A is the reactant, Products[0] is the surviving product.
	A, B     int
	Products []int

	RateLaw        RateLaw
	RatePrefactor  float64
	RateActivation float64
	K              float64

	// MomentCoeffs is non-empty only for reactions between super
	// clusters; it supplements the base K-driven flux above with
	// additional first-moment coupling terms.
	MomentCoeffs []MomentCoeff
}

// rate evaluates the reaction's rate law at temperature t.
func (r Reaction) rate(t float64) float64 {
	switch r.RateLaw {
	case Constant:
		return r.RatePrefactor
	case Arrhenius, DiffusionLimited:
		return r.RatePrefactor * math.Exp(-r.RateActivation/(boltzmannEV*t))
	default:
		return r.RatePrefactor
	}
}

func (r Reaction) participants() []int {
	switch r.Kind {
	case Combination:
		ids := []int{r.A, r.B}
		return append(ids, r.Products...)
	default:
		ids := []int{r.A}
		return append(ids, r.Products...)
	}
}
