package reaction

import (
	"math"

	"github.com/fusionwall/clustercore/cluster"
)

const angstromToMeter = 1e-10

// BuildCatalogue enumerates the combination and dissociation reactions
// implied directly by net's cluster catalogue, the way a material's
// reaction network is actually derived in practice: two distinct
// clusters combine whenever their summed composition matches another
// cataloged cluster, and a cluster dissociates into a monomer plus a
// remainder cluster for every species listed in its binding-energy
// table, provided both dissociation products are themselves cataloged.
// In both cases at least one of the two partners (reactants, or
// dissociation products) must diffuse; pairs where neither does are
// skipped (see captureRate).
// Self-combination (n+n -> 2n) and Emission-kind reactions are out of
// scope here: the former needs a combinatorial factor this pairwise
// walk does not track, and emission-style surface loss is already
// modeled by the event package's bursting state machine rather than a
// static per-pair rate.
func BuildCatalogue(net *cluster.Network) []Reaction {
	var out []Reaction
	clusters := net.GetAllKind(cluster.KindRegular)

	for i, a := range clusters {
		for j := i + 1; j < len(clusters); j++ {
			b := clusters[j]
			sum := combineComposition(a.Composition, b.Composition)
			product, ok := net.GetByComposition(sum)
			if !ok || product.ID == a.ID || product.ID == b.ID {
				continue
			}
			prefactor, activation, ok := captureRate(net, a, b)
			if !ok {
				continue
			}
			out = append(out, Reaction{
				Kind:           Combination,
				A:              a.ID,
				B:              b.ID,
				Products:       []int{product.ID},
				RateLaw:        DiffusionLimited,
				RatePrefactor:  prefactor,
				RateActivation: activation,
			})
		}
	}

	for _, c := range clusters {
		for species, eb := range c.BindingEnergy {
			monomer, ok := net.Get(species, 1)
			if !ok {
				continue
			}
			remainder := c.Composition.Clone()
			remainder[species]--
			if remainder[species] <= 0 {
				delete(remainder, species)
			}
			remainderCluster, ok := net.GetByComposition(remainder)
			if !ok {
				continue
			}
			prefactor, _, ok := captureRate(net, monomer, remainderCluster)
			if !ok {
				continue
			}
			out = append(out, Reaction{
				Kind:           Dissociation,
				A:              c.ID,
				Products:       []int{monomer.ID, remainderCluster.ID},
				RateLaw:        Arrhenius,
				RatePrefactor:  prefactor,
				RateActivation: eb,
			})
		}
	}
	return out
}

func combineComposition(a, b cluster.Composition) cluster.Composition {
	out := a.Clone()
	for s, n := range b {
		out[s] += n
	}
	return out
}

// captureRate returns the diffusion-limited geometric capture rate
// 4π(rA+rB)·D0 and its activation energy for a pair of clusters
// reacting by direct impingement, taking D0/activation from whichever
// partner has the larger diffusion prefactor — the standard
// rate-limiting-step approximation that an immobile partner is found
// by the mobile one, rather than summing two generally-incompatible
// Arrhenius exponentials into one. ok is false if neither partner
// diffuses, since there is then no mechanism bringing them together.
func captureRate(net *cluster.Network, a, b cluster.Cluster) (prefactor, activation float64, ok bool) {
	pa, ea := net.DiffusionParams(a.ID)
	pb, eb := net.DiffusionParams(b.ID)
	p, e := pa, ea
	if pb > pa {
		p, e = pb, eb
	}
	if p == 0 {
		return 0, 0, false
	}
	radius := (a.ReactionRadius + b.ReactionRadius) * angstromToMeter
	return 4 * math.Pi * radius * p, e, true
}
