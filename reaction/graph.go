package reaction

import "github.com/fusionwall/clustercore/cluster"

// Graph is the reaction graph over a cluster.Network: the set of
// pairwise reactions identified at construction time, plus the
// per-cluster index used to evaluate flux and partial derivatives
// without scanning the whole reaction list on every call.
type Graph struct {
	net       *cluster.Network
	reactions []Reaction
	byCluster [][]int // cluster id -> indices into reactions touching it
}

// NewGraph builds the reaction graph from an explicit list of
// reactions (produced by a material-specific catalogue builder) and
// freezes each participating cluster's connectivity row on net, per
// the invariant that connectivity is computed once and is immutable
// afterward.
func NewGraph(net *cluster.Network, reactions []Reaction) *Graph {
	g := &Graph{
		net:       net,
		reactions: reactions,
		byCluster: make([][]int, net.Size()),
	}
	partners := make(map[int]map[int]bool, net.Size())
	for ri, r := range reactions {
		ids := r.participants()
		for _, id := range ids {
			g.byCluster[id] = append(g.byCluster[id], ri)
			if partners[id] == nil {
				partners[id] = make(map[int]bool)
			}
			// A cluster's own concentration drives its flux too (e.g. the
			// diagonal -K*C_B term of a combination reactant), so every
			// participant, including id itself, joins its row.
			for _, other := range ids {
				partners[id][other] = true
			}
		}
		for _, mc := range r.MomentCoeffs {
			g.byCluster[mc.To] = append(g.byCluster[mc.To], ri)
			if partners[mc.To] == nil {
				partners[mc.To] = make(map[int]bool)
			}
			partners[mc.To][mc.From] = true
		}
	}
	for id := 0; id < net.Size(); id++ {
		var list []int
		for other := range partners[id] {
			list = append(list, other)
		}
		net.SetConnectivity(id, list)
	}
	return g
}

// SetTemperature recomputes every reaction's rate constant for the
// network's new temperature. Cost is O(number of reactions); the
// caller is expected to only invoke this when the assembler's
// temperature-change check (network.SetTemperature) reports an actual
// change.
func (g *Graph) SetTemperature(t float64) {
	for i := range g.reactions {
		g.reactions[i].K = g.reactions[i].rate(t)
	}
}

// GetTotalFlux returns production − combination + dissociation −
// emission contributions to cluster id's dC/dt, reading concentrations
// from conc (indexed by cluster id).
func (g *Graph) GetTotalFlux(id int, conc []float64) float64 {
	var total float64
	for _, ri := range g.byCluster[id] {
		r := g.reactions[ri]
		total += fluxContribution(r, id, conc)
		for _, mc := range r.MomentCoeffs {
			if mc.To == id {
				total += mc.Coeff * conc[mc.From]
			}
		}
	}
	return total
}

// fluxContribution returns this reaction's signed contribution to
// cluster id's flux, or 0 if id is not one of its base participants
// (e.g. it only appears via a MomentCoeff, handled separately).
func fluxContribution(r Reaction, id int, conc []float64) float64 {
	switch r.Kind {
	case Combination:
		rate := r.K * conc[r.A] * conc[r.B]
		switch id {
		case r.A, r.B:
			return -rate
		}
		for _, p := range r.Products {
			if p == id {
				return rate
			}
		}
	case Dissociation:
		rate := r.K * conc[r.A]
		if id == r.A {
			return -rate
		}
		for _, p := range r.Products {
			if p == id {
				return rate
			}
		}
	case Emission:
		rate := r.K * conc[r.A]
		if id == r.A {
			return -rate
		}
		if len(r.Products) > 0 && r.Products[0] == id {
			return rate
		}
	}
	return 0
}

// GetPartialDerivatives fills row (length net.Size()) with
// ∂(dC_id/dt)/∂C_j for every j on id's connectivity; entries outside
// the connectivity are left untouched (the assembler only reads the
// listed columns, per the catalogue's contract).
func (g *Graph) GetPartialDerivatives(id int, conc []float64, row []float64) {
	for _, ri := range g.byCluster[id] {
		r := g.reactions[ri]
		addPartials(r, id, conc, row)
		for _, mc := range r.MomentCoeffs {
			if mc.To == id {
				row[mc.From] += mc.Coeff
			}
		}
	}
}

func addPartials(r Reaction, id int, conc []float64, row []float64) {
	switch r.Kind {
	case Combination:
		cA, cB := conc[r.A], conc[r.B]
		switch id {
		case r.A, r.B:
			row[r.A] += -r.K * cB
			row[r.B] += -r.K * cA
		default:
			for _, p := range r.Products {
				if p == id {
					row[r.A] += r.K * cB
					row[r.B] += r.K * cA
				}
			}
		}
	case Dissociation:
		if id == r.A {
			row[r.A] += -r.K
			return
		}
		for _, p := range r.Products {
			if p == id {
				row[r.A] += r.K
			}
		}
	case Emission:
		if id == r.A {
			row[r.A] += -r.K
			return
		}
		if len(r.Products) > 0 && r.Products[0] == id {
			row[r.A] += r.K
		}
	}
}

// Reactions returns the immutable reaction list, for diagnostics and
// tests.
func (g *Graph) Reactions() []Reaction { return g.reactions }
