package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/reaction"
)

// clusterEntry is the on-disk shape of one regular cluster in a
// network description file: a composition list plus
// formation/binding/radius/diffusion tables, per spec.md §4's
// lifecycle statement. Super clusters are assembled in code (their
// bounds/section widths are a material-specific binning choice, not
// naturally tabular), so this loader only covers regular clusters.
type clusterEntry struct {
	ID                   int            `toml:"id"`
	Composition          map[string]int `toml:"composition"`
	ReactionRadius       float64        `toml:"reaction_radius"`
	FormationEnergy      float64        `toml:"formation_energy"`
	BindingEnergy        map[string]float64 `toml:"binding_energy"`
	DiffusionPrefactor   float64        `toml:"diffusion_prefactor"`
	DiffusionActivation  float64        `toml:"diffusion_activation"`
}

type networkDocument struct {
	Cluster []clusterEntry `toml:"cluster"`
}

// LoadNetwork reads a TOML network description file, builds the
// corresponding cluster.Network, and derives its reaction catalogue
// from the loaded composition/radius/binding-energy tables via
// reaction.BuildCatalogue — the network file is the only place these
// reactions can come from, so a caller that only needs the network
// and not the reactions is still free to discard the second value.
func LoadNetwork(path string) (*cluster.Network, []reaction.Reaction, error) {
	var doc networkDocument
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, nil, fmt.Errorf("clustercore: decoding network description %s: %w", path, err)
	}

	clusters := make([]cluster.Cluster, len(doc.Cluster))
	for i, e := range doc.Cluster {
		comp := make(cluster.Composition, len(e.Composition))
		for name, count := range e.Composition {
			s, err := speciesByName(name)
			if err != nil {
				return nil, nil, fmt.Errorf("clustercore: network description cluster %d: %w", e.ID, err)
			}
			comp[s] = count
		}
		binding := make(map[cluster.Species]float64, len(e.BindingEnergy))
		for name, ev := range e.BindingEnergy {
			s, err := speciesByName(name)
			if err != nil {
				return nil, nil, fmt.Errorf("clustercore: network description cluster %d binding energy: %w", e.ID, err)
			}
			binding[s] = ev
		}
		clusters[i] = cluster.Cluster{
			ID:                  e.ID,
			Kind:                cluster.KindRegular,
			Composition:         comp,
			ReactionRadius:      e.ReactionRadius,
			FormationEnergy:     e.FormationEnergy,
			BindingEnergy:       binding,
		}
	}

	net, err := cluster.NewNetwork(clusters)
	if err != nil {
		return nil, nil, fmt.Errorf("clustercore: building network from %s: %w", path, err)
	}
	for i, e := range doc.Cluster {
		if e.DiffusionPrefactor != 0 {
			net.SetDiffusionParameters(clusters[i].ID, e.DiffusionPrefactor, e.DiffusionActivation)
		}
	}
	return net, reaction.BuildCatalogue(net), nil
}

func speciesByName(name string) (cluster.Species, error) {
	switch name {
	case "He":
		return cluster.He, nil
	case "D":
		return cluster.D, nil
	case "T":
		return cluster.T, nil
	case "V":
		return cluster.V, nil
	case "I":
		return cluster.I, nil
	case "Xe":
		return cluster.Xe, nil
	case "Void":
		return cluster.Void, nil
	case "Faulted":
		return cluster.Faulted, nil
	case "Frank":
		return cluster.Frank, nil
	case "Perfect":
		return cluster.Perfect, nil
	}
	return 0, fmt.Errorf("unknown species name %q", name)
}
