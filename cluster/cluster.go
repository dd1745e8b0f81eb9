package cluster

// Kind distinguishes a regular, single-composition cluster from a super
// cluster representing a rectangular bundle of lattice points via
// distributional moments. Modeled as a tagged union rather than an
// inheritance hierarchy per the two operations (flux, partial
// derivatives) that actually need to dispatch on it.
type Kind int

const (
	KindRegular Kind = iota
	KindSuper
)

// Cluster is one degree of freedom of the network: either a single
// composition (KindRegular) or a moment of a grouped bundle of
// compositions (KindSuper). Every moment of a super cluster (zeroth and
// one per grouped axis) gets its own dense id and its own Cluster
// record with Kind == KindSuper and the same SuperID.
type Cluster struct {
	ID   int
	Kind Kind

	// Regular-cluster identity.
	Composition Composition

	// Common physical attributes.
	ReactionRadius  float64            // Å
	FormationEnergy float64            // eV
	BindingEnergy   map[Species]float64 // to one-step dissociation products

	// DiffusionCoefficient is cached for the network's current
	// temperature and recomputed whenever Network.SetTemperature is
	// called; it is not itself thread-safe to mutate (see Network).
	DiffusionCoefficient float64
	diffusionPrefactor   float64 // D0, m^2/s
	diffusionActivation  float64 // Em, eV

	// Super-cluster-only fields. SuperID identifies the group this
	// moment belongs to (the zeroth moment's own id, conventionally);
	// Axis is the species this moment is a first moment of; IsMoment0
	// marks the zeroth moment (total concentration, l0), whose Axis is
	// not used.
	SuperID int
	Axis    Species
	IsMoment0 bool

	Bounds        map[Species][2]int // [lo, hi] inclusive per grouped axis
	NTot          int                // lattice points enclosed
	SectionWidths map[Species]int
	MomentIDs     map[Species]int // axis -> id of that axis's first-moment cluster
}

// axisMean returns the midpoint of the bounds interval for axis.
func (c Cluster) axisMean(axis Species) float64 {
	b := c.Bounds[axis]
	return float64(b[0]+b[1]) / 2
}

// dAxis computes d_axis(n) = 2(n-mean)/(width-1), or 0 when width==1,
// per the super-cluster flux law.
func (c Cluster) dAxis(axis Species, n int) float64 {
	width := c.SectionWidths[axis]
	if width <= 1 {
		return 0
	}
	mean := c.axisMean(axis)
	return 2 * (float64(n) - mean) / float64(width-1)
}
