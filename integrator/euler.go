package integrator

// LocalVector is a single-process Vector: Local and Global are the
// same backing slice (no ghost exchange needed with one process).
type LocalVector struct {
	values []float64
}

// NewLocalVector wraps values in a Vector. values is not copied.
func NewLocalVector(values []float64) *LocalVector { return &LocalVector{values: values} }

func (v *LocalVector) Local() []float64  { return v.values }
func (v *LocalVector) Global() []float64 { return v.values }
func (v *LocalVector) GhostUpdate()      {}

// ExplicitEuler is a reference/test double for the external stiff
// solver: not suitable for production (the whole point of the real
// integrator is an implicit stiff method), but sufficient to drive
// domain callbacks through a handful of steps in tests without
// depending on any external IMEX package.
type ExplicitEuler struct {
	Residual ResidualFunc
}

// Step advances conc by one step of size dt starting at time t,
// conc += dt * residual(t, conc).
func (e *ExplicitEuler) Step(t, dt float64, conc Vector) error {
	residual := make([]float64, len(conc.Local()))
	if err := e.Residual(t, conc, residual); err != nil {
		return err
	}
	local := conc.Local()
	for i := range local {
		local[i] += dt * residual[i]
	}
	conc.GhostUpdate()
	return nil
}
