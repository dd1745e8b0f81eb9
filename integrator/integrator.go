// Package integrator defines the boundary contract between this
// module and the external black-box stiff ODE solver: the callback
// signatures the solver invokes, and the ghosted distributed-vector
// abstraction it supplies. The actual IMEX/nonlinear solver is an
// external collaborator and is not implemented here; ExplicitEuler is
// a small reference/test double so the domain package's callbacks can
// be exercised end-to-end without a real stiff solver dependency.
package integrator

// Vector is the reduced read/write contract of the external ghosted
// 1-D distributed array: local values, the full (owned + ghost) view,
// and a ghost-exchange hook. The concrete distributed implementation
// belongs to the external solver; Local is a single-process stand-in.
type Vector interface {
	Local() []float64
	Global() []float64
	GhostUpdate()
}

// ResidualFunc matches updateConcentration(localSlab, residual, t).
type ResidualFunc func(t float64, conc Vector, residual []float64) error

// JacobianFunc matches computeOffDiagonalJacobian/computeDiagonalJacobian(localSlab, J).
type JacobianFunc func(t float64, conc Vector, jacobian JacobianSink) error

// JacobianSink is the minimal write contract the assembler needs from
// the solver's sparse Jacobian object: add value at block row
// (rowXi, rowID), block column (colXi, colID), so a stencil entry
// coupling to a neighboring grid point can be addressed without being
// folded onto the current grid point's diagonal block.
type JacobianSink interface {
	Add(rowXi, rowID, colXi, colID int, value float64)
}

// EventFunc matches the event function (t, C) -> {fvalues[3]}.
type EventFunc func(t float64, conc Vector) [3]float64

// PostEventFunc matches the event controller's post-event handler.
type PostEventFunc func(t float64, conc Vector) error
