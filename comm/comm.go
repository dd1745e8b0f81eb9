// Package comm defines the minimal MPI-coordination boundary the event
// controller needs: rank/size identification and the two collectives
// (broadcast-from-owner, all-reduce-find-owner) the spec's single
// communicator model requires. A real MPI binding can satisfy this
// interface; comm.Local is the single-process reference used
// throughout this repository's tests, generalizing the teacher's own
// single-process goroutine-pool concurrency (run.go's Calculations)
// into a replaceable collective boundary rather than real distributed
// memory.
package comm

// CounterState is the small bundle of event-controller scalars that
// must stay replicated and consistent across every process.
type CounterState struct {
	NInterstitial   float64
	PreviousIFlux   float64
	NHelium         float64
	PreviousHeFlux  float64
	NDeuterium      float64
	PreviousDFlux   float64
	NTritium        float64
	PreviousTFlux   float64
}

// Communicator is the distributed-memory coordination boundary.
type Communicator interface {
	Rank() int
	Size() int
	// Bcast broadcasts *state from owner to every process; on
	// non-owner processes state is overwritten with the owner's value.
	Bcast(owner int, state *CounterState) error
	// AllReduceOwner returns the rank of the (assumed unique) process
	// for which hasEvent is true, or -1 if none reported an event. Per
	// the design notes this is an ad-hoc "find the owner" reduction
	// and may be replaced with a pre-known owner in a future redesign.
	AllReduceOwner(hasEvent bool) (int, error)
}
