// Package monitor implements the CLI-enabled runtime monitors: small
// stateful closures invoked on a stride over the course of a run, in
// the shape of the teacher's run.go DomainManipulator functions
// (ResetCells, SteadyStateConvergenceCheck, Log) — a function that
// closes over accumulator state and returns a closure taking the
// live domain state and reporting back through logrus or a caller-
// supplied io.Writer.
package monitor

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/domain"
)

// Manipulator is the generalized DomainManipulator: a function invoked
// once per monitored timestep with the live concentration slab, the
// current simulation time and the step size that produced it.
type Manipulator func(d *domain.Domain, slab domain.Slab, t, dt float64) error

// ErrSolverCollapse is returned by CollapseGuard when the step size has
// fallen below its configured floor. It signals the run loop to request
// a clean integrator stop, not a failure: callers should treat it as a
// non-error termination condition rather than propagate it as a fatal
// error.
var ErrSolverCollapse = errors.New("monitor: solver collapse: step size below floor")

// NegativeClamp clamps any concentration below threshold (typically a
// small negative tolerance) up to zero in place, logging the number of
// entries clamped at debug level. Non-fatal, per spec.md's numerical
// guard table.
func NegativeClamp(threshold float64, log *logrus.Logger) Manipulator {
	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		clamped := 0
		for xi := range slab {
			for k := range slab[xi] {
				if slab[xi][k] < threshold {
					slab[xi][k] = 0
					clamped++
				}
			}
		}
		if clamped > 0 && log != nil {
			log.WithFields(logrus.Fields{"t": t, "count": clamped}).Debug("monitor: clamped negative concentrations")
		}
		return nil
	}
}

// CollapseGuard detects solver collapse: the step size Δt dropping
// below minDt, the point at which the integrator is no longer making
// meaningful progress. It logs at warn level and returns
// ErrSolverCollapse, which the run loop treats as a request to stop
// cleanly rather than a fatal error.
func CollapseGuard(minDt float64, log *logrus.Logger) Manipulator {
	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		if dt < minDt {
			if log != nil {
				log.WithFields(logrus.Fields{"t": t, "dt": dt, "floor": minDt}).Warn("monitor: solver collapse detected")
			}
			return ErrSolverCollapse
		}
		return nil
	}
}

// Retention reports the total retained amount of species across the
// domain, in the style of run.go's Log: on every invocation it
// recomputes the total, prints it to w together with its change since
// the previous invocation, and keeps it for the next one.
func Retention(species cluster.Species, w io.Writer) Manipulator {
	var lastTotal float64
	iteration := 0
	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		iteration++
		balance := d.MassBalance(slab)
		total := balance[species]
		fmt.Fprintf(w, "retention[%s] iter=%-4d t=%10.4g total=%12.6g Δ=%12.6g\n",
			species, iteration, t, total, total-lastTotal)
		lastTotal = total
		return nil
	}
}

// MaxClusterConc reports the id and value of the most concentrated
// cluster anywhere in the domain at this timestep.
func MaxClusterConc(w io.Writer) Manipulator {
	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		maxID, maxXi := -1, -1
		var maxVal float64
		for xi := range slab {
			for id, v := range slab[xi] {
				if v > maxVal {
					maxVal, maxID, maxXi = v, id, xi
				}
			}
		}
		if maxID < 0 {
			fmt.Fprintf(w, "max_cluster_conc t=%10.4g: domain is empty\n", t)
			return nil
		}
		c := d.Network.Cluster(maxID)
		fmt.Fprintf(w, "max_cluster_conc t=%10.4g: id=%d (%v) xi=%d value=%12.6g\n", t, maxID, c.Composition, maxXi, maxVal)
		return nil
	}
}

// TemperatureProfile writes the current temperature at every grid
// point to w, for the -temp_profile switch.
func TemperatureProfile(w io.Writer) Manipulator {
	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		fmt.Fprintf(w, "temp_profile t=%10.4g:", t)
		for xi := range d.Grid.X {
			fmt.Fprintf(w, " %8.4g", d.Temperature.At(xi, t))
		}
		fmt.Fprintln(w)
		return nil
	}
}
