package monitor

import (
	"fmt"
	"io"
	"math"

	"github.com/Knetic/govaluate"
	"gonum.org/v1/gonum/stat"

	"github.com/fusionwall/clustercore/cluster"
	"github.com/fusionwall/clustercore/domain"
)

// defaultFunctions carries over exp, log and log10 from the teacher's
// NewOutputter default function set so derived-statistic expressions
// can use the same vocabulary as the original output-variable
// expressions; that set's sum function is not included.
func defaultFunctions() map[string]govaluate.ExpressionFunction {
	return map[string]govaluate.ExpressionFunction{
		"exp": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("monitor: got %d arguments for 'exp', need 1", len(arg))
			}
			return math.Exp(arg[0].(float64)), nil
		},
		"log": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("monitor: got %d arguments for 'log', need 1", len(arg))
			}
			return math.Log(arg[0].(float64)), nil
		},
		"log10": func(arg ...interface{}) (interface{}, error) {
			if len(arg) != 1 {
				return nil, fmt.Errorf("monitor: got %d arguments for 'log10', need 1", len(arg))
			}
			return math.Log10(arg[0].(float64)), nil
		},
	}
}

// HeliumStats reports cumulative helium population, total
// concentration and mean He cluster size (weighted by concentration), plus
// any user-supplied derived statistic expressed over the variables
// "cumulative", "conc" and "mean_size" — covering -helium_cumul,
// -helium_conc and -mean_size together, since all three share the same
// underlying pass over the domain.
type HeliumStats struct {
	Expression string // optional govaluate expression over cumulative/conc/mean_size
}

// Monitor builds the Manipulator closure, resolving the optional
// expression once so a malformed expression fails fast at setup
// instead of on the first invocation.
func (h HeliumStats) Monitor(w io.Writer) (Manipulator, error) {
	var expr *govaluate.EvaluableExpression
	if h.Expression != "" {
		e, err := govaluate.NewEvaluableExpressionWithFunctions(h.Expression, defaultFunctions())
		if err != nil {
			return nil, fmt.Errorf("monitor: helium_stats expression: %w", err)
		}
		expr = e
	}

	var cumulative float64

	return func(d *domain.Domain, slab domain.Slab, t, dt float64) error {
		var sizes, weights []float64
		var conc float64
		for xi := range slab {
			for id, v := range slab[xi] {
				if v == 0 {
					continue
				}
				c := d.Network.Cluster(id)
				if c.Kind != cluster.KindRegular {
					continue
				}
				he := c.Composition.Count(cluster.He)
				if he == 0 {
					continue
				}
				sizes = append(sizes, float64(he))
				weights = append(weights, v)
				conc += v
			}
		}
		var meanSize float64
		if len(sizes) > 0 {
			meanSize = stat.Mean(sizes, weights)
		}
		cumulative += conc

		fmt.Fprintf(w, "helium_stats t=%10.4g cumulative=%12.6g conc=%12.6g mean_size=%8.4g\n", t, cumulative, conc, meanSize)

		if expr != nil {
			result, err := expr.Evaluate(map[string]interface{}{
				"cumulative": cumulative,
				"conc":       conc,
				"mean_size":  meanSize,
			})
			if err != nil {
				return fmt.Errorf("monitor: evaluating helium_stats expression: %w", err)
			}
			fmt.Fprintf(w, "helium_stats derived t=%10.4g: %v\n", t, result)
		}
		return nil
	}, nil
}
