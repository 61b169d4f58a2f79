package production

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/kilianp07/prodplan/core/logger"
	"github.com/kilianp07/prodplan/core/model"
)

// Result is the outcome of one planning run.
type Result struct {
	// Units are the costed plants in merit order.
	Units []model.Unit
	// Allocations are parallel to Units.
	Allocations []model.Allocation
	Load        float64
	Total       float64
	// Residual is Load minus Total.
	Residual float64
	// Cost is the hourly cost of the plan in euro.
	Cost     float64
	Feasible bool
}

// Plan returns the rounded, externally visible plan.
func (r Result) Plan() []model.PlanEntry { return Assemble(r.Allocations) }

// Planner runs the cost model, the merit order ranking and the allocation
// engine for a request. A Planner holds no per-request state and can be used
// concurrently.
type Planner struct {
	log    logger.Logger
	strict bool
}

// Option configures a Planner.
type Option func(*Planner)

// WithStrictLoad makes Compute return an *model.InfeasibleLoadError when the
// allocated total misses the load by more than Tolerance.
func WithStrictLoad(strict bool) Option {
	return func(p *Planner) { p.strict = strict }
}

// NewPlanner returns a Planner logging to log. A nil logger disables logging.
func NewPlanner(log logger.Logger, opts ...Option) *Planner {
	if log == nil {
		log = nopLogger{}
	}
	p := &Planner{log: log}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Compute builds the production plan for req. An unknown plant type aborts
// the computation and no result is returned. In strict mode an infeasible
// load returns the best-effort result together with the error.
func (p *Planner) Compute(req model.Request) (Result, error) {
	units, err := CostAll(req.Powerplants, req.Fuels)
	if err != nil {
		p.log.Errorf("cost model: %v", err)
		return Result{}, err
	}
	ranked := MeritOrder(units)
	p.log.Debugw("merit order", map[string]any{"order": describeOrder(ranked)})

	outputs := Allocate(ranked, req.Load)
	res := Result{
		Units:       ranked,
		Allocations: make([]model.Allocation, len(ranked)),
		Load:        req.Load,
		Total:       floats.Sum(outputs),
	}
	for i, u := range ranked {
		res.Allocations[i] = model.Allocation{Name: u.Name, Output: outputs[i]}
		res.Cost += outputs[i] * u.MarginalCost
	}
	res.Residual = req.Load - res.Total
	res.Feasible = math.Abs(res.Residual) <= Tolerance
	p.log.Infof("production plan for %.1f MW: total %.1f MW, cost %.2f euro", res.Load, res.Total, res.Cost)

	if !res.Feasible {
		p.log.Warnf("load %.1f MW not met: allocated %.1f MW", res.Load, res.Total)
		if p.strict {
			return res, &model.InfeasibleLoadError{Target: res.Load, Allocated: res.Total}
		}
	}
	return res, nil
}

func describeOrder(units []model.Unit) string {
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("%s(%.2f)", u.Name, u.MarginalCost)
	}
	return strings.Join(parts, ", ")
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
