package metrics

import (
	"time"

	"github.com/kilianp07/prodplan/core/production"
)

// UnitOutput is the output assigned to one plant in a plan.
type UnitOutput struct {
	Name         string
	Kind         string
	Output       float64
	Capacity     float64
	MarginalCost float64
}

// PlanRecord summarises a computed production plan.
type PlanRecord struct {
	PlanID   string
	Time     time.Time
	Load     float64
	Total    float64
	Residual float64
	Cost     float64
	Feasible bool
	Duration time.Duration
	Units    []UnitOutput
}

// NewPlanRecord builds a PlanRecord from a planner result.
func NewPlanRecord(id string, at time.Time, res production.Result, d time.Duration) PlanRecord {
	rec := PlanRecord{
		PlanID:   id,
		Time:     at,
		Load:     res.Load,
		Total:    res.Total,
		Residual: res.Residual,
		Cost:     res.Cost,
		Feasible: res.Feasible,
		Duration: d,
		Units:    make([]UnitOutput, len(res.Units)),
	}
	for i, u := range res.Units {
		rec.Units[i] = UnitOutput{
			Name:         u.Name,
			Kind:         u.Kind.String(),
			Output:       res.Allocations[i].Output,
			Capacity:     u.Capacity,
			MarginalCost: u.MarginalCost,
		}
	}
	return rec
}

// MetricsSink records computed plans for observability purposes.
type MetricsSink interface {
	RecordPlan(rec PlanRecord) error
}

// PlanFailure describes a rejected request.
type PlanFailure struct {
	Reason string
	Time   time.Time
}

// FailureRecorder is implemented by sinks able to count rejected requests.
type FailureRecorder interface {
	RecordPlanFailure(f PlanFailure) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordPlan(PlanRecord) error         { return nil }
func (NopSink) RecordPlanFailure(PlanFailure) error { return nil }
