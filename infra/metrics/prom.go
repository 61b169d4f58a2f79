package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/prodplan/core/metrics"
)

// PromSink records production plans in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration prometheus.Histogram
	output   *prometheus.GaugeVec
	cost     prometheus.Gauge
	residual prometheus.Gauge
}

// NewPromSink registers plan metrics on the default Prometheus registerer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer. Collectors
// already registered by a previous sink are reused.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		plans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "production_plans_total",
			Help: "Total number of computed production plans",
		}, []string{"feasible"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "production_plan_failures_total",
			Help: "Total number of rejected production plan requests",
		}, []string{"reason"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "production_plan_duration_seconds",
			Help:    "Time spent computing a production plan",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
		output: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "production_plan_unit_output_mw",
			Help: "Output assigned to each plant in the last plan",
		}, []string{"unit", "kind"}),
		cost: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "production_plan_cost_euro",
			Help: "Hourly cost of the last plan",
		}),
		residual: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "production_plan_residual_mw",
			Help: "Requested load minus allocated total of the last plan",
		}),
	}
	var err error
	if s.plans, err = register(reg, s.plans); err != nil {
		return nil, err
	}
	if s.failures, err = register(reg, s.failures); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.output, err = register(reg, s.output); err != nil {
		return nil, err
	}
	if s.cost, err = register(reg, s.cost); err != nil {
		return nil, err
	}
	if s.residual, err = register(reg, s.residual); err != nil {
		return nil, err
	}
	return s, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordPlan updates counters and the per-unit output gauges. The gauges
// describe the last plan only: units absent from it are removed.
func (s *PromSink) RecordPlan(rec coremetrics.PlanRecord) error {
	s.plans.WithLabelValues(strconv.FormatBool(rec.Feasible)).Inc()
	s.duration.Observe(rec.Duration.Seconds())
	s.output.Reset()
	for _, u := range rec.Units {
		s.output.WithLabelValues(u.Name, u.Kind).Set(u.Output)
	}
	s.cost.Set(rec.Cost)
	s.residual.Set(rec.Residual)
	return nil
}

// RecordPlanFailure counts rejected requests by reason.
func (s *PromSink) RecordPlanFailure(f coremetrics.PlanFailure) error {
	s.failures.WithLabelValues(f.Reason).Inc()
	return nil
}
