package metrics

import (
	"context"

	"github.com/kilianp07/prodplan/core/events"
	coremetrics "github.com/kilianp07/prodplan/core/metrics"
	"github.com/kilianp07/prodplan/infra/logger"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records plan events
// in sink until ctx is canceled or the bus is closed. The returned channel
// is closed once the collector has stopped.
func StartEventCollector(ctx context.Context, bus *eventbus.Bus[any], sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				record(ev, sink, log)
			}
		}
	}()
	return done
}

func record(ev any, sink coremetrics.MetricsSink, log logger.Logger) {
	switch e := ev.(type) {
	case events.PlanEvent:
		rec := coremetrics.NewPlanRecord(e.PlanID, e.Time, e.Result, e.Duration)
		if err := sink.RecordPlan(rec); err != nil {
			log.Errorf("record plan %s: %v", e.PlanID, err)
		}
	case events.FailureEvent:
		if r, ok := sink.(coremetrics.FailureRecorder); ok {
			if err := r.RecordPlanFailure(coremetrics.PlanFailure{Reason: e.Reason, Time: e.Time}); err != nil {
				log.Errorf("record failure: %v", err)
			}
		}
	}
}
