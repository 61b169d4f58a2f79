package app

import (
	"context"
	"time"

	"github.com/kilianp07/prodplan/core/events"
	coremon "github.com/kilianp07/prodplan/core/monitoring"
	coremqtt "github.com/kilianp07/prodplan/core/mqtt"
	"github.com/kilianp07/prodplan/core/planlog"
	"github.com/kilianp07/prodplan/infra/logger"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

const publishTimeout = 5 * time.Second

// StartPlanRecorder subscribes to bus and, for every computed plan, appends a
// record to store and hands the plan to pub. It stops when ctx is canceled or
// the bus is closed; the returned channel is closed once it has stopped.
func StartPlanRecorder(ctx context.Context, bus *eventbus.Bus[any], store planlog.LogStore, pub coremqtt.PlanPublisher, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil {
		close(done)
		return done
	}
	if store == nil {
		store = planlog.NopStore{}
	}
	if pub == nil {
		pub = coremqtt.NopPublisher{}
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
				if pe, ok := ev.(events.PlanEvent); ok {
					recordPlan(ctx, pe, store, pub, log)
				}
			}
		}
	}()
	return done
}

func recordPlan(ctx context.Context, e events.PlanEvent, store planlog.LogStore, pub coremqtt.PlanPublisher, log logger.Logger) {
	defer func() {
		coremon.CapturePanic(recover(), map[string]string{"module": "recorder", "plan_id": e.PlanID})
	}()
	plan := e.Result.Plan()
	rec := planlog.LogRecord{
		PlanID:    e.PlanID,
		Timestamp: e.Time,
		Request:   e.Request,
		Plan:      plan,
		Total:     e.Result.Total,
		Residual:  e.Result.Residual,
		Cost:      e.Result.Cost,
		Feasible:  e.Result.Feasible,
	}
	if err := store.Append(ctx, rec); err != nil {
		log.Errorf("append plan log %s: %v", e.PlanID, err)
		coremon.CaptureException(err, map[string]string{"module": "planlog", "plan_id": e.PlanID})
	}
	pctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	msg := coremqtt.NewPlanMessage(e.PlanID, e.Time, e.Result.Load, e.Result.Total, e.Result.Feasible, plan)
	if err := pub.PublishPlan(pctx, msg); err != nil {
		log.Errorf("publish plan %s: %v", e.PlanID, err)
	}
}
