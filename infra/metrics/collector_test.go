package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prodplan/core/events"
	coremetrics "github.com/kilianp07/prodplan/core/metrics"
	"github.com/kilianp07/prodplan/core/model"
	"github.com/kilianp07/prodplan/core/production"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

type memSink struct {
	mu       sync.Mutex
	plans    []coremetrics.PlanRecord
	failures []coremetrics.PlanFailure
}

func (m *memSink) RecordPlan(r coremetrics.PlanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans = append(m.plans, r)
	return nil
}

func (m *memSink) RecordPlanFailure(f coremetrics.PlanFailure) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, f)
	return nil
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New[any](8)
	sink := &memSink{}
	done := StartEventCollector(context.Background(), bus, sink, nil)

	res, err := production.NewPlanner(nil).Compute(model.Request{
		Load:        30,
		Fuels:       model.Fuels{Wind: 100},
		Powerplants: []model.PlantSpec{{Name: "w1", Type: "windturbine", Efficiency: 1, Pmax: 50}},
	})
	require.NoError(t, err)
	bus.Publish(events.PlanEvent{PlanID: "p1", Time: time.Now(), Result: res, Duration: time.Millisecond})
	bus.Publish(events.FailureEvent{Reason: "decode", Time: time.Now()})
	bus.Publish("ignored")
	bus.Close()
	<-done

	require.Len(t, sink.plans, 1)
	assert.Equal(t, "p1", sink.plans[0].PlanID)
	require.Len(t, sink.plans[0].Units, 1)
	assert.Equal(t, "windturbine", sink.plans[0].Units[0].Kind)
	assert.InDelta(t, 30.0, sink.plans[0].Units[0].Output, 1e-9)
	require.Len(t, sink.failures, 1)
	assert.Equal(t, "decode", sink.failures[0].Reason)
}

func TestStartEventCollector_NilBus(t *testing.T) {
	done := StartEventCollector(context.Background(), nil, &memSink{}, nil)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("collector did not stop")
	}
}
