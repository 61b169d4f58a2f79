package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/prodplan/core/events"
	"github.com/kilianp07/prodplan/core/model"
	coremqtt "github.com/kilianp07/prodplan/core/mqtt"
	"github.com/kilianp07/prodplan/core/planlog"
	"github.com/kilianp07/prodplan/core/production"
	"github.com/kilianp07/prodplan/internal/eventbus"
)

type memStore struct {
	mu   sync.Mutex
	recs []planlog.LogRecord
	err  error
}

func (m *memStore) Append(_ context.Context, r planlog.LogRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recs = append(m.recs, r)
	return m.err
}
func (m *memStore) Query(context.Context, planlog.LogQuery) ([]planlog.LogRecord, error) {
	return nil, nil
}
func (m *memStore) Close() error { return nil }

type memPublisher struct {
	mu   sync.Mutex
	msgs []coremqtt.PlanMessage
}

func (p *memPublisher) PublishPlan(_ context.Context, msg coremqtt.PlanMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *memPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.msgs)
}

func planEvent(t *testing.T) events.PlanEvent {
	t.Helper()
	req := model.Request{
		Load:  50,
		Fuels: model.Fuels{Gas: 10, Wind: 50},
		Powerplants: []model.PlantSpec{
			{Name: "w1", Type: "windturbine", Efficiency: 1, Pmax: 40},
			{Name: "g1", Type: "gasfired", Efficiency: 0.5, Pmin: 10, Pmax: 100},
		},
	}
	res, err := production.NewPlanner(nil).Compute(req)
	require.NoError(t, err)
	return events.PlanEvent{PlanID: "p1", Time: time.UnixMilli(1700000000000), Request: req, Result: res}
}

func TestPlanRecorder(t *testing.T) {
	bus := eventbus.New[any](4)
	store := &memStore{err: errors.New("disk full")}
	pub := &memPublisher{}
	done := StartPlanRecorder(context.Background(), bus, store, pub, nil)

	bus.Publish(events.FailureEvent{Reason: "validation"})
	bus.Publish(planEvent(t))
	require.Eventually(t, func() bool { return pub.count() == 1 }, time.Second, 5*time.Millisecond)
	bus.Close()
	<-done

	require.Len(t, store.recs, 1)
	rec := store.recs[0]
	assert.Equal(t, "p1", rec.PlanID)
	assert.Equal(t, []model.PlanEntry{{Name: "w1", P: 20}, {Name: "g1", P: 30}}, rec.Plan)
	assert.True(t, rec.Feasible)

	msg := pub.msgs[0]
	assert.Equal(t, "p1", msg.PlanID)
	assert.Equal(t, int64(1700000000000), msg.Timestamp)
	assert.Equal(t, rec.Plan, msg.Plan)
}

func TestPlanRecorder_StopsOnCancel(t *testing.T) {
	bus := eventbus.New[any](1)
	ctx, cancel := context.WithCancel(context.Background())
	done := StartPlanRecorder(ctx, bus, nil, nil, nil)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("recorder did not stop")
	}
}
