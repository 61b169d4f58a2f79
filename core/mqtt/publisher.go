package mqtt

import (
	"context"
	"time"

	"github.com/kilianp07/prodplan/core/model"
)

// PlanMessage is the payload published for every computed plan.
type PlanMessage struct {
	MessageID string            `json:"message_id"`
	PlanID    string            `json:"plan_id"`
	Timestamp int64             `json:"timestamp"`
	Load      float64           `json:"load"`
	Total     float64           `json:"total"`
	Feasible  bool              `json:"feasible"`
	Plan      []model.PlanEntry `json:"plan"`
}

// NewPlanMessage builds the message for a plan computed at t. The message ID
// is assigned by the publisher.
func NewPlanMessage(planID string, t time.Time, load, total float64, feasible bool, plan []model.PlanEntry) PlanMessage {
	return PlanMessage{
		PlanID:    planID,
		Timestamp: t.UnixMilli(),
		Load:      load,
		Total:     total,
		Feasible:  feasible,
		Plan:      plan,
	}
}

// PlanPublisher distributes computed plans to downstream consumers.
type PlanPublisher interface {
	PublishPlan(ctx context.Context, msg PlanMessage) error
}

// NopPublisher discards plans.
type NopPublisher struct{}

func (NopPublisher) PublishPlan(context.Context, PlanMessage) error { return nil }
