package events

import (
	"time"

	"github.com/kilianp07/prodplan/core/model"
	"github.com/kilianp07/prodplan/core/production"
)

// PlanEvent is published after a production plan has been computed.
type PlanEvent struct {
	PlanID   string
	Time     time.Time
	Request  model.Request
	Result   production.Result
	Duration time.Duration
}

// FailureEvent is published when a request could not be planned.
type FailureEvent struct {
	Reason string
	Err    error
	Time   time.Time
}
