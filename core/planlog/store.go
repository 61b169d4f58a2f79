package planlog

import (
	"context"
	"time"

	"github.com/kilianp07/prodplan/core/model"
)

// LogRecord captures one production plan request and its result.
type LogRecord struct {
	PlanID    string            `json:"plan_id"`
	Timestamp time.Time         `json:"timestamp"`
	Request   model.Request     `json:"request"`
	Plan      []model.PlanEntry `json:"plan"`
	Total     float64           `json:"total"`
	Residual  float64           `json:"residual"`
	Cost      float64           `json:"cost"`
	Feasible  bool              `json:"feasible"`
}

// LogQuery defines filters for retrieving records. Zero values match
// everything.
type LogQuery struct {
	Start time.Time
	End   time.Time
	// Plant matches records whose request contains the named plant.
	Plant string
	// Feasible restricts results to feasible or infeasible plans.
	Feasible *bool
	// Limit caps the number of returned records, keeping the most recent.
	Limit int
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// Match reports whether r satisfies the filters of q, ignoring Limit.
func (q LogQuery) Match(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Feasible != nil && r.Feasible != *q.Feasible {
		return false
	}
	if q.Plant == "" {
		return true
	}
	for _, p := range r.Request.Powerplants {
		if p.Name == q.Plant {
			return true
		}
	}
	return false
}

func applyLimit(recs []LogRecord, limit int) []LogRecord {
	if limit > 0 && len(recs) > limit {
		return recs[len(recs)-limit:]
	}
	return recs
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error              { return nil }
func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) { return nil, nil }
func (NopStore) Close() error                                         { return nil }
