// Package events defines the events published on the event bus.
//
// Available event types:
//   - PlanEvent: a production plan was computed
//   - FailureEvent: a production plan request was rejected
package events
