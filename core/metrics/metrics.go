package metrics

import "time"

// PlanEvent summarizes one scheduling invocation.
type PlanEvent struct {
	RequestID      string
	Role           string
	TaskCount      int
	TotalHours     float64
	AvailableHours float64
	Feasible       bool
	Failed         bool
	Elapsed        time.Duration
	Time           time.Time
}

// MetricsSink records plan events for observability purposes.
type MetricsSink interface {
	RecordPlan(ev PlanEvent) error
}

// NopSink discards every event.
type NopSink struct{}

// RecordPlan implements MetricsSink.
func (NopSink) RecordPlan(PlanEvent) error { return nil }
