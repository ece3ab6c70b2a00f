package metrics

import coremetrics "github.com/avigny/taskforge/core/metrics"

// MultiSink fans plan events out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordPlan forwards the event to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordPlan(ev coremetrics.PlanEvent) error {
	for _, s := range m.Sinks {
		if err := s.RecordPlan(ev); err != nil {
			return err
		}
	}
	return nil
}
