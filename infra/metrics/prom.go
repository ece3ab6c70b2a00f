package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/avigny/taskforge/core/metrics"
)

// PromSink records plan events in Prometheus metrics.
type PromSink struct {
	plans    *prometheus.CounterVec
	failures prometheus.Counter
	hours    prometheus.Histogram
}

// NewPromSink registers planner metrics on the default Prometheus registerer.
// The Prometheus server should be started separately using cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	plans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_runs_total",
		Help: "Total number of scheduling runs",
	}, []string{"role", "feasible"})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "plan_scheduling_errors_total",
		Help: "Scheduling runs aborted by an exhausted calendar",
	})
	hours := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "plan_total_hours",
		Help:    "Total estimated hours per scheduling run",
		Buckets: []float64{4, 8, 16, 40, 80, 160},
	})

	if err := reg.Register(plans); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			plans = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(failures); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			failures = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(hours); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			hours = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{plans: plans, failures: failures, hours: hours}, nil
}

// RecordPlan increments the run counters and observes the workload size.
func (s *PromSink) RecordPlan(ev coremetrics.PlanEvent) error {
	if ev.Failed {
		s.failures.Inc()
		return nil
	}
	s.plans.WithLabelValues(ev.Role, strconv.FormatBool(ev.Feasible)).Inc()
	s.hours.Observe(ev.TotalHours)
	return nil
}
