package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/avigny/taskforge/core/metrics"
)

func TestPromSinkRecordsPlan(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	ev := coremetrics.PlanEvent{Role: "Backend", TaskCount: 5, TotalHours: 20, Feasible: true}
	if err := sink.RecordPlan(ev); err != nil {
		t.Fatalf("record: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	if !names["plan_runs_total"] || !names["plan_total_hours"] {
		t.Fatalf("missing plan metrics, got %v", names)
	}
}

func TestPromSinkRecordsFailure(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	if err := sink.RecordPlan(coremetrics.PlanEvent{Failed: true}); err != nil {
		t.Fatalf("record: %v", err)
	}
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "plan_scheduling_errors_total" {
			if f.GetMetric()[0].GetCounter().GetValue() != 1 {
				t.Fatalf("failure counter %v, want 1", f.GetMetric()[0].GetCounter().GetValue())
			}
			return
		}
	}
	t.Fatalf("failure counter not found")
}

func TestMultiSinkFanout(t *testing.T) {
	reg := prometheus.NewRegistry()
	prom, err := NewPromSinkWithRegistry(coremetrics.Config{}, reg)
	if err != nil {
		t.Fatalf("sink: %v", err)
	}
	multi := NewMultiSink(prom, coremetrics.NopSink{})
	if err := multi.RecordPlan(coremetrics.PlanEvent{Role: "Test", Feasible: false}); err != nil {
		t.Fatalf("record: %v", err)
	}
}
