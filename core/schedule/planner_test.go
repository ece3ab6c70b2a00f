package schedule

import (
	"errors"
	"strings"
	"testing"

	"github.com/avigny/taskforge/core/calendar"
	"github.com/avigny/taskforge/core/model"
)

func TestPlanFeasibleWorkload(t *testing.T) {
	// 20h of work, ten business days available
	req := Request{
		Tasks:    fourHourTasks(5),
		Role:     model.RoleBackend,
		Deadline: date(2025, 6, 16, 0, 0),
		Now:      date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.TotalEstimatedHours != 20 {
		t.Fatalf("total %g, want 20", res.TotalEstimatedHours)
	}
	if res.AvailableHours < 20 {
		t.Fatalf("available %g, want >= 20", res.AvailableHours)
	}
	if !res.IsFeasible {
		t.Fatalf("expected feasible plan")
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
	if len(res.Tasks) != 5 || len(res.BackendTasks) != 5 {
		t.Fatalf("task counts %d/%d, want 5/5", len(res.Tasks), len(res.BackendTasks))
	}
}

func TestPlanPastDeadline(t *testing.T) {
	req := Request{
		Tasks:    fourHourTasks(1),
		Role:     model.RoleBackend,
		Deadline: date(2025, 5, 30, 0, 0),
		Now:      date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if res.AvailableHours != 0 {
		t.Fatalf("available %g, want 0", res.AvailableHours)
	}
	if res.IsFeasible {
		t.Fatalf("past deadline must be infeasible with pending work")
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "exceeds") {
		t.Fatalf("expected infeasibility warning, got %v", res.Warnings)
	}
}

func TestPlanEmptyTaskList(t *testing.T) {
	req := Request{
		Role:     model.RoleTest,
		Deadline: date(2025, 6, 16, 0, 0),
		Now:      date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	found := false
	for _, w := range res.Warnings {
		if strings.Contains(w, "no tasks matched") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected empty-list warning, got %v", res.Warnings)
	}
}

func TestPlanNormalizesBeforeScheduling(t *testing.T) {
	req := Request{
		Tasks:    []model.CandidateTask{{Title: "big refactor", EstimatedHours: 10}},
		Role:     model.RoleBackend,
		Deadline: date(2025, 6, 16, 0, 0),
		Now:      date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	if len(res.Tasks) != 3 {
		t.Fatalf("expected 3 normalized tasks, got %d", len(res.Tasks))
	}
	for i, task := range res.Tasks {
		if task.EstimatedHours < 1 || task.EstimatedHours > 4 {
			t.Fatalf("task %d duration %g out of [1,4]", i, task.EstimatedHours)
		}
	}
}

func TestPlanBackendProjection(t *testing.T) {
	req := Request{
		Tasks:    fourHourTasks(1),
		Role:     model.RoleBackend,
		Deadline: date(2025, 6, 16, 0, 0),
		Now:      date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if err != nil {
		t.Fatalf("plan: %v", err)
	}
	bt := res.BackendTasks[0]
	if bt.ConsumeTime != 4 {
		t.Fatalf("consume_time %g, want 4", bt.ConsumeTime)
	}
	if bt.UserRole != "Backend Developer" {
		t.Fatalf("user_role %q", bt.UserRole)
	}
	if bt.Deadline != "2025-06-02 14:30:00" {
		t.Fatalf("deadline %q, want 2025-06-02 14:30:00", bt.Deadline)
	}
}

func TestPlanBlockedCalendar(t *testing.T) {
	var slots []model.BlackoutSlot
	day := date(2025, 6, 2, 0, 0)
	for i := 0; i < 400; i++ {
		slots = append(slots, model.BlackoutSlot{Date: day.Format(calendar.DayFormat), IsFullDay: true})
		day = day.AddDate(0, 0, 1)
	}
	req := Request{
		Tasks:     fourHourTasks(1),
		Role:      model.RoleBackend,
		Deadline:  date(2026, 6, 2, 0, 0),
		Blackouts: slots,
		Now:       date(2025, 6, 2, 9, 0),
	}
	res, err := Plan(req, Config{})
	if !errors.Is(err, ErrCalendarExhausted) {
		t.Fatalf("expected ErrCalendarExhausted, got %v", err)
	}
	if res != nil {
		t.Fatalf("expected no partial result, got %+v", res)
	}
}

func TestPlanInvalidConfig(t *testing.T) {
	req := Request{Role: model.RoleBackend, Deadline: date(2025, 6, 16, 0, 0), Now: date(2025, 6, 2, 9, 0)}
	if _, err := Plan(req, Config{MaxHoursPerDay: -1}); err == nil {
		t.Fatalf("expected config error")
	}
}
