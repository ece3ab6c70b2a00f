package schedule

import (
	"fmt"
	"time"

	"github.com/avigny/taskforge/core/model"
)

// BackendTimeLayout is the serialization format of projected deadlines in
// the backend handoff.
const BackendTimeLayout = "2006-01-02 15:04:05"

// Request carries the inputs of one scheduling invocation. Tasks are
// expected to be role-filtered already and arrive in execution order.
type Request struct {
	Tasks     []model.CandidateTask
	Role      model.Role
	Deadline  time.Time
	Blackouts []model.BlackoutSlot
	// WorkingHoursPerDay and MaxHoursPerDay override the configured
	// defaults when positive. They default equal but are independent:
	// the former feeds the estimate, the latter caps allocation.
	WorkingHoursPerDay float64
	MaxHoursPerDay     float64
	// Now anchors the schedule; the zero value means the wall clock.
	Now time.Time
}

// Result is the full outcome of one scheduling invocation.
type Result struct {
	Tasks               []model.ScheduledTask `json:"tasks"`
	TotalEstimatedHours float64               `json:"totalEstimatedHours"`
	AvailableHours      float64               `json:"availableHours"`
	IsFeasible          bool                  `json:"isFeasible"`
	Warnings            []string              `json:"warnings,omitempty"`
	BackendTasks        []model.BackendTask   `json:"backendTasks"`
}

// Plan normalizes the candidate tasks, allocates start instants, projects
// completion instants and judges feasibility against the hours available
// before the deadline. It is a pure function of its inputs with no shared
// state across calls; on a calendar with no reachable working day it returns
// an error wrapping ErrCalendarExhausted and no partial schedule.
func Plan(req Request, cfg Config) (*Result, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("planner config: %w", err)
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	workingHours := req.WorkingHoursPerDay
	if workingHours <= 0 {
		workingHours = cfg.WorkingHoursPerDay
	}
	maxHours := req.MaxHoursPerDay
	if maxHours <= 0 {
		maxHours = cfg.MaxHoursPerDay
	}

	normalized := Normalize(req.Tasks, cfg.GranularityCapHours, cfg.GranularityMinHours)
	total := TotalHours(normalized)
	available := EstimateAvailableHours(req.Now, req.Deadline, req.Blackouts, workingHours)

	feasible := total <= available
	var warnings []string
	if !feasible {
		warnings = append(warnings, fmt.Sprintf(
			"total estimated work (%gh) exceeds the %gh available before the deadline; extend the deadline or reduce scope",
			total, available))
	}
	if len(normalized) == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"no tasks matched the %s role; check the source document", req.Role))
	}

	scheduled, err := Allocate(normalized, req.Role, req.Now, maxHours, req.Blackouts, cfg.MaxLookaheadDays)
	if err != nil {
		return nil, err
	}

	backend := make([]model.BackendTask, 0, len(scheduled))
	for _, t := range scheduled {
		done, err := ProjectCompletion(t.StartTime, t.EstimatedHours, req.Blackouts, cfg.MaxLookaheadDays)
		if err != nil {
			return nil, fmt.Errorf("project completion of %q: %w", t.Title, ErrCalendarExhausted)
		}
		backend = append(backend, model.BackendTask{
			Title:       t.Title,
			ConsumeTime: t.EstimatedHours,
			Deadline:    done.Format(BackendTimeLayout),
			UserRole:    t.Role.DisplayLabel(),
		})
	}

	return &Result{
		Tasks:               scheduled,
		TotalEstimatedHours: total,
		AvailableHours:      available,
		IsFeasible:          feasible,
		Warnings:            warnings,
		BackendTasks:        backend,
	}, nil
}
