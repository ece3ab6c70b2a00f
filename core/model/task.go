package model

import "time"

// Role identifies the execution role a plan is generated for.
type Role string

const (
	RoleFrontend Role = "Frontend"
	RoleBackend  Role = "Backend"
	RoleTest     Role = "Test"
)

// Valid reports whether the role is one of the known execution roles.
func (r Role) Valid() bool {
	switch r {
	case RoleFrontend, RoleBackend, RoleTest:
		return true
	}
	return false
}

// DisplayLabel returns the human-readable label used in backend handoff.
func (r Role) DisplayLabel() string {
	switch r {
	case RoleFrontend:
		return "Frontend Developer"
	case RoleBackend:
		return "Backend Developer"
	case RoleTest:
		return "Test Engineer"
	default:
		return string(r)
	}
}

// CandidateTask is a work item proposed by the extraction collaborator.
// It is immutable once received by the scheduler.
type CandidateTask struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	EstimatedHours float64 `json:"estimatedHours"`
	Category       string  `json:"category"`
	Priority       int     `json:"priority,omitempty"`
}

// DependencyAfter is the only dependency type the scheduler emits: the task
// starts after the referenced task.
const DependencyAfter = "after"

// TaskDependency links a task to the one scheduled immediately before it.
type TaskDependency struct {
	TaskID string `json:"taskId"`
	Type   string `json:"type"`
}

// ScheduledTask is a task with an assigned start instant. EstimatedHours is
// the task's full duration even when the allocation spans several days.
type ScheduledTask struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	EstimatedHours float64          `json:"estimatedHours"`
	StartTime      time.Time        `json:"suggestedStartTime"`
	Dependencies   []TaskDependency `json:"dependencies,omitempty"`
	Role           Role             `json:"role"`
}

// BackendTask is the projection handed to the downstream task tracker.
type BackendTask struct {
	Title       string  `json:"title"`
	ConsumeTime float64 `json:"consume_time"`
	Deadline    string  `json:"deadline"`
	UserRole    string  `json:"user_role"`
}
