package extract

import (
	"context"

	"github.com/avigny/taskforge/core/model"
)

// TaskSource proposes candidate tasks for a role from a requirements
// document. Implementations are thin, replaceable collaborators; the
// scheduler itself never depends on one.
type TaskSource interface {
	ExtractTasks(ctx context.Context, prd string, role model.Role) ([]model.CandidateTask, error)
}
