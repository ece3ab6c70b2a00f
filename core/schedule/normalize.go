package schedule

import (
	"fmt"
	"math"

	"github.com/avigny/taskforge/core/model"
)

// Normalize bounds every task's duration into [minHours, capHours]. Tasks
// within the cap pass through with the duration floored to minHours;
// oversized tasks are split into equal chunks emitted contiguously in place
// of the original, titled with a positional suffix. Order is preserved and
// the operation is idempotent on already-bounded input.
func Normalize(tasks []model.CandidateTask, capHours, minHours float64) []model.CandidateTask {
	out := make([]model.CandidateTask, 0, len(tasks))
	for _, t := range tasks {
		if t.EstimatedHours <= capHours {
			t.EstimatedHours = math.Max(minHours, t.EstimatedHours)
			out = append(out, t)
			continue
		}
		chunks := int(math.Ceil(t.EstimatedHours / capHours))
		per := t.EstimatedHours / float64(chunks)
		per = math.Min(capHours, math.Max(minHours, per))
		for i := 1; i <= chunks; i++ {
			sub := t
			sub.Title = fmt.Sprintf("%s (%d/%d)", t.Title, i, chunks)
			sub.EstimatedHours = per
			out = append(out, sub)
		}
	}
	return out
}

// TotalHours sums the estimated duration of all tasks.
func TotalHours(tasks []model.CandidateTask) float64 {
	total := 0.0
	for _, t := range tasks {
		total += t.EstimatedHours
	}
	return total
}
