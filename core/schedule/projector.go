package schedule

import (
	"time"

	"github.com/avigny/taskforge/core/calendar"
	"github.com/avigny/taskforge/core/model"
)

// ProjectCompletion walks forward from a task's start instant through the
// work window, weekends and blackout slots to the instant at which the task
// completes. It applies the same stepping rules as the allocator but ignores
// workload committed by other tasks sharing those days.
func ProjectCompletion(start time.Time, hours float64, slots []model.BlackoutSlot, lookaheadDays int) (time.Time, error) {
	cur := start
	remaining := hours
	for remaining > 0 {
		if cur.Before(calendar.WorkdayStart(cur)) {
			cur = calendar.WorkdayStart(cur)
		}
		if !cur.Before(calendar.WorkdayEnd(cur)) {
			cur = calendar.WorkdayStart(cur.AddDate(0, 0, 1))
			continue
		}
		if calendar.IsWeekend(cur) || calendar.IsBlocked(cur, slots) {
			next, err := calendar.NextAvailable(cur, slots, lookaheadDays)
			if err != nil {
				return time.Time{}, err
			}
			cur = next
			continue
		}
		today := calendar.WorkdayEnd(cur).Sub(cur).Hours()
		if remaining < today {
			today = remaining
		}
		cur = cur.Add(hoursDuration(today))
		remaining -= today
		if remaining > 0 {
			next, err := calendar.NextAvailable(cur, slots, lookaheadDays)
			if err != nil {
				return time.Time{}, err
			}
			cur = next
		}
	}
	return cur, nil
}
