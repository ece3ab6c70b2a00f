package schedule

import (
	"fmt"
	"time"

	"github.com/avigny/taskforge/core/calendar"
	"github.com/avigny/taskforge/core/model"
)

// dayWorkload records the hours committed to one calendar day across all
// tasks of a single allocation run.
type dayWorkload struct {
	date       string
	totalHours float64
	entries    []dayEntry
}

type dayEntry struct {
	taskIndex int
	hours     float64
	at        time.Time
}

// allocator walks tasks in order and assigns start instants. The cursor and
// the per-day workload map are scoped to one run and mutate only inside the
// allocation loop.
type allocator struct {
	cursor         time.Time
	days           map[string]*dayWorkload
	maxHoursPerDay float64
	slots          []model.BlackoutSlot
	lookaheadDays  int
}

func newAllocator(start time.Time, maxHoursPerDay float64, slots []model.BlackoutSlot, lookaheadDays int) *allocator {
	return &allocator{
		cursor:         start,
		days:           make(map[string]*dayWorkload),
		maxHoursPerDay: maxHoursPerDay,
		slots:          slots,
		lookaheadDays:  lookaheadDays,
	}
}

func (a *allocator) day(t time.Time) *dayWorkload {
	key := t.Format(calendar.DayFormat)
	d, ok := a.days[key]
	if !ok {
		d = &dayWorkload{date: key}
		a.days[key] = d
	}
	return d
}

// place consumes hours for one task, spilling across days as needed, and
// returns the instant at which allocation for the task first began. The
// cursor is left positioned for the next task.
func (a *allocator) place(taskIndex int, hours float64) (time.Time, error) {
	remaining := hours
	var start time.Time
	for remaining > 0 {
		// snap into the work window
		if a.cursor.Before(calendar.WorkdayStart(a.cursor)) {
			a.cursor = calendar.WorkdayStart(a.cursor)
		}
		if !a.cursor.Before(calendar.WorkdayEnd(a.cursor)) {
			a.cursor = calendar.WorkdayStart(a.cursor.AddDate(0, 0, 1))
			continue
		}
		if calendar.IsWeekend(a.cursor) || calendar.IsBlocked(a.cursor, a.slots) {
			next, err := calendar.NextAvailable(a.cursor, a.slots, a.lookaheadDays)
			if err != nil {
				return time.Time{}, err
			}
			a.cursor = next
			continue
		}

		day := a.day(a.cursor)
		capacity := a.maxHoursPerDay - day.totalHours
		if until := calendar.WorkdayEnd(a.cursor).Sub(a.cursor).Hours(); until < capacity {
			capacity = until
		}
		if remaining < capacity {
			capacity = remaining
		}
		if capacity > 0 {
			if start.IsZero() {
				start = a.cursor
			}
			day.totalHours += capacity
			day.entries = append(day.entries, dayEntry{taskIndex: taskIndex, hours: capacity, at: a.cursor})
			remaining -= capacity
			a.cursor = a.cursor.Add(hoursDuration(capacity))
			if remaining <= 0 {
				return start, nil
			}
		}
		next, err := calendar.NextAvailable(a.cursor, a.slots, a.lookaheadDays)
		if err != nil {
			return time.Time{}, err
		}
		a.cursor = next
	}
	return start, nil
}

// Allocate assigns each task a start instant respecting the work window,
// blackout slots and the per-day cumulative cap, and chains every task after
// its predecessor. The task order is never changed and tasks never run in
// parallel; a task may transparently span several days, in which case only
// its aggregate duration and first start instant are exposed.
func Allocate(tasks []model.CandidateTask, role model.Role, start time.Time, maxHoursPerDay float64, slots []model.BlackoutSlot, lookaheadDays int) ([]model.ScheduledTask, error) {
	alloc := newAllocator(start, maxHoursPerDay, slots, lookaheadDays)
	out := make([]model.ScheduledTask, 0, len(tasks))
	for i, c := range tasks {
		at, err := alloc.place(i, c.EstimatedHours)
		if err != nil {
			return nil, fmt.Errorf("allocate %q: %w", c.Title, ErrCalendarExhausted)
		}
		task := model.ScheduledTask{
			ID:             fmt.Sprintf("task-%d", i+1),
			Title:          c.Title,
			Description:    c.Description,
			EstimatedHours: c.EstimatedHours,
			StartTime:      at,
			Role:           role,
		}
		if i > 0 {
			task.Dependencies = []model.TaskDependency{{TaskID: out[i-1].ID, Type: model.DependencyAfter}}
		}
		out = append(out, task)
	}
	return out, nil
}

func hoursDuration(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
