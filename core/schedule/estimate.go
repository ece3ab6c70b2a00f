package schedule

import (
	"time"

	"github.com/avigny/taskforge/core/calendar"
	"github.com/avigny/taskforge/core/model"
)

// EstimateAvailableHours walks whole calendar days from now's day up to the
// deadline and credits workingHoursPerDay for each weekday whose full day is
// not blacked out. It is deliberately coarser than the allocator: the work
// window and partial-day slots are ignored. A deadline already in the past
// yields 0.
func EstimateAvailableHours(now, deadline time.Time, slots []model.BlackoutSlot, workingHoursPerDay float64) float64 {
	if deadline.Before(now) {
		return 0
	}
	total := 0.0
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for day.Before(deadline) {
		if !calendar.IsWeekend(day) && !fullDayBlocked(day, slots) {
			total += workingHoursPerDay
		}
		day = day.AddDate(0, 0, 1)
	}
	return total
}

func fullDayBlocked(day time.Time, slots []model.BlackoutSlot) bool {
	key := day.Format(calendar.DayFormat)
	for _, s := range slots {
		if s.IsFullDay && s.Date == key {
			return true
		}
	}
	return false
}
