package calendar

import (
	"errors"
	"time"

	"github.com/avigny/taskforge/core/model"
)

// DayFormat is the calendar-day key used to match blackout slots.
const DayFormat = "2006-01-02"

// Work window boundaries, local reference time.
const (
	WorkStartHour   = 10
	WorkStartMinute = 30
	WorkEndHour     = 18
)

// ErrNoAvailableDay is returned when day stepping exhausts its lookahead
// horizon without finding a working day.
var ErrNoAvailableDay = errors.New("no available working day within lookahead horizon")

// WorkdayStart returns t's calendar day anchored at 10:30.
func WorkdayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), WorkStartHour, WorkStartMinute, 0, 0, t.Location())
}

// WorkdayEnd returns t's calendar day at 18:00.
func WorkdayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), WorkEndHour, 0, 0, 0, t.Location())
}

// InWorkWindow reports whether t falls inside the daily work window
// [10:30, 18:00).
func InWorkWindow(t time.Time) bool {
	return !t.Before(WorkdayStart(t)) && t.Before(WorkdayEnd(t))
}

// IsWeekend reports whether t falls on a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsBlocked reports whether t is covered by any blackout slot. A full-day
// slot blocks the whole matching day; a partial slot blocks the inclusive
// range [startTime, endTime]. A partial slot missing either bound is
// non-blocking.
func IsBlocked(t time.Time, slots []model.BlackoutSlot) bool {
	day := t.Format(DayFormat)
	for _, s := range slots {
		if s.Date != day {
			continue
		}
		if s.IsFullDay {
			return true
		}
		start, okStart := clockOn(t, s.StartTime)
		end, okEnd := clockOn(t, s.EndTime)
		if !okStart || !okEnd {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			return true
		}
	}
	return false
}

// NextAvailable steps forward whole calendar days starting with the day
// after t and returns the 10:30 anchor of the first day that is neither a
// weekend nor blocked at that anchor. maxDays bounds the search; when the
// horizon is exhausted ErrNoAvailableDay is returned.
func NextAvailable(t time.Time, slots []model.BlackoutSlot, maxDays int) (time.Time, error) {
	cur := t
	for i := 0; i < maxDays; i++ {
		cur = WorkdayStart(cur.AddDate(0, 0, 1))
		if IsWeekend(cur) || IsBlocked(cur, slots) {
			continue
		}
		return cur, nil
	}
	return time.Time{}, ErrNoAvailableDay
}

// clockOn places an HH:MM clock string on t's calendar day.
func clockOn(t time.Time, clock string) (time.Time, bool) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(t.Year(), t.Month(), t.Day(), parsed.Hour(), parsed.Minute(), 0, 0, t.Location()), true
}
