package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/avigny/taskforge/core/model"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestInWorkWindow(t *testing.T) {
	cases := []struct {
		at   time.Time
		want bool
	}{
		{date(2025, 6, 2, 10, 30), true},
		{date(2025, 6, 2, 10, 29), false},
		{date(2025, 6, 2, 17, 59), true},
		{date(2025, 6, 2, 18, 0), false},
		{date(2025, 6, 2, 9, 0), false},
	}
	for _, c := range cases {
		if got := InWorkWindow(c.at); got != c.want {
			t.Fatalf("InWorkWindow(%v) = %t, want %t", c.at, got, c.want)
		}
	}
}

func TestIsWeekend(t *testing.T) {
	if IsWeekend(date(2025, 6, 2, 12, 0)) {
		t.Fatalf("monday flagged as weekend")
	}
	if !IsWeekend(date(2025, 6, 7, 12, 0)) || !IsWeekend(date(2025, 6, 8, 12, 0)) {
		t.Fatalf("saturday/sunday not flagged as weekend")
	}
}

func TestIsBlockedFullDay(t *testing.T) {
	slots := []model.BlackoutSlot{{Date: "2025-06-03", IsFullDay: true}}
	if !IsBlocked(date(2025, 6, 3, 10, 30), slots) {
		t.Fatalf("full-day slot did not block")
	}
	if IsBlocked(date(2025, 6, 4, 10, 30), slots) {
		t.Fatalf("unrelated day blocked")
	}
}

func TestIsBlockedPartialInclusive(t *testing.T) {
	slots := []model.BlackoutSlot{{Date: "2025-06-03", StartTime: "13:00", EndTime: "15:00"}}
	cases := []struct {
		at   time.Time
		want bool
	}{
		{date(2025, 6, 3, 12, 59), false},
		{date(2025, 6, 3, 13, 0), true},
		{date(2025, 6, 3, 14, 0), true},
		{date(2025, 6, 3, 15, 0), true}, // end bound is inclusive
		{date(2025, 6, 3, 15, 1), false},
	}
	for _, c := range cases {
		if got := IsBlocked(c.at, slots); got != c.want {
			t.Fatalf("IsBlocked(%v) = %t, want %t", c.at, got, c.want)
		}
	}
}

func TestIsBlockedMalformedSlot(t *testing.T) {
	// partial slot missing its end time is non-blocking
	slots := []model.BlackoutSlot{{Date: "2025-06-03", StartTime: "13:00"}}
	if IsBlocked(date(2025, 6, 3, 13, 30), slots) {
		t.Fatalf("malformed slot should not block")
	}
}

func TestNextAvailableSkipsWeekend(t *testing.T) {
	got, err := NextAvailable(date(2025, 6, 6, 14, 0), nil, 366)
	if err != nil {
		t.Fatalf("next available: %v", err)
	}
	if want := date(2025, 6, 9, 10, 30); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextAvailableSkipsBlackout(t *testing.T) {
	slots := []model.BlackoutSlot{{Date: "2025-06-09", IsFullDay: true}}
	got, err := NextAvailable(date(2025, 6, 6, 14, 0), slots, 366)
	if err != nil {
		t.Fatalf("next available: %v", err)
	}
	if want := date(2025, 6, 10, 10, 30); !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestNextAvailableExhausted(t *testing.T) {
	var slots []model.BlackoutSlot
	day := date(2025, 6, 2, 0, 0)
	for i := 0; i < 40; i++ {
		slots = append(slots, model.BlackoutSlot{Date: day.Format(DayFormat), IsFullDay: true})
		day = day.AddDate(0, 0, 1)
	}
	_, err := NextAvailable(date(2025, 6, 2, 9, 0), slots, 30)
	if !errors.Is(err, ErrNoAvailableDay) {
		t.Fatalf("expected ErrNoAvailableDay, got %v", err)
	}
}
