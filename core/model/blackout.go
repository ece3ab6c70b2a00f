package model

// BlackoutSlot marks a calendar day, or a time range within it, as
// unavailable for work. When IsFullDay is false both StartTime and EndTime
// are expected; a partial slot missing either is treated as non-blocking.
type BlackoutSlot struct {
	Date      string `json:"date"` // YYYY-MM-DD
	IsFullDay bool   `json:"isFullDay"`
	StartTime string `json:"startTime,omitempty"` // HH:MM
	EndTime   string `json:"endTime,omitempty"`   // HH:MM
}
