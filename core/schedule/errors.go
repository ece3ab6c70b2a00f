package schedule

import "errors"

// ErrCalendarExhausted is returned when day advancement exceeds the lookahead
// bound without finding an available working day, for example when every day
// of the horizon is blacked out. The planner never returns a partial schedule
// alongside it.
var ErrCalendarExhausted = errors.New("calendar exhausted before an available working day was found")
