package schedule

import "errors"

// Config defines planning parameters loaded from configuration.
type Config struct {
	// WorkingHoursPerDay feeds the available-hours estimate.
	WorkingHoursPerDay float64 `json:"working_hours_per_day" yaml:"working_hours_per_day"`
	// MaxHoursPerDay caps the hours the allocator may commit to one day.
	MaxHoursPerDay float64 `json:"max_hours_per_day" yaml:"max_hours_per_day"`
	// GranularityMinHours and GranularityCapHours bound a single task's
	// duration after normalization.
	GranularityMinHours float64 `json:"granularity_min_hours" yaml:"granularity_min_hours"`
	GranularityCapHours float64 `json:"granularity_cap_hours" yaml:"granularity_cap_hours"`
	// MaxLookaheadDays bounds calendar-day advancement before the planner
	// gives up on a blocked calendar.
	MaxLookaheadDays int `json:"max_lookahead_days" yaml:"max_lookahead_days"`
}

// SetDefaults fills zero fields with the standard planning parameters.
func (c *Config) SetDefaults() {
	if c.WorkingHoursPerDay == 0 {
		c.WorkingHoursPerDay = 8
	}
	if c.MaxHoursPerDay == 0 {
		c.MaxHoursPerDay = 8
	}
	if c.GranularityMinHours == 0 {
		c.GranularityMinHours = 1
	}
	if c.GranularityCapHours == 0 {
		c.GranularityCapHours = 4
	}
	if c.MaxLookaheadDays == 0 {
		c.MaxLookaheadDays = 366
	}
}

// Validate checks the configuration for values the planner cannot work with.
func (c Config) Validate() error {
	if c.WorkingHoursPerDay <= 0 {
		return errors.New("working_hours_per_day must be positive")
	}
	if c.MaxHoursPerDay <= 0 {
		return errors.New("max_hours_per_day must be positive")
	}
	if c.GranularityMinHours <= 0 || c.GranularityCapHours < c.GranularityMinHours {
		return errors.New("granularity bounds must satisfy 0 < min <= cap")
	}
	if c.MaxLookaheadDays <= 0 {
		return errors.New("max_lookahead_days must be positive")
	}
	return nil
}
