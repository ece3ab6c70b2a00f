package schedule

// Package schedule turns a role-filtered list of estimated work items into a
// day-by-day plan bounded by a deadline, the daily work window, per-day
// workload caps and calendar blackouts, and judges whether the plan fits the
// time remaining. The computation is synchronous and pure: all state lives in
// one invocation and is discarded with it.
