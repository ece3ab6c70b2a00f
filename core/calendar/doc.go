package calendar

// Package calendar implements the availability calculus shared by the
// workload allocator and the deadline projector: work-window membership,
// weekend and blackout tests, and bounded next-working-day stepping.
