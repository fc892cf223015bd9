// Package snapshot maintains the per-user, per-ISO-week frozen stats cache.
// A week is frozen exactly once after it has fully passed; frozen rows are
// immutable and substitute for live computation on closed-week queries.
package snapshot

import (
	"time"
)

// AlgorithmVersion identifies the classification algorithm the stored rows
// were computed with. Bumping it triggers the one-time staleness purge.
const AlgorithmVersion = 3

// Snapshot is one frozen weekly stats row, keyed by (UserId, WeekStart).
type Snapshot struct {
	Id               int
	UserId           int
	WeekStart        time.Time
	CompletedOnTime  int
	CurrentPending   int
	CurrentDelayed   int
	TotalTasks       int
	TotalTasksAll    int
	ShiftedTasks     int
	WND              float64
	WNDOnTime        float64
	RqcScore         float64
	PerformanceScore float64
	FrozenAt         time.Time
}
