package performance

import (
	"math"
	"time"

	"github.com/Fooracles/SystemApp-sub009/pkg/task"
)

// PersonalStats is the per-user result of folding all occurrences over a
// window. WND and WNDOnTime are negative percentages in [-100, 0]; both are
// exactly -100 when no tasks were planned in the window.
type PersonalStats struct {
	CompletedOnTime int
	CurrentPending  int
	CurrentDelayed  int
	// TotalTasks is the shared WND/WNDOT denominator: occurrences whose
	// planned date falls in the window.
	TotalTasks int
	// TotalTasksAll counts every occurrence regardless of window.
	TotalTasksAll int
	ShiftedTasks  int
	WND           float64
	WNDOnTime     float64
}

// ComputeStats folds all occurrences for one user into PersonalStats using
// the range-relative classification rules. The fold visits each occurrence
// once and is commutative, so occurrence order never affects the result.
func ComputeStats(occurrences []task.TaskOccurrence, w Window, now time.Time) PersonalStats {
	var stats PersonalStats
	for _, occ := range occurrences {
		out := ClassifyRange(occ, w, now)
		if out.Skip {
			continue
		}
		if out.Counted {
			stats.TotalTasksAll++
		}
		if out.Planned {
			stats.TotalTasks++
		}
		if out.Completed {
			stats.CompletedOnTime++
		}
		if out.Pending {
			stats.CurrentPending++
		}
		if out.Delayed {
			stats.CurrentDelayed++
		}
		if out.Shifted {
			stats.ShiftedTasks++
		}
	}
	stats.WND = WeightedNonDelivery(stats.CurrentPending, stats.TotalTasks)
	stats.WNDOnTime = WeightedNonDelivery(stats.CurrentDelayed, stats.TotalTasks)
	return stats
}

// WeightedNonDelivery is round(-1 * count/planned * 100, 2) clamped to
// [-100, 0]; exactly -100 when nothing was planned.
func WeightedNonDelivery(count, planned int) float64 {
	if planned == 0 {
		return -100
	}
	v := round2(-1 * float64(count) / float64(planned) * 100)
	if v < -100 {
		return -100
	}
	if v > 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
