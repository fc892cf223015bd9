package performance

import (
	"time"

	"github.com/Fooracles/SystemApp-sub009/pkg/task"
)

// ScopeStats is the flatter aggregate served on the team and global
// dashboards, computed with the week-relative rules.
type ScopeStats struct {
	TotalTasks     int
	CompletedTasks int
	PendingTasks   int
	DelayedTasks   int
	TotalTasksAll  int
	ShiftedTasks   int
}

// ComputeWeekStats folds all occurrences in scope over one ISO week. A
// shifted occurrence planned in the week counts as pending like any other
// uncompleted one, on top of its own shifted counter.
func ComputeWeekStats(occurrences []task.TaskOccurrence, week WeekWindow, now time.Time) ScopeStats {
	var stats ScopeStats
	for _, occ := range occurrences {
		out := ClassifyWeek(occ, week, now)
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
			stats.CompletedTasks++
		}
		if out.Delayed {
			stats.DelayedTasks++
		}
		if out.Shifted {
			stats.ShiftedTasks++
		}
		if out.Pending {
			stats.PendingTasks++
		}
	}
	return stats
}
