package performance

import (
	"time"

	"github.com/Fooracles/SystemApp-sub009/pkg/task"
)

// RangeOutcome is the classification of one occurrence against an arbitrary
// [from, to] window. Used by the personal aggregator.
type RangeOutcome struct {
	// Skip marks a "can't be done" occurrence; it contributes to no counter.
	Skip bool
	// Counted marks occurrences included in the unscoped total.
	Counted bool
	// Planned marks occurrences included in the shared WND/WNDOT denominator.
	Planned   bool
	Completed bool
	Pending   bool
	Delayed   bool
	Shifted   bool
}

// WeekOutcome is the classification of one occurrence against a single ISO
// week. Used by the team and global aggregators. The pending and delayed
// rules here are intentionally different from the range-relative ones:
// pending anchors on the planned week (a completion that slipped into a
// different week stays pending for the week it was planned in), delayed
// anchors on the week the late completion actually landed in. The two are
// mutually exclusive by construction.
type WeekOutcome struct {
	Skip      bool
	Counted   bool
	Planned   bool
	Completed bool
	Pending   bool
	Delayed   bool
	Shifted   bool
}

// ClassifyRange applies the range-relative rules to one occurrence. Pure:
// the caller supplies "now" explicitly.
func ClassifyRange(occ task.TaskOccurrence, w Window, now time.Time) RangeOutcome {
	if occ.Status == task.StatusCantBeDone {
		return RangeOutcome{Skip: true}
	}

	out := RangeOutcome{Counted: true}
	if occ.Status == task.StatusShifted {
		out.Shifted = true
	}

	completed := occ.IsCompleted()

	plannedInRange := true
	if w.Ranged() {
		plannedInRange = occ.PlannedDate != nil && w.ContainsDate(*occ.PlannedDate)
	}
	actualInRange := true
	if w.Ranged() {
		actualInRange = occ.ActualDate != nil && w.ContainsDate(*occ.ActualDate)
	}

	if plannedInRange {
		out.Planned = true
	}

	// Completed bucket. In ranged mode a completion whose actual fell outside
	// the window still counts when it was done early or exactly on time; a
	// late completion outside the window counts as pending instead, never as
	// delayed for that window.
	lateOutsideRange := false
	if completed {
		if !w.Ranged() {
			out.Completed = true
		} else if plannedInRange {
			if actualInRange {
				out.Completed = true
			} else {
				actualAt := occ.ActualAt()
				plannedAt := occ.PlannedAt()
				if actualAt != nil && plannedAt != nil && !actualAt.After(*plannedAt) {
					out.Completed = true
				} else {
					out.Pending = true
					lateOutsideRange = true
				}
			}
		}
	}

	// Pending bucket: "not done" is pending unconditionally; otherwise an
	// uncompleted occurrence with no actual data at all is pending.
	if plannedInRange && !out.Completed && !out.Pending {
		if occ.Status == task.StatusNotDone {
			out.Pending = true
		} else if !completed && !occ.HasActual() {
			out.Pending = true
		}
	}

	// Delayed: planned timestamp already passed, unless completed on or
	// before it. A nil planned timestamp cannot determine a delay.
	if plannedInRange && !lateOutsideRange && occ.PlannedDate != nil {
		plannedAt := occ.PlannedAt()
		if plannedAt != nil && now.After(*plannedAt) {
			onTime := false
			if completed {
				if actualAt := occ.ActualAt(); actualAt != nil && !actualAt.After(*plannedAt) {
					onTime = true
				}
			}
			if !onTime {
				out.Delayed = true
			}
		}
	}

	return out
}

// ClassifyWeek applies the week-relative rules to one occurrence.
func ClassifyWeek(occ task.TaskOccurrence, week WeekWindow, now time.Time) WeekOutcome {
	if occ.Status == task.StatusCantBeDone {
		return WeekOutcome{Skip: true}
	}

	out := WeekOutcome{Counted: true}
	if occ.Status == task.StatusShifted {
		out.Shifted = true
	}

	completed := occ.IsCompleted()
	plannedInWeek := occ.PlannedDate != nil && week.ContainsDate(*occ.PlannedDate)
	actualInWeek := occ.ActualDate != nil && week.ContainsDate(*occ.ActualDate)

	if plannedInWeek {
		out.Planned = true
	}

	// Pending for the week: planned here and either not completed, or
	// completed but the actual slipped out of this week.
	if plannedInWeek && (!completed || !actualInWeek) {
		out.Pending = true
	}

	if plannedInWeek && completed && actualInWeek {
		out.Completed = true
	}

	// Delayed for the week: a late completion whose actual landed inside this
	// week, regardless of where it was planned.
	if completed && actualInWeek && !out.Pending {
		actualAt := occ.ActualAt()
		plannedAt := occ.PlannedAt()
		if actualAt != nil && plannedAt != nil && actualAt.After(*plannedAt) {
			out.Delayed = true
		}
	}

	return out
}
