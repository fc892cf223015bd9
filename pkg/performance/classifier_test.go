package performance

import (
	"testing"
	"time"

	"github.com/Fooracles/SystemApp-sub009/pkg/task"
	"github.com/stretchr/testify/assert"
)

func day(year int, month time.Month, d int) *time.Time {
	ts := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &ts
}

func TestClassifyRange_CantBeDoneAffectsNothing(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCantBeDone,
		PlannedDate: day(2025, time.March, 12),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then
	assert.Equal(t, RangeOutcome{Skip: true}, out)
}

func TestClassifyRange_CompletedInRange(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2025, time.March, 12),
		ActualDate:  day(2025, time.March, 12),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Counted)
	assert.True(t, out.Planned)
	assert.True(t, out.Completed)
	assert.False(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_EarlyCompletionOutsideRangeStillCompleted(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2024, time.January, 1),
		ActualDate:  day(2023, time.December, 30),
	}
	w := NewWindow(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Completed)
	assert.False(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_LateCompletionOutsideRangeIsPendingNotDelayed(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2024, time.January, 1),
		ActualDate:  day(2024, time.January, 10),
	}
	w := NewWindow(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC))

	// then
	assert.False(t, out.Completed)
	assert.True(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_NotDoneIsPendingEvenWithActualData(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusNotDone,
		PlannedDate: day(2025, time.March, 12),
		ActualDate:  day(2025, time.March, 12),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Pending)
	assert.False(t, out.Completed)
	assert.True(t, out.Delayed, "planned timestamp already passed without an on-time completion")
}

func TestClassifyRange_CompletedStatusWithoutActualIsPending(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2025, time.March, 12),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then
	assert.False(t, out.Completed)
	assert.True(t, out.Pending)
	assert.True(t, out.Delayed)
}

func TestClassifyRange_FuturePlannedIsPendingNotDelayed(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusUnknown,
		PlannedDate: day(2025, time.March, 14),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when: now is before the planned end of day
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 11, 12, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_PlannedOutsideRangeOnlyCountsUnscoped(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusPending,
		PlannedDate: day(2025, time.April, 2),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Counted)
	assert.False(t, out.Planned)
	assert.False(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_LifetimeCountsNilPlannedDate(t *testing.T) {
	// given
	occ := task.TaskOccurrence{Status: task.StatusPending}

	// when
	out := ClassifyRange(occ, Lifetime(), time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC))

	// then: counted in the denominator, but a nil planned timestamp can
	// never establish a delay
	assert.True(t, out.Counted)
	assert.True(t, out.Planned)
	assert.True(t, out.Pending)
	assert.False(t, out.Delayed)
}

func TestClassifyRange_ShiftedFlag(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusShifted,
		PlannedDate: day(2025, time.March, 12),
	}
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyRange(occ, w, time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Shifted)
	assert.True(t, out.Counted)
}

func TestClassifyWeek_CompletedInPlannedWeek(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2025, time.March, 12),
		ActualDate:  day(2025, time.March, 13),
	}
	week := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyWeek(occ, week, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))

	// then
	assert.True(t, out.Completed)
	assert.False(t, out.Pending)
	assert.True(t, out.Delayed, "actual end of day landed after the planned end of day")
}

func TestClassifyWeek_CompletionSlippedToNextWeek(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2025, time.March, 12),
		ActualDate:  day(2025, time.March, 18),
	}
	plannedWeek := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))
	landingWeek := WeekOf(time.Date(2025, time.March, 18, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC)

	// when
	plannedOut := ClassifyWeek(occ, plannedWeek, now)
	landingOut := ClassifyWeek(occ, landingWeek, now)

	// then: pending for the week it was planned in, delayed for the week
	// the late completion landed in, never both for the same week
	assert.True(t, plannedOut.Pending)
	assert.False(t, plannedOut.Completed)
	assert.False(t, plannedOut.Delayed)

	assert.False(t, landingOut.Pending)
	assert.False(t, landingOut.Completed)
	assert.True(t, landingOut.Delayed)
}

func TestClassifyWeek_OnTimeCompletionInDifferentWeekNotDelayed(t *testing.T) {
	// given: completed early, actual landed the week before it was planned
	occ := task.TaskOccurrence{
		Status:      task.StatusCompleted,
		PlannedDate: day(2025, time.March, 12),
		ActualDate:  day(2025, time.March, 7),
	}
	landingWeek := WeekOf(time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyWeek(occ, landingWeek, time.Date(2025, time.March, 25, 0, 0, 0, 0, time.UTC))

	// then
	assert.False(t, out.Delayed)
	assert.False(t, out.Pending)
	assert.False(t, out.Completed)
}

func TestClassifyWeek_CantBeDoneSkipped(t *testing.T) {
	// given
	occ := task.TaskOccurrence{
		Status:      task.StatusCantBeDone,
		PlannedDate: day(2025, time.March, 12),
	}
	week := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	// when
	out := ClassifyWeek(occ, week, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))

	// then
	assert.Equal(t, WeekOutcome{Skip: true}, out)
}
