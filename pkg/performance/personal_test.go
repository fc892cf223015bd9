package performance

import (
	"testing"
	"time"

	"github.com/Fooracles/SystemApp-sub009/pkg/task"
	"github.com/stretchr/testify/assert"
)

func TestComputeStats_MixedWeek(t *testing.T) {
	// given
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	occurrences := []task.TaskOccurrence{
		// completed on time
		{Status: task.StatusCompleted, PlannedDate: day(2025, time.March, 11), ActualDate: day(2025, time.March, 11)},
		// completed on time
		{Status: task.StatusCompleted, PlannedDate: day(2025, time.March, 12), ActualDate: day(2025, time.March, 12)},
		// still pending, planned timestamp passed
		{Status: task.StatusPending, PlannedDate: day(2025, time.March, 13)},
		// not done, pending regardless of actual data
		{Status: task.StatusNotDone, PlannedDate: day(2025, time.March, 14), ActualDate: day(2025, time.March, 14)},
		// can't be done, contributes nowhere
		{Status: task.StatusCantBeDone, PlannedDate: day(2025, time.March, 14)},
		// planned outside the window, only the unscoped total sees it
		{Status: task.StatusPending, PlannedDate: day(2025, time.April, 1)},
		// shifted
		{Status: task.StatusShifted, PlannedDate: day(2025, time.March, 15)},
	}

	// when
	stats := ComputeStats(occurrences, w, now)

	// then
	assert.Equal(t, 2, stats.CompletedOnTime)
	assert.Equal(t, 3, stats.CurrentPending)
	assert.Equal(t, 3, stats.CurrentDelayed)
	assert.Equal(t, 5, stats.TotalTasks)
	assert.Equal(t, 6, stats.TotalTasksAll)
	assert.Equal(t, 1, stats.ShiftedTasks)
	assert.Equal(t, -60.0, stats.WND)
	assert.Equal(t, -60.0, stats.WNDOnTime)
}

func TestComputeStats_OrderIndependent(t *testing.T) {
	// given
	w := NewWindow(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))
	now := time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)
	occurrences := []task.TaskOccurrence{
		{Status: task.StatusCompleted, PlannedDate: day(2025, time.March, 11), ActualDate: day(2025, time.March, 11)},
		{Status: task.StatusPending, PlannedDate: day(2025, time.March, 13)},
		{Status: task.StatusNotDone, PlannedDate: day(2025, time.March, 14)},
	}
	reversed := []task.TaskOccurrence{occurrences[2], occurrences[1], occurrences[0]}

	// when / then
	assert.Equal(t, ComputeStats(occurrences, w, now), ComputeStats(reversed, w, now))
}

func TestWeightedNonDelivery(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		planned  int
		expected float64
	}{
		{"nothing planned", 0, 0, -100},
		{"nothing pending", 0, 10, 0},
		{"half pending", 5, 10, -50},
		{"all pending", 10, 10, -100},
		{"rounded to two decimals", 1, 3, -33.33},
		{"combined multi week counts", 2, 101, -1.98},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := WeightedNonDelivery(tt.count, tt.planned)
			assert.Equal(t, tt.expected, v)
			assert.GreaterOrEqual(t, v, -100.0)
			assert.LessOrEqual(t, v, 0.0)
		})
	}
}
