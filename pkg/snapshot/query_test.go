package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var queryClock = &utils.MockClock{FixedNow: time.Date(2025, time.March, 20, 12, 0, 0, 0, time.UTC)}

func setupQuery(t *testing.T) (*QueryService, *StubRepository, func()) {
	repo := NewStubRepository()
	service := NewQueryService(repo, queryClock)
	return service, repo, func() {
		t.Log("Teardown after test")
		repo.Cleanup()
	}
}

func TestQueryService_RangeTouchingTodayIsNeverFrozen(t *testing.T) {
	service, repo, teardown := setupQuery(t)
	defer teardown()

	// given: the whole current week is frozen (should not happen, but even then)
	ctx := context.Background()
	weekStart := time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)
	_, err := repo.Store(ctx, Snapshot{UserId: 1, WeekStart: weekStart})
	require.NoError(t, err)

	// when: the range ends today
	stats, err := service.StatsForRange(ctx, 1, weekStart, time.Date(2025, time.March, 20, 0, 0, 0, 0, time.UTC))

	// then
	require.NoError(t, err)
	assert.Nil(t, stats)
}

func TestQueryService_SingleFrozenWeek(t *testing.T) {
	service, repo, teardown := setupQuery(t)
	defer teardown()

	// given
	ctx := context.Background()
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Store(ctx, Snapshot{
		UserId:           1,
		WeekStart:        weekStart,
		CompletedOnTime:  4,
		CurrentPending:   1,
		TotalTasks:       5,
		TotalTasksAll:    6,
		WND:              -20,
		WNDOnTime:        0,
		RqcScore:         90,
		PerformanceScore: 90,
	})
	require.NoError(t, err)

	// when
	stats, err := service.StatsForRange(ctx, 1, weekStart, time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// then
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.True(t, stats.Frozen)
	assert.Equal(t, 4, stats.Stats.CompletedOnTime)
	assert.Equal(t, 5, stats.Stats.TotalTasks)
	assert.Equal(t, -20.0, stats.Stats.WND)
	assert.Equal(t, 90.0, stats.RqcScore)
	assert.Equal(t, 90.0, stats.PerformanceRate)
}

func TestQueryService_MergeRecomputesFromSummedCounts(t *testing.T) {
	service, repo, teardown := setupQuery(t)
	defer teardown()

	// given: week A with 1 planned / 1 pending, week B with 100 planned / 1 pending
	ctx := context.Background()
	weekA := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	weekB := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Store(ctx, Snapshot{
		UserId: 1, WeekStart: weekA,
		CurrentPending: 1, TotalTasks: 1, TotalTasksAll: 80,
		WND: -100, WNDOnTime: -100, RqcScore: 80, PerformanceScore: 60,
	})
	require.NoError(t, err)
	_, err = repo.Store(ctx, Snapshot{
		UserId: 1, WeekStart: weekB,
		CompletedOnTime: 99, CurrentPending: 1, TotalTasks: 100, TotalTasksAll: 101,
		WND: -1, WNDOnTime: 0, RqcScore: 90, PerformanceScore: 96,
	})
	require.NoError(t, err)

	// when
	stats, err := service.StatsForRange(ctx, 1, weekA, time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// then: -1.98 from the summed counts, not the -50.5 average of percentages
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, -1.98, stats.Stats.WND)
	assert.Equal(t, 101, stats.Stats.TotalTasks)
	assert.Equal(t, 99, stats.Stats.CompletedOnTime)
	// each week stores the unscoped all-time total as of its freeze, so the
	// newest week's value carries over instead of being summed
	assert.Equal(t, 101, stats.Stats.TotalTasksAll)
	assert.Equal(t, 85.0, stats.RqcScore)
	assert.Equal(t, 78.0, stats.PerformanceRate)
	assert.True(t, stats.Frozen)
}

func TestQueryService_AllOrNothing(t *testing.T) {
	service, repo, teardown := setupQuery(t)
	defer teardown()

	// given: three fully frozen weeks
	ctx := context.Background()
	weeks := []time.Time{
		time.Date(2025, time.February, 24, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
	for _, ws := range weeks {
		_, err := repo.Store(ctx, Snapshot{UserId: 1, WeekStart: ws, TotalTasks: 10})
		require.NoError(t, err)
	}
	from := weeks[0]
	to := time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC)

	// when: fully frozen range answers, then one missing week poisons the whole range
	full, err := service.StatsForRange(ctx, 1, from, to)
	require.NoError(t, err)
	repo.Delete(1, weeks[1])
	partial, err := service.StatsForRange(ctx, 1, from, to)
	require.NoError(t, err)

	// then
	assert.NotNil(t, full)
	assert.Nil(t, partial, "a range missing any week must fall back to live computation entirely")
}

func TestQueryService_OtherUsersSnapshotsDoNotCount(t *testing.T) {
	service, repo, teardown := setupQuery(t)
	defer teardown()

	// given
	ctx := context.Background()
	weekStart := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	_, err := repo.Store(ctx, Snapshot{UserId: 2, WeekStart: weekStart, TotalTasks: 10})
	require.NoError(t, err)

	// when
	stats, err := service.StatsForRange(ctx, 1, weekStart, time.Date(2025, time.March, 16, 0, 0, 0, 0, time.UTC))

	// then
	require.NoError(t, err)
	assert.Nil(t, stats)
}
