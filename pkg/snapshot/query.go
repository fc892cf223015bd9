package snapshot

import (
	"context"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/utils"
	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	log "github.com/sirupsen/logrus"
)

// QueryService answers ranged stats queries from frozen snapshots. It
// implements performance.SnapshotReader.
type QueryService struct {
	repo  Repository
	clock utils.Clock
}

func NewQueryService(repo Repository, clock utils.Clock) *QueryService {
	return &QueryService{repo: repo, clock: clock}
}

// StatsForRange returns merged frozen stats for [from, to], or nil when the
// range cannot be served frozen: the range touches today or the future, or
// any ISO week overlapping it has no snapshot row. All-or-nothing: a query
// is answered either entirely from snapshots or not at all, so WND/WNDOT
// semantics never mix frozen and live data.
func (q *QueryService) StatsForRange(ctx context.Context, userId int, from, to time.Time) (*performance.UserStats, error) {
	today := dateOnly(q.clock.Now())
	if !dateOnly(to).Before(today) {
		return nil, nil
	}

	weeks := weeksOverlapping(from, to)
	if len(weeks) == 0 {
		return nil, nil
	}

	rows, err := q.repo.FindForUser(ctx, userId, weeks[0].Start(), weeks[len(weeks)-1].Start())
	if err != nil {
		return nil, err
	}
	if len(rows) != len(weeks) {
		log.Debugf("user %d range %s..%s: %d of %d weeks frozen, falling back to live",
			userId, from.Format("2006-01-02"), to.Format("2006-01-02"), len(rows), len(weeks))
		return nil, nil
	}

	if len(rows) == 1 {
		stats := toUserStats(rows[0])
		return &stats, nil
	}
	merged := mergeSnapshots(rows)
	return &merged, nil
}

// mergeSnapshots combines multiple frozen weeks: count fields are summed,
// WND/WNDOT are recomputed from the summed counts (averaging the per-week
// percentages would let small-denominator weeks dominate), and the rqc and
// performance scores are averaged arithmetically. TotalTasksAll is not a
// per-week count: every row stores the user's unscoped total as of its
// freeze, so the newest row's value stands for the whole range.
func mergeSnapshots(rows []Snapshot) performance.UserStats {
	var stats performance.PersonalStats
	var rqcSum, rateSum float64
	for _, row := range rows {
		stats.CompletedOnTime += row.CompletedOnTime
		stats.CurrentPending += row.CurrentPending
		stats.CurrentDelayed += row.CurrentDelayed
		stats.TotalTasks += row.TotalTasks
		stats.ShiftedTasks += row.ShiftedTasks
		rqcSum += row.RqcScore
		rateSum += row.PerformanceScore
	}
	stats.TotalTasksAll = rows[len(rows)-1].TotalTasksAll
	stats.WND = performance.WeightedNonDelivery(stats.CurrentPending, stats.TotalTasks)
	stats.WNDOnTime = performance.WeightedNonDelivery(stats.CurrentDelayed, stats.TotalTasks)

	n := float64(len(rows))
	return performance.UserStats{
		Stats:           stats,
		RqcScore:        rqcSum / n,
		PerformanceRate: rateSum / n,
		Frozen:          true,
	}
}

func toUserStats(row Snapshot) performance.UserStats {
	return performance.UserStats{
		Stats: performance.PersonalStats{
			CompletedOnTime: row.CompletedOnTime,
			CurrentPending:  row.CurrentPending,
			CurrentDelayed:  row.CurrentDelayed,
			TotalTasks:      row.TotalTasks,
			TotalTasksAll:   row.TotalTasksAll,
			ShiftedTasks:    row.ShiftedTasks,
			WND:             row.WND,
			WNDOnTime:       row.WNDOnTime,
		},
		RqcScore:        row.RqcScore,
		PerformanceRate: row.PerformanceScore,
		Frozen:          true,
	}
}

// weeksOverlapping enumerates every ISO week touching [from, to].
func weeksOverlapping(from, to time.Time) []performance.WeekWindow {
	if to.Before(from) {
		return nil
	}
	var weeks []performance.WeekWindow
	for week := performance.WeekOf(from); !week.Start().After(dateOnly(to)); week = next(week) {
		weeks = append(weeks, week)
	}
	return weeks
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
