package snapshot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/event_bus"
	"github.com/Fooracles/SystemApp-sub009/internal/utils"
	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	"github.com/Fooracles/SystemApp-sub009/pkg/rqc"
	"github.com/Fooracles/SystemApp-sub009/pkg/task"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
	log "github.com/sirupsen/logrus"
)

// Freezer populates the weekly snapshot cache. Concurrent freezes of the
// same week are tolerated: the uniqueness key on (userId, weekStart) lets
// at most one row persist, so the losing writer's work is simply discarded.
type Freezer struct {
	repo        Repository
	taskRepo    task.Repo
	userService user.Service
	rqcProvider rqc.Provider
	bus         *event_bus.EventBus
	clock       utils.Clock
	purgeOnce   sync.Once
}

func NewFreezer(
	repo Repository,
	taskRepo task.Repo,
	userService user.Service,
	rqcProvider rqc.Provider,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *Freezer {
	return &Freezer{
		repo:        repo,
		taskRepo:    taskRepo,
		userService: userService,
		rqcProvider: rqcProvider,
		bus:         bus,
		clock:       clock,
	}
}

// Eligible reports whether the week may be frozen: its Sunday end-of-day
// must be strictly in the past. Weeks touching today or the future are
// always computed live.
func (f *Freezer) Eligible(week performance.WeekWindow) bool {
	return week.End().Before(f.clock.Now())
}

// FreezeWeek computes and stores the snapshot for one user and week. The
// insert is idempotent; a pre-existing row is success and reported as
// created=false. Nothing is written for ineligible weeks.
func (f *Freezer) FreezeWeek(ctx context.Context, u user.User, week performance.WeekWindow) (bool, error) {
	if !f.Eligible(week) {
		log.Debugf("week starting %s not eligible for freezing", week.Start().Format("2006-01-02"))
		return false, nil
	}

	occurrences, err := f.taskRepo.FindOccurrences(ctx, task.UserScope(u.Id))
	if err != nil {
		return false, fmt.Errorf("failed to fetch occurrences for user %d: %w", u.Id, err)
	}
	stats := performance.ComputeStats(occurrences, week.Window(), f.clock.Now())

	weekStart, weekEnd := week.Start(), week.End()
	rqcScore, err := f.rqcProvider.Score(ctx, u.DisplayName, &weekStart, &weekEnd)
	if err != nil {
		return false, fmt.Errorf("failed to fetch rqc score for %q: %w", u.DisplayName, err)
	}

	created, err := f.repo.Store(ctx, Snapshot{
		UserId:           u.Id,
		WeekStart:        weekStart,
		CompletedOnTime:  stats.CompletedOnTime,
		CurrentPending:   stats.CurrentPending,
		CurrentDelayed:   stats.CurrentDelayed,
		TotalTasks:       stats.TotalTasks,
		TotalTasksAll:    stats.TotalTasksAll,
		ShiftedTasks:     stats.ShiftedTasks,
		WND:              stats.WND,
		WNDOnTime:        stats.WNDOnTime,
		RqcScore:         rqcScore,
		PerformanceScore: performance.Rate(rqcScore, stats.WND, stats.WNDOnTime),
		FrozenAt:         f.clock.Now(),
	})
	if err != nil {
		return false, err
	}
	if created {
		log.Infof("froze week %s for user %d", weekStart.Format("2006-01-02"), u.Id)
		f.publishFrozen(ctx, u.Id, week)
	}
	return created, nil
}

// EnsureUserWeeksFrozen freezes the user's missing trailing completed weeks.
// No-op once caught up; safe to call on every stats read.
func (f *Freezer) EnsureUserWeeksFrozen(ctx context.Context, u user.User, weeks int) error {
	if weeks <= 0 {
		return nil
	}
	newest := performance.WeekOf(f.clock.Now()).Prev()
	oldest := newest
	for i := 1; i < weeks; i++ {
		oldest = oldest.Prev()
	}

	existing, err := f.repo.FindForUser(ctx, u.Id, oldest.Start(), newest.Start())
	if err != nil {
		return err
	}
	frozen := make(map[string]bool, len(existing))
	for _, s := range existing {
		frozen[s.WeekStart.Format("2006-01-02")] = true
	}

	for week := oldest; !week.Start().After(newest.Start()); week = next(week) {
		if frozen[week.Start().Format("2006-01-02")] {
			continue
		}
		if _, err := f.FreezeWeek(ctx, u, week); err != nil {
			return err
		}
	}
	return nil
}

// EnsureRangeFrozen freezes the user's missing eligible weeks overlapping
// [from, to], so the weeks a ranged stats query actually touched become
// servable frozen on the next read. No-op once caught up.
func (f *Freezer) EnsureRangeFrozen(ctx context.Context, u user.User, from, to time.Time) error {
	weeks := weeksOverlapping(from, to)
	if len(weeks) == 0 {
		return nil
	}

	existing, err := f.repo.FindForUser(ctx, u.Id, weeks[0].Start(), weeks[len(weeks)-1].Start())
	if err != nil {
		return err
	}
	frozen := make(map[string]bool, len(existing))
	for _, s := range existing {
		frozen[s.WeekStart.Format("2006-01-02")] = true
	}

	for _, week := range weeks {
		if frozen[week.Start().Format("2006-01-02")] {
			continue
		}
		if _, err := f.FreezeWeek(ctx, u, week); err != nil {
			return err
		}
	}
	return nil
}

// EnsureWeeksFrozen tops up the trailing completed weeks for every active
// user. A batch maintenance operation; repeated calls are no-ops once all
// weeks are frozen.
func (f *Freezer) EnsureWeeksFrozen(ctx context.Context, weeks int) error {
	users, err := f.userService.GetActiveUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users for freeze sweep: %w", err)
	}
	for _, u := range users {
		if err := f.EnsureUserWeeksFrozen(ctx, u, weeks); err != nil {
			return err
		}
	}
	return nil
}

// RunStalenessPurge wipes all snapshots once per algorithm version. The
// persisted marker makes the purge happen at most once per deployment; the
// sync.Once keeps it off the per-request path within a process.
func (f *Freezer) RunStalenessPurge(ctx context.Context) error {
	var purgeErr error
	f.purgeOnce.Do(func() {
		key := fmt.Sprintf("classification-v%d", AlgorithmVersion)
		present, err := f.repo.HasMarker(ctx, key)
		if err != nil {
			purgeErr = err
			return
		}
		if present {
			return
		}
		log.Infof("classification algorithm changed, purging stale snapshots (marker %s)", key)
		if err := f.repo.DeleteAll(ctx); err != nil {
			purgeErr = err
			return
		}
		purgeErr = f.repo.WriteMarker(ctx, key)
	})
	return purgeErr
}

func (f *Freezer) publishFrozen(ctx context.Context, userId int, week performance.WeekWindow) {
	if f.bus == nil {
		return
	}
	event := event_bus.NewEvent(ctx, event_bus.WeekFrozen, event_bus.WeekFrozenData{
		UserId:    userId,
		WeekStart: week.Start(),
	})
	if err := f.bus.Publish(event); err != nil {
		log.Warnf("week frozen event failed: %v", err)
	}
}

func next(w performance.WeekWindow) performance.WeekWindow {
	return performance.WeekOf(w.Start().AddDate(0, 0, 7))
}
