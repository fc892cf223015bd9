package performance

import (
	"context"
	"fmt"
	"time"

	"github.com/Fooracles/SystemApp-sub009/internal/event_bus"
	"github.com/Fooracles/SystemApp-sub009/internal/utils"
	"github.com/Fooracles/SystemApp-sub009/pkg/rqc"
	"github.com/Fooracles/SystemApp-sub009/pkg/task"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
	log "github.com/sirupsen/logrus"
)

// UserStats is the full personal result: classification counters plus the
// external score and the blended performance rate.
type UserStats struct {
	Stats           PersonalStats
	RqcScore        float64
	PerformanceRate float64
	// Frozen reports whether the result was served from weekly snapshots.
	Frozen bool
}

// SnapshotReader serves a ranged query from frozen weekly snapshots. A nil
// result (without error) means the range cannot be served frozen and the
// caller must compute live; frozen and live results are never mixed.
type SnapshotReader interface {
	StatsForRange(ctx context.Context, userId int, from, to time.Time) (*UserStats, error)
}

type Service interface {
	GetUserStats(ctx context.Context, userId int, window Window) (UserStats, error)
	GetTeamStats(ctx context.Context, managerId int, date time.Time) (ScopeStats, error)
	GetGlobalStats(ctx context.Context, date time.Time) (ScopeStats, error)
}

type ServiceImpl struct {
	taskRepo    task.Repo
	userService user.Service
	rqcProvider rqc.Provider
	snapshots   SnapshotReader
	bus         *event_bus.EventBus
	clock       utils.Clock
}

func NewService(
	taskRepo task.Repo,
	userService user.Service,
	rqcProvider rqc.Provider,
	snapshots SnapshotReader,
	bus *event_bus.EventBus,
	clock utils.Clock,
) *ServiceImpl {
	return &ServiceImpl{
		taskRepo:    taskRepo,
		userService: userService,
		rqcProvider: rqcProvider,
		snapshots:   snapshots,
		bus:         bus,
		clock:       clock,
	}
}

// GetUserStats serves a user's stats over the window, preferring frozen
// weekly snapshots when every week in the range is closed and frozen.
func (s *ServiceImpl) GetUserStats(ctx context.Context, userId int, window Window) (UserStats, error) {
	defer s.publishViewed(ctx, userId, window)

	if window.Ranged() && s.snapshots != nil {
		frozen, err := s.snapshots.StatsForRange(ctx, userId, window.From(), window.To())
		if err != nil {
			log.Warnf("snapshot lookup failed for user %d, computing live: %v", userId, err)
		} else if frozen != nil {
			return *frozen, nil
		}
	}

	return s.computeLive(ctx, userId, window)
}

func (s *ServiceImpl) computeLive(ctx context.Context, userId int, window Window) (UserStats, error) {
	u, err := s.userService.GetUser(ctx, userId)
	if err != nil {
		return UserStats{}, fmt.Errorf("failed to get user %d: %w", userId, err)
	}

	occurrences, err := s.taskRepo.FindOccurrences(ctx, task.UserScope(userId))
	if err != nil {
		return UserStats{}, fmt.Errorf("failed to fetch occurrences: %w", err)
	}

	stats := ComputeStats(occurrences, window, s.clock.Now())

	var from, to *time.Time
	if window.Ranged() {
		f, t := window.From(), window.To()
		from, to = &f, &t
	}
	rqcScore, err := s.rqcProvider.Score(ctx, u.DisplayName, from, to)
	if err != nil {
		return UserStats{}, fmt.Errorf("failed to fetch rqc score: %w", err)
	}

	return UserStats{
		Stats:           stats,
		RqcScore:        rqcScore,
		PerformanceRate: Rate(rqcScore, stats.WND, stats.WNDOnTime),
	}, nil
}

func (s *ServiceImpl) GetTeamStats(ctx context.Context, managerId int, date time.Time) (ScopeStats, error) {
	occurrences, err := s.taskRepo.FindOccurrences(ctx, task.TeamScope(managerId))
	if err != nil {
		return ScopeStats{}, fmt.Errorf("failed to fetch team occurrences: %w", err)
	}
	return ComputeWeekStats(occurrences, WeekOf(date), s.clock.Now()), nil
}

func (s *ServiceImpl) GetGlobalStats(ctx context.Context, date time.Time) (ScopeStats, error) {
	occurrences, err := s.taskRepo.FindOccurrences(ctx, task.AllScope())
	if err != nil {
		return ScopeStats{}, fmt.Errorf("failed to fetch occurrences: %w", err)
	}
	return ComputeWeekStats(occurrences, WeekOf(date), s.clock.Now()), nil
}

// publishViewed notifies subscribers that a stats read happened, so the
// snapshot sweep can opportunistically top up missing frozen weeks.
func (s *ServiceImpl) publishViewed(ctx context.Context, userId int, window Window) {
	if s.bus == nil {
		return
	}
	data := event_bus.StatsViewedData{UserId: userId}
	if window.Ranged() {
		data.From = window.From()
		data.To = window.To()
	}
	if err := s.bus.Publish(event_bus.NewEvent(ctx, event_bus.StatsViewed, data)); err != nil {
		log.Warnf("stats viewed event failed: %v", err)
	}
}
