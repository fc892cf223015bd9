package app

import (
	"github.com/Fooracles/SystemApp-sub009/internal/config"
	"github.com/Fooracles/SystemApp-sub009/internal/event_bus"
	"github.com/Fooracles/SystemApp-sub009/internal/utils"
	"github.com/Fooracles/SystemApp-sub009/pkg/leaderboard"
	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	"github.com/Fooracles/SystemApp-sub009/pkg/rqc"
	"github.com/Fooracles/SystemApp-sub009/pkg/snapshot"
	"github.com/Fooracles/SystemApp-sub009/pkg/task"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	UserService user.Service
	UserHandler *user.Handler

	TaskRepo    task.Repo
	RqcProvider rqc.Provider

	SnapshotRepo    snapshot.Repository
	SnapshotQuery   *snapshot.QueryService
	Freezer         *snapshot.Freezer
	SnapshotHandler *snapshot.Handler

	PerformanceService *performance.ServiceImpl
	PerformanceHandler *performance.Handler

	LeaderboardService *leaderboard.ServiceImpl
	LeaderboardHandler *leaderboard.Handler

	EventBus *event_bus.EventBus
	Clock    utils.Clock
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.Clock = &utils.SystemClock{}
	deps.EventBus = event_bus.NewEventBus()

	deps.UserService = user.NewUserService(user.NewUserRepo(db))
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.TaskRepo = task.NewRepo(db)
	deps.RqcProvider = rqc.NewRepo(db)

	deps.SnapshotRepo = snapshot.NewRepository(db)
	deps.SnapshotQuery = snapshot.NewQueryService(deps.SnapshotRepo, deps.Clock)
	deps.Freezer = snapshot.NewFreezer(deps.SnapshotRepo, deps.TaskRepo, deps.UserService, deps.RqcProvider, deps.EventBus, deps.Clock)
	deps.SnapshotHandler = snapshot.NewHandler(deps.Freezer, cfg.Snapshots.HistoryWeeks)

	deps.PerformanceService = performance.NewService(deps.TaskRepo, deps.UserService, deps.RqcProvider, deps.SnapshotQuery, deps.EventBus, deps.Clock)
	deps.PerformanceHandler = performance.NewHandler(deps.PerformanceService)

	deps.LeaderboardService = leaderboard.NewService(deps.UserService, deps.PerformanceService)
	deps.LeaderboardHandler = leaderboard.NewHandler(deps.LeaderboardService)

	// Stats reads opportunistically top up the viewer's missing frozen weeks:
	// the weeks the query touched when it was ranged, the trailing history
	// window otherwise.
	deps.EventBus.Subscribe(event_bus.StatsViewed, func(e event_bus.Event) error {
		data, ok := e.Data.(event_bus.StatsViewedData)
		if !ok {
			return nil
		}
		u, err := deps.UserService.GetUser(e.Context(), data.UserId)
		if err != nil {
			return err
		}
		if !data.From.IsZero() && !data.To.IsZero() {
			err = deps.Freezer.EnsureRangeFrozen(e.Context(), u, data.From, data.To)
		} else {
			err = deps.Freezer.EnsureUserWeeksFrozen(e.Context(), u, cfg.Snapshots.HistoryWeeks)
		}
		if err != nil {
			log.Warnf("opportunistic freeze for user %d failed: %v", data.UserId, err)
		}
		return nil
	})

	return deps
}
