package app

import (
	"github.com/Fooracles/SystemApp-sub009/internal/config"
	"github.com/gorilla/mux"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Performance stats
	r.HandleFunc("/api/performance/user", deps.PerformanceHandler.GetUserStats).Methods("GET")
	r.HandleFunc("/api/performance/team", deps.PerformanceHandler.GetTeamStats).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/performance/global", deps.PerformanceHandler.GetGlobalStats).Queries("date", "{date}").Methods("GET")

	// Leaderboard
	r.HandleFunc("/api/leaderboard", deps.LeaderboardHandler.GetLeaderboard).Methods("GET")

	// Snapshot maintenance
	r.HandleFunc("/api/snapshots/freeze", deps.SnapshotHandler.FreezeWeeks).Methods("POST")

	// User management
	r.HandleFunc("/api/user/current", deps.UserHandler.CurrentUser).Methods("GET")
	r.HandleFunc("/api/user", deps.UserHandler.CreateUser).Methods("POST")
	r.HandleFunc("/api/user", deps.UserHandler.GetAvailableUsers).Methods("GET")
	r.HandleFunc("/api/user/name-availability", deps.UserHandler.IsUsernameAvailable).Methods("GET").Queries("username", "{username}")
	r.HandleFunc("/api/user/{userUid}", deps.UserHandler.DeleteUser).Methods("DELETE")
}
