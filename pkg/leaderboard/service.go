package leaderboard

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
	log "github.com/sirupsen/logrus"
)

type Service interface {
	// Rank computes the full ranked list for the window and truncates it
	// according to the caller's visibility.
	Rank(ctx context.Context, caller user.User, window performance.Window, limit int) ([]Entry, error)
}

type ServiceImpl struct {
	userService user.Service
	stats       performance.Service
}

func NewService(userService user.Service, stats performance.Service) *ServiceImpl {
	return &ServiceImpl{userService: userService, stats: stats}
}

func (s *ServiceImpl) Rank(ctx context.Context, caller user.User, window performance.Window, limit int) ([]Entry, error) {
	users, err := s.userService.GetAllUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users for leaderboard: %w", err)
	}

	entries := make([]Entry, 0, len(users))
	for _, u := range users {
		if !eligible(u) {
			continue
		}
		userStats, err := s.stats.GetUserStats(ctx, u.Id, window)
		if err != nil {
			return nil, fmt.Errorf("failed to compute stats for user %d: %w", u.Id, err)
		}
		entries = append(entries, Entry{
			User:            u,
			Stats:           userStats.Stats,
			RqcScore:        userStats.RqcScore,
			PerformanceRate: userStats.PerformanceRate,
		})
	}

	rank(entries)
	log.Debugf("ranked %d leaderboard entries", len(entries))
	return visibleTo(caller, entries, limit), nil
}

func eligible(u user.User) bool {
	if !u.Active {
		return false
	}
	if strings.EqualFold(u.Username, user.ReservedAdminName) {
		return false
	}
	if strings.EqualFold(u.DisplayName, user.ReservedAdminName) {
		return false
	}
	return true
}

// rank sorts by performance rate descending, breaking ties by total task
// count descending, and assigns ranks 1..N over the sorted list.
func rank(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].PerformanceRate != entries[j].PerformanceRate {
			return entries[i].PerformanceRate > entries[j].PerformanceRate
		}
		return entries[i].Stats.TotalTasks > entries[j].Stats.TotalTasks
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
}

// visibleTo truncates the ranked list for the caller. Admins get the first
// limit entries (all when limit is 0); everyone else gets the top 3 plus
// their own entry when ranked below, never duplicated.
func visibleTo(caller user.User, entries []Entry, limit int) []Entry {
	if caller.IsAdmin() {
		if limit <= 0 || limit >= len(entries) {
			return entries
		}
		return entries[:limit]
	}

	top := len(entries)
	if top > visibleTop {
		top = visibleTop
	}
	visible := make([]Entry, top)
	copy(visible, entries[:top])

	for _, e := range entries[top:] {
		if e.User.Id == caller.Id {
			visible = append(visible, e)
			break
		}
	}
	return visible
}
