package leaderboard

import (
	"github.com/Fooracles/SystemApp-sub009/pkg/performance"
	"github.com/Fooracles/SystemApp-sub009/pkg/user"
)

// Entry is one ranked leaderboard row.
type Entry struct {
	User            user.User
	Stats           performance.PersonalStats
	RqcScore        float64
	PerformanceRate float64
	Rank            int
}

// visibleTop is how many leading entries a non-admin caller may see.
const visibleTop = 3
