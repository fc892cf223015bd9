package event_bus

import "time"

const (
	// StatsViewed is published after a successful personal stats read. The
	// snapshot sweep subscribes to it to top up missing frozen weeks.
	StatsViewed EventType = "stats.viewed"

	// WeekFrozen is published after a weekly snapshot row is stored.
	WeekFrozen EventType = "snapshot.week_frozen"
)

type StatsViewedData struct {
	UserId int
	From   time.Time
	To     time.Time
}

type WeekFrozenData struct {
	UserId    int
	WeekStart time.Time
}
