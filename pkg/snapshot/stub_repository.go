package snapshot

import (
	"context"
	"sort"
	"sync"
	"time"
)

type snapshotKey struct {
	userId    int
	weekStart time.Time
}

type StubRepository struct {
	mu      sync.Mutex
	nextId  int
	data    map[snapshotKey]Snapshot
	markers map[string]bool
	// StoreCalls counts Store invocations, including discarded conflicts.
	StoreCalls int
}

func NewStubRepository() *StubRepository {
	return &StubRepository{
		data:    map[snapshotKey]Snapshot{},
		markers: map[string]bool{},
	}
}

func (s *StubRepository) Store(ctx context.Context, snapshot Snapshot) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.StoreCalls++
	key := snapshotKey{snapshot.UserId, snapshot.WeekStart}
	if _, exists := s.data[key]; exists {
		return false, nil
	}
	s.nextId++
	snapshot.Id = s.nextId
	s.data[key] = snapshot
	return true, nil
}

func (s *StubRepository) FindForUser(ctx context.Context, userId int, fromWeek, toWeek time.Time) ([]Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshots := make([]Snapshot, 0, len(s.data))
	for key, snap := range s.data {
		if key.userId == userId && !key.weekStart.Before(fromWeek) && !key.weekStart.After(toWeek) {
			snapshots = append(snapshots, snap)
		}
	}
	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].WeekStart.Before(snapshots[j].WeekStart)
	})
	return snapshots, nil
}

func (s *StubRepository) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[snapshotKey]Snapshot{}
	return nil
}

func (s *StubRepository) HasMarker(ctx context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.markers[key], nil
}

func (s *StubRepository) WriteMarker(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.markers[key] = true
	return nil
}

// Delete removes one snapshot; used by tests exercising the all-or-nothing rule.
func (s *StubRepository) Delete(userId int, weekStart time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, snapshotKey{userId, weekStart})
}

func (s *StubRepository) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data)
}

func (s *StubRepository) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = map[snapshotKey]Snapshot{}
	s.markers = map[string]bool{}
	s.nextId = 0
	s.StoreCalls = 0
}
