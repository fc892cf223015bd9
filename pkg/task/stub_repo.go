package task

import (
	"context"
)

type StubRepo struct {
	occurrences []TaskOccurrence
	// managers maps user id -> manager id for team scope resolution.
	managers map[int]int
	err      error
}

func NewStubRepo() *StubRepo {
	return &StubRepo{managers: map[int]int{}}
}

func (s *StubRepo) Add(occurrences ...TaskOccurrence) {
	s.occurrences = append(s.occurrences, occurrences...)
}

func (s *StubRepo) SetManager(userId, managerId int) {
	s.managers[userId] = managerId
}

func (s *StubRepo) SetError(err error) {
	s.err = err
}

func (s *StubRepo) FindOccurrences(ctx context.Context, scope Scope) ([]TaskOccurrence, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make([]TaskOccurrence, 0, len(s.occurrences))
	for _, occ := range s.occurrences {
		switch scope.Kind {
		case ScopeUser:
			if occ.UserId == scope.UserId {
				result = append(result, occ)
			}
		case ScopeTeam:
			if s.managers[occ.UserId] == scope.ManagerId {
				result = append(result, occ)
			}
		case ScopeAll:
			result = append(result, occ)
		}
	}
	return result, nil
}

func (s *StubRepo) Cleanup() {
	s.occurrences = nil
	s.managers = map[int]int{}
	s.err = nil
}
