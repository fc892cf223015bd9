package rqc

import (
	"context"
	"strings"
	"time"
)

type scoreEntry struct {
	score      float64
	recordedAt time.Time
}

type StubProvider struct {
	scores map[string][]scoreEntry
	err    error
}

func NewStubProvider() *StubProvider {
	return &StubProvider{scores: map[string][]scoreEntry{}}
}

func (s *StubProvider) AddScore(displayName string, score float64, recordedAt time.Time) {
	s.scores[displayName] = append(s.scores[displayName], scoreEntry{score, recordedAt})
}

func (s *StubProvider) SetError(err error) {
	s.err = err
}

func (s *StubProvider) Score(ctx context.Context, displayName string, from, to *time.Time) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	entries := s.scores[displayName]
	if len(entries) == 0 {
		for name, candidates := range s.scores {
			if strings.HasPrefix(name, displayName) {
				entries = candidates
				break
			}
		}
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if from != nil && to != nil {
		sum, count := 0.0, 0
		for _, e := range entries {
			if !e.recordedAt.Before(*from) && !e.recordedAt.After(*to) {
				sum += e.score
				count++
			}
		}
		if count == 0 {
			return 0, nil
		}
		return sum / float64(count), nil
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.recordedAt.After(latest.recordedAt) {
			latest = e
		}
	}
	return latest.score, nil
}

func (s *StubProvider) Cleanup() {
	s.scores = map[string][]scoreEntry{}
	s.err = nil
}
