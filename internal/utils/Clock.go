package utils

import "time"

// Clock abstracts the current time. Week eligibility and delay
// classification both depend on "now", so services take a Clock instead of
// calling time.Now directly and tests pin it to a fixed moment.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now.
type SystemClock struct{}

func (s SystemClock) Now() time.Time {
	return time.Now()
}

// MockClock serves a fixed, settable time in tests.
type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
