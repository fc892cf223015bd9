package performance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow_ContainsDateInclusiveBounds(t *testing.T) {
	w := NewWindow(
		time.Date(2025, time.March, 10, 8, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 16, 12, 0, 0, 0, time.UTC),
	)

	assert.True(t, w.Ranged())
	assert.True(t, w.ContainsDate(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.ContainsDate(time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.ContainsDate(time.Date(2025, time.March, 9, 23, 59, 59, 0, time.UTC)))
	assert.False(t, w.ContainsDate(time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)))
}

func TestLifetime_ContainsEverything(t *testing.T) {
	w := Lifetime()

	assert.False(t, w.Ranged())
	assert.True(t, w.ContainsDate(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, w.ContainsDate(time.Date(2999, time.December, 31, 0, 0, 0, 0, time.UTC)))
}

func TestWeekOf_AnchorsOnMonday(t *testing.T) {
	tests := []struct {
		name      string
		reference time.Time
		wantStart time.Time
	}{
		{
			"wednesday",
			time.Date(2025, time.March, 12, 15, 30, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"monday itself",
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday belongs to the week started the previous monday",
			time.Date(2025, time.March, 16, 23, 0, 0, 0, time.UTC),
			time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStart, WeekOf(tt.reference).Start())
		})
	}
}

func TestWeekWindow_EndIsSundayEndOfDay(t *testing.T) {
	week := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.March, 16, 23, 59, 59, 0, time.UTC), week.End())
}

func TestWeekWindow_ContainsDateBounds(t *testing.T) {
	week := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	assert.True(t, week.ContainsDate(time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, week.ContainsDate(time.Date(2025, time.March, 16, 10, 0, 0, 0, time.UTC)))
	assert.False(t, week.ContainsDate(time.Date(2025, time.March, 9, 0, 0, 0, 0, time.UTC)))
	assert.False(t, week.ContainsDate(time.Date(2025, time.March, 17, 0, 0, 0, 0, time.UTC)))
}

func TestWeekWindow_Prev(t *testing.T) {
	week := WeekOf(time.Date(2025, time.March, 12, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC), week.Prev().Start())
}
