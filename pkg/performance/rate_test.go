package performance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRate_BlendsAllThreeComponents(t *testing.T) {
	// given: rqc 90, wnd -20 -> 80, wndot -10 -> 90

	// when
	rate := Rate(90, -20, -10)

	// then
	assert.Equal(t, 86.67, rate)
}

func TestRate_MissingRqcNeverPenalizes(t *testing.T) {
	// given: no rqc score available, wnd -20 -> 80, wndot -10 -> 90

	// when
	rate := Rate(0, -20, -10)

	// then: two-way average, not a three-way average with a zero
	assert.Equal(t, 85.0, rate)
}

func TestRate_PerfectDelivery(t *testing.T) {
	assert.Equal(t, 100.0, Rate(0, 0, 0))
	assert.Equal(t, 100.0, Rate(100, 0, 0))
}

func TestRate_TotalNonDelivery(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, -100, -100))
}
