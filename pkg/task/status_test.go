package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		source   SourceType
		expected Status
	}{
		{"completed lowercase", "completed", SourceDelegation, StatusCompleted},
		{"done uppercase", "DONE", SourceChecklist, StatusCompleted},
		{"completed with whitespace", "  Completed  ", SourceDelegation, StatusCompleted},
		{"yes is completed for fms", "yes", SourceFMS, StatusCompleted},
		{"yes mixed case for fms", "Yes", SourceFMS, StatusCompleted},
		{"yes is unknown for delegation", "yes", SourceDelegation, StatusUnknown},
		{"yes is unknown for checklist", "yes", SourceChecklist, StatusUnknown},
		{"pending", "Pending", SourceDelegation, StatusPending},
		{"shifted word", "shifted", SourceDelegation, StatusShifted},
		{"shifted glyph", "⏩", SourceFMS, StatusShifted},
		{"not done with space", "Not Done", SourceDelegation, StatusNotDone},
		{"notdone joined", "notdone", SourceFMS, StatusNotDone},
		{"cant be done apostrophe", "Can't be done", SourceDelegation, StatusCantBeDone},
		{"can not be done", "can not be done", SourceFMS, StatusCantBeDone},
		{"cant be done plain", "cant be done", SourceChecklist, StatusCantBeDone},
		{"cannot be done", "Cannot be done", SourceDelegation, StatusCantBeDone},
		{"empty", "", SourceDelegation, StatusUnknown},
		{"garbage", "in progress", SourceFMS, StatusUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStatus(tt.raw, tt.source))
		})
	}
}
