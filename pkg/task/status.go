package task

import "strings"

// Status is the closed set of classification-relevant statuses. Source
// systems store dozens of case/spelling variants; they are normalized here
// once so the classifier never matches strings.
type Status string

const (
	StatusUnknown    Status = "unknown"
	StatusCompleted  Status = "completed"
	StatusPending    Status = "pending"
	StatusShifted    Status = "shifted"
	StatusNotDone    Status = "not_done"
	StatusCantBeDone Status = "cant_be_done"
)

// ShiftedGlyph is the reserved marker some sources write instead of the
// literal "shifted" status.
const ShiftedGlyph = "⏩"

// NormalizeStatus maps a raw status string to its canonical bucket.
// "yes" counts as completed only for FMS records.
func NormalizeStatus(raw string, source SourceType) Status {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "completed", "done":
		return StatusCompleted
	case "yes":
		if source == SourceFMS {
			return StatusCompleted
		}
		return StatusUnknown
	case "pending":
		return StatusPending
	case "shifted", ShiftedGlyph:
		return StatusShifted
	case "not done", "notdone":
		return StatusNotDone
	case "can't be done", "can not be done", "cant be done", "cannot be done":
		return StatusCantBeDone
	}
	return StatusUnknown
}
