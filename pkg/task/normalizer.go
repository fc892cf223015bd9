package task

import (
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// DelegationRecord is a row from the delegation tracker: typed date columns
// plus separate HH:MM:SS time-of-day strings.
type DelegationRecord struct {
	Id          int
	UserId      int
	Username    string
	Title       string
	Status      string
	PlannedDate *time.Time
	PlannedTime string
	ActualDate  *time.Time
	ActualTime  string
}

// FMSRecord is a row from the FMS tracker. Planned and Actual are free-text
// timestamps and need best-effort parsing.
type FMSRecord struct {
	Id       int
	UserId   int
	Username string
	Title    string
	Status   string
	Planned  string
	Actual   string
}

// ChecklistRecord is a row from the checklist tracker. There are no time
// columns; the end-of-day default always applies.
type ChecklistRecord struct {
	Id          int
	UserId      int
	Username    string
	Title       string
	Status      string
	PlannedDate *time.Time
	ActualDate  *time.Time
}

// fmsLayouts are tried in order against FMS free-text timestamps before
// falling back to locale-default layouts.
var fmsLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"02-01-2006 15:04:05",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04",
	"02-01-2006 15:04",
	"02/01/2006 15:04",
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
}

var fallbackLayouts = []string{
	time.ANSIC,
	time.UnixDate,
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
}

func NormalizeDelegation(rec DelegationRecord) TaskOccurrence {
	return TaskOccurrence{
		Source:      SourceDelegation,
		UserId:      rec.UserId,
		Username:    rec.Username,
		Title:       rec.Title,
		Status:      NormalizeStatus(rec.Status, SourceDelegation),
		RawStatus:   rec.Status,
		PlannedDate: truncateDate(rec.PlannedDate),
		PlannedTime: parseTimeOfDay(rec.PlannedTime),
		ActualDate:  truncateDate(rec.ActualDate),
		ActualTime:  parseTimeOfDay(rec.ActualTime),
	}
}

func NormalizeFMS(rec FMSRecord) TaskOccurrence {
	plannedDate, plannedTime := parseFreeText(rec.Planned)
	actualDate, actualTime := parseFreeText(rec.Actual)
	return TaskOccurrence{
		Source:      SourceFMS,
		UserId:      rec.UserId,
		Username:    rec.Username,
		Title:       rec.Title,
		Status:      NormalizeStatus(rec.Status, SourceFMS),
		RawStatus:   rec.Status,
		PlannedDate: plannedDate,
		PlannedTime: plannedTime,
		ActualDate:  actualDate,
		ActualTime:  actualTime,
	}
}

func NormalizeChecklist(rec ChecklistRecord) TaskOccurrence {
	return TaskOccurrence{
		Source:      SourceChecklist,
		UserId:      rec.UserId,
		Username:    rec.Username,
		Title:       rec.Title,
		Status:      NormalizeStatus(rec.Status, SourceChecklist),
		RawStatus:   rec.Status,
		PlannedDate: truncateDate(rec.PlannedDate),
		ActualDate:  truncateDate(rec.ActualDate),
	}
}

// parseFreeText parses an FMS free-text timestamp into a date plus
// time-of-day offset. An unparsable value yields nil, nil; no error escapes.
func parseFreeText(value string) (*time.Time, *time.Duration) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range fmsLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return splitTimestamp(ts, layout)
		}
	}
	for _, layout := range fallbackLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return splitTimestamp(ts, layout)
		}
	}
	log.Debugf("unparsable timestamp %q, treating as unknown", value)
	return nil, nil
}

// splitTimestamp separates a parsed timestamp into date and time-of-day.
// Date-only layouts yield a nil time so the end-of-day default applies.
func splitTimestamp(ts time.Time, layout string) (*time.Time, *time.Duration) {
	date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	if !strings.ContainsAny(layout, ":") {
		return &date, nil
	}
	tod := ts.Sub(date)
	return &date, &tod
}

func parseTimeOfDay(value string) *time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range []string{"15:04:05", "15:04"} {
		if ts, err := time.Parse(layout, value); err == nil {
			tod := time.Duration(ts.Hour())*time.Hour +
				time.Duration(ts.Minute())*time.Minute +
				time.Duration(ts.Second())*time.Second
			return &tod
		}
	}
	log.Debugf("unparsable time of day %q, falling back to default", value)
	return nil
}

func truncateDate(ts *time.Time) *time.Time {
	if ts == nil {
		return nil
	}
	date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, ts.Location())
	return &date
}
