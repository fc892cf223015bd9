package task

import "time"

type SourceType string

const (
	SourceDelegation SourceType = "delegation"
	SourceFMS        SourceType = "fms"
	SourceChecklist  SourceType = "checklist"
)

// endOfDay is the time-of-day applied when a record carries a date but no time.
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

// TaskOccurrence is one planned unit of work, normalized from any of the
// three source subsystems. Date fields hold the date at midnight; time fields
// hold the offset into that day. A nil date means the source value was absent
// or unparsable.
type TaskOccurrence struct {
	Source      SourceType
	UserId      int
	Username    string
	Title       string
	Status      Status
	RawStatus   string
	PlannedDate *time.Time
	PlannedTime *time.Duration
	ActualDate  *time.Time
	ActualTime  *time.Duration
}

// PlannedAt combines the planned date and time into a single timestamp,
// defaulting the time to end-of-day. Nil when no planned date is known.
func (o TaskOccurrence) PlannedAt() *time.Time {
	return combine(o.PlannedDate, o.PlannedTime)
}

// ActualAt combines the actual date and time, with the same default rule.
func (o TaskOccurrence) ActualAt() *time.Time {
	return combine(o.ActualDate, o.ActualTime)
}

// HasActual reports whether the occurrence carries any actual data at all.
// A completed-family status without actual data is never counted as completed.
func (o TaskOccurrence) HasActual() bool {
	return o.ActualDate != nil || o.ActualTime != nil
}

// IsCompleted reports whether the occurrence is completed: a completed-family
// status backed by actual data.
func (o TaskOccurrence) IsCompleted() bool {
	return o.Status == StatusCompleted && o.HasActual()
}

func combine(date *time.Time, tod *time.Duration) *time.Time {
	if date == nil {
		return nil
	}
	offset := endOfDay
	if tod != nil {
		offset = *tod
	}
	ts := date.Add(offset)
	return &ts
}

// ScopeKind selects which occurrence set a query covers.
type ScopeKind string

const (
	ScopeUser ScopeKind = "user"
	ScopeTeam ScopeKind = "team"
	ScopeAll  ScopeKind = "all"
)

// Scope identifies whose occurrences to fetch: one user, a manager's direct
// reports, or everyone.
type Scope struct {
	Kind      ScopeKind
	UserId    int
	ManagerId int
}

func UserScope(userId int) Scope {
	return Scope{Kind: ScopeUser, UserId: userId}
}

func TeamScope(managerId int) Scope {
	return Scope{Kind: ScopeTeam, ManagerId: managerId}
}

func AllScope() Scope {
	return Scope{Kind: ScopeAll}
}
