package performance

import "time"

// Window is an inclusive [from, to] date range. The zero value is the
// lifetime window, which treats every occurrence as in range.
type Window struct {
	from   time.Time
	to     time.Time
	ranged bool
}

// NewWindow builds a ranged window from two timestamps; only their date
// parts participate in comparisons.
func NewWindow(from, to time.Time) Window {
	return Window{from: dateOf(from), to: dateOf(to), ranged: true}
}

// Lifetime is the unbounded window.
func Lifetime() Window {
	return Window{}
}

func (w Window) Ranged() bool {
	return w.ranged
}

func (w Window) From() time.Time {
	return w.from
}

func (w Window) To() time.Time {
	return w.to
}

// ContainsDate reports whether the date part of d falls inside the window.
func (w Window) ContainsDate(d time.Time) bool {
	if !w.ranged {
		return true
	}
	date := dateOf(d)
	return !date.Before(w.from) && !date.After(w.to)
}

// WeekWindow is the Monday 00:00:00 through Sunday 23:59:59 span of one ISO
// week. Weeks never split mid-computation; all week math is ISO
// (Monday=1..Sunday=7).
type WeekWindow struct {
	start time.Time
}

// WeekOf returns the week window containing the given reference date.
func WeekOf(t time.Time) WeekWindow {
	date := dateOf(t)
	offset := (int(date.Weekday()) + 6) % 7 // days since Monday
	return WeekWindow{start: date.AddDate(0, 0, -offset)}
}

// Start is Monday at midnight.
func (w WeekWindow) Start() time.Time {
	return w.start
}

// End is Sunday at 23:59:59.
func (w WeekWindow) End() time.Time {
	return w.start.AddDate(0, 0, 7).Add(-time.Second)
}

func (w WeekWindow) ContainsDate(d time.Time) bool {
	date := dateOf(d)
	return !date.Before(w.start) && date.Before(w.start.AddDate(0, 0, 7))
}

// Window converts the week into an inclusive date range.
func (w WeekWindow) Window() Window {
	return NewWindow(w.start, w.start.AddDate(0, 0, 6))
}

func (w WeekWindow) Prev() WeekWindow {
	return WeekWindow{start: w.start.AddDate(0, 0, -7)}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
