package domain

import "time"

// Window is a half-open time interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the window covering the calendar day containing t, in
// t's location.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// Contains reports whether ts falls inside the window.
func (w Window) Contains(ts time.Time) bool {
	return !ts.Before(w.Start) && ts.Before(w.End)
}

// WidenTo extends the window's lower bound to ts when ts precedes it. The
// source attributes a night's sleep to the day the user wakes, so segments
// for today can start the prior evening; widening keeps the replace scope
// aligned with what was fetched.
func (w Window) WidenTo(ts time.Time) Window {
	if ts.Before(w.Start) {
		w.Start = ts
	}
	return w
}
