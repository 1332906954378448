package clock

import "time"

// Clock supplies the current time. The engine never reads the wall clock
// directly so that expiry and calendar-date logic can be tested with a
// fixed clock.
type Clock interface {
	Now() time.Time
}

// System is a Clock backed by time.Now.
type System struct{}

func NewSystem() *System {
	return &System{}
}

func (*System) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that returns a settable instant. Intended for tests.
type Fixed struct {
	now time.Time
}

func NewFixed(now time.Time) *Fixed {
	return &Fixed{now: now}
}

func (f *Fixed) Now() time.Time {
	return f.now
}

// Set moves the clock to the given instant.
func (f *Fixed) Set(now time.Time) {
	f.now = now
}

// Advance moves the clock forward by d.
func (f *Fixed) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

// SameDay reports whether a and b fall on the same calendar date in a's
// location. Daily bonus eligibility is a calendar-date comparison, not a
// rolling 24h window.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// NextMidnight returns the first instant of the calendar day after t,
// in t's location.
func NextMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}
