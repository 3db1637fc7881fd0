// Package gameday produces the canonical calendar-day and clock identifiers
// every daily-reset and reminder decision is based on. All comparisons in the
// rest of the codebase are plain string equality on these values.
package gameday

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Today returns the current calendar day as a date-only string in UTC.
func Today() string {
	return DayOf(time.Now())
}

// DayOf converts an arbitrary instant to its canonical day string.
func DayOf(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Clock returns the current wall-clock time truncated to minutes, used to
// match quests' scheduled reminder times.
func Clock() string {
	return ClockOf(time.Now())
}

// ClockOf converts an arbitrary instant to its canonical HH:MM string.
func ClockOf(t time.Time) string {
	return t.UTC().Format(ClockLayout)
}

// ParseClock normalizes s to the canonical zero-padded HH:MM form. The
// reminder poller matches scheduled times by string equality against Clock,
// so anything stored must round-trip through this ("9:30" becomes "09:30").
func ParseClock(s string) (string, bool) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(ClockLayout), true
}

// ValidClock reports whether s is a well-formed HH:MM string.
func ValidClock(s string) bool {
	_, ok := ParseClock(s)
	return ok
}
