// Package renewal computes subscription renewal countdowns.
package renewal

import (
	"time"
)

// Kind is the plan recurrence unit.
type Kind string

// Recognized recurrence kinds.
const (
	Monthly Kind = "monthly"
	Yearly  Kind = "yearly"
)

// Plan describes one recurring subscription.
type Plan struct {
	Name   string
	Kind   Kind
	Anchor time.Time // first billing date
	Day    int       // optional fixed day-of-month; 0 means anchor's day
}

// Band classifies days-remaining for display severity.
type Band string

// Severity bands, from most to least pressing.
const (
	BandOverdue Band = "overdue"
	BandToday   Band = "today"
	BandUrgent  Band = "urgent"
	BandWarning Band = "warning"
	BandNormal  Band = "normal"
)

// Countdown is the scheduler result for one plan.
type Countdown struct {
	Plan          string
	Instant       time.Time
	DaysRemaining int
	Band          Band
}

// Next returns the first renewal instant at or after now, advancing from
// the anchor one calendar unit at a time. Month steps preserve the
// configured day-of-month clamped to the target month's length; naive
// day-count division is wrong because months have unequal lengths. The
// loop is bounded by the number of elapsed recurrences since the anchor.
// ok is false when the plan is malformed (zero anchor or unknown kind):
// the caller renders "no data" rather than a guess.
func Next(p Plan, now time.Time) (Countdown, bool) {
	if p.Anchor.IsZero() {
		return Countdown{}, false
	}
	if p.Kind != Monthly && p.Kind != Yearly {
		return Countdown{}, false
	}

	day := p.Day
	if day < 1 || day > 31 {
		day = p.Anchor.Day()
	}

	t := p.Anchor
	for t.Before(now) {
		if p.Kind == Monthly {
			t = nextMonth(t, day)
		} else {
			t = nextYear(t)
		}
	}

	days := int(t.Sub(now) / (24 * time.Hour))
	c := Countdown{
		Plan:          p.Name,
		Instant:       t,
		DaysRemaining: days,
		Band:          bandFor(days),
	}
	return c, true
}

func bandFor(days int) Band {
	switch {
	case days < 0:
		return BandOverdue
	case days == 0:
		return BandToday
	case days <= 7:
		return BandUrgent
	case days <= 30:
		return BandWarning
	default:
		return BandNormal
	}
}

// nextMonth advances one calendar month, clamping the preferred day to the
// target month's actual length (a plan anchored on the 31st renews on the
// 28th/29th/30th in shorter months).
func nextMonth(t time.Time, day int) time.Time {
	year, month := t.Year(), t.Month()+1
	if month > time.December {
		month = time.January
		year++
	}
	d := day
	if last := daysIn(year, month); d > last {
		d = last
	}
	return time.Date(year, month, d, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

// nextYear advances one calendar year preserving month/day, clamping
// Feb 29 anchors in non-leap years.
func nextYear(t time.Time) time.Time {
	year := t.Year() + 1
	d := t.Day()
	if last := daysIn(year, t.Month()); d > last {
		d = last
	}
	return time.Date(year, t.Month(), d, t.Hour(), t.Minute(), t.Second(), 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
