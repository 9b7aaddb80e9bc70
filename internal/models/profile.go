package models

import (
	"math"
	"time"
)

// DateLayout is how profile dates are entered and stored.
const DateLayout = "01/02/2006"

// ParseDate validates a MM/DD/YYYY date.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// DaysSinceStart counts whole days from StartDate to now; ok is false when
// the date is missing or unreadable.
func (p UserProfile) DaysSinceStart(now time.Time) (days int, ok bool) {
	start, err := ParseDate(p.StartDate, now.Location())
	if err != nil {
		return 0, false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return int(math.Round(today.Sub(start).Hours() / 24)), true
}

// Age is the number of completed years since DOB.
func (p UserProfile) Age(now time.Time) (years int, ok bool) {
	dob, err := ParseDate(p.DOB, now.Location())
	if err != nil {
		return 0, false
	}
	years = now.Year() - dob.Year()
	if now.Month() < dob.Month() || now.Month() == dob.Month() && now.Day() < dob.Day() {
		years--
	}
	return years, true
}
