// Package logbook encodes saved sessions as log lines and derives every
// statistic shown to the user from the stored lines.
package logbook

import (
	"fmt"
	"strings"
	"time"

	"telegram-session-counter/internal/models"
)

const (
	dayLayout  = "2006-01-02"
	timeLayout = "3:04 PM"

	sep = " | "

	labelNote    = "Note"
	labelMood    = "Mood"
	labelContext = "Context"
)

// DayKey is the LogStore key for the calendar day of t in t's location.
func DayKey(t time.Time) string { return t.Format(dayLayout) }

// TimeLabel renders a 12-hour clock label such as "2:30 PM".
func TimeLabel(t time.Time) string { return t.Format(timeLayout) }

// Format builds the log line for e:
//
//	2:30 PM - 2:41 PM | Kicks - Intensity 3/5 (4 counts) | Note: felt strong | Mood: 🙂 | Context: Walking
//
// Empty optional fields are left out. Free text goes through Clean.
func Format(e models.Entry) string {
	var b strings.Builder
	b.WriteString(e.StartLabel)
	b.WriteString(" - ")
	b.WriteString(e.EndLabel)
	b.WriteString(sep)
	b.WriteString(Clean(e.Type))
	if e.Type == models.TypeKicks && validIntensity(e.Intensity) {
		fmt.Fprintf(&b, " - Intensity %d/5", e.Intensity)
	}
	fmt.Fprintf(&b, " (%d %s)", e.Count, countWord(e.Count))
	writeSegment(&b, labelNote, e.Note)
	writeSegment(&b, labelMood, e.Mood)
	writeSegment(&b, labelContext, e.Context)
	return b.String()
}

func writeSegment(b *strings.Builder, label, value string) {
	value = Clean(value)
	if value == "" {
		return
	}
	b.WriteString(sep)
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
}

func countWord(n int) string {
	if n > 1 {
		return "counts"
	}
	return "count"
}

// Clean trims s and replaces "|" with "/" so free text can never open a new
// segment. Inner spacing and line breaks are kept.
func Clean(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "|", "/"))
}

func validIntensity(n int) bool { return n >= 1 && n <= 5 }
