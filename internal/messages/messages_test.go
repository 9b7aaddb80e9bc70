package messages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/models"
)

var now = time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

func TestDayLabels(t *testing.T) {
	assert.Equal(t, "Wed, October 14, 2026", DayLabel("2026-10-14"))
	assert.Equal(t, "Oct 14", ShortDay("2026-10-14"))
	assert.Equal(t, "bogus", DayLabel("bogus"))
}

func TestSessionText(t *testing.T) {
	s := &models.ActiveSession{StartedAt: now.Add(-95 * time.Second), Count: 12}
	assert.Equal(t, "⏱ Session 01:35\n\nCount: 12\n●●○○○○○○○○", Session(s, now))

	s.Count = 10
	assert.Contains(t, Session(s, now), "●●●●●●●●●●")
}

func TestAnnotate(t *testing.T) {
	s := &models.ActiveSession{StartedAt: now.Add(-time.Minute), EndedAt: now, Count: 1, Intensity: 3}
	got := Annotate(s)
	assert.Contains(t, got, "1 count in 01:00")
	assert.Contains(t, got, "Choose an activity type")
	assert.NotContains(t, got, "Intensity")

	s.Type = models.TypeKicks
	got = Annotate(s)
	assert.Contains(t, got, "Intensity: 3/5")
	assert.NotContains(t, got, "Choose an activity type")
}

func TestSummaryEmpty(t *testing.T) {
	got := Summary(logbook.Snapshot(models.LogStore{}, now), models.ThemeBlue)
	assert.Contains(t, got, "No sessions yet")
}

func TestSummary(t *testing.T) {
	store := models.LogStore{
		"2026-10-14": {
			logbook.Format(models.Entry{StartLabel: "9:00 AM", EndLabel: "9:05 AM", Type: models.TypeKicks, Intensity: 2, Count: 6}),
		},
		"2026-10-13": {
			logbook.Format(models.Entry{StartLabel: "10:00 PM", EndLabel: "10:05 PM", Type: models.TypeRoll, Count: 3}),
		},
	}
	got := Summary(logbook.Snapshot(store, now), models.ThemeGreen)

	assert.Contains(t, got, "🟢 Today: 6 counts in 1 session")
	assert.Contains(t, got, "Yesterday: 3 (+3, +100%)")
	assert.Contains(t, got, "You're On Fire!")
	assert.Contains(t, got, "Oct 13")
	assert.Contains(t, got, "Total counts: 9")
	assert.Contains(t, got, "• Kicks: 1")
}

func TestLogs(t *testing.T) {
	assert.Contains(t, Logs(nil, 3), "No records yet")

	store := models.LogStore{
		"2026-10-14": {"2:30 PM - 2:42 PM | Kicks - Intensity 3/5 (4 counts) | Note: felt strong | Mood: 🙂 | Context: Walking"},
		"2026-10-10": {"8:00 AM - 8:01 AM | Roll (1 count)"},
	}
	got := Logs(logbook.Open(store).Days(), 1)

	assert.Contains(t, got, "Wed, October 14, 2026: 1 session, 4 counts")
	assert.Contains(t, got, "#1 2:30 PM–2:42 PM · Kicks × 4 · intensity 3/5 · 🙂 · Walking · “felt strong”")
	assert.Contains(t, got, "Sat, October 10, 2026: 1 session, 1 count")
	assert.NotContains(t, got, "Roll × 1")
}

func TestProfile(t *testing.T) {
	p := &models.UserProfile{Name: "Sam", StartDate: "10/01/2026", DOB: "05/06/1990"}
	st := logbook.Snapshot(models.LogStore{"2026-10-14": {"9:00 AM - 9:01 AM | Roll (2 counts)"}}, now)

	got := Profile(p, st, now, models.ThemePink)
	assert.Contains(t, got, "🩷 Sam")
	assert.Contains(t, got, "Training since 10/01/2026 (day 14)")
	assert.Contains(t, got, "Born 05/06/1990 (36)")
	assert.Contains(t, got, "Current streak: 1 day")
	assert.Contains(t, got, "Theme: pink")

	assert.Contains(t, Profile(nil, st, now, models.ThemeBlue), "Not set")
}
