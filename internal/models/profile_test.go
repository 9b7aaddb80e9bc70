package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDaysSinceStart(t *testing.T) {
	now := time.Date(2026, time.October, 14, 18, 0, 0, 0, time.UTC)

	days, ok := UserProfile{StartDate: "10/01/2026"}.DaysSinceStart(now)
	assert.True(t, ok)
	assert.Equal(t, 13, days)

	_, ok = UserProfile{StartDate: "2026-10-01"}.DaysSinceStart(now)
	assert.False(t, ok)
}

func TestAge(t *testing.T) {
	now := time.Date(2026, time.October, 14, 9, 0, 0, 0, time.UTC)

	age, ok := UserProfile{DOB: "10/14/1990"}.Age(now)
	assert.True(t, ok)
	assert.Equal(t, 36, age)

	age, _ = UserProfile{DOB: "10/15/1990"}.Age(now)
	assert.Equal(t, 35, age)

	_, ok = UserProfile{}.Age(now)
	assert.False(t, ok)
}

func TestTheme(t *testing.T) {
	assert.True(t, ThemePink.Valid())
	assert.False(t, Theme("purple").Valid())
	assert.Equal(t, "#6366f1", Theme("").Color())
	assert.Equal(t, "#10b981", ThemeGreen.Color())
}

func TestDaysSinceStartInFuture(t *testing.T) {
	now := time.Date(2026, time.October, 14, 18, 0, 0, 0, time.UTC)

	days, ok := UserProfile{StartDate: "10/16/2026"}.DaysSinceStart(now)
	assert.True(t, ok)
	assert.Equal(t, -2, days)
}
