package logbook

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-session-counter/internal/models"
)

var now = time.Date(2026, time.October, 14, 15, 0, 0, 0, time.UTC)

func day(offset int) string { return DayKey(now.AddDate(0, 0, offset)) }

func entry(start, typ string, count int) string {
	return Format(models.Entry{StartLabel: start, EndLabel: start, Type: typ, Count: count})
}

func TestEmptyStore(t *testing.T) {
	b := Open(models.LogStore{})

	assert.True(t, b.Empty())
	assert.Zero(t, b.Streak(now))
	assert.Empty(t, b.Weekly())
	assert.False(t, b.TimeOfDay().HasData())
	assert.Equal(t, InsightStart, b.Insight(now).Kind)
	assert.Equal(t, Delta{}, b.Delta(now))
}

func TestEmptyDayListsAreIgnored(t *testing.T) {
	b := Open(models.LogStore{day(0): {}, day(-1): nil})
	assert.True(t, b.Empty())
	assert.Zero(t, b.DaysTracked())
}

func TestDailyTotal(t *testing.T) {
	b := Open(models.LogStore{
		day(0): {entry("9:00 AM", models.TypeKicks, 3), entry("1:00 PM", models.TypeRoll, 5)},
	})

	assert.Equal(t, 8, b.DailyTotal(day(0)))
	assert.Equal(t, 2, b.SessionCount(day(0)))
	assert.Zero(t, b.DailyTotal(day(-1)))
}

func TestStreak(t *testing.T) {
	store := models.LogStore{
		day(0):  {entry("9:00 AM", models.TypeKicks, 1)},
		day(-1): {entry("9:00 AM", models.TypeKicks, 1)},
		day(-2): {entry("9:00 AM", models.TypeKicks, 1)},
		day(-4): {entry("9:00 AM", models.TypeKicks, 1)},
	}
	assert.Equal(t, 3, Open(store).Streak(now))

	delete(store, day(0))
	assert.Zero(t, Open(store).Streak(now), "a streak must include today")

	store[day(0)] = []string{entry("9:00 AM", models.TypeKicks, 1)}
	store[day(1)] = []string{entry("9:00 AM", models.TypeKicks, 1)}
	assert.Equal(t, 3, Open(store).Streak(now), "future days are skipped")
}

func TestStreakAcrossMonthBoundary(t *testing.T) {
	first := time.Date(2026, time.March, 1, 8, 0, 0, 0, time.UTC)
	store := models.LogStore{
		"2026-03-01": {entry("8:00 AM", models.TypeRoll, 1)},
		"2026-02-28": {entry("8:00 AM", models.TypeRoll, 1)},
		"2026-02-27": {entry("8:00 AM", models.TypeRoll, 1)},
	}
	assert.Equal(t, 3, Open(store).Streak(first))
}

func TestCompare(t *testing.T) {
	cases := []struct {
		today, yesterday int
		want             int
	}{
		{5, 0, 100},
		{0, 0, 0},
		{15, 10, 50},
		{5, 10, -50},
		{1, 3, -67},
		{9, 8, 13},
		{0, 4, -100},
	}
	for _, c := range cases {
		d := Compare(c.today, c.yesterday)
		assert.Equal(t, c.want, d.PercentChange, "%d vs %d", c.today, c.yesterday)
		assert.Equal(t, c.today-c.yesterday, d.Difference)
	}
}

func TestWeekly(t *testing.T) {
	store := models.LogStore{}
	for i := 0; i < 9; i++ {
		store[day(-i)] = []string{entry("9:00 AM", models.TypeKicks, i+1)}
	}

	week := Open(store).Weekly()
	require.Len(t, week, 7)
	assert.Equal(t, day(-6), week[0].DayKey)
	assert.Equal(t, 7, week[0].Count)
	assert.Equal(t, day(0), week[6].DayKey)
	assert.Equal(t, 1, week[6].Count)

	short := Open(models.LogStore{day(-3): {entry("9:00 AM", models.TypeRoll, 2)}, day(0): {entry("9:00 AM", models.TypeRoll, 4)}}).Weekly()
	assert.Equal(t, []DayTotal{{DayKey: day(-3), Count: 2, Sessions: 1}, {DayKey: day(0), Count: 4, Sessions: 1}}, short)
}

func TestTimeOfDay(t *testing.T) {
	store := models.LogStore{
		day(0): {
			entry("6:00 AM", models.TypeKicks, 1),
			entry("11:00 AM", models.TypeKicks, 1),
			entry("4:59 PM", models.TypeKicks, 1),
			entry("5:00 PM", models.TypeKicks, 1),
		},
		day(-1): {
			entry("9:00 PM", models.TypeRoll, 1),
			entry("4:00 AM", models.TypeRoll, 1),
			"not a time | Roll (1 count)",
		},
	}

	h := Open(store).TimeOfDay()
	assert.Equal(t, Histogram{Morning: 1, Afternoon: 2, Evening: 1, Night: 2, Matched: 6}, h)
	assert.True(t, h.HasData())
	assert.Equal(t, 2, h.Max())

	h = Open(models.LogStore{day(0): {"?? | Roll (1 count)"}}).TimeOfDay()
	assert.False(t, h.HasData())
	assert.Equal(t, 1, h.Max())
}

func TestOverview(t *testing.T) {
	store := models.LogStore{
		day(0):  {entry("9:00 AM", models.TypeKicks, 4), entry("9:30 AM", models.TypeRoll, 1)},
		day(-1): {entry("9:00 AM", models.TypeKicks, 2)},
	}

	got := Open(store).Overview()
	assert.Equal(t, 3, got.Sessions)
	assert.Equal(t, 7, got.Counts)
	assert.InDelta(t, 2.3, got.AvgPerSession, 1e-9)
	assert.Equal(t, []TypeCount{{Type: models.TypeKicks, Sessions: 2}, {Type: models.TypeRoll, Sessions: 1}}, got.Types)
}

func TestDays(t *testing.T) {
	store := models.LogStore{
		day(-1): {entry("9:00 AM", models.TypeKicks, 2)},
		day(0):  {entry("9:00 AM", models.TypeKicks, 3), entry("5:00 PM", models.TypeMovement, 1)},
	}

	days := Open(store).Days()
	require.Len(t, days, 2)
	assert.Equal(t, day(0), days[0].Key)
	assert.Equal(t, 2, days[0].Sessions)
	assert.Equal(t, 4, days[0].Count)
	assert.Equal(t, models.TypeMovement, days[0].Entries[1].Type)
	assert.Equal(t, day(-1), days[1].Key)
}

func TestInsightLadder(t *testing.T) {
	t.Run("on fire", func(t *testing.T) {
		store := models.LogStore{
			day(0):  {entry("9:00 AM", models.TypeKicks, 5)},
			day(-1): {entry("9:00 AM", models.TypeKicks, 3)},
		}
		got := Open(store).Insight(now)
		assert.Equal(t, InsightOnFire, got.Kind)
		assert.Equal(t, "2 more counts than yesterday. Keep pushing!", got.Message)
	})

	t.Run("dedication", func(t *testing.T) {
		store := models.LogStore{
			day(0):  {entry("9:00 AM", models.TypeKicks, 1), entry("10:00 AM", models.TypeKicks, 1)},
			day(-1): {entry("9:00 AM", models.TypeKicks, 10)},
		}
		got := Open(store).Insight(now)
		assert.Equal(t, InsightDedication, got.Kind)
		assert.Equal(t, "2 sessions today. Your consistency is impressive!", got.Message)
	})

	t.Run("momentum", func(t *testing.T) {
		store := models.LogStore{}
		for i := 0; i < 7; i++ {
			store[day(-i)] = []string{entry("9:00 AM", models.TypeRoll, 1)}
		}
		store[day(-10)] = []string{entry("9:00 AM", models.TypeRoll, 1), entry("9:10 AM", models.TypeRoll, 1)}
		got := Open(store).Insight(now)
		assert.Equal(t, InsightMomentum, got.Kind)
		assert.Equal(t, "8 days tracked with 1.1 avg sessions/day!", got.Message)
	})

	t.Run("keep going", func(t *testing.T) {
		store := models.LogStore{day(-1): {entry("9:00 AM", models.TypeRoll, 1)}}
		assert.Equal(t, InsightKeepGoing, Open(store).Insight(now).Kind)
	})
}

func TestSnapshotIsPure(t *testing.T) {
	store := models.LogStore{}
	for i := 0; i < 5; i++ {
		store[day(-i)] = []string{entry(fmt.Sprintf("%d:00 PM", i+1), models.TypeKicks, i+2)}
	}

	first := Snapshot(store, now)
	second := Snapshot(store, now)
	assert.Equal(t, first, second)
	assert.Equal(t, 5, first.Streak)
	assert.Equal(t, day(0), first.TodayKey)
	assert.Len(t, store, 5)
}
