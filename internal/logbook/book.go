package logbook

import (
	"math"
	"sort"
	"time"

	"telegram-session-counter/internal/models"
)

// Book is a LogStore parsed once. All statistics are read from it without
// touching the store again, and a Book is never mutated after Open.
type Book struct {
	days map[string][]models.Entry
	keys []string // days with at least one entry, newest first
}

// Open parses every entry of store.
func Open(store models.LogStore) *Book {
	b := &Book{days: make(map[string][]models.Entry, len(store))}
	for key, lines := range store {
		if len(lines) == 0 {
			continue
		}
		entries := make([]models.Entry, len(lines))
		for i, line := range lines {
			entries[i] = Parse(line)
		}
		b.days[key] = entries
		b.keys = append(b.keys, key)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(b.keys)))
	return b
}

// Empty reports whether no session was ever saved.
func (b *Book) Empty() bool { return len(b.keys) == 0 }

// DaysTracked is the number of distinct days with a session.
func (b *Book) DaysTracked() int { return len(b.keys) }

// Entries returns the parsed entries of a day in save order.
func (b *Book) Entries(dayKey string) []models.Entry { return b.days[dayKey] }

// DailyTotal sums the counts of every session saved on dayKey.
func (b *Book) DailyTotal(dayKey string) int {
	total := 0
	for _, e := range b.days[dayKey] {
		total += e.Count
	}
	return total
}

// SessionCount is the number of sessions saved on dayKey.
func (b *Book) SessionCount(dayKey string) int { return len(b.days[dayKey]) }

// TotalSessions counts sessions across all days.
func (b *Book) TotalSessions() int {
	n := 0
	for _, key := range b.keys {
		n += len(b.days[key])
	}
	return n
}

// Streak counts consecutive days ending today that have a session. A day
// without a session ends the streak. Keys after today are ignored.
func (b *Book) Streak(now time.Time) int {
	today := noon(now)
	todayKey := DayKey(today)
	streak := 0
	for _, key := range b.keys {
		if key > todayKey {
			continue
		}
		if key != DayKey(today.AddDate(0, 0, -streak)) {
			break
		}
		streak++
	}
	return streak
}

// DayTotal is one bar of the weekly chart.
type DayTotal struct {
	DayKey   string
	Count    int
	Sessions int
}

// Weekly returns the totals of the seven most recent tracked days,
// oldest first.
func (b *Book) Weekly() []DayTotal {
	keys := b.keys
	if len(keys) > 7 {
		keys = keys[:7]
	}
	out := make([]DayTotal, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		out = append(out, DayTotal{
			DayKey:   keys[i],
			Count:    b.DailyTotal(keys[i]),
			Sessions: b.SessionCount(keys[i]),
		})
	}
	return out
}

// Histogram buckets sessions by the hour they started.
type Histogram struct {
	Morning   int // 5-11
	Afternoon int // 11-17
	Evening   int // 17-21
	Night     int // 21-5
	Matched   int
}

func (h Histogram) HasData() bool { return h.Matched > 0 }

// Max is the largest bucket, at least 1 so it can scale bars.
func (h Histogram) Max() int {
	return max(h.Morning, h.Afternoon, h.Evening, h.Night, 1)
}

// TimeOfDay builds the histogram; entries whose start time does not parse
// are left out.
func (b *Book) TimeOfDay() Histogram {
	var h Histogram
	for _, key := range b.keys {
		for _, e := range b.days[key] {
			hour, ok := StartHour(e.StartLabel)
			if !ok {
				continue
			}
			h.Matched++
			switch {
			case hour >= 5 && hour < 11:
				h.Morning++
			case hour >= 11 && hour < 17:
				h.Afternoon++
			case hour >= 17 && hour < 21:
				h.Evening++
			default:
				h.Night++
			}
		}
	}
	return h
}

// TypeCount is the number of sessions logged with one activity type.
type TypeCount struct {
	Type     string
	Sessions int
}

// Totals summarises the whole store.
type Totals struct {
	Sessions      int
	Counts        int
	AvgPerSession float64 // rounded to one decimal
	Types         []TypeCount
}

// Overview totals all sessions and breaks them down by activity type, most
// frequent first.
func (b *Book) Overview() Totals {
	var t Totals
	byType := map[string]int{}
	for _, key := range b.keys {
		for _, e := range b.days[key] {
			t.Sessions++
			t.Counts += e.Count
			if e.Type != "" {
				byType[e.Type]++
			}
		}
	}
	if t.Sessions > 0 {
		t.AvgPerSession = round1(float64(t.Counts) / float64(t.Sessions))
	}
	for typ, n := range byType {
		t.Types = append(t.Types, TypeCount{Type: typ, Sessions: n})
	}
	sort.Slice(t.Types, func(i, j int) bool {
		if t.Types[i].Sessions != t.Types[j].Sessions {
			return t.Types[i].Sessions > t.Types[j].Sessions
		}
		return t.Types[i].Type < t.Types[j].Type
	})
	return t
}

// Day is one card of the log browser.
type Day struct {
	Key      string
	Entries  []models.Entry
	Sessions int
	Count    int
}

// Days lists every tracked day, newest first.
func (b *Book) Days() []Day {
	out := make([]Day, 0, len(b.keys))
	for _, key := range b.keys {
		out = append(out, Day{
			Key:      key,
			Entries:  b.days[key],
			Sessions: len(b.days[key]),
			Count:    b.DailyTotal(key),
		})
	}
	return out
}

// Delta compares today's total with yesterday's.
type Delta struct {
	Today         int
	Yesterday     int
	Difference    int
	PercentChange int
}

// Compare computes the difference and percent change. Without a count
// yesterday the change is 100 when there is one today, else 0.
func Compare(today, yesterday int) Delta {
	d := Delta{Today: today, Yesterday: yesterday, Difference: today - yesterday}
	switch {
	case yesterday > 0:
		d.PercentChange = int(math.Floor(float64(d.Difference)/float64(yesterday)*100 + 0.5))
	case today > 0:
		d.PercentChange = 100
	}
	return d
}

// Delta compares the day of now with the day before.
func (b *Book) Delta(now time.Time) Delta {
	day := noon(now)
	return Compare(b.DailyTotal(DayKey(day)), b.DailyTotal(DayKey(day.AddDate(0, 0, -1))))
}

// noon pins t to midday so calendar arithmetic never crosses a DST edge.
func noon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

func round1(f float64) float64 { return math.Round(f*10) / 10 }

// Stats is everything the summary and profile views display.
type Stats struct {
	TodayKey      string
	TodaySessions int
	DaysTracked   int
	Delta         Delta
	Streak        int
	Weekly        []DayTotal
	TimeOfDay     Histogram
	Totals        Totals
	Insight       Insight
}

// Snapshot computes all statistics for the day of now.
func (b *Book) Snapshot(now time.Time) Stats {
	key := DayKey(now)
	return Stats{
		TodayKey:      key,
		TodaySessions: b.SessionCount(key),
		DaysTracked:   b.DaysTracked(),
		Delta:         b.Delta(now),
		Streak:        b.Streak(now),
		Weekly:        b.Weekly(),
		TimeOfDay:     b.TimeOfDay(),
		Totals:        b.Overview(),
		Insight:       b.Insight(now),
	}
}

// Snapshot parses store and computes its statistics.
func Snapshot(store models.LogStore, now time.Time) Stats {
	return Open(store).Snapshot(now)
}
