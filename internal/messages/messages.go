// Package messages renders the chat texts for sessions, summary, logs and
// profile.
package messages

import (
	"fmt"
	"strings"
	"time"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/models"
	"telegram-session-counter/internal/session"
)

const barWidth = 12

// DayLabel renders a day key as "Wed, October 14, 2026"; unreadable keys
// are returned as they are.
func DayLabel(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format("Mon, January 2, 2006")
}

// ShortDay renders a day key as "Oct 14".
func ShortDay(key string) string {
	t, err := time.Parse("2006-01-02", key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2")
}

// Session is the live counter text.
func Session(s *models.ActiveSession, now time.Time) string {
	return fmt.Sprintf("⏱ Session %s\n\nCount: %d\n%s",
		session.Elapsed(s, now), s.Count, segments(s.Count))
}

// segments is the ten-step progress strip that fills on every tap.
func segments(count int) string {
	filled := count % 10
	if count > 0 && filled == 0 {
		filled = 10
	}
	return strings.Repeat("●", filled) + strings.Repeat("○", 10-filled)
}

// Annotate describes what has been chosen for a finished session.
func Annotate(s *models.ActiveSession) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session complete: %d %s in %s\n\n", s.Count, plural(s.Count, "count"), session.Elapsed(s, s.EndedAt))
	line := func(label, v string) {
		if v == "" {
			v = "—"
		}
		fmt.Fprintf(&b, "%s: %s\n", label, v)
	}
	line("Type", s.Type)
	if s.Type == models.TypeKicks {
		line("Intensity", fmt.Sprintf("%d/5", s.Intensity))
	}
	line("Mood", s.Mood)
	line("Context", s.Context)
	line("Note", s.Note)
	if s.Type == "" {
		b.WriteString("\nChoose an activity type to save.")
	}
	return b.String()
}

// Home is the today card with the insight.
func Home(st logbook.Stats, theme models.Theme) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s Today: %d %s in %d %s\n", theme.Emoji(), st.Delta.Today,
		plural(st.Delta.Today, "count"), st.TodaySessions, plural(st.TodaySessions, "session"))
	fmt.Fprintf(&b, "Yesterday: %d (%s)\n\n", st.Delta.Yesterday, change(st.Delta))
	fmt.Fprintf(&b, "%s %s\n%s", st.Insight.Icon, st.Insight.Title, st.Insight.Message)
	return b.String()
}

func change(d logbook.Delta) string {
	sign := ""
	if d.Difference > 0 {
		sign = "+"
	}
	return fmt.Sprintf("%s%d, %s%d%%", sign, d.Difference, sign, d.PercentChange)
}

// Summary is the charts view.
func Summary(st logbook.Stats, theme models.Theme) string {
	if len(st.Weekly) == 0 {
		return "📊 Summary\n\nNo sessions yet. Start one to see your insights."
	}
	var b strings.Builder
	b.WriteString("📊 Summary\n\n")
	b.WriteString(Home(st, theme))

	b.WriteString("\n\nLast 7 days\n")
	top := 1
	for _, d := range st.Weekly {
		top = max(top, d.Count)
	}
	for _, d := range st.Weekly {
		fmt.Fprintf(&b, "%-6s %s %d\n", ShortDay(d.DayKey), bar(d.Count, top), d.Count)
	}

	b.WriteString("\nTime of day\n")
	if h := st.TimeOfDay; h.HasData() {
		for _, row := range []struct {
			label string
			n     int
		}{
			{"🌅 Morning   5-11 AM ", h.Morning},
			{"☀️ Afternoon 11 AM-5 PM", h.Afternoon},
			{"🌆 Evening   5-9 PM  ", h.Evening},
			{"🌙 Night     9 PM-5 AM", h.Night},
		} {
			fmt.Fprintf(&b, "%s %s %d\n", row.label, bar(row.n, h.Max()), row.n)
		}
	} else {
		b.WriteString("No timed sessions yet\n")
	}

	t := st.Totals
	fmt.Fprintf(&b, "\nTotal sessions: %d\nTotal counts: %d\nAvg per session: %.1f\n", t.Sessions, t.Counts, t.AvgPerSession)
	if len(t.Types) > 0 {
		b.WriteString("\nBy activity\n")
		for _, tc := range t.Types {
			fmt.Fprintf(&b, "• %s: %d\n", tc.Type, tc.Sessions)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func bar(n, top int) string {
	if top <= 0 || n <= 0 {
		return ""
	}
	w := n * barWidth / top
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}

// Logs lists days newest first; details are shown for the first detailed
// days only to keep the message short.
func Logs(days []logbook.Day, detailed int) string {
	if len(days) == 0 {
		return "📒 Logs\n\nNo records yet."
	}
	var b strings.Builder
	b.WriteString("📒 Logs\n")
	for i, d := range days {
		fmt.Fprintf(&b, "\n%s: %d %s, %d %s\n", DayLabel(d.Key), d.Sessions, plural(d.Sessions, "session"),
			d.Count, plural(d.Count, "count"))
		if i >= detailed {
			continue
		}
		for j, e := range d.Entries {
			fmt.Fprintf(&b, "  #%d %s\n", j+1, EntryLine(e))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// EntryLine is one session of the log browser.
func EntryLine(e models.Entry) string {
	parts := []string{e.StartLabel}
	if e.EndLabel != "" {
		parts[0] += "–" + e.EndLabel
	}
	typ := e.Type
	if typ == "" {
		typ = "Session"
	}
	parts = append(parts, fmt.Sprintf("%s × %d", typ, e.Count))
	if e.Intensity > 0 {
		parts = append(parts, fmt.Sprintf("intensity %d/5", e.Intensity))
	}
	if e.Mood != "" {
		parts = append(parts, e.Mood)
	}
	if e.Context != "" {
		parts = append(parts, e.Context)
	}
	if e.Note != "" {
		parts = append(parts, "“"+e.Note+"”")
	}
	return strings.Join(parts, " · ")
}

// Profile renders the profile card.
func Profile(p *models.UserProfile, st logbook.Stats, now time.Time, theme models.Theme) string {
	var b strings.Builder
	name := "Not set"
	if p != nil && p.Name != "" {
		name = p.Name
	}
	fmt.Fprintf(&b, "%s %s\n\n", theme.Emoji(), name)
	if p != nil {
		if days, ok := p.DaysSinceStart(now); ok {
			fmt.Fprintf(&b, "Training since %s (day %d)\n", p.StartDate, days+1)
		}
		if age, ok := p.Age(now); ok {
			fmt.Fprintf(&b, "Born %s (%d)\n", p.DOB, age)
		}
	}
	fmt.Fprintf(&b, "\n🔥 Current streak: %d %s\n", st.Streak, plural(st.Streak, "day"))
	fmt.Fprintf(&b, "📅 Days tracked: %d\n", st.DaysTracked)
	fmt.Fprintf(&b, "🏁 Total sessions: %d\n", st.Totals.Sessions)
	fmt.Fprintf(&b, "🎨 Theme: %s", theme)
	return b.String()
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
