package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/messages"
	"telegram-session-counter/internal/models"
)

const chartWidth = 24

// view renders trackctl output tinted with the stored theme colour.
type view struct {
	title  lipgloss.Style
	frame  lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
}

func newView(theme models.Theme) view {
	c := lipgloss.Color(theme.Color())
	return view{
		title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA")).Background(c).Padding(0, 1),
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c).
			Padding(0, 1),
		accent: lipgloss.NewStyle().Foreground(c).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8")),
	}
}

func (v view) box(title, body string) string {
	return v.frame.Render(v.title.Render(title) + "\n\n" + body)
}

func (v view) bar(n, top int) string {
	if n <= 0 || top <= 0 {
		return ""
	}
	return v.accent.Render(strings.Repeat("█", max(1, n*chartWidth/top)))
}

func (v view) summary(st logbook.Stats) string {
	if len(st.Weekly) == 0 {
		return v.box("Summary", st.Insight.Icon+" "+st.Insight.Title+"\n"+st.Insight.Message)
	}

	d := st.Delta
	today := fmt.Sprintf("Today      %s  (%d %s)\nYesterday  %d  %s\n\n%s %s\n%s",
		v.accent.Render(fmt.Sprint(d.Today)), st.TodaySessions, plural(st.TodaySessions, "session"),
		d.Yesterday, v.muted.Render(fmt.Sprintf("%+d, %+d%%", d.Difference, d.PercentChange)),
		st.Insight.Icon, st.Insight.Title, st.Insight.Message)

	top := 1
	for _, w := range st.Weekly {
		top = max(top, w.Count)
	}
	var week strings.Builder
	for _, w := range st.Weekly {
		fmt.Fprintf(&week, "%-6s %s %d\n", messages.ShortDay(w.DayKey), v.bar(w.Count, top), w.Count)
	}

	h := st.TimeOfDay
	tod := v.muted.Render("no timed sessions")
	if h.HasData() {
		tod = fmt.Sprintf("Morning    %s %d\nAfternoon  %s %d\nEvening    %s %d\nNight      %s %d",
			v.bar(h.Morning, h.Max()), h.Morning,
			v.bar(h.Afternoon, h.Max()), h.Afternoon,
			v.bar(h.Evening, h.Max()), h.Evening,
			v.bar(h.Night, h.Max()), h.Night)
	}

	t := st.Totals
	totals := fmt.Sprintf("Sessions   %d\nCounts     %d\nAvg        %.1f\nStreak     %d %s",
		t.Sessions, t.Counts, t.AvgPerSession, st.Streak, plural(st.Streak, "day"))
	for _, tc := range t.Types {
		totals += fmt.Sprintf("\n  %-9s%d", tc.Type, tc.Sessions)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		v.box("Today", today),
		lipgloss.JoinHorizontal(lipgloss.Top,
			v.box("Last 7 days", strings.TrimRight(week.String(), "\n")),
			v.box("Time of day", tod),
		),
		v.box("Totals", totals),
	)
}

func (v view) logs(days []logbook.Day) string {
	if len(days) == 0 {
		return v.muted.Render("No records yet.")
	}
	var cards []string
	for _, d := range days {
		var b strings.Builder
		fmt.Fprintf(&b, "%d %s · %d %s", d.Sessions, plural(d.Sessions, "session"), d.Count, plural(d.Count, "count"))
		for i, e := range d.Entries {
			fmt.Fprintf(&b, "\n%s %s", v.muted.Render(fmt.Sprintf("#%d", i+1)), messages.EntryLine(e))
		}
		cards = append(cards, v.box(messages.DayLabel(d.Key), b.String()))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
