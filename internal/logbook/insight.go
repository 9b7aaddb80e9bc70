package logbook

import (
	"fmt"
	"time"
)

type InsightKind int

const (
	InsightStart InsightKind = iota
	InsightOnFire
	InsightDedication
	InsightMomentum
	InsightKeepGoing
)

// Insight is the encouragement card on the home view.
type Insight struct {
	Kind    InsightKind
	Icon    string
	Title   string
	Message string
}

// Insight picks the first matching card: nothing logged yet, beating
// yesterday, two or more sessions today, a week of tracked days, and
// finally generic encouragement.
func (b *Book) Insight(now time.Time) Insight {
	if b.Empty() {
		return Insight{
			Kind:    InsightStart,
			Icon:    "🎯",
			Title:   "Ready to Start?",
			Message: "Begin your first session today and build your training streak!",
		}
	}

	d := b.Delta(now)
	if d.Today > d.Yesterday && d.Yesterday > 0 {
		return Insight{
			Kind:    InsightOnFire,
			Icon:    "🔥",
			Title:   "You're On Fire!",
			Message: fmt.Sprintf("%d more counts than yesterday. Keep pushing!", d.Difference),
		}
	}

	if n := b.SessionCount(DayKey(now)); n >= 2 {
		return Insight{
			Kind:    InsightDedication,
			Icon:    "💪",
			Title:   "Strong Dedication!",
			Message: fmt.Sprintf("%d sessions today. Your consistency is impressive!", n),
		}
	}

	if days := b.DaysTracked(); days >= 7 {
		avg := float64(b.TotalSessions()) / float64(days)
		return Insight{
			Kind:    InsightMomentum,
			Icon:    "📈",
			Title:   "Building Momentum",
			Message: fmt.Sprintf("%d days tracked with %.1f avg sessions/day!", days, avg),
		}
	}

	return Insight{
		Kind:    InsightKeepGoing,
		Icon:    "⚡",
		Title:   "Keep It Up!",
		Message: "Every session counts. Stay consistent with your training!",
	}
}
