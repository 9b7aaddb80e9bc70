package logbook

import (
	"regexp"
	"strconv"
	"strings"

	"telegram-session-counter/internal/models"
)

var (
	countRx     = regexp.MustCompile(`(\d+) counts?\b`)
	intensityRx = regexp.MustCompile(`Intensity (\d+)/5`)
	typeEndRx   = regexp.MustCompile(`\s*(?:-\s*Intensity\b|\()`)
	clockRx     = regexp.MustCompile(`(?i)^\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// Parse recovers the structured fields of a log line. It never fails:
// anything it cannot find is left at its zero value. Labelled segments
// (Note, Mood, Context) are matched by label, so their order does not matter.
func Parse(line string) models.Entry {
	var e models.Entry

	segs := strings.Split(line, sep)
	if start, end, ok := strings.Cut(segs[0], " - "); ok {
		e.StartLabel = strings.TrimSpace(start)
		e.EndLabel = strings.TrimSpace(end)
	} else {
		e.StartLabel = strings.TrimSpace(segs[0])
	}

	head, haveHead := "", false
	for _, seg := range segs[1:] {
		switch {
		case takeLabel(seg, labelNote, &e.Note):
		case takeLabel(seg, labelMood, &e.Mood):
		case takeLabel(seg, labelContext, &e.Context):
		case !haveHead:
			head, haveHead = seg, true
		}
	}

	e.Type = activityType(head)
	if m := intensityRx.FindStringSubmatch(head); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && validIntensity(n) {
			e.Intensity = n
		}
	}
	e.Count = firstCount(head)
	if e.Count == 0 && !haveHead {
		// lines written before the type segment existed: "2:30 PM (5 counts)"
		e.Count = firstCount(line)
	}
	return e
}

// takeLabel reports whether seg is a "<label>: value" segment. The value is
// only stored when dst is still empty so the first occurrence wins.
func takeLabel(seg, label string, dst *string) bool {
	rest, ok := strings.CutPrefix(strings.TrimLeft(seg, " "), label+":")
	if !ok {
		return false
	}
	if *dst == "" {
		*dst = strings.TrimSpace(rest)
	}
	return true
}

func activityType(head string) string {
	if loc := typeEndRx.FindStringIndex(head); loc != nil {
		head = head[:loc[0]]
	}
	return strings.TrimSpace(head)
}

func firstCount(s string) int {
	m := countRx.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// StartHour returns the 24-hour start hour of a "2:30 PM" style label.
func StartHour(label string) (int, bool) {
	m := clockRx.FindStringSubmatch(label)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	if h < 1 || h > 12 || mins > 59 {
		return 0, false
	}
	pm := strings.EqualFold(m[3], "PM")
	switch {
	case pm && h != 12:
		h += 12
	case !pm && h == 12:
		h = 0
	}
	return h, true
}
