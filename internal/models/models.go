package models

import "time"

// LogStore maps a day key (YYYY-MM-DD) to that day's encoded log entries
// in the order they were saved.
type LogStore map[string][]string

// Entry is the structured form of one saved session.
type Entry struct {
	StartLabel string `json:"start"` // "2:30 PM"
	EndLabel   string `json:"end"`
	Type       string `json:"type"`
	Intensity  int    `json:"intensity,omitempty"` // 0 -> not recorded
	Count      int    `json:"count"`
	Note       string `json:"note,omitempty"`
	Mood       string `json:"mood,omitempty"`
	Context    string `json:"context,omitempty"`
}

// ActiveSession is a session that has been started but not yet saved.
type ActiveSession struct {
	ID        string    `db:"id"`
	ChatID    int64     `db:"chat_id"`
	DayKey    string    `db:"day_key"` // fixed when the session starts
	StartedAt time.Time `db:"started_at"`
	EndedAt   time.Time `db:"ended_at"` // zero while taps are still counted
	Count     int       `db:"count"`
	MsgID     int       `db:"msg_id"` // message showing the live counter
	Type      string    `db:"type"`
	Intensity int       `db:"intensity"`
	Mood      string    `db:"mood"`
	Context   string    `db:"context"`
	Note      string    `db:"note"`
}

// Counting reports whether taps are still being recorded.
func (s *ActiveSession) Counting() bool { return s.EndedAt.IsZero() }

// UserProfile is the single profile record, overwritten on every save.
type UserProfile struct {
	Name      string `json:"name"`
	StartDate string `json:"startDate"` // MM/DD/YYYY
	DOB       string `json:"dob"`       // MM/DD/YYYY
}
