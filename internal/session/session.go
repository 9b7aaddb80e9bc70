// Package session runs a counting session from start to its saved log line.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/models"
)

var (
	ErrNoSession      = errors.New("no active session")
	ErrSessionActive  = errors.New("a session is already running")
	ErrNotCounting    = errors.New("session already ended")
	ErrEmptySession   = errors.New("session has no counts")
	ErrNoActivityType = errors.New("no activity type selected")

	// ErrContextNotSaved accompanies a saved entry whose custom context
	// could not be added to the list.
	ErrContextNotSaved = errors.New("context not remembered")
)

const DefaultIntensity = 3

// Store keeps in-progress sessions.
type Store interface {
	PutSession(s *models.ActiveSession) error
	GetSession(chatID int64) (*models.ActiveSession, error)
	IncrementSession(chatID int64) (int, error)
	DeleteSession(chatID int64) error
}

// Log receives saved sessions.
type Log interface {
	AppendLog(dayKey, line string) error
	AddCustomContext(ctx string) (bool, error)
}

type Recorder struct {
	sessions Store
	log      Log
	loc      *time.Location

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewRecorder(sessions Store, log Log, loc *time.Location) *Recorder {
	if loc == nil {
		loc = time.Local
	}
	return &Recorder{sessions: sessions, log: log, loc: loc, Clock: time.Now}
}

func (r *Recorder) now() time.Time { return r.Clock().In(r.loc) }

// Start opens a session for chatID. The day key is taken now, so a session
// running past midnight is filed under the day it started.
func (r *Recorder) Start(chatID int64) (*models.ActiveSession, error) {
	cur, err := r.sessions.GetSession(chatID)
	if err != nil {
		return nil, err
	}
	if cur != nil {
		return cur, ErrSessionActive
	}
	now := r.now()
	s := &models.ActiveSession{
		ID:        uuid.NewString(),
		ChatID:    chatID,
		DayKey:    logbook.DayKey(now),
		StartedAt: now,
		Intensity: DefaultIntensity,
	}
	if err := r.sessions.PutSession(s); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	return s, nil
}

// Current returns the chat's session or ErrNoSession.
func (r *Recorder) Current(chatID int64) (*models.ActiveSession, error) {
	s, err := r.sessions.GetSession(chatID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNoSession
	}
	return s, nil
}

// Increment records one tap and returns the running count.
func (r *Recorder) Increment(chatID int64) (int, error) {
	n, err := r.sessions.IncrementSession(chatID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return n, nil
	}
	s, err := r.Current(chatID)
	if err != nil {
		return 0, err
	}
	if !s.Counting() {
		return s.Count, ErrNotCounting
	}
	return s.Count, nil
}

// End stops counting. A session without taps is discarded and reported as
// ErrEmptySession.
func (r *Recorder) End(chatID int64) (*models.ActiveSession, error) {
	s, err := r.Current(chatID)
	if err != nil {
		return nil, err
	}
	if s.Count == 0 {
		if err := r.sessions.DeleteSession(chatID); err != nil {
			return nil, err
		}
		return nil, ErrEmptySession
	}
	if s.Counting() {
		s.EndedAt = r.now()
		if err := r.sessions.PutSession(s); err != nil {
			return nil, fmt.Errorf("end session: %w", err)
		}
	}
	return s, nil
}

// SetMessage remembers which chat message shows the live counter.
func (r *Recorder) SetMessage(chatID int64, msgID int) error {
	return r.update(chatID, func(s *models.ActiveSession) { s.MsgID = msgID })
}

func (r *Recorder) SetType(chatID int64, typ string) error {
	return r.update(chatID, func(s *models.ActiveSession) { s.Type = typ })
}

// SetIntensity clamps n into 1..5.
func (r *Recorder) SetIntensity(chatID int64, n int) error {
	n = min(max(n, 1), 5)
	return r.update(chatID, func(s *models.ActiveSession) { s.Intensity = n })
}

func (r *Recorder) SetMood(chatID int64, mood string) error {
	return r.update(chatID, func(s *models.ActiveSession) { s.Mood = mood })
}

func (r *Recorder) SetContext(chatID int64, ctx string) error {
	return r.update(chatID, func(s *models.ActiveSession) { s.Context = ctx })
}

func (r *Recorder) SetNote(chatID int64, note string) error {
	return r.update(chatID, func(s *models.ActiveSession) { s.Note = note })
}

func (r *Recorder) update(chatID int64, fn func(*models.ActiveSession)) error {
	s, err := r.Current(chatID)
	if err != nil {
		return err
	}
	fn(s)
	return r.sessions.PutSession(s)
}

// Save formats the session and appends it to its day. Once the entry is
// written, a context typed for this session is remembered for later ones.
// A failure to remember it is returned together with the saved entry and
// does not keep the session open.
func (r *Recorder) Save(chatID int64) (models.Entry, error) {
	s, err := r.Current(chatID)
	if err != nil {
		return models.Entry{}, err
	}
	if s.Count == 0 {
		if err := r.sessions.DeleteSession(chatID); err != nil {
			return models.Entry{}, err
		}
		return models.Entry{}, ErrEmptySession
	}
	if s.Type == "" {
		return models.Entry{}, ErrNoActivityType
	}
	if s.Counting() {
		s.EndedAt = r.now()
	}

	e := EntryOf(s, r.loc)
	if err := r.log.AppendLog(s.DayKey, logbook.Format(e)); err != nil {
		return models.Entry{}, fmt.Errorf("save session: %w", err)
	}
	var ctxErr error
	if s.Context != "" {
		if _, err := r.log.AddCustomContext(s.Context); err != nil {
			ctxErr = fmt.Errorf("%w: %w", ErrContextNotSaved, err)
		}
	}
	if err := r.sessions.DeleteSession(chatID); err != nil {
		return e, err
	}
	return e, ctxErr
}

// Cancel throws the session away.
func (r *Recorder) Cancel(chatID int64) error { return r.sessions.DeleteSession(chatID) }

// EntryOf builds the log entry of s with times rendered in loc.
func EntryOf(s *models.ActiveSession, loc *time.Location) models.Entry {
	e := models.Entry{
		StartLabel: logbook.TimeLabel(s.StartedAt.In(loc)),
		EndLabel:   logbook.TimeLabel(s.EndedAt.In(loc)),
		Type:       s.Type,
		Count:      s.Count,
		Note:       s.Note,
		Mood:       s.Mood,
		Context:    s.Context,
	}
	if s.Type == models.TypeKicks {
		e.Intensity = s.Intensity
	}
	return e
}

// Elapsed renders the time since the session started as MM:SS.
func Elapsed(s *models.ActiveSession, now time.Time) string {
	end := now
	if !s.Counting() {
		end = s.EndedAt
	}
	secs := int(end.Sub(s.StartedAt) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
