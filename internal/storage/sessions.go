package storage

import (
	"database/sql"
	"errors"
	"time"

	"telegram-session-counter/internal/models"
)

// ---------- user state (fsm) ------------------------------------------------

func (d *DB) SetUserState(chatID int64, state string) error {
	_, err := d.Exec(`
        INSERT INTO user_states(chat_id, state) VALUES (?,?)
        ON CONFLICT(chat_id) DO UPDATE SET state=excluded.state`, chatID, state)
	return err
}

func (d *DB) GetUserState(chatID int64) (string, error) {
	var st string
	err := d.QueryRow(`SELECT state FROM user_states WHERE chat_id=?`, chatID).Scan(&st)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return st, err
}

// ---------- active sessions -------------------------------------------------

const sessionCols = `id, chat_id, day_key, started_at, ended_at, count, msg_id,
        type, intensity, mood, context, note`

// PutSession inserts or replaces the chat's active session.
func (d *DB) PutSession(s *models.ActiveSession) error {
	var ended int64
	if !s.EndedAt.IsZero() {
		ended = s.EndedAt.Unix()
	}
	_, err := d.Exec(`
        INSERT OR REPLACE INTO active_sessions (`+sessionCols+`)
        VALUES (?,?,?,?,?,?,?,?,?,?,?,?)
    `, s.ID, s.ChatID, s.DayKey, s.StartedAt.Unix(), ended, s.Count, s.MsgID,
		s.Type, s.Intensity, s.Mood, s.Context, s.Note)
	return err
}

// GetSession returns the chat's active session, or nil when there is none.
func (d *DB) GetSession(chatID int64) (*models.ActiveSession, error) {
	row := d.QueryRow(`SELECT `+sessionCols+` FROM active_sessions WHERE chat_id=?`, chatID)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// IncrementSession adds one tap to a session that is still counting and
// returns the new count.
func (d *DB) IncrementSession(chatID int64) (int, error) {
	var n int
	err := d.QueryRow(`
        UPDATE active_sessions SET count = count + 1
        WHERE chat_id=? AND ended_at=0
        RETURNING count`, chatID).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	return n, err
}

func (d *DB) DeleteSession(chatID int64) error {
	_, err := d.Exec(`DELETE FROM active_sessions WHERE chat_id=?`, chatID)
	return err
}

// ListCountingSessions returns the sessions whose live counter is shown.
func (d *DB) ListCountingSessions() ([]models.ActiveSession, error) {
	rows, err := d.Query(`SELECT ` + sessionCols + ` FROM active_sessions WHERE ended_at=0 AND msg_id<>0`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []models.ActiveSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *s)
	}
	return res, rows.Err()
}

type scanner interface{ Scan(dest ...any) error }

func scanSession(row scanner) (*models.ActiveSession, error) {
	var (
		s              models.ActiveSession
		started, ended int64
	)
	if err := row.Scan(&s.ID, &s.ChatID, &s.DayKey, &started, &ended, &s.Count, &s.MsgID,
		&s.Type, &s.Intensity, &s.Mood, &s.Context, &s.Note); err != nil {
		return nil, err
	}
	s.StartedAt = time.Unix(started, 0)
	if ended != 0 {
		s.EndedAt = time.Unix(ended, 0)
	}
	return &s, nil
}
