package storage

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"telegram-session-counter/internal/models"
)

func initDB(t *testing.T) *DB {
	d, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestKV(t *testing.T) {
	d := initDB(t)

	_, ok, err := d.Get("missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, d.Set("k", "v1"))
	require.NoError(t, d.Set("k", "v2"))
	v, ok, err := d.Get("k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)

	require.NoError(t, d.Remove("k"))
	_, ok, err = d.Get("k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAppendAndClearLogs(t *testing.T) {
	d := initDB(t)
	s := NewState(d)

	logs, err := s.Logs()
	require.NoError(t, err)
	assert.Empty(t, logs)

	require.NoError(t, s.AppendLog("2026-10-14", "a"))
	require.NoError(t, s.AppendLog("2026-10-14", "b"))
	require.NoError(t, s.AppendLog("2026-10-13", "c"))

	logs, err = s.Logs()
	require.NoError(t, err)
	assert.Equal(t, models.LogStore{"2026-10-14": {"a", "b"}, "2026-10-13": {"c"}}, logs)

	raw, ok, err := d.Get(KeyLogs)
	require.NoError(t, err)
	require.True(t, ok)
	var decoded map[string][]string
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	assert.Len(t, decoded, 2)

	require.NoError(t, s.SetTheme(models.ThemePink))
	require.NoError(t, s.ClearLogs())
	logs, err = s.Logs()
	require.NoError(t, err)
	assert.Empty(t, logs)

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemePink, theme, "clearing logs keeps settings")
}

func TestCorruptLogsSurfaceError(t *testing.T) {
	d := initDB(t)
	require.NoError(t, d.Set(KeyLogs, "{not json"))

	_, err := NewState(d).Logs()
	assert.Error(t, err)
}

func TestCustomContexts(t *testing.T) {
	s := NewState(initDB(t))

	added, err := s.AddCustomContext(" Driving ")
	require.NoError(t, err)
	assert.True(t, added)

	for _, ctx := range []string{"Driving", "Walking", "   "} {
		added, err = s.AddCustomContext(ctx)
		require.NoError(t, err)
		assert.False(t, added, ctx)
	}

	_, err = s.AddCustomContext("Yoga")
	require.NoError(t, err)
	_, err = s.AddCustomContext("Gym  A | B")
	require.NoError(t, err)

	custom, err := s.CustomContexts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Driving", "Yoga", "Gym  A / B"}, custom)

	all, err := s.Contexts()
	require.NoError(t, err)
	assert.Equal(t, []string{"Walking", "Resting", "After Food", "Listening to Music", "Driving", "Yoga", "Gym  A / B"}, all)
}

func TestProfileAndTheme(t *testing.T) {
	s := NewState(initDB(t))

	p, err := s.Profile()
	require.NoError(t, err)
	assert.Nil(t, p)

	require.NoError(t, s.SaveProfile(models.UserProfile{Name: "Sam", StartDate: "01/02/2026", DOB: "05/06/1990"}))
	require.NoError(t, s.SaveProfile(models.UserProfile{Name: "Alex"}))
	p, err = s.Profile()
	require.NoError(t, err)
	assert.Equal(t, &models.UserProfile{Name: "Alex"}, p)

	theme, err := s.Theme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeBlue, theme)

	assert.Error(t, s.SetTheme("purple"))
	require.NoError(t, s.SetTheme(models.ThemeGreen))
	theme, err = s.Theme()
	require.NoError(t, err)
	assert.Equal(t, models.ThemeGreen, theme)
}

func TestExportJSON(t *testing.T) {
	s := NewState(initDB(t))
	require.NoError(t, s.AppendLog("2026-10-14", "line"))

	b, err := s.ExportJSON()
	require.NoError(t, err)

	var e Export
	require.NoError(t, json.Unmarshal(b, &e))
	assert.Equal(t, models.LogStore{"2026-10-14": {"line"}}, e.Logs)
	assert.Equal(t, []string{}, e.CustomContexts)
	assert.Nil(t, e.Profile)
	assert.Equal(t, models.ThemeBlue, e.Theme)
}

func TestActiveSessions(t *testing.T) {
	d := initDB(t)

	s, err := d.GetSession(1)
	require.NoError(t, err)
	assert.Nil(t, s)

	started := time.Unix(1760450000, 0)
	require.NoError(t, d.PutSession(&models.ActiveSession{
		ID: "abc", ChatID: 1, DayKey: "2026-10-14", StartedAt: started, MsgID: 42, Intensity: 3,
	}))

	for i := 1; i <= 3; i++ {
		n, err := d.IncrementSession(1)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	counting, err := d.ListCountingSessions()
	require.NoError(t, err)
	require.Len(t, counting, 1)
	assert.Equal(t, 3, counting[0].Count)
	assert.True(t, counting[0].StartedAt.Equal(started))

	s, err = d.GetSession(1)
	require.NoError(t, err)
	s.EndedAt = started.Add(time.Minute)
	require.NoError(t, d.PutSession(s))

	n, err := d.IncrementSession(1)
	require.NoError(t, err)
	assert.Zero(t, n, "ended sessions stop counting")

	counting, err = d.ListCountingSessions()
	require.NoError(t, err)
	assert.Empty(t, counting)

	require.NoError(t, d.DeleteSession(1))
	s, err = d.GetSession(1)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestUserState(t *testing.T) {
	d := initDB(t)

	st, err := d.GetUserState(7)
	require.NoError(t, err)
	assert.Empty(t, st)

	require.NoError(t, d.SetUserState(7, "wait_note"))
	st, err = d.GetUserState(7)
	require.NoError(t, err)
	assert.Equal(t, "wait_note", st)
}

func TestOwner(t *testing.T) {
	s := NewState(initDB(t))

	id, err := s.Owner()
	require.NoError(t, err)
	assert.Zero(t, id)

	require.NoError(t, s.SetOwner(-100123))
	id, err = s.Owner()
	require.NoError(t, err)
	assert.Equal(t, int64(-100123), id)
}
