package storage

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/models"
)

// Keys of the persisted application state.
const (
	KeyLogs           = "COUNTER_LOGS"
	KeyCustomContexts = "CUSTOM_CONTEXTS"
	KeyProfile        = "USER_PROFILE"
	KeyTheme          = "APP_THEME"
	KeyOwner          = "BOT_OWNER"
)

// KV is the string store the application state lives in.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// State reads and writes the application records kept in a KV. Every
// update rewrites the whole value of its key.
type State struct {
	kv KV
}

func NewState(kv KV) *State { return &State{kv: kv} }

func (s *State) getJSON(key string, dst any) (bool, error) {
	raw, ok, err := s.kv.Get(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *State) setJSON(key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.kv.Set(key, string(b))
}

// ---------- logs ------------------------------------------------------------

// Logs returns the whole LogStore; an absent key is an empty store.
func (s *State) Logs() (models.LogStore, error) {
	logs := models.LogStore{}
	if _, err := s.getJSON(KeyLogs, &logs); err != nil {
		return nil, err
	}
	if logs == nil { // stored "null"
		logs = models.LogStore{}
	}
	return logs, nil
}

// AppendLog adds line to the end of dayKey's list.
func (s *State) AppendLog(dayKey, line string) error {
	logs, err := s.Logs()
	if err != nil {
		return err
	}
	logs[dayKey] = append(logs[dayKey], line)
	return s.setJSON(KeyLogs, logs)
}

// ClearLogs drops every saved session at once.
func (s *State) ClearLogs() error { return s.kv.Remove(KeyLogs) }

// ---------- contexts --------------------------------------------------------

func (s *State) CustomContexts() ([]string, error) {
	var ctxs []string
	if _, err := s.getJSON(KeyCustomContexts, &ctxs); err != nil {
		return nil, err
	}
	return ctxs, nil
}

// AddCustomContext remembers ctx, cleaned the way log entries store it,
// unless it is blank, built in or already known. It reports whether the
// list changed.
func (s *State) AddCustomContext(ctx string) (bool, error) {
	ctx = logbook.Clean(ctx)
	if ctx == "" || slices.Contains(models.BuiltinContexts, ctx) {
		return false, nil
	}
	ctxs, err := s.CustomContexts()
	if err != nil {
		return false, err
	}
	if slices.Contains(ctxs, ctx) {
		return false, nil
	}
	return true, s.setJSON(KeyCustomContexts, append(ctxs, ctx))
}

// Contexts is the built-in list followed by the custom additions.
func (s *State) Contexts() ([]string, error) {
	custom, err := s.CustomContexts()
	if err != nil {
		return nil, err
	}
	return append(slices.Clone(models.BuiltinContexts), custom...), nil
}

// ---------- profile & theme -------------------------------------------------

// Profile returns the saved profile, or nil before the first save.
func (s *State) Profile() (*models.UserProfile, error) {
	var p models.UserProfile
	ok, err := s.getJSON(KeyProfile, &p)
	if err != nil || !ok {
		return nil, err
	}
	return &p, nil
}

func (s *State) SaveProfile(p models.UserProfile) error { return s.setJSON(KeyProfile, p) }

// Theme returns the stored theme, blue when unset or unknown.
func (s *State) Theme() (models.Theme, error) {
	raw, ok, err := s.kv.Get(KeyTheme)
	if err != nil {
		return models.ThemeBlue, err
	}
	if t := models.Theme(raw); ok && t.Valid() {
		return t, nil
	}
	return models.ThemeBlue, nil
}

func (s *State) SetTheme(t models.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("unknown theme %q", t)
	}
	return s.kv.Set(KeyTheme, string(t))
}

// Owner returns the chat the bot is bound to, 0 before the first /start.
func (s *State) Owner() (int64, error) {
	raw, ok, err := s.kv.Get(KeyOwner)
	if err != nil || !ok {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decode %s: %w", KeyOwner, err)
	}
	return id, nil
}

func (s *State) SetOwner(chatID int64) error {
	return s.kv.Set(KeyOwner, strconv.FormatInt(chatID, 10))
}

// ---------- export ----------------------------------------------------------

// Export is the JSON backup of every persisted record.
type Export struct {
	Logs           models.LogStore     `json:"logs"`
	CustomContexts []string            `json:"customContexts"`
	Profile        *models.UserProfile `json:"profile,omitempty"`
	Theme          models.Theme        `json:"theme"`
}

func (s *State) ExportJSON() ([]byte, error) {
	var (
		e   Export
		err error
	)
	if e.Logs, err = s.Logs(); err != nil {
		return nil, err
	}
	if e.CustomContexts, err = s.CustomContexts(); err != nil {
		return nil, err
	}
	if e.Profile, err = s.Profile(); err != nil {
		return nil, err
	}
	if e.Theme, err = s.Theme(); err != nil {
		return nil, err
	}
	if e.CustomContexts == nil {
		e.CustomContexts = []string{}
	}
	return json.MarshalIndent(e, "", "  ")
}
