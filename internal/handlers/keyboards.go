package handlers

import (
	"strconv"
	"strings"

	"telegram-session-counter/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	menuStart    = "▶️ Start session"
	menuSummary  = "📊 Summary"
	menuLogs     = "📒 Logs"
	menuProfile  = "👤 Profile"
	menuSettings = "⚙️ Settings"
)

// callback actions; session-scoped ones carry the session tag
const (
	cbInc        = "inc"
	cbEnd        = "end"
	cbType       = "type"
	cbIntensity  = "int"
	cbMood       = "mood"
	cbContext    = "ctx"
	cbContextNew = "ctxnew"
	cbNote       = "note"
	cbSave       = "save"
	cbDiscard    = "discard"

	cbTheme       = "theme"
	cbProfileEdit = "profedit"
	cbExport      = "export"
	cbClear       = "clear"
	cbClearYes    = "clearyes"
	cbClearNo     = "clearno"
)

var mainKB = tgbotapi.NewReplyKeyboard(
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(menuStart),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(menuSummary),
		tgbotapi.NewKeyboardButton(menuLogs),
	),
	tgbotapi.NewKeyboardButtonRow(
		tgbotapi.NewKeyboardButton(menuProfile),
		tgbotapi.NewKeyboardButton(menuSettings),
	),
)

var settingsKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("📤 Export data", cbExport),
	),
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Clear all data", cbClear),
	),
)

var clearKB = tgbotapi.NewInlineKeyboardMarkup(
	tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Clear", cbClearYes),
		tgbotapi.NewInlineKeyboardButtonData("Cancel", cbClearNo),
	),
)

// tag is the short session id embedded in callback data so buttons of an
// older session cannot touch the current one.
func tag(s *models.ActiveSession) string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

func data(action string, s *models.ActiveSession, arg ...string) string {
	return strings.Join(append([]string{action, tag(s)}, arg...), ":")
}

// parseData splits "action[:tag[:arg]]".
func parseData(d string) (action, sid, arg string) {
	action, rest, _ := strings.Cut(d, ":")
	sid, arg, _ = strings.Cut(rest, ":")
	return action, sid, arg
}

func countingKB(s *models.ActiveSession) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("+1", data(cbInc, s)),
			tgbotapi.NewInlineKeyboardButtonData("⏹ End", data(cbEnd, s)),
		),
	)
}

func mark(label string, selected bool) string {
	if selected {
		return "✓ " + label
	}
	return label
}

func annotateKB(s *models.ActiveSession, contexts []string) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	var types []tgbotapi.InlineKeyboardButton
	for i, t := range models.ActivityTypes {
		types = append(types, tgbotapi.NewInlineKeyboardButtonData(mark(t, s.Type == t), data(cbType, s, strconv.Itoa(i))))
	}
	rows = append(rows, types)

	if s.Type == models.TypeKicks {
		var levels []tgbotapi.InlineKeyboardButton
		for n := 1; n <= 5; n++ {
			levels = append(levels, tgbotapi.NewInlineKeyboardButtonData(mark(strconv.Itoa(n), s.Intensity == n), data(cbIntensity, s, strconv.Itoa(n))))
		}
		rows = append(rows, levels)
	}

	var moods []tgbotapi.InlineKeyboardButton
	for i, m := range models.Moods {
		moods = append(moods, tgbotapi.NewInlineKeyboardButtonData(mark(m, s.Mood == m), data(cbMood, s, strconv.Itoa(i))))
	}
	rows = append(rows, moods)

	var row []tgbotapi.InlineKeyboardButton
	for i, c := range contexts {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(mark(c, s.Context == c), data(cbContext, s, strconv.Itoa(i))))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData("➕ Other…", data(cbContextNew, s)))
	rows = append(rows, row)

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(mark("📝 Note", s.Note != ""), data(cbNote, s)),
	))

	last := []tgbotapi.InlineKeyboardButton{}
	if s.Type != "" {
		last = append(last, tgbotapi.NewInlineKeyboardButtonData("💾 Save", data(cbSave, s)))
	}
	last = append(last, tgbotapi.NewInlineKeyboardButtonData("🗑 Discard", data(cbDiscard, s)))
	rows = append(rows, last)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func profileKB(current models.Theme) tgbotapi.InlineKeyboardMarkup {
	var themes []tgbotapi.InlineKeyboardButton
	for _, t := range models.Themes {
		themes = append(themes, tgbotapi.NewInlineKeyboardButtonData(mark(t.Emoji()+" "+string(t), t == current), cbTheme+"::"+string(t)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✏️ Edit profile", cbProfileEdit),
		),
		themes,
	)
}
