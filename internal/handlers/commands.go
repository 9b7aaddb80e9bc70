package handlers

import (
	"errors"

	"telegram-session-counter/internal/messages"
	"telegram-session-counter/internal/models"
	"telegram-session-counter/internal/session"
	"telegram-session-counter/internal/utils"
)

const helpText = `Tap ▶️ Start session, then +1 for every count.
Press ⏹ End, choose the activity type and optionally intensity, mood, context and a note, then 💾 Save.

📊 Summary — today vs yesterday, last 7 days, time of day
📒 Logs — every day with its sessions
👤 Profile — your details, streak and theme
⚙️ Settings — export or clear your data`

func (h *Handler) HandleCommand(chatID int64, cmd string) {
	switch cmd {
	case "start":
		h.HandleStart(chatID)
	case "help":
		h.send(chatID, helpText)
	case "summary":
		h.showSummary(chatID)
	case "logs":
		h.showLogs(chatID)
	case "profile":
		h.showProfile(chatID)
	case "settings":
		h.HandleSettings(chatID)
	}
}

// ---------------- /start --------------------
func (h *Handler) HandleStart(chatID int64) {
	_, st, err := h.stats()
	if err != nil {
		h.fail(chatID, "load your logs", err)
		return
	}
	theme := h.theme()
	_, _ = h.sendKB(chatID, messages.Home(st, theme), mainKB)
}

func (h *Handler) HandleSettings(chatID int64) {
	_, _ = h.sendKB(chatID, "⚙️ Settings", settingsKB)
}

func (h *Handler) startSession(chatID int64) {
	s, err := h.Rec.Start(chatID)
	if errors.Is(err, session.ErrSessionActive) {
		h.send(chatID, "A session is already running. Finish it first.")
		return
	}
	if err != nil {
		h.fail(chatID, "start the session", err)
		return
	}
	m, err := h.sendKB(chatID, messages.Session(s, h.now()), countingKB(s))
	if err != nil {
		return
	}
	if err := h.Rec.SetMessage(chatID, m.MessageID); err != nil {
		h.fail(chatID, "track the session", err)
	}
}

func (h *Handler) showSummary(chatID int64) {
	_, st, err := h.stats()
	if err != nil {
		h.fail(chatID, "load your logs", err)
		return
	}
	theme := h.theme()
	h.send(chatID, messages.Summary(st, theme))
}

func (h *Handler) showLogs(chatID int64) {
	book, _, err := h.stats()
	if err != nil {
		h.fail(chatID, "load your logs", err)
		return
	}
	h.send(chatID, messages.Logs(book.Days(), 3))
}

func (h *Handler) profileText() (string, error) {
	p, err := h.State.Profile()
	if err != nil {
		return "", err
	}
	_, st, err := h.stats()
	if err != nil {
		return "", err
	}
	theme, err := h.State.Theme()
	if err != nil {
		return "", err
	}
	return messages.Profile(p, st, h.now(), theme), nil
}

func (h *Handler) showProfile(chatID int64) {
	text, err := h.profileText()
	if err != nil {
		h.fail(chatID, "load your profile", err)
		return
	}
	theme := h.theme()
	_, _ = h.sendKB(chatID, text, profileKB(theme))
}

// theme falls back to the default theme when it cannot be read.
func (h *Handler) theme() models.Theme {
	t, err := h.State.Theme()
	utils.LogFor("read theme", err)
	return t
}
