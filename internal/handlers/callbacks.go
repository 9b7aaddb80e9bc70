package handlers

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strconv"
	"time"

	"telegram-session-counter/internal/messages"
	"telegram-session-counter/internal/models"
	"telegram-session-counter/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) HandleCallback(cq *tgbotapi.CallbackQuery) {
	chatID := cq.Message.Chat.ID
	msgID := cq.Message.MessageID
	action, sid, arg := parseData(cq.Data)

	answer := ""
	alert := false
	defer func() {
		cb := tgbotapi.NewCallback(cq.ID, answer)
		cb.ShowAlert = alert
		_, _ = h.Bot.Request(cb)
	}()

	switch action {
	case cbTheme:
		answer = h.handleTheme(chatID, msgID, models.Theme(arg))
		return
	case cbProfileEdit:
		h.handleProfileEdit(chatID)
		return
	case cbExport:
		h.handleExport(chatID)
		return
	case cbClear:
		h.edit(chatID, msgID, "Delete every saved session? This cannot be undone.", &clearKB)
		return
	case cbClearYes:
		if err := h.State.ClearLogs(); err != nil {
			h.fail(chatID, "clear your data", err)
			return
		}
		h.edit(chatID, msgID, "All data has been cleared.", nil)
		return
	case cbClearNo:
		h.edit(chatID, msgID, "⚙️ Settings", &settingsKB)
		return
	}

	s, err := h.Rec.Current(chatID)
	if errors.Is(err, session.ErrNoSession) || err == nil && tag(s) != sid {
		answer = "This session is no longer active."
		h.edit(chatID, msgID, "Session closed.", nil)
		return
	}
	if err != nil {
		h.fail(chatID, "load the session", err)
		return
	}

	switch action {
	case cbInc:
		n, err := h.Rec.Increment(chatID)
		if err != nil {
			answer = "Session already ended."
			return
		}
		s.Count = n
		kb := countingKB(s)
		h.edit(chatID, msgID, messages.Session(s, h.now()), &kb)
		answer = strconv.Itoa(n)

	case cbEnd:
		h.handleEnd(chatID, msgID)

	case cbType, cbIntensity, cbMood, cbContext:
		if err := h.annotate(chatID, action, arg); err != nil {
			h.fail(chatID, "update the session", err)
			return
		}
		h.redrawAnnotation(chatID, msgID)

	case cbContextNew:
		h.prompt(chatID, stateContext, "What were you doing? Type it and it will be offered next time too.")

	case cbNote:
		h.prompt(chatID, stateNote, "Type a note for this session.")

	case cbSave:
		answer, alert = h.handleSave(chatID, msgID)

	case cbDiscard:
		if err := h.Rec.Cancel(chatID); err != nil {
			h.fail(chatID, "discard the session", err)
			return
		}
		h.edit(chatID, msgID, "Session discarded.", nil)
	}
}

func (h *Handler) handleEnd(chatID int64, msgID int) {
	_, err := h.Rec.End(chatID)
	switch {
	case errors.Is(err, session.ErrEmptySession):
		h.edit(chatID, msgID, "Session closed without counts.", nil)
	case err != nil:
		h.fail(chatID, "end the session", err)
	default:
		h.redrawAnnotation(chatID, msgID)
	}
}

// annotate applies a type, intensity, mood or context button. Buttons carry
// an index into the list they were drawn from.
func (h *Handler) annotate(chatID int64, action, arg string) error {
	i, err := strconv.Atoi(arg)
	if err != nil {
		return fmt.Errorf("bad button %s:%s", action, arg)
	}
	pick := func(list []string) (string, error) {
		if i < 0 || i >= len(list) {
			return "", fmt.Errorf("button %s:%d out of range", action, i)
		}
		return list[i], nil
	}

	switch action {
	case cbType:
		t, err := pick(models.ActivityTypes)
		if err != nil {
			return err
		}
		return h.Rec.SetType(chatID, t)
	case cbIntensity:
		return h.Rec.SetIntensity(chatID, i)
	case cbMood:
		m, err := pick(models.Moods)
		if err != nil {
			return err
		}
		return h.Rec.SetMood(chatID, m)
	default:
		s, err := h.Rec.Current(chatID)
		if err != nil {
			return err
		}
		ctxs, err := h.contexts(s)
		if err != nil {
			return err
		}
		c, err := pick(ctxs)
		if err != nil {
			return err
		}
		return h.Rec.SetContext(chatID, c)
	}
}

// redrawAnnotation shows the annotation form in msgID, or in a new message
// when msgID is 0.
func (h *Handler) redrawAnnotation(chatID int64, msgID int) {
	s, err := h.Rec.Current(chatID)
	if err != nil {
		h.fail(chatID, "load the session", err)
		return
	}
	ctxs, err := h.contexts(s)
	if err != nil {
		h.fail(chatID, "load contexts", err)
		return
	}
	kb := annotateKB(s, ctxs)
	if msgID != 0 {
		h.edit(chatID, msgID, messages.Annotate(s), &kb)
		return
	}
	m, err := h.sendKB(chatID, messages.Annotate(s), kb)
	if err != nil {
		return
	}
	if err := h.Rec.SetMessage(chatID, m.MessageID); err != nil {
		log.Println("set session message:", err)
	}
}

func (h *Handler) handleSave(chatID int64, msgID int) (string, bool) {
	e, err := h.Rec.Save(chatID)
	switch {
	case errors.Is(err, session.ErrNoActivityType):
		return "Choose an activity type first.", true
	case errors.Is(err, session.ErrEmptySession):
		h.edit(chatID, msgID, "Session closed without counts.", nil)
		return "", false
	case errors.Is(err, session.ErrContextNotSaved):
		log.Println("save session:", err)
	case err != nil:
		h.fail(chatID, "save the session", err)
		return "", false
	}
	h.edit(chatID, msgID, "✅ Saved: "+messages.EntryLine(e), nil)
	h.HandleStart(chatID)
	return "Saved", false
}

func (h *Handler) handleTheme(chatID int64, msgID int, t models.Theme) string {
	if err := h.State.SetTheme(t); err != nil {
		log.Println("set theme:", err)
		return "Unknown theme."
	}
	text, err := h.profileText()
	if err != nil {
		h.fail(chatID, "load your profile", err)
		return ""
	}
	kb := profileKB(t)
	h.edit(chatID, msgID, text, &kb)
	return "Theme: " + string(t)
}

func (h *Handler) handleExport(chatID int64) {
	logs, err := h.State.Logs()
	if err != nil {
		h.fail(chatID, "export your data", err)
		return
	}
	if len(logs) == 0 {
		h.send(chatID, "There are no sessions to export.")
		return
	}
	b, err := h.State.ExportJSON()
	if err != nil {
		h.fail(chatID, "export your data", err)
		return
	}
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "counter-export-" + h.now().Format(time.DateOnly) + ".json",
		Bytes: b,
	})
	if _, err := h.Bot.Send(doc); err != nil {
		log.Printf("send export to %d: %v", chatID, err)
	}
}

// contexts is the offered list: built-in, custom, then a context typed for
// this session that has not been saved yet.
func (h *Handler) contexts(s *models.ActiveSession) ([]string, error) {
	ctxs, err := h.State.Contexts()
	if err != nil {
		return nil, err
	}
	if s.Context != "" && !slices.Contains(ctxs, s.Context) {
		ctxs = append(ctxs, s.Context)
	}
	return ctxs, nil
}
