package handlers

import (
	"strings"

	"telegram-session-counter/internal/models"
	"telegram-session-counter/internal/utils"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// user_states values waiting for text input
const (
	stateNote    = "wait_note"
	stateContext = "wait_context"

	// profile answers collected so far ride along after the prefix
	stateProfileName  = "profile_name"
	stateProfileStart = "profile_start:"
	stateProfileDOB   = "profile_dob:"

	skip = "-"
)

func (h *Handler) prompt(chatID int64, state, text string) {
	if err := h.DB.SetUserState(chatID, state); err != nil {
		h.fail(chatID, "wait for your answer", err)
		return
	}
	h.send(chatID, text)
}

func (h *Handler) HandleText(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	switch text {
	case menuStart:
		h.clearState(chatID)
		h.startSession(chatID)
		return
	case menuSummary:
		h.showSummary(chatID)
		return
	case menuLogs:
		h.showLogs(chatID)
		return
	case menuProfile:
		h.showProfile(chatID)
		return
	case menuSettings:
		h.HandleSettings(chatID)
		return
	}

	state, err := h.DB.GetUserState(chatID)
	if err != nil {
		h.fail(chatID, "read your answer", err)
		return
	}
	if state == "" || text == "" {
		return
	}

	switch {
	case state == stateNote:
		if err := h.Rec.SetNote(chatID, text); err != nil {
			h.fail(chatID, "save the note", err)
			break
		}
		h.redrawAnnotation(chatID, 0)
	case state == stateContext:
		if err := h.Rec.SetContext(chatID, text); err != nil {
			h.fail(chatID, "save the context", err)
			break
		}
		h.redrawAnnotation(chatID, 0)
	case state == stateProfileName:
		h.prompt(chatID, stateProfileStart+orBlank(text), "Start date (MM/DD/YYYY), or - to skip.")
		return
	case strings.HasPrefix(state, stateProfileStart):
		name := strings.TrimPrefix(state, stateProfileStart)
		if !h.validDate(chatID, text) {
			return
		}
		h.prompt(chatID, stateProfileDOB+orBlank(text)+":"+name, "Date of birth (MM/DD/YYYY), or - to skip.")
		return
	case strings.HasPrefix(state, stateProfileDOB):
		start, name, _ := strings.Cut(strings.TrimPrefix(state, stateProfileDOB), ":")
		if !h.validDate(chatID, text) {
			return
		}
		p := models.UserProfile{Name: name, StartDate: start, DOB: orBlank(text)}
		if err := h.State.SaveProfile(p); err != nil {
			h.fail(chatID, "save your profile", err)
			break
		}
		h.clearState(chatID)
		h.showProfile(chatID)
		return
	}
	h.clearState(chatID)
}

// validDate accepts MM/DD/YYYY or the skip marker and asks again otherwise.
func (h *Handler) validDate(chatID int64, text string) bool {
	if text == skip {
		return true
	}
	if _, err := models.ParseDate(text, h.Loc); err != nil {
		h.send(chatID, "Format MM/DD/YYYY")
		return false
	}
	return true
}

func orBlank(text string) string {
	if text == skip {
		return ""
	}
	return text
}

func (h *Handler) handleProfileEdit(chatID int64) {
	h.prompt(chatID, stateProfileName, "What's your name?")
}

func (h *Handler) clearState(chatID int64) {
	utils.LogFor("clear user state", h.DB.SetUserState(chatID, ""))
}
