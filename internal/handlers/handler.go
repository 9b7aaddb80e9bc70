package handlers

import (
	"errors"
	"log"
	"strings"
	"time"

	"telegram-session-counter/internal/logbook"
	"telegram-session-counter/internal/messages"
	"telegram-session-counter/internal/models"
	"telegram-session-counter/internal/session"
	"telegram-session-counter/internal/storage"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the handlers use.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type Handler struct {
	Bot   Sender
	DB    *storage.DB
	State *storage.State
	Rec   *session.Recorder
	Loc   *time.Location

	// Owner pins the bot to one chat; 0 lets the first /start claim it.
	Owner int64

	// Clock defaults to time.Now.
	Clock func() time.Time
}

func NewHandler(bot Sender, db *storage.DB, loc *time.Location, owner int64) *Handler {
	if loc == nil {
		loc = time.Local
	}
	st := storage.NewState(db)
	return &Handler{
		Bot:   bot,
		DB:    db,
		State: st,
		Rec:   session.NewRecorder(db, st, loc),
		Loc:   loc,
		Owner: owner,
		Clock: time.Now,
	}
}

func (h *Handler) now() time.Time { return h.Clock().In(h.Loc) }

// Listen consumes updates until the channel closes.
func (h *Handler) Listen(updates tgbotapi.UpdatesChannel) {
	for upd := range updates {
		h.HandleUpdate(upd)
	}
}

func (h *Handler) HandleUpdate(upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		msg := upd.Message
		claim := msg.IsCommand() && msg.Command() == "start"
		if !h.authorized(msg.Chat.ID, claim) {
			return
		}
		if msg.IsCommand() {
			h.HandleCommand(msg.Chat.ID, msg.Command())
			return
		}
		h.HandleText(msg)

	case upd.CallbackQuery != nil:
		cq := upd.CallbackQuery
		if cq.Message == nil || !h.authorized(cq.Message.Chat.ID, false) {
			return
		}
		h.HandleCallback(cq)
	}
}

// authorized binds the bot to a single chat. Without a configured owner the
// first chat sending /start becomes the owner.
func (h *Handler) authorized(chatID int64, claim bool) bool {
	if h.Owner != 0 {
		return chatID == h.Owner
	}
	owner, err := h.State.Owner()
	if err != nil {
		log.Println("read owner:", err)
		return false
	}
	if owner == 0 && claim {
		if err := h.State.SetOwner(chatID); err != nil {
			log.Println("save owner:", err)
			return false
		}
		log.Printf("bot bound to chat %d", chatID)
		return true
	}
	if owner != chatID {
		log.Printf("ignoring chat %d", chatID)
		return false
	}
	return true
}

// stats loads the log store and computes today's statistics.
func (h *Handler) stats() (*logbook.Book, logbook.Stats, error) {
	logs, err := h.State.Logs()
	if err != nil {
		return nil, logbook.Stats{}, err
	}
	book := logbook.Open(logs)
	return book, book.Snapshot(h.now()), nil
}

// RefreshCounters redraws the elapsed time of every running session.
func (h *Handler) RefreshCounters() {
	sessions, err := h.DB.ListCountingSessions()
	if err != nil {
		log.Println("list sessions:", err)
		return
	}
	now := h.now()
	for i := range sessions {
		h.refreshCounter(&sessions[i], now)
	}
}

// refreshCounter re-reads listed right before the edit so a session ended in
// the meantime keeps its annotation card.
func (h *Handler) refreshCounter(listed *models.ActiveSession, now time.Time) {
	s, err := h.Rec.Current(listed.ChatID)
	if err != nil {
		if !errors.Is(err, session.ErrNoSession) {
			log.Printf("refresh session %s: %v", listed.ID, err)
		}
		return
	}
	if s.ID != listed.ID || !s.Counting() || s.MsgID == 0 {
		return
	}
	edit := tgbotapi.NewEditMessageTextAndMarkup(s.ChatID, s.MsgID, messages.Session(s, now), countingKB(s))
	if _, err := h.Bot.Request(edit); err != nil && !notModified(err) {
		log.Printf("refresh session %s: %v", s.ID, err)
	}
}

func notModified(err error) bool {
	var apiErr *tgbotapi.Error
	return errors.As(err, &apiErr) && strings.Contains(apiErr.Message, "message is not modified")
}

func (h *Handler) send(chatID int64, text string) {
	if _, err := h.Bot.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("send to %d: %v", chatID, err)
	}
}

func (h *Handler) sendKB(chatID int64, text string, kb any) (tgbotapi.Message, error) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = kb
	m, err := h.Bot.Send(msg)
	if err != nil {
		log.Printf("send to %d: %v", chatID, err)
	}
	return m, err
}

func (h *Handler) edit(chatID int64, msgID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, msgID, text)
	edit.ReplyMarkup = kb
	if _, err := h.Bot.Request(edit); err != nil && !notModified(err) {
		log.Printf("edit %d/%d: %v", chatID, msgID, err)
	}
}

// fail logs a storage error and tells the user; nothing is retried.
func (h *Handler) fail(chatID int64, what string, err error) {
	log.Printf("%s: %v", what, err)
	h.send(chatID, "⚠️ Could not "+what+". Please try again.")
}
