// Package convo implements the per-session conversation engine for HealthBot.
//
// A Session owns an append-only message timeline and the active-category
// cursor, and exposes the transition operations the screen shell forwards user
// actions into: category selection, sub-category selection, yes/no prompt
// answers, and free-text sends. Every operation either appends exactly one
// user/bot message pair or is a no-op; failures never escape to the caller as
// anything other than a sentinel error or a single appended message.
package convo

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/ConnectHealth/HealthBot/internal/content"
	"github.com/ConnectHealth/HealthBot/internal/models"
)

// Responder bridges one free-text user message to a reply source. Exactly one
// call may be outstanding per session; the engine enforces this with its busy
// flag.
type Responder interface {
	Reply(ctx context.Context, username, message string) (string, error)
}

// Session is the conversation state for one screen instance. It is created
// with a seeded greeting, lives only in memory, and is discarded on Close.
// All mutation goes through the session mutex; the timeline is append-only
// and never reordered or pruned.
type Session struct {
	mu             sync.Mutex
	username       string
	responder      Responder
	timeline       []*models.Message
	activeCategory string
	nextID         int64
	busy           bool
	closed         bool
}

// NewSession creates a session for the given username, seeded with the bot
// greeting. The responder handles free-text messages; it must not be nil.
func NewSession(username string, responder Responder) *Session {
	slog.Debug("Session.NewSession: creating session", "username", username)
	s := &Session{
		username:  username,
		responder: responder,
		nextID:    1,
	}
	s.append(models.SenderBot, content.Greeting, nil)
	return s
}

// append adds a message to the timeline. Caller must hold s.mu (or be the
// constructor, before the session is shared).
func (s *Session) append(sender models.Sender, text string, prompt *models.YesNoPrompt) *models.Message {
	msg := &models.Message{
		ID:        s.nextID,
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now(),
		Prompt:    prompt,
	}
	s.nextID++
	s.timeline = append(s.timeline, msg)
	return msg
}

// SelectCategory appends the user's echo of the category label and the bot's
// intro reply, and moves the active-category cursor. Reselecting the current
// category is allowed and repeats the intro.
func (s *Session) SelectCategory(key string) error {
	cat, ok := content.CategoryByKey(key)
	if !ok {
		slog.Warn("Session.SelectCategory: unknown category", "key", key, "username", s.username)
		return models.ErrUnknownCategory
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ErrSessionClosed
	}
	s.append(models.SenderUser, cat.Label, nil)
	s.append(models.SenderBot, cat.IntroReply, nil)
	s.activeCategory = cat.Key
	slog.Debug("Session.SelectCategory: category selected", "key", key, "username", s.username)
	return nil
}

// SelectSubCategory appends the user's echo of the sub-category label and the
// bot's empathetic reply carrying a yes/no prompt for more detail. The screen
// shell only presents sub-categories once a category is active; the engine
// still refuses the call without one.
func (s *Session) SelectSubCategory(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ErrSessionClosed
	}
	if s.activeCategory == "" {
		slog.Warn("Session.SelectSubCategory: no active category", "label", label, "username", s.username)
		return models.ErrNoActiveCategory
	}
	sub, ok := content.SubCategoryByLabel(s.activeCategory, label)
	if !ok {
		slog.Warn("Session.SelectSubCategory: unknown sub-category", "label", label, "category", s.activeCategory, "username", s.username)
		return models.ErrUnknownSubCategory
	}
	s.append(models.SenderUser, sub.Label, nil)
	s.append(models.SenderBot, sub.BotReply, &models.YesNoPrompt{Subject: sub.Label})
	slog.Debug("Session.SelectSubCategory: prompt offered", "subject", sub.Label, "category", s.activeCategory)
	return nil
}

// AnswerPrompt resolves the yes/no prompt on the message with the given id.
// A message whose prompt has already been answered is a no-op (double-tap
// guard). Otherwise the prompt is cleared in place, the verbatim user echo is
// appended, and exactly one terminal bot message follows: the detail body plus
// helplines on yes, the helplines alone on no.
func (s *Session) AnswerPrompt(messageID int64, answer models.Answer) error {
	if !models.IsValidAnswer(answer) {
		return models.ErrInvalidAnswer
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return models.ErrSessionClosed
	}
	msg := s.findLocked(messageID)
	if msg == nil {
		slog.Warn("Session.AnswerPrompt: message not found", "messageID", messageID, "username", s.username)
		return models.ErrUnknownMessage
	}
	if msg.Prompt == nil {
		slog.Debug("Session.AnswerPrompt: prompt already resolved, ignoring", "messageID", messageID)
		return nil
	}
	subject := msg.Prompt.Subject
	msg.Prompt = nil

	if answer == models.AnswerYes {
		s.append(models.SenderUser, content.YesReplyText, nil)
		s.append(models.SenderBot, s.detailTextLocked(subject), nil)
	} else {
		s.append(models.SenderUser, content.NoReplyText, nil)
		s.append(models.SenderBot, content.DeclineLeadIn+s.helplineBlockLocked(), nil)
	}
	slog.Debug("Session.AnswerPrompt: prompt answered", "messageID", messageID, "answer", answer, "subject", subject)
	return nil
}

// detailTextLocked composes the yes-branch terminal message. A missing detail
// entry means a gap in the shipped content tables; it is logged loudly and
// answered with the helpline-only text rather than crashing the session.
func (s *Session) detailTextLocked(subject string) string {
	detail, ok := content.DetailedInfo(s.activeCategory, subject)
	if !ok {
		slog.Error("Session.AnswerPrompt: missing detailed info, falling back to helplines", "category", s.activeCategory, "subject", subject)
		return content.FallbackLeadIn + s.helplineBlockLocked()
	}
	return detail + s.helplineBlockLocked()
}

// helplineBlockLocked returns the helpline header, the active category's
// helpline numbers, and the closing line.
func (s *Session) helplineBlockLocked() string {
	block, ok := content.Helpline(s.activeCategory)
	if !ok {
		slog.Error("Session.helplineBlock: missing helpline block", "category", s.activeCategory)
		block = ""
	}
	return content.HelplineHeader + block + content.ClosingLine
}

// SendFreeText appends the trimmed user message and bridges it through the
// responder. Empty input is rejected without mutating the timeline. While a
// reply is outstanding the session is busy and further sends are rejected, not
// queued, so the completion always appends directly after its trigger. Any
// responder failure is recovered locally as a single apology message.
func (s *Session) SendFreeText(ctx context.Context, text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return models.ErrEmptyMessage
	}
	if len(trimmed) > models.MaxFreeTextLength {
		return models.ErrMessageTooLong
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return models.ErrSessionClosed
	}
	if s.busy {
		s.mu.Unlock()
		slog.Debug("Session.SendFreeText: rejected, reply outstanding", "username", s.username)
		return models.ErrSessionBusy
	}
	s.append(models.SenderUser, trimmed, nil)
	s.busy = true
	s.mu.Unlock()

	reply, err := s.responder.Reply(ctx, s.username, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if s.closed {
		// The screen is gone; abandon delivery instead of appending to a
		// discarded timeline.
		slog.Debug("Session.SendFreeText: session closed, dropping reply", "username", s.username)
		return nil
	}
	if err != nil {
		slog.Error("Session.SendFreeText: responder failed", "error", err, "username", s.username)
		s.append(models.SenderBot, content.ApologyText, nil)
		return nil
	}
	if strings.TrimSpace(reply) == "" {
		slog.Error("Session.SendFreeText: responder returned empty reply", "username", s.username)
		s.append(models.SenderBot, content.ApologyText, nil)
		return nil
	}
	s.append(models.SenderBot, reply, nil)
	slog.Debug("Session.SendFreeText: reply appended", "username", s.username)
	return nil
}

// findLocked locates a timeline message by id. Caller must hold s.mu.
func (s *Session) findLocked(messageID int64) *models.Message {
	for _, msg := range s.timeline {
		if msg.ID == messageID {
			return msg
		}
	}
	return nil
}

// Timeline returns a snapshot copy of the message timeline in append order.
// The snapshot is detached: mutating it does not affect the session.
func (s *Session) Timeline() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.timeline))
	for i, msg := range s.timeline {
		out[i] = *msg
		if msg.Prompt != nil {
			prompt := *msg.Prompt
			out[i].Prompt = &prompt
		}
	}
	return out
}

// ActiveCategory returns the current category cursor, or "" before any
// selection.
func (s *Session) ActiveCategory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCategory
}

// Busy reports whether a free-text reply is outstanding.
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// Username returns the name the session was opened with.
func (s *Session) Username() string {
	return s.username
}

// Close discards the session. Subsequent operations are rejected and an
// in-flight reply, if any, is dropped on completion.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	slog.Debug("Session.Close: session closed", "username", s.username)
}
