// ABOUTME: Chat session and message state with the optimistic send protocol
// ABOUTME: Temporary entries are replaced wholesale by the backend's authoritative list

package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/i18n"
)

// Client-local ID prefixes for entries that have not been confirmed by the
// backend. They never survive a reconciliation.
const (
	tempUserPrefix = "temp-user-"
	tempAIPrefix   = "temp-ai-"
	errorPrefix    = "error-"
)

// Reveal pacing for the simulated streaming of assistant replies. The reply
// is fully known before the reveal starts; this is presentation only.
const (
	DefaultRevealInterval = 20 * time.Millisecond
	DefaultRevealGrace    = 500 * time.Millisecond
)

var (
	// ErrEmptyMessage rejects whitespace-only input.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrSendInFlight rejects a send while another one is pending.
	ErrSendInFlight = errors.New("a send is already in flight")
)

// Synchronizer owns the chat session list, the active session's messages,
// and the send protocol. It is UI-agnostic; surfaces observe its state and
// drive the reveal animation themselves.
type Synchronizer struct {
	mu sync.Mutex

	client *api.Client
	lang   i18n.Lang

	sessions  []api.ChatSession
	messages  []api.ChatMessage
	sessionID string
	sending   bool

	// Overridable for tests
	RevealInterval time.Duration
	RevealGrace    time.Duration
}

// New creates a Synchronizer using the given language for locally generated
// messages.
func New(client *api.Client, lang i18n.Lang) *Synchronizer {
	return &Synchronizer{
		client:         client,
		lang:           lang,
		RevealInterval: DefaultRevealInterval,
		RevealGrace:    DefaultRevealGrace,
	}
}

// Language returns the active chat language.
func (s *Synchronizer) Language() i18n.Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// SetLanguage switches the language used for requests and local messages.
func (s *Synchronizer) SetLanguage(lang i18n.Lang) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lang = lang
}

// Sessions returns a snapshot of the session list.
func (s *Synchronizer) Sessions() []api.ChatSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ChatSession(nil), s.sessions...)
}

// Messages returns a snapshot of the active session's messages.
func (s *Synchronizer) Messages() []api.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.ChatMessage(nil), s.messages...)
}

// CurrentSessionID returns the active session ID, empty when no session is
// active yet.
func (s *Synchronizer) CurrentSessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

// Sending reports whether a send is in flight.
func (s *Synchronizer) Sending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sending
}

// SendResult carries what a surface needs to animate the reply and schedule
// the reconciliation.
type SendResult struct {
	Reply      api.AskResponse
	TempUserID string
	TempAIID   string
}

// Send runs the first half of the send protocol: reject invalid input, append
// an optimistic user entry, call the ask endpoint, and adopt the session the
// backend chose. On failure the optimistic entry is removed and a
// language-appropriate assistant error message takes its place; the error is
// still returned so callers can log it, but the message state already tells
// the user what happened.
func (s *Synchronizer) Send(ctx context.Context, text string) (*SendResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.sending {
		s.mu.Unlock()
		return nil, ErrSendInFlight
	}
	s.sending = true

	tempID := tempUserPrefix + uuid.NewString()
	optimistic := api.ChatMessage{
		ID:        tempID,
		SessionID: s.sessionID,
		Role:      api.RoleUser,
		Content:   text,
		CreatedAt: now(),
	}
	s.messages = append(s.messages, optimistic)
	lang := s.lang
	sessionID := s.sessionID
	s.mu.Unlock()

	reply, err := s.client.Ask(ctx, api.AskPayload{
		Message:   text,
		Lang:      string(lang),
		SessionID: sessionID,
	})
	if err != nil {
		s.mu.Lock()
		s.removeMessageLocked(tempID)
		s.messages = append(s.messages, api.ChatMessage{
			ID:        errorPrefix + uuid.NewString(),
			SessionID: sessionID,
			Role:      api.RoleAssistant,
			Content:   i18n.T("chat.error", lang),
			CreatedAt: now(),
		})
		s.sending = false
		s.mu.Unlock()
		return nil, err
	}

	adopted := false
	s.mu.Lock()
	if s.sessionID != reply.SessionID {
		s.sessionID = reply.SessionID
		adopted = true
	}
	s.mu.Unlock()

	if adopted {
		// Best effort; the authoritative re-fetch happens in Reconcile
		_ = s.RefreshSessions(ctx)
	}

	return &SendResult{
		Reply:      *reply,
		TempUserID: tempID,
		TempAIID:   tempAIPrefix + uuid.NewString(),
	}, nil
}

// RevealDuration is how long the simulated streaming of a reply takes: one
// interval per character plus a grace period.
func (s *Synchronizer) RevealDuration(reply string) time.Duration {
	return time.Duration(len(reply))*s.RevealInterval + s.RevealGrace
}

// Reconcile finishes the send protocol: it replaces all local messages with
// the backend's authoritative list for the session, discarding optimistic
// entries. When the re-fetch fails, the assistant reply is appended manually
// and the optimistic user entry removed by its temporary ID.
func (s *Synchronizer) Reconcile(ctx context.Context, result *SendResult) {
	defer func() {
		s.mu.Lock()
		s.sending = false
		s.mu.Unlock()
	}()

	messages, err := s.client.ListMessages(ctx, result.Reply.SessionID)
	if err != nil {
		s.mu.Lock()
		s.removeMessageLocked(result.TempUserID)
		s.messages = append(s.messages, api.ChatMessage{
			ID:        result.TempAIID,
			SessionID: result.Reply.SessionID,
			Role:      api.RoleAssistant,
			Content:   result.Reply.Reply,
			Sources:   result.Reply.Sources,
			CreatedAt: now(),
		})
		s.mu.Unlock()
		return
	}

	s.mu.Lock()
	s.messages = messages
	s.mu.Unlock()
}

// SendAndReconcile runs the full protocol synchronously, waiting out the
// reveal window between the ask call and the authoritative re-fetch.
func (s *Synchronizer) SendAndReconcile(ctx context.Context, text string) error {
	result, err := s.Send(ctx, text)
	if err != nil {
		return err
	}

	select {
	case <-time.After(s.RevealDuration(result.Reply.Reply)):
	case <-ctx.Done():
	}

	s.Reconcile(ctx, result)
	return nil
}

// RefreshSessions re-fetches the session list from the backend.
func (s *Synchronizer) RefreshSessions(ctx context.Context) error {
	sessions, err := s.client.ListSessions(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions = sessions
	s.mu.Unlock()
	return nil
}

// LoadSession makes the given session active and fetches its messages.
func (s *Synchronizer) LoadSession(ctx context.Context, sessionID string) error {
	messages, err := s.client.ListMessages(ctx, sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessionID = sessionID
	s.messages = messages
	s.mu.Unlock()
	return nil
}

// NewChat clears the active session without touching the backend. The next
// Send lets the backend allocate a fresh session.
func (s *Synchronizer) NewChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = ""
	s.messages = nil
}

// DeleteSession removes a session on the backend and re-fetches the list.
// Deleting the active session also clears the local conversation.
func (s *Synchronizer) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.DeleteSession(ctx, sessionID); err != nil {
		return err
	}

	s.mu.Lock()
	if s.sessionID == sessionID {
		s.sessionID = ""
		s.messages = nil
	}
	s.mu.Unlock()

	return s.RefreshSessions(ctx)
}

// RenameSession updates a session title on the backend and re-fetches the
// list rather than patching local state.
func (s *Synchronizer) RenameSession(ctx context.Context, sessionID, title string) error {
	if _, err := s.client.RenameSession(ctx, sessionID, title); err != nil {
		return err
	}
	return s.RefreshSessions(ctx)
}

func (s *Synchronizer) removeMessageLocked(id string) {
	filtered := s.messages[:0]
	for _, m := range s.messages {
		if m.ID != id {
			filtered = append(filtered, m)
		}
	}
	s.messages = filtered
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
