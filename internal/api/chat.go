// ABOUTME: Chat endpoints: ask, session management, message history, feedback
// ABOUTME: Message listings are paginated by the backend and flattened here

package api

import (
	"context"
	"net/http"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// ChatSource is a citation attached to an assistant reply.
type ChatSource struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}

// ChatMessage is one entry in a session's conversation.
type ChatMessage struct {
	ID          string       `json:"id"`
	SessionID   string       `json:"sessionId"`
	Role        ChatRole     `json:"role"`
	Content     string       `json:"content"`
	CreatedAt   string       `json:"createdAt"`
	Sources     []ChatSource `json:"sources,omitempty"`
	IsBlocked   bool         `json:"isBlocked,omitempty"`
	BlockReason string       `json:"blockReason,omitempty"`
}

// ChatSession is a backend-owned conversation thread.
type ChatSession struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
	Language  string `json:"language,omitempty"`
}

// AskPayload is the request for a single chat turn. SessionID is empty for
// the first message of a conversation; the backend creates the session.
type AskPayload struct {
	Message   string `json:"message"`
	Lang      string `json:"lang,omitempty"`
	SessionID string `json:"session_id,omitempty"`
}

// AskSafety reports moderation outcome for a reply.
type AskSafety struct {
	Blocked bool   `json:"blocked"`
	Reason  string `json:"reason,omitempty"`
}

// AskResponse is the assistant's reply for one chat turn.
type AskResponse struct {
	SessionID string       `json:"session_id"`
	Reply     string       `json:"reply"`
	Lang      string       `json:"lang"`
	Sources   []ChatSource `json:"sources"`
	Safety    AskSafety    `json:"safety"`
}

// paginated is the backend's standard list envelope.
type paginated[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Ask sends one chat message and returns the full assistant reply.
func (c *Client) Ask(ctx context.Context, payload AskPayload) (*AskResponse, error) {
	var resp AskResponse
	if err := c.do(ctx, http.MethodPost, endpointChatAsk, requestOptions{body: payload}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListSessions fetches all chat sessions owned by the authenticated user.
func (c *Client) ListSessions(ctx context.Context) ([]ChatSession, error) {
	var sessions []ChatSession
	if err := c.do(ctx, http.MethodGet, endpointChatSessions, requestOptions{}, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession fetches a single chat session by ID.
func (c *Client) GetSession(ctx context.Context, sessionID string) (*ChatSession, error) {
	var session ChatSession
	if err := c.do(ctx, http.MethodGet, endpointChatSession(sessionID), requestOptions{}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ListMessages fetches the authoritative message list for a session.
func (c *Client) ListMessages(ctx context.Context, sessionID string) ([]ChatMessage, error) {
	var page paginated[ChatMessage]
	if err := c.do(ctx, http.MethodGet, endpointChatMessages(sessionID), requestOptions{}, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}

// DeleteSession removes a chat session and its messages.
func (c *Client) DeleteSession(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, endpointChatSession(sessionID), requestOptions{}, nil)
}

// RenameSession updates a session title.
func (c *Client) RenameSession(ctx context.Context, sessionID, title string) (*ChatSession, error) {
	body := map[string]string{"title": title}

	var session ChatSession
	if err := c.do(ctx, http.MethodPatch, endpointChatSession(sessionID), requestOptions{body: body}, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// ChatFeedbackPayload rates an assistant message.
type ChatFeedbackPayload struct {
	SessionID string `json:"session_id"`
	MessageID string `json:"message_id,omitempty"`
	Rating    string `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// SubmitFeedback records feedback for a chat message.
func (c *Client) SubmitFeedback(ctx context.Context, payload ChatFeedbackPayload) error {
	return c.do(ctx, http.MethodPost, endpointChatFeedback, requestOptions{body: payload}, nil)
}
