// ABOUTME: Tests for the chat surface model
// ABOUTME: Drives Update with constructed messages; network-free

package chatview

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/authstore"
	"github.com/jambosec/jambosec-cli/internal/chat"
	"github.com/jambosec/jambosec-cli/internal/i18n"
)

func newTestModel(t *testing.T, handler http.Handler) (*Model, *chat.Synchronizer) {
	t.Helper()

	baseURL := "http://localhost:8000"
	if handler != nil {
		server := httptest.NewServer(handler)
		t.Cleanup(server.Close)
		baseURL = server.URL
	}

	dir := t.TempDir()
	store := authstore.New(dir+"/durable", dir+"/session")
	client := api.New(baseURL, store)
	sync := chat.New(client, i18n.English)

	m := New(sync, i18n.English)
	m.SetSize(100, 30)
	return m, sync
}

func TestEmptyConversationShowsGreeting(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.refreshFeed()

	view := m.feed.View()
	if !strings.Contains(view, "JamboSec") {
		t.Error("expected greeting label in empty feed")
	}
}

func TestGreetingFollowsLanguage(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.SetLang(i18n.Swahili)

	view := m.feed.View()
	if !strings.Contains(view, "Hujambo") {
		t.Error("expected Swahili greeting after language switch")
	}
	if m.input.Placeholder != i18n.T("chat.placeholder", i18n.Swahili) {
		t.Errorf("expected Swahili placeholder, got %q", m.input.Placeholder)
	}
}

func TestSendResultStartsRevealAndSchedulesReconcile(t *testing.T) {
	m, _ := newTestModel(t, nil)

	result := &chat.SendResult{
		Reply:      api.AskResponse{SessionID: "sess-1", Reply: "Tumia nenosiri imara."},
		TempUserID: "temp-user-1",
		TempAIID:   "temp-ai-1",
	}
	model, cmd := m.Update(sendResultMsg{result: result})
	m = model.(*Model)

	if cmd == nil {
		t.Fatal("expected reveal and reconcile commands")
	}
	if m.revealing != "temp-ai-1" {
		t.Errorf("expected revealing temp-ai-1, got %q", m.revealing)
	}
	if !m.writer.Active() {
		t.Error("expected typewriter to be active")
	}
}

func TestReconciledClearsReveal(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.revealing = "temp-ai-1"

	model, _ := m.Update(reconciledMsg{})
	m = model.(*Model)

	if m.revealing != "" {
		t.Errorf("expected reveal cleared, got %q", m.revealing)
	}
	if m.writer.Active() {
		t.Error("expected typewriter reset")
	}
}

func TestSidebarListsSessions(t *testing.T) {
	m, sync := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]api.ChatSession{
			{ID: "sess-1", Title: "Password hygiene"},
			{ID: "sess-2", Title: "Phishing"},
		})
	}))

	if err := sync.RefreshSessions(t.Context()); err != nil {
		t.Fatalf("RefreshSessions: %v", err)
	}

	view := m.viewSidebar()
	if !strings.Contains(view, "Password hygiene") || !strings.Contains(view, "Phishing") {
		t.Errorf("expected both sessions in sidebar, got %q", view)
	}
}

func TestSidebarTruncatesLongTitlesOnRunes(t *testing.T) {
	longTitle := strings.Repeat("ü", sidebarWidth)
	m, sync := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]api.ChatSession{
			{ID: "sess-1", Title: longTitle},
		})
	}))

	if err := sync.RefreshSessions(t.Context()); err != nil {
		t.Fatalf("RefreshSessions: %v", err)
	}

	view := m.viewSidebar()
	if !utf8.ValidString(view) {
		t.Fatal("sidebar contains invalid UTF-8 after truncation")
	}
	if strings.ContainsRune(view, utf8.RuneError) {
		t.Error("truncation split a multi-byte rune")
	}
	want := strings.Repeat("ü", sidebarWidth-4) + "…"
	if !strings.Contains(view, want) {
		t.Errorf("expected truncated title %q in sidebar, got %q", want, view)
	}
}

func TestTabTogglesFocus(t *testing.T) {
	m, _ := newTestModel(t, nil)

	if m.focused != focusInput {
		t.Fatal("expected input focus initially")
	}

	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(*Model)
	if m.focused != focusSidebar {
		t.Error("expected sidebar focus after tab")
	}

	model, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = model.(*Model)
	if m.focused != focusInput {
		t.Error("expected input focus after second tab")
	}
}

func TestEnterWithEmptyInputDoesNotSend(t *testing.T) {
	m, _ := newTestModel(t, nil)
	m.input.SetValue("   ")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Error("expected no send command for blank input")
	}
}
