// ABOUTME: Tests for the account surface model
// ABOUTME: Covers stats loading, logout request emission, and signed-out rendering

package account

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/authstore"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/session"
)

func newTestModel(t *testing.T, handler http.Handler) *Model {
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
	control := session.New(client, store)
	return New(client, control, i18n.English)
}

func TestInitLoadsStats(t *testing.T) {
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/me/stats/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chat":{"total_sessions":4,"total_messages":27},"feedback":{"total":3,"helpful":2}}`))
	}))

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("expected Init to load stats")
	}
	model, _ := m.Update(cmd())
	m = model.(*Model)

	if m.stats == nil {
		t.Fatalf("expected stats to be set, got error %v", m.err)
	}
	if m.stats.Chat.TotalSessions != 4 || m.stats.Chat.TotalMessages != 27 {
		t.Errorf("unexpected chat counters: %+v", m.stats.Chat)
	}
	if m.stats.Feedback.Helpful != 2 {
		t.Errorf("expected 2 helpful ratings, got %d", m.stats.Feedback.Helpful)
	}
}

func TestStatsErrorIsKept(t *testing.T) {
	m := newTestModel(t, nil)

	model, _ := m.Update(statsLoadedMsg{err: &api.Error{Path: "/v1/auth/me/stats/", Status: 502}})
	m = model.(*Model)

	if m.err == nil {
		t.Error("expected stats error to be kept")
	}
	if m.stats != nil {
		t.Error("expected no stats after a failed load")
	}
}

func TestSignOutKeyEmitsLogoutRequest(t *testing.T) {
	m := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	if cmd == nil {
		t.Fatal("expected a command for the sign-out key")
	}
	if _, ok := cmd().(LogoutRequestedMsg); !ok {
		t.Errorf("expected LogoutRequestedMsg, got %T", cmd())
	}
}

func TestRefreshKeyReloadsStats(t *testing.T) {
	var calls int
	m := newTestModel(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chat":{"total_sessions":1,"total_messages":1},"feedback":{"total":0,"helpful":0}}`))
	}))

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("expected a command for the refresh key")
	}
	msg := cmd()
	if _, ok := msg.(statsLoadedMsg); !ok {
		t.Fatalf("expected statsLoadedMsg, got %T", msg)
	}
	if calls != 1 {
		t.Errorf("expected one stats request, got %d", calls)
	}
}

func TestViewWithoutAccountShowsSignedOut(t *testing.T) {
	m := newTestModel(t, nil)
	m.SetSize(100, 30)

	if !strings.Contains(m.View(), "Not signed in") {
		t.Error("expected signed-out notice without an account")
	}
}
