// ABOUTME: Integration tests for TUI app
// ABOUTME: Tests screen transitions, session settlement, and language fan-out

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/authstore"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/session"
	"github.com/jambosec/jambosec-cli/internal/settings"
	"github.com/jambosec/jambosec-cli/internal/tui/authform"
)

// newTestApp wires an App against throwaway storage. No network calls are
// made unless a returned command is executed.
func newTestApp(t *testing.T) *App {
	t.Helper()
	dir := t.TempDir()
	store := authstore.New(dir+"/durable", dir+"/session")
	client := api.New("http://localhost:8000", store)
	control := session.New(client, store)
	prefs := settings.New(dir + "/config")
	return New(client, control, prefs)
}

func TestAppInitialState(t *testing.T) {
	app := newTestApp(t)

	if app.screen != ScreenChecking {
		t.Errorf("expected initial screen to be ScreenChecking, got %d", app.screen)
	}
	if app.lang != i18n.English {
		t.Errorf("expected default language en, got %s", app.lang)
	}
}

func TestHydratedWithoutSessionShowsAuth(t *testing.T) {
	app := newTestApp(t)

	model, _ := app.Update(hydratedMsg{})
	app = model.(*App)

	if app.screen != ScreenAuth {
		t.Errorf("expected ScreenAuth after hydration without tokens, got %d", app.screen)
	}
	if app.authView == nil {
		t.Error("expected auth form to be initialized")
	}
}

func TestAuthFailureStaysOnAuthWithError(t *testing.T) {
	app := newTestApp(t)
	app.showAuth(authform.ModeLogin)

	model, _ := app.Update(authDoneMsg{err: &api.Error{Path: "/v1/auth/login/", Status: 401}})
	app = model.(*App)

	if app.screen != ScreenAuth {
		t.Errorf("expected to stay on ScreenAuth after failed login, got %d", app.screen)
	}
	if app.authErr == nil {
		t.Error("expected auth error to be surfaced")
	}
}

func TestAuthSuccessEntersChat(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	model, _ := app.Update(authDoneMsg{})
	app = model.(*App)

	if app.screen != ScreenChat {
		t.Errorf("expected ScreenChat after successful auth, got %d", app.screen)
	}
	if app.chatView == nil || app.knowView == nil || app.acctView == nil {
		t.Error("expected all surfaces to be built")
	}
}

func TestCycleScreenVisitsAllSurfaces(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(authDoneMsg{})
	app = model.(*App)

	app.cycleScreen()
	if app.screen != ScreenKnowledge {
		t.Errorf("expected ScreenKnowledge, got %d", app.screen)
	}
	app.cycleScreen()
	if app.screen != ScreenAccount {
		t.Errorf("expected ScreenAccount, got %d", app.screen)
	}
	app.cycleScreen()
	if app.screen != ScreenChat {
		t.Errorf("expected ScreenChat, got %d", app.screen)
	}
}

func TestToggleLanguagePersistsAndFansOut(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(authDoneMsg{})
	app = model.(*App)

	app.toggleLanguage()

	if app.lang != i18n.Swahili {
		t.Errorf("expected language sw after toggle, got %s", app.lang)
	}
	if got := app.prefs.Locale(); got != "sw" {
		t.Errorf("expected persisted locale sw, got %q", got)
	}
	if got := app.chatSync.Language(); got != i18n.Swahili {
		t.Errorf("expected chat synchronizer language sw, got %s", got)
	}

	app.toggleLanguage()
	if app.lang != i18n.English {
		t.Errorf("expected language en after second toggle, got %s", app.lang)
	}
}

func TestLogoutReturnsToAuth(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(authDoneMsg{})
	app = model.(*App)

	model, _ = app.Update(loggedOutMsg{})
	app = model.(*App)

	if app.screen != ScreenAuth {
		t.Errorf("expected ScreenAuth after logout, got %d", app.screen)
	}
	if app.chatView != nil || app.knowView != nil || app.acctView != nil {
		t.Error("expected surfaces to be torn down after logout")
	}
}

func TestAppViewShowsBranding(t *testing.T) {
	app := newTestApp(t)
	app.width = 100
	app.height = 40

	view := app.View()
	if !strings.Contains(view, "JamboSec") {
		t.Error("expected view to contain 'JamboSec'")
	}
}

func TestFooterShortcutsPerScreen(t *testing.T) {
	app := newTestApp(t)
	model, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	app = model.(*App)
	model, _ = app.Update(authDoneMsg{})
	app = model.(*App)

	view := app.View()
	if !strings.Contains(view, "Send") {
		t.Error("expected chat footer to mention Send")
	}

	app.screen = ScreenKnowledge
	view = app.View()
	if !strings.Contains(view, "Search") {
		t.Error("expected knowledge footer to mention Search")
	}

	app.screen = ScreenAccount
	view = app.View()
	if !strings.Contains(view, "Sign out") {
		t.Error("expected account footer to mention Sign out")
	}
}
