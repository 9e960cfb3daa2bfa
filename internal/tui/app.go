// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Manages screen state, session lifecycle, and language fan-out between surfaces

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/broadcast"
	"github.com/jambosec/jambosec-cli/internal/chat"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/session"
	"github.com/jambosec/jambosec-cli/internal/settings"
	"github.com/jambosec/jambosec-cli/internal/tui/account"
	"github.com/jambosec/jambosec-cli/internal/tui/authform"
	"github.com/jambosec/jambosec-cli/internal/tui/chatview"
	"github.com/jambosec/jambosec-cli/internal/tui/icons"
	"github.com/jambosec/jambosec-cli/internal/tui/knowledge"
	"github.com/jambosec/jambosec-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenChecking Screen = iota
	ScreenAuth
	ScreenChat
	ScreenKnowledge
	ScreenAccount
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum width before clamping layout math
)

// hydratedMsg is sent when the startup session check completes.
type hydratedMsg struct{}

// authDoneMsg is sent when a login or signup attempt settles.
type authDoneMsg struct {
	err error
}

// loggedOutMsg is sent when logout has completed.
type loggedOutMsg struct{}

// App is the root model for the TUI
type App struct {
	client  *api.Client
	control *session.Controller
	prefs   *settings.Manager
	bus     *broadcast.Channel

	screen   Screen
	lang     i18n.Lang
	width    int
	height   int
	authErr  error
	authMode authform.Mode

	authView  *authform.Form
	chatView  *chatview.Model
	knowView  *knowledge.Model
	acctView  *account.Model
	chatSync  *chat.Synchronizer
	unsubs    []func()
	langQueue []tea.Cmd
}

// New creates a new TUI application
func New(client *api.Client, control *session.Controller, prefs *settings.Manager) *App {
	return &App{
		client:  client,
		control: control,
		prefs:   prefs,
		bus:     broadcast.NewChannel(),
		screen:  ScreenChecking,
		lang:    i18n.Normalize(prefs.Locale()),
	}
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return func() tea.Msg {
		a.control.Hydrate(context.Background())
		return hydratedMsg{}
	}
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeSurfaces()
		if a.screen == ScreenAuth && a.authView != nil {
			return a.updateAuth(msg)
		}
		return a, nil

	case tea.KeyMsg:
		// Global shortcuts
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+g":
			if a.screen != ScreenAuth && a.screen != ScreenChecking {
				return a, a.toggleLanguage()
			}
		case "ctrl+t":
			if a.isAppScreen() {
				a.cycleScreen()
				return a, nil
			}
		}

		switch a.screen {
		case ScreenAuth:
			return a.updateAuth(msg)
		case ScreenChat:
			return a.updateSurface(a.chatViewModel(), msg)
		case ScreenKnowledge:
			return a.updateSurface(a.knowViewModel(), msg)
		case ScreenAccount:
			return a.updateSurface(a.acctViewModel(), msg)
		}
		return a, nil

	case hydratedMsg:
		if a.control.IsAuthenticated() {
			return a, a.enterApp()
		}
		a.showAuth(authform.ModeLogin)
		return a, a.authView.Init()

	case authform.LoginSubmittedMsg:
		return a, a.login(msg)

	case authform.SignupSubmittedMsg:
		return a, a.signup(msg)

	case authform.SwitchModeMsg:
		a.showAuth(msg.Mode)
		return a, a.authView.Init()

	case authform.CancelledMsg:
		if a.control.IsAuthenticated() {
			a.screen = ScreenChat
			return a, nil
		}
		return a, tea.Quit

	case authDoneMsg:
		if msg.err != nil {
			a.authErr = msg.err
			// Rebuild the form in the same mode so the user can retry
			a.showAuth(a.authMode)
			return a, a.authView.Init()
		}
		a.authErr = nil
		return a, a.enterApp()

	case account.LogoutRequestedMsg:
		return a, a.logout()

	case loggedOutMsg:
		a.teardownSurfaces()
		a.showAuth(authform.ModeLogin)
		return a, a.authView.Init()
	}

	// Everything else (ticks, load results, huh internals) is routed to the
	// surfaces that may have work in flight.
	if a.screen == ScreenAuth && a.authView != nil {
		return a.updateAuth(msg)
	}
	return a, a.fanOut(msg)
}

// updateAuth forwards a message to the auth form.
func (a *App) updateAuth(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.authView == nil {
		return a, nil
	}
	model, cmd := a.authView.Update(msg)
	a.authView = model.(*authform.Form)
	return a, cmd
}

// surface is the shared shape of the child views.
type surface interface {
	Update(tea.Msg) (tea.Model, tea.Cmd)
	View() string
}

func (a *App) chatViewModel() surface {
	if a.chatView == nil {
		return nil
	}
	return a.chatView
}

func (a *App) knowViewModel() surface {
	if a.knowView == nil {
		return nil
	}
	return a.knowView
}

func (a *App) acctViewModel() surface {
	if a.acctView == nil {
		return nil
	}
	return a.acctView
}

func (a *App) updateSurface(s surface, msg tea.Msg) (tea.Model, tea.Cmd) {
	if s == nil {
		return a, nil
	}
	_, cmd := s.Update(msg)
	return a, cmd
}

// fanOut delivers non-key messages to every live surface. Each surface
// ignores message types it does not own, so background work (typewriter
// ticks, reconcile timers, slow loads) lands even when its surface is not
// the one on screen.
func (a *App) fanOut(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, s := range []surface{a.chatViewModel(), a.knowViewModel(), a.acctViewModel()} {
		if s == nil {
			continue
		}
		if _, cmd := s.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// showAuth swaps in a fresh auth form in the given mode.
func (a *App) showAuth(mode authform.Mode) {
	a.authMode = mode
	a.authView = authform.New(mode, a.lang)
	a.screen = ScreenAuth
}

// enterApp builds the authenticated surfaces and wires language fan-out.
func (a *App) enterApp() tea.Cmd {
	a.chatSync = chat.New(a.client, a.lang)
	a.chatView = chatview.New(a.chatSync, a.lang)
	a.knowView = knowledge.New(a.client, a.prefs, a.lang)
	a.acctView = account.New(a.client, a.control, a.lang)

	a.unsubs = append(a.unsubs,
		a.bus.Subscribe(func(ev broadcast.LanguageChanged) {
			a.chatView.SetLang(ev.Lang)
		}),
		a.bus.Subscribe(func(ev broadcast.LanguageChanged) {
			if cmd := a.knowView.SetLang(ev.Lang); cmd != nil {
				a.langQueue = append(a.langQueue, cmd)
			}
		}),
		a.bus.Subscribe(func(ev broadcast.LanguageChanged) {
			a.acctView.SetLang(ev.Lang)
		}),
	)

	a.screen = ScreenChat
	a.resizeSurfaces()
	return tea.Batch(a.chatView.Init(), a.knowView.Init(), a.acctView.Init())
}

// teardownSurfaces drops the authenticated surfaces and their subscriptions.
func (a *App) teardownSurfaces() {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
	a.chatView = nil
	a.knowView = nil
	a.acctView = nil
	a.chatSync = nil
}

func (a *App) resizeSurfaces() {
	contentHeight := a.contentHeight()
	if a.chatView != nil {
		a.chatView.SetSize(a.width, contentHeight)
	}
	if a.knowView != nil {
		a.knowView.SetSize(a.width, contentHeight)
	}
	if a.acctView != nil {
		a.acctView.SetSize(a.width, contentHeight)
	}
}

func (a *App) isAppScreen() bool {
	return a.screen == ScreenChat || a.screen == ScreenKnowledge || a.screen == ScreenAccount
}

func (a *App) cycleScreen() {
	switch a.screen {
	case ScreenChat:
		a.screen = ScreenKnowledge
	case ScreenKnowledge:
		a.screen = ScreenAccount
	case ScreenAccount:
		a.screen = ScreenChat
	}
}

// toggleLanguage flips the locale, persists it, and fans the change out to
// every subscribed surface. Commands queued by subscribers run afterwards.
func (a *App) toggleLanguage() tea.Cmd {
	a.lang = i18n.Toggle(a.lang)
	_ = a.prefs.SetLocale(string(a.lang))
	a.bus.Publish(broadcast.LanguageChanged{Lang: a.lang})

	queued := a.langQueue
	a.langQueue = nil
	if len(queued) == 0 {
		return nil
	}
	return tea.Batch(queued...)
}

// Commands

func (a *App) login(msg authform.LoginSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.control.Login(context.Background(), session.LoginParams{
			Login:    msg.Email,
			Password: msg.Password,
			Remember: msg.Remember,
		})
		return authDoneMsg{err: err}
	}
}

func (a *App) signup(msg authform.SignupSubmittedMsg) tea.Cmd {
	return func() tea.Msg {
		err := a.control.Signup(context.Background(), session.SignupParams{
			Username:  msg.Username,
			Email:     msg.Email,
			Password:  msg.Password,
			FirstName: msg.FirstName,
			LastName:  msg.LastName,
			Remember:  msg.Remember,
		})
		return authDoneMsg{err: err}
	}
}

func (a *App) logout() tea.Cmd {
	return func() tea.Msg {
		a.control.Logout(context.Background())
		return loggedOutMsg{}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string

	switch a.screen {
	case ScreenChecking:
		content = styles.Subtitle.Render("Checking session...")
	case ScreenAuth:
		content = a.viewAuth()
	case ScreenChat:
		if a.chatView != nil {
			content = a.chatView.View()
		}
	case ScreenKnowledge:
		if a.knowView != nil {
			content = a.knowView.View()
		}
	case ScreenAccount:
		if a.acctView != nil {
			content = a.acctView.View()
		}
	}

	return a.wrapWithFrame(content)
}

func (a *App) viewAuth() string {
	if a.authView == nil {
		return ""
	}
	content := a.authView.View()
	if a.authErr != nil {
		content += "\n" + styles.StatusCritical.Render(a.authErr.Error())
	}
	return content
}

// renderHeader creates the header bar with app branding and session context
func (a *App) renderHeader() string {
	// Guard against zero/small width before WindowSizeMsg is received
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s", icons.App.String(), titleStyle.Render("JamboSec"))

	rightText := ""
	rightPlain := ""
	if acct := a.control.Account(); acct != nil && a.isAppScreen() {
		langTag := strings.ToUpper(string(a.lang))
		rightPlain = acct.DisplayName + "  " + langTag + " "
		rightText = contextStyle.Render(acct.DisplayName) + "  " + titleStyle.Render(langTag) + " "
	}

	leftWidth := lipgloss.Width(leftText)
	rightWidth := lipgloss.Width(rightPlain)
	fillWidth := width - 4 - leftWidth - rightWidth // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

// renderFooter creates the footer with keyboard shortcuts
func (a *App) renderFooter() string {
	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)

	var shortcuts []string
	switch a.screen {
	case ScreenAuth:
		shortcuts = []string{"Enter Submit", "ctrl+s Switch", "Esc Back"}
	case ScreenChat:
		shortcuts = []string{"Enter Send", "Tab Sessions", "ctrl+n New", "ctrl+t Surface", "ctrl+g Lugha"}
	case ScreenKnowledge:
		shortcuts = []string{"/ Search", "Enter Open", "Esc Back", "ctrl+t Surface", "ctrl+g Lugha"}
	case ScreenAccount:
		shortcuts = []string{"r Refresh", "o Sign out", "ctrl+t Surface", "ctrl+g Lugha"}
	default:
		shortcuts = []string{"ctrl+c Quit"}
	}

	var styledShortcuts []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styledShortcuts = append(styledShortcuts, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styledShortcuts = append(styledShortcuts, s)
		}
	}

	leftText := " " + strings.Join(styledShortcuts, "  ")
	leftPlain := " " + strings.Join(shortcuts, "  ")

	leftWidth := lipgloss.Width(leftPlain)
	fillWidth := width - 4 - leftWidth // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + "─╯"
	return borderStyle.Render(footer)
}

// contentHeight calculates the height available for surface content
func (a *App) contentHeight() int {
	// Header, footer, and the blank lines around the content
	return a.height - 4
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(client *api.Client, control *session.Controller, prefs *settings.Manager) error {
	app := New(client, control, prefs)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
