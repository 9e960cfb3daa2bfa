// ABOUTME: Chat surface with session sidebar, message feed, and input line
// ABOUTME: Drives the synchronizer and reveals assistant replies with the typewriter

package chatview

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/chat"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/tui/debuglog"
	"github.com/jambosec/jambosec-cli/internal/tui/icons"
	"github.com/jambosec/jambosec-cli/internal/tui/styles"
	"github.com/jambosec/jambosec-cli/internal/tui/typewriter"
)

// focus identifies which pane receives navigation keys.
type focus int

const (
	focusInput focus = iota
	focusSidebar
)

const sidebarWidth = 28

// sessionsLoadedMsg is sent when the session list refresh completes.
type sessionsLoadedMsg struct {
	err error
}

// sessionLoadedMsg is sent when a conversation's messages are loaded.
type sessionLoadedMsg struct {
	err error
}

// sendResultMsg is sent when the backend answered (or refused) a message.
type sendResultMsg struct {
	result *chat.SendResult
	err    error
}

// reconcileDueMsg fires after the reveal window to trigger reconciliation.
type reconcileDueMsg struct {
	result *chat.SendResult
}

// reconciledMsg is sent when the authoritative refetch completes.
type reconciledMsg struct{}

// sessionDeletedMsg is sent when a session deletion completes.
type sessionDeletedMsg struct {
	err error
}

// Model is the chat surface.
type Model struct {
	sync   *chat.Synchronizer
	writer typewriter.Model
	input  textinput.Model
	feed   viewport.Model

	lang      i18n.Lang
	focused   focus
	selected  int // sidebar cursor
	revealing string
	width     int
	height    int
	feedErr   error
}

// New creates the chat surface and kicks off a session list load via Init.
func New(sync *chat.Synchronizer, lang i18n.Lang) *Model {
	ti := textinput.New()
	ti.Placeholder = i18n.T("chat.placeholder", lang)
	ti.CharLimit = 2000
	ti.Focus()

	return &Model{
		sync:   sync,
		writer: typewriter.New(),
		input:  ti,
		feed:   viewport.New(0, 0),
		lang:   lang,
	}
}

// SetLang updates the display language for this surface.
func (m *Model) SetLang(lang i18n.Lang) {
	m.lang = lang
	m.sync.SetLanguage(lang)
	m.input.Placeholder = i18n.T("chat.placeholder", lang)
	m.refreshFeed()
}

// SetSize resizes the surface panes.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.feed.Width = m.feedWidth()
	m.feed.Height = height - 4
	if m.feed.Height < 3 {
		m.feed.Height = 3
	}
	m.input.Width = m.feedWidth() - 4
	m.refreshFeed()
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.loadSessions())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case typewriter.TickMsg:
		cmd := m.writer.Update(msg)
		m.refreshFeed()
		return m, cmd

	case typewriter.DoneMsg:
		m.refreshFeed()
		return m, nil

	case sessionsLoadedMsg:
		if msg.err != nil {
			debuglog.Error("chat.sessions", msg.err)
		}
		m.clampSelection()
		m.refreshFeed()
		return m, nil

	case sessionLoadedMsg:
		if msg.err != nil {
			debuglog.Error("chat.load", msg.err)
			m.feedErr = msg.err
		} else {
			m.feedErr = nil
		}
		m.writer.Reset()
		m.revealing = ""
		m.refreshFeed()
		m.feed.GotoBottom()
		return m, nil

	case sendResultMsg:
		return m.handleSendResult(msg)

	case reconcileDueMsg:
		return m, m.reconcile(msg.result)

	case reconciledMsg:
		m.revealing = ""
		m.writer.Reset()
		m.refreshFeed()
		m.feed.GotoBottom()
		return m, nil

	case sessionDeletedMsg:
		if msg.err != nil {
			debuglog.Error("chat.delete", msg.err)
		}
		m.clampSelection()
		m.refreshFeed()
		return m, nil
	}

	var cmd tea.Cmd
	m.feed, cmd = m.feed.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab":
		if m.focused == focusInput {
			m.focused = focusSidebar
			m.input.Blur()
		} else {
			m.focused = focusInput
			m.input.Focus()
		}
		return m, nil

	case "ctrl+n":
		m.sync.NewChat()
		m.writer.Reset()
		m.revealing = ""
		m.focused = focusInput
		m.input.Focus()
		m.refreshFeed()
		return m, nil
	}

	if m.focused == focusSidebar {
		return m.handleSidebarKey(msg)
	}

	switch msg.String() {
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.sync.Sending() {
			return m, nil
		}
		m.input.SetValue("")
		m.refreshFeed()
		return m, m.send(text)

	case "up", "down", "pgup", "pgdown":
		var cmd tea.Cmd
		m.feed, cmd = m.feed.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleSidebarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	sessions := m.sync.Sessions()

	switch msg.String() {
	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case "down", "j":
		if m.selected < len(sessions)-1 {
			m.selected++
		}
		return m, nil

	case "enter":
		if m.selected < len(sessions) {
			id := sessions[m.selected].ID
			m.focused = focusInput
			m.input.Focus()
			return m, m.loadSession(id)
		}
		return m, nil

	case "d":
		if m.selected < len(sessions) {
			id := sessions[m.selected].ID
			return m, m.deleteSession(id)
		}
		return m, nil

	case "r":
		return m, m.loadSessions()
	}

	return m, nil
}

func (m *Model) handleSendResult(msg sendResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("chat.send", msg.err)
		// The synchronizer already appended a localized error message.
		m.refreshFeed()
		m.feed.GotoBottom()
		return m, nil
	}

	m.revealing = msg.result.TempAIID
	m.writer.Interval = m.sync.RevealInterval
	revealCmd := m.writer.Start(msg.result.Reply.Reply)
	m.refreshFeed()
	m.feed.GotoBottom()

	wait := m.sync.RevealDuration(msg.result.Reply.Reply)
	result := msg.result
	due := tea.Tick(wait, func(time.Time) tea.Msg {
		return reconcileDueMsg{result: result}
	})
	return m, tea.Batch(revealCmd, due)
}

// Commands

func (m *Model) loadSessions() tea.Cmd {
	return func() tea.Msg {
		return sessionsLoadedMsg{err: m.sync.RefreshSessions(context.Background())}
	}
}

func (m *Model) loadSession(id string) tea.Cmd {
	return func() tea.Msg {
		return sessionLoadedMsg{err: m.sync.LoadSession(context.Background(), id)}
	}
}

func (m *Model) send(text string) tea.Cmd {
	return func() tea.Msg {
		result, err := m.sync.Send(context.Background(), text)
		return sendResultMsg{result: result, err: err}
	}
}

func (m *Model) reconcile(result *chat.SendResult) tea.Cmd {
	return func() tea.Msg {
		m.sync.Reconcile(context.Background(), result)
		return reconciledMsg{}
	}
}

func (m *Model) deleteSession(id string) tea.Cmd {
	return func() tea.Msg {
		return sessionDeletedMsg{err: m.sync.DeleteSession(context.Background(), id)}
	}
}

func (m *Model) clampSelection() {
	n := len(m.sync.Sessions())
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// Rendering

func (m *Model) feedWidth() int {
	w := m.width - sidebarWidth - 6
	if w < 30 {
		w = 30
	}
	return w
}

// refreshFeed rebuilds the viewport content from the synchronizer snapshot.
func (m *Model) refreshFeed() {
	messages := m.sync.Messages()

	var sb strings.Builder
	if len(messages) == 0 {
		sb.WriteString(styles.AssistantLabel.Render("JamboSec"))
		sb.WriteString("\n")
		sb.WriteString(wrap(i18n.T("chat.greeting", m.lang), m.feedWidth()))
		sb.WriteString("\n")
	}

	revealInList := false
	for _, msg := range messages {
		label := styles.UserLabel.Render("You")
		if msg.Role == api.RoleAssistant {
			label = styles.AssistantLabel.Render("JamboSec")
		}
		sb.WriteString(label)
		sb.WriteString("\n")

		content := msg.Content
		if msg.ID == m.revealing {
			content = m.writer.View()
			revealInList = true
		}
		sb.WriteString(wrap(content, m.feedWidth()))
		sb.WriteString("\n\n")
	}

	// The reply being revealed is not part of the synchronizer's list until
	// reconciliation replaces it with the authoritative entry.
	if m.revealing != "" && !revealInList {
		sb.WriteString(styles.AssistantLabel.Render("JamboSec"))
		sb.WriteString("\n")
		sb.WriteString(wrap(m.writer.View(), m.feedWidth()))
		sb.WriteString("\n\n")
	}

	if m.sync.Sending() && m.revealing == "" {
		sb.WriteString(styles.Subtitle.Render("..."))
		sb.WriteString("\n")
	}

	m.feed.SetContent(sb.String())
}

// viewSidebar renders the session list.
func (m *Model) viewSidebar() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Chat.String() + " " + i18n.T("nav.chat", m.lang)))
	sb.WriteString("\n")

	sessions := m.sync.Sessions()
	if len(sessions) == 0 {
		sb.WriteString(styles.Subtitle.Render(i18n.T("chat.empty", m.lang)))
		sb.WriteString("\n")
		sb.WriteString(styles.Subtitle.Render(i18n.T("chat.start", m.lang)))
		return sb.String()
	}

	current := m.sync.CurrentSessionID()
	for i, s := range sessions {
		title := s.Title
		if title == "" {
			title = i18n.T("chat.new", m.lang)
		}
		if runes := []rune(title); len(runes) > sidebarWidth-4 {
			title = string(runes[:sidebarWidth-4]) + "…"
		}

		line := "  " + title
		switch {
		case m.focused == focusSidebar && i == m.selected:
			line = styles.SelectedItem.Render("> " + title)
		case s.ID == current:
			line = styles.KeyStyle.Render("  " + title)
		default:
			line = styles.NormalItem.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	return sb.String()
}

// View implements tea.Model
func (m *Model) View() string {
	sidebarStyle := styles.Panel
	feedStyle := styles.ActivePanel
	if m.focused == focusSidebar {
		sidebarStyle = styles.ActivePanel
		feedStyle = styles.Panel
	}

	sidebar := sidebarStyle.Width(sidebarWidth).Render(m.viewSidebar())

	var right strings.Builder
	right.WriteString(m.feed.View())
	right.WriteString("\n")
	if m.feedErr != nil {
		right.WriteString(styles.StatusCritical.Render(m.feedErr.Error()))
		right.WriteString("\n")
	}
	right.WriteString(m.input.View())
	feedPane := feedStyle.Width(m.feedWidth() + 4).Render(right.String())

	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, feedPane)
}

// wrap soft-wraps text to the given width using lipgloss.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
