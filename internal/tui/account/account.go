// ABOUTME: Account surface showing profile details and usage statistics
// ABOUTME: Emits a logout request message for the root model to act on

package account

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/session"
	"github.com/jambosec/jambosec-cli/internal/tui/debuglog"
	"github.com/jambosec/jambosec-cli/internal/tui/icons"
	"github.com/jambosec/jambosec-cli/internal/tui/styles"
)

// LogoutRequestedMsg asks the root model to end the session.
type LogoutRequestedMsg struct{}

// statsLoadedMsg carries the usage statistics fetch result.
type statsLoadedMsg struct {
	stats *api.UserStats
	err   error
}

// Model is the account surface.
type Model struct {
	client  *api.Client
	control *session.Controller

	lang   i18n.Lang
	stats  *api.UserStats
	err    error
	width  int
	height int
}

// New creates the account surface.
func New(client *api.Client, control *session.Controller, lang i18n.Lang) *Model {
	return &Model{client: client, control: control, lang: lang}
}

// SetLang updates the display language.
func (m *Model) SetLang(lang i18n.Lang) {
	m.lang = lang
}

// SetSize resizes the surface.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadStats()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "r":
			return m, m.loadStats()
		case "o":
			return m, func() tea.Msg { return LogoutRequestedMsg{} }
		}

	case statsLoadedMsg:
		if msg.err != nil {
			debuglog.Error("account.stats", msg.err)
			m.err = msg.err
		} else {
			m.stats = msg.stats
			m.err = nil
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		stats, err := m.client.Stats(context.Background())
		return statsLoadedMsg{stats: stats, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Account.String() + " " + i18n.T("account.title", m.lang)))
	sb.WriteString("\n")

	acct := m.control.Account()
	if acct == nil {
		sb.WriteString(styles.Subtitle.Render("Not signed in"))
		return m.frame(sb.String())
	}

	sb.WriteString(styles.ValueStyle.Render(acct.DisplayName))
	sb.WriteString("\n")
	sb.WriteString(styles.Subtitle.Render(acct.Email))
	sb.WriteString("\n")
	if acct.JoinedAt != "" {
		sb.WriteString(fmt.Sprintf("Member since %s\n", acct.JoinedAt))
	}
	sb.WriteString("\n")

	if m.stats != nil {
		sb.WriteString(styles.Subtitle.Render("Usage"))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  Conversations  %d\n", m.stats.Chat.TotalSessions))
		sb.WriteString(fmt.Sprintf("  Messages       %d\n", m.stats.Chat.TotalMessages))
		sb.WriteString(fmt.Sprintf("  Feedback given %d (%d helpful)\n", m.stats.Feedback.Total, m.stats.Feedback.Helpful))
	} else if m.err != nil {
		sb.WriteString(styles.StatusCritical.Render(m.err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(styles.Help.Render("r refresh  o sign out"))

	return m.frame(sb.String())
}

func (m *Model) frame(content string) string {
	width := m.width - 4
	if width < 40 {
		width = 40
	}
	return styles.ActivePanel.Width(width).Render(content)
}
