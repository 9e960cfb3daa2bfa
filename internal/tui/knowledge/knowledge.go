// ABOUTME: Knowledge-base surface: category browser, guide reader, and search
// ABOUTME: Records opened guides in the recently-viewed list and falls back to AI suggestions

package knowledge

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/settings"
	"github.com/jambosec/jambosec-cli/internal/tui/debuglog"
	"github.com/jambosec/jambosec-cli/internal/tui/icons"
	"github.com/jambosec/jambosec-cli/internal/tui/styles"
)

// mode identifies what the surface is showing.
type mode int

const (
	modeBrowse mode = iota
	modeGuides
	modeReader
	modeSearch
)

const searchResultLimit = 5

// categoriesLoadedMsg carries the category listing.
type categoriesLoadedMsg struct {
	categories []api.GuideCategory
	err        error
}

// guidesLoadedMsg carries the guides of the selected category.
type guidesLoadedMsg struct {
	guides []api.Guide
	err    error
}

// guideLoadedMsg carries one full guide body.
type guideLoadedMsg struct {
	detail *api.GuideDetail
	err    error
}

// searchDoneMsg carries search hits, or an AI suggestion when nothing matched.
type searchDoneMsg struct {
	results    []api.SearchResult
	suggestion *api.AISuggestion
	err        error
}

// Model is the knowledge-base surface.
type Model struct {
	client *api.Client
	prefs  *settings.Manager

	mode       mode
	lang       i18n.Lang
	categories []api.GuideCategory
	guides     []api.Guide
	detail     *api.GuideDetail
	results    []api.SearchResult
	suggestion *api.AISuggestion
	loadErr    error

	cursor int
	search textinput.Model
	reader viewport.Model
	width  int
	height int
}

// New creates the knowledge surface.
func New(client *api.Client, prefs *settings.Manager, lang i18n.Lang) *Model {
	si := textinput.New()
	si.Placeholder = i18n.T("knowledge.search", lang)
	si.CharLimit = 200

	return &Model{
		client: client,
		prefs:  prefs,
		lang:   lang,
		search: si,
		reader: viewport.New(0, 0),
	}
}

// SetLang updates the display language and reloads localized content.
func (m *Model) SetLang(lang i18n.Lang) tea.Cmd {
	m.lang = lang
	m.search.Placeholder = i18n.T("knowledge.search", lang)

	// Localized content is stale in the other language.
	switch m.mode {
	case modeReader:
		if m.detail != nil {
			return m.loadGuide(m.detail.Slug)
		}
	case modeGuides:
		if len(m.guides) > 0 && m.guides[0].Category != nil {
			return m.loadGuides(m.guides[0].Category.Slug)
		}
	}
	return m.loadCategories()
}

// SetSize resizes the surface.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.reader.Width = width - 8
	m.reader.Height = height - 6
	if m.reader.Height < 3 {
		m.reader.Height = 3
	}
	m.search.Width = width - 12
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadCategories()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case categoriesLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.categories = msg.categories
		} else {
			debuglog.Error("knowledge.categories", msg.err)
		}
		return m, nil

	case guidesLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.guides = msg.guides
			m.mode = modeGuides
			m.cursor = 0
		} else {
			debuglog.Error("knowledge.guides", msg.err)
		}
		return m, nil

	case guideLoadedMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.detail = msg.detail
			m.mode = modeReader
			m.reader.SetContent(m.renderGuide(msg.detail))
			m.reader.GotoTop()
			if err := m.prefs.AddRecentGuide(msg.detail.Slug, msg.detail.Title); err != nil {
				debuglog.Error("knowledge.recent", err)
			}
		} else {
			debuglog.Error("knowledge.guide", msg.err)
		}
		return m, nil

	case searchDoneMsg:
		m.loadErr = msg.err
		if msg.err == nil {
			m.results = msg.results
			m.suggestion = msg.suggestion
			m.cursor = 0
		} else {
			debuglog.Error("knowledge.search", msg.err)
		}
		return m, nil
	}

	if m.mode == modeReader {
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeSearch && m.search.Focused() {
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.search.Value())
			if query == "" {
				return m, nil
			}
			m.search.Blur()
			return m, m.runSearch(query)
		case "esc":
			m.search.Blur()
			m.mode = modeBrowse
			m.cursor = 0
			return m, nil
		}
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "/":
		m.mode = modeSearch
		m.results = nil
		m.suggestion = nil
		m.search.SetValue("")
		return m, m.search.Focus()

	case "esc", "b":
		switch m.mode {
		case modeReader:
			m.mode = modeGuides
		case modeGuides, modeSearch:
			m.mode = modeBrowse
			m.cursor = 0
		}
		return m, nil

	case "up", "k", "down", "j":
		if m.mode == modeReader {
			var cmd tea.Cmd
			m.reader, cmd = m.reader.Update(msg)
			return m, cmd
		}
		if msg.String() == "up" || msg.String() == "k" {
			if m.cursor > 0 {
				m.cursor--
			}
		} else if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		return m, m.openSelected()

	case "r":
		if m.mode == modeBrowse {
			return m, m.loadCategories()
		}
		return m, nil
	}

	if m.mode == modeReader {
		var cmd tea.Cmd
		m.reader, cmd = m.reader.Update(msg)
		return m, cmd
	}
	return m, nil
}

// listLen returns the number of selectable rows for the current mode.
func (m *Model) listLen() int {
	switch m.mode {
	case modeBrowse:
		return len(m.categories) + len(m.prefs.RecentGuides())
	case modeGuides:
		return len(m.guides)
	case modeSearch:
		return len(m.results)
	}
	return 0
}

// openSelected activates the row under the cursor.
func (m *Model) openSelected() tea.Cmd {
	switch m.mode {
	case modeBrowse:
		recent := m.prefs.RecentGuides()
		if m.cursor < len(recent) {
			return m.loadGuide(recent[m.cursor].Slug)
		}
		idx := m.cursor - len(recent)
		if idx < len(m.categories) {
			return m.loadGuides(m.categories[idx].Slug)
		}
	case modeGuides:
		if m.cursor < len(m.guides) {
			return m.loadGuide(m.guides[m.cursor].Slug)
		}
	case modeSearch:
		if m.cursor < len(m.results) {
			return m.loadGuide(m.results[m.cursor].DocumentSlug)
		}
	}
	return nil
}

// Commands

func (m *Model) loadCategories() tea.Cmd {
	lang := string(m.lang)
	return func() tea.Msg {
		categories, err := m.client.Categories(context.Background(), lang)
		return categoriesLoadedMsg{categories: categories, err: err}
	}
}

func (m *Model) loadGuides(categorySlug string) tea.Cmd {
	lang := string(m.lang)
	return func() tea.Msg {
		guides, err := m.client.Guides(context.Background(), api.GuideQuery{Category: categorySlug, Lang: lang})
		return guidesLoadedMsg{guides: guides, err: err}
	}
}

func (m *Model) loadGuide(slug string) tea.Cmd {
	lang := string(m.lang)
	return func() tea.Msg {
		detail, err := m.client.Guide(context.Background(), slug, lang)
		return guideLoadedMsg{detail: detail, err: err}
	}
}

// runSearch queries the knowledge base, falling back to an AI suggestion when
// no result scores high enough.
func (m *Model) runSearch(query string) tea.Cmd {
	lang := string(m.lang)
	client := m.client
	return func() tea.Msg {
		results, err := client.Search(context.Background(), query, searchResultLimit, lang)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		if len(results) > 0 {
			return searchDoneMsg{results: results}
		}

		suggestion, err := client.Suggest(context.Background(), query, nil, lang)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		return searchDoneMsg{suggestion: suggestion}
	}
}

// Rendering

func (m *Model) renderGuide(detail *api.GuideDetail) string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(detail.Title))
	sb.WriteString("\n")
	if len(detail.Tags) > 0 {
		sb.WriteString(styles.SourceNote.Render(strings.Join(detail.Tags, " · ")))
		sb.WriteString("\n\n")
	}
	sb.WriteString(lipgloss.NewStyle().Width(m.reader.Width).Render(detail.Body))
	return sb.String()
}

func (m *Model) viewBrowse() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Knowledge.String() + " " + i18n.T("nav.knowledge", m.lang)))
	sb.WriteString("\n")

	row := 0
	recent := m.prefs.RecentGuides()
	if len(recent) > 0 {
		sb.WriteString(styles.Subtitle.Render(i18n.T("knowledge.recent", m.lang)))
		sb.WriteString("\n")
		for _, g := range recent {
			sb.WriteString(m.listRow(row, g.Title))
			row++
		}
		sb.WriteString("\n")
	}

	for _, c := range m.categories {
		label := c.Title
		if c.Icon != "" {
			label = c.Icon + " " + label
		}
		sb.WriteString(m.listRow(row, label))
		row++
	}

	return sb.String()
}

func (m *Model) viewGuides() string {
	var sb strings.Builder
	title := i18n.T("nav.knowledge", m.lang)
	if len(m.guides) > 0 && m.guides[0].Category != nil {
		title = m.guides[0].Category.Title
	}
	sb.WriteString(styles.Title.Render(icons.Knowledge.String() + " " + title))
	sb.WriteString("\n")

	for i, g := range m.guides {
		sb.WriteString(m.listRow(i, g.Title))
		if i == m.cursor && g.Snippet != "" {
			sb.WriteString(styles.SourceNote.Render("    " + g.Snippet))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m *Model) viewSearch() string {
	var sb strings.Builder
	sb.WriteString(styles.Title.Render(icons.Search.String() + " " + i18n.T("nav.knowledge", m.lang)))
	sb.WriteString("\n")
	sb.WriteString(m.search.View())
	sb.WriteString("\n\n")

	for i, r := range m.results {
		sb.WriteString(m.listRow(i, r.DocumentTitle))
		if i == m.cursor {
			sb.WriteString(styles.SourceNote.Render("    " + r.Text))
			sb.WriteString("\n")
		}
	}

	if m.suggestion != nil {
		sb.WriteString(styles.AssistantLabel.Render(m.suggestion.Title))
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().Width(m.width - 8).Render(m.suggestion.Content))
		sb.WriteString("\n")
	}

	return sb.String()
}

func (m *Model) listRow(index int, label string) string {
	if index == m.cursor {
		return styles.SelectedItem.Render("> "+label) + "\n"
	}
	return styles.NormalItem.Render("  "+label) + "\n"
}

// View implements tea.Model
func (m *Model) View() string {
	var content string
	switch m.mode {
	case modeBrowse:
		content = m.viewBrowse()
	case modeGuides:
		content = m.viewGuides()
	case modeReader:
		content = m.reader.View()
	case modeSearch:
		content = m.viewSearch()
	}

	if m.loadErr != nil {
		content += "\n" + styles.StatusCritical.Render(m.loadErr.Error())
	}

	width := m.width - 4
	if width < 40 {
		width = 40
	}
	return styles.ActivePanel.Width(width).Render(content)
}
