// ABOUTME: Character-by-character text reveal for simulated streaming replies
// ABOUTME: Tick-driven bubbletea component with cancellation via generation counter

package typewriter

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultInterval is the delay between revealed characters.
const DefaultInterval = 20 * time.Millisecond

// TickMsg advances the active reveal. The generation field lets a model
// discard ticks from a reveal that has since been cancelled or replaced.
type TickMsg struct {
	Generation int
}

// DoneMsg is emitted once the full text is visible.
type DoneMsg struct {
	Generation int
}

// Model reveals text one rune at a time.
type Model struct {
	Interval time.Duration

	runes      []rune
	shown      int
	generation int
	active     bool
}

// New returns an idle typewriter.
func New() Model {
	return Model{Interval: DefaultInterval}
}

// Start begins revealing text from the first rune, cancelling any reveal
// already in progress.
func (m *Model) Start(text string) tea.Cmd {
	m.generation++
	m.runes = []rune(text)
	m.shown = 0
	m.active = len(m.runes) > 0
	if !m.active {
		return nil
	}
	return m.tick()
}

// Cancel stops the active reveal and shows the full text immediately.
func (m *Model) Cancel() {
	m.generation++
	m.shown = len(m.runes)
	m.active = false
}

// Reset clears the typewriter back to idle.
func (m *Model) Reset() {
	m.generation++
	m.runes = nil
	m.shown = 0
	m.active = false
}

// Update advances the reveal on matching ticks. Stale ticks are dropped.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(TickMsg)
	if !ok || tick.Generation != m.generation || !m.active {
		return nil
	}

	m.shown++
	if m.shown >= len(m.runes) {
		m.shown = len(m.runes)
		m.active = false
		gen := m.generation
		return func() tea.Msg { return DoneMsg{Generation: gen} }
	}
	return m.tick()
}

// Active reports whether a reveal is in progress.
func (m *Model) Active() bool {
	return m.active
}

// View returns the currently visible portion of the text.
func (m *Model) View() string {
	return string(m.runes[:m.shown])
}

func (m *Model) tick() tea.Cmd {
	gen := m.generation
	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return TickMsg{Generation: gen}
	})
}
