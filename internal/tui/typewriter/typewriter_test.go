// ABOUTME: Tests for the typewriter reveal component
// ABOUTME: Covers tick advancement, cancellation, and stale tick rejection

package typewriter

import (
	"testing"
)

func TestRevealAdvancesOneRunePerTick(t *testing.T) {
	m := New()
	cmd := m.Start("habari")
	if cmd == nil {
		t.Fatal("Start returned nil cmd for non-empty text")
	}
	if m.View() != "" {
		t.Fatalf("expected nothing visible before first tick, got %q", m.View())
	}

	m.Update(TickMsg{Generation: m.generation})
	if m.View() != "h" {
		t.Errorf("after one tick View() = %q, want %q", m.View(), "h")
	}
	m.Update(TickMsg{Generation: m.generation})
	if m.View() != "ha" {
		t.Errorf("after two ticks View() = %q, want %q", m.View(), "ha")
	}
}

func TestRevealCompletes(t *testing.T) {
	m := New()
	m.Start("jambo")
	for i := 0; i < 5; i++ {
		m.Update(TickMsg{Generation: m.generation})
	}
	if m.Active() {
		t.Error("typewriter still active after revealing all runes")
	}
	if m.View() != "jambo" {
		t.Errorf("View() = %q, want full text", m.View())
	}
}

func TestCancelShowsFullText(t *testing.T) {
	m := New()
	m.Start("usalama wa mtandao")
	m.Update(TickMsg{Generation: m.generation})
	m.Cancel()

	if m.Active() {
		t.Error("typewriter active after Cancel")
	}
	if m.View() != "usalama wa mtandao" {
		t.Errorf("View() = %q, want full text after Cancel", m.View())
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	m := New()
	m.Start("first")
	oldGen := m.generation
	m.Update(TickMsg{Generation: oldGen})

	m.Start("second")
	if cmd := m.Update(TickMsg{Generation: oldGen}); cmd != nil {
		t.Error("stale tick produced a command")
	}
	if m.View() != "" {
		t.Errorf("stale tick advanced new reveal: View() = %q", m.View())
	}

	m.Update(TickMsg{Generation: m.generation})
	if m.View() != "s" {
		t.Errorf("View() = %q, want %q", m.View(), "s")
	}
}

func TestStartEmptyTextIsIdle(t *testing.T) {
	m := New()
	if cmd := m.Start(""); cmd != nil {
		t.Error("Start with empty text returned a command")
	}
	if m.Active() {
		t.Error("typewriter active with empty text")
	}
}

func TestUnicodeRevealedWholeRunes(t *testing.T) {
	m := New()
	m.Start("über")
	m.Update(TickMsg{Generation: m.generation})
	if m.View() != "ü" {
		t.Errorf("View() = %q, want whole rune %q", m.View(), "ü")
	}
}
