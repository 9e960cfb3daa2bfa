// ABOUTME: Tests for persisted client settings
// ABOUTME: Validates locale round-trip, anonymous session stability, and the recent guides cap

package settings

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLocaleDefaultsToEnglish(t *testing.T) {
	m := New(t.TempDir())

	if lang := m.Locale(); lang != "en" {
		t.Errorf("expected default en, got %s", lang)
	}
}

func TestLocaleRoundTrip(t *testing.T) {
	m := New(t.TempDir())

	if err := m.SetLocale("sw"); err != nil {
		t.Fatalf("SetLocale() error: %v", err)
	}
	if lang := m.Locale(); lang != "sw" {
		t.Errorf("expected sw, got %s", lang)
	}
}

func TestLocaleCorruptFileFallsBack(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, settingsFileName), []byte("{bad"), 0600)

	m := New(dir)
	if lang := m.Locale(); lang != "en" {
		t.Errorf("expected fallback en, got %s", lang)
	}
}

func TestAnonymousSessionIsStable(t *testing.T) {
	m := New(t.TempDir())

	first := m.EnsureAnonymousSession()
	if first.SessionID == "" {
		t.Fatal("expected generated session id")
	}

	second := m.EnsureAnonymousSession()
	if second.SessionID != first.SessionID {
		t.Errorf("expected stable session id, got %s then %s", first.SessionID, second.SessionID)
	}
}

func TestRecentGuidesMoveToFront(t *testing.T) {
	m := New(t.TempDir())

	m.AddRecentGuide("phishing", "Phishing basics")
	m.AddRecentGuide("passwords", "Strong passwords")
	m.AddRecentGuide("phishing", "Phishing basics")

	guides := m.RecentGuides()
	if len(guides) != 2 {
		t.Fatalf("expected 2 guides after dedupe, got %d", len(guides))
	}
	if guides[0].Slug != "phishing" {
		t.Errorf("expected phishing first, got %s", guides[0].Slug)
	}
}

func TestRecentGuidesCappedAtFive(t *testing.T) {
	m := New(t.TempDir())

	slugs := []string{"a", "b", "c", "d", "e", "f", "g"}
	for _, slug := range slugs {
		m.AddRecentGuide(slug, "Guide "+slug)
	}

	guides := m.RecentGuides()
	if len(guides) != MaxRecentGuides {
		t.Fatalf("expected %d guides, got %d", MaxRecentGuides, len(guides))
	}
	if guides[0].Slug != "g" {
		t.Errorf("expected most recent first, got %s", guides[0].Slug)
	}
	for _, g := range guides {
		if g.Slug == "a" || g.Slug == "b" {
			t.Errorf("expected oldest entries evicted, found %s", g.Slug)
		}
	}
}

func TestClearRecentGuides(t *testing.T) {
	m := New(t.TempDir())

	m.AddRecentGuide("a", "A")
	m.ClearRecentGuides()

	if guides := m.RecentGuides(); len(guides) != 0 {
		t.Errorf("expected empty list after clear, got %d", len(guides))
	}
}
