// ABOUTME: Durable client-owned state: locale, anonymous session, recent guides
// ABOUTME: Stored as JSON blobs in the XDG config directory

package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"
)

const (
	settingsFileName  = "settings.json"
	anonymousFileName = "anonymous-session.json"
	recentFileName    = "recent-guides.json"
)

// MaxRecentGuides is the maximum number of recently viewed guides to keep.
const MaxRecentGuides = 5

// DefaultLang is used when no locale preference has been persisted.
const DefaultLang = "en"

// Settings is the persisted UI preference blob.
type Settings struct {
	Locale string `json:"locale"`
}

// AnonymousSession is a durable client-local identifier created before any
// account exists. It is never sent as a credential.
type AnonymousSession struct {
	SessionID string `json:"sessionId"`
	CreatedAt string `json:"createdAt"`
}

// RecentGuide is one entry in the recently viewed list.
type RecentGuide struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	ViewedAt string `json:"viewedAt"`
}

// Manager reads and writes the client-owned blobs under a config directory.
type Manager struct {
	configDir string
}

// New creates a Manager over the given config directory.
func New(configDir string) *Manager {
	return &Manager{configDir: configDir}
}

// DefaultConfigDir returns the config directory following XDG spec.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jambosec")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jambosec")
}

// Locale returns the persisted language preference, defaulting to English.
func (m *Manager) Locale() string {
	var s Settings
	if err := m.readJSON(settingsFileName, &s); err != nil || s.Locale == "" {
		return DefaultLang
	}
	return s.Locale
}

// SetLocale persists the language preference.
func (m *Manager) SetLocale(lang string) error {
	return m.writeJSON(settingsFileName, Settings{Locale: lang})
}

// EnsureAnonymousSession returns the stored anonymous session, creating and
// persisting one when none exists or the stored blob is corrupt.
func (m *Manager) EnsureAnonymousSession() AnonymousSession {
	var session AnonymousSession
	if err := m.readJSON(anonymousFileName, &session); err == nil && session.SessionID != "" {
		return session
	}

	session = AnonymousSession{
		SessionID: uuid.NewString(),
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	// Best effort: an unwritable config dir falls back to a per-process id
	_ = m.writeJSON(anonymousFileName, session)
	return session
}

// RecentGuides returns the recently viewed guides, most recent first.
func (m *Manager) RecentGuides() []RecentGuide {
	var guides []RecentGuide
	if err := m.readJSON(recentFileName, &guides); err != nil {
		return nil
	}

	sort.SliceStable(guides, func(i, j int) bool {
		return guides[i].ViewedAt > guides[j].ViewedAt
	})
	return guides
}

// AddRecentGuide records a guide view, deduplicating by slug and keeping at
// most MaxRecentGuides entries.
func (m *Manager) AddRecentGuide(slug, title string) error {
	guides := m.RecentGuides()

	updated := make([]RecentGuide, 0, len(guides)+1)
	updated = append(updated, RecentGuide{
		Slug:     slug,
		Title:    title,
		ViewedAt: time.Now().UTC().Format(time.RFC3339Nano),
	})
	for _, g := range guides {
		if g.Slug != slug {
			updated = append(updated, g)
		}
	}
	if len(updated) > MaxRecentGuides {
		updated = updated[:MaxRecentGuides]
	}

	return m.writeJSON(recentFileName, updated)
}

// ClearRecentGuides empties the recently viewed list.
func (m *Manager) ClearRecentGuides() {
	os.Remove(filepath.Join(m.configDir, recentFileName))
}

func (m *Manager) readJSON(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(m.configDir, name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func (m *Manager) writeJSON(name string, value any) error {
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(m.configDir, name), data, 0600)
}
