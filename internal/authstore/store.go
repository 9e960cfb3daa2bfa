// ABOUTME: Persists the access/refresh token pair across CLI invocations
// ABOUTME: Durable tier in XDG config dir, session tier in the runtime dir

package authstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

const authFileName = "auth.json"

// TokenPair holds the opaque bearer credentials issued by the backend.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// StoredAuth is the persisted unit: tokens plus the remember choice that
// selected the persistence tier.
type StoredAuth struct {
	Tokens   TokenPair `json:"tokens"`
	Remember bool      `json:"remember"`
}

// Store manages credential persistence across two tiers. With remember=true
// tokens go to the durable config dir and survive reboots; otherwise they go
// to the runtime dir, which the OS clears at session end. Exactly one tier
// holds live credentials at a time.
type Store struct {
	mu         sync.Mutex
	durableDir string
	sessionDir string
	cached     *StoredAuth
}

// New creates a Store over the given tier directories.
func New(durableDir, sessionDir string) *Store {
	return &Store{
		durableDir: durableDir,
		sessionDir: sessionDir,
	}
}

// DefaultDurableDir returns the durable tier directory following XDG spec.
func DefaultDurableDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "jambosec")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jambosec")
}

// DefaultSessionDir returns the session-scoped tier directory. XDG_RUNTIME_DIR
// is wiped on logout/reboot; the temp-dir fallback is cleared on reboot.
func DefaultSessionDir() string {
	if runtime := os.Getenv("XDG_RUNTIME_DIR"); runtime != "" {
		return filepath.Join(runtime, "jambosec")
	}
	return filepath.Join(os.TempDir(), "jambosec-session")
}

// Get returns the stored credentials, preferring the in-memory cache, then
// the session tier, then the durable tier. A corrupt file is deleted from its
// tier and treated as absent. Returns nil when nothing is stored.
func (s *Store) Get() *StoredAuth {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return s.cached
	}

	if auth := readTier(s.sessionDir); auth != nil {
		s.cached = auth
		return auth
	}

	if auth := readTier(s.durableDir); auth != nil {
		s.cached = auth
		return auth
	}

	return nil
}

// Set persists the tokens to the tier selected by remember and clears the
// other tier, so there is never more than one source of truth on disk.
func (s *Store) Set(tokens TokenPair, remember bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, other := s.sessionDir, s.durableDir
	if remember {
		target, other = s.durableDir, s.sessionDir
	}

	value := &StoredAuth{Tokens: tokens, Remember: remember}
	if err := writeTier(target, value); err != nil {
		return err
	}
	clearTier(other)

	s.cached = value
	return nil
}

// Clear empties the in-memory cache and both storage tiers unconditionally.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	clearTier(s.sessionDir)
	clearTier(s.durableDir)
}

func readTier(dir string) *StoredAuth {
	path := filepath.Join(dir, authFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var auth StoredAuth
	if err := json.Unmarshal(data, &auth); err != nil {
		// Corrupt entry, delete it and treat as absent
		os.Remove(path)
		return nil
	}

	return &auth
}

func writeTier(dir string, value *StoredAuth) error {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dir, authFileName), data, 0600)
}

func clearTier(dir string) {
	os.Remove(filepath.Join(dir, authFileName))
}
