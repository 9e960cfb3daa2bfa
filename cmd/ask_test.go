// ABOUTME: Tests for the ask command
// ABOUTME: Verifies exit codes, session continuation, and output formatting

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jambosec/jambosec-cli/internal/api"
)

// withTestStores points the token store and settings at temp dirs so the
// command helpers never touch the real user config.
func withTestStores(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_RUNTIME_DIR", filepath.Join(dir, "runtime"))
	if err := os.MkdirAll(filepath.Join(dir, "runtime"), 0o700); err != nil {
		t.Fatal(err)
	}
}

func TestAskCommand_Success(t *testing.T) {
	withTestStores(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/ask/" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var payload api.AskPayload
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.Message != "what is phishing" {
			t.Errorf("unexpected message %q", payload.Message)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AskResponse{
			SessionID: "sess-42",
			Reply:     "Phishing is a social engineering attack.",
			Lang:      "en",
			Sources:   []api.ChatSource{{Title: "Phishing basics", URL: "https://example.com"}},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runAsk(context.Background(), &buf, "what is phishing")

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("social engineering")) {
		t.Error("expected reply in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("Phishing basics")) {
		t.Error("expected source title in output")
	}
	if !bytes.Contains(buf.Bytes(), []byte("sess-42")) {
		t.Error("expected session ID in output")
	}
}

func TestAskCommand_ContinuesSession(t *testing.T) {
	withTestStores(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload api.AskPayload
		json.NewDecoder(r.Body).Decode(&payload)
		if payload.SessionID != "sess-42" {
			t.Errorf("expected session continuation, got %q", payload.SessionID)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AskResponse{SessionID: "sess-42", Reply: "Sawa."})
	}))
	defer server.Close()

	apiURL = server.URL
	askSessionID = "sess-42"
	defer func() {
		apiURL = ""
		askSessionID = ""
	}()

	var buf bytes.Buffer
	if exitCode := runAsk(context.Background(), &buf, "asante"); exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
}

func TestAskCommand_Unauthenticated(t *testing.T) {
	withTestStores(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Authentication credentials were not provided."})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runAsk(context.Background(), &buf, "hello")

	if exitCode != 1 {
		t.Errorf("expected exit code 1 when not signed in, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("login")) {
		t.Error("expected login hint in output")
	}
}

func TestAskCommand_BlockedReply(t *testing.T) {
	withTestStores(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.AskResponse{
			SessionID: "sess-1",
			Reply:     "I can't help with that.",
			Safety:    api.AskSafety{Blocked: true, Reason: "harmful"},
		})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	if exitCode := runAsk(context.Background(), &buf, "bad question"); exitCode != 1 {
		t.Errorf("expected exit code 1 for blocked reply, got %d", exitCode)
	}
}

func TestAskCommand_EmptyQuestion(t *testing.T) {
	withTestStores(t)

	var buf bytes.Buffer
	if exitCode := runAsk(context.Background(), &buf, "   "); exitCode != 2 {
		t.Errorf("expected exit code 2 for empty question, got %d", exitCode)
	}
}
