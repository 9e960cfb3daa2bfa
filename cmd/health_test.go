// ABOUTME: Tests for the health command
// ABOUTME: Verifies health check output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jambosec/jambosec-cli/internal/api"
)

func TestFormatHealthHuman(t *testing.T) {
	resp := &api.HealthResponse{
		Status:  "ok",
		Version: "1.4.2",
	}

	output := formatHealthHuman("http://localhost:8000", resp)

	if !bytes.Contains([]byte(output), []byte("http://localhost:8000")) {
		t.Error("expected output to contain backend URL")
	}
	if !bytes.Contains([]byte(output), []byte("ok")) {
		t.Error("expected output to contain ok status")
	}
	if !bytes.Contains([]byte(output), []byte("1.4.2")) {
		t.Error("expected output to contain version")
	}
}

func TestFormatHealthJSON(t *testing.T) {
	resp := &api.HealthResponse{
		Status: "ok",
	}

	output := formatHealthJSON("http://localhost:8000", resp)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8000" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["status"] != "ok" {
		t.Errorf("expected ok status in JSON, got %v", parsed["status"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.HealthResponse{Status: "ok"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ok")) {
		t.Error("expected ok in output")
	}
}

func TestHealthCommand_Degraded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(api.HealthResponse{Status: "degraded"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 1 {
		t.Errorf("expected exit code 1 for degraded backend, got %d", exitCode)
	}
}

func TestHealthCommand_ConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Nothing listening anymore

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Error:")) {
		t.Error("expected error message in output")
	}
}
