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
	"time"
)

func TestFormatHealthHuman(t *testing.T) {
	output := formatHealthHuman("http://localhost:8080", 12*time.Millisecond)

	if !bytes.Contains([]byte(output), []byte("http://localhost:8080")) {
		t.Error("expected output to contain backend URL")
	}
	if !bytes.Contains([]byte(output), []byte("12ms")) {
		t.Error("expected output to contain latency")
	}
}

func TestFormatHealthJSON(t *testing.T) {
	output := formatHealthJSON("http://localhost:8080", 30*time.Millisecond)

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8080" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["latency_ms"] != float64(30) {
		t.Errorf("expected latency_ms 30, got %v", parsed["latency_ms"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("health check must not send a session token")
		}
		w.Write([]byte("OK"))
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

func TestHealthCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:99999"
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
