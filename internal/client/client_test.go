// ABOUTME: Tests for the résumé service API client
// ABOUTME: Uses httptest to verify bearer injection and error propagation

package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

type staticTokens struct {
	token string
}

func (s *staticTokens) Token() (string, bool) {
	if s.token == "" {
		return "", false
	}
	return s.token, true
}

func TestDo_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"ok": "yes"})
	}))
	defer server.Close()

	c := New(server.URL, &staticTokens{token: "abc123"})
	var out map[string]string
	if err := c.Do(context.Background(), http.MethodGet, "/resumes", nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("expected X-Request-ID header")
	}
	if out["ok"] != "yes" {
		t.Errorf("expected decoded body, got %v", out)
	}
}

func TestDo_ReadsTokenOnEveryRequest(t *testing.T) {
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	tokens := &staticTokens{}
	c := New(server.URL, tokens)

	c.Do(context.Background(), http.MethodGet, "/resumes", nil, nil)
	tokens.token = "later"
	c.Do(context.Background(), http.MethodGet, "/resumes", nil, nil)
	tokens.token = ""
	c.Do(context.Background(), http.MethodGet, "/resumes", nil, nil)

	want := []string{"", "Bearer later", ""}
	if len(seen) != len(want) {
		t.Fatalf("expected %d requests, got %d", len(want), len(seen))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("request %d: expected %q, got %q", i, want[i], seen[i])
		}
	}
}

func TestDo_NilTokenSourceSendsNoCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Errorf("expected no Authorization header, got %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	if err := New(server.URL, nil).Do(context.Background(), http.MethodDelete, "/resumes/1", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDo_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["target_role"] != "Backend Engineer" {
			t.Errorf("unexpected body %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int{"ID": 7})
	}))
	defer server.Close()

	var out map[string]int
	err := New(server.URL, nil).Do(context.Background(), http.MethodPost, "/resumes/generate",
		map[string]string{"target_role": "Backend Engineer"}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out["ID"] != 7 {
		t.Errorf("expected ID 7, got %v", out)
	}
}

func TestDo_NonOKStatusReturnsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "resume not found"})
	}))
	defer server.Close()

	err := New(server.URL, nil).Do(context.Background(), http.MethodGet, "/resumes/9", nil, nil)
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "resume not found" {
		t.Errorf("expected message from body, got %q", apiErr.Message)
	}
	if StatusCode(err) != http.StatusNotFound {
		t.Errorf("StatusCode helper returned %d", StatusCode(err))
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	err := New(server.URL, nil).Do(context.Background(), http.MethodGet, "/resumes", nil, nil)
	if StatusCode(err) != http.StatusBadGateway {
		t.Fatalf("expected 502 APIError, got %v", err)
	}
	if err.Error() != "backend returned status 502" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestDo_NoRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	New(server.URL, nil).Do(context.Background(), http.MethodGet, "/resumes", nil, nil)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("expected exactly one attempt, got %d", got)
	}
}

func TestDo_ConnectionError(t *testing.T) {
	err := New("http://localhost:99999", nil).Do(context.Background(), http.MethodGet, "/resumes", nil, nil)
	if err == nil {
		t.Error("expected connection error, got nil")
	}
	if StatusCode(err) != 0 {
		t.Error("connection errors must not look like API errors")
	}
}

func TestDo_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(server.URL, nil).Do(ctx, http.MethodGet, "/resumes", nil, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped context.Canceled, got %v", err)
	}
}

func TestDo_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := New(server.URL, nil).Do(ctx, http.MethodGet, "/resumes", nil, nil)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected wrapped DeadlineExceeded, got %v", err)
	}
}

func TestDo_InvalidJSONResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{broken"))
	}))
	defer server.Close()

	var out map[string]any
	if err := New(server.URL, nil).Do(context.Background(), http.MethodGet, "/resumes", nil, &out); err == nil {
		t.Error("expected decode error, got nil")
	}
}

func TestLoginURL(t *testing.T) {
	c := New("https://api.example.com/", nil)
	if got := c.LoginURL(); got != "https://api.example.com/auth/login" {
		t.Errorf("unexpected login URL %s", got)
	}
}

type recordingTransport struct {
	calls int
}

func (r *recordingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r.calls++
	rec := httptest.NewRecorder()
	rec.WriteHeader(http.StatusNoContent)
	return rec.Result(), nil
}

func TestWithBaseTransport(t *testing.T) {
	rt := &recordingTransport{}
	c := New("http://example.invalid", &staticTokens{token: "x"}, WithBaseTransport(rt))
	if err := c.Do(context.Background(), http.MethodGet, "/resumes", nil, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rt.calls != 1 {
		t.Errorf("expected custom transport to be used once, got %d", rt.calls)
	}
}

func TestHealth(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected /health, got %s", r.URL.Path)
		}
		w.Write([]byte("OK"))
	}))
	defer server.Close()

	if err := New(server.URL, nil).Health(context.Background()); err != nil {
		t.Fatalf("expected healthy backend, got %v", err)
	}
}

func TestHealth_Unhealthy(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	err := New(server.URL, nil).Health(context.Background())
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Errorf("expected 503 APIError, got %v", err)
	}
}
