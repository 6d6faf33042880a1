// ABOUTME: Shared test backend and environment for command tests
// ABOUTME: Serves PascalCase résumé JSON the way the service does and counts requests

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// fakeBackend is an in-memory résumé service
type fakeBackend struct {
	mu      sync.Mutex
	resumes map[int64]map[string]any
	calls   map[string]int
	bodies  map[string]string
	fail    map[string]int // "METHOD /path" -> status to return
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		resumes: map[int64]map[string]any{},
		calls:   map[string]int{},
		bodies:  map[string]string{},
		fail:    map[string]int{},
	}
}

func (b *fakeBackend) add(id int64, title, role string) {
	b.resumes[id] = map[string]any{
		"ID":         id,
		"UserID":     1,
		"Title":      title,
		"TargetRole": role,
		"Summary":    "Summary of " + title,
		"Skills":     []string{"Go"},
		"Projects": []map[string]any{
			{"RepoName": "repo-" + title, "URL": "https://github.com/u/repo", "Stars": 3, "Position": 1},
		},
		"IsDefault": false,
		"CreatedAt": "2025-01-02T03:04:05Z",
		"UpdatedAt": "2025-01-02T03:04:05Z",
	}
}

func (b *fakeBackend) count(key string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[key]
}

func (b *fakeBackend) body(key string) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.bodies[key]
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := r.Method + " " + r.URL.Path
	b.calls[key]++
	body, _ := io.ReadAll(r.Body)
	b.bodies[key] = string(body)

	if status, ok := b.fail[key]; ok {
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{"error": "forced failure", "code": status})
		return
	}

	switch {
	case key == "GET /resumes":
		list := []map[string]any{}
		for id := int64(1); id <= 100; id++ {
			if r, ok := b.resumes[id]; ok {
				list = append(list, r)
			}
		}
		json.NewEncoder(w).Encode(list)

	case key == "POST /resumes/generate":
		var req struct {
			TargetRole string `json:"target_role"`
		}
		json.Unmarshal(body, &req)
		id := int64(len(b.resumes) + 1)
		b.add(id, req.TargetRole+" Resume", req.TargetRole)
		json.NewEncoder(w).Encode(b.resumes[id])

	case strings.HasPrefix(r.URL.Path, "/resumes/"):
		var id int64
		fmt.Sscanf(strings.TrimPrefix(r.URL.Path, "/resumes/"), "%d", &id)
		res, ok := b.resumes[id]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"error": "resume not found", "code": 404})
			return
		}
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode(res)
		case http.MethodPut:
			var patch map[string]any
			json.Unmarshal(body, &patch)
			for k, v := range patch {
				res[k] = v
			}
			json.NewEncoder(w).Encode(res)
		case http.MethodDelete:
			delete(b.resumes, id)
			w.WriteHeader(http.StatusNoContent)
		}

	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

// testEnv points the commands at backend with an isolated config dir.
// A non-empty token signs the session in.
func testEnv(t *testing.T, backend http.Handler, token string) *env {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	t.Setenv("RESUME_CONFIG_DIR", t.TempDir())
	t.Setenv("RESUME_EXPORT_DIR", "")
	apiURL = server.URL
	t.Cleanup(func() { apiURL = "" })

	e := newEnv()
	if token != "" {
		if err := e.store.SetToken(token); err != nil {
			t.Fatalf("SetToken: %v", err)
		}
	}
	return e
}

func withJSONOutput(t *testing.T) {
	t.Helper()
	jsonOutput = true
	t.Cleanup(func() { jsonOutput = false })
}
