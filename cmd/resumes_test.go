// ABOUTME: Tests for list, show, generate, update, and delete commands
// ABOUTME: Runs each command against a fake backend and checks output and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/markalston/resume-builder/internal/resume"
)

func TestRunList_Human(t *testing.T) {
	backend := newFakeBackend()
	backend.add(1, "Backend", "Backend Engineer")
	backend.add(2, "Platform", "SRE")
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runList(context.Background(), e, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	out := buf.String()
	for _, want := range []string{"TITLE", "Backend Engineer", "Platform", "SRE"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestRunList_JSON(t *testing.T) {
	backend := newFakeBackend()
	backend.add(1, "Backend", "Backend Engineer")
	e := testEnv(t, backend, "tok")
	withJSONOutput(t)

	var buf bytes.Buffer
	if code := runList(context.Background(), e, &buf); code != exitOK {
		t.Fatalf("expected exit 0, got %d", code)
	}

	var list []resume.Resume
	if err := json.Unmarshal(buf.Bytes(), &list); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if len(list) != 1 || list[0].TargetRole != "Backend Engineer" {
		t.Errorf("unexpected list: %+v", list)
	}
	if list[0].Projects[0].RepoName != "repo-Backend" {
		t.Errorf("expected normalized project, got %+v", list[0].Projects[0])
	}
}

func TestRunList_Empty(t *testing.T) {
	e := testEnv(t, newFakeBackend(), "tok")

	var buf bytes.Buffer
	runList(context.Background(), e, &buf)

	if !strings.Contains(buf.String(), "No resumes yet") {
		t.Errorf("expected empty message, got: %s", buf.String())
	}
}

func TestRunList_NotSignedIn(t *testing.T) {
	backend := newFakeBackend()
	e := testEnv(t, backend, "")

	var buf bytes.Buffer
	if code := runList(context.Background(), e, &buf); code != exitUsage {
		t.Errorf("expected exit 1, got %d", code)
	}
	if backend.count("GET /resumes") != 0 {
		t.Error("expected no request without a session")
	}
	if !strings.Contains(buf.String(), "not signed in") {
		t.Errorf("expected sign-in hint, got: %s", buf.String())
	}
}

func TestRunList_BackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.fail["GET /resumes"] = http.StatusInternalServerError
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runList(context.Background(), e, &buf); code != exitBackend {
		t.Errorf("expected exit 2, got %d", code)
	}
}

func TestRunShow_Markdown(t *testing.T) {
	backend := newFakeBackend()
	backend.add(5, "Backend", "Backend Engineer")
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runShow(context.Background(), e, &buf, "5"); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	out := buf.String()
	if !strings.Contains(out, "# Backend") || !strings.Contains(out, "repo-Backend") {
		t.Errorf("expected markdown résumé, got:\n%s", out)
	}
}

func TestRunShow_NotFound(t *testing.T) {
	e := testEnv(t, newFakeBackend(), "tok")

	var buf bytes.Buffer
	if code := runShow(context.Background(), e, &buf, "99"); code != exitUsage {
		t.Errorf("expected exit 1, got %d", code)
	}
	if !strings.Contains(buf.String(), "resume 99 not found") {
		t.Errorf("expected not found message, got: %s", buf.String())
	}
}

func TestRunShow_InvalidID(t *testing.T) {
	backend := newFakeBackend()
	e := testEnv(t, backend, "tok")

	for _, arg := range []string{"abc", "0", "-3"} {
		var buf bytes.Buffer
		if code := runShow(context.Background(), e, &buf, arg); code != exitUsage {
			t.Errorf("%q: expected exit 1, got %d", arg, code)
		}
	}
}

func TestRunGenerate(t *testing.T) {
	backend := newFakeBackend()
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runGenerate(context.Background(), e, &buf, "  Data Engineer "); code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	if backend.count("POST /resumes/generate") != 1 {
		t.Errorf("expected exactly one generate call, got %d", backend.count("POST /resumes/generate"))
	}
	if body := backend.body("POST /resumes/generate"); !strings.Contains(body, `"target_role":"Data Engineer"`) {
		t.Errorf("expected trimmed target_role in body, got %s", body)
	}
	if !strings.Contains(buf.String(), "Generated resume #1") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestRunGenerate_BlankRole(t *testing.T) {
	backend := newFakeBackend()
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runGenerate(context.Background(), e, &buf, "   "); code != exitUsage {
		t.Errorf("expected exit 1, got %d", code)
	}
	if backend.count("POST /resumes/generate") != 0 {
		t.Error("expected no request for a blank role")
	}
}

func TestRunUpdate_MergesCurrentFields(t *testing.T) {
	backend := newFakeBackend()
	backend.add(3, "Old", "Backend Engineer")
	e := testEnv(t, backend, "tok")

	title := "New Title"
	var buf bytes.Buffer
	code := runUpdate(context.Background(), e, &buf, "3", resume.UpdateRequest{Title: &title})
	if code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(backend.body("PUT /resumes/3")), &sent); err != nil {
		t.Fatalf("invalid PUT body: %v", err)
	}
	if sent["Title"] != "New Title" {
		t.Errorf("expected new title, got %v", sent["Title"])
	}
	if sent["TargetRole"] != "Backend Engineer" {
		t.Errorf("expected unchanged role to be sent, got %v", sent["TargetRole"])
	}
	if _, ok := sent["Projects"]; !ok {
		t.Error("expected current projects to be sent")
	}
	if !strings.Contains(buf.String(), "Updated resume #3: New Title") {
		t.Errorf("expected confirmation, got: %s", buf.String())
	}
}

func TestRunUpdate_NothingToUpdate(t *testing.T) {
	backend := newFakeBackend()
	backend.add(3, "Old", "Backend Engineer")
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	if code := runUpdate(context.Background(), e, &buf, "3", resume.UpdateRequest{}); code != exitUsage {
		t.Errorf("expected exit 1, got %d", code)
	}
	if backend.count("GET /resumes/3") != 0 || backend.count("PUT /resumes/3") != 0 {
		t.Error("expected no requests for an empty update")
	}
}

func TestRunDelete_Confirmed(t *testing.T) {
	backend := newFakeBackend()
	backend.add(4, "Doomed", "QA")
	e := testEnv(t, backend, "tok")

	var asked int64
	var buf bytes.Buffer
	code := runDelete(context.Background(), e, &buf, "4", func(id int64) (bool, error) {
		asked = id
		return true, nil
	})

	if code != exitOK {
		t.Fatalf("expected exit 0, got %d: %s", code, buf.String())
	}
	if asked != 4 {
		t.Errorf("expected confirmation for #4, got #%d", asked)
	}
	if backend.count("DELETE /resumes/4") != 1 {
		t.Errorf("expected exactly one delete, got %d", backend.count("DELETE /resumes/4"))
	}
}

func TestRunDelete_Declined(t *testing.T) {
	backend := newFakeBackend()
	backend.add(4, "Kept", "QA")
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	code := runDelete(context.Background(), e, &buf, "4", func(int64) (bool, error) { return false, nil })

	if code != exitOK {
		t.Errorf("expected exit 0, got %d", code)
	}
	if backend.count("DELETE /resumes/4") != 0 {
		t.Error("expected no delete when declined")
	}
	if !strings.Contains(buf.String(), "Cancelled.") {
		t.Errorf("expected cancellation message, got: %s", buf.String())
	}
}

func TestRunDelete_BackendError(t *testing.T) {
	backend := newFakeBackend()
	backend.add(4, "Stuck", "QA")
	backend.fail["DELETE /resumes/4"] = http.StatusInternalServerError
	e := testEnv(t, backend, "tok")

	var buf bytes.Buffer
	code := runDelete(context.Background(), e, &buf, "4", func(int64) (bool, error) { return true, nil })
	if code != exitBackend {
		t.Errorf("expected exit 2, got %d", code)
	}
}
