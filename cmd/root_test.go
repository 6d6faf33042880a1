// ABOUTME: Tests for the root command and global flag handling
// ABOUTME: Verifies environment variable and flag configuration

package cmd

import (
	"testing"

	"github.com/markalston/resume-builder/internal/config"
)

func TestGetAPIURL_Default(t *testing.T) {
	t.Setenv("RESUME_API_URL", "")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != config.DefaultAPIURL {
		t.Errorf("expected default URL %s, got %s", config.DefaultAPIURL, url)
	}
}

func TestGetAPIURL_FromEnv(t *testing.T) {
	t.Setenv("RESUME_API_URL", "http://backend.example.com")
	apiURL = "" // Reset flag

	url := GetAPIURL()
	if url != "http://backend.example.com" {
		t.Errorf("expected http://backend.example.com, got %s", url)
	}
}

func TestGetAPIURL_FlagOverridesEnv(t *testing.T) {
	t.Setenv("RESUME_API_URL", "http://backend.example.com")
	apiURL = "http://flag-override.example.com/"
	defer func() { apiURL = "" }()

	url := GetAPIURL()
	if url != "http://flag-override.example.com" {
		t.Errorf("expected flag to override env, got %s", url)
	}
}

func TestJSONOutput(t *testing.T) {
	jsonOutput = true
	defer func() { jsonOutput = false }()

	if !IsJSONOutput() {
		t.Error("expected IsJSONOutput to return true")
	}
}

func TestShowErrorsFlag(t *testing.T) {
	t.Setenv("RESUME_SHOW_ERRORS", "")
	showErrors = true
	defer func() { showErrors = false }()

	if !loadConfig().ShowErrors {
		t.Error("expected --show-errors to enable ShowErrors")
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("42"); err != nil || id != 42 {
		t.Errorf("expected 42, got %d (%v)", id, err)
	}
	for _, bad := range []string{"", "abc", "0", "-3"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
