// ABOUTME: Configuration loader for the resume-builder client
// ABOUTME: Reads .env and environment variables with production defaults

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is the production résumé service
const DefaultAPIURL = "https://github-resume-builder-eihv.onrender.com"

// DefaultCallbackAddr is where the loopback login listener binds
const DefaultCallbackAddr = "127.0.0.1:5173"

const appDirName = "resume-builder"

type Config struct {
	// Backend base endpoint, override with RESUME_API_URL
	APIURL string

	// Directory holding session.json and debug.log
	ConfigDir string

	// Loopback address receiving /callback?token=
	CallbackAddr string

	// Surface list/detail/delete failures instead of failing open
	ShowErrors bool

	// Where exports and printed PDFs are written
	ExportDir string

	// Optional Chrome/Chromium binary for printing
	ChromePath string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	// A missing .env is the normal case
	_ = godotenv.Load()

	return &Config{
		APIURL:       strings.TrimRight(ensureScheme(getEnv("RESUME_API_URL", DefaultAPIURL)), "/"),
		ConfigDir:    getEnv("RESUME_CONFIG_DIR", DefaultConfigDir()),
		CallbackAddr: getEnv("RESUME_CALLBACK_ADDR", DefaultCallbackAddr),
		ShowErrors:   getEnvBool("RESUME_SHOW_ERRORS", false),
		ExportDir:    getEnv("RESUME_EXPORT_DIR", "."),
		ChromePath:   os.Getenv("CHROME_PATH"),
	}
}

// DefaultConfigDir follows the XDG spec
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

// LoginURL is navigated to in the browser, never fetched
func (c *Config) LoginURL() string {
	return c.APIURL + "/auth/login"
}

// CallbackURL is the redirect target the backend must be configured with
func (c *Config) CallbackURL() string {
	return "http://" + c.CallbackAddr + "/callback"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
