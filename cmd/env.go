// ABOUTME: Shared wiring for commands: session store, API client, résumé service
// ABOUTME: Also holds output helpers and the exit code convention

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/markalston/resume-builder/internal/client"
	"github.com/markalston/resume-builder/internal/config"
	"github.com/markalston/resume-builder/internal/resume"
	"github.com/markalston/resume-builder/internal/session"
)

// Exit codes
const (
	exitOK      = 0
	exitUsage   = 1 // bad input or no session
	exitBackend = 2 // backend unreachable or returned an error
)

// env is the per-invocation wiring
type env struct {
	cfg    *config.Config
	store  session.Store
	client *client.Client
	svc    *resume.Service
}

func newEnv() *env {
	cfg := loadConfig()
	store := session.NewFileStore(cfg.ConfigDir)
	return newEnvWithStore(cfg, store)
}

func newEnvWithStore(cfg *config.Config, store session.Store) *env {
	c := client.New(cfg.APIURL, store)
	return &env{
		cfg:    cfg,
		store:  store,
		client: c,
		svc:    resume.NewService(c),
	}
}

// requireSession reports a missing session the way every protected command does
func (e *env) requireSession(w io.Writer) bool {
	if _, ok := e.store.Token(); ok {
		return true
	}
	fmt.Fprintln(w, "Error: not signed in. Run 'resume-builder login' first.")
	return false
}

// signalContext is cancelled on SIGINT or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// exit terminates with code when it is not zero
func exit(code int) {
	if code != exitOK {
		os.Exit(code)
	}
}

// parseID reads a résumé id argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid resume id %q", arg)
	}
	return id, nil
}

// writeJSON prints v as indented JSON
func writeJSON(w io.Writer, v any) {
	data, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(data))
}
