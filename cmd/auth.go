// ABOUTME: Auth status command showing whether a session is stored
// ABOUTME: Token claims are decoded for display only and never verified

package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/markalston/resume-builder/internal/session"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Inspect the stored session",
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether you are signed in",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runAuthStatus(newEnv(), os.Stdout, time.Now()))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	rootCmd.AddCommand(authCmd)
}

type authStatus struct {
	SignedIn  bool       `json:"signed_in"`
	Session   string     `json:"session_file,omitempty"`
	Opaque    bool       `json:"opaque_token,omitempty"`
	UserID    int64      `json:"user_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Expired   bool       `json:"expired,omitempty"`
}

// runAuthStatus exits 1 when no session is stored
func runAuthStatus(e *env, w io.Writer, now time.Time) int {
	status := authStatus{}
	if fs, ok := e.store.(*session.FileStore); ok {
		status.Session = fs.Path()
	}

	token, ok := e.store.Token()
	if ok {
		status.SignedIn = true
		claims, err := session.Inspect(token)
		switch {
		case errors.Is(err, session.ErrOpaqueToken):
			status.Opaque = true
		case err == nil:
			status.UserID = claims.UserID
			if left, ok := claims.ExpiresIn(now); ok {
				exp := claims.ExpiresAt.Time
				status.ExpiresAt = &exp
				status.Expired = left <= 0
			}
		}
	}

	if IsJSONOutput() {
		writeJSON(w, status)
	} else {
		fmt.Fprintln(w, formatAuthHuman(status, now))
	}

	if !status.SignedIn {
		return exitUsage
	}
	return exitOK
}

func formatAuthHuman(s authStatus, now time.Time) string {
	if !s.SignedIn {
		return "Not signed in. Run 'resume-builder login'."
	}

	var sb strings.Builder
	sb.WriteString("Signed in\n")
	if s.Session != "" {
		fmt.Fprintf(&sb, "Session:  %s\n", s.Session)
	}
	if s.Opaque {
		sb.WriteString("Token:    opaque\n")
	}
	if s.UserID != 0 {
		fmt.Fprintf(&sb, "User ID:  %d\n", s.UserID)
	}
	if s.ExpiresAt != nil {
		label := "Expires: "
		if s.Expired {
			label = "Expired: "
		}
		fmt.Fprintf(&sb, "%s %s (%s)\n", label, humanize.RelTime(*s.ExpiresAt, now, "ago", "from now"), s.ExpiresAt.Format(time.RFC3339))
	}
	return strings.TrimRight(sb.String(), "\n")
}
