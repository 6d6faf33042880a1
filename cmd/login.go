// ABOUTME: Sign-in and sign-out commands
// ABOUTME: Sign-in opens the provider login page and captures the redirect on a loopback listener

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/markalston/resume-builder/internal/browser"
	"github.com/markalston/resume-builder/internal/loopback"
	"github.com/markalston/resume-builder/internal/route"
	"github.com/markalston/resume-builder/internal/tui"
	"github.com/markalston/resume-builder/internal/tui/callback"
	"github.com/spf13/cobra"
)

var (
	loginPaste     bool
	loginNoBrowser bool
	loginTimeout   time.Duration
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with GitHub",
	Long: `Open the GitHub sign-in page and wait for the service to redirect back
with a session token.

The service must redirect to the callback listener address
(RESUME_CALLBACK_ADDR). On machines without a local browser use --paste and
paste the URL the browser ended on.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runLogin(ctx, newEnv(), os.Stdout, loginOptions{
			paste:        loginPaste,
			timeout:      loginTimeout,
			openBrowser:  browserOpener(loginNoBrowser),
			listen:       listenLoopback,
			readRedirect: promptRedirect,
		}))
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		exit(runLogout(newEnv(), os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	loginCmd.Flags().BoolVar(&loginPaste, "paste", false, "Paste the redirect URL instead of listening for it")
	loginCmd.Flags().BoolVar(&loginNoBrowser, "no-browser", false, "Print the sign-in URL without opening a browser")
	loginCmd.Flags().DurationVar(&loginTimeout, "timeout", 5*time.Minute, "How long to wait for the redirect")
}

type loginOptions struct {
	paste        bool
	timeout      time.Duration
	openBrowser  func(url string) error
	listen       func(addr string) (tui.CallbackListener, error)
	readRedirect func() (string, error)
}

func listenLoopback(addr string) (tui.CallbackListener, error) {
	return loopback.Listen(addr)
}

func browserOpener(disabled bool) func(string) error {
	if disabled {
		return nil
	}
	return browser.Open
}

func promptRedirect() (string, error) {
	var raw string
	err := huh.NewInput().
		Title("Paste the URL your browser was redirected to").
		Value(&raw).
		Run()
	return strings.TrimSpace(raw), err
}

// runLogin completes one sign-in attempt and returns the exit code
func runLogin(ctx context.Context, e *env, w io.Writer, opts loginOptions) int {
	loginURL := e.cfg.LoginURL()

	var landed route.Route
	if opts.paste {
		fmt.Fprintf(w, "Open this URL in your browser and sign in:\n\n  %s\n\n", loginURL)
		raw, err := opts.readRedirect()
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		landed = callback.HandleRaw(e.store, raw)
	} else {
		listener, err := opts.listen(e.cfg.CallbackAddr)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\nUse --paste to sign in without the callback listener.\n", err)
			return exitUsage
		}
		defer listener.Close()

		opened := false
		if opts.openBrowser != nil {
			if err := opts.openBrowser(loginURL); err == nil {
				opened = true
			}
		}
		if opened {
			fmt.Fprintf(w, "Opened %s\nComplete sign-in in your browser...\n", loginURL)
		} else {
			fmt.Fprintf(w, "Open this URL in your browser and sign in:\n\n  %s\n\nWaiting for sign-in...\n", loginURL)
		}

		waitCtx := ctx
		if opts.timeout > 0 {
			var cancel context.CancelFunc
			waitCtx, cancel = context.WithTimeout(ctx, opts.timeout)
			defer cancel()
		}
		redirect, err := listener.Wait(waitCtx)
		if err != nil {
			fmt.Fprintf(w, "Error: sign-in was not completed: %v\n", err)
			return exitUsage
		}
		landed = callback.Handle(e.store, redirect)
	}

	if landed != route.Dashboard {
		fmt.Fprintln(w, "Error: sign-in did not return a session token")
		return exitUsage
	}
	fmt.Fprintln(w, "Signed in.")
	return exitOK
}

// runLogout clears the session. Signing out twice is not an error.
func runLogout(e *env, w io.Writer) int {
	if err := e.store.Clear(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	fmt.Fprintln(w, "Signed out.")
	return exitOK
}
