// ABOUTME: Landing screen offering sign-in through the identity provider
// ABOUTME: Stateless apart from the waiting indicator shown while the browser flow runs

package home

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/resume-builder/internal/tui/icons"
	"github.com/markalston/resume-builder/internal/tui/styles"
)

// LoginRequestedMsg asks the application to start the browser sign-in flow
type LoginRequestedMsg struct{}

// LoginCancelledMsg asks the application to abandon a pending sign-in
type LoginCancelledMsg struct{}

// Home is the unauthenticated landing view
type Home struct {
	loginURL string
	waiting  bool
	err      error
}

// New creates the landing view. loginURL is shown so users can open it by hand.
func New(loginURL string) *Home {
	return &Home{loginURL: loginURL}
}

// SetWaiting toggles the "complete sign-in in your browser" hint
func (h *Home) SetWaiting(waiting bool) {
	h.waiting = waiting
	if waiting {
		h.err = nil
	}
}

// Waiting reports whether a sign-in is pending
func (h *Home) Waiting() bool {
	return h.waiting
}

// SetError shows why the sign-in flow failed
func (h *Home) SetError(err error) {
	h.err = err
	h.waiting = false
}

// Init implements tea.Model
func (h *Home) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (h *Home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return h, nil
	}
	switch key.String() {
	case "l", "enter":
		if h.waiting {
			return h, nil
		}
		return h, func() tea.Msg { return LoginRequestedMsg{} }
	case "esc":
		if h.waiting {
			return h, func() tea.Msg { return LoginCancelledMsg{} }
		}
		return h, tea.Quit
	case "q":
		return h, tea.Quit
	}
	return h, nil
}

// View implements tea.Model
func (h *Home) View() string {
	var sb strings.Builder

	sb.WriteString(styles.Title.Render(icons.Document.String() + " GitHub Resume Builder"))
	sb.WriteString("\n")
	sb.WriteString("Turn your public GitHub projects into a résumé tailored to the role you want.\n\n")

	switch {
	case h.waiting:
		sb.WriteString(styles.StatusWarning.Render("Complete sign-in in your browser..."))
		sb.WriteString("\n")
		sb.WriteString(styles.MutedText.Render("If nothing opened, visit " + h.loginURL))
		sb.WriteString("\n\n")
		sb.WriteString(styles.KeyStyle.Render("esc") + " Cancel")
	case h.err != nil:
		sb.WriteString(styles.StatusCritical.Render("Sign-in failed: " + h.err.Error()))
		sb.WriteString("\n\n")
		sb.WriteString(styles.KeyStyle.Render("l") + " Try again")
	default:
		sb.WriteString(styles.KeyStyle.Render("l") + " " + icons.Login.String() + " Sign in with GitHub")
	}
	sb.WriteString("\n")

	return sb.String()
}
