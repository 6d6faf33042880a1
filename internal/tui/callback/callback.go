// ABOUTME: Completes sign-in from the identity provider redirect
// ABOUTME: Stores the token carried by the redirect and routes to the dashboard, or back home

package callback

import (
	"net/url"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/markalston/resume-builder/internal/route"
	"github.com/markalston/resume-builder/internal/tui/debuglog"
	"github.com/markalston/resume-builder/internal/tui/styles"
)

// TokenSetter is the write side of the session store
type TokenSetter interface {
	SetToken(token string) error
}

// Handle reads the token query parameter from redirect. A non-empty token is
// stored and the dashboard is returned; anything else returns home. One shot, no retry.
func Handle(store TokenSetter, redirect *url.URL) route.Route {
	if redirect == nil {
		return route.Home
	}
	token := redirect.Query().Get("token")
	if token == "" {
		return route.Home
	}
	if err := store.SetToken(token); err != nil {
		debuglog.Error("store session token", err)
		return route.Home
	}
	return route.Dashboard
}

// HandleRaw parses rawURL first; an unparseable URL is treated like a missing token
func HandleRaw(store TokenSetter, rawURL string) route.Route {
	u, err := url.Parse(rawURL)
	if err != nil {
		debuglog.Warn("Malformed callback URL", "error", err)
		return route.Home
	}
	return Handle(store, u)
}

// Callback is the transient view shown while the redirect is processed
type Callback struct {
	store    TokenSetter
	redirect *url.URL
}

// New creates the callback view for a received redirect
func New(store TokenSetter, redirect *url.URL) *Callback {
	return &Callback{store: store, redirect: redirect}
}

// Init implements tea.Model
func (c *Callback) Init() tea.Cmd {
	return func() tea.Msg {
		return route.NavigateMsg{To: Handle(c.store, c.redirect)}
	}
}

// Update implements tea.Model
func (c *Callback) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	return c, nil
}

// View implements tea.Model
func (c *Callback) View() string {
	return styles.Subtitle.Render("Authenticating...")
}
