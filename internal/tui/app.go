// ABOUTME: Root bubbletea model for the TUI application
// ABOUTME: Resolves navigation through the route guard and mounts one view controller at a time

package tui

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/markalston/resume-builder/internal/loopback"
	"github.com/markalston/resume-builder/internal/route"
	"github.com/markalston/resume-builder/internal/session"
	"github.com/markalston/resume-builder/internal/tui/callback"
	"github.com/markalston/resume-builder/internal/tui/dashboard"
	"github.com/markalston/resume-builder/internal/tui/debuglog"
	"github.com/markalston/resume-builder/internal/tui/detail"
	"github.com/markalston/resume-builder/internal/tui/home"
	"github.com/markalston/resume-builder/internal/tui/icons"
	"github.com/markalston/resume-builder/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenHome Screen = iota
	ScreenCallback
	ScreenDashboard
	ScreenDetail
)

// Layout constants
const (
	minTerminalWidth = 80 // Minimum frame width
	frameOverhead    = 4  // Header, footer, and the newlines around content
)

// DefaultLoginTimeout bounds how long the sign-in listener waits for the redirect
const DefaultLoginTimeout = 5 * time.Minute

// Service is everything the view controllers need from the résumé service
type Service interface {
	dashboard.Service
	detail.Service
}

// CallbackListener delivers the identity provider redirect
type CallbackListener interface {
	Wait(ctx context.Context) (*url.URL, error)
	Close() error
}

// Deps wires the application to its collaborators
type Deps struct {
	Store      session.Store
	Service    Service
	Exporter   detail.Exporter
	LoginURL   string
	APIHost    string
	ExportDir  string
	ShowErrors bool

	// CallbackAddr is where Listen binds for the sign-in redirect
	CallbackAddr string
	Listen       func(addr string) (CallbackListener, error)
	OpenBrowser  func(url string) error
	LoginTimeout time.Duration
}

// callbackReceivedMsg is sent when the loopback listener captures the redirect.
// seq identifies the sign-in attempt that produced it.
type callbackReceivedMsg struct {
	seq int
	url *url.URL
	err error
}

// browserOpenedMsg reports whether the login page could be opened
type browserOpenedMsg struct {
	err error
}

// sizer is implemented by controllers that lay out to the terminal size
type sizer interface {
	SetSize(width, height int)
}

// App is the root model for the TUI
type App struct {
	deps   Deps
	guard  *route.Guard
	screen Screen
	route  route.Route
	width  int
	height int

	// mounts increments on every navigation; controllers tag results with it
	mounts  int
	current tea.Model
	home    *home.Home

	cancelLogin context.CancelFunc
	loginSeq    int
}

// New creates a new TUI application
func New(deps Deps) *App {
	if deps.Listen == nil {
		deps.Listen = func(addr string) (CallbackListener, error) {
			return loopback.Listen(addr)
		}
	}
	if deps.LoginTimeout <= 0 {
		deps.LoginTimeout = DefaultLoginTimeout
	}
	return &App{
		deps:  deps,
		guard: route.NewGuard(deps.Store),
	}
}

// Init implements tea.Model. The dashboard is requested first; without a
// session the guard lands on home.
func (a *App) Init() tea.Cmd {
	return a.navigate(route.Dashboard)
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resizeCurrent()
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.stopLogin()
			return a, tea.Quit
		}
		return a.forward(msg)

	case route.NavigateMsg:
		return a, a.navigate(msg.To)

	case home.LoginRequestedMsg:
		return a, a.startLogin()

	case home.LoginCancelledMsg:
		a.stopLogin()
		if a.home != nil {
			a.home.SetWaiting(false)
		}
		return a, nil

	case browserOpenedMsg:
		if msg.err != nil {
			debuglog.Warn("Could not open browser", "error", msg.err)
		}
		return a, nil

	case callbackReceivedMsg:
		// A cancelled or superseded attempt reports nothing
		if msg.seq != a.loginSeq || a.cancelLogin == nil {
			return a, nil
		}
		a.stopLogin()
		if msg.err != nil {
			err := msg.err
			if errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("timed out after %s waiting for the redirect", a.deps.LoginTimeout)
			}
			debuglog.Error("wait for sign-in callback", err)
			if a.home != nil && a.screen == ScreenHome {
				a.home.SetError(err)
			}
			return a, nil
		}
		return a, a.mountCallback(msg.url)
	}

	// Async results and component ticks go to the mounted controller only
	return a.forward(msg)
}

func (a *App) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	if a.current == nil {
		return a, nil
	}
	model, cmd := a.current.Update(msg)
	a.current = model
	return a, cmd
}

// navigate resolves to through the guard and mounts the matching controller
func (a *App) navigate(to route.Route) tea.Cmd {
	resolved := a.guard.Resolve(to)
	if resolved.Name == route.NameCallback {
		// The callback view only exists with a redirect to process
		resolved = route.Home
	}
	if resolved != to {
		debuglog.Info("Navigation redirected", "requested", to.String(), "resolved", resolved.String())
	}

	a.mounts++
	a.route = resolved
	a.home = nil

	switch resolved.Name {
	case route.NameDashboard:
		a.stopLogin()
		a.screen = ScreenDashboard
		a.current = dashboard.New(a.deps.Service, a.deps.Store, a.mounts, a.deps.ShowErrors)
	case route.NameResume:
		a.screen = ScreenDetail
		a.current = detail.New(a.deps.Service, resolved.ResumeID, a.mounts, detail.Options{
			Exporter:   a.deps.Exporter,
			ExportDir:  a.deps.ExportDir,
			ShowErrors: a.deps.ShowErrors,
		})
	default:
		a.screen = ScreenHome
		a.home = home.New(a.deps.LoginURL)
		a.current = a.home
	}

	a.resizeCurrent()
	return a.current.Init()
}

func (a *App) mountCallback(redirect *url.URL) tea.Cmd {
	a.mounts++
	a.route = route.Callback
	a.home = nil
	a.screen = ScreenCallback
	a.current = callback.New(a.deps.Store, redirect)
	return a.current.Init()
}

// startLogin binds the loopback listener, then opens the provider login page
func (a *App) startLogin() tea.Cmd {
	if a.home == nil {
		return nil
	}
	a.stopLogin()

	listener, err := a.deps.Listen(a.deps.CallbackAddr)
	if err != nil {
		debuglog.Error("start callback listener", err, "addr", a.deps.CallbackAddr)
		a.home.SetError(err)
		return nil
	}
	a.home.SetWaiting(true)

	ctx, cancel := context.WithTimeout(context.Background(), a.deps.LoginTimeout)
	a.cancelLogin = cancel
	a.loginSeq++
	seq := a.loginSeq

	wait := func() tea.Msg {
		defer listener.Close()
		u, err := listener.Wait(ctx)
		return callbackReceivedMsg{seq: seq, url: u, err: err}
	}
	open := func() tea.Msg {
		if a.deps.OpenBrowser == nil {
			return browserOpenedMsg{}
		}
		return browserOpenedMsg{err: a.deps.OpenBrowser(a.deps.LoginURL)}
	}
	return tea.Batch(wait, open)
}

func (a *App) stopLogin() {
	if a.cancelLogin != nil {
		a.cancelLogin()
		a.cancelLogin = nil
	}
}

func (a *App) resizeCurrent() {
	if s, ok := a.current.(sizer); ok && a.width > 0 {
		s.SetSize(a.frameWidth()-2, max(5, a.height-frameOverhead))
	}
}

// View implements tea.Model
func (a *App) View() string {
	content := ""
	if a.current != nil {
		content = a.current.View()
	}
	return a.wrapWithFrame(content)
}

// frameWidth uses width-1 to prevent wrapping on some terminals
func (a *App) frameWidth() int {
	width := a.width - 1
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	return width
}

// renderHeader creates the header bar with app branding and the current route
func (a *App) renderHeader() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	titleStyle := lipgloss.NewStyle().Foreground(styles.Primary).Bold(true)
	contextStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	leftText := fmt.Sprintf(" %s %s ", icons.App.String(), titleStyle.Render("Resume Builder"))

	rightText := ""
	if label := a.headerContext(); label != "" {
		rightText = " " + contextStyle.Render(label) + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftText) - lipgloss.Width(rightText) // -4 for ╭─ and ─╮
	if fillWidth < 0 {
		fillWidth = 0
	}

	header := "╭─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╮"
	return borderStyle.Render(header)
}

func (a *App) headerContext() string {
	if d, ok := a.current.(*detail.Detail); ok && d.Title() != "" {
		return d.Title()
	}
	if a.screen == ScreenHome {
		return ""
	}
	return a.route.String()
}

// renderFooter creates the footer with keyboard shortcuts and the API host
func (a *App) renderFooter() string {
	width := a.frameWidth()

	borderStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	keyStyle := lipgloss.NewStyle().Foreground(styles.Primary)
	labelStyle := lipgloss.NewStyle().Foreground(styles.Muted)
	statusStyle := lipgloss.NewStyle().Foreground(styles.Secondary)

	shortcuts := a.shortcuts()

	var styled []string
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, keyStyle.Render(parts[0])+" "+labelStyle.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}

	leftText := " " + strings.Join(styled, "  ") + " "
	leftPlain := " " + strings.Join(shortcuts, "  ") + " "

	rightText, rightPlain := "", ""
	if a.deps.APIHost != "" {
		rightText = " " + statusStyle.Render(a.deps.APIHost) + " "
		rightPlain = " " + a.deps.APIHost + " "
	}

	fillWidth := width - 4 - lipgloss.Width(leftPlain) - lipgloss.Width(rightPlain) // -4 for ╰─ and ─╯
	if fillWidth < 0 {
		fillWidth = 0
	}

	footer := "╰─" + leftText + strings.Repeat("─", fillWidth) + rightText + "─╯"
	return borderStyle.Render(footer)
}

// shortcuts lists the keys that apply to the current screen
func (a *App) shortcuts() []string {
	switch a.screen {
	case ScreenHome:
		if a.home != nil && a.home.Waiting() {
			return []string{"Esc Cancel-sign-in", "q Quit"}
		}
		return []string{"l Sign-in", "q Quit"}
	case ScreenDashboard:
		if d, ok := a.current.(*dashboard.Dashboard); ok && d.InputFocused() {
			return []string{"Enter Generate", "Esc Back-to-list"}
		}
		return []string{"g Generate", "Enter Open", "r Refresh", "o Logout", "q Quit"}
	case ScreenDetail:
		if d, ok := a.current.(*detail.Detail); ok && d.Confirming() {
			return []string{"y Delete", "n Cancel"}
		}
		return []string{"e Export", "p Print", "d Delete", "b Back", "q Quit"}
	}
	return nil
}

// wrapWithFrame wraps content with header and footer
func (a *App) wrapWithFrame(content string) string {
	var sb strings.Builder

	sb.WriteString(a.renderHeader())
	sb.WriteString("\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())

	return sb.String()
}

// Run starts the TUI
func Run(deps Deps) error {
	app := New(deps)

	p := tea.NewProgram(
		app,
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	app.stopLogin()
	return err
}
