// ABOUTME: Dashboard listing the user's résumés with a generate-by-role form
// ABOUTME: Loads on mount, refetches after every generation, and signs out on request

package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/markalston/resume-builder/internal/resume"
	"github.com/markalston/resume-builder/internal/route"
	"github.com/markalston/resume-builder/internal/tui/debuglog"
	"github.com/markalston/resume-builder/internal/tui/icons"
	"github.com/markalston/resume-builder/internal/tui/styles"
	"github.com/markalston/resume-builder/internal/tui/widgets"
)

// Service is the subset of the résumé service the dashboard drives
type Service interface {
	List(ctx context.Context) ([]resume.Resume, error)
	Generate(ctx context.Context, targetRole string) (*resume.Resume, error)
}

// SessionClearer ends the session on logout
type SessionClearer interface {
	Clear() error
}

type state int

const (
	stateLoading state = iota
	stateReady
)

type focus int

const (
	focusList focus = iota
	focusInput
)

// listLoadedMsg carries a List result back to the mount that asked for it.
// seq orders the requests within one mount.
type listLoadedMsg struct {
	mount   int
	seq     int
	resumes []resume.Resume
	err     error
}

// generatedMsg carries a Generate result
type generatedMsg struct {
	mount  int
	resume *resume.Resume
	err    error
}

// Dashboard is the authenticated home view
type Dashboard struct {
	svc        Service
	session    SessionClearer
	mount      int
	showErrors bool
	loadSeq    int

	state      state
	resumes    []resume.Resume
	listErr    error
	cursor     int
	focus      focus
	generating bool
	alert      string

	input   textinput.Model
	spinner spinner.Model
	width   int
	height  int
}

// New creates a dashboard for one mount. Results tagged with another mount are dropped.
func New(svc Service, session SessionClearer, mount int, showErrors bool) *Dashboard {
	ti := textinput.New()
	ti.Placeholder = "Target role, e.g. Backend Engineer"
	ti.Prompt = icons.Generate.String() + " "
	ti.CharLimit = 120

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	return &Dashboard{
		svc:        svc,
		session:    session,
		mount:      mount,
		showErrors: showErrors,
		state:      stateLoading,
		input:      ti,
		spinner:    sp,
	}
}

// SetSize updates the dashboard dimensions
func (d *Dashboard) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.input.Width = max(20, width-8)
}

// Init implements tea.Model
func (d *Dashboard) Init() tea.Cmd {
	return tea.Batch(d.spinner.Tick, d.load())
}

// Update implements tea.Model
func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listLoadedMsg:
		// Only the latest List of this mount may replace the view
		if msg.mount != d.mount || msg.seq != d.loadSeq {
			return d, nil
		}
		d.state = stateReady
		d.listErr = msg.err
		if msg.err != nil {
			debuglog.Error("list resumes", msg.err)
			d.resumes = nil
		} else {
			d.resumes = msg.resumes
		}
		d.cursor = min(d.cursor, max(0, len(d.resumes)-1))
		return d, nil

	case generatedMsg:
		if msg.mount != d.mount {
			return d, nil
		}
		d.generating = false
		d.input.Reset()
		if msg.err != nil {
			debuglog.Error("generate resume", msg.err)
			d.alert = "Failed to generate resume: " + msg.err.Error()
		}
		d.state = stateLoading
		return d, tea.Batch(d.load(), d.spinner.Tick)

	case spinner.TickMsg:
		if d.state != stateLoading && !d.generating {
			return d, nil
		}
		var cmd tea.Cmd
		d.spinner, cmd = d.spinner.Update(msg)
		return d, cmd

	case tea.KeyMsg:
		return d.handleKey(msg)
	}

	if d.focus == focusInput {
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}
	return d, nil
}

func (d *Dashboard) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The alert is modal: any key dismisses it and nothing else
	if d.alert != "" {
		d.alert = ""
		return d, nil
	}

	if d.focus == focusInput {
		switch msg.String() {
		case "enter":
			return d, d.submit()
		case "esc", "tab":
			d.focus = focusList
			d.input.Blur()
			return d, nil
		}
		var cmd tea.Cmd
		d.input, cmd = d.input.Update(msg)
		return d, cmd
	}

	switch msg.String() {
	case "q":
		return d, tea.Quit
	case "tab", "g", "/":
		d.focus = focusInput
		return d, d.input.Focus()
	case "up", "k":
		if d.cursor > 0 {
			d.cursor--
		}
	case "down", "j":
		if d.cursor < len(d.resumes)-1 {
			d.cursor++
		}
	case "enter":
		if d.state == stateReady && len(d.resumes) > 0 {
			id := d.resumes[d.cursor].ID
			return d, navigate(route.Resume(id))
		}
	case "r":
		if d.state == stateReady {
			d.state = stateLoading
			return d, tea.Batch(d.load(), d.spinner.Tick)
		}
	case "o":
		return d, d.logout()
	}
	return d, nil
}

// submit issues exactly one Generate for a non-empty role
func (d *Dashboard) submit() tea.Cmd {
	role := strings.TrimSpace(d.input.Value())
	if role == "" || d.generating {
		return nil
	}
	d.generating = true
	return tea.Batch(d.generate(role), d.spinner.Tick)
}

func (d *Dashboard) load() tea.Cmd {
	d.loadSeq++
	mount, seq := d.mount, d.loadSeq
	return func() tea.Msg {
		list, err := d.svc.List(context.Background())
		return listLoadedMsg{mount: mount, seq: seq, resumes: list, err: err}
	}
}

func (d *Dashboard) generate(role string) tea.Cmd {
	mount := d.mount
	return func() tea.Msg {
		r, err := d.svc.Generate(context.Background(), role)
		return generatedMsg{mount: mount, resume: r, err: err}
	}
}

func (d *Dashboard) logout() tea.Cmd {
	if err := d.session.Clear(); err != nil {
		debuglog.Error("clear session", err)
	}
	return navigate(route.Home)
}

func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg {
		return route.NavigateMsg{To: to}
	}
}

// Generating reports whether a generation request is in flight
func (d *Dashboard) Generating() bool {
	return d.generating
}

// InputFocused reports whether keystrokes go to the role input
func (d *Dashboard) InputFocused() bool {
	return d.focus == focusInput
}

// View renders the dashboard
func (d *Dashboard) View() string {
	if d.alert != "" {
		body := styles.StatusCritical.Render(icons.Critical.String()+" "+d.alert) + "\n\n" +
			styles.MutedText.Render("Press any key to continue")
		return styles.Alert.Render(body)
	}

	var sb strings.Builder

	sb.WriteString(styles.Title.Render("Generate a resume"))
	sb.WriteString("\n")
	sb.WriteString(d.input.View())
	sb.WriteString("\n")
	if d.generating {
		sb.WriteString(d.spinner.View() + " Generating resume...")
	}
	sb.WriteString("\n\n")

	sb.WriteString(styles.Title.Render("Your resumes"))
	sb.WriteString("\n")
	sb.WriteString(d.viewList())

	return lipgloss.NewStyle().
		Width(d.width).
		Render(sb.String())
}

func (d *Dashboard) viewList() string {
	if d.state == stateLoading {
		return d.spinner.View() + " Loading resumes..."
	}
	if d.listErr != nil && d.showErrors {
		return styles.StatusCritical.Render("Could not load resumes: " + d.listErr.Error())
	}
	if len(d.resumes) == 0 {
		return styles.MutedText.Render("No resumes yet. Enter a target role above to generate one.")
	}

	var sb strings.Builder
	for i := range d.resumes {
		r := &d.resumes[i]
		line := fmt.Sprintf("%s %s  %s", icons.Document.String(), r.DisplayTitle(), styles.MutedText.Render(r.DisplayRole()))
		if r.IsDefault {
			line += " " + widgets.DefaultBadge()
		}
		if !r.CreatedAt.IsZero() {
			line += "  " + styles.MutedText.Render("created "+humanize.Time(r.CreatedAt))
		}

		if i == d.cursor && d.focus == focusList {
			sb.WriteString(styles.SelectedRow.Render("> " + line))
		} else {
			sb.WriteString(styles.Row.Render("  " + line))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
