// ABOUTME: Single résumé view with delete confirmation, export, and print
// ABOUTME: Fetches on mount and shows "not found" for missing or unreadable résumés

package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/markalston/resume-builder/internal/export"
	"github.com/markalston/resume-builder/internal/resume"
	"github.com/markalston/resume-builder/internal/route"
	"github.com/markalston/resume-builder/internal/tui/debuglog"
	"github.com/markalston/resume-builder/internal/tui/icons"
	"github.com/markalston/resume-builder/internal/tui/styles"
	"github.com/markalston/resume-builder/internal/tui/widgets"
)

// Service is the subset of the résumé service the detail view drives
type Service interface {
	Get(ctx context.Context, id int64) (*resume.Resume, error)
	Delete(ctx context.Context, id int64) error
}

// Exporter writes the in-memory résumé to disk
type Exporter interface {
	WriteFile(ctx context.Context, r *resume.Resume, kind export.Kind, dir string) (string, error)
}

type state int

const (
	stateLoading state = iota
	stateReady
	stateNotFound
)

type loadedMsg struct {
	mount  int
	resume *resume.Resume
	err    error
}

type deletedMsg struct {
	mount int
	err   error
}

type exportedMsg struct {
	mount int
	kind  export.Kind
	path  string
	err   error
}

// Options configures a detail view
type Options struct {
	Exporter   Exporter
	ExportDir  string
	ShowErrors bool
}

// Detail shows one résumé
type Detail struct {
	svc  Service
	opts Options
	id   int64

	mount      int
	state      state
	resume     *resume.Resume
	loadErr    error
	confirming bool
	busy       string
	status     string
	statusErr  bool

	viewport viewport.Model
	width    int
	height   int
}

// New creates the detail view for résumé id on one mount
func New(svc Service, id int64, mount int, opts Options) *Detail {
	return &Detail{
		svc:      svc,
		opts:     opts,
		id:       id,
		mount:    mount,
		viewport: viewport.New(80, 20),
	}
}

// SetSize updates the view dimensions
func (d *Detail) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.viewport.Width = width
	// Leave room for the title, status, and confirmation lines
	d.viewport.Height = max(5, height-6)
	d.refreshContent()
}

// Init implements tea.Model
func (d *Detail) Init() tea.Cmd {
	mount, id := d.mount, d.id
	return func() tea.Msg {
		r, err := d.svc.Get(context.Background(), id)
		return loadedMsg{mount: mount, resume: r, err: err}
	}
}

// Update implements tea.Model
func (d *Detail) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.mount != d.mount {
			return d, nil
		}
		if msg.err != nil {
			debuglog.Error("get resume", msg.err, "id", d.id)
		}
		if msg.err != nil || msg.resume == nil {
			d.state = stateNotFound
			d.loadErr = msg.err
			return d, nil
		}
		d.state = stateReady
		d.resume = msg.resume
		d.refreshContent()
		return d, nil

	case deletedMsg:
		if msg.mount != d.mount {
			return d, nil
		}
		d.busy = ""
		if msg.err != nil {
			debuglog.Error("delete resume", msg.err, "id", d.id)
			if d.opts.ShowErrors {
				d.setStatus("Delete failed: "+msg.err.Error(), true)
			}
			return d, nil
		}
		return d, navigate(route.Dashboard)

	case exportedMsg:
		if msg.mount != d.mount {
			return d, nil
		}
		d.busy = ""
		if msg.err != nil {
			debuglog.Error("export resume", msg.err, "id", d.id, "format", string(msg.kind))
			d.setStatus("Export failed: "+msg.err.Error(), true)
			return d, nil
		}
		d.setStatus("Saved "+msg.path, false)
		return d, nil

	case tea.KeyMsg:
		return d.handleKey(msg)
	}
	return d, nil
}

func (d *Detail) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if d.confirming {
		switch msg.String() {
		case "y", "Y":
			d.confirming = false
			d.busy = "Deleting..."
			return d, d.delete()
		case "n", "N", "esc":
			d.confirming = false
		}
		return d, nil
	}

	switch msg.String() {
	case "q":
		return d, tea.Quit
	case "b", "esc":
		return d, navigate(route.Dashboard)
	}

	if d.state != stateReady || d.busy != "" {
		return d, nil
	}

	switch msg.String() {
	case "d":
		d.confirming = true
		d.status = ""
		return d, nil
	case "e":
		return d, d.export(export.KindJSON, "Exporting...")
	case "m":
		return d, d.export(export.KindMarkdown, "Exporting...")
	case "p":
		return d, d.export(export.KindPDF, "Printing...")
	}

	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return d, cmd
}

func (d *Detail) delete() tea.Cmd {
	mount, id := d.mount, d.id
	return func() tea.Msg {
		return deletedMsg{mount: mount, err: d.svc.Delete(context.Background(), id)}
	}
}

func (d *Detail) export(kind export.Kind, busy string) tea.Cmd {
	if d.opts.Exporter == nil {
		d.setStatus("Export is not configured", true)
		return nil
	}
	d.busy = busy
	d.status = ""
	mount, r, dir := d.mount, d.resume, d.opts.ExportDir
	return func() tea.Msg {
		path, err := d.opts.Exporter.WriteFile(context.Background(), r, kind, dir)
		return exportedMsg{mount: mount, kind: kind, path: path, err: err}
	}
}

func (d *Detail) setStatus(text string, isErr bool) {
	d.status = text
	d.statusErr = isErr
}

func navigate(to route.Route) tea.Cmd {
	return func() tea.Msg {
		return route.NavigateMsg{To: to}
	}
}

// Confirming reports whether the delete prompt is showing
func (d *Detail) Confirming() bool {
	return d.confirming
}

// Title is shown in the application header
func (d *Detail) Title() string {
	if d.resume == nil {
		return ""
	}
	return d.resume.DisplayTitle()
}

func (d *Detail) refreshContent() {
	if d.resume == nil {
		return
	}
	d.viewport.SetContent(renderResume(d.resume))
}

// View implements tea.Model
func (d *Detail) View() string {
	switch d.state {
	case stateLoading:
		return styles.Subtitle.Render("Loading resume...")
	case stateNotFound:
		if d.loadErr != nil && d.opts.ShowErrors {
			return styles.StatusCritical.Render("Could not load resume: " + d.loadErr.Error())
		}
		return styles.Title.Render("Resume not found") + "\n" +
			styles.MutedText.Render("Press b to return to the dashboard.")
	}

	var sb strings.Builder
	sb.WriteString(d.viewport.View())
	sb.WriteString("\n")

	switch {
	case d.confirming:
		sb.WriteString(widgets.StatusText("Delete this resume? (y/n)", widgets.StatusWarning))
	case d.busy != "":
		sb.WriteString(widgets.StatusText(d.busy, widgets.StatusNeutral))
	case d.status != "":
		level := widgets.StatusOK
		if d.statusErr {
			level = widgets.StatusCritical
		}
		sb.WriteString(widgets.StatusText(d.status, level))
	}
	return sb.String()
}

// renderResume lays out the résumé body for the viewport
func renderResume(r *resume.Resume) string {
	var sb strings.Builder

	title := styles.Title.Render(r.DisplayTitle())
	if r.IsDefault {
		title += " " + widgets.DefaultBadge()
	}
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(styles.ValueStyle.Render(r.DisplayRole()))
	if !r.CreatedAt.IsZero() {
		sb.WriteString(styles.MutedText.Render("  created " + humanize.Time(r.CreatedAt)))
	}
	sb.WriteString("\n\n")

	if r.Summary != "" {
		sb.WriteString(r.Summary)
		sb.WriteString("\n\n")
	}

	if len(r.Skills) > 0 {
		sb.WriteString(styles.Title.Render("Skills"))
		sb.WriteString("\n")
		sb.WriteString(strings.Join(r.Skills, " · "))
		sb.WriteString("\n\n")
	}

	if len(r.Projects) > 0 {
		sb.WriteString(styles.Title.Render("Projects"))
		sb.WriteString("\n")
		for _, p := range r.Projects {
			line := fmt.Sprintf("%s %s", icons.Repo.String(), styles.ValueStyle.Render(p.RepoName))
			if p.Language != "" {
				line += " " + widgets.LanguageBadge(p.Language)
			}
			if p.Stars > 0 {
				line += fmt.Sprintf(" %s %s", icons.Star.String(), humanize.Comma(int64(p.Stars)))
			}
			sb.WriteString(line)
			sb.WriteString("\n")
			if p.Description != "" {
				sb.WriteString("  " + p.Description + "\n")
			}
			if p.URL != "" {
				sb.WriteString("  " + styles.MutedText.Render(p.URL) + "\n")
			}
			for _, h := range p.Highlights {
				sb.WriteString("  • " + h + "\n")
			}
			if len(p.Topics) > 0 {
				sb.WriteString("  " + styles.MutedText.Render(icons.Tag.String()+" "+strings.Join(p.Topics, ", ")) + "\n")
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}
