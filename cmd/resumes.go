// ABOUTME: Résumé commands: list, show, generate, update, delete
// ABOUTME: Each wraps one résumé service operation with human or JSON output

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/markalston/resume-builder/internal/export"
	"github.com/markalston/resume-builder/internal/resume"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List your résumés",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runList(ctx, newEnv(), os.Stdout))
	},
}

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one résumé as Markdown",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runShow(ctx, newEnv(), os.Stdout, args[0]))
	},
}

var generateCmd = &cobra.Command{
	Use:   "generate [target role]",
	Short: "Generate a résumé for a target role",
	Long: `Generate a résumé tailored to a target role from your public GitHub projects.

Example:
  resume-builder generate Backend Engineer`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		role := strings.Join(args, " ")
		if strings.TrimSpace(role) == "" {
			var err error
			if role, err = promptRole(); err != nil {
				fmt.Fprintf(os.Stdout, "Error: %v\n", err)
				exit(exitUsage)
			}
		}
		exit(runGenerate(ctx, newEnv(), os.Stdout, role))
	},
}

var (
	updateTitle     string
	updateRole      string
	updateSummary   string
	updateSkills    []string
	updateIsDefault bool
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a résumé",
	Long: `Change selected fields of a résumé. Fields without a flag keep their
current values.

Example:
  resume-builder update 12 --title "Platform Resume" --skills Go,Kubernetes`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runUpdate(ctx, newEnv(), os.Stdout, args[0], updateFromFlags(cmd)))
	},
}

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a résumé",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		confirm := confirmDelete
		if deleteYes {
			confirm = func(int64) (bool, error) { return true, nil }
		}
		exit(runDelete(ctx, newEnv(), os.Stdout, args[0], confirm))
	},
}

func init() {
	rootCmd.AddCommand(listCmd, showCmd, generateCmd, updateCmd, deleteCmd)

	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateRole, "role", "", "New target role")
	updateCmd.Flags().StringVar(&updateSummary, "summary", "", "New summary")
	updateCmd.Flags().StringSliceVar(&updateSkills, "skills", nil, "Replace skills (comma separated, most relevant first)")
	updateCmd.Flags().BoolVar(&updateIsDefault, "default", false, "Mark as the default résumé")

	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Delete without asking")
}

// runList prints every résumé of the signed-in user
func runList(ctx context.Context, e *env, w io.Writer) int {
	if !e.requireSession(w) {
		return exitUsage
	}

	list, err := e.svc.List(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}

	if IsJSONOutput() {
		writeJSON(w, list)
		return exitOK
	}
	fmt.Fprintln(w, formatListHuman(list))
	return exitOK
}

func formatListHuman(list []resume.Resume) string {
	if len(list) == 0 {
		return "No resumes yet. Run 'resume-builder generate <target role>' to create one."
	}

	rows := make([][]string, 0, len(list))
	for i := range list {
		r := &list[i]
		created := ""
		if !r.CreatedAt.IsZero() {
			created = humanize.Time(r.CreatedAt)
		}
		def := ""
		if r.IsDefault {
			def = "yes"
		}
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.DisplayTitle(),
			r.DisplayRole(),
			strconv.Itoa(len(r.Projects)),
			created,
			def,
		})
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "ROLE", "PROJECTS", "CREATED", "DEFAULT").
		Rows(rows...).
		String()
}

// fetch loads one résumé, printing the failure. Not found exits 1, other failures 2.
func fetch(ctx context.Context, e *env, w io.Writer, arg string) (*resume.Resume, int) {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, exitUsage
	}

	r, err := e.svc.Get(ctx, id)
	if resume.IsNotFound(err) || (err == nil && r == nil) {
		fmt.Fprintf(w, "Error: resume %d not found\n", id)
		return nil, exitUsage
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return nil, exitBackend
	}
	return r, exitOK
}

// runShow prints one résumé
func runShow(ctx context.Context, e *env, w io.Writer, arg string) int {
	if !e.requireSession(w) {
		return exitUsage
	}
	r, code := fetch(ctx, e, w, arg)
	if r == nil {
		return code
	}

	if IsJSONOutput() {
		writeJSON(w, r)
		return exitOK
	}
	md, err := export.Markdown(r)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	w.Write(md)
	return exitOK
}

func promptRole() (string, error) {
	var role string
	err := huh.NewInput().
		Title("Target role").
		Placeholder("Backend Engineer").
		Value(&role).
		Run()
	return role, err
}

// runGenerate requests one résumé for role
func runGenerate(ctx context.Context, e *env, w io.Writer, role string) int {
	if !e.requireSession(w) {
		return exitUsage
	}

	r, err := e.svc.Generate(ctx, role)
	if errors.Is(err, resume.ErrTargetRoleRequired) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}

	if IsJSONOutput() {
		writeJSON(w, r)
		return exitOK
	}
	fmt.Fprintf(w, "Generated resume #%d: %s (%d projects, %d skills)\n",
		r.ID, r.DisplayTitle(), len(r.Projects), len(r.Skills))
	return exitOK
}

// updateFromFlags sets only the fields whose flags were given
func updateFromFlags(cmd *cobra.Command) resume.UpdateRequest {
	var req resume.UpdateRequest
	flags := cmd.Flags()
	if flags.Changed("title") {
		req.Title = &updateTitle
	}
	if flags.Changed("role") {
		req.TargetRole = &updateRole
	}
	if flags.Changed("summary") {
		req.Summary = &updateSummary
	}
	if flags.Changed("skills") {
		skills := updateSkills
		req.Skills = &skills
	}
	if flags.Changed("default") {
		req.IsDefault = &updateIsDefault
	}
	return req
}

// runUpdate reads the résumé first so fields without flags are sent unchanged
func runUpdate(ctx context.Context, e *env, w io.Writer, arg string, req resume.UpdateRequest) int {
	if req.Empty() {
		fmt.Fprintln(w, "Error: nothing to update; pass at least one of --title, --role, --summary, --skills, --default")
		return exitUsage
	}
	if !e.requireSession(w) {
		return exitUsage
	}
	current, code := fetch(ctx, e, w, arg)
	if current == nil {
		return code
	}

	updated, err := e.svc.Update(ctx, current.ID, req.Merge(current))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}

	if IsJSONOutput() {
		writeJSON(w, updated)
		return exitOK
	}
	fmt.Fprintf(w, "Updated resume #%d: %s\n", updated.ID, updated.DisplayTitle())
	return exitOK
}

func confirmDelete(id int64) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(fmt.Sprintf("Delete resume #%d?", id)).
		Affirmative("Delete").
		Negative("Cancel").
		Value(&ok).
		Run()
	return ok, err
}

// runDelete issues exactly one Delete after confirmation, none when declined
func runDelete(ctx context.Context, e *env, w io.Writer, arg string, confirm func(int64) (bool, error)) int {
	id, err := parseID(arg)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if !e.requireSession(w) {
		return exitUsage
	}

	ok, err := confirm(id)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if !ok {
		fmt.Fprintln(w, "Cancelled.")
		return exitOK
	}

	if err := e.svc.Delete(ctx, id); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}
	fmt.Fprintf(w, "Deleted resume #%d\n", id)
	return exitOK
}
