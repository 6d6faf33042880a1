// ABOUTME: Export, validate, and recent-exports commands
// ABOUTME: Writes résumés as JSON documents, Markdown, HTML, or PDF files

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/markalston/resume-builder/internal/export"
	"github.com/markalston/resume-builder/internal/recentfiles"
	"github.com/markalston/resume-builder/internal/resume"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentExports bounds parallel fetches for --all
const maxConcurrentExports = 4

var (
	exportFormat string
	exportOut    string
	exportAll    bool
)

var exportCmd = &cobra.Command{
	Use:   "export [id...]",
	Short: "Write résumés to files",
	Long: `Write résumés to files named resume-<id>.<format>.

Formats: json (re-importable document), md, html, pdf (needs Chrome/Chromium).

Example:
  resume-builder export 12 --format pdf --out ~/Documents
  resume-builder export --all --format md`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		e := newEnv()
		out := exportOut
		if out == "" {
			out = e.cfg.ExportDir
		}
		exit(runExport(ctx, e, os.Stdout, exportRequest{
			ids:    args,
			all:    exportAll,
			format: exportFormat,
			dir:    out,
			writer: newFileWriter(e),
		}))
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an exported JSON résumé document",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exit(runValidate(os.Stdout, args[0]))
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently exported files",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exit(runRecent(newEnv(), os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(exportCmd, validateCmd, recentCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, md, html, pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output directory (default RESUME_EXPORT_DIR or .)")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every résumé")
}

// newFileWriter renders with headless Chrome for PDF and records written files
func newFileWriter(e *env) recentfiles.FileWriter {
	exporter := &export.Exporter{Printer: export.NewChromePrinter(e.cfg.ChromePath)}
	return recentfiles.NewRecorder(exporter, recentfiles.New(e.cfg.ConfigDir))
}

type exportRequest struct {
	ids    []string
	all    bool
	format string
	dir    string
	writer recentfiles.FileWriter
}

// runExport fetches each résumé concurrently and writes one file per résumé
func runExport(ctx context.Context, e *env, w io.Writer, req exportRequest) int {
	kind, err := export.ParseKind(req.format)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}
	if req.all == (len(req.ids) > 0) {
		fmt.Fprintln(w, "Error: pass résumé ids or --all (but not both)")
		return exitUsage
	}

	var ids []int64
	for _, arg := range req.ids {
		id, err := parseID(arg)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitUsage
		}
		ids = append(ids, id)
	}

	if !e.requireSession(w) {
		return exitUsage
	}

	if req.all {
		list, err := e.svc.List(ctx)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return exitBackend
		}
		for _, r := range list {
			ids = append(ids, r.ID)
		}
		if len(ids) == 0 {
			fmt.Fprintln(w, "No resumes to export.")
			return exitOK
		}
	}

	ids = uniqueIDs(ids)
	paths := make([]string, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentExports)
	for i, id := range ids {
		g.Go(func() error {
			r, err := e.svc.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("resume %d: %w", id, err)
			}
			if r == nil {
				return fmt.Errorf("resume %d: not found", id)
			}
			path, err := req.writer.WriteFile(gctx, r, kind, req.dir)
			if err != nil {
				return fmt.Errorf("resume %d: %w", id, err)
			}
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		if errors.Is(err, export.ErrNoPrinter) || resume.IsNotFound(err) {
			return exitUsage
		}
		return exitBackend
	}

	if IsJSONOutput() {
		writeJSON(w, map[string]any{"format": kind, "files": paths})
		return exitOK
	}
	for _, p := range paths {
		fmt.Fprintf(w, "Wrote %s\n", p)
	}
	return exitOK
}

// uniqueIDs drops repeats so no two workers write the same file
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// runValidate parses an exported document and reports schema violations
func runValidate(w io.Writer, path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	doc, err := export.Parse(data)
	var verr *export.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprint(w, verr.Error())
		return exitUsage
	}
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	if IsJSONOutput() {
		writeJSON(w, doc)
		return exitOK
	}
	fmt.Fprintf(w, "Valid %s document: resume #%d %q (%d projects, %d skills), exported %s\n",
		doc.Format, doc.Resume.ID, doc.Resume.DisplayTitle(), len(doc.Resume.Projects), len(doc.Resume.Skills),
		doc.ExportedAt.Format("2006-01-02 15:04"))
	return exitOK
}

// runRecent lists exports that still exist on disk, newest first
func runRecent(e *env, w io.Writer) int {
	files, err := recentfiles.New(e.cfg.ConfigDir).Load()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitUsage
	}

	if IsJSONOutput() {
		writeJSON(w, files)
		return exitOK
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No recent exports.")
		return exitOK
	}
	for _, f := range files {
		fmt.Fprintln(w, f)
	}
	return exitOK
}
