// ABOUTME: Launches the interactive terminal interface
// ABOUTME: Diagnostics go to debug.log because the UI owns the terminal

package cmd

import (
	"log/slog"
	"net/url"

	"github.com/markalston/resume-builder/internal/browser"
	"github.com/markalston/resume-builder/internal/export"
	"github.com/markalston/resume-builder/internal/recentfiles"
	"github.com/markalston/resume-builder/internal/session"
	"github.com/markalston/resume-builder/internal/tui"
	"github.com/markalston/resume-builder/internal/tui/debuglog"
	"github.com/spf13/cobra"
)

var tuiEphemeral bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open the interactive interface. This is also what running resume-builder
without a subcommand does.

With --ephemeral the session lives only for this run and nothing is written
to the config directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(tuiEphemeral)
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(&tuiEphemeral, "ephemeral", false, "Keep the session in memory only")
}

func runTUI(ephemeral bool) error {
	cfg := loadConfig()

	var store session.Store
	if ephemeral {
		store = session.NewMemoryStore()
	} else {
		store = session.NewFileStore(cfg.ConfigDir)
		if err := debuglog.Init(cfg.ConfigDir); err != nil {
			return err
		}
		defer debuglog.Close()
	}
	// Request logging from the transport must not draw over the UI
	slog.SetDefault(debuglog.Logger())

	e := newEnvWithStore(cfg, store)
	var writer recentfiles.FileWriter = newFileWriter(e)
	if ephemeral {
		writer = &export.Exporter{Printer: export.NewChromePrinter(cfg.ChromePath)}
	}

	return tui.Run(tui.Deps{
		Store:        store,
		Service:      e.svc,
		Exporter:     writer,
		LoginURL:     cfg.LoginURL(),
		APIHost:      apiHost(cfg.APIURL),
		ExportDir:    cfg.ExportDir,
		ShowErrors:   cfg.ShowErrors,
		CallbackAddr: cfg.CallbackAddr,
		OpenBrowser:  browser.Open,
	})
}

// apiHost is the host part of the API URL, for the footer
func apiHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
