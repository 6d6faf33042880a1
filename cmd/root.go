// ABOUTME: Root command for the resume-builder CLI
// ABOUTME: Handles global flags and configuration, and launches the TUI by default

package cmd

import (
	"os"
	"strings"

	"github.com/markalston/resume-builder/internal/config"
	"github.com/markalston/resume-builder/internal/logger"
	"github.com/spf13/cobra"
)

var (
	apiURL     string
	jsonOutput bool
	showErrors bool
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "resume-builder",
	Short: "Generate résumés from your GitHub projects",
	Long: `resume-builder signs in with GitHub through the résumé service, generates
résumés tailored to a target role from your public projects, and exports them.

Run without a subcommand to open the interactive interface.

Environment Variables:
  RESUME_API_URL        Backend API URL (default: ` + config.DefaultAPIURL + `)
  RESUME_CONFIG_DIR     Session and log directory (default: ~/.config/resume-builder)
  RESUME_CALLBACK_ADDR  Sign-in redirect listener (default: ` + config.DefaultCallbackAddr + `)
  RESUME_SHOW_ERRORS    Show load failures instead of empty views
  RESUME_EXPORT_DIR     Where exports are written (default: current directory)
  CHROME_PATH           Chrome/Chromium binary used for PDF output
  LOG_LEVEL, LOG_FORMAT Diagnostic logging on stderr`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(os.Stderr)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(false)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides RESUME_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().BoolVar(&showErrors, "show-errors", false, "Show load failures instead of empty views")
}

// loadConfig reads the environment and applies flag overrides
func loadConfig() *config.Config {
	cfg := config.Load()
	if apiURL != "" {
		cfg.APIURL = strings.TrimRight(apiURL, "/")
	}
	if showErrors {
		cfg.ShowErrors = true
	}
	return cfg
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	return loadConfig().APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}
