// ABOUTME: Health command for the resume-builder CLI
// ABOUTME: Checks backend connectivity without needing a session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/markalston/resume-builder/internal/client"
	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the résumé service backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signalContext()
		defer cancel()

		exit(runHealth(ctx, os.Stdout))
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := client.New(url, nil)

	start := time.Now()
	err := c.Health(ctx)
	latency := time.Since(start)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return exitBackend
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, latency))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, latency))
	}
	return exitOK
}

// formatHealthHuman formats the health result for human readability
func formatHealthHuman(url string, latency time.Duration) string {
	return fmt.Sprintf(`Backend:  %s
Status:   ok
Latency:  %s`, url, latency.Round(time.Millisecond))
}

// formatHealthJSON formats the health result as JSON
func formatHealthJSON(url string, latency time.Duration) string {
	output := map[string]any{
		"backend":    url,
		"status":     "ok",
		"latency_ms": latency.Milliseconds(),
	}
	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
