// ABOUTME: Health command for the jambosec CLI
// ABOUTME: Checks backend connectivity and service status

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/api"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend connectivity",
	Long:  `Check connectivity to the JamboSec backend and verify service status.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runHealth(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

// runHealth executes the health check and returns exit code
func runHealth(ctx context.Context, w io.Writer) int {
	url := GetAPIURL()
	c := newClient()

	resp, err := c.Health(ctx)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	if IsJSONOutput() {
		fmt.Fprintln(w, formatHealthJSON(url, resp))
	} else {
		fmt.Fprintln(w, formatHealthHuman(url, resp))
	}

	if resp.Status != "ok" && resp.Status != "healthy" {
		return 1
	}
	return 0
}

// formatHealthHuman formats health response for human readability
func formatHealthHuman(url string, resp *api.HealthResponse) string {
	out := fmt.Sprintf("Backend:  %s\nStatus:   %s", url, resp.Status)
	if resp.Version != "" {
		out += fmt.Sprintf("\nVersion:  %s", resp.Version)
	}
	return out
}

// formatHealthJSON formats health response as JSON
func formatHealthJSON(url string, resp *api.HealthResponse) string {
	output := map[string]interface{}{
		"backend": url,
		"status":  resp.Status,
	}
	if resp.Version != "" {
		output["version"] = resp.Version
	}

	data, _ := json.MarshalIndent(output, "", "  ")
	return string(data)
}
