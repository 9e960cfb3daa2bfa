// ABOUTME: Whoami command showing the authenticated account
// ABOUTME: Hydrates the session so expired access tokens are refreshed first

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

	"github.com/jambosec/jambosec-cli/internal/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current account",
	Long: `Show the account the CLI is signed in as.

Exit codes:
  0 - Signed in
  1 - Not signed in
  2 - Error (connectivity)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runWhoami(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

// runWhoami resolves the session and returns exit code
func runWhoami(ctx context.Context, w io.Writer) int {
	_, control := newController()
	control.Hydrate(ctx)

	switch control.Status() {
	case session.StatusAuthenticated:
		acct := control.Account()
		if IsJSONOutput() {
			data, _ := json.MarshalIndent(acct, "", "  ")
			fmt.Fprintln(w, string(data))
		} else {
			fmt.Fprintf(w, "%s <%s>\n", acct.DisplayName, acct.Email)
		}
		return 0

	case session.StatusError:
		fmt.Fprintf(w, "Error: %v\n", control.Err())
		return 2

	default:
		fmt.Fprintln(w, "Not signed in. Run 'jambosec login' first.")
		return 1
	}
}
