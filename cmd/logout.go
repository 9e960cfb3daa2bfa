// ABOUTME: Logout command ending the current session
// ABOUTME: Clears stored tokens even when the backend call fails

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out of JamboSec",
	Long:  `End the current session and remove stored tokens from this machine.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogout(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

// runLogout ends the session and returns exit code
func runLogout(ctx context.Context, w io.Writer) int {
	_, control := newController()
	control.Logout(ctx)
	fmt.Fprintln(w, "Signed out")
	return 0
}
