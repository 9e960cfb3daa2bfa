// ABOUTME: Login command authenticating against the backend
// ABOUTME: Prompts for missing credentials and persists tokens per the remember flag

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/session"
)

var (
	loginEmail    string
	loginPassword string
	loginRemember bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to JamboSec",
	Long: `Sign in with your email (or username) and password.

With --remember the session survives reboots; without it the tokens are
kept only for the current login session.

Exit codes:
  0 - Signed in
  1 - Authentication failed
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runLogin(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email or username")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password (prompted when omitted)")
	loginCmd.Flags().BoolVar(&loginRemember, "remember", true, "Keep the session across reboots")
}

// runLogin executes the login flow and returns exit code
func runLogin(ctx context.Context, w io.Writer) int {
	if loginEmail == "" || loginPassword == "" {
		if err := promptLogin(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	_, control := newController()
	err := control.Login(ctx, session.LoginParams{
		Login:    loginEmail,
		Password: loginPassword,
		Remember: loginRemember,
	})
	if err != nil {
		fmt.Fprintf(w, "Login failed: %v\n", err)
		return 1
	}

	acct := control.Account()
	fmt.Fprintf(w, "Signed in as %s\n", acct.DisplayName)
	return 0
}

// promptLogin fills in missing credentials interactively
func promptLogin() error {
	var fields []huh.Field
	if loginEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Email or username").
			Value(&loginEmail))
	}
	if loginPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&loginPassword))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
