// ABOUTME: Signup command registering a new account
// ABOUTME: Signs the user in immediately after successful registration

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
	signupEmail    string
	signupUsername string
	signupPassword string
	signupFirst    string
	signupLast     string
	signupRemember bool
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a JamboSec account",
	Long: `Register a new account and sign in.

Exit codes:
  0 - Account created and signed in
  1 - Registration failed
  2 - Error (connectivity, invalid input)`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSignup(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(signupCmd)
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Email address")
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Username")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (prompted when omitted)")
	signupCmd.Flags().StringVar(&signupFirst, "first-name", "", "First name")
	signupCmd.Flags().StringVar(&signupLast, "last-name", "", "Last name")
	signupCmd.Flags().BoolVar(&signupRemember, "remember", true, "Keep the session across reboots")
}

// runSignup executes the registration flow and returns exit code
func runSignup(ctx context.Context, w io.Writer) int {
	if signupEmail == "" || signupUsername == "" || signupPassword == "" {
		if err := promptSignup(); err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return 2
		}
	}

	_, control := newController()
	err := control.Signup(ctx, session.SignupParams{
		Username:  signupUsername,
		Email:     signupEmail,
		Password:  signupPassword,
		FirstName: signupFirst,
		LastName:  signupLast,
		Remember:  signupRemember,
	})
	if err != nil {
		fmt.Fprintf(w, "Signup failed: %v\n", err)
		return 1
	}

	acct := control.Account()
	fmt.Fprintf(w, "Welcome, %s\n", acct.DisplayName)
	return 0
}

// promptSignup fills in missing registration fields interactively
func promptSignup() error {
	var fields []huh.Field
	if signupEmail == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&signupEmail))
	}
	if signupUsername == "" {
		fields = append(fields, huh.NewInput().
			Title("Username").
			Value(&signupUsername))
	}
	if signupPassword == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&signupPassword))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
