// ABOUTME: Account commands: stats, profile update, password change, deletion
// ABOUTME: All subcommands require an authenticated session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/api"
)

var (
	updateUsername  string
	updateEmail     string
	updateFirstName string
	updateLastName  string
	deleteConfirmed bool
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage your JamboSec account",
}

var accountStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show usage statistics",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountStats(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update profile fields",
	Long:  `Update profile fields. Only the flags you pass are changed.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountUpdate(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountPasswordCmd = &cobra.Command{
	Use:   "change-password",
	Short: "Change the account password",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountPassword(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var accountDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Permanently delete the account",
	Long:  `Permanently delete the account and all its data. Requires --yes.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAccountDelete(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(accountCmd)
	accountCmd.AddCommand(accountStatsCmd)
	accountCmd.AddCommand(accountUpdateCmd)
	accountCmd.AddCommand(accountPasswordCmd)
	accountCmd.AddCommand(accountDeleteCmd)

	accountUpdateCmd.Flags().StringVar(&updateUsername, "username", "", "New username")
	accountUpdateCmd.Flags().StringVar(&updateEmail, "email", "", "New email")
	accountUpdateCmd.Flags().StringVar(&updateFirstName, "first-name", "", "New first name")
	accountUpdateCmd.Flags().StringVar(&updateLastName, "last-name", "", "New last name")

	accountDeleteCmd.Flags().BoolVar(&deleteConfirmed, "yes", false, "Confirm permanent deletion")
}

// runAccountStats fetches usage statistics and returns exit code
func runAccountStats(ctx context.Context, w io.Writer) int {
	client := newClient()
	stats, err := client.Stats(ctx)
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	fmt.Fprintf(w, "Conversations:  %d\n", stats.Chat.TotalSessions)
	fmt.Fprintf(w, "Messages:       %d\n", stats.Chat.TotalMessages)
	fmt.Fprintf(w, "Feedback given: %d (%d helpful)\n", stats.Feedback.Total, stats.Feedback.Helpful)
	return 0
}

// runAccountUpdate patches the profile and returns exit code
func runAccountUpdate(ctx context.Context, w io.Writer) int {
	payload := api.UpdateProfilePayload{
		Username:  updateUsername,
		Email:     updateEmail,
		FirstName: updateFirstName,
		LastName:  updateLastName,
	}
	if payload == (api.UpdateProfilePayload{}) {
		fmt.Fprintln(w, "Error: nothing to update. Pass at least one field flag.")
		return 2
	}

	client := newClient()
	acct, err := client.UpdateProfile(ctx, payload)
	if err != nil {
		return reportAuthError(w, err)
	}

	fmt.Fprintf(w, "Profile updated: %s <%s>\n", acct.DisplayName, acct.Email)
	return 0
}

// runAccountPassword prompts for passwords and returns exit code
func runAccountPassword(ctx context.Context, w io.Writer) int {
	var oldPassword, newPassword string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Current password").
			EchoMode(huh.EchoModePassword).
			Value(&oldPassword),
		huh.NewInput().
			Title("New password").
			EchoMode(huh.EchoModePassword).
			Value(&newPassword).
			Validate(func(s string) error {
				if len(s) < 8 {
					return fmt.Errorf("password must be at least 8 characters")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return 2
	}

	client := newClient()
	if err := client.ChangePassword(ctx, oldPassword, newPassword); err != nil {
		return reportAuthError(w, err)
	}

	fmt.Fprintln(w, "Password changed")
	return 0
}

// runAccountDelete removes the account and returns exit code
func runAccountDelete(ctx context.Context, w io.Writer) int {
	if !deleteConfirmed {
		fmt.Fprintln(w, "Refusing to delete without --yes")
		return 2
	}

	client := newClient()
	if err := client.DeleteAccount(ctx); err != nil {
		return reportAuthError(w, err)
	}

	// Local tokens are useless now
	newStore().Clear()

	fmt.Fprintln(w, "Account deleted")
	return 0
}

// reportAuthError prints an error, distinguishing missing authentication
func reportAuthError(w io.Writer, err error) int {
	if apiErr, ok := err.(*api.Error); ok && apiErr.Status == 401 {
		fmt.Fprintln(w, "Not signed in. Run 'jambosec login' first.")
		return 1
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return 2
}
