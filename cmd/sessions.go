// ABOUTME: Session management commands: list, show, rename, delete, feedback
// ABOUTME: Operates on the authenticated user's chat history

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

var (
	feedbackMessageID string
	feedbackComment   string
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Manage chat sessions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List chat sessions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsList(ctx, os.Stdout)
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show a session's messages",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsShow(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsRenameCmd = &cobra.Command{
	Use:   "rename <session-id> <title>",
	Short: "Rename a session",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsRename(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session and its messages",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsDelete(ctx, os.Stdout, args[0])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

var sessionsFeedbackCmd = &cobra.Command{
	Use:   "feedback <session-id> <helpful|not_helpful>",
	Short: "Rate an assistant reply",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runSessionsFeedback(ctx, os.Stdout, args[0], args[1])
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsRenameCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	sessionsCmd.AddCommand(sessionsFeedbackCmd)

	sessionsFeedbackCmd.Flags().StringVar(&feedbackMessageID, "message", "", "Message ID the rating applies to")
	sessionsFeedbackCmd.Flags().StringVar(&feedbackComment, "comment", "", "Optional comment")
}

// runSessionsList prints the session list and returns exit code
func runSessionsList(ctx context.Context, w io.Writer) int {
	client := newClient()
	sessions, err := client.ListSessions(ctx)
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(sessions, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if len(sessions) == 0 {
		fmt.Fprintln(w, "No chat sessions")
		return 0
	}
	for _, s := range sessions {
		title := s.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Fprintf(w, "%s  %s  %s\n", s.ID, s.UpdatedAt, title)
	}
	return 0
}

// runSessionsShow prints a session transcript and returns exit code
func runSessionsShow(ctx context.Context, w io.Writer, sessionID string) int {
	client := newClient()
	messages, err := client.ListMessages(ctx, sessionID)
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(messages, "", "  ")
		fmt.Fprintln(w, string(data))
		return 0
	}

	if session, err := client.GetSession(ctx, sessionID); err == nil && session.Title != "" {
		fmt.Fprintf(w, "%s\n\n", session.Title)
	}

	for _, m := range messages {
		role := "You"
		if m.Role == api.RoleAssistant {
			role = "JamboSec"
		}
		fmt.Fprintf(w, "[%s] %s\n%s\n\n", m.CreatedAt, role, m.Content)
	}
	return 0
}

// runSessionsRename retitles a session and returns exit code
func runSessionsRename(ctx context.Context, w io.Writer, sessionID, title string) int {
	client := newClient()
	if _, err := client.RenameSession(ctx, sessionID, title); err != nil {
		return reportAuthError(w, err)
	}
	fmt.Fprintf(w, "Renamed %s to %q\n", sessionID, title)
	return 0
}

// runSessionsDelete removes a session and returns exit code
func runSessionsDelete(ctx context.Context, w io.Writer, sessionID string) int {
	client := newClient()
	if err := client.DeleteSession(ctx, sessionID); err != nil {
		return reportAuthError(w, err)
	}
	fmt.Fprintf(w, "Deleted %s\n", sessionID)
	return 0
}

// runSessionsFeedback submits a rating and returns exit code
func runSessionsFeedback(ctx context.Context, w io.Writer, sessionID, rating string) int {
	if rating != "helpful" && rating != "not_helpful" {
		fmt.Fprintln(w, "Error: rating must be 'helpful' or 'not_helpful'")
		return 2
	}

	client := newClient()
	err := client.SubmitFeedback(ctx, api.ChatFeedbackPayload{
		SessionID: sessionID,
		MessageID: feedbackMessageID,
		Rating:    rating,
		Comment:   feedbackComment,
	})
	if err != nil {
		return reportAuthError(w, err)
	}
	fmt.Fprintln(w, "Feedback recorded")
	return 0
}
