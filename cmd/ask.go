// ABOUTME: Ask command for one-shot questions to the assistant
// ABOUTME: Prints the reply with sources and supports continuing a session

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/api"
)

var askSessionID string

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Long: `Ask JamboSec a single question and print the reply.

Pass --session to continue an existing conversation; otherwise the backend
starts a new one and its ID is printed so you can follow up.

Exit codes:
  0 - Answered
  1 - Not signed in or reply blocked
  2 - Error (connectivity, invalid input)`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		exitCode := runAsk(ctx, os.Stdout, strings.Join(args, " "))
		if exitCode != 0 {
			os.Exit(exitCode)
		}
	},
}

func init() {
	rootCmd.AddCommand(askCmd)
	askCmd.Flags().StringVar(&askSessionID, "session", "", "Continue an existing chat session")
}

// runAsk sends the question and returns exit code
func runAsk(ctx context.Context, w io.Writer, question string) int {
	question = strings.TrimSpace(question)
	if question == "" {
		fmt.Fprintln(w, "Error: question is empty")
		return 2
	}

	client := newClient()
	resp, err := client.Ask(ctx, api.AskPayload{
		Message:   question,
		Lang:      string(GetLang()),
		SessionID: askSessionID,
	})
	if err != nil {
		return reportAuthError(w, err)
	}

	if IsJSONOutput() {
		data, _ := json.MarshalIndent(resp, "", "  ")
		fmt.Fprintln(w, string(data))
	} else {
		fmt.Fprintln(w, formatAskHuman(resp))
	}

	if resp.Safety.Blocked {
		return 1
	}
	return 0
}

// formatAskHuman formats the reply for human readability
func formatAskHuman(resp *api.AskResponse) string {
	var sb strings.Builder
	sb.WriteString(resp.Reply)
	sb.WriteString("\n")

	if len(resp.Sources) > 0 {
		sb.WriteString("\nSources:\n")
		for _, s := range resp.Sources {
			sb.WriteString(fmt.Sprintf("  - %s\n", s.Title))
		}
	}

	sb.WriteString(fmt.Sprintf("\nSession: %s", resp.SessionID))
	return sb.String()
}
