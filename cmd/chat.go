// ABOUTME: Chat command launching the interactive TUI
// ABOUTME: Initializes the debug logger before handing control to bubbletea

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/settings"
	"github.com/jambosec/jambosec-cli/internal/tui"
	"github.com/jambosec/jambosec-cli/internal/tui/debuglog"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the interactive chat",
	Long: `Open the full-screen interactive interface with chat, knowledge base,
and account surfaces. Press ctrl+g to switch between English and Swahili.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := debuglog.Init(settings.DefaultConfigDir()); err == nil {
			defer debuglog.Close()
		}

		prefs := newSettings()
		anon := prefs.EnsureAnonymousSession()
		debuglog.Log("starting TUI against %s (client %s)", GetAPIURL(), anon.SessionID)

		client, control := newController()
		if err := tui.Run(client, control, prefs); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
