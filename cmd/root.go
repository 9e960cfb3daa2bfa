// ABOUTME: Root command for the jambosec CLI
// ABOUTME: Handles global flags, .env loading, and shared client construction

package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/jambosec/jambosec-cli/internal/api"
	"github.com/jambosec/jambosec-cli/internal/authstore"
	"github.com/jambosec/jambosec-cli/internal/i18n"
	"github.com/jambosec/jambosec-cli/internal/session"
	"github.com/jambosec/jambosec-cli/internal/settings"
)

var (
	apiURL     string
	jsonOutput bool
	langFlag   string
)

const defaultAPIURL = "http://localhost:8000"

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "jambosec",
	Short: "CLI for the JamboSec cybersecurity assistant",
	Long: `jambosec is a command-line interface for the JamboSec AI cybersecurity
assistant. It supports one-shot questions, an interactive chat TUI, and
knowledge-base browsing in English and Swahili.

Environment Variables:
  JAMBOSEC_API_URL  Backend API URL (default: http://localhost:8000)`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Local development config; missing file is fine
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Backend API URL (overrides JAMBOSEC_API_URL)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "Response language: en or sw (overrides saved preference)")
}

// GetAPIURL returns the API URL from flag, env, or default (in priority order)
func GetAPIURL() string {
	if apiURL != "" {
		return apiURL
	}
	if envURL := os.Getenv("JAMBOSEC_API_URL"); envURL != "" {
		return envURL
	}
	return defaultAPIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return jsonOutput
}

// GetLang resolves the language from flag or saved preference.
func GetLang() i18n.Lang {
	if langFlag != "" {
		return i18n.Normalize(langFlag)
	}
	return i18n.Normalize(newSettings().Locale())
}

// newStore builds the token store over the default storage tiers.
func newStore() *authstore.Store {
	return authstore.New(authstore.DefaultDurableDir(), authstore.DefaultSessionDir())
}

// newClient builds an API client wired to the token store.
func newClient() *api.Client {
	return api.New(GetAPIURL(), newStore())
}

// newController builds a session controller sharing one store with the client.
func newController() (*api.Client, *session.Controller) {
	store := newStore()
	client := api.New(GetAPIURL(), store)
	return client, session.New(client, store)
}

// newSettings builds the preferences manager over the default config dir.
func newSettings() *settings.Manager {
	return settings.New(settings.DefaultConfigDir())
}
