package main

import (
	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/server/endpoints"
)

var serverURL string

var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Commands that call the running server",
	Long: `API commands call the running docaudit server via HTTP.

These commands require a running server (docaudit serve).
Use --server to specify a custom server URL.

Examples:
  docaudit api health                    # Check server health
  docaudit api analyses upload doc.pdf   # Upload and analyze a document
  docaudit api analyses list             # List completed analyses
  docaudit api analyses get <id>         # Get a specific analysis`,
}

var analysesCmd = &cobra.Command{
	Use:   "analyses",
	Short: "Analysis management commands",
}

// getServerURL returns the server URL at runtime (after flag parsing).
func getServerURL() string {
	return serverURL
}

func init() {
	// Add --server flag to api command (persistent so all subcommands inherit it)
	apiCmd.PersistentFlags().StringVar(
		&serverURL, "server", "http://localhost:8080", "Server URL",
	)

	// Health endpoints at top level of api
	apiCmd.AddCommand((&endpoints.HealthEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.ReadyEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.VersionEndpoint{}).Command(getServerURL))
	apiCmd.AddCommand((&endpoints.SwaggerEndpoint{}).Command(getServerURL))

	// Analyses as subcommand group
	for _, ep := range endpoints.AnalysisCommands() {
		analysesCmd.AddCommand(ep.Command(getServerURL))
	}

	apiCmd.AddCommand(analysesCmd)
	rootCmd.AddCommand(apiCmd)
}
