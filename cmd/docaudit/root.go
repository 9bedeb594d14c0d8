package main

import (
	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/version"
)

var (
	cfgFile      string
	homeDir      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "docaudit",
	Short: "Document tampering analysis for PDF files",
	Long: `docaudit analyzes PDF documents for signs of tampering by examining
the consistency of their text layer.

The analysis covers:
  - Font family consistency within headers, subheaders, and body text
  - Font size variance within each text context
  - Spacing anomalies between adjacent text runs

Each analysis produces a scored report and two annotated copies of the
document: one highlighting suspicious regions, one color-coding every
font family in use.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.docaudit/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVar(
		&homeDir, "home", "", "docaudit home directory (default: ~/.docaudit)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "yaml", "output format: yaml or json",
	)

	// Set output format before any command runs
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		api.SetOutputFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
}
