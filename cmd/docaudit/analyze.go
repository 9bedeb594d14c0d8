package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/api"
	"github.com/wyawin/docaudit/internal/forensic"
)

var analyzeOutDir string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file.pdf>",
	Short: "Analyze a PDF locally without a server",
	Long: `Analyze a PDF document for signs of tampering.

The report prints to stdout in the configured output format. The two
annotated overlays are written next to the input file, or into the
directory given with --out-dir.

Examples:
  docaudit analyze contract.pdf
  docaudit analyze contract.pdf --out-dir /tmp -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
			return fmt.Errorf("%s is not a PDF", path)
		}

		doc, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelWarn,
		}))

		result, err := forensic.Analyze(logger, filepath.Base(path), doc)
		if err != nil {
			return err
		}

		outDir := analyzeOutDir
		if outDir == "" {
			outDir = filepath.Dir(path)
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		suspiciousPath := filepath.Join(outDir, base+".suspicious.pdf")
		if err := os.WriteFile(suspiciousPath, result.SuspiciousOverlay, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", suspiciousPath, err)
		}
		fontsPath := filepath.Join(outDir, base+".fonts.pdf")
		if err := os.WriteFile(fontsPath, result.FontTypeOverlay, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", fontsPath, err)
		}

		fmt.Fprintf(os.Stderr, "Wrote %s\n", suspiciousPath)
		fmt.Fprintf(os.Stderr, "Wrote %s\n", fontsPath)

		return api.Output(result.Report)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeOutDir, "out-dir", "", "Directory for annotated overlays (default: next to input)")

	rootCmd.AddCommand(analyzeCmd)
}
