package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wyawin/docaudit/internal/config"
	"github.com/wyawin/docaudit/internal/home"
	"github.com/wyawin/docaudit/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the docaudit server",
	Long: `Start the docaudit HTTP server.

Analyses are persisted under the home directory, so reports and their
annotated overlays survive restarts.

The server provides:
  - /health        - Basic server health check
  - /ready         - Readiness check (includes analysis store)
  - /api/analyses  - Upload, list, and fetch analyses

Examples:
  docaudit serve                    # Start on default port 8080
  docaudit serve --port 3000        # Start on custom port
  docaudit serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Load config with hot reload
		cfgMgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		cfgMgr.WatchConfig()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfgMgr.Get().SlogLevel(),
		}))
		cfgMgr.OnChange(func(c *config.Config) {
			logger.Info("configuration reloaded", "log_level", c.Log.Level)
		})

		// Get home directory
		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		host := serveHost
		if host == "" {
			host = cfgMgr.Get().Server.Host
		}
		port := servePort
		if port == "" {
			port = cfgMgr.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			Home:          h,
			ConfigManager: cfgMgr,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		// Start server (blocks until shutdown)
		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Host to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "Port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
