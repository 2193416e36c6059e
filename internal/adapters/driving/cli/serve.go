package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/groundchat/internal/adapters/driven/watch"
	"github.com/custodia-labs/groundchat/internal/adapters/driving/httpapi"
	"github.com/custodia-labs/groundchat/internal/core/ports/driven"
	"github.com/custodia-labs/groundchat/internal/logger"
)

// pingTimeout bounds the startup reachability check.
const pingTimeout = 30 * time.Second

// ServeConfig holds the extra dependencies the serve command needs
// beyond the shared services.
type ServeConfig struct {
	// Grounding is pinged before the server accepts traffic, so bad
	// credentials fail at startup instead of on the first upload.
	Grounding driven.GroundingStore

	// Prompts is reloaded when a template file in PromptDir changes.
	Prompts driven.PromptStore

	// PromptDir is the directory watched for template edits.
	// Empty disables the watcher.
	PromptDir string
}

// serveConfig holds the current serve configuration.
var serveConfig *ServeConfig

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server for the browser frontend.

The server exposes upload, chat and collection endpoints under /api
and keeps running until interrupted.`,
	RunE: runServe,
}

// Flags for the serve command. Zero values defer to the config file.
var (
	serveHost string
	servePort int
)

// SetServeConfig sets the configuration for the serve command.
func SetServeConfig(config *ServeConfig) {
	serveConfig = config
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen address (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if documentService == nil || chatService == nil || collectionService == nil {
		return errors.New("SAP AI Core is not configured, run 'groundchat configure' first")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	host := settings.Server.Host
	if serveHost != "" {
		host = serveHost
	}
	port := settings.Server.Port
	if servePort != 0 {
		port = servePort
	}

	if serveConfig != nil && serveConfig.Grounding != nil {
		pingCtx, cancel := context.WithTimeout(cmd.Context(), pingTimeout)
		err := serveConfig.Grounding.Ping(pingCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("grounding service unreachable: %w", err)
		}
		logger.Debug("grounding service reachable")
	}

	if serveConfig != nil && serveConfig.Prompts != nil && serveConfig.PromptDir != "" {
		watcher := watch.NewPromptWatcher(serveConfig.PromptDir, serveConfig.Prompts)
		if err := watcher.Watch(cmd.Context()); err != nil {
			// Template edits just won't hot-reload; not fatal.
			logger.Warn("prompt watcher not started: %v", err)
		} else {
			defer watcher.Close() //nolint:errcheck // Shutdown path
		}
	}

	server, err := httpapi.NewServer(httpapi.Config{
		Host:        host,
		Port:        port,
		CORSOrigins: settings.Server.CORSOrigins,
		Version:     version,
	}, httpapi.Services{
		Documents:   documentService,
		Chat:        chatService,
		Collections: collectionService,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	cmd.Printf("groundchat API listening on http://%s\n", server.Addr())
	cmd.Println("Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
	case <-cmd.Context().Done():
	}

	cmd.Println("\nShutting down...")
	if err := server.Stop(); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	return nil
}
