/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/basekit/pkg/api"
	"github.com/ssargent/basekit/pkg/config"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start the basekit REST API server. Settings come from the configuration
file and can be overridden with flags.

Examples:
  basekit serve
  basekit serve --port 9000 --bind 0.0.0.0 --api-key mysecretkey
  basekit serve --in-memory`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := *cfg
		flags := cmd.Flags()
		if flags.Changed("port") {
			settings.Port, _ = flags.GetInt("port")
		}
		if flags.Changed("bind") {
			settings.Bind, _ = flags.GetString("bind")
		}
		if flags.Changed("api-key") {
			settings.Security.APIKey, _ = flags.GetString("api-key")
		}
		if flags.Changed("data-dir") {
			settings.DataDir, _ = flags.GetString("data-dir")
		}
		inMemory, _ := flags.GetBool("in-memory")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, &settings, inMemory)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	serveCmd.Flags().String("bind", "127.0.0.1", "Address to bind to")
	serveCmd.Flags().String("api-key", "", "API key required in X-API-Key (empty disables authentication)")
	serveCmd.Flags().StringP("data-dir", "d", "./data", "Data directory for the blob store")
	serveCmd.Flags().Bool("in-memory", false, "Keep blobs in memory only")
}

// runServer opens the blob store and serves until ctx is done
func runServer(ctx context.Context, settings *config.Config, inMemory bool) error {
	if container == nil {
		return fmt.Errorf("dependency container not initialized")
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	dataDir := settings.DataDir
	if inMemory {
		dataDir = ""
	} else if err := os.MkdirAll(dataDir, 0750); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	store, err := container.GetStoreOpener().OpenStore(dataDir)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close blob store", zap.Error(err))
		}
	}()

	if settings.Security.APIKey == "" {
		logger.Warn("API key not set; authentication is disabled")
	}
	logger.Info("blob store opened", zap.String("data_dir", dataDir), zap.Bool("in_memory", inMemory))

	starter := container.GetServerFactory().CreateServerStarter()
	return starter.StartServer(ctx, store, serverConfig(settings), logger)
}

func serverConfig(settings *config.Config) api.ServerConfig {
	return api.ServerConfig{
		Bind:         settings.Bind,
		Port:         settings.Port,
		APIKey:       settings.Security.APIKey,
		MaxBlobBytes: settings.Security.MaxBlobBytes,
	}
}
