/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ssargent/basekit/pkg/config"
	"github.com/ssargent/basekit/pkg/di"
	"github.com/ssargent/basekit/pkg/logging"
)

var (
	container *di.Container

	// cfg and logger are populated before any subcommand runs.
	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// skipConfigAnnotation marks commands that run on defaults rather than
// the config file, such as init which may be repairing it.
const skipConfigAnnotation = "basekit/skip-config"

// SetContainer injects the dependency container
func SetContainer(c *di.Container) {
	container = c
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "basekit",
	Short: "basekit - RFC 4648 codecs and integer packing",
	Long: `basekit converts between raw bytes and their hex, base32 and base64
text forms, packs integers in little or big endian order, and can serve all
of it over a small REST API backed by a blob store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")

		loaded := config.DefaultConfig()
		if cmd.Annotations[skipConfigAnnotation] == "" {
			var err error
			if loaded, err = loadSettings(configPath); err != nil {
				return err
			}
		}
		if logLevel != "" {
			loaded.Logging.Level = logLevel
		}

		l, err := logging.New(loaded.Logging)
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		cfg, logger = loaded, l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", config.GetDefaultConfigPath(), "Path to the configuration file")
	rootCmd.PersistentFlags().String("log-level", "", "Override the configured log level")
}

// loadSettings reads the configuration at configPath, falling back to the
// defaults when no file exists yet.
func loadSettings(configPath string) (*config.Config, error) {
	if configPath == "" || !config.ConfigExists(configPath) {
		return config.DefaultConfig(), nil
	}
	loaded, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", configPath, err)
	}
	return loaded, nil
}
