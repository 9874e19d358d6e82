/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/basekit/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with a generated API key",
	Long: `Create a basekit configuration file with default settings and a freshly
generated API key for the REST server.

Examples:
  basekit init
  basekit init --config ./basekit.yaml --data-dir ./data --force`,
	Args:        cobra.NoArgs,
	Annotations: map[string]string{skipConfigAnnotation: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		created, written, err := initializeConfig(configPath, dataDir, force)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if !written {
			fmt.Fprintf(out, "Configuration already exists at %s. Use --force to overwrite.\n", configPath)
			return nil
		}

		fmt.Fprintf(out, "✅ Wrote configuration to %s\n", configPath)
		fmt.Fprintf(out, "API key: %s\n", created.Security.APIKey)
		fmt.Fprintf(out, "Data directory: %s\n", created.DataDir)
		fmt.Fprintf(out, "\nStart the server with:\n  basekit serve --config %s\n", configPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "./data", "Data directory for the blob store")
	initCmd.Flags().Bool("force", false, "Overwrite an existing configuration")
}

// initializeConfig bootstraps a configuration at configPath. It reports false
// without touching the file when one exists and force is not set.
func initializeConfig(configPath, dataDir string, force bool) (*config.Config, bool, error) {
	if configPath == "" {
		return nil, false, fmt.Errorf("config path is required")
	}
	if config.ConfigExists(configPath) && !force {
		return nil, false, nil
	}

	created, err := config.BootstrapConfig(configPath, dataDir)
	if err != nil {
		return nil, false, err
	}
	return created, true, nil
}
