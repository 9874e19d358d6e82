package config

import (
	"crypto/rand"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ssargent/basekit/pkg/base16"
	"github.com/ssargent/basekit/pkg/byteorder"
	"github.com/ssargent/basekit/pkg/codec"
)

// Config represents the basekit configuration
type Config struct {
	DataDir  string   `yaml:"data_dir"`
	Port     int      `yaml:"port"`
	Bind     string   `yaml:"bind"`
	Security Security `yaml:"security"`
	Logging  Logging  `yaml:"logging"`
	Codec    Codec    `yaml:"codec"`
}

// Security contains security-related configuration
type Security struct {
	APIKey       string `yaml:"api_key"`
	MaxBlobBytes int    `yaml:"max_blob_bytes"`
}

// Logging contains logging configuration
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Codec holds the defaults used when a command or request does not name an
// encoding or byte order.
type Codec struct {
	Encoding  string `yaml:"encoding"`
	ByteOrder string `yaml:"byte_order"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		DataDir: "./data",
		Port:    8080,
		Bind:    "127.0.0.1",
		Security: Security{
			MaxBlobBytes: 1 << 20,
		},
		Logging: Logging{
			Level:  "info",
			Format: "console",
		},
		Codec: Codec{
			Encoding:  "base64",
			ByteOrder: "be",
		},
	}
}

// Validate checks that the configured names resolve.
func (c *Config) Validate() error {
	if _, err := codec.Lookup(c.Codec.Encoding); err != nil {
		return fmt.Errorf("invalid codec.encoding: %w", err)
	}
	if _, err := byteorder.Parse(c.Codec.ByteOrder); err != nil {
		return fmt.Errorf("invalid codec.byte_order: %w", err)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	if c.Security.MaxBlobBytes < 0 {
		return fmt.Errorf("invalid security.max_blob_bytes: %d", c.Security.MaxBlobBytes)
	}
	return nil
}

// LoadConfig loads configuration from the specified path. Fields missing from
// the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	if !filepath.IsAbs(configPath) {
		absPath, err := filepath.Abs(configPath)
		if err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		configPath = absPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// SaveConfig saves the configuration to the specified path with secure permissions
func SaveConfig(config *Config, configPath string) error {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with secure permissions (0600)
	if err := os.WriteFile(configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GenerateSecureKey generates a cryptographically secure random key rendered
// as lowercase hex
func GenerateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate secure key: %w", err)
	}
	return base16.EncodeToString(bytes), nil
}

// BootstrapConfig creates a new configuration with a generated API key and
// writes it to configPath
func BootstrapConfig(configPath string, dataDir string) (*Config, error) {
	config := DefaultConfig()
	if dataDir != "" {
		config.DataDir = dataDir
	}

	apiKey, err := GenerateSecureKey(32) // 256 bits
	if err != nil {
		return nil, fmt.Errorf("failed to generate API key: %w", err)
	}
	config.Security.APIKey = apiKey

	if err := SaveConfig(config, configPath); err != nil {
		return nil, fmt.Errorf("failed to save bootstrap config: %w", err)
	}

	return config, nil
}

// GetDefaultConfigPath returns the default configuration path for the current platform
func GetDefaultConfigPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "./basekit.yaml"
	}

	// For Linux/macOS, use ~/.config/basekit/config.yaml
	return filepath.Join(homeDir, ".config", "basekit", "config.yaml")
}

// ConfigExists checks if a configuration file exists
func ConfigExists(configPath string) bool {
	_, err := os.Stat(configPath)
	return !os.IsNotExist(err)
}
