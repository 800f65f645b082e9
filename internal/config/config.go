package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Training TrainingConfig `mapstructure:"training"`
	CLI      CLIConfig      `mapstructure:"cli"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type TrainingConfig struct {
	VocabSize int  `mapstructure:"vocab_size"`
	Progress  bool `mapstructure:"progress"`
}

type CLIConfig struct {
	Color bool `mapstructure:"color"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	File    string `mapstructure:"file"`
	Console bool   `mapstructure:"console"`
}

// DefaultConfig returns configuration with default values
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	bpeDir := filepath.Join(home, ".bytebpe")

	return &Config{
		Training: TrainingConfig{
			VocabSize: 320,
			Progress:  true,
		},
		CLI: CLIConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			File:    filepath.Join(bpeDir, "bytebpe.log"),
			Console: false,
		},
	}
}

// Load loads configuration from file, environment, and defaults
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	// Config file setup
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}

		v.AddConfigPath(filepath.Join(home, ".bytebpe"))
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("config")
	}

	// Environment variables
	v.SetEnvPrefix("BYTEBPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// Config file not found is okay, use defaults
	}

	// Unmarshal into struct
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Expand paths
	cfg.ExpandPaths()

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Training.VocabSize < 1 {
		return errors.New("training.vocab_size must be positive")
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// ExpandPaths expands ~ and environment variables in paths
func (c *Config) ExpandPaths() {
	c.Logging.File = expandPath(c.Logging.File)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("training.vocab_size", cfg.Training.VocabSize)
	v.SetDefault("training.progress", cfg.Training.Progress)

	v.SetDefault("cli.color", cfg.CLI.Color)

	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.console", cfg.Logging.Console)
}
