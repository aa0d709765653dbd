// Package config loads CLI configuration from config files, environment
// variables and .env files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

var AppFs = afero.NewOsFs()

// Config holds the CLI configuration.
type Config struct {
	// Provider selects the backend: sqlite, postgres, mysql or widecolumn.
	Provider string
	// DatabaseURL is the connection string for SQL providers.
	DatabaseURL string
	// Hosts and Keyspace configure the wide-column provider.
	Hosts    []string
	Keyspace string
	// Consistency is the default wide-column consistency level name.
	Consistency string
	Verbose     bool
}

// Load reads configuration from .sqlbound.yaml (working directory, home
// directory, ~/.config/sqlbound), SQLBOUND_* environment variables, and
// .env/.env.local files.
func Load() (*Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	viper.SetConfigName(".sqlbound")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath(home)
	viper.AddConfigPath(filepath.Join(home, ".config", "sqlbound"))

	viper.SetEnvPrefix("SQLBOUND")
	viper.AutomaticEnv()

	viper.SetDefault("provider", "sqlite")
	viper.SetDefault("consistency", "QUORUM")
	viper.SetDefault("verbose", false)

	// Config file is optional.
	_ = viper.ReadInConfig()

	if _, err := AppFs.Stat(".env"); err == nil {
		_ = godotenv.Load()
	}
	if _, err := AppFs.Stat(".env.local"); err == nil {
		_ = godotenv.Overload(".env.local")
	}

	cfg := &Config{
		Provider:    viper.GetString("provider"),
		DatabaseURL: viper.GetString("database_url"),
		Hosts:       viper.GetStringSlice("hosts"),
		Keyspace:    viper.GetString("keyspace"),
		Consistency: viper.GetString("consistency"),
		Verbose:     viper.GetBool("verbose"),
	}

	// DATABASE_URL wins over the config file, matching common deployment
	// conventions.
	if url := os.Getenv("DATABASE_URL"); url != "" {
		cfg.DatabaseURL = url
	}
	if hosts := os.Getenv("SQLBOUND_HOSTS"); hosts != "" {
		cfg.Hosts = strings.Split(hosts, ",")
	}

	return cfg, nil
}

// Save writes the configuration to ~/.config/sqlbound/.sqlbound.yaml.
func Save(cfg *Config) error {
	viper.Set("provider", cfg.Provider)
	viper.Set("database_url", cfg.DatabaseURL)
	viper.Set("hosts", cfg.Hosts)
	viper.Set("keyspace", cfg.Keyspace)
	viper.Set("consistency", cfg.Consistency)
	viper.Set("verbose", cfg.Verbose)

	home, err := homedir.Dir()
	if err != nil {
		return err
	}

	configPath := filepath.Join(home, ".config", "sqlbound")
	if err := AppFs.MkdirAll(configPath, 0o755); err != nil {
		return err
	}

	return viper.WriteConfigAs(filepath.Join(configPath, ".sqlbound.yaml"))
}
