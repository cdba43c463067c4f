package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
// All knobs have development-friendly defaults; a desktop install typically
// ships without any .env at all.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Storage
	DataDir      string `mapstructure:"DATA_DIR"`      // database + exported PDFs live here
	DatabaseFile string `mapstructure:"DATABASE_FILE"` // file name inside DataDir
	ExportDir    string `mapstructure:"EXPORT_DIR"`    // invoice PDF output; default <DataDir>/invoices

	// UI shell
	UIMode string `mapstructure:"UI_MODE"` // window | browser | none
	WebDir string `mapstructure:"WEB_DIR"` // static UI bundle; served at / when set

	// Business
	Locale          string `mapstructure:"LOCALE"`
	Currency        string `mapstructure:"CURRENCY"`
	CompanyName     string `mapstructure:"COMPANY_NAME"`
	CompanyAddress  string `mapstructure:"COMPANY_ADDRESS"`
	ChequeAlertDays int    `mapstructure:"CHEQUE_ALERT_DAYS"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", 8720)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("DATA_DIR", defaultDataDir())
	viper.SetDefault("DATABASE_FILE", "ledgerdesk.db")
	viper.SetDefault("EXPORT_DIR", "")
	viper.SetDefault("UI_MODE", "window")
	viper.SetDefault("WEB_DIR", "")
	viper.SetDefault("LOCALE", "en")
	viper.SetDefault("CURRENCY", "USD")
	viper.SetDefault("COMPANY_NAME", "")
	viper.SetDefault("COMPANY_ADDRESS", "")
	viper.SetDefault("CHEQUE_ALERT_DAYS", 7)

	// Optional .env for local development; missing file is not an error
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.ExportDir == "" {
		cfg.ExportDir = filepath.Join(cfg.DataDir, "invoices")
	}
	return cfg, nil
}

// DatabasePath returns the absolute path of the SQLite file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "ledgerdesk")
}
