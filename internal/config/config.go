package config

import (
	"os"
	"path/filepath"
	"strconv"

	"cogdash/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server  ServerConfig
	Data    DataConfig
	Columns ColumnConfig
	Page    PageConfig
	Metrics MetricsConfig
	Log     LogConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// DataConfig describes the single source file read on every render
type DataConfig struct {
	File  string
	Sheet string // .xlsx only
	Table string // SQLite only
}

// ColumnConfig holds the case-sensitive source column names
type ColumnConfig struct {
	Gender        string
	Memory        string
	Concentration string
}

// PageConfig holds the static text shown on the dashboard
type PageConfig struct {
	Title          string
	FooterMarkdown string
}

// MetricsConfig toggles the prometheus endpoint
type MetricsConfig struct {
	Enabled bool
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string
}

const (
	DefaultDataFile      = "CopiaAnalisis.csv"
	DefaultTitle         = "Concentration and memory difficulty between two genders"
	defaultSheet         = ""
	defaultTable         = "respondents"
	defaultGenderColumn  = "Genero"
	defaultMemoryColumn  = "Dificultadrecordando"
	defaultConcentration = "Dificultadconcetracion"
)

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server:  *loadServerConfig(),
		Data:    *loadDataConfig(),
		Columns: *loadColumnConfig(),
		Metrics: MetricsConfig{Enabled: getEnvBoolOrDefault("METRICS_ENABLED", true)},
		Log:     LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
	}
	config.Page = *loadPageConfig(config.Data.File)

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "debug"),
	}
}

func loadDataConfig() *DataConfig {
	return &DataConfig{
		File:  getEnvOrDefault("DATA_FILE", DefaultDataFile),
		Sheet: getEnvOrDefault("DATA_SHEET", defaultSheet),
		Table: getEnvOrDefault("DATA_TABLE", defaultTable),
	}
}

func loadColumnConfig() *ColumnConfig {
	return &ColumnConfig{
		Gender:        getEnvOrDefault("GENDER_COLUMN", defaultGenderColumn),
		Memory:        getEnvOrDefault("MEMORY_COLUMN", defaultMemoryColumn),
		Concentration: getEnvOrDefault("CONCENTRATION_COLUMN", defaultConcentration),
	}
}

func loadPageConfig(dataFile string) *PageConfig {
	return &PageConfig{
		Title:          getEnvOrDefault("PAGE_TITLE", DefaultTitle),
		FooterMarkdown: getEnvOrDefault("FOOTER_MARKDOWN", DefaultFooter(dataFile)),
	}
}

// DefaultFooter is the footer line shown when FOOTER_MARKDOWN is unset
func DefaultFooter(dataFile string) string {
	return "Dashboard generated with cogdash and data from `" + filepath.Base(dataFile) + "`."
}

func validateConfig(config *Config) error {
	if config.Data.File == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Server.Port == "" {
		return errors.ConfigInvalid("PORT is required")
	}
	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return errors.ConfigInvalid("PORT must be numeric, got " + config.Server.Port)
	}

	cols := config.Columns
	seen := map[string]bool{}
	for _, name := range []string{cols.Gender, cols.Memory, cols.Concentration} {
		if name == "" {
			return errors.ConfigInvalid("column names must not be empty")
		}
		if seen[name] {
			return errors.ConfigInvalid("column " + name + " is configured more than once")
		}
		seen[name] = true
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
