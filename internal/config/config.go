package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Project holds project-wide identity settings shared across the
// Java, Go and Python components of Rinna.
type Project struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	DataDir     string `mapstructure:"data_dir"`
}

// Server holds the HTTP server settings.
type Server struct {
	Address string `mapstructure:"address"`
	Debug   bool   `mapstructure:"debug"`
}

// DB holds the database connection settings.
type DB struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Storage describes the report file storage backend.
type Storage struct {
	Type     string `mapstructure:"type"`
	BasePath string `mapstructure:"basepath"`
	S3       S3     `mapstructure:"s3"`
}

// S3 holds settings for an S3-compatible storage backend.
type S3 struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// Logging holds the logging settings shared by the server and CLI.
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Dir    string `mapstructure:"dir"`
}

// Reports holds the report generation settings.
type Reports struct {
	TemplatesDir  string `mapstructure:"templates_dir"`
	OutputDir     string `mapstructure:"output_dir"`
	DefaultEngine string `mapstructure:"default_engine"`
}

// Diagrams holds the C4 diagram generation settings.
type Diagrams struct {
	OutputDir string `mapstructure:"output_dir"`
	Format    string `mapstructure:"format"`
}

// Config combines all configuration sections.
type Config struct {
	Project  Project  `mapstructure:"project"`
	Server   Server   `mapstructure:"server"`
	DB       DB       `mapstructure:"database"`
	Storage  Storage  `mapstructure:"storage"`
	Logging  Logging  `mapstructure:"logging"`
	Reports  Reports  `mapstructure:"reports"`
	Diagrams Diagrams `mapstructure:"diagrams"`
}

// Load reads the configuration with viper. Priority order: RINNA_
// environment variables, then the YAML config file, then coded
// defaults. A missing config file is not an error.
func Load() (Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".rinna", "config"))
	}

	viper.SetEnvPrefix("RINNA")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: environment variables and defaults apply.
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(cfg); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Get returns the value for a dotted configuration key, honoring the
// same env-over-file-over-default priority as Load. Used by the
// "rinna config" inspection command.
func Get(key string) interface{} {
	return viper.Get(key)
}

// IsSet reports whether a dotted key resolves to any value.
func IsSet(key string) bool {
	return viper.IsSet(key)
}

// AllSettings returns the fully merged configuration tree.
func AllSettings() map[string]interface{} {
	return viper.AllSettings()
}

func setDefaults() {
	home, _ := os.UserHomeDir()
	rinnaDir := filepath.Join(home, ".rinna")

	// Project defaults
	viper.SetDefault("project.name", "Rinna")
	viper.SetDefault("project.version", "1.0.0")
	viper.SetDefault("project.environment", "development")
	viper.SetDefault("project.data_dir", filepath.Join(rinnaDir, "data"))

	// Server defaults
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("server.debug", true)

	// Database defaults
	viper.SetDefault("database.driver", "sqlite")
	viper.SetDefault("database.dsn", filepath.Join(rinnaDir, "data", "reports.db"))

	// Storage defaults
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.basepath", filepath.Join(rinnaDir, "data", "reports"))
	viper.SetDefault("storage.s3.region", "us-east-1")
	viper.SetDefault("storage.s3.bucket", "rinna-reports")
	viper.SetDefault("storage.s3.endpoint", "")
	viper.SetDefault("storage.s3.access_key", "")
	viper.SetDefault("storage.s3.secret_key", "")

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.dir", filepath.Join(rinnaDir, "logs"))

	// Report defaults
	viper.SetDefault("reports.templates_dir", filepath.Join(rinnaDir, "templates"))
	viper.SetDefault("reports.output_dir", filepath.Join(rinnaDir, "data", "reports"))
	viper.SetDefault("reports.default_engine", "html")

	// Diagram defaults
	viper.SetDefault("diagrams.output_dir", filepath.Join(rinnaDir, "data", "diagrams"))
	viper.SetDefault("diagrams.format", "png")
}

func validateConfig(cfg Config) error {
	if cfg.Server.Address == "" {
		return fmt.Errorf("server address cannot be empty")
	}

	if cfg.DB.Driver != "sqlite" && cfg.DB.Driver != "postgres" {
		return fmt.Errorf("database driver must be 'sqlite' or 'postgres', got: %s", cfg.DB.Driver)
	}

	if cfg.DB.DSN == "" {
		return fmt.Errorf("database DSN cannot be empty")
	}

	if cfg.Storage.Type != "local" && cfg.Storage.Type != "s3" {
		return fmt.Errorf("storage type must be 'local' or 's3', got: %s", cfg.Storage.Type)
	}

	if cfg.Storage.Type == "local" && cfg.Storage.BasePath == "" {
		return fmt.Errorf("storage basepath cannot be empty for local storage")
	}

	if cfg.Storage.Type == "s3" {
		if cfg.Storage.S3.Region == "" {
			return fmt.Errorf("S3 region cannot be empty")
		}
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	isValidLevel := false
	for _, level := range validLogLevels {
		if strings.ToLower(cfg.Logging.Level) == level {
			isValidLevel = true
			break
		}
	}
	if !isValidLevel {
		return fmt.Errorf("invalid logging level: %s. Valid levels: %v", cfg.Logging.Level, validLogLevels)
	}

	return nil
}

// IsDevelopment returns true when the server runs in debug mode.
func (c Config) IsDevelopment() bool {
	return c.Server.Debug
}

// IsProduction returns true when the server runs outside debug mode.
func (c Config) IsProduction() bool {
	return !c.Server.Debug
}

// String returns a printable representation without sensitive values.
func (c Config) String() string {
	return fmt.Sprintf("Config{Project: %+v, Server: %+v, DB: {Driver: %s, DSN: [HIDDEN]}, Storage: {Type: %s}, Logging: %+v, Reports: %+v}",
		c.Project, c.Server, c.DB.Driver, c.Storage.Type, c.Logging, c.Reports)
}
