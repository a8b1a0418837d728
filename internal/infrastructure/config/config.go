package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Task    TaskConfig    `mapstructure:"task"`
	Storage StorageConfig `mapstructure:"storage"`
	Logger  LoggerConfig  `mapstructure:"logger"`
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// TaskConfig holds the task domain limits. MaxDescriptionLength is the hard
// bound a description may not exceed; DescriptionWarnLength is the soft
// threshold above which a non-blocking warning is produced.
type TaskConfig struct {
	MaxDescriptionLength  int `mapstructure:"max_description_length"`
	DescriptionWarnLength int `mapstructure:"description_warn_length"`
}

// StorageConfig holds the document store configuration
type StorageConfig struct {
	Driver          string `mapstructure:"driver"`
	Path            string `mapstructure:"path"`
	DocumentVersion string `mapstructure:"document_version"`
}

// LoggerConfig holds logging configuration
type LoggerConfig struct {
	Level    string `mapstructure:"level"`
	Format   string `mapstructure:"format"`
	Output   string `mapstructure:"output"`
	Filename string `mapstructure:"filename"`
}

// Load loads configuration from defaults, .env and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors)
	_ = godotenv.Load()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "todolite")
	viper.SetDefault("app.version", "1.0.0")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.debug", false)

	// Task defaults
	viper.SetDefault("task.max_description_length", 500)
	viper.SetDefault("task.description_warn_length", 400)

	// Storage defaults
	viper.SetDefault("storage.driver", "file")
	viper.SetDefault("storage.path", "todolite.json")
	viper.SetDefault("storage.document_version", "1.0")

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.format", "console")
	viper.SetDefault("logger.output", "stderr")
	viper.SetDefault("logger.filename", "")
}

func bindEnvVars() {
	// App
	viper.BindEnv("app.name", "APP_NAME")
	viper.BindEnv("app.version", "APP_VERSION")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("app.debug", "APP_DEBUG")

	// Task
	viper.BindEnv("task.max_description_length", "TASK_MAX_DESCRIPTION_LENGTH")
	viper.BindEnv("task.description_warn_length", "TASK_DESCRIPTION_WARN_LENGTH")

	// Storage
	viper.BindEnv("storage.driver", "STORAGE_DRIVER")
	viper.BindEnv("storage.path", "STORAGE_PATH")
	viper.BindEnv("storage.document_version", "STORAGE_DOCUMENT_VERSION")

	// Logger
	viper.BindEnv("logger.level", "LOG_LEVEL")
	viper.BindEnv("logger.format", "LOG_FORMAT")
	viper.BindEnv("logger.output", "LOG_OUTPUT")
	viper.BindEnv("logger.filename", "LOG_FILENAME")
}

func validateConfig(cfg *Config) error {
	switch cfg.Storage.Driver {
	case "file", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q (want file, sqlite or memory)", cfg.Storage.Driver)
	}

	if cfg.Storage.Driver != "memory" && cfg.Storage.Path == "" {
		return fmt.Errorf("storage path is required for the %s driver", cfg.Storage.Driver)
	}

	if cfg.Storage.DocumentVersion == "" {
		return fmt.Errorf("storage document version is required")
	}

	if cfg.Task.MaxDescriptionLength <= 0 {
		return fmt.Errorf("task max description length must be positive")
	}

	if cfg.Task.DescriptionWarnLength <= 0 || cfg.Task.DescriptionWarnLength >= cfg.Task.MaxDescriptionLength {
		return fmt.Errorf("task description warn length must be between 1 and the max length")
	}

	if cfg.Logger.Output == "file" && cfg.Logger.Filename == "" {
		return fmt.Errorf("logger filename is required when output is file")
	}

	return nil
}
