// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like SERVER_PORT
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// Environment-specific overlay, ignored if not present.
	viper.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = viper.MergeInConfig()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if godotenv.Load(path) == nil {
				return
			}
		}
	}
}

// Find project root by looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// applyDefaults sets default values for optional configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "pizza-mock"
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4600
	}
	if cfg.Server.MetricsPort == 0 {
		cfg.Server.MetricsPort = 4601
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 5000
	}
	if cfg.Server.Seed == "" {
		cfg.Server.Seed = "basic"
	}

	if cfg.Sessions.Backend == "" {
		cfg.Sessions.Backend = "memory"
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.LoadTest.Email == "" {
		cfg.LoadTest.Email = "d@jwt.com"
	}
	if cfg.LoadTest.Password == "" {
		cfg.LoadTest.Password = "diner"
	}
	if cfg.LoadTest.GracefulStop == 0 {
		cfg.LoadTest.GracefulStop = 30000
	}
	if len(cfg.LoadTest.Stages) == 0 {
		cfg.LoadTest.Stages = []StageConfig{
			{Target: 5, Duration: 30000},
			{Target: 15, Duration: 60000},
			{Target: 10, Duration: 30000},
			{Target: 0, Duration: 30000},
		}
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if cfg.Sessions.Backend != "memory" && cfg.Sessions.Backend != "redis" {
		return fmt.Errorf("sessions.backend must be memory or redis, got %q", cfg.Sessions.Backend)
	}
	if cfg.Server.Seed != "basic" && cfg.Server.Seed != "directory" {
		return fmt.Errorf("server.seed must be basic or directory, got %q", cfg.Server.Seed)
	}
	if cfg.Sessions.Backend == "redis" && cfg.Sessions.Redis.Address == "" {
		return fmt.Errorf("sessions.redis.address is required for the redis backend")
	}
	for i, stage := range cfg.LoadTest.Stages {
		if stage.Target < 0 {
			return fmt.Errorf("loadtest.stages[%d].target must be >= 0", i)
		}
		if stage.Duration <= 0 {
			return fmt.Errorf("loadtest.stages[%d].duration must be > 0", i)
		}
	}
	return nil
}

// GetDuration converts milliseconds from config to time.Duration.
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
