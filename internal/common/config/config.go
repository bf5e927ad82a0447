// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	Server   ServerConfig   `mapstructure:"server"`
	Sessions SessionsConfig `mapstructure:"sessions"`
	LoadTest LoadTestConfig `mapstructure:"loadtest"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig configures the standalone mock server.
// Seed selects the fixture data set: "basic" (diner, franchisee, admin)
// or "directory" (the fifteen-user admin directory).
type ServerConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	MetricsPort     int    `mapstructure:"metrics_port"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	Seed            string `mapstructure:"seed"`
}

// Addr returns the listen address for the mock API.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MetricsAddr returns the listen address for /metrics.
func (s ServerConfig) MetricsAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.MetricsPort)
}

// SessionsConfig selects the session store backend.
// Backend is "memory" or "redis"; Redis settings are ignored for memory.
type SessionsConfig struct {
	Backend string      `mapstructure:"backend"`
	Redis   RedisConfig `mapstructure:"redis"`
	TTL     int         `mapstructure:"ttl"` // milliseconds, 0 = no expiry
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoadTestConfig describes the scripted session-replay scenario.
type LoadTestConfig struct {
	SiteURL      string        `mapstructure:"site_url"`
	ServiceURL   string        `mapstructure:"service_url"`
	FactoryURL   string        `mapstructure:"factory_url"`
	Email        string        `mapstructure:"email"`
	Password     string        `mapstructure:"password"`
	GracefulStop int           `mapstructure:"graceful_stop"` // milliseconds
	Stages       []StageConfig `mapstructure:"stages"`
}

// StageConfig is one ramp stage: reach Target virtual users over Duration.
type StageConfig struct {
	Target   int `mapstructure:"target"`
	Duration int `mapstructure:"duration"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
