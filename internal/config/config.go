package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
// Following 12-factor app principles, environment variables win over the
// optional YAML file named by STOREFRONT_CONFIG, which wins over defaults.
type Config struct {
	Server   ServerConfig  `yaml:"server"`
	API      APIConfig     `yaml:"api"`
	Menu     MenuConfig    `yaml:"menu"`
	CORS     CORSConfig    `yaml:"cors"`
	MockAPI  MockAPIConfig `yaml:"mock_api"`
	LogLevel string        `yaml:"log_level"`
}

type ServerConfig struct {
	Port            string `yaml:"port"`
	Host            string `yaml:"host"`
	ReadTimeout     int    `yaml:"read_timeout"`
	WriteTimeout    int    `yaml:"write_timeout"`
	ShutdownTimeout int    `yaml:"shutdown_timeout"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"` // seconds
}

type MenuConfig struct {
	PageSize   int           `yaml:"page_size"`
	SessionTTL time.Duration `yaml:"session_ttl"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// MockAPIConfig configures the in-memory API used for local development
type MockAPIConfig struct {
	Port  string `yaml:"port"`
	Token string `yaml:"token"`
}

// Default returns the configuration used when nothing is set
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			Host:            "0.0.0.0",
			ReadTimeout:     15,
			WriteTimeout:    15,
			ShutdownTimeout: 30,
		},
		API: APIConfig{
			BaseURL: "http://localhost:8081",
			Timeout: 10,
		},
		Menu: MenuConfig{
			PageSize:   12,
			SessionTTL: 30 * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		MockAPI: MockAPIConfig{
			Port: "8081",
		},
		LogLevel: "info",
	}
}

// Load reads configuration from the STOREFRONT_CONFIG file, if any, and
// environment variables
func Load() (*Config, error) {
	return LoadFile(os.Getenv("STOREFRONT_CONFIG"))
}

// LoadFile is Load with an explicit YAML file path; an empty path skips it
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Port = getEnv("PORT", c.Server.Port)
	c.Server.Host = getEnv("HOST", c.Server.Host)
	c.Server.ReadTimeout = getEnvAsInt("READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = getEnvAsInt("WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = getEnvAsInt("SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.API.BaseURL = getEnv("API_BASE_URL", c.API.BaseURL)
	c.API.Timeout = getEnvAsInt("API_TIMEOUT", c.API.Timeout)
	c.Menu.PageSize = getEnvAsInt("MENU_PAGE_SIZE", c.Menu.PageSize)
	c.Menu.SessionTTL = getEnvAsDuration("SESSION_TTL", c.Menu.SessionTTL)
	c.CORS.AllowedOrigins = getEnvAsSlice("CORS_ALLOWED_ORIGINS", c.CORS.AllowedOrigins)
	c.MockAPI.Port = getEnv("MOCK_API_PORT", c.MockAPI.Port)
	c.MockAPI.Token = getEnv("MOCK_API_TOKEN", c.MockAPI.Token)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("API_BASE_URL must be an absolute http(s) URL, got %q", c.API.BaseURL)
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("API_TIMEOUT must be positive")
	}

	if c.Menu.PageSize <= 0 {
		return fmt.Errorf("MENU_PAGE_SIZE must be positive")
	}

	if c.Menu.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Addr is the storefront listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
