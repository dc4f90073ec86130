package mta

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultStopsURL is the NYCT static GTFS archive holding stops.txt
const DefaultStopsURL = "http://web.mta.info/developers/data/nyct/subway/google_transit.zip"

// ServerConfig holds settings for the HTTP transport
type ServerConfig struct {
	Port int `yaml:"port" validate:"gt=0,lte=65535"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	File  string `yaml:"file"`
}

// Config holds configuration for the MTA client
// APIKey is optional; MTA feeds accept anonymous requests
type Config struct {
	APIKey               string            `yaml:"apiKey"`
	StopsPath            string            `yaml:"stopsPath" validate:"required"`
	Timezone             string            `yaml:"timezone" validate:"required"`
	TimeoutMS            int               `yaml:"timeoutMS" validate:"gt=0"`
	MaxConcurrentFetches int64             `yaml:"maxConcurrentFetches" validate:"gt=0"`
	Feeds                map[string]string `yaml:"feeds" validate:"dive,keys,required,endkeys,url"`
	Server               ServerConfig      `yaml:"server"`
	Log                  LogConfig         `yaml:"log"`
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		StopsPath:            DefaultStopsURL,
		Timezone:             "America/New_York",
		TimeoutMS:            30000,
		MaxConcurrentFetches: 4,
		Server:               ServerConfig{Port: 8080},
		Log:                  LogConfig{Level: "info"},
	}
}

// LoadConfig builds the configuration from defaults, an optional YAML file
// and the environment (including a .env file in the working directory).
// An empty path skips the YAML step.
func LoadConfig(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("MTA_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("MTA_STOPS_PATH"); v != "" {
		c.StopsPath = v
	}
	if v := os.Getenv("MTA_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("MTA_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil {
			c.TimeoutMS = ms
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.Log.File = v
	}
}

// Validate checks struct tags and that the timezone resolves
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location returns the time zone used to render arrival times
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Timeout returns the HTTP timeout for feed requests
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
