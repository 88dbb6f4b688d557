package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

const (
	// DefaultOMDbURL is the public OMDb endpoint.
	DefaultOMDbURL = "http://www.omdbapi.com/"
	// DefaultDatabaseURL is the sqlite file used when no database is configured.
	DefaultDatabaseURL = "./data/cinemate.db"
)

// Config holds the configuration for the cinemate server and its dependencies.
type Config struct {
	// Listen is the address the cinemate server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// LogLevel is the default log level (debug, info, warn, error).
	// The --log-level flag takes precedence.
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// OMDb holds the configuration for the OMDb metadata API.
	OMDb *OMDbConfig `yaml:"omdb" mapstructure:"omdb"`
	// Server holds HTTP server tuning.
	Server *ServerConfig `yaml:"server" mapstructure:"server"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// URL is the database connection string.
	// sqlite paths (optionally prefixed with sqlite:// or file:) and postgres:// URLs are supported.
	URL string `yaml:"url" mapstructure:"url"`
}

// OMDbConfig holds the configuration for the OMDb API.
type OMDbConfig struct {
	// URL is the base URL of the OMDb API.
	URL string `yaml:"url" mapstructure:"url"`
	// APIKey is the API key for the OMDb API. Metadata enrichment is disabled without it.
	APIKey string `yaml:"api_key" mapstructure:"api_key"`
	// Timeout bounds every outbound OMDb request.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	// Gzip enables gzip compression of responses.
	Gzip bool `yaml:"gzip" mapstructure:"gzip"`
	// TrustedProxies is the list of proxies gin trusts for client IP resolution.
	TrustedProxies []string `yaml:"trusted_proxies" mapstructure:"trusted_proxies"`
	// CORSOrigin is sent as Access-Control-Allow-Origin. Empty disables CORS headers.
	CORSOrigin string `yaml:"cors_origin" mapstructure:"cors_origin"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults and env vars are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	bindEnv(v)
	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("CINEMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.cinemate")
		v.AddConfigPath("/etc/cinemate")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		log.Debug("No config file found, using defaults and environment")
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:5000")
	v.SetDefault("log_level", "info")

	v.SetDefault("database.url", DefaultDatabaseURL)

	v.SetDefault("omdb.url", DefaultOMDbURL)
	v.SetDefault("omdb.api_key", "")
	v.SetDefault("omdb.timeout", "10s")

	v.SetDefault("server.gzip", true)
	v.SetDefault("server.trusted_proxies", []string{"127.0.0.1"})
	v.SetDefault("server.cors_origin", "*")
}

// DATABASE_URL and OMDB_API_KEY are the names the service has always been deployed with,
// so they are accepted next to the prefixed variants.
func bindEnv(v *viper.Viper) {
	v.MustBindEnv("database.url", "CINEMATE_DATABASE_URL", "DATABASE_URL")
	v.MustBindEnv("omdb.api_key", "CINEMATE_OMDB_API_KEY", "OMDB_API_KEY")
}

func sanitizeConfig(c *Config) {
	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.OMDb == nil {
		c.OMDb = &OMDbConfig{}
	}
	if c.Server == nil {
		c.Server = &ServerConfig{}
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Database.URL = strings.TrimSpace(c.Database.URL)
	c.OMDb.APIKey = strings.TrimSpace(c.OMDb.APIKey)
	c.OMDb.URL = strings.TrimSpace(c.OMDb.URL)
	c.Server.CORSOrigin = strings.TrimSpace(c.Server.CORSOrigin)
	if c.OMDb.URL == "" {
		c.OMDb.URL = DefaultOMDbURL
	}
	if c.Database.URL == "" {
		c.Database.URL = DefaultDatabaseURL
	}
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing cinemate config")
	}

	if c.Listen == "" {
		return fmt.Errorf("listen address is required")
	}

	u, err := url.Parse(c.OMDb.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid OMDb URL %q", c.OMDb.URL)
	}

	if c.OMDb.Timeout <= 0 {
		return fmt.Errorf("OMDb timeout must be greater than 0")
	}

	if c.OMDb.APIKey == "" {
		log.Warn("No OMDb API key configured, search and metadata enrichment will not work")
	}

	return nil
}
