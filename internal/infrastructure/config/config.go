package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers understood by the slot store factory.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Practice  PracticeConfig  `mapstructure:"practice"`
	Translate TranslateConfig `mapstructure:"translate"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	GRPCPort    int    `mapstructure:"grpc_port"`
	HTTPPort    int    `mapstructure:"http_port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

// StorageConfig selects where the state document lives.
type StorageConfig struct {
	Driver    string `mapstructure:"driver"`
	Path      string `mapstructure:"path"`
	DSN       string `mapstructure:"dsn"`
	RedisAddr string `mapstructure:"redis_addr"`
	RedisDB   int    `mapstructure:"redis_db"`
	KeyPrefix string `mapstructure:"key_prefix"`
	LogSQL    bool   `mapstructure:"log_sql"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PracticeConfig tunes the practice session.
type PracticeConfig struct {
	AdvanceDelay time.Duration `mapstructure:"advance_delay"`
	Timezone     string        `mapstructure:"timezone"`
}

// TranslateConfig configures the remote translation provider.
type TranslateConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Rate     float64       `mapstructure:"rate"`
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Set default values
	setDefaults()

	// Enable reading from environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read configuration file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "localhost")
	viper.SetDefault("server.grpc_port", 9090)
	viper.SetDefault("server.http_port", 8080)
	viper.SetDefault("server.cors_origins", "*")

	// Storage defaults
	viper.SetDefault("storage.driver", DriverFile)
	viper.SetDefault("storage.path", "./data")
	viper.SetDefault("storage.dsn", "")
	viper.SetDefault("storage.redis_addr", "localhost:6379")
	viper.SetDefault("storage.redis_db", 0)
	viper.SetDefault("storage.key_prefix", "lingua:")
	viper.SetDefault("storage.log_sql", false)

	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "json")

	// Practice defaults
	viper.SetDefault("practice.advance_delay", "900ms")
	viper.SetDefault("practice.timezone", "Local")

	// Translate defaults
	viper.SetDefault("translate.enabled", true)
	viper.SetDefault("translate.endpoint", "https://api.mymemory.translated.net/get")
	viper.SetDefault("translate.timeout", "4s")
	viper.SetDefault("translate.rate", 1.0)
}

// Validate rejects values the factories cannot work with.
func (c *Config) Validate() error {
	switch c.StorageDriver() {
	case DriverMemory, DriverFile, DriverSQLite, DriverPostgres, DriverRedis:
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	if c.StorageDriver() == DriverPostgres && c.Storage.DSN == "" {
		return fmt.Errorf("storage.dsn is required for the postgres driver")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// StorageDriver returns the normalized driver name.
func (c *Config) StorageDriver() string {
	d := strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	if d == "sqlite" {
		return DriverSQLite
	}
	return d
}

// Location resolves practice.timezone; empty and "Local" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Practice.Timezone)
	if tz == "" || tz == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load practice.timezone %q: %w", tz, err)
	}
	return loc, nil
}

// AllowedOrigins splits server.cors_origins.
func (c *Config) AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
