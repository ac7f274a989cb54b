// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultPostgresPort is the default PostgreSQL port.
	DefaultPostgresPort = 5432

	// DefaultMaxOpenConns is the default size of the database connection pool.
	DefaultMaxOpenConns = 25

	// DefaultMaxIdleConns is the default number of idle database connections.
	DefaultMaxIdleConns = 5

	// DefaultRedisPoolSize is the default Redis connection pool size.
	DefaultRedisPoolSize = 10

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28

	// DefaultBreakerMaxFailures is the number of consecutive publish failures
	// that opens the event breaker.
	DefaultBreakerMaxFailures = 5

	// DefaultBreakerHalfOpenSuccesses closes a half-open event breaker.
	DefaultBreakerHalfOpenSuccesses = 2
)

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Database  DatabaseConfig  `koanf:"database"  validate:"required"`
	Redis     RedisConfig     `koanf:"redis"`
	Events    EventsConfig    `koanf:"events"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
}

// AuthConfig contains authentication settings.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	WriteScope    string `koanf:"write_scope"    validate:"required_if=Enabled true"`
	RolesHeader   string `koanf:"roles_header"`
	ScopesHeader  string `koanf:"scopes_header"`
	SubjectHeader string `koanf:"subject_header"`
}

// Repository backends selectable with database.vendor.
const (
	VendorMemory   = "memory"
	VendorPostgres = "postgres"
	VendorSQLite   = "sqlite"
	VendorRedis    = "redis"
)

// DatabaseConfig selects and configures the repository backend.
type DatabaseConfig struct {
	Vendor          string        `koanf:"vendor"            validate:"required,oneof=memory postgres sqlite redis"`
	Host            string        `koanf:"host"              validate:"required_if=Vendor postgres"`
	Port            int           `koanf:"port"              validate:"omitempty,min=1,max=65535"`
	User            string        `koanf:"user"              validate:"required_if=Vendor postgres"`
	Password        string        `koanf:"password"          masq:"secret"`
	Name            string        `koanf:"name"              validate:"required_if=Vendor postgres"`
	SSLMode         string        `koanf:"ssl_mode"          validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
	Path            string        `koanf:"path"              validate:"required_if=Vendor sqlite"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
	LogQueries      bool          `koanf:"log_queries"`
	MaxOpenConns    int           `koanf:"max_open_conns"    validate:"omitempty,min=1"`
	MaxIdleConns    int           `koanf:"max_idle_conns"    validate:"omitempty,min=0"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
}

// DSN builds the PostgreSQL connection URL.
func (d *DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}

	return u.String()
}

// RedisConfig contains Redis client settings, used when database.vendor is redis.
type RedisConfig struct {
	URL          string        `koanf:"url"            validate:"omitempty,url" masq:"secret"`
	KeyPrefix    string        `koanf:"key_prefix"`
	PoolSize     int           `koanf:"pool_size"      validate:"omitempty,min=1"`
	MinIdleConns int           `koanf:"min_idle_conns" validate:"omitempty,min=0"`
	DialTimeout  time.Duration `koanf:"dial_timeout"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
}

// EventsConfig contains domain event publishing settings.
type EventsConfig struct {
	Enabled  bool     `koanf:"enabled"`
	Brokers  []string `koanf:"brokers"   validate:"required_if=Enabled true,omitempty,dive,hostname_port"`
	Topic    string   `koanf:"topic"     validate:"required_if=Enabled true"`
	ClientID string   `koanf:"client_id"`

	// DeliveryTimeout bounds how long a produced record may wait for
	// acknowledgement, retries included.
	DeliveryTimeout time.Duration `koanf:"delivery_timeout" validate:"min=0"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig guards the event publisher. Publishing fails fast while the
// breaker is open.
type BreakerConfig struct {
	MaxFailures       int           `koanf:"max_failures"        validate:"min=0"`
	OpenTimeout       time.Duration `koanf:"open_timeout"        validate:"min=0"`
	HalfOpenSuccesses int           `koanf:"half_open_successes" validate:"min=0"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        "clean-arch-ddd-template",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "clean-arch-ddd-template",
		"telemetry.sampling_rate": 1.0,

		"auth.enabled":        false,
		"auth.write_scope":    "examples:write",
		"auth.roles_header":   "X-User-Roles",
		"auth.scopes_header":  "X-User-Scopes",
		"auth.subject_header": "X-User-ID",

		"database.vendor":            VendorMemory,
		"database.host":              "localhost",
		"database.port":              DefaultPostgresPort,
		"database.user":              "postgres",
		"database.password":          "",
		"database.name":              "examples",
		"database.ssl_mode":          "disable",
		"database.path":              "./data/examples.db",
		"database.auto_migrate":      false,
		"database.log_queries":       false,
		"database.max_open_conns":    DefaultMaxOpenConns,
		"database.max_idle_conns":    DefaultMaxIdleConns,
		"database.conn_max_lifetime": "30m",

		"redis.url":            "redis://localhost:6379/0",
		"redis.key_prefix":     "examples",
		"redis.pool_size":      DefaultRedisPoolSize,
		"redis.min_idle_conns": 2,
		"redis.dial_timeout":   "5s",
		"redis.read_timeout":   "3s",
		"redis.write_timeout":  "3s",

		"events.enabled":   false,
		"events.brokers":   []string{"localhost:9092"},
		"events.topic":     "example-events",
		"events.client_id": "clean-arch-ddd-template",

		"events.delivery_timeout": "10s",

		"events.breaker.max_failures":        DefaultBreakerMaxFailures,
		"events.breaker.open_timeout":        "30s",
		"events.breaker.half_open_successes": DefaultBreakerHalfOpenSuccesses,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. Load environment variables with APP_ prefix
	known := k.Keys()

	err = k.Load(env.ProviderWithValue("APP_", ".", func(name, value string) (string, any) {
		key := envKey(known, name)
		if key == "events.brokers" {
			return key, strings.Split(value, ",")
		}

		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// envKey maps APP_DATABASE_SSL_MODE to database.ssl_mode by matching the
// variable against known keys, so keys containing underscores can be set.
// Unknown variables fall back to replacing every underscore with a dot.
func envKey(known []string, name string) string {
	flat := strings.ToLower(strings.TrimPrefix(name, "APP_"))

	for _, key := range known {
		if strings.ReplaceAll(key, ".", "_") == flat {
			return key
		}
	}

	return strings.ReplaceAll(flat, "_", ".")
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil // File doesn't exist, that's fine
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
