package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Review store backends.
const (
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Reviews   ReviewsConfig   `mapstructure:"reviews"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	PayFast   PayFastConfig   `mapstructure:"payfast"`
	Breaker   BreakerConfig   `mapstructure:"breaker"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Log       LogConfig       `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type ReviewsConfig struct {
	Backend  string `mapstructure:"backend"`   // file, redis, postgres
	FilePath string `mapstructure:"file_path"` // snapshot location for the file backend
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// PayFastConfig holds merchant credentials and the onsite process endpoint.
type PayFastConfig struct {
	MerchantID  string        `mapstructure:"merchant_id"`
	MerchantKey string        `mapstructure:"merchant_key"`
	Passphrase  string        `mapstructure:"passphrase"` // empty = unsigned passphrase suffix
	ProcessURL  string        `mapstructure:"process_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

// UsePassphrase reports whether signatures carry the passphrase suffix.
func (p PayFastConfig) UsePassphrase() bool {
	return p.Passphrase != ""
}

// BreakerConfig configures the circuit breaker around gateway calls.
type BreakerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	MaxRequests  uint32        `mapstructure:"max_requests"`
	Interval     time.Duration `mapstructure:"interval"`
	Timeout      time.Duration `mapstructure:"timeout"`
	FailureRatio float64       `mapstructure:"failure_ratio"`
	MinRequests  uint32        `mapstructure:"min_requests"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig enables per-client limits on write endpoints. Counters
// live in Redis, so enabling it requires a reachable Redis.
type RateLimitConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: SHOP_.
// Nested keys use underscore: SHOP_PAYFAST_MERCHANT_ID, SHOP_REVIEWS_BACKEND, etc.
// The listening port also honours the conventional PORT variable.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("reviews.backend", BackendFile)
	v.SetDefault("reviews.file_path", "reviews.json")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "shopfront")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("payfast.merchant_id", "")
	v.SetDefault("payfast.merchant_key", "")
	v.SetDefault("payfast.passphrase", "")
	v.SetDefault("payfast.process_url", "https://www.payfast.co.za/onsite/process")
	v.SetDefault("payfast.timeout", "30s")
	v.SetDefault("breaker.enabled", true)
	v.SetDefault("breaker.max_requests", 1)
	v.SetDefault("breaker.interval", "60s")
	v.SetDefault("breaker.timeout", "30s")
	v.SetDefault("breaker.failure_ratio", 0.5)
	v.SetDefault("breaker.min_requests", 5)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("ratelimit.enabled", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: SHOP_PAYFAST_MERCHANT_ID -> payfast.merchant_id
	v.SetEnvPrefix("SHOP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", "SHOP_SERVER_PORT", "PORT"); err != nil {
		return nil, fmt.Errorf("binding port env: %w", err)
	}

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// NeedsRedis reports whether any enabled component stores data in Redis.
func (c *Config) NeedsRedis() bool {
	return c.Reviews.Backend == BackendRedis || c.RateLimit.Enabled
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	switch c.Reviews.Backend {
	case BackendFile:
		if c.Reviews.FilePath == "" {
			errs = append(errs, errors.New("reviews.file_path is required for the file backend"))
		}
	case BackendRedis, BackendPostgres:
	default:
		errs = append(errs, fmt.Errorf("unknown reviews.backend %q", c.Reviews.Backend))
	}
	if c.PayFast.MerchantID == "" {
		errs = append(errs, errors.New("payfast.merchant_id is required"))
	}
	if c.PayFast.MerchantKey == "" {
		errs = append(errs, errors.New("payfast.merchant_key is required"))
	}
	if c.PayFast.ProcessURL == "" {
		errs = append(errs, errors.New("payfast.process_url is required"))
	}

	return errors.Join(errs...)
}
