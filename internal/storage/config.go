package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// userConfigFile is the name of the user configuration file (sibling to .footy/).
	userConfigFile = ".footyconfig.yaml"
	// envFile is an optional dotenv file (sibling to .footy/).
	envFile = ".env"

	// Default configuration values
	DefaultAPIBaseURL     = "https://v3.football.api-sports.io"
	DefaultMaxSeason      = 2023
	DefaultRequestTimeout = 20 * time.Second
	DefaultMaxRetries     = 3
	DefaultCacheTTL       = 5 * time.Minute
	DefaultBackend        = BackendFile
	DefaultRedisAddr      = "127.0.0.1:6379"
	DefaultRedisPrefix    = "footy:"
	DefaultLogLevel       = "warn"
	DefaultUsername       = "admin"
	DefaultSessionSecret  = "footy-local-session"
	DefaultSessionTTL     = 24 * time.Hour
)

// Backend names accepted by the backend setting.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
)

// Config represents user configuration from .footyconfig.yaml and FOOTY_* variables.
// The file is user-managed and never written by footy.
type Config struct {
	// APIBaseURL is the API-Football endpoint.
	APIBaseURL string `yaml:"api_base_url" validate:"required,url"`
	// APIKey is sent in the x-apisports-key header.
	APIKey string `yaml:"api_key"`
	// MaxSeason caps the season used for standings (the free plan stops at 2023).
	MaxSeason int `yaml:"max_season" validate:"gte=1990,lte=2100"`

	RequestTimeout time.Duration `yaml:"request_timeout" validate:"gt=0"`
	MaxRetries     int           `yaml:"max_retries" validate:"gte=0,lte=10"`
	CacheTTL       time.Duration `yaml:"cache_ttl" validate:"gte=0"`

	// Backend selects where favorites and the session are kept.
	Backend       string `yaml:"backend" validate:"oneof=file redis"`
	RedisAddr     string `yaml:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db" validate:"gte=0"`
	RedisPrefix   string `yaml:"redis_prefix"`

	LogLevel string `yaml:"log_level" validate:"oneof=debug info warn error"`

	// Username and PasswordHash are the only accepted credentials.
	// An empty PasswordHash accepts the built-in default password.
	Username      string        `yaml:"username" validate:"required"`
	PasswordHash  string        `yaml:"password_hash"`
	SessionSecret string        `yaml:"session_secret" validate:"required"`
	SessionTTL    time.Duration `yaml:"session_ttl" validate:"gt=0"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		MaxSeason:      DefaultMaxSeason,
		RequestTimeout: DefaultRequestTimeout,
		MaxRetries:     DefaultMaxRetries,
		CacheTTL:       DefaultCacheTTL,
		Backend:        DefaultBackend,
		RedisAddr:      DefaultRedisAddr,
		RedisPrefix:    DefaultRedisPrefix,
		LogLevel:       DefaultLogLevel,
		Username:       DefaultUsername,
		SessionSecret:  DefaultSessionSecret,
		SessionTTL:     DefaultSessionTTL,
	}
}

var (
	validate        = validator.New(validator.WithRequiredStructEnabled())
	configFieldType = reflect.TypeOf(Config{})
)

// LoadConfig loads .footyconfig.yaml if it exists, otherwise starts from defaults.
// An optional .env file is loaded next to it, then FOOTY_* environment
// variables override file values. The result is validated.
func (s *Storage) LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(s.ConfigPath())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read %s: %w", userConfigFile, err)
	}
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", userConfigFile, err)
		}
	}

	if err := godotenv.Load(filepath.Join(s.root, envFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	if err := applyEnv(cfg, os.LookupEnv); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints and reports the first offending setting.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid %s in %s: failed %q check", yamlName(fe.StructField()), userConfigFile, fe.Tag())
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ConfigPath returns the path to the user config file.
func (s *Storage) ConfigPath() string {
	return filepath.Join(s.root, userConfigFile)
}

type lookupFunc func(string) (string, bool)

func applyEnv(cfg *Config, lookup lookupFunc) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("FOOTY_API_KEY", &cfg.APIKey)
	str("FOOTY_API_BASE_URL", &cfg.APIBaseURL)
	str("FOOTY_BACKEND", &cfg.Backend)
	str("FOOTY_REDIS_ADDR", &cfg.RedisAddr)
	str("FOOTY_REDIS_PASSWORD", &cfg.RedisPassword)
	str("FOOTY_LOG_LEVEL", &cfg.LogLevel)

	if v, ok := lookup("FOOTY_REDIS_DB"); ok && v != "" {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid FOOTY_REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	cfg.Backend = strings.ToLower(cfg.Backend)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	return nil
}

// yamlName returns the yaml key for a Config field name.
func yamlName(field string) string {
	if f, ok := configFieldType.FieldByName(field); ok {
		if tag := strings.Split(f.Tag.Get("yaml"), ",")[0]; tag != "" {
			return tag
		}
	}
	return field
}
