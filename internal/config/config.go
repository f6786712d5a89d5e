package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	AuthModeReal            = "real"
	AuthModeDemo            = "demo"
	AuthModeOfflineFallback = "offline_fallback"
)

const (
	SessionBackendFile   = "file"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

const (
	PriceFallbackNone       = "none"
	PriceFallbackEmpty      = "empty"
	PriceFallbackSynthesize = "synthesize"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Backend    BackendConfig    `yaml:"backend"`
	Auth       AuthConfig       `yaml:"auth"`
	Session    SessionConfig    `yaml:"session"`
	Redis      RedisConfig      `yaml:"redis"`
	Prices     PricesConfig     `yaml:"prices"`
	Analytics  AnalyticsConfig  `yaml:"analytics"`
	Proxy      ProxyConfig      `yaml:"proxy"`
	Logging    LoggingConfig    `yaml:"logging"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Google     GoogleConfig     `yaml:"google"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// BackendConfig points the resource clients at the REST backend.
// BaseURL is what the clients call (usually the proxy or the backend itself);
// Upstream is where the proxy forwards to.
type BackendConfig struct {
	BaseURL        string `yaml:"base_url"`
	Upstream       string `yaml:"upstream"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

type AuthConfig struct {
	Mode string `yaml:"mode"`
}

type SessionConfig struct {
	Backend        string `yaml:"backend"`
	Path           string `yaml:"path"`
	RedisKeyPrefix string `yaml:"redis_key_prefix"`
	TTLHours       int    `yaml:"ttl_hours"`
}

func (s SessionConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type PricesConfig struct {
	Fallback string `yaml:"fallback"`
}

type AnalyticsConfig struct {
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`
}

type ProxyConfig struct {
	Listen    string               `yaml:"listen"`
	Prefix    string               `yaml:"prefix"`
	RateLimit ProxyRateLimitConfig `yaml:"rate_limit"`
}

type ProxyRateLimitConfig struct {
	RPS   float64 `yaml:"rps"`
	Burst int     `yaml:"burst"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
}

type GoogleConfig struct {
	CredentialsFile string `yaml:"credentials_file"`
}

// Load reads .env (if present), then the YAML file at configPath with
// environment variables expanded, then applies env overrides and defaults.
// An empty configPath yields a config built from defaults and env only.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}

		expanded := []byte(os.ExpandEnv(string(data)))
		if err := yaml.Unmarshal(expanded, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv("CLEANADMIN_BASE_URL")); v != "" {
		c.Backend.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CLEANADMIN_UPSTREAM")); v != "" {
		c.Backend.Upstream = v
	}
	if v := strings.TrimSpace(os.Getenv("CLEANADMIN_AUTH_MODE")); v != "" {
		c.Auth.Mode = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "cleanadmin"
	}
	if c.Backend.TimeoutSeconds == 0 {
		c.Backend.TimeoutSeconds = 15
	}
	if c.Auth.Mode == "" {
		c.Auth.Mode = AuthModeReal
	}
	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendFile
	}
	if c.Session.Path == "" {
		switch c.Session.Backend {
		case SessionBackendFile:
			c.Session.Path = defaultSessionPath("session.json")
		case SessionBackendSQLite:
			c.Session.Path = defaultSessionPath("session.db")
		}
	}
	if c.Session.RedisKeyPrefix == "" {
		c.Session.RedisKeyPrefix = "cleanadmin:session"
	}
	if c.Prices.Fallback == "" {
		c.Prices.Fallback = PriceFallbackNone
	}
	if c.Proxy.Listen == "" {
		c.Proxy.Listen = ":3001"
	}
	if c.Proxy.Prefix == "" {
		c.Proxy.Prefix = "/api"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

func defaultSessionPath(name string) string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return name
	}
	return dir + string(os.PathSeparator) + "cleanadmin" + string(os.PathSeparator) + name
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend.base_url is required")
	}
	if err := validateURL(c.Backend.BaseURL); err != nil {
		return fmt.Errorf("backend.base_url: %w", err)
	}
	if c.Backend.Upstream != "" {
		if err := validateURL(c.Backend.Upstream); err != nil {
			return fmt.Errorf("backend.upstream: %w", err)
		}
	}

	switch c.Auth.Mode {
	case AuthModeReal, AuthModeDemo, AuthModeOfflineFallback:
	default:
		return fmt.Errorf("unknown auth.mode %q", c.Auth.Mode)
	}

	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendSQLite:
		if c.Session.Path == "" {
			return fmt.Errorf("session.backend=%s requires session.path", c.Session.Backend)
		}
	case SessionBackendRedis:
		if c.Redis.Address == "" {
			return errors.New("session.backend=redis requires redis.address")
		}
	case SessionBackendMemory:
	default:
		return fmt.Errorf("unknown session.backend %q", c.Session.Backend)
	}

	switch c.Prices.Fallback {
	case PriceFallbackNone, PriceFallbackEmpty, PriceFallbackSynthesize:
	default:
		return fmt.Errorf("unknown prices.fallback %q", c.Prices.Fallback)
	}

	if c.Analytics.CacheTTLSeconds < 0 {
		return errors.New("analytics.cache_ttl_seconds must not be negative")
	}

	return nil
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
