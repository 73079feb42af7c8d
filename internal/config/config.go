package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the console.
type Config struct {
	AppEnv      string            `yaml:"app_env"`
	Server      ServerConfig      `yaml:"server"`
	HelpdeskAPI HelpdeskAPIConfig `yaml:"helpdesk_api"`
	Billing     BillingConfig     `yaml:"billing"`
	Session     SessionConfig     `yaml:"session"`
	Redis       RedisConfig       `yaml:"redis"`
	Database    DatabaseConfig    `yaml:"database"`
	Logging     LoggingConfig     `yaml:"logging"`
	Security    SecurityConfig    `yaml:"security"`
	Domain      DomainRuleConfig  `yaml:"domain_rules"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port                   int    `yaml:"port"`
	Host                   string `yaml:"host"`
	PublicBaseURL          string `yaml:"public_base_url"`
	ReadTimeoutSeconds     int    `yaml:"read_timeout_seconds"`
	WriteTimeoutSeconds    int    `yaml:"write_timeout_seconds"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

// GetHost returns the listen host. Containers listen on all interfaces.
func (c ServerConfig) GetHost() string {
	if host := os.Getenv("SERVER_HOST"); host != "" {
		return host
	}
	return c.Host
}

// Addr is host:port for the listener.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.GetHost(), c.Port)
}

// ReadTimeout is the request read timeout.
func (c ServerConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

// WriteTimeout is the response write timeout.
func (c ServerConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

// ShutdownTimeout bounds graceful shutdown.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// HelpdeskAPIConfig holds the helpdesk REST API connection settings
type HelpdeskAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	// ReadRetries is how many times a failed GET is retried. Writes are
	// never retried.
	ReadRetries int `yaml:"read_retries"`
}

// Timeout returns the per-request timeout.
func (c HelpdeskAPIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BillingConfig holds the upgrade flow settings.
type BillingConfig struct {
	LicensePurchaseURL string `yaml:"license_purchase_url"`
}

// SessionConfig holds browser session settings
type SessionConfig struct {
	CookieName string `yaml:"cookie_name"`
	TTLHours   int    `yaml:"ttl_hours"`
	Secure     bool   `yaml:"secure"`
}

// TTL returns the idle session lifetime.
func (c SessionConfig) TTL() time.Duration {
	return time.Duration(c.TTLHours) * time.Hour
}

// RedisConfig holds the session store connection.
type RedisConfig struct {
	URL string `yaml:"url"`
}

// DatabaseConfig holds the audit database connection. An empty URL
// disables the audit trail.
type DatabaseConfig struct {
	URL          string `yaml:"url"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level     string `yaml:"level"`
	RedactPII bool   `yaml:"redact_pii"`
}

// SecurityConfig holds browser-facing protections.
type SecurityConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	CSRFKey        string   `yaml:"csrf_key"`
}

// DomainRuleConfig holds the rejection notice shown to blocked senders.
type DomainRuleConfig struct {
	RejectionTemplate string `yaml:"rejection_template"`
	Organization      string `yaml:"organization"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.AppEnv == "" {
		c.AppEnv = "production"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Host == "" {
		c.Server.Host = "localhost"
	}
	if c.Server.PublicBaseURL == "" {
		c.Server.PublicBaseURL = fmt.Sprintf("http://%s:%d", c.Server.Host, c.Server.Port)
	}
	if c.Server.ReadTimeoutSeconds == 0 {
		c.Server.ReadTimeoutSeconds = 15
	}
	if c.Server.WriteTimeoutSeconds == 0 {
		c.Server.WriteTimeoutSeconds = 30
	}
	if c.Server.ShutdownTimeoutSeconds == 0 {
		c.Server.ShutdownTimeoutSeconds = 10
	}
	if c.HelpdeskAPI.TimeoutSeconds == 0 {
		c.HelpdeskAPI.TimeoutSeconds = 15
	}
	if c.HelpdeskAPI.ReadRetries == 0 {
		c.HelpdeskAPI.ReadRetries = 2
	}
	if c.Session.CookieName == "" {
		c.Session.CookieName = "helpdesk_session"
	}
	if c.Session.TTLHours == 0 {
		c.Session.TTLHours = 12
	}
	if c.Redis.URL == "" {
		c.Redis.URL = "redis://localhost:6379/0"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 5
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// LoadFromEnv loads configuration with environment variable overrides.
// A .env file is loaded first when present, so secrets can live there
// locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("APP_ENV"); v != "" {
		c.AppEnv = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %w", err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("PUBLIC_BASE_URL"); v != "" {
		c.Server.PublicBaseURL = v
	}
	if v := os.Getenv("HELPDESK_API_URL"); v != "" {
		c.HelpdeskAPI.BaseURL = v
	}
	if v := os.Getenv("LICENSE_PURCHASE_URL"); v != "" {
		c.Billing.LicensePurchaseURL = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		c.Redis.URL = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
	if v := os.Getenv("SESSION_COOKIE_SECURE"); v != "" {
		secure, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SESSION_COOKIE_SECURE: %w", err)
		}
		c.Session.Secure = secure
	}
	if v := os.Getenv("CSRF_KEY"); v != "" {
		c.Security.CSRFKey = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Security.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate checks the settings the console cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.HelpdeskAPI.BaseURL == "" {
		errs = append(errs, errors.New("helpdesk_api.base_url is required"))
	}
	if c.Billing.LicensePurchaseURL == "" {
		errs = append(errs, errors.New("billing.license_purchase_url is required"))
	}
	if c.IsProduction() && len(c.Security.CSRFKey) < 32 {
		errs = append(errs, errors.New("security.csrf_key must be at least 32 bytes in production"))
	}
	return errors.Join(errs...)
}

// IsProduction reports whether the console runs in production.
func (c *Config) IsProduction() bool {
	return c.AppEnv != "development" && c.AppEnv != "test"
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
