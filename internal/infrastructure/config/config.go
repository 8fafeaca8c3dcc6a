package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App       AppConfig
	Redis     RedisConfig
	Session   SessionConfig
	Auth      AuthConfig
	APIs      APIsConfig
	Log       LogConfig
	HTTP      HTTPConfig
	Telemetry TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port Redis address
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// SessionConfig holds the session cookie settings
type SessionConfig struct {
	CookieName string
	Secret     string
	TTL        time.Duration
	Secure     bool
	SameSite   string // strict, lax or none
	// AllowInMemoryFallback lets the app start without Redis. Sessions are then lost on restart.
	AllowInMemoryFallback bool
}

// AuthConfig holds HMPPS Auth settings
type AuthConfig struct {
	URL                string
	JWTSecret          string
	PublicKey          string
	SystemClientID     string
	SystemClientSecret string
	Timeout            time.Duration
}

// APIConfig holds the settings for one upstream API
type APIConfig struct {
	URL     string
	Timeout time.Duration
}

// APIsConfig holds every upstream API the app calls
type APIsConfig struct {
	AccreditedProgrammes APIConfig
	PrisonerSearch       APIConfig
	ManageUsers          APIConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxHeaderBytes    int
	MaxBodySize       int64
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
	TrustedProxies    []string
	// CaseListPrefixes are the paths whose last visit is remembered for back links
	CaseListPrefixes []string
}

// TelemetryConfig holds OpenTelemetry configuration.
// Enabled switches tracing; metrics and logs export are switched separately.
type TelemetryConfig struct {
	Enabled               bool
	MetricsEnabled        bool
	LogsEnabled           bool
	CollectorEndpoint     string
	SamplingRatio         float64
	MetricsExportInterval time.Duration
	ServiceName           string
	Insecure              bool
	// Continuous profiling through Pyroscope
	ProfilingEnabled       bool
	ProfilingServerAddress string
	ProfilingMutexFraction int
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ACP_ prefix (e.g., ACP_REDIS_HOST)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("ACP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Booleans with a true default must be registered so a false override is honoured
	v.SetDefault("redis.enabled", true)
	v.SetDefault("session.allow_in_memory_fallback", true)

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Redis: RedisConfig{
			Enabled:  v.GetBool("redis.enabled"),
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Session: SessionConfig{
			CookieName:            v.GetString("session.cookie_name"),
			Secret:                v.GetString("session.secret"),
			TTL:                   v.GetDuration("session.ttl"),
			Secure:                v.GetBool("session.secure"),
			SameSite:              v.GetString("session.same_site"),
			AllowInMemoryFallback: v.GetBool("session.allow_in_memory_fallback"),
		},
		Auth: AuthConfig{
			URL:                v.GetString("auth.url"),
			JWTSecret:          v.GetString("auth.jwt_secret"),
			PublicKey:          v.GetString("auth.public_key"),
			SystemClientID:     v.GetString("auth.system_client_id"),
			SystemClientSecret: v.GetString("auth.system_client_secret"),
			Timeout:            v.GetDuration("auth.timeout"),
		},
		APIs: APIsConfig{
			AccreditedProgrammes: APIConfig{
				URL:     v.GetString("apis.accredited_programmes.url"),
				Timeout: v.GetDuration("apis.accredited_programmes.timeout"),
			},
			PrisonerSearch: APIConfig{
				URL:     v.GetString("apis.prisoner_search.url"),
				Timeout: v.GetDuration("apis.prisoner_search.timeout"),
			},
			ManageUsers: APIConfig{
				URL:     v.GetString("apis.manage_users.url"),
				Timeout: v.GetDuration("apis.manage_users.timeout"),
			},
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:       v.GetDuration("http.read_timeout"),
			WriteTimeout:      v.GetDuration("http.write_timeout"),
			IdleTimeout:       v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes:    v.GetInt("http.max_header_bytes"),
			MaxBodySize:       v.GetInt64("http.max_body_size"),
			RateLimitEnabled:  v.GetBool("http.rate_limit_enabled"),
			RateLimitRequests: v.GetInt("http.rate_limit_requests"),
			RateLimitWindow:   v.GetDuration("http.rate_limit_window"),
			TrustedProxies:    v.GetStringSlice("http.trusted_proxies"),
			CaseListPrefixes:  v.GetStringSlice("http.case_list_prefixes"),
		},
		Telemetry: TelemetryConfig{
			Enabled:               v.GetBool("telemetry.enabled"),
			MetricsEnabled:        v.GetBool("telemetry.metrics_enabled"),
			LogsEnabled:           v.GetBool("telemetry.logs_enabled"),
			CollectorEndpoint:     v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:         v.GetFloat64("telemetry.sampling_ratio"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
			ServiceName:           v.GetString("telemetry.service_name"),
			Insecure:              v.GetBool("telemetry.insecure"),

			ProfilingEnabled:       v.GetBool("telemetry.profiling_enabled"),
			ProfilingServerAddress: v.GetString("telemetry.profiling_server_address"),
			ProfilingMutexFraction: v.GetInt("telemetry.profiling_mutex_fraction"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "accredited-programmes-ui"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "3000"
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "acp.session"
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 2 * time.Hour
	}
	if cfg.Session.SameSite == "" {
		cfg.Session.SameSite = "lax"
	}
	if cfg.Auth.URL == "" {
		cfg.Auth.URL = "http://localhost:9090/auth"
	}
	if cfg.Auth.Timeout == 0 {
		cfg.Auth.Timeout = 10 * time.Second
	}
	if cfg.APIs.AccreditedProgrammes.URL == "" {
		cfg.APIs.AccreditedProgrammes.URL = "http://localhost:9091"
	}
	if cfg.APIs.PrisonerSearch.URL == "" {
		cfg.APIs.PrisonerSearch.URL = "http://localhost:9092"
	}
	if cfg.APIs.ManageUsers.URL == "" {
		cfg.APIs.ManageUsers.URL = "http://localhost:9093"
	}
	for _, api := range []*APIConfig{
		&cfg.APIs.AccreditedProgrammes,
		&cfg.APIs.PrisonerSearch,
		&cfg.APIs.ManageUsers,
	} {
		if api.Timeout == 0 {
			api.Timeout = 10 * time.Second
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 30 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 1 << 20 // forms only, no uploads
	}
	if cfg.HTTP.RateLimitRequests == 0 {
		cfg.HTTP.RateLimitRequests = 300
	}
	if cfg.HTTP.RateLimitWindow == 0 {
		cfg.HTTP.RateLimitWindow = time.Minute
	}
	if len(cfg.HTTP.CaseListPrefixes) == 0 {
		cfg.HTTP.CaseListPrefixes = []string{"/assess/courses/", "/refer/referrals/case-list"}
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	for name, api := range map[string]APIConfig{
		"apis.accredited_programmes.url": c.APIs.AccreditedProgrammes,
		"apis.prisoner_search.url":       c.APIs.PrisonerSearch,
		"apis.manage_users.url":          c.APIs.ManageUsers,
	} {
		if _, err := url.ParseRequestURI(api.URL); err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", name, err)
		}
	}

	switch c.Session.SameSite {
	case "strict", "lax", "none":
	default:
		return fmt.Errorf("session.same_site must be one of strict, lax, none, got %q", c.Session.SameSite)
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}

	if c.App.Env == "production" {
		if c.Auth.JWTSecret == "" && c.Auth.PublicKey == "" {
			return fmt.Errorf("auth.jwt_secret or auth.public_key is required in production")
		}
		if len(c.Session.Secret) < 32 {
			return fmt.Errorf("session.secret must be at least 32 characters in production")
		}
		if c.Auth.SystemClientID == "" || c.Auth.SystemClientSecret == "" {
			return fmt.Errorf("auth.system_client_id and auth.system_client_secret are required in production")
		}
		if !c.Session.Secure {
			return fmt.Errorf("session.secure must be true in production (HTTPS required for secure cookies)")
		}
		if !c.Redis.Enabled || c.Session.AllowInMemoryFallback {
			return fmt.Errorf("redis must be enabled without in-memory session fallback in production")
		}
	}

	return nil
}

// IsProduction reports whether the app runs in production
func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
