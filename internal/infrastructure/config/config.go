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
	App        AppConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Log        LogConfig
	HTTP       HTTPConfig
	Inference  InferenceConfig
	Transition TransitionConfig
	Storage    StorageConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int // in minutes
	ConnMaxIdleTime int // in minutes
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Addr returns the host:port address for the Redis client
func (r *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// JWTConfig holds JWT settings
type JWTConfig struct {
	Secret                 string
	RefreshSecret          string
	AccessTokenExpiration  time.Duration
	RefreshTokenExpiration time.Duration
	Issuer                 string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	MaxBodySize      int64
	CORSAllowOrigins []string
	TrustedProxies   []string
}

// InferenceConfig holds the external AI inference service settings
type InferenceConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	DefaultTopK    int
	TempDir        string // staging dir for uploaded images, "" = os temp
	TextCacheTTL   time.Duration
}

// TransitionConfig holds the order auto-transition sweep settings
type TransitionConfig struct {
	Enabled      bool
	CronSpec     string // robfig/cron expression
	BatchLimit   int    // max orders per status per sweep
	PendingAfter time.Duration
	ConfirmAfter time.Duration
	PackingAfter time.Duration
	ShipAfter    time.Duration
	DeliverAfter time.Duration
}

// StorageConfig holds S3-compatible object storage settings for product images
type StorageConfig struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PublicURL string // base URL served to clients, defaults to endpoint/bucket
}

// Load loads configuration from TOML file and environment variables.
// Priority (highest to lowest):
// 1. Environment variables with STYLEHUB_ prefix (e.g., STYLEHUB_DATABASE_PASSWORD)
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
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STYLEHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("database.host"),
			Port:            v.GetInt("database.port"),
			User:            v.GetString("database.user"),
			Password:        v.GetString("database.password"),
			DBName:          v.GetString("database.dbname"),
			SSLMode:         v.GetString("database.sslmode"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetInt("database.conn_max_lifetime"),
			ConnMaxIdleTime: v.GetInt("database.conn_max_idle_time"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:                 v.GetString("jwt.secret"),
			RefreshSecret:          v.GetString("jwt.refresh_secret"),
			AccessTokenExpiration:  v.GetDuration("jwt.access_token_expiration"),
			RefreshTokenExpiration: v.GetDuration("jwt.refresh_token_expiration"),
			Issuer:                 v.GetString("jwt.issuer"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			MaxBodySize:      v.GetInt64("http.max_body_size"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
			TrustedProxies:   v.GetStringSlice("http.trusted_proxies"),
		},
		Inference: InferenceConfig{
			BaseURL:        v.GetString("inference.base_url"),
			RequestTimeout: v.GetDuration("inference.request_timeout"),
			DefaultTopK:    v.GetInt("inference.default_top_k"),
			TempDir:        v.GetString("inference.temp_dir"),
			TextCacheTTL:   v.GetDuration("inference.text_cache_ttl"),
		},
		Transition: TransitionConfig{
			Enabled:      v.GetBool("transition.enabled"),
			CronSpec:     v.GetString("transition.cron_spec"),
			BatchLimit:   v.GetInt("transition.batch_limit"),
			PendingAfter: v.GetDuration("transition.pending_after"),
			ConfirmAfter: v.GetDuration("transition.confirm_after"),
			PackingAfter: v.GetDuration("transition.packing_after"),
			ShipAfter:    v.GetDuration("transition.ship_after"),
			DeliverAfter: v.GetDuration("transition.deliver_after"),
		},
		Storage: StorageConfig{
			Endpoint:  v.GetString("storage.endpoint"),
			Region:    v.GetString("storage.region"),
			Bucket:    v.GetString("storage.bucket"),
			AccessKey: v.GetString("storage.access_key"),
			SecretKey: v.GetString("storage.secret_key"),
			UseSSL:    v.GetBool("storage.use_ssl"),
			PublicURL: v.GetString("storage.public_url"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "stylehub-backend"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "postgres"
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = "stylehub"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 60
	}
	if cfg.Database.ConnMaxIdleTime == 0 {
		cfg.Database.ConnMaxIdleTime = 30
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.JWT.AccessTokenExpiration == 0 {
		cfg.JWT.AccessTokenExpiration = 15 * time.Minute
	}
	if cfg.JWT.RefreshTokenExpiration == 0 {
		cfg.JWT.RefreshTokenExpiration = 168 * time.Hour
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "stylehub-backend"
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
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 10 << 20 // 10 MiB, enough for search uploads
	}
	if cfg.Inference.BaseURL == "" {
		cfg.Inference.BaseURL = "http://localhost:8000"
	}
	if cfg.Inference.RequestTimeout == 0 {
		cfg.Inference.RequestTimeout = 20 * time.Second
	}
	if cfg.Inference.DefaultTopK == 0 {
		cfg.Inference.DefaultTopK = 20
	}
	if cfg.Inference.TextCacheTTL == 0 {
		cfg.Inference.TextCacheTTL = 5 * time.Minute
	}
	if cfg.Transition.CronSpec == "" {
		cfg.Transition.CronSpec = "*/15 * * * *"
	}
	if cfg.Transition.BatchLimit == 0 {
		cfg.Transition.BatchLimit = 500
	}
	if cfg.Transition.PendingAfter == 0 {
		cfg.Transition.PendingAfter = 30 * time.Minute
	}
	if cfg.Transition.ConfirmAfter == 0 {
		cfg.Transition.ConfirmAfter = 12 * time.Hour
	}
	if cfg.Transition.PackingAfter == 0 {
		cfg.Transition.PackingAfter = 24 * time.Hour
	}
	if cfg.Transition.ShipAfter == 0 {
		cfg.Transition.ShipAfter = 72 * time.Hour
	}
	if cfg.Transition.DeliverAfter == 0 {
		cfg.Transition.DeliverAfter = 7 * 24 * time.Hour
	}
	if cfg.Storage.Region == "" {
		cfg.Storage.Region = "us-east-1"
	}
}

func (c *Config) validate() error {
	if c.Database.MaxOpenConns <= 0 {
		return fmt.Errorf("database.max_open_conns must be positive")
	}
	if c.Database.MaxIdleConns < 0 {
		return fmt.Errorf("database.max_idle_conns cannot be negative")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("database.max_idle_conns (%d) cannot exceed database.max_open_conns (%d)",
			c.Database.MaxIdleConns, c.Database.MaxOpenConns)
	}
	if c.Inference.DefaultTopK < 1 {
		return fmt.Errorf("inference.default_top_k must be positive")
	}
	if c.Transition.BatchLimit < 1 {
		return fmt.Errorf("transition.batch_limit must be positive")
	}

	if c.App.Env == "production" {
		if c.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is required in production")
		}
		if len(c.JWT.Secret) < 32 {
			return fmt.Errorf("jwt.secret must be at least 32 characters in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("database.password is required in production")
		}
		if c.Database.SSLMode == "disable" {
			return fmt.Errorf("database.sslmode cannot be 'disable' in production")
		}
		for _, origin := range c.HTTP.CORSAllowOrigins {
			if origin == "*" {
				return fmt.Errorf("http.cors_allow_origins cannot be '*' in production (use specific origins)")
			}
		}
	}

	return nil
}

// DSN returns the database connection string with properly escaped values
func (d *DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.DBName,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	return u.String()
}
