package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Log       LogConfig
	Admin     AdminConfig
	Storage   StorageConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port                string
	Mode                string
	StoreTimeoutSeconds int `mapstructure:"store_timeout_seconds"`
	// StoreTimeout bounds every request's storage work.
	StoreTimeout time.Duration `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver       string // mysql, postgres or sqlite
	DSN          string `mapstructure:"dsn"`
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	Charset      string
	ParseTime    bool
	MaxOpenConns int  `mapstructure:"max_open_conns"`
	MaxIdleConns int  `mapstructure:"max_idle_conns"`
	LogQueries   bool `mapstructure:"log_queries"`
}

type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

type RedisConfig struct {
	Enabled               bool
	Host                  string
	Port                  int
	Password              string
	DB                    int
	LeaderboardTTLSeconds int           `mapstructure:"leaderboard_ttl_seconds"`
	LeaderboardTTL        time.Duration `mapstructure:"-"`
}

type LogConfig struct {
	Path  string
	Level string
}

// AdminConfig holds the bootstrap account created by `create-admin`.
type AdminConfig struct {
	Username string
	Email    string
	Password string
}

// StorageConfig points the import commands at a MinIO bucket.
type StorageConfig struct {
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// RateLimitConfig caps requests per window. MaxRequests covers all traffic per
// client IP; AuthMaxRequests covers login and registration per IP;
// SubmitMaxRequests covers answer and score submissions per user.
type RateLimitConfig struct {
	MaxRequests       int `mapstructure:"max_requests"`
	AuthMaxRequests   int `mapstructure:"auth_max_requests"`
	SubmitMaxRequests int `mapstructure:"submit_max_requests"`
	WindowMinutes     int `mapstructure:"window_minutes"`
}

// Window is the configured limit window, at least one minute.
func (r RateLimitConfig) Window() time.Duration {
	if r.WindowMinutes <= 0 {
		return time.Minute
	}
	return time.Duration(r.WindowMinutes) * time.Minute
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.store_timeout_seconds", 5)

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "root")
	v.SetDefault("database.dbname", "bible_trivia_db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("jwt.expire_hours", 24)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.leaderboard_ttl_seconds", 30)

	v.SetDefault("log.path", "logs/app.log")
	v.SetDefault("log.level", "info")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:8080"})
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.auth_max_requests", 20)
	v.SetDefault("rate_limit.submit_max_requests", 60)
	v.SetDefault("rate_limit.window_minutes", 1)
}

// LoadConfig reads config.yaml from path, then layers the environment on top.
// A missing file is fine; defaults and env vars still apply.
func LoadConfig(path string) (*Config, error) {
	// a missing .env file is normal outside local development
	for _, f := range []string{filepath.Join(path, ".env"), ".env"} {
		_ = godotenv.Load(f)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("TRIVIA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.driver", "DATABASE_DRIVER")
	v.BindEnv("database.dsn", "DATABASE_DSN")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET", "SECRET_KEY")
	v.BindEnv("jwt.expire_hours", "JWT_EXPIRE_HOURS")

	// Redis
	v.BindEnv("redis.enabled", "REDIS_ENABLED")
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("server.port", "PORT")

	// Admin bootstrap
	v.BindEnv("admin.username", "ADMIN_USERNAME")
	v.BindEnv("admin.email", "ADMIN_EMAIL")
	v.BindEnv("admin.password", "ADMIN_PASSWORD")

	// Storage / MinIO
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.applyDurations()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if dir := filepath.Dir(cfg.Log.Path); dir != "" {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			os.MkdirAll(dir, 0755)
		}
	}

	return &cfg, nil
}

// applyDurations converts the unit-suffixed integer settings.
func (c *Config) applyDurations() {
	c.JWT.ExpireTime = time.Duration(c.JWT.ExpireHours) * time.Hour
	c.Server.StoreTimeout = time.Duration(c.Server.StoreTimeoutSeconds) * time.Second
	c.Redis.LeaderboardTTL = time.Duration(c.Redis.LeaderboardTTLSeconds) * time.Second
}

func (c *Config) Validate() error {
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("unsupported server mode %q", c.Server.Mode)
	}
	switch c.Database.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.ExpireTime <= 0 {
		return fmt.Errorf("jwt expire_hours must be positive")
	}
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is not configured")
	}
	return nil
}
