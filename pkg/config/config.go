package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverRedis    = "redis"
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	SQLite    SQLiteConfig
	Dataset   DatasetConfig
	Minio     MinioConfig
	JWT       JWTConfig
	Session   SessionConfig
	Admin     AdminConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Name string
	Port string
	Env  string
}

type StoreConfig struct {
	Driver string
	Key    string // key holding the serialized collection
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type SQLiteConfig struct {
	Path string
}

type DatasetConfig struct {
	URL string // http(s)://, file:// or plain path, s3://bucket/key
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

type JWTConfig struct {
	Secret string
}

type SessionConfig struct {
	TTLMinutes    int
	SweepCronExpr string
}

type AdminConfig struct {
	Token string // falls back to JWT secret when empty
}

type RateLimitConfig struct {
	Enabled       bool
	MaxRequests   int
	WindowSeconds int
}

type LogConfig struct {
	Dir     string
	Console bool
	Level   string
}

func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "People Directory"),
			Port: getEnv("APP_PORT", "3000"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Store: StoreConfig{
			Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreDriverSQLite)),
			Key:    getEnv("STORE_KEY", "users"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "people_directory"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "data/directory.db"),
		},
		Dataset: DatasetConfig{
			URL: getEnv("DATASET_URL", "public/celebrities.json"),
		},
		Minio: MinioConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", "your-secret-key"),
		},
		Session: SessionConfig{
			TTLMinutes:    getEnvInt("SESSION_TTL_MINUTES", 60),
			SweepCronExpr: getEnv("SESSION_SWEEP_CRON", "*/5 * * * *"),
		},
		Admin: AdminConfig{
			Token: getEnv("ADMIN_TOKEN", ""),
		},
		RateLimit: RateLimitConfig{
			Enabled:       getEnv("RATE_LIMIT_ENABLED", "true") == "true",
			MaxRequests:   getEnvInt("RATE_LIMIT_MAX_REQUESTS", 120),
			WindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		},
		Log: LogConfig{
			Dir:     getEnv("LOG_DIR", "logs"),
			Console: getEnv("LOG_CONSOLE", "true") == "true",
			Level:   strings.ToUpper(getEnv("LOG_LEVEL", "DEBUG")),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects settings the container cannot wire.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverSQLite, StoreDriverRedis, StoreDriverPostgres, StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver)
	}
	if c.Store.Key == "" {
		return fmt.Errorf("STORE_KEY must not be empty")
	}
	if c.Session.TTLMinutes <= 0 {
		return fmt.Errorf("SESSION_TTL_MINUTES must be positive, got %d", c.Session.TTLMinutes)
	}
	return nil
}

// AdminToken returns the token guarding the log endpoints.
func (c *Config) AdminToken() string {
	if c.Admin.Token != "" {
		return c.Admin.Token
	}
	return c.JWT.Secret
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}
