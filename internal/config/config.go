package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL connection and pool settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	AutoMigrate        bool
	// ApplicationName and TimeZone are sent as session parameters.
	ApplicationName string
	TimeZone        string
}

// StorageConfig selects and configures the backend holding uploaded files.
type StorageConfig struct {
	// Driver is "local" (directory on disk) or "minio".
	Driver      string
	UploadDir   string
	MaxBytes    int64
	StrictSniff bool
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret    string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
}

// RedisConfig holds the token blacklist connection. An empty Addr selects the in-memory blacklist.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// PortalConfig holds the external document portal settings.
type PortalConfig struct {
	// Mode is "simulated" or "http".
	Mode    string
	URL     string
	APIKey  string
	Timeout time.Duration
}

// AppConfig is everything the portal reads from its environment.
type AppConfig struct {
	AppHost           string
	Port              string
	Timezone          string
	LogLevel          string
	StatusRefreshCron string
	Database          DatabaseConfig
	Storage           StorageConfig
	MinIO             MinIOConfig
	Auth              AuthConfig
	Redis             RedisConfig
	Portal            PortalConfig
}

// Load reads configuration from environment variables. Entries in a .env file
// are picked up when main imports github.com/joho/godotenv/autoload; variables
// already set in the environment win.
func Load() *AppConfig {
	tz := getEnv("APP_TIMEZONE", "UTC")
	return &AppConfig{
		AppHost:           getEnv("APP_HOST", "localhost:8080"),
		Port:              getEnv("PORT", "8080"),
		Timezone:          tz,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		StatusRefreshCron: getEnv("STATUS_REFRESH_CRON", "@hourly"),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
			AutoMigrate:        getEnvBool("DB_AUTO_MIGRATE", true),
			ApplicationName:    getEnv("DB_APPLICATION_NAME", "docportal"),
			TimeZone:           tz,
		},
		Storage: StorageConfig{
			Driver:      getEnv("STORAGE_DRIVER", "local"),
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			MaxBytes:    int64(getEnvInt("UPLOAD_MAX_BYTES", 10*1024*1024)),
			StrictSniff: getEnvBool("UPLOAD_STRICT_SNIFF", false),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Auth: AuthConfig{
			JWTSecret:    getEnv("JWT_SECRET", ""),
			TokenTTL:     getEnvDuration("JWT_TTL", 8*time.Hour),
			CookieName:   getEnv("SESSION_COOKIE", "docportal_session"),
			CookieSecure: getEnvBool("SESSION_COOKIE_SECURE", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Portal: PortalConfig{
			Mode:    getEnv("PORTAL_MODE", "simulated"),
			URL:     getEnv("PORTAL_URL", "https://portal.example.com/api"),
			APIKey:  getEnv("PORTAL_API_KEY", ""),
			Timeout: getEnvDuration("PORTAL_TIMEOUT", 10*time.Second),
		},
	}
}

// Validate reports every setting the API server cannot start with.
func (c *AppConfig) Validate() error {
	var errs []error
	if c.Auth.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("JWT_TTL must be positive, got %s", c.Auth.TokenTTL))
	}
	if c.Storage.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Storage.MaxBytes))
	}

	switch c.Storage.Driver {
	case "local":
		if c.Storage.UploadDir == "" {
			errs = append(errs, errors.New("UPLOAD_DIR is required for the local storage driver"))
		}
	case "minio":
		if c.MinIO.Endpoint == "" || c.MinIO.Bucket == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT and MINIO_BUCKET are required for the minio storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver))
	}

	switch c.Portal.Mode {
	case "simulated":
	case "http":
		if c.Portal.URL == "" {
			errs = append(errs, errors.New("PORTAL_URL is required when PORTAL_MODE=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown PORTAL_MODE %q", c.Portal.Mode))
	}
	return errors.Join(errs...)
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
