package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	defaultAccessSecret  = "your-access-secret-change-in-production"
	defaultRefreshSecret = "your-refresh-secret-change-in-production"
)

// Config holds application configuration
type Config struct {
	Server        ServerConfig
	Log           LogConfig
	Database      DatabaseConfig
	Cache         CacheConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Storage       StorageConfig
	Transcription TranscriptionConfig
	Analysis      AnalysisConfig
	Events        EventsConfig
	Maintenance   MaintenanceConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
	MaxUploadBytes  int64
}

// LogConfig holds logger configuration
type LogConfig struct {
	Level string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Driver      string // "postgres" or "sqlite"
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	Path        string // sqlite file
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// CacheConfig selects the backing store for short-lived tokens
type CacheConfig struct {
	Driver string // "redis" or "memory"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	AccessSecret  string
	RefreshSecret string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Type            string // "minio" or "none"
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
	PresignExpiry   time.Duration
}

// TranscriptionConfig holds AssemblyAI settings, read from ASSEMBLYAI_*.
type TranscriptionConfig struct {
	APIKey          string        `envconfig:"API_KEY"`
	LanguageCode    string        `envconfig:"LANGUAGE_CODE" default:"en"`
	InitialInterval time.Duration `envconfig:"INITIAL_INTERVAL" default:"1s"`
	MaxInterval     time.Duration `envconfig:"MAX_INTERVAL" default:"10s"`
	MaxElapsed      time.Duration `envconfig:"MAX_ELAPSED" default:"2m"`
	MaxRetries      uint64        `envconfig:"MAX_RETRIES" default:"3"`
}

// AnalysisConfig holds text analysis settings, read from ANALYSIS_*.
type AnalysisConfig struct {
	LexiconPath string `envconfig:"LEXICON_PATH"`
}

// EventsConfig holds NATS settings, read from NATS_*. An empty URL disables
// publishing.
type EventsConfig struct {
	URL        string `envconfig:"URL"`
	Subject    string `envconfig:"SUBJECT" default:"voicenote.analyzed"`
	ClientName string `envconfig:"CLIENT_NAME" default:"voicenote-api"`
}

// MaintenanceConfig holds background job settings
type MaintenanceConfig struct {
	SessionCleanupSchedule string
	SessionCleanupTimeout  time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
			MaxUploadBytes:  int64(getEnvAsInt("MAX_UPLOAD_BYTES", 10<<20)),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver:      getEnv("DB_DRIVER", "postgres"),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "voicenote"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			Path:        getEnv("DB_PATH", "voicenote.db"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", true),
		},
		Cache: CacheConfig{
			Driver: getEnv("CACHE_DRIVER", "redis"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			AccessSecret:  getEnv("JWT_ACCESS_SECRET", defaultAccessSecret),
			RefreshSecret: getEnv("JWT_REFRESH_SECRET", defaultRefreshSecret),
			AccessExpiry:  getEnvAsDuration("JWT_ACCESS_EXPIRY", "15m"),
			RefreshExpiry: getEnvAsDuration("JWT_REFRESH_EXPIRY", "168h"),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "minio"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "voicenote"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
			PresignExpiry:   getEnvAsDuration("STORAGE_PRESIGN_EXPIRY", "1h"),
		},
		Maintenance: MaintenanceConfig{
			SessionCleanupSchedule: getEnv("SESSION_CLEANUP_SCHEDULE", "@daily"),
			SessionCleanupTimeout:  getEnvAsDuration("SESSION_CLEANUP_TIMEOUT", "5m"),
		},
	}

	if err := envconfig.Process("ASSEMBLYAI", &config.Transcription); err != nil {
		return nil, fmt.Errorf("transcription config: %w", err)
	}
	if err := envconfig.Process("ANALYSIS", &config.Analysis); err != nil {
		return nil, fmt.Errorf("analysis config: %w", err)
	}
	if err := envconfig.Process("NATS", &config.Events); err != nil {
		return nil, fmt.Errorf("events config: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("DB_DRIVER must be postgres or sqlite, got %q", c.Database.Driver)
	}
	switch c.Cache.Driver {
	case "redis", "memory":
	default:
		return fmt.Errorf("CACHE_DRIVER must be redis or memory, got %q", c.Cache.Driver)
	}
	switch c.Storage.Type {
	case "minio", "none":
	default:
		return fmt.Errorf("STORAGE_TYPE must be minio or none, got %q", c.Storage.Type)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if c.IsProduction() {
		if c.JWT.AccessSecret == defaultAccessSecret || c.JWT.RefreshSecret == defaultRefreshSecret {
			return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must be set in production")
		}
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, v := range strings.Split(getEnv(key, defaultValue), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
