package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Firebase  FirebaseConfig
	Drafts    DraftsConfig
	RateLimit RateLimitConfig
	App       AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

// DatabaseConfig describes the Postgres project store. An empty Host selects
// the in-memory store.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig is optional; an empty Addr disables caching and the
// notification feed.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

type FirebaseConfig struct {
	CredentialsPath string
	// Disabled trusts the X-User-Id header instead of verifying tokens.
	Disabled bool
}

type DraftsConfig struct {
	MaxSessions int
	IdleTimeout time.Duration
	SweepSpec   string
}

type RateLimitConfig struct {
	SubmitPerMinute int
	Burst           int
	// MaxKeys bounds the per-user buckets kept in memory.
	MaxKeys int
}

type AppConfig struct {
	Environment string
	Version     string
}

func loadDotEnv() {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
}

func databaseFromEnv() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnvAsInt("DB_PORT", 5432),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "clonex"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}
}

// LoadDatabase reads only the database section, for tools such as the
// migrator that never serve requests. DB_HOST is required.
func LoadDatabase() (DatabaseConfig, error) {
	loadDotEnv()
	db := databaseFromEnv()
	if db.Host == "" {
		return db, fmt.Errorf("DB_HOST is required")
	}
	return db, nil
}

func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		},
		Database: databaseFromEnv(),
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("REDIS_CACHE_TTL", 5*time.Minute),
		},
		Firebase: FirebaseConfig{
			CredentialsPath: getEnv("FIREBASE_CREDENTIALS_PATH", ""),
			Disabled:        getEnvAsBool("FIREBASE_DISABLED", false),
		},
		Drafts: DraftsConfig{
			MaxSessions: getEnvAsInt("DRAFTS_MAX_SESSIONS", 4096),
			IdleTimeout: getEnvAsDuration("DRAFTS_IDLE_TIMEOUT", 2*time.Hour),
			SweepSpec:   getEnv("DRAFTS_SWEEP_SPEC", "@every 5m"),
		},
		RateLimit: RateLimitConfig{
			SubmitPerMinute: getEnvAsInt("SUBMIT_RATE_PER_MINUTE", 10),
			Burst:           getEnvAsInt("SUBMIT_RATE_BURST", 3),
			MaxKeys:         getEnvAsInt("SUBMIT_RATE_MAX_KEYS", 10000),
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if !c.Firebase.Disabled && c.Firebase.CredentialsPath == "" {
		return fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required unless FIREBASE_DISABLED=true")
	}

	if c.Firebase.Disabled && c.App.Environment == "production" {
		return fmt.Errorf("FIREBASE_DISABLED is not allowed in production")
	}

	if c.RateLimit.SubmitPerMinute <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("SUBMIT_RATE_PER_MINUTE and SUBMIT_RATE_BURST must be positive")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid boolean for %s, using default: %t", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid duration for %s, using default: %s", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
