package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Redis backs the reconciliation single-flight lock. Empty disables it;
	// the in-process guard still applies.
	RedisURL    string
	SyncLockTTL time.Duration

	// AdminRateLimit is a ulule/limiter formatted rate (e.g. "5-M") applied
	// to the admin sync endpoints.
	AdminRateLimit string

	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("SYNC_LOCK_TTL", "30s")
	viper.SetDefault("ADMIN_RATE_LIMIT", "5-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.RedisURL = viper.GetString("REDIS_URL")

	syncLockTTLStr := viper.GetString("SYNC_LOCK_TTL")
	syncLockTTL, err := time.ParseDuration(syncLockTTLStr)
	if err != nil {
		syncLockTTL = 30 * time.Second
		if syncLockTTLStr != "" {
			log.Printf("Warning: Invalid value for SYNC_LOCK_TTL ('%s'). Defaulting to %s.\n", syncLockTTLStr, syncLockTTL.String())
		}
	}
	cfg.SyncLockTTL = syncLockTTL

	cfg.AdminRateLimit = viper.GetString("ADMIN_RATE_LIMIT")
	cfg.CORSAllowedOrigins = viper.GetStringSlice("CORS_ALLOWED_ORIGINS")

	return cfg, nil
}
