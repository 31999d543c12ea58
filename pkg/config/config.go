package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// CatalogMaxStock is the upper bound for a movie's stock counter; stock
	// always stays within [0, CatalogMaxStock].
	CatalogMaxStock int

	// LoginRateLimit is a ulule/limiter formatted rate (e.g. "10-M") applied
	// to the credential endpoints.
	LoginRateLimit string

	// OverdueAfter is how long a rental may stay open before the overdue scan
	// flags it.
	OverdueAfter time.Duration

	// OverdueScanSchedule is a cron expression for the overdue scan job.
	OverdueScanSchedule string

	// Google federated sign-in.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "vidly-backend")
	viper.SetDefault("CATALOG_MAX_STOCK", 255)
	viper.SetDefault("LOGIN_RATE_LIMIT", "10-M")
	viper.SetDefault("OVERDUE_AFTER", "336h") // 14 days
	viper.SetDefault("OVERDUE_SCAN_SCHEDULE", "0 7 * * *")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.CatalogMaxStock = viper.GetInt("CATALOG_MAX_STOCK")
	if cfg.CatalogMaxStock <= 0 {
		cfg.CatalogMaxStock = 255
		log.Printf("Warning: CATALOG_MAX_STOCK must be positive. Defaulting to %d.\n", cfg.CatalogMaxStock)
	}

	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")

	overdueStr := viper.GetString("OVERDUE_AFTER")
	overdueAfter, err := time.ParseDuration(overdueStr)
	if err != nil {
		overdueAfter = 14 * 24 * time.Hour
		log.Printf("Warning: Invalid value for OVERDUE_AFTER (%q). Defaulting to %s.\n", overdueStr, overdueAfter)
	}
	cfg.OverdueAfter = overdueAfter

	cfg.OverdueScanSchedule = viper.GetString("OVERDUE_SCAN_SCHEDULE")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	return cfg, nil
}
