package config

import (
	"os"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string
	DatabaseURL     string
	DatabasePath    string
	MigrationsPath  string
	StaticFilesPath string

	// PromotionSecret is the shared secret folded into promotion codes.
	// It is a deterrent against students promoting themselves, not a
	// security boundary.
	PromotionSecret string

	// ShareTokenSecret signs progress share tokens.
	ShareTokenSecret string

	// SES settings for backup delivery. Email is disabled when
	// SESFromEmail is empty.
	SESRegion    string
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:       getEnv("PORT", "8080"),
		DatabaseType:     getEnv("DATABASE_TYPE", "sqlite"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabasePath:     getEnv("DB_PATH", "./wingtrack.db"),
		MigrationsPath:   getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticFilesPath:  getEnv("STATIC_PATH", "./static"),
		PromotionSecret:  getEnv("PROMOTION_SECRET", "sifu-says-train-harder"),
		ShareTokenSecret: getEnv("SHARE_TOKEN_SECRET", "wingtrack-share-token"),
		SESRegion:        getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail:     getEnv("SES_FROM_EMAIL", ""),
		SESFromName:      getEnv("SES_FROM_NAME", "WingTrack"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
