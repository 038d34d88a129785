package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server config
	Port int

	// Document store config
	DBUrl       string
	DBUsername  string
	DBPassword  string
	DBNamespace string
	DBDatabase  string

	// Security config
	IdentitySecret []byte
	SessionSecret  []byte
	SessionTTL     time.Duration

	// Object storage config
	S3Region   string
	S3Endpoint string
	S3Bucket   string
	PublicURL  string

	// Environment
	Production bool
}

// SessionTTL matches the original deployment: session cookies live 5 days.
const defaultSessionTTL = 5 * 24 * time.Hour

func Load(path string) *Config {
	// Missing .env is fine, the environment may already be populated.
	_ = godotenv.Load(path)

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	ttl := defaultSessionTTL
	if hours, err := strconv.Atoi(os.Getenv("SESSION_TTL_HOURS")); err == nil && hours > 0 {
		ttl = time.Duration(hours) * time.Hour
	}

	return &Config{
		Port:           port,
		DBUrl:          os.Getenv("DB_URL"),
		DBUsername:     os.Getenv("DB_USERNAME"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBNamespace:    os.Getenv("DB_NAMESPACE"),
		DBDatabase:     os.Getenv("DB_DATABASE"),
		IdentitySecret: []byte(os.Getenv("IDENTITY_SECRET")),
		SessionSecret:  []byte(os.Getenv("SESSION_SECRET")),
		SessionTTL:     ttl,
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		PublicURL:      os.Getenv("S3_PUBLIC_URL"),
		Production:     os.Getenv("APP_ENV") == "production",
	}
}
