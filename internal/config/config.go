package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	AWSRegion      string
	AWSEndpointURL string // empty in prod, set to LocalStack URL in dev
	AWSAccessKeyID string
	AWSSecretKey   string

	DynamoTables DynamoTables

	S3BucketName    string
	S3PublicBaseURL string // override for the public object URL, e.g. a CDN domain

	SNSTopicARN string // optional; content events are fanned out here when set

	JWTSecret string
	JWTExpiry time.Duration

	// SuperAdminID is the bootstrap-owner identifier (16-digit numeric).
	// Elevated admin-management operations compare against it.
	SuperAdminID       string
	SuperAdminUsername string
	SuperAdminPassword string
	SuperAdminName     string

	AllowedOrigins []string // CORS allowed origins
	TrustProxy     bool
}

// DynamoTables holds the DynamoDB table name for each collection.
type DynamoTables struct {
	Admins        string
	Banners       string
	Logos         string
	Locations     string
	News          string
	Notifications string
}

var superAdminIDPattern = regexp.MustCompile(`^\d{16}$`)

// Load reads all configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		AppPort: getEnv("APP_PORT", "5000"),
		AppEnv:  getEnv("APP_ENV", "development"),

		AWSRegion:      getEnv("AWS_REGION", "us-east-1"),
		AWSEndpointURL: getEnv("AWS_ENDPOINT_URL", ""),
		AWSAccessKeyID: getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretKey:   getEnv("AWS_SECRET_ACCESS_KEY", ""),

		DynamoTables: DynamoTables{
			Admins:        getEnv("DYNAMO_TABLE_ADMINS", "admins"),
			Banners:       getEnv("DYNAMO_TABLE_BANNERS", "banners"),
			Logos:         getEnv("DYNAMO_TABLE_LOGOS", "logos"),
			Locations:     getEnv("DYNAMO_TABLE_LOCATIONS", "locations"),
			News:          getEnv("DYNAMO_TABLE_NEWS", "news"),
			Notifications: getEnv("DYNAMO_TABLE_NOTIFICATIONS", "notifications"),
		},

		S3BucketName:    getEnv("S3_BUCKET_NAME", "narcomap-assets"),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		SNSTopicARN: getEnv("SNS_TOPIC_ARN", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: time.Duration(getEnvInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,

		SuperAdminID:       getEnv("SUPER_ADMIN_ID", ""),
		SuperAdminUsername: getEnv("SUPER_ADMIN_USERNAME", "superadmin"),
		SuperAdminPassword: getEnv("SUPER_ADMIN_PASSWORD", ""),
		SuperAdminName:     getEnv("SUPER_ADMIN_NAME", "Super Admin"),

		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
		TrustProxy:     getEnvBool("TRUST_PROXY", false),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.SuperAdminID == "" {
		return nil, fmt.Errorf("SUPER_ADMIN_ID must be set")
	}
	if !superAdminIDPattern.MatchString(cfg.SuperAdminID) {
		return nil, fmt.Errorf("SUPER_ADMIN_ID must be a 16-digit numeric identifier")
	}
	return cfg, nil
}

func splitOrigins(s string) []string {
	parts := strings.Split(s, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
