package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultMaxUploadBytes is the attachment size ceiling (10 MiB).
const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

type Config struct {
	Port        string
	LogLevel    string
	FrontendURL string
	// Storage
	DBDriver      string // "postgres" or "memory"
	DBUrl         string
	StorageDriver string // "postgres", "s3" or "memory"
	// Disable prepared statements for transaction-mode poolers (PgBouncer)
	DBSimpleProtocol bool
	// S3 / Wasabi blob storage
	S3Provider        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3Region          string
	S3Bucket          string
	S3Prefix          string
	WasabiEndpoint    string
	// Search provider (MCP job search server)
	SearchProviderURL string
	SearchTimeout     time.Duration
	SearchCacheTTL    time.Duration
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	EventsChannel string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitSearchThreshold int
	UploadLimitPerMinute     int
	UploadLimitPerDay        int
	// Attachments
	MaxUploadBytes int64
	ClamAVAddress  string
	// Auth (optional: both empty disables bearer auth)
	JWTSecret string
	JWKSURL   string
	// Maintenance
	BlobSweepSchedule string
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:5173"), "/"),

		DBDriver:      strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBUrl:         getEnv("DATABASE_URL", ""),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "")),

		DBSimpleProtocol: getEnvBool("DB_SIMPLE_PROTOCOL", true),

		S3Provider:        getEnv("S3_PROVIDER", "aws"),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3Region:          getEnv("S3_REGION", "us-east-1"),
		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Prefix:          getEnv("S3_PREFIX", "attachments/"),
		WasabiEndpoint:    getEnv("WASABI_ENDPOINT", ""),

		SearchProviderURL: strings.TrimRight(getEnv("SEARCH_PROVIDER_URL", getEnv("MCP_SERVER_URL", "http://localhost:9423")), "/"),
		SearchTimeout:     getEnvDuration("SEARCH_TIMEOUT", 60*time.Second),
		SearchCacheTTL:    getEnvDuration("SEARCH_CACHE_TTL", 5*time.Minute),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		EventsChannel: getEnv("EVENTS_CHANNEL", "job-tracker:events"),

		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitSearchThreshold: getEnvInt("RATE_LIMIT_SEARCH_THRESHOLD", 20),
		UploadLimitPerMinute:     getEnvInt("UPLOAD_LIMIT_PER_MINUTE", 10),
		UploadLimitPerDay:        getEnvInt("UPLOAD_LIMIT_PER_DAY", 200),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", int(DefaultMaxUploadBytes))),
		ClamAVAddress:  getEnv("CLAMAV_ADDRESS", ""),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWKSURL:   getEnv("JWKS_URL", ""),

		BlobSweepSchedule: getEnv("BLOB_SWEEP_SCHEDULE", "@every 1h"),
	}

	if cfg.StorageDriver == "" {
		// Blobs live next to the metadata unless told otherwise.
		cfg.StorageDriver = cfg.DBDriver
	}

	if cfg.DBDriver == "postgres" && cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Search cache and events are disabled, rate limiting uses in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

// getEnvDuration returns a duration environment variable or fallback if not set/invalid
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
