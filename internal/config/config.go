package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything main needs to wire the process. Values come from the
// environment, with a .env file honored for local development.
type Config struct {
	HTTPPort    int
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	TokenTTL  time.Duration

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	MinioBucket    string
	MediaBaseURL   string

	KafkaBrokers []string
	KafkaTopic   string

	CacheTTL          time.Duration
	LowStockThreshold int
	LowStockInterval  time.Duration
}

// Load reads configuration from the environment. Only DATABASE_URL is
// mandatory; everything else has development defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPPort:    getint("PORT", 8080),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),
		TokenTTL:  getduration("TOKEN_TTL", 24*time.Hour),

		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		MinioBucket:    getenv("MINIO_BUCKET", "product-media"),
		MediaBaseURL:   getenv("MEDIA_BASE_URL", "http://localhost:9000/product-media"),

		KafkaBrokers: splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getenv("KAFKA_TOPIC", "shop.orders"),

		CacheTTL:          getduration("PRODUCT_CACHE_TTL", time.Minute),
		LowStockThreshold: getint("LOW_STOCK_THRESHOLD", 5),
		LowStockInterval:  getduration("LOW_STOCK_INTERVAL", 15*time.Minute),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
