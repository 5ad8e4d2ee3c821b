package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Config holds every externally supplied setting of the service.
type Config struct {
	Port    int
	GinMode string

	DatabaseURL    string
	DBMaxOpenConns int
	DBMaxIdleConns int

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	ReceiptBaseURL      string
	MaxUploadMB         int64

	JWTSecret   string
	JWTTTLHours int

	LogFile  string
	LogLevel string

	RedisAddr     string
	RedisPassword string
	KafkaBrokers  []string

	MetricsNamespace string
}

// Load reads .env (if present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{}

	cfg.Port = cast.ToInt(getOrReturnDefault("PORT", 5000))
	cfg.GinMode = cast.ToString(getOrReturnDefault("GIN_MODE", "release"))

	cfg.DatabaseURL = cast.ToString(getOrReturnDefault("DATABASE_URL", ""))
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			cast.ToString(getOrReturnDefault("DB_HOST", "localhost")),
			cast.ToString(getOrReturnDefault("DB_USER", "postgres")),
			cast.ToString(getOrReturnDefault("DB_PASSWORD", "password")),
			cast.ToString(getOrReturnDefault("DB_NAME", "loadboard")),
			cast.ToString(getOrReturnDefault("DB_PORT", "5432")),
			cast.ToString(getOrReturnDefault("DB_SSLMODE", "disable")),
			cast.ToString(getOrReturnDefault("DB_TIMEZONE", "UTC")),
		)
	}
	cfg.DBMaxOpenConns = cast.ToInt(getOrReturnDefault("DB_MAX_OPEN_CONNS", 20))
	cfg.DBMaxIdleConns = cast.ToInt(getOrReturnDefault("DB_MAX_IDLE_CONNS", 5))

	cfg.CloudinaryCloudName = cast.ToString(getOrReturnDefault("CLOUDINARY_CLOUD_NAME", "du6astrxs"))
	cfg.CloudinaryAPIKey = cast.ToString(getOrReturnDefault("CLOUDINARY_API_KEY", ""))
	cfg.CloudinaryAPISecret = cast.ToString(getOrReturnDefault("CLOUDINARY_API_SECRET", ""))
	cfg.ReceiptBaseURL = cast.ToString(getOrReturnDefault("RECEIPT_BASE_URL",
		"https://res.cloudinary.com/"+cfg.CloudinaryCloudName+"/driver_receipts"))
	cfg.MaxUploadMB = cast.ToInt64(getOrReturnDefault("MAX_UPLOAD_MB", 16))

	cfg.JWTSecret = cast.ToString(getOrReturnDefault("JWT_SECRET", "supersecret"))
	cfg.JWTTTLHours = cast.ToInt(getOrReturnDefault("JWT_TTL_HOURS", 72))

	cfg.LogFile = cast.ToString(getOrReturnDefault("LOG_FILE", "./logs/app.log"))
	cfg.LogLevel = cast.ToString(getOrReturnDefault("LOG_LEVEL", "info"))

	cfg.RedisAddr = cast.ToString(getOrReturnDefault("REDIS_ADDR", ""))
	cfg.RedisPassword = cast.ToString(getOrReturnDefault("REDIS_PASSWORD", ""))
	cfg.KafkaBrokers = splitList(cast.ToString(getOrReturnDefault("KAFKA_BROKERS", "")))

	cfg.MetricsNamespace = cast.ToString(getOrReturnDefault("METRICS_NAMESPACE", "loadboard"))

	return cfg
}

func getOrReturnDefault(key string, defaultValue interface{}) interface{} {
	if v, exists := os.LookupEnv(key); exists && v != "" {
		return v
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
