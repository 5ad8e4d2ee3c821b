package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("CLOUDINARY_CLOUD_NAME", "")
	t.Setenv("RECEIPT_BASE_URL", "")

	cfg := Load()

	assert.Equal(t, 5000, cfg.Port)
	assert.Contains(t, cfg.DatabaseURL, "host=db.internal")
	assert.Contains(t, cfg.DatabaseURL, "sslmode=disable")
	assert.Equal(t, "https://res.cloudinary.com/du6astrxs/driver_receipts", cfg.ReceiptBaseURL)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@neon/loads")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("MAX_UPLOAD_MB", "4")

	cfg := Load()

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "postgres://u:p@neon/loads", cfg.DatabaseURL)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.EqualValues(t, 4, cfg.MaxUploadMB)
}
