package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const base = "https://res.cloudinary.com/du6astrxs/driver_receipts"

func TestReceiptURL(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"pdf becomes raw", "r/123-bol.pdf", base + "/raw/upload/r/123-bol.pdf"},
		{"png becomes image", "r/123-bol.png", base + "/image/upload/r/123-bol.png"},
		{"no extension becomes image", "r/123-bol", base + "/image/upload/r/123-bol"},
		{"absolute passes through", "https://cdn.example/x.pdf", "https://cdn.example/x.pdf"},
		{"http passes through", "http://cdn.example/x.jpg", "http://cdn.example/x.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReceiptURL(base, tt.path))
		})
	}
}

func TestReceiptURLTrailingSlash(t *testing.T) {
	assert.Equal(t, base+"/raw/upload/a.pdf", ReceiptURL(base+"/", "a.pdf"))
}

func TestWithPublicID(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	opts := DriverReceipt.WithPublicID("my receipt.pdf", now)
	assert.Equal(t, "1700000000123-my_receipt", opts.PublicID)
	assert.Equal(t, "driver_receipts", opts.Folder)
	assert.Empty(t, DriverReceipt.PublicID, "profile template must stay untouched")

	assert.Equal(t, "1700000000123-file", UserReceipt.WithPublicID("", now).PublicID)
}
