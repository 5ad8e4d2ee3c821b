// Package storage uploads user files to the object store and turns stored
// receipt references back into absolute URLs.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// UploadOptions describes where and how a single file is stored.
type UploadOptions struct {
	Folder         string
	PublicID       string
	Format         string   // force conversion, empty keeps the source format
	AllowedFormats []string // reject anything else, empty allows all
	ResourceType   string   // image, raw or auto
}

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, opts UploadOptions) (string, error)
}

// Upload profiles used by the HTTP handlers.
var (
	ProfilePicture = UploadOptions{Folder: "usersProfilePic", Format: "png", ResourceType: "image"}
	DriverReceipt  = UploadOptions{Folder: "driver_receipts", AllowedFormats: []string{"pdf", "png", "jpg"}, ResourceType: "auto"}
	UserReceipt    = UploadOptions{Folder: "user_receipts", Format: "pdf", ResourceType: "auto"}
)

// WithPublicID returns a copy of opts named "<unix-millis>-<base name>".
func (o UploadOptions) WithPublicID(filename string, now time.Time) UploadOptions {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(strings.TrimSpace(base), " ", "_")
	if base == "" || base == "." {
		base = "file"
	}
	o.PublicID = fmt.Sprintf("%d-%s", now.UnixMilli(), base)
	return o
}

// ReceiptURL rehydrates a stored receipt reference. Absolute URLs pass through;
// bare paths are resolved under baseURL as raw (.pdf) or image resources.
func ReceiptURL(baseURL, path string) string {
	if strings.HasPrefix(path, "http") {
		return path
	}
	kind := "image"
	if strings.HasSuffix(path, ".pdf") {
		kind = "raw"
	}
	return fmt.Sprintf("%s/%s/upload/%s", strings.TrimSuffix(baseURL, "/"), kind, path)
}
