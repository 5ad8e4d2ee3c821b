package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/sirupsen/logrus"
)

// Cloudinary is the production Uploader.
type Cloudinary struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinary(cloudName, apiKey, apiSecret string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Cloudinary{cld: cld}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, file io.Reader, opts UploadOptions) (string, error) {
	params := uploader.UploadParams{
		Folder:       opts.Folder,
		PublicID:     opts.PublicID,
		Format:       opts.Format,
		ResourceType: opts.ResourceType,
	}
	if len(opts.AllowedFormats) > 0 {
		params.AllowedFormats = api.CldAPIArray(opts.AllowedFormats)
	}

	res, err := c.cld.Upload.Upload(ctx, file, params)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary upload: empty url in response")
	}

	logrus.WithFields(logrus.Fields{
		"folder":    opts.Folder,
		"public_id": res.PublicID,
		"bytes":     res.Bytes,
	}).Debug("uploaded file")
	return res.SecureURL, nil
}
