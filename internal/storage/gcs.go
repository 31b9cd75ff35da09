// Package storage handles product image processing and object storage.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Uploader stores a processed image and returns a retrievable URL.
type Uploader interface {
	UploadProductImage(ctx context.Context, data []byte) (string, error)
}

type gcsUploader struct {
	bucket string
}

// NewGCSUploader builds an Uploader backed by Google Cloud Storage.
// GCS_BUCKET must be set.
func NewGCSUploader() (Uploader, error) {
	bucket := os.Getenv("GCS_BUCKET")
	if bucket == "" {
		return nil, errors.New("GCS_BUCKET is required")
	}
	return &gcsUploader{bucket: bucket}, nil
}

// newClient prefers ADC; GCS_CREDENTIALS_JSON overrides for local use.
func newClient(ctx context.Context) (*gcs.Client, error) {
	if credJSON := os.Getenv("GCS_CREDENTIALS_JSON"); strings.TrimSpace(credJSON) != "" {
		return gcs.NewClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
	}
	return gcs.NewClient(ctx)
}

func (u *gcsUploader) UploadProductImage(ctx context.Context, data []byte) (string, error) {
	client, err := newClient(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create storage client: %w", err)
	}
	defer client.Close()

	objectName := fmt.Sprintf("productos/%d-%s.jpg", time.Now().UnixMilli(), uuid.NewString())

	wc := client.Bucket(u.bucket).Object(objectName).NewWriter(ctx)
	wc.ContentType = "image/jpeg"
	wc.CacheControl = "public, max-age=86400"

	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", objectName, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize object %s: %w", objectName, err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", u.bucket, objectName), nil
}
