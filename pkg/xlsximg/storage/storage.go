// Package storage publishes extracted images to object storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"
)

// UploadInput encapsulates the parameters needed to upload an object.
type UploadInput struct {
	Bucket      string
	Key         string
	Body        io.Reader
	ContentType string
}

// UploadOutput contains the result of a successful upload.
type UploadOutput struct {
	Location string
	ETag     string
}

// ObjectStorage abstracts cloud object storage operations.
type ObjectStorage interface {
	Upload(ctx context.Context, input UploadInput) (*UploadOutput, error)
}

// Publisher uploads files from a local directory under a key prefix.
type Publisher struct {
	store  ObjectStorage
	bucket string
	prefix string
	logger *zap.Logger
}

// NewPublisher creates a Publisher for bucket. Keys are prefix + file name.
func NewPublisher(store ObjectStorage, bucket, prefix string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{store: store, bucket: bucket, prefix: prefix, logger: logger}
}

// Publish uploads each named file from dir and returns the object locations
// in the same order. It stops at the first failure.
func (p *Publisher) Publish(ctx context.Context, dir string, names []string) ([]string, error) {
	locations := make([]string, 0, len(names))
	for _, name := range names {
		loc, err := p.publishFile(ctx, dir, name)
		if err != nil {
			return locations, fmt.Errorf("publishing %s: %w", name, err)
		}
		locations = append(locations, loc)
		p.logger.Info("image published", zap.String("image", name), zap.String("location", loc))
	}
	return locations, nil
}

func (p *Publisher) publishFile(ctx context.Context, dir, name string) (string, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}
	defer f.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	out, err := p.store.Upload(ctx, UploadInput{
		Bucket:      p.bucket,
		Key:         ObjectKey(p.prefix, name),
		Body:        f,
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return out.Location, nil
}

// ObjectKey joins a key prefix and a file name with a single slash.
func ObjectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
