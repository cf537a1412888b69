// Package storage implements the image store on top of gocloud.dev blob
// buckets, so local disk and cloud object storage share one code path.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gocloud.dev/blob"

	// Bucket drivers. fileblob serves local development, memblob serves
	// tests; cloud drivers register the same way when needed.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"cardlink/config"
	"cardlink/internal/domain/service"
)

type blobStore struct {
	bucket        *blob.Bucket
	publicBaseURL string
}

// NewBlobStore opens the configured bucket and returns it as an ImageStore.
// The returned closer shuts the bucket down on application stop.
func NewBlobStore(ctx context.Context, cfg *config.Config) (service.ImageStore, func() error, error) {
	if cfg.Upload == nil || cfg.Upload.BucketURL == "" {
		return nil, nil, errors.New("upload bucket url must be provided")
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Upload.BucketURL)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open upload bucket")
	}

	store := &blobStore{
		bucket:        bucket,
		publicBaseURL: strings.TrimRight(cfg.Upload.PublicBaseURL, "/"),
	}

	return store, bucket.Close, nil
}

// Store writes content under a random key inside folder and returns the
// public URL of the stored object.
func (s *blobStore) Store(ctx context.Context, folder, filename, contentType string, content io.Reader) (string, error) {
	key := path.Join(sanitizeSegment(folder), uuid.NewString()+"-"+sanitizeSegment(filename))

	writer, err := s.bucket.NewWriter(ctx, key, &blob.WriterOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", errors.Wrap(err, "open blob writer")
	}

	if _, err := io.Copy(writer, content); err != nil {
		_ = writer.Close()

		return "", errors.Wrap(err, "write blob")
	}

	if err := writer.Close(); err != nil {
		return "", errors.Wrap(err, "close blob writer")
	}

	return fmt.Sprintf("%s/%s", s.publicBaseURL, key), nil
}

// Delete removes the object behind a previously returned public URL.
// Unknown URLs are rejected rather than silently ignored.
func (s *blobStore) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.publicBaseURL+"/")
	if !ok {
		return errors.Errorf("url does not belong to this store: %s", url)
	}

	if err := s.bucket.Delete(ctx, key); err != nil {
		return errors.Wrap(err, "delete blob")
	}

	return nil
}

// sanitizeSegment strips path separators so user-supplied names cannot
// escape their folder.
func sanitizeSegment(segment string) string {
	segment = strings.ReplaceAll(segment, "\\", "-")
	segment = strings.ReplaceAll(segment, "/", "-")
	segment = strings.ReplaceAll(segment, "..", "-")

	if segment == "" {
		return "file"
	}

	return segment
}
