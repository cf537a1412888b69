package service

import (
	"context"
	"io"
)

// ImageStore defines the contract for storing uploaded card images.
type ImageStore interface {
	// Store writes an image under folder/filename and returns its public URL.
	Store(ctx context.Context, folder, filename, contentType string, content io.Reader) (string, error)

	// Delete removes a previously stored image by its public URL.
	Delete(ctx context.Context, url string) error
}
