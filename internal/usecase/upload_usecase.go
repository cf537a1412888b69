package usecase

import (
	"context"
	"io"
)

// UploadImageInput is an image to store in the blob bucket.
type UploadImageInput struct {
	Folder      string
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadUsecase defines the image upload use case.
type UploadUsecase interface {
	// UploadImage stores an image and returns its public URL.
	UploadImage(ctx context.Context, input UploadImageInput) (string, error)
}
