package impl

import (
	"context"
	"log/slog"
	"strings"

	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/service"
	"cardlink/internal/usecase"

	"github.com/pkg/errors"
)

// allowedImageTypes are the content types the upload endpoint accepts.
var allowedImageTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
	"image/webp": {},
	"image/gif":  {},
}

type uploadService struct {
	imageStore service.ImageStore
	logger     *slog.Logger
}

// NewUploadService creates a new image upload service instance.
func NewUploadService(imageStore service.ImageStore, logger *slog.Logger) usecase.UploadUsecase {
	return &uploadService{
		imageStore: imageStore,
		logger:     logger,
	}
}

// UploadImage stores an image and returns its public URL.
func (s *uploadService) UploadImage(ctx context.Context, input usecase.UploadImageInput) (string, error) {
	if input.Content == nil {
		return "", domainerrors.ErrValidationFailed.WithDetails("image content is required")
	}

	if _, ok := allowedImageTypes[strings.ToLower(input.ContentType)]; !ok {
		return "", domainerrors.ErrValidationFailed.WithDetails("unsupported image type: " + input.ContentType)
	}

	folder := strings.TrimSpace(input.Folder)
	if folder == "" {
		folder = "images"
	}

	url, err := s.imageStore.Store(ctx, folder, input.Filename, input.ContentType, input.Content)
	if err != nil {
		s.logger.ErrorContext(ctx, "image upload failed",
			slog.String("folder", folder),
			slog.Any("error", err))

		return "", errors.Wrap(domainerrors.ErrUpstreamFailure, err.Error())
	}

	return url, nil
}
