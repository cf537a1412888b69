package handler

import (
	"log/slog"
	"net/http"

	"cardlink/config"
	"cardlink/internal/delivery/http/response"
	"cardlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UploadHandler holds dependencies for the image upload handler.
type UploadHandler struct {
	uc      usecase.UploadUsecase
	maxSize int64
	logger  *slog.Logger
}

// NewUploadHandler is the constructor for UploadHandler, injected by Fx.
func NewUploadHandler(uc usecase.UploadUsecase, cfg *config.Config, logger *slog.Logger) *UploadHandler {
	var maxSize int64
	if cfg.Upload != nil {
		maxSize = cfg.Upload.MaxSizeBytes
	}

	return &UploadHandler{
		uc:      uc,
		maxSize: maxSize,
		logger:  logger,
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// UploadImage handles the multipart image upload request. The file goes under
// the optional "folder" form field, defaulting inside the use case.
func (h *UploadHandler) UploadImage(c echo.Context) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Form field 'image' is required")
	}

	if h.maxSize > 0 && fileHeader.Size > h.maxSize {
		return response.BadRequest(c, "IMAGE_TOO_LARGE", "Image exceeds the maximum allowed size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return errors.Wrap(err, "failed to open uploaded image")
	}
	defer file.Close()

	url, err := h.uc.UploadImage(c.Request().Context(), usecase.UploadImageInput{
		Folder:      c.FormValue("folder"),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Size:        fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, uploadResponse{URL: url}, "Image uploaded successfully")
}
