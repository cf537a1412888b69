package handler

import (
	"log/slog"
	"net/http"

	deliverycontext "cardlink/internal/delivery/context"
	"cardlink/internal/delivery/http/response"
	"cardlink/internal/domain/entity"
	"cardlink/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// HeaderXTimezone carries the client's IANA timezone, a location fallback
// hint for unresolvable IPs.
const HeaderXTimezone = "X-Timezone"

// ScanHandler holds dependencies for the public card and scan analytics
// handlers.
type ScanHandler struct {
	uc     usecase.ScanUsecase
	logger *slog.Logger
}

// NewScanHandler is the constructor for ScanHandler, injected by Fx.
func NewScanHandler(uc usecase.ScanUsecase, logger *slog.Logger) *ScanHandler {
	return &ScanHandler{
		uc:     uc,
		logger: logger,
	}
}

// GetPublicCard handles the unauthenticated card view request.
func (h *ScanHandler) GetPublicCard(c echo.Context) error {
	cardID, err := pathUUID(c, "cardId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	card, err := h.uc.GetPublicCard(c.Request().Context(), cardID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, card, "Card retrieved successfully")
}

type recordScanRequest struct {
	Source   string           `json:"source"`
	Location *locationPayload `json:"location"`
}

// RecordScan handles the scan recording request. The endpoint is
// unauthenticated and rate limited per client IP.
func (h *ScanHandler) RecordScan(c echo.Context) error {
	cardID, err := pathUUID(c, "cardId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	// The body is optional; a bare POST records a link view.
	var req recordScanRequest
	if err := c.Bind(&req); err != nil {
		req = recordScanRequest{}
	}

	input := usecase.RecordScanInput{
		IP:             c.RealIP(),
		UserAgent:      c.Request().UserAgent(),
		Source:         entity.ScanSource(req.Source),
		Timezone:       c.Request().Header.Get(HeaderXTimezone),
		AcceptLanguage: c.Request().Header.Get("Accept-Language"),
		RequestID:      deliverycontext.GetRequestID(c),
	}
	if req.Location != nil {
		location := req.Location.toGeoLocation()
		input.ClientLocation = &location
	}

	scan, err := h.uc.RecordScan(c.Request().Context(), cardID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, scan, "Scan recorded successfully")
}

type scanHistoryResponse struct {
	Scans []*entity.CardScan `json:"scans"`
	Total int64              `json:"total"`
}

// ListScans handles the owner-only scan history request.
func (h *ScanHandler) ListScans(c echo.Context) error {
	userID, ok := currentUserID(c)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "Invalid user ID in token")
	}

	cardID, err := pathUUID(c, "cardId")
	if err != nil {
		return response.BadRequest(c, "INVALID_CARD_ID", "Invalid card id")
	}

	history, err := h.uc.ListScans(c.Request().Context(), cardID, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	scans := history.Scans
	if scans == nil {
		scans = []*entity.CardScan{}
	}

	return response.Success(c, http.StatusOK, scanHistoryResponse{
		Scans: scans,
		Total: history.Total,
	}, "Scan history retrieved successfully")
}
