package qrcode

import (
	"fmt"
	"strings"

	"cardlink/internal/domain/service"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

type qrcodeService struct {
	size                 int
	errorCorrectionLevel qrcode.RecoveryLevel
	baseURL              string
}

// NewQRCodeService creates a new QR code service instance.
// baseURL is the public frontend origin the encoded card URLs point at.
func NewQRCodeService(size int, errorCorrectionLevel string, baseURL string) service.QRCodeService {
	// Set error correction level
	var level qrcode.RecoveryLevel
	switch errorCorrectionLevel {
	case "L":
		level = qrcode.Low
	case "M":
		level = qrcode.Medium
	case "Q":
		level = qrcode.High
	case "H":
		level = qrcode.Highest
	default:
		level = qrcode.Medium
	}

	return &qrcodeService{
		size:                 size,
		errorCorrectionLevel: level,
		baseURL:              strings.TrimRight(baseURL, "/"),
	}
}

// CardURL builds the public URL a card QR code encodes.
func (s *qrcodeService) CardURL(cardID uuid.UUID) string {
	return fmt.Sprintf("%s/public-card/%s", s.baseURL, cardID)
}

// GenerateCardQR generates a PNG QR code pointing at the public card page.
func (s *qrcodeService) GenerateCardQR(cardID uuid.UUID) ([]byte, error) {
	qrCode, err := qrcode.New(s.CardURL(cardID), s.errorCorrectionLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to create QR code: %w", err)
	}

	pngBytes, err := qrCode.PNG(s.size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}

	return pngBytes, nil
}

// ParseCardURL extracts the card ID from a scanned card URL.
func (s *qrcodeService) ParseCardURL(payload string) (uuid.UUID, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(payload), "/")

	idx := strings.LastIndex(trimmed, "/public-card/")
	if idx < 0 {
		return uuid.Nil, fmt.Errorf("not a card URL: %s", payload)
	}

	cardID, err := uuid.Parse(trimmed[idx+len("/public-card/"):])
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse card ID: %w", err)
	}

	return cardID, nil
}
