package service

import "github.com/google/uuid"

// QRCodeService defines the contract for card QR code generation.
type QRCodeService interface {
	// CardURL returns the public URL a card's QR code points at.
	CardURL(cardID uuid.UUID) string

	// GenerateCardQR renders the public card URL as a PNG image.
	GenerateCardQR(cardID uuid.UUID) ([]byte, error)

	// ParseCardURL extracts the card id from a public card URL, the inverse
	// of CardURL. Used when a scanned payload is posted back to the API.
	ParseCardURL(payload string) (uuid.UUID, error)
}
