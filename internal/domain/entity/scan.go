package entity

import (
	"time"

	"github.com/google/uuid"
)

// ScanSource tags how a public card view reached the server.
type ScanSource string

const (
	ScanSourceQR   ScanSource = "qr"
	ScanSourceLink ScanSource = "link"
)

// CardScan is an append-only analytics event recorded when a card is viewed.
// Scans are never updated or deleted by the application.
type CardScan struct {
	ID        uuid.UUID  `json:"id"`
	CardID    uuid.UUID  `json:"cardId"`
	IP        string     `json:"ip"`
	UserAgent string     `json:"userAgent"`
	Source    ScanSource `json:"source"`
	Latitude  *float64   `json:"latitude"`
	Longitude *float64   `json:"longitude"`
	City      string     `json:"city"`
	Country   string     `json:"country"`
	CreatedAt time.Time  `json:"createdAt"`
}
