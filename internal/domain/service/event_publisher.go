package service

import (
	"context"
)

// ScanEvent is the analytics event published when a public card is scanned.
type ScanEvent struct {
	RequestID string   `json:"request_id,omitempty"` // For distributed tracing
	ScanID    string   `json:"scan_id"`
	CardID    string   `json:"card_id"`
	Source    string   `json:"source"` // "qr" or "link"
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	City      string   `json:"city"`
	Country   string   `json:"country"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishScanEvent publishes a card scan event for async processing.
	// Failures are the caller's to swallow: analytics must never fail the
	// primary write.
	PublishScanEvent(ctx context.Context, event *ScanEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
