package repository

import (
	"context"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ScanRepository defines the operations for card scan analytics persistence.
// The table is append-only; there are no update or delete operations.
type ScanRepository interface {
	// Create appends a scan event.
	Create(ctx context.Context, scan *entity.CardScan) error

	// ListByCard retrieves all scan events for a card, newest first.
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.CardScan, error)

	// CountByCard returns the total number of scans recorded for a card.
	CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error)
}
