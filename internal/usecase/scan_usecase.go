package usecase

import (
	"context"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// RecordScanInput carries the request-derived context of a public card view.
type RecordScanInput struct {
	IP        string
	UserAgent string
	Source    entity.ScanSource

	// ClientLocation is the optional location reported by the scanning
	// client; it takes precedence over IP resolution.
	ClientLocation *entity.GeoLocation

	// Timezone and AcceptLanguage are fallback hints for the resolver.
	Timezone       string
	AcceptLanguage string

	// RequestID propagates into the published analytics event.
	RequestID string
}

// ScanHistory is a card's scan listing together with its total count.
type ScanHistory struct {
	Scans []*entity.CardScan
	Total int64
}

// ScanUsecase defines the public card view and scan analytics use cases.
type ScanUsecase interface {
	// GetPublicCard retrieves a card with relations for unauthenticated
	// viewing.
	GetPublicCard(ctx context.Context, cardID uuid.UUID) (*entity.Card, error)

	// RecordScan appends a scan event with its resolved location and
	// publishes it for async analytics. Publish failures never fail the
	// write.
	RecordScan(ctx context.Context, cardID uuid.UUID, input RecordScanInput) (*entity.CardScan, error)

	// ListScans retrieves the scan history of a card, restricted to the
	// card's owner.
	ListScans(ctx context.Context, cardID, userID uuid.UUID) (*ScanHistory, error)
}
