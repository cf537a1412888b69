package impl

import (
	"context"
	"log/slog"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/domain/service"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

type scanService struct {
	cardRepo         repository.CardRepository
	scanRepo         repository.ScanRepository
	locationResolver service.LocationResolver
	eventPublisher   service.EventPublisher
	logger           *slog.Logger
}

// NewScanService creates a new public card and scan analytics service instance.
func NewScanService(
	cardRepo repository.CardRepository,
	scanRepo repository.ScanRepository,
	locationResolver service.LocationResolver,
	eventPublisher service.EventPublisher,
	logger *slog.Logger,
) usecase.ScanUsecase {
	return &scanService{
		cardRepo:         cardRepo,
		scanRepo:         scanRepo,
		locationResolver: locationResolver,
		eventPublisher:   eventPublisher,
		logger:           logger,
	}
}

// GetPublicCard retrieves a card with relations for unauthenticated viewing.
func (s *scanService) GetPublicCard(ctx context.Context, cardID uuid.UUID) (*entity.Card, error) {
	card, err := s.cardRepo.FindByIDWithRelations(ctx, cardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load public card")
	}

	return card, nil
}

// RecordScan appends a scan event with its resolved location and publishes it
// for async analytics.
func (s *scanService) RecordScan(ctx context.Context, cardID uuid.UUID, input usecase.RecordScanInput) (*entity.CardScan, error) {
	if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrScannedCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load scanned card")
	}

	// Client-reported location wins; the resolver fills whatever is missing
	// from the IP, header hints, or the fallback.
	location := s.locationResolver.Resolve(ctx, input.IP, service.LocationHints{
		Timezone:       input.Timezone,
		AcceptLanguage: input.AcceptLanguage,
	})
	if input.ClientLocation != nil {
		location = input.ClientLocation.Merge(location)
	}

	source := input.Source
	if source == "" {
		source = entity.ScanSourceLink
	}

	scan := &entity.CardScan{
		CardID:    cardID,
		IP:        input.IP,
		UserAgent: input.UserAgent,
		Source:    source,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		City:      location.City,
		Country:   location.Country,
	}

	if err := s.scanRepo.Create(ctx, scan); err != nil {
		return nil, errors.Wrap(err, "failed to record scan")
	}

	// Analytics are best effort; a publisher outage never fails the write.
	event := &service.ScanEvent{
		RequestID: input.RequestID,
		ScanID:    scan.ID.String(),
		CardID:    cardID.String(),
		Source:    string(source),
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		City:      location.City,
		Country:   location.Country,
	}
	if err := s.eventPublisher.PublishScanEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "scan event publish failed",
			slog.String("scan_id", scan.ID.String()),
			slog.Any("error", err))
	}

	return scan, nil
}

// ListScans retrieves the scan history of a card, restricted to its owner.
func (s *scanService) ListScans(ctx context.Context, cardID, userID uuid.UUID) (*usecase.ScanHistory, error) {
	if _, err := s.cardRepo.FindByOwner(ctx, cardID, userID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotOwned
		}

		return nil, errors.Wrap(err, "failed to load card")
	}

	scans, err := s.scanRepo.ListByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list scans")
	}

	total, err := s.scanRepo.CountByCard(ctx, cardID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to count scans")
	}

	return &usecase.ScanHistory{Scans: scans, Total: total}, nil
}
