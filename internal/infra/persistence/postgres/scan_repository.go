package postgres

import (
	"context"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// scanRepository implements the repository.ScanRepository interface.
type scanRepository struct {
	db *gorm.DB
}

// NewScanRepository is the constructor for scanRepository.
func NewScanRepository(db *gorm.DB) repository.ScanRepository {
	return &scanRepository{
		db: db,
	}
}

// Create appends a scan event.
func (repo *scanRepository) Create(ctx context.Context, scan *entity.CardScan) error {
	scanM := fromScanDomain(scan)

	if err := repo.db.WithContext(ctx).Create(scanM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrScannedCardNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to record card scan")
	}

	// Update the entity with generated values
	scan.ID = scanM.ID
	scan.CreatedAt = scanM.CreatedAt

	return nil
}

// ListByCard retrieves all scan events for a card, newest first.
func (repo *scanRepository) ListByCard(ctx context.Context, cardID uuid.UUID) ([]*entity.CardScan, error) {
	var scanModels []*model.CardScanModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		Order("created_at DESC").
		Find(&scanModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list scans by card")
	}

	scans := make([]*entity.CardScan, 0, len(scanModels))
	for _, scanM := range scanModels {
		scans = append(scans, toScanDomain(scanM))
	}

	return scans, nil
}

// CountByCard returns the total number of scans recorded for a card.
func (repo *scanRepository) CountByCard(ctx context.Context, cardID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.CardScanModel{}).
		Where("card_id = ?", cardID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count scans by card")
	}

	return count, nil
}

// --- Mapper Functions ---

// toScanDomain converts a GORM CardScanModel to a domain CardScan entity.
func toScanDomain(data *model.CardScanModel) *entity.CardScan {
	if data == nil {
		return nil
	}

	return &entity.CardScan{
		ID:        data.ID,
		CardID:    data.CardID,
		IP:        data.IP,
		UserAgent: data.UserAgent,
		Source:    entity.ScanSource(data.Source),
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		City:      data.City,
		Country:   data.Country,
		CreatedAt: data.CreatedAt,
	}
}

// fromScanDomain converts a domain CardScan entity to a GORM CardScanModel.
func fromScanDomain(data *entity.CardScan) *model.CardScanModel {
	if data == nil {
		return nil
	}

	return &model.CardScanModel{
		ID:        data.ID,
		CardID:    data.CardID,
		IP:        data.IP,
		UserAgent: data.UserAgent,
		Source:    string(data.Source),
		Latitude:  data.Latitude,
		Longitude: data.Longitude,
		City:      data.City,
		Country:   data.Country,
		CreatedAt: data.CreatedAt,
	}
}
