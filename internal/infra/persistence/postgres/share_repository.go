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

// shareRepository implements the repository.ShareRepository interface.
type shareRepository struct {
	db *gorm.DB
}

// NewShareRepository is the constructor for shareRepository.
func NewShareRepository(db *gorm.DB) repository.ShareRepository {
	return &shareRepository{
		db: db,
	}
}

// Create persists a new share record. An insert that collides with the
// partial unique index on approved (owner card, visitor card) pairs maps to
// ErrDuplicateShare so the caller can treat the operation as idempotent.
func (repo *shareRepository) Create(ctx context.Context, share *entity.VisitorContactShare) error {
	shareM := fromShareDomain(share)

	if err := repo.db.WithContext(ctx).Create(shareM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateShare
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCardNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create visitor contact share")
	}

	// Update the entity with generated values
	share.ID = shareM.ID
	share.CreatedAt = shareM.CreatedAt

	return nil
}

// FindApproved retrieves the approved share for an (owner card, visitor card) pair.
func (repo *shareRepository) FindApproved(ctx context.Context, ownerCardID, visitorCardID uuid.UUID) (*entity.VisitorContactShare, error) {
	var shareM model.VisitorContactShareModel

	if err := repo.db.WithContext(ctx).
		Where("owner_card_id = ? AND visitor_card_id = ? AND status = ?",
			ownerCardID, visitorCardID, string(entity.ShareStatusApproved)).
		First(&shareM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrShareNotFound
		}

		return nil, errors.Wrap(err, "failed to find approved share")
	}

	return toShareDomain(&shareM), nil
}

// --- Mapper Functions ---

// toShareDomain converts a GORM VisitorContactShareModel to a domain entity.
func toShareDomain(data *model.VisitorContactShareModel) *entity.VisitorContactShare {
	if data == nil {
		return nil
	}

	return &entity.VisitorContactShare{
		ID:            data.ID,
		OwnerCardID:   data.OwnerCardID,
		VisitorCardID: data.VisitorCardID,
		OwnerID:       data.OwnerID,
		VisitorID:     data.VisitorID,
		Status:        entity.ShareStatus(data.Status),
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		City:          data.City,
		Country:       data.Country,
		CreatedAt:     data.CreatedAt,
	}
}

// fromShareDomain converts a domain VisitorContactShare entity to a GORM model.
func fromShareDomain(data *entity.VisitorContactShare) *model.VisitorContactShareModel {
	if data == nil {
		return nil
	}

	return &model.VisitorContactShareModel{
		ID:            data.ID,
		OwnerCardID:   data.OwnerCardID,
		VisitorCardID: data.VisitorCardID,
		OwnerID:       data.OwnerID,
		VisitorID:     data.VisitorID,
		Status:        string(data.Status),
		Latitude:      data.Latitude,
		Longitude:     data.Longitude,
		City:          data.City,
		Country:       data.Country,
		CreatedAt:     data.CreatedAt,
	}
}
