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

// contactRepository implements the repository.ContactRepository interface.
type contactRepository struct {
	db *gorm.DB
}

// NewContactRepository is the constructor for contactRepository.
func NewContactRepository(db *gorm.DB) repository.ContactRepository {
	return &contactRepository{
		db: db,
	}
}

// Create persists a new contact.
func (repo *contactRepository) Create(ctx context.Context, contact *entity.Contact) error {
	contactM := fromContactDomain(contact)

	if err := repo.db.WithContext(ctx).Create(contactM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrContactNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create contact")
	}

	// Update the entity with generated values
	contact.ID = contactM.ID
	contact.CreatedAt = contactM.CreatedAt
	contact.UpdatedAt = contactM.UpdatedAt

	return nil
}

// FindByOwner retrieves a contact by id scoped to its owner.
func (repo *contactRepository) FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel

	if err := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by owner")
	}

	return toContactDomain(&contactM), nil
}

// FindByIdentifier searches for a duplicate contact matching on phone or
// email within the query's (user, card) scope.
func (repo *contactRepository) FindByIdentifier(ctx context.Context, query repository.ContactIdentifierQuery) (*entity.Contact, error) {
	if query.Phone == "" && query.Email == "" {
		return nil, repository.ErrContactNotFound
	}

	db := repo.db.WithContext(ctx).
		Where("user_id = ?", query.UserID)

	if query.CardID != uuid.Nil {
		db = db.Where("card_id = ?", query.CardID)
	} else {
		db = db.Where("card_id IS NULL")
	}

	switch {
	case query.Phone != "" && query.Email != "":
		db = db.Where("phone = ? OR email = ?", query.Phone, query.Email)
	case query.Phone != "":
		db = db.Where("phone = ?", query.Phone)
	default:
		db = db.Where("email = ?", query.Email)
	}

	var contactM model.ContactModel
	if err := db.First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by identifier")
	}

	return toContactDomain(&contactM), nil
}

// FindBySourceCard retrieves the contact a user holds for a given source card.
func (repo *contactRepository) FindBySourceCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.Contact, error) {
	var contactM model.ContactModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND card_id = ?", userID, cardID).
		First(&contactM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to find contact by source card")
	}

	return toContactDomain(&contactM), nil
}

// ListByOwner retrieves all contacts of a user, newest first.
func (repo *contactRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	var contactModels []*model.ContactModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&contactModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list contacts by owner")
	}

	contacts := make([]*entity.Contact, 0, len(contactModels))
	for _, contactM := range contactModels {
		contacts = append(contacts, toContactDomain(contactM))
	}

	return contacts, nil
}

// Update persists all columns of an existing contact.
func (repo *contactRepository) Update(ctx context.Context, contact *entity.Contact) error {
	updates := map[string]any{
		"first_name":  contact.FirstName,
		"last_name":   contact.LastName,
		"phone":       contact.Phone,
		"email":       contact.Email,
		"company":     contact.Company,
		"job_title":   contact.JobTitle,
		"logo":        contact.Logo,
		"note":        contact.Note,
		"profile_img": contact.ProfileImg,
		"latitude":    contact.Latitude,
		"longitude":   contact.Longitude,
		"city":        contact.City,
		"country":     contact.Country,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.ContactModel{}).
		Where("id = ? AND user_id = ?", contact.ID, contact.UserID).
		Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update contact")
	}

	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// Delete hard-deletes an owner's contact.
func (repo *contactRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.ContactModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete contact")
	}

	if result.RowsAffected == 0 {
		return repository.ErrContactNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toContactDomain converts a GORM ContactModel to a domain Contact entity.
func toContactDomain(data *model.ContactModel) *entity.Contact {
	if data == nil {
		return nil
	}

	return &entity.Contact{
		ID:         data.ID,
		UserID:     data.UserID,
		CardID:     data.CardID,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		Email:      data.Email,
		Company:    data.Company,
		JobTitle:   data.JobTitle,
		Logo:       data.Logo,
		Note:       data.Note,
		ProfileImg: data.ProfileImg,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		City:       data.City,
		Country:    data.Country,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromContactDomain converts a domain Contact entity to a GORM ContactModel.
func fromContactDomain(data *entity.Contact) *model.ContactModel {
	if data == nil {
		return nil
	}

	return &model.ContactModel{
		ID:         data.ID,
		UserID:     data.UserID,
		CardID:     data.CardID,
		FirstName:  data.FirstName,
		LastName:   data.LastName,
		Phone:      data.Phone,
		Email:      data.Email,
		Company:    data.Company,
		JobTitle:   data.JobTitle,
		Logo:       data.Logo,
		Note:       data.Note,
		ProfileImg: data.ProfileImg,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		City:       data.City,
		Country:    data.Country,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
