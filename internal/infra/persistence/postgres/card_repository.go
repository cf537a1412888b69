package postgres

import (
	"context"
	"encoding/json"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cardRepository implements the repository.CardRepository interface.
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository is the constructor for cardRepository.
func NewCardRepository(db *gorm.DB) repository.CardRepository {
	return &cardRepository{
		db: db,
	}
}

// Create persists a new card together with its nested rows.
func (repo *cardRepository) Create(ctx context.Context, card *entity.Card) error {
	cardM, err := fromCardDomain(card)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).Create(cardM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return repository.ErrCardNotFound
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create card")
	}

	// Update the entity with generated values
	card.ID = cardM.ID
	card.CreatedAt = cardM.CreatedAt
	card.UpdatedAt = cardM.UpdatedAt
	if card.PersonalInfo != nil && cardM.PersonalInfo != nil {
		card.PersonalInfo.ID = cardM.PersonalInfo.ID
		card.PersonalInfo.CardID = cardM.ID
	}
	if card.SocialLinks != nil && cardM.SocialLinks != nil {
		card.SocialLinks.ID = cardM.SocialLinks.ID
		card.SocialLinks.CardID = cardM.ID
	}

	return nil
}

// FindByID retrieves a card by id regardless of owner, without relations.
func (repo *cardRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by ID")
	}

	return toCardDomain(&cardM)
}

// FindByIDWithRelations retrieves a card with its nested rows preloaded.
func (repo *cardRepository) FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.db.WithContext(ctx).
		Preload("PersonalInfo").
		Preload("SocialLinks").
		Where("id = ?", id).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card with relations")
	}

	return toCardDomain(&cardM)
}

// FindByOwner retrieves a card by id scoped to its owner, with relations.
func (repo *cardRepository) FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error) {
	var cardM model.CardModel

	if err := repo.db.WithContext(ctx).
		Preload("PersonalInfo").
		Preload("SocialLinks").
		Where("id = ? AND user_id = ?", id, userID).
		First(&cardM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to find card by owner")
	}

	return toCardDomain(&cardM)
}

// ListByOwner retrieves all cards of a user, newest first, with relations.
func (repo *cardRepository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	var cardModels []*model.CardModel

	if err := repo.db.WithContext(ctx).
		Preload("PersonalInfo").
		Preload("SocialLinks").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&cardModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list cards by owner")
	}

	cards := make([]*entity.Card, 0, len(cardModels))
	for _, cardM := range cardModels {
		card, err := toCardDomain(cardM)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// Update persists changed card columns. Nested rows go through the upsert
// methods so partial updates do not wipe them.
func (repo *cardRepository) Update(ctx context.Context, card *entity.Card) error {
	updates := map[string]any{
		"card_title":  card.CardTitle,
		"card_color":  card.CardColor,
		"logo":        card.Logo,
		"profile":     card.Profile,
		"cover":       card.Cover,
		"is_favorite": card.IsFavorite,
	}

	result := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ? AND user_id = ?", card.ID, card.UserID).
		Updates(updates)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update card")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// UpdateQR stores the generated QR payload and image reference.
func (repo *cardRepository) UpdateQR(ctx context.Context, id uuid.UUID, qrCode, qrImage string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.CardModel{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"qr_code":  qrCode,
			"qr_image": qrImage,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update card QR")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// Delete removes an owner's card and its dependent rows.
func (repo *cardRepository) Delete(ctx context.Context, id, userID uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CardModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete card")
	}

	if result.RowsAffected == 0 {
		return repository.ErrCardNotFound
	}

	return nil
}

// FindPersonalInfo retrieves the personal info row of a card.
func (repo *cardRepository) FindPersonalInfo(ctx context.Context, cardID uuid.UUID) (*entity.PersonalInfo, error) {
	var infoM model.PersonalInfoModel

	if err := repo.db.WithContext(ctx).
		Where("card_id = ?", cardID).
		First(&infoM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPersonalInfoNotFound
		}

		return nil, errors.Wrap(err, "failed to find personal info")
	}

	return toPersonalInfoDomain(&infoM), nil
}

// UpsertPersonalInfo creates or replaces the personal info row of a card.
func (repo *cardRepository) UpsertPersonalInfo(ctx context.Context, info *entity.PersonalInfo) error {
	infoM := fromPersonalInfoDomain(info)

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"first_name", "last_name", "job_title", "phone_number",
				"email", "company", "image", "logo", "note", "banner",
				"profile_img", "updated_at",
			}),
		}).
		Create(infoM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert personal info")
	}

	info.ID = infoM.ID

	return nil
}

// UpsertSocialLinks creates or replaces the social links row of a card.
func (repo *cardRepository) UpsertSocialLinks(ctx context.Context, links *entity.SocialLinks) error {
	linksM, err := fromSocialLinksDomain(links)
	if err != nil {
		return err
	}

	if err := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "card_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"links", "updated_at"}),
		}).
		Create(linksM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to upsert social links")
	}

	links.ID = linksM.ID

	return nil
}

// --- Mapper Functions ---

// toCardDomain converts a GORM CardModel to a domain Card entity.
func toCardDomain(data *model.CardModel) (*entity.Card, error) {
	if data == nil {
		return nil, nil
	}

	card := &entity.Card{
		ID:           data.ID,
		UserID:       data.UserID,
		CardTitle:    data.CardTitle,
		CardColor:    data.CardColor,
		Logo:         data.Logo,
		Profile:      data.Profile,
		Cover:        data.Cover,
		QRCode:       data.QRCode,
		QRImage:      data.QRImage,
		IsFavorite:   data.IsFavorite,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		PersonalInfo: toPersonalInfoDomain(data.PersonalInfo),
	}

	if data.SocialLinks != nil {
		links, err := toSocialLinksDomain(data.SocialLinks)
		if err != nil {
			return nil, err
		}
		card.SocialLinks = links
	}

	return card, nil
}

// fromCardDomain converts a domain Card entity to a GORM CardModel.
func fromCardDomain(data *entity.Card) (*model.CardModel, error) {
	if data == nil {
		return nil, nil
	}

	cardM := &model.CardModel{
		ID:           data.ID,
		UserID:       data.UserID,
		CardTitle:    data.CardTitle,
		CardColor:    data.CardColor,
		Logo:         data.Logo,
		Profile:      data.Profile,
		Cover:        data.Cover,
		QRCode:       data.QRCode,
		QRImage:      data.QRImage,
		IsFavorite:   data.IsFavorite,
		CreatedAt:    data.CreatedAt,
		UpdatedAt:    data.UpdatedAt,
		PersonalInfo: fromPersonalInfoDomain(data.PersonalInfo),
	}

	if data.SocialLinks != nil {
		linksM, err := fromSocialLinksDomain(data.SocialLinks)
		if err != nil {
			return nil, err
		}
		cardM.SocialLinks = linksM
	}

	return cardM, nil
}

// toPersonalInfoDomain converts a GORM PersonalInfoModel to a domain entity.
func toPersonalInfoDomain(data *model.PersonalInfoModel) *entity.PersonalInfo {
	if data == nil {
		return nil
	}

	return &entity.PersonalInfo{
		ID:          data.ID,
		CardID:      data.CardID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		JobTitle:    data.JobTitle,
		PhoneNumber: data.PhoneNumber,
		Email:       data.Email,
		Company:     data.Company,
		Image:       data.Image,
		Logo:        data.Logo,
		Note:        data.Note,
		Banner:      data.Banner,
		ProfileImg:  data.ProfileImg,
	}
}

// fromPersonalInfoDomain converts a domain PersonalInfo entity to a GORM model.
func fromPersonalInfoDomain(data *entity.PersonalInfo) *model.PersonalInfoModel {
	if data == nil {
		return nil
	}

	return &model.PersonalInfoModel{
		ID:          data.ID,
		CardID:      data.CardID,
		FirstName:   data.FirstName,
		LastName:    data.LastName,
		JobTitle:    data.JobTitle,
		PhoneNumber: data.PhoneNumber,
		Email:       data.Email,
		Company:     data.Company,
		Image:       data.Image,
		Logo:        data.Logo,
		Note:        data.Note,
		Banner:      data.Banner,
		ProfileImg:  data.ProfileImg,
	}
}

// toSocialLinksDomain converts a GORM SocialLinksModel to a domain entity.
func toSocialLinksDomain(data *model.SocialLinksModel) (*entity.SocialLinks, error) {
	if data == nil {
		return nil, nil
	}

	links := &entity.SocialLinks{
		ID:     data.ID,
		CardID: data.CardID,
	}

	if len(data.Links) > 0 {
		if err := json.Unmarshal(data.Links, &links.Links); err != nil {
			return nil, errors.Wrap(err, "failed to decode social links")
		}
	}

	return links, nil
}

// fromSocialLinksDomain converts a domain SocialLinks entity to a GORM model.
func fromSocialLinksDomain(data *entity.SocialLinks) (*model.SocialLinksModel, error) {
	if data == nil {
		return nil, nil
	}

	raw, err := json.Marshal(data.Links)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode social links")
	}

	return &model.SocialLinksModel{
		ID:     data.ID,
		CardID: data.CardID,
		Links:  raw,
	}, nil
}
