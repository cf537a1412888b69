package impl

import (
	"bytes"
	"context"
	"log/slog"
	"strings"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/domain/service"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultCardTitle = "cardlink"
	defaultCardColor = "black"
)

type cardService struct {
	cardRepo      repository.CardRepository
	qrcodeService service.QRCodeService
	imageStore    service.ImageStore
	logger        *slog.Logger
}

// NewCardService creates a new card directory service instance.
func NewCardService(
	cardRepo repository.CardRepository,
	qrcodeService service.QRCodeService,
	imageStore service.ImageStore,
	logger *slog.Logger,
) usecase.CardUsecase {
	return &cardService{
		cardRepo:      cardRepo,
		qrcodeService: qrcodeService,
		imageStore:    imageStore,
		logger:        logger,
	}
}

// CreateCard creates a card with its nested rows and generates its QR code.
func (s *cardService) CreateCard(ctx context.Context, userID uuid.UUID, input usecase.CreateCardInput) (*entity.Card, error) {
	card := &entity.Card{
		UserID:     userID,
		CardTitle:  strings.TrimSpace(input.CardTitle),
		CardColor:  strings.TrimSpace(input.CardColor),
		Logo:       input.Logo,
		Profile:    input.Profile,
		Cover:      input.Cover,
		IsFavorite: input.IsFavorite,
	}
	if card.CardTitle == "" {
		card.CardTitle = defaultCardTitle
	}
	if card.CardColor == "" {
		card.CardColor = defaultCardColor
	}

	if input.PersonalInfo != nil {
		info, err := personalInfoFromInput(input.PersonalInfo, true)
		if err != nil {
			return nil, err
		}
		card.PersonalInfo = info
	}

	if len(input.SocialLinks) > 0 {
		card.SocialLinks = &entity.SocialLinks{
			Links: truncateSocialLinks(input.SocialLinks),
		}
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, errors.Wrap(err, "failed to create card")
	}

	s.attachQR(ctx, card)

	return card, nil
}

// attachQR generates and stores the card's QR code. Failures are logged but
// never fail the card write; the QR can be regenerated on a later update.
func (s *cardService) attachQR(ctx context.Context, card *entity.Card) {
	cardURL := s.qrcodeService.CardURL(card.ID)

	png, err := s.qrcodeService.GenerateCardQR(card.ID)
	if err != nil {
		s.logger.WarnContext(ctx, "QR generation failed, card saved without QR",
			slog.String("card_id", card.ID.String()),
			slog.Any("error", err))

		return
	}

	qrImage, err := s.imageStore.Store(ctx, "qrcodes", card.ID.String()+".png", "image/png", bytes.NewReader(png))
	if err != nil {
		s.logger.WarnContext(ctx, "QR image upload failed, card saved without QR image",
			slog.String("card_id", card.ID.String()),
			slog.Any("error", err))
		qrImage = ""
	}

	if err := s.cardRepo.UpdateQR(ctx, card.ID, cardURL, qrImage); err != nil {
		s.logger.WarnContext(ctx, "QR persist failed",
			slog.String("card_id", card.ID.String()),
			slog.Any("error", err))

		return
	}

	card.QRCode = cardURL
	card.QRImage = qrImage
}

// ListCards retrieves all cards of a user with relations, newest first.
func (s *cardService) ListCards(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error) {
	cards, err := s.cardRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cards")
	}

	return cards, nil
}

// GetCard retrieves an owned card with relations.
func (s *cardService) GetCard(ctx context.Context, cardID, userID uuid.UUID) (*entity.Card, error) {
	card, err := s.cardRepo.FindByOwner(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotOwned
		}

		return nil, errors.Wrap(err, "failed to load card")
	}

	return card, nil
}

// UpdateCard applies a partial update to an owned card.
func (s *cardService) UpdateCard(ctx context.Context, cardID, userID uuid.UUID, patch usecase.UpdateCardInput) (*entity.Card, error) {
	card, err := s.cardRepo.FindByOwner(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotOwned
		}

		return nil, errors.Wrap(err, "failed to load card")
	}

	if patch.CardTitle != nil {
		card.CardTitle = strings.TrimSpace(*patch.CardTitle)
	}
	if patch.CardColor != nil {
		card.CardColor = strings.TrimSpace(*patch.CardColor)
	}
	if patch.Logo != nil {
		card.Logo = *patch.Logo
	}
	if patch.Profile != nil {
		card.Profile = *patch.Profile
	}
	if patch.Cover != nil {
		card.Cover = *patch.Cover
	}
	if patch.IsFavorite != nil {
		card.IsFavorite = *patch.IsFavorite
	}

	if err := s.cardRepo.Update(ctx, card); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotOwned
		}

		return nil, errors.Wrap(err, "failed to update card")
	}

	if patch.PersonalInfo != nil {
		// Phone is mandatory only when the row is first created; an update
		// of existing personal info may leave it out.
		creating := card.PersonalInfo == nil
		info, err := personalInfoFromInput(patch.PersonalInfo, creating)
		if err != nil {
			return nil, err
		}
		if !creating {
			info.ID = card.PersonalInfo.ID
			if info.PhoneNumber == "" {
				info.PhoneNumber = card.PersonalInfo.PhoneNumber
			}
		}
		info.CardID = card.ID

		if err := s.cardRepo.UpsertPersonalInfo(ctx, info); err != nil {
			return nil, errors.Wrap(err, "failed to upsert personal info")
		}
		card.PersonalInfo = info
	}

	if patch.SocialLinks != nil {
		links := &entity.SocialLinks{
			CardID: card.ID,
			Links:  truncateSocialLinks(*patch.SocialLinks),
		}
		if card.SocialLinks != nil {
			links.ID = card.SocialLinks.ID
		}

		if err := s.cardRepo.UpsertSocialLinks(ctx, links); err != nil {
			return nil, errors.Wrap(err, "failed to upsert social links")
		}
		card.SocialLinks = links
	}

	// Cards created before QR generation succeeded get another chance here.
	if card.QRCode == "" {
		s.attachQR(ctx, card)
	}

	return card, nil
}

// DeleteCard removes an owned card; dependent rows cascade.
func (s *cardService) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	if err := s.cardRepo.Delete(ctx, cardID, userID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return domainerrors.ErrCardNotOwned
		}

		return errors.Wrap(err, "failed to delete card")
	}

	return nil
}

// personalInfoFromInput validates and converts the personal info payload.
// requirePhone enforces the create-time mandatory phone number.
func personalInfoFromInput(input *usecase.PersonalInfoInput, requirePhone bool) (*entity.PersonalInfo, error) {
	phone := strings.TrimSpace(input.PhoneNumber)
	if requirePhone && phone == "" {
		return nil, domainerrors.ErrPhoneNumberRequired
	}

	return &entity.PersonalInfo{
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		JobTitle:    strings.TrimSpace(input.JobTitle),
		PhoneNumber: phone,
		Email:       strings.TrimSpace(input.Email),
		Company:     strings.TrimSpace(input.Company),
		Image:       input.Image,
		Logo:        input.Logo,
		Note:        input.Note,
		Banner:      input.Banner,
		ProfileImg:  input.ProfileImg,
	}, nil
}

// truncateSocialLinks caps the stored links at the entity limit.
func truncateSocialLinks(links []entity.SocialLink) []entity.SocialLink {
	if len(links) > entity.MaxSocialLinks {
		links = links[:entity.MaxSocialLinks]
	}

	return links
}
