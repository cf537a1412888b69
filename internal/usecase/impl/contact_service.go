// Package impl contains the concrete implementations of the use case layer.
package impl

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"cardlink/internal/domain/entity"
	domainerrors "cardlink/internal/domain/errors"
	"cardlink/internal/domain/repository"
	"cardlink/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// emailPattern is the structural check applied to contact emails:
// local@domain.tld with no whitespace.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type contactService struct {
	contactRepo repository.ContactRepository
	cardRepo    repository.CardRepository
	shareRepo   repository.ShareRepository
	txManager   repository.TransactionManager
	logger      *slog.Logger
}

// NewContactService creates a new contact directory service instance.
func NewContactService(
	contactRepo repository.ContactRepository,
	cardRepo repository.CardRepository,
	shareRepo repository.ShareRepository,
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ContactUsecase {
	return &contactService{
		contactRepo: contactRepo,
		cardRepo:    cardRepo,
		shareRepo:   shareRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// normalizeEmail trims and lowercases an email address. The second return
// value reports structural validity; an empty input is valid and empty.
func normalizeEmail(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", true
	}

	if !emailPattern.MatchString(trimmed) {
		return "", false
	}

	return strings.ToLower(trimmed), true
}

// resolveIdentifiers applies the phone-primary email policy: an invalid email
// is silently dropped when a phone number is present, and fails the call
// otherwise. After normalization at least one identifier must remain.
func resolveIdentifiers(rawPhone, rawEmail string) (phone, email string, err error) {
	phone = strings.TrimSpace(rawPhone)

	email, valid := normalizeEmail(rawEmail)
	if !valid {
		if phone == "" {
			return "", "", domainerrors.ErrInvalidEmailFormat
		}
		// Phone is the primary identifier; the malformed email becomes
		// best-effort and is discarded.
		email = ""
	}

	if phone == "" && email == "" {
		return "", "", domainerrors.ErrIdentifierRequired
	}

	return phone, email, nil
}

// SaveContact saves the card identified by cardID into userID's contact list.
func (s *contactService) SaveContact(ctx context.Context, userID, cardID uuid.UUID, input usecase.SaveContactInput) (*usecase.SaveContactResult, error) {
	if _, err := s.cardRepo.FindByID(ctx, cardID); err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load saved card")
	}

	phone, email, err := resolveIdentifiers(input.Phone, input.Email)
	if err != nil {
		return nil, err
	}

	// Dedup within the (user, card) scope: a match on phone or normalized
	// email makes the call idempotent.
	existing, err := s.contactRepo.FindByIdentifier(ctx, repository.ContactIdentifierQuery{
		UserID: userID,
		CardID: cardID,
		Phone:  phone,
		Email:  email,
	})
	if err != nil && !errors.Is(err, repository.ErrContactNotFound) {
		return nil, errors.Wrap(err, "failed to search for duplicate contact")
	}
	if existing != nil {
		return &usecase.SaveContactResult{AlreadySaved: true, Contact: existing}, nil
	}

	contact := &entity.Contact{
		UserID:     userID,
		CardID:     &cardID,
		FirstName:  strings.TrimSpace(input.FirstName),
		LastName:   strings.TrimSpace(input.LastName),
		Phone:      phone,
		Email:      email,
		Company:    strings.TrimSpace(input.Company),
		JobTitle:   strings.TrimSpace(input.JobTitle),
		Logo:       input.Logo,
		Note:       input.Note,
		ProfileImg: input.ProfileImg,
		Latitude:   input.Location.Latitude,
		Longitude:  input.Location.Longitude,
		City:       input.Location.City,
		Country:    input.Location.Country,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to create contact")
	}

	return &usecase.SaveContactResult{AlreadySaved: false, Contact: contact}, nil
}

// CreateContact creates a manual contact with no source card.
func (s *contactService) CreateContact(ctx context.Context, userID uuid.UUID, input usecase.CreateContactInput) (*entity.Contact, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" && lastName == "" {
		return nil, domainerrors.ErrContactNameRequired
	}

	phone, email, err := resolveIdentifiers(input.Phone, input.Email)
	if err != nil {
		return nil, err
	}

	note := strings.TrimSpace(input.Note)
	if whereMet := strings.TrimSpace(input.WhereMet); whereMet != "" {
		if note != "" {
			note += "\n"
		}
		note += "Met at: " + whereMet
	}

	contact := &entity.Contact{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     phone,
		Email:     email,
		Company:   strings.TrimSpace(input.Company),
		JobTitle:  strings.TrimSpace(input.JobTitle),
		Note:      note,
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return nil, errors.Wrap(err, "failed to create contact")
	}

	return contact, nil
}

// ListContacts retrieves all contacts of a user, newest first.
func (s *contactService) ListContacts(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error) {
	contacts, err := s.contactRepo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list contacts")
	}

	return contacts, nil
}

// UpdateContact applies a partial update to an owned contact. An empty patch
// is a no-op returning the existing record.
func (s *contactService) UpdateContact(ctx context.Context, contactID, userID uuid.UUID, patch usecase.UpdateContactInput) (*entity.Contact, error) {
	contact, err := s.contactRepo.FindByOwner(ctx, contactID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to load contact")
	}

	if patch.IsEmpty() {
		return contact, nil
	}

	if patch.FirstName != nil {
		contact.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		contact.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Phone != nil {
		contact.Phone = strings.TrimSpace(*patch.Phone)
	}
	if patch.Email != nil {
		email, valid := normalizeEmail(*patch.Email)
		if !valid {
			// Clearing is allowed; an invalid non-empty email only passes
			// when a phone number keeps the contact reachable.
			if contact.Phone == "" {
				return nil, domainerrors.ErrInvalidEmailFormat
			}
			email = ""
		}
		contact.Email = email
	}
	if patch.Company != nil {
		contact.Company = strings.TrimSpace(*patch.Company)
	}
	if patch.JobTitle != nil {
		contact.JobTitle = strings.TrimSpace(*patch.JobTitle)
	}
	if patch.Logo != nil {
		contact.Logo = *patch.Logo
	}
	if patch.Note != nil {
		contact.Note = *patch.Note
	}
	if patch.ProfileImg != nil {
		contact.ProfileImg = *patch.ProfileImg
	}

	if err := s.contactRepo.Update(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return nil, domainerrors.ErrContactNotFound
		}

		return nil, errors.Wrap(err, "failed to update contact")
	}

	return contact, nil
}

// DeleteContact removes an owned contact. A missing row is an idempotent
// soft failure, not an error.
func (s *contactService) DeleteContact(ctx context.Context, contactID, userID uuid.UUID) (*usecase.DeleteContactResult, error) {
	if err := s.contactRepo.Delete(ctx, contactID, userID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return &usecase.DeleteContactResult{
				Success: false,
				Message: "Contact already deleted or not found",
			}, nil
		}

		return nil, errors.Wrap(err, "failed to delete contact")
	}

	return &usecase.DeleteContactResult{
		Success: true,
		Message: "Contact deleted",
	}, nil
}

// ShareVisitorContact records the visitor sharing their card with the owner
// of a scanned card. The approved share per (owner card, visitor card) pair
// is the durable idempotency key; the contact copy in the owner's directory
// is keyed by the visitor card and kept fresh on re-share.
func (s *contactService) ShareVisitorContact(ctx context.Context, visitorID uuid.UUID, input usecase.ShareVisitorContactInput) (*usecase.ShareContactResult, error) {
	if input.OwnerCardID == uuid.Nil || input.VisitorCardID == uuid.Nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("ownerCardId and visitorCardId are required")
	}

	ownerCard, err := s.cardRepo.FindByID(ctx, input.OwnerCardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrScannedCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load scanned card")
	}

	visitorCard, err := s.cardRepo.FindByIDWithRelations(ctx, input.VisitorCardID)
	if err != nil {
		if errors.Is(err, repository.ErrCardNotFound) {
			return nil, domainerrors.ErrVisitorCardNotFound
		}

		return nil, errors.Wrap(err, "failed to load visitor card")
	}
	if visitorCard.UserID != visitorID {
		return nil, domainerrors.ErrShareNotOwnCard
	}

	location := entity.GeoLocation{}
	if input.ScanLocation != nil {
		location = *input.ScanLocation
	}

	// Idempotency check: an approved share short-circuits, but the owner's
	// contact copy is repaired if it went missing since.
	existing, err := s.shareRepo.FindApproved(ctx, input.OwnerCardID, input.VisitorCardID)
	if err != nil && !errors.Is(err, repository.ErrShareNotFound) {
		return nil, errors.Wrap(err, "failed to check for existing share")
	}
	if existing != nil {
		if err := s.ensureOwnerContact(ctx, s.contactRepo, ownerCard, visitorCard, location); err != nil {
			return nil, err
		}

		return &usecase.ShareContactResult{AlreadySaved: true, Share: existing}, nil
	}

	share := &entity.VisitorContactShare{
		OwnerCardID:   input.OwnerCardID,
		VisitorCardID: input.VisitorCardID,
		OwnerID:       ownerCard.UserID,
		VisitorID:     visitorID,
		Status:        entity.ShareStatusApproved,
		Latitude:      location.Latitude,
		Longitude:     location.Longitude,
		City:          location.City,
		Country:       location.Country,
	}

	// Share insert and contact upsert commit atomically. The partial unique
	// index on approved pairs turns a concurrent first share into
	// ErrDuplicateShare, which folds into the idempotent path below.
	txErr := s.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.ShareRepo().Create(ctx, share); err != nil {
			return err
		}

		return s.ensureOwnerContact(ctx, repos.ContactRepo(), ownerCard, visitorCard, location)
	})
	if txErr != nil {
		if errors.Is(txErr, repository.ErrDuplicateShare) {
			winner, findErr := s.shareRepo.FindApproved(ctx, input.OwnerCardID, input.VisitorCardID)
			if findErr != nil {
				return nil, errors.Wrap(findErr, "failed to load winning share after duplicate insert")
			}

			return &usecase.ShareContactResult{AlreadySaved: true, Share: winner}, nil
		}

		return nil, errors.Wrap(txErr, "failed to record visitor contact share")
	}

	return &usecase.ShareContactResult{AlreadySaved: false, Share: share}, nil
}

// ensureOwnerContact upserts the owner's contact copy of the visitor card:
// created when absent, refreshed in place when present.
func (s *contactService) ensureOwnerContact(ctx context.Context, contactRepo repository.ContactRepository, ownerCard, visitorCard *entity.Card, location entity.GeoLocation) error {
	derived := deriveContactFromCard(ownerCard.UserID, visitorCard, location)

	existing, err := contactRepo.FindBySourceCard(ctx, ownerCard.UserID, visitorCard.ID)
	if err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			if createErr := contactRepo.Create(ctx, derived); createErr != nil {
				return errors.Wrap(createErr, "failed to create owner contact")
			}

			return nil
		}

		return errors.Wrap(err, "failed to find owner contact")
	}

	// Keep the owner's copy fresh with the visitor's latest card details.
	derived.ID = existing.ID
	derived.CreatedAt = existing.CreatedAt
	if err := contactRepo.Update(ctx, derived); err != nil {
		return errors.Wrap(err, "failed to refresh owner contact")
	}

	return nil
}

// deriveContactFromCard builds the owner's contact payload from the visitor's
// card, preferring PersonalInfo fields and falling back to the card's own
// images.
func deriveContactFromCard(ownerID uuid.UUID, card *entity.Card, location entity.GeoLocation) *entity.Contact {
	cardID := card.ID
	contact := &entity.Contact{
		UserID:    ownerID,
		CardID:    &cardID,
		Logo:      card.Logo,
		Latitude:  location.Latitude,
		Longitude: location.Longitude,
		City:      location.City,
		Country:   location.Country,
	}

	if info := card.PersonalInfo; info != nil {
		contact.FirstName = info.FirstName
		contact.LastName = info.LastName
		contact.Phone = info.PhoneNumber
		contact.Email = info.Email
		contact.Company = info.Company
		contact.JobTitle = info.JobTitle
		contact.Note = info.Note
		if info.Logo != "" {
			contact.Logo = info.Logo
		}
		contact.ProfileImg = info.ProfileImg
		if contact.ProfileImg == "" {
			contact.ProfileImg = info.Image
		}
	}

	if contact.ProfileImg == "" {
		contact.ProfileImg = card.Profile
	}

	return contact
}
