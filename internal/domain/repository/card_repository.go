package repository

import (
	"context"
	"errors"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCardNotFound is returned when a card is not found.
var ErrCardNotFound = errors.New("card not found")

// ErrPersonalInfoNotFound is returned when a card has no personal info row.
var ErrPersonalInfoNotFound = errors.New("personal info not found")

// CardRepository defines the standard operations for card persistence.
// Owner-scoped methods filter on user id in every query; callers never see a
// card owned by another user through them.
type CardRepository interface {
	// Create persists a new card together with its optional nested
	// PersonalInfo and SocialLinks rows.
	Create(ctx context.Context, card *entity.Card) error

	// FindByID retrieves a card by id regardless of owner, without relations.
	// Used for existence checks on scanned cards.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// FindByIDWithRelations retrieves a card with PersonalInfo and
	// SocialLinks preloaded, regardless of owner. Used for the public card
	// view and the visitor share payload derivation.
	FindByIDWithRelations(ctx context.Context, id uuid.UUID) (*entity.Card, error)

	// FindByOwner retrieves a card by id scoped to its owner, with relations.
	FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Card, error)

	// ListByOwner retrieves all cards of a user, newest first, with relations.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error)

	// Update persists changed card columns and upserted relations.
	Update(ctx context.Context, card *entity.Card) error

	// UpdateQR stores the generated QR payload and image reference.
	UpdateQR(ctx context.Context, id uuid.UUID, qrCode, qrImage string) error

	// Delete removes an owner's card; the schema cascades to PersonalInfo,
	// SocialLinks and CardScans.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// FindPersonalInfo retrieves the personal info row of a card.
	FindPersonalInfo(ctx context.Context, cardID uuid.UUID) (*entity.PersonalInfo, error)

	// UpsertPersonalInfo creates or replaces the personal info row of a card.
	UpsertPersonalInfo(ctx context.Context, info *entity.PersonalInfo) error

	// UpsertSocialLinks creates or replaces the social links row of a card.
	UpsertSocialLinks(ctx context.Context, links *entity.SocialLinks) error
}
