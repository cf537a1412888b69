package usecase

import (
	"context"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// PersonalInfoInput is the structured identity payload of a card. PhoneNumber
// is mandatory the first time personal info is created for a card.
type PersonalInfoInput struct {
	FirstName   string
	LastName    string
	JobTitle    string
	PhoneNumber string
	Email       string
	Company     string
	Image       string
	Logo        string
	Note        string
	Banner      string
	ProfileImg  string
}

// CreateCardInput creates a card with optional nested rows.
type CreateCardInput struct {
	CardTitle    string
	CardColor    string
	Logo         string
	Profile      string
	Cover        string
	IsFavorite   bool
	PersonalInfo *PersonalInfoInput
	SocialLinks  []entity.SocialLink
}

// UpdateCardInput is a patch: nil means leave unchanged. SocialLinks, when
// present, replaces the whole set.
type UpdateCardInput struct {
	CardTitle    *string
	CardColor    *string
	Logo         *string
	Profile      *string
	Cover        *string
	IsFavorite   *bool
	PersonalInfo *PersonalInfoInput
	SocialLinks  *[]entity.SocialLink
}

// CardUsecase defines the interface for card management use cases.
type CardUsecase interface {
	// CreateCard creates a card with its nested rows and generates its QR
	// code payload and image.
	CreateCard(ctx context.Context, userID uuid.UUID, input CreateCardInput) (*entity.Card, error)

	// ListCards retrieves all cards of a user with relations, newest first.
	ListCards(ctx context.Context, userID uuid.UUID) ([]*entity.Card, error)

	// GetCard retrieves an owned card with relations.
	GetCard(ctx context.Context, cardID, userID uuid.UUID) (*entity.Card, error)

	// UpdateCard applies a partial update to an owned card, upserting nested
	// rows when present in the patch.
	UpdateCard(ctx context.Context, cardID, userID uuid.UUID, patch UpdateCardInput) (*entity.Card, error)

	// DeleteCard removes an owned card; dependent rows cascade.
	DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error
}
