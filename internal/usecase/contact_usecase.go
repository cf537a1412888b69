// Package usecase defines the application's use case interfaces and their
// input/output shapes.
package usecase

import (
	"context"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// SaveContactInput is the data bag for saving a scanned card as a contact.
// All identity fields are optional; at least one of phone or email must
// survive normalization.
type SaveContactInput struct {
	FirstName  string
	LastName   string
	Phone      string
	Email      string
	Company    string
	JobTitle   string
	Logo       string
	Note       string
	ProfileImg string

	// Location is the capture location, already resolved by the caller
	// (explicit scan location, IP lookup, or fallback).
	Location entity.GeoLocation
}

// SaveContactResult reports whether the save deduplicated to an existing row.
type SaveContactResult struct {
	AlreadySaved bool
	Contact      *entity.Contact
}

// CreateContactInput creates a manual contact without a source card.
type CreateContactInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Company   string
	JobTitle  string
	Note      string

	// WhereMet is folded into the note when present.
	WhereMet string
}

// UpdateContactInput is a patch: nil means leave unchanged. An explicitly
// empty email clears the stored value.
type UpdateContactInput struct {
	FirstName  *string
	LastName   *string
	Phone      *string
	Email      *string
	Company    *string
	JobTitle   *string
	Logo       *string
	Note       *string
	ProfileImg *string
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UpdateContactInput) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Phone == nil &&
		p.Email == nil && p.Company == nil && p.JobTitle == nil &&
		p.Logo == nil && p.Note == nil && p.ProfileImg == nil
}

// DeleteContactResult is the idempotent delete outcome. Success is false when
// the contact was already gone; that is not an error.
type DeleteContactResult struct {
	Success bool
	Message string
}

// ShareVisitorContactInput identifies both sides of a visitor share.
type ShareVisitorContactInput struct {
	OwnerCardID   uuid.UUID
	VisitorCardID uuid.UUID

	// ScanLocation is the optional capture location supplied by the client.
	ScanLocation *entity.GeoLocation
}

// ShareContactResult reports the share record and whether it already existed.
type ShareContactResult struct {
	AlreadySaved bool
	Share        *entity.VisitorContactShare
}

// ContactUsecase defines the interface for the contact directory use cases.
type ContactUsecase interface {
	// SaveContact saves the card identified by cardID into userID's contact
	// list, deduplicating by phone or normalized email within the
	// (userID, cardID) scope. A duplicate is returned with AlreadySaved=true
	// and no write.
	SaveContact(ctx context.Context, userID, cardID uuid.UUID, input SaveContactInput) (*SaveContactResult, error)

	// CreateContact creates a manual contact with no source card.
	CreateContact(ctx context.Context, userID uuid.UUID, input CreateContactInput) (*entity.Contact, error)

	// ListContacts retrieves all contacts of a user, newest first.
	ListContacts(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error)

	// UpdateContact applies a partial update to an owned contact.
	UpdateContact(ctx context.Context, contactID, userID uuid.UUID, patch UpdateContactInput) (*entity.Contact, error)

	// DeleteContact removes an owned contact, treating a missing row as an
	// idempotent soft failure rather than an error.
	DeleteContact(ctx context.Context, contactID, userID uuid.UUID) (*DeleteContactResult, error)

	// ShareVisitorContact shares the visitor's card with the owner of a
	// scanned card: records the approved share and upserts a contact in the
	// owner's directory keyed by the visitor card.
	ShareVisitorContact(ctx context.Context, visitorID uuid.UUID, input ShareVisitorContactInput) (*ShareContactResult, error)
}
