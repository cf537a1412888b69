package repository

import (
	"context"
	"errors"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrContactNotFound is returned when a contact is not found.
var ErrContactNotFound = errors.New("contact not found")

// ContactIdentifierQuery scopes a duplicate search to a (user, card) pair.
// A clause is included only when the corresponding field is non-empty.
type ContactIdentifierQuery struct {
	UserID uuid.UUID
	CardID uuid.UUID
	Phone  string
	Email  string
}

// ContactRepository defines the standard operations for contact persistence.
// Every query is filtered on the owning user id.
type ContactRepository interface {
	// Create persists a new contact.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByOwner retrieves a contact by id scoped to its owner.
	FindByOwner(ctx context.Context, id, userID uuid.UUID) (*entity.Contact, error)

	// FindByIdentifier searches for a duplicate contact matching on phone or
	// email within the query's (user, card) scope.
	FindByIdentifier(ctx context.Context, query ContactIdentifierQuery) (*entity.Contact, error)

	// FindBySourceCard retrieves the contact a user holds for a given source
	// card, the dedup key of the visitor share workflow.
	FindBySourceCard(ctx context.Context, userID, cardID uuid.UUID) (*entity.Contact, error)

	// ListByOwner retrieves all contacts of a user, newest first.
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]*entity.Contact, error)

	// Update persists all columns of an existing contact.
	Update(ctx context.Context, contact *entity.Contact) error

	// Delete hard-deletes an owner's contact.
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
