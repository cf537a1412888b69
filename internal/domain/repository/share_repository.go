package repository

import (
	"context"
	"errors"

	"cardlink/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for share persistence.
var (
	// ErrShareNotFound is returned when no matching share exists.
	ErrShareNotFound = errors.New("visitor contact share not found")
	// ErrDuplicateShare is returned when an approved share already exists for
	// the same (owner card, visitor card) pair. The partial unique index
	// raises this under concurrent first-share races.
	ErrDuplicateShare = errors.New("approved share already exists")
)

// ShareRepository defines the operations for visitor contact share persistence.
type ShareRepository interface {
	// Create persists a new share record.
	Create(ctx context.Context, share *entity.VisitorContactShare) error

	// FindApproved retrieves the approved share for an (owner card, visitor
	// card) pair, the durable idempotency key of the share workflow.
	FindApproved(ctx context.Context, ownerCardID, visitorCardID uuid.UUID) (*entity.VisitorContactShare, error)
}
