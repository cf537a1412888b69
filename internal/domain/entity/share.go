package entity

import (
	"time"

	"github.com/google/uuid"
)

// ShareStatus is the state of a visitor contact share.
type ShareStatus string

const (
	// ShareStatusApproved is the only status the wired call path creates.
	ShareStatusApproved ShareStatus = "approved"

	// ShareStatusPendingOwnerApproval and ShareStatusRejected are reserved
	// for a not-yet-wired owner approval flow. No code path creates them.
	ShareStatusPendingOwnerApproval ShareStatus = "pending_owner_approval"
	ShareStatusRejected             ShareStatus = "rejected"
)

// VisitorContactShare records one user (the visitor) sharing their card with
// another (the owner) whom they scanned. Once approved it is an immutable
// audit and idempotency record: at most one approved share exists per
// (OwnerCardID, VisitorCardID) pair, and a repeated share attempt returns the
// existing record instead of creating a new one.
type VisitorContactShare struct {
	ID            uuid.UUID   `json:"id"`
	OwnerCardID   uuid.UUID   `json:"ownerCardId"`   // The scanned card.
	VisitorCardID uuid.UUID   `json:"visitorCardId"` // The card the visitor shared.
	OwnerID       uuid.UUID   `json:"ownerId"`
	VisitorID     uuid.UUID   `json:"visitorId"`
	Status        ShareStatus `json:"status"`
	Latitude      *float64    `json:"latitude"`
	Longitude     *float64    `json:"longitude"`
	City          string      `json:"city"`
	Country       string      `json:"country"`
	CreatedAt     time.Time   `json:"createdAt"`
}
