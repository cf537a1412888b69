package model

import (
	"time"

	"github.com/google/uuid"
)

// VisitorContactShareModel mirrors the 'visitor_contact_shares' table. The
// partial unique index makes the approved share per (owner card, visitor
// card) pair an idempotency key enforced by the database, so two concurrent
// shares cannot both insert.
type VisitorContactShareModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerCardID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shares_approved_pair,where:status = 'approved'"`
	VisitorCardID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_shares_approved_pair,where:status = 'approved'"`
	OwnerID       uuid.UUID `gorm:"type:uuid;not null;index"`
	VisitorID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Status        string    `gorm:"type:varchar(50);not null;default:'approved'"`
	Latitude      *float64  `gorm:"type:decimal(9,6)"`
	Longitude     *float64  `gorm:"type:decimal(9,6)"`
	City          string    `gorm:"type:varchar(100)"`
	Country       string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (VisitorContactShareModel) TableName() string {
	return "visitor_contact_shares"
}
