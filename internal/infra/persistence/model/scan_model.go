package model

import (
	"time"

	"github.com/google/uuid"
)

// CardScanModel mirrors the 'card_scans' table, one append-only row per
// public card view.
type CardScanModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	IP        string    `gorm:"type:varchar(64)"`
	UserAgent string    `gorm:"type:text"`
	Source    string    `gorm:"type:varchar(20);not null"`
	Latitude  *float64  `gorm:"type:decimal(9,6)"`
	Longitude *float64  `gorm:"type:decimal(9,6)"`
	City      string    `gorm:"type:varchar(100)"`
	Country   string    `gorm:"type:varchar(100)"`
	CreatedAt time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (CardScanModel) TableName() string {
	return "card_scans"
}
