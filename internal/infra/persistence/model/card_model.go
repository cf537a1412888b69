package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CardModel mirrors the 'cards' table.
type CardModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CardTitle  string    `gorm:"type:varchar(255)"`
	CardColor  string    `gorm:"type:varchar(50)"`
	Logo       string    `gorm:"type:text"`
	Profile    string    `gorm:"type:text"`
	Cover      string    `gorm:"type:text"`
	QRCode     string    `gorm:"type:text"`
	QRImage    string    `gorm:"type:text"`
	IsFavorite bool      `gorm:"not null;default:false"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	PersonalInfo *PersonalInfoModel `gorm:"foreignKey:CardID"`
	SocialLinks  *SocialLinksModel  `gorm:"foreignKey:CardID"`
}

// TableName explicitly sets the table name for GORM.
func (CardModel) TableName() string {
	return "cards"
}

// PersonalInfoModel mirrors the 'personal_infos' table, one row per card.
type PersonalInfoModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CardID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	FirstName   string    `gorm:"type:varchar(100)"`
	LastName    string    `gorm:"type:varchar(100)"`
	JobTitle    string    `gorm:"type:varchar(255)"`
	PhoneNumber string    `gorm:"type:varchar(50)"`
	Email       string    `gorm:"type:varchar(255)"`
	Company     string    `gorm:"type:varchar(255)"`
	Image       string    `gorm:"type:text"`
	Logo        string    `gorm:"type:text"`
	Note        string    `gorm:"type:text"`
	Banner      string    `gorm:"type:text"`
	ProfileImg  string    `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (PersonalInfoModel) TableName() string {
	return "personal_infos"
}

// SocialLinksModel mirrors the 'social_links' table, one row per card with
// the links stored as a JSONB array.
type SocialLinksModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	CardID    uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex"`
	Links     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SocialLinksModel) TableName() string {
	return "social_links"
}
