package model

import (
	"time"

	"github.com/google/uuid"
)

// ContactModel mirrors the 'contacts' table: the owner's saved directory of
// people who shared their details against one of the owner's cards.
type ContactModel struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID  `gorm:"type:uuid;not null;index:idx_contacts_owner_card"`
	CardID     *uuid.UUID `gorm:"type:uuid;index:idx_contacts_owner_card"`
	FirstName  string     `gorm:"type:varchar(100)"`
	LastName   string     `gorm:"type:varchar(100)"`
	Phone      string     `gorm:"type:varchar(50)"`
	Email      string     `gorm:"type:varchar(255)"`
	Company    string     `gorm:"type:varchar(255)"`
	JobTitle   string     `gorm:"type:varchar(255)"`
	Logo       string     `gorm:"type:text"`
	Note       string     `gorm:"type:text"`
	ProfileImg string     `gorm:"type:text"`
	Latitude   *float64   `gorm:"type:decimal(9,6)"`
	Longitude  *float64   `gorm:"type:decimal(9,6)"`
	City       string     `gorm:"type:varchar(100)"`
	Country    string     `gorm:"type:varchar(100)"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the table name for GORM.
func (ContactModel) TableName() string {
	return "contacts"
}
