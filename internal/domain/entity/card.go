package entity

import (
	"time"

	"github.com/google/uuid"
)

// Card is a user-owned shareable profile, the digital business card.
// A card is mutated only by its owner; deleting it cascades to its nested
// PersonalInfo, SocialLinks and scan records.
type Card struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	CardTitle  string    `json:"cardTitle"`
	CardColor  string    `json:"cardColor"`
	Logo       string    `json:"logo,omitempty"`    // Company logo image URL.
	Profile    string    `json:"profile,omitempty"` // Profile image URL.
	Cover      string    `json:"cover,omitempty"`   // Cover image URL.
	QRCode     string    `json:"qrCode,omitempty"`  // Public card URL encoded in the QR image.
	QRImage    string    `json:"qrImage,omitempty"` // Stored QR PNG URL.
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	PersonalInfo *PersonalInfo `json:"personalInfo,omitempty"`
	SocialLinks  *SocialLinks  `json:"socialLinks,omitempty"`
}

// PersonalInfo holds the structured identity fields of a card, 1:1 with Card.
// PhoneNumber is mandatory the first time PersonalInfo is created for a card.
type PersonalInfo struct {
	ID          uuid.UUID `json:"id"`
	CardID      uuid.UUID `json:"cardId"`
	FirstName   string    `json:"firstName,omitempty"`
	LastName    string    `json:"lastName,omitempty"`
	JobTitle    string    `json:"jobTitle,omitempty"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email,omitempty"`
	Company     string    `json:"company,omitempty"`
	Image       string    `json:"image,omitempty"`
	Logo        string    `json:"logo,omitempty"`
	Note        string    `json:"note,omitempty"`
	Banner      string    `json:"banner,omitempty"`
	ProfileImg  string    `json:"profileImg,omitempty"`
}

// MaxSocialLinks caps the number of links stored per card.
const MaxSocialLinks = 5

// SocialLink is a single external profile reference on a card.
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// SocialLinks holds a card's external profile references, 1:1 with Card.
type SocialLinks struct {
	ID     uuid.UUID    `json:"id"`
	CardID uuid.UUID    `json:"cardId"`
	Links  []SocialLink `json:"links"`
}
