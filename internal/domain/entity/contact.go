package entity

import (
	"time"

	"github.com/google/uuid"
)

// Contact is a saved acquaintance record, exclusively owned by the saving
// user. CardID points at the source card when the contact was saved from a
// scan; manually created contacts carry no card reference.
//
// Uniqueness is enforced at the application level: within a (UserID, CardID)
// pair a contact is a duplicate when it matches on phone or on normalized
// email.
type Contact struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"userId"`
	CardID     *uuid.UUID `json:"cardId,omitempty"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Phone      string     `json:"phone"`
	Email      string     `json:"email"`
	Company    string     `json:"company"`
	JobTitle   string     `json:"jobTitle"`
	Logo       string     `json:"logo"`
	Note       string     `json:"note"`
	ProfileImg string     `json:"profileImg"`
	Latitude   *float64   `json:"latitude"`
	Longitude  *float64   `json:"longitude"`
	City       string     `json:"city"`
	Country    string     `json:"country"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}
