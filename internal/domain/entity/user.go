// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder. A user owns zero or more cards and zero
// or more contacts.
type User struct {
	ID            uuid.UUID `json:"id"`            // The unique identifier for the user.
	Name          string    `json:"name"`          // Display name.
	Email         string    `json:"email"`         // Login email, unique across users.
	PhoneNumber   string    `json:"phoneNumber"`   // Optional contact phone number.
	EmailVerified bool      `json:"emailVerified"` // Whether the email has been verified.
	PhoneVerified bool      `json:"phoneVerified"` // Whether the phone number has been verified.
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
