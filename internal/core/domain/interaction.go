package domain

import (
	"errors"
	"time"
)

// InteractionType is the channel an interaction happened (or will happen) on.
type InteractionType string

const (
	InteractionCall    InteractionType = "call"
	InteractionEmail   InteractionType = "email"
	InteractionMeeting InteractionType = "meeting"
)

var ErrInteractionNotFound = errors.New("interaction not found")

// Valid reports whether t is one of the known interaction types.
func (t InteractionType) Valid() bool {
	switch t {
	case InteractionCall, InteractionEmail, InteractionMeeting:
		return true
	}
	return false
}

// Interaction records a call, email or meeting with a contact.
type Interaction struct {
	ID        string          `json:"id"`
	ContactID string          `json:"contactId"`
	Type      InteractionType `json:"type"`
	Title     string          `json:"title"`
	Location  string          `json:"location,omitempty"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	Reminder  *time.Time      `json:"reminder,omitempty"` // optional follow-up
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
