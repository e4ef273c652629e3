package handler

import "github.com/contactdesk/contact-manager/internal/core/ports"

type interactionRequest struct {
	ContactID string    `json:"contactId" validate:"required"`
	Type      string    `json:"type"      validate:"required,oneof=call email meeting"`
	Title     string    `json:"title"     validate:"required"`
	Location  string    `json:"location"`
	Date      *flexDate `json:"date"`
	Notes     string    `json:"notes"`
	Reminder  *flexDate `json:"reminder"`
}

// updateInteractionRequest allows omitting contactId to keep the current one.
type updateInteractionRequest struct {
	ContactID string    `json:"contactId"`
	Type      string    `json:"type"      validate:"required,oneof=call email meeting"`
	Title     string    `json:"title"     validate:"required"`
	Location  string    `json:"location"`
	Date      *flexDate `json:"date"`
	Notes     string    `json:"notes"`
	Reminder  *flexDate `json:"reminder"`
}

func (r interactionRequest) toInput() ports.InteractionInput {
	return ports.InteractionInput{
		ContactID: r.ContactID,
		Type:      r.Type,
		Title:     r.Title,
		Location:  r.Location,
		Date:      r.Date.timePtr(),
		Notes:     r.Notes,
		Reminder:  r.Reminder.timePtr(),
	}
}

func (r updateInteractionRequest) toInput() ports.InteractionInput {
	return interactionRequest(r).toInput()
}
