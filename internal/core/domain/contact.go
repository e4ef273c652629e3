package domain

import (
	"errors"
	"time"
)

var ErrContactNotFound = errors.New("contact not found")

// Note is a dated free-text entry on a contact.
type Note struct {
	Text string    `json:"text"`
	Date time.Time `json:"date"`
}

// SocialLink is one profile link of a contact (platform is free text).
type SocialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
}

// Contact is a business contact owned by exactly one user.
type Contact struct {
	ID          string       `json:"id"`
	UserID      string       `json:"userId"`
	Name        string       `json:"name"`
	Company     string       `json:"company,omitempty"`
	JobTitle    string       `json:"jobTitle,omitempty"`
	Emails      []string     `json:"emails"`
	Phones      []string     `json:"phones"`
	Address     string       `json:"address,omitempty"`
	Notes       []Note       `json:"notes"`
	SocialLinks []SocialLink `json:"socialLinks"`
	Birthday    *time.Time   `json:"birthday,omitempty"`
	Anniversary *time.Time   `json:"anniversary,omitempty"`
	Category    string       `json:"category,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
