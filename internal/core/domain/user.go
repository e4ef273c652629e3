package domain

import (
	"crypto/subtle"
	"time"
)

// Gender values accepted on a profile.
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Address is the postal address stored on a profile.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// SocialLinks holds the user's public profile links.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty"`
}

// Preferences are UI settings persisted with the account.
type Preferences struct {
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
	Theme         string `json:"theme"`
}

// DefaultPreferences returns the preferences assigned at signup.
func DefaultPreferences() Preferences {
	return Preferences{Language: "English", Notifications: true, Theme: "light"}
}

// Profile groups the descriptive fields of an account. None of them take
// part in authentication.
type Profile struct {
	Name           string      `json:"name"`
	ProfilePicture string      `json:"profilePicture"`
	PhoneNumber    string      `json:"phoneNumber,omitempty"`
	DateOfBirth    *time.Time  `json:"dateOfBirth,omitempty"`
	Gender         string      `json:"gender,omitempty"`
	Address        Address     `json:"address"`
	Company        string      `json:"company,omitempty"`
	JobTitle       string      `json:"jobTitle,omitempty"`
	Bio            string      `json:"bio,omitempty"`
	SocialLinks    SocialLinks `json:"socialLinks"`
	Preferences    Preferences `json:"preferences"`
}

// OTPChallenge is the password-reset challenge currently attached to a user.
// A zero value means no challenge has ever been issued.
type OTPChallenge struct {
	Code      string
	ExpiresAt time.Time
	Used      bool
}

// Redeemable reports whether code matches this challenge at instant now.
// The code is rejected once used, when it does not match exactly, and at or
// after ExpiresAt.
func (o OTPChallenge) Redeemable(code string, now time.Time) bool {
	if o.Used || o.Code == "" || code == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(o.Code), []byte(code)) != 1 {
		return false
	}
	return now.Before(o.ExpiresAt)
}

// User models an account holder. PasswordHash and OTP never leave the
// service layer; JSON views are built from Profile.
type User struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	OTP          OTPChallenge `json:"-"`
	Profile
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Claims is the identity carried by a session token.
type Claims struct {
	UserID    string
	Email     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
