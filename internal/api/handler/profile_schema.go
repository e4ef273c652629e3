package handler

import (
	"github.com/contactdesk/contact-manager/internal/core/domain"
)

type addressSchema struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postalCode"`
}

type socialLinksSchema struct {
	LinkedIn  string `json:"linkedin"`
	Twitter   string `json:"twitter"`
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
}

type preferencesSchema struct {
	Language      string `json:"language"`
	Notifications *bool  `json:"notifications"`
	Theme         string `json:"theme" validate:"omitempty,oneof=light dark"`
}

// updateProfileRequest lists every field a user may change on their own
// profile. Email, password and picture are deliberately absent.
type updateProfileRequest struct {
	Name        string            `json:"name"        validate:"required"`
	PhoneNumber string            `json:"phoneNumber"`
	DateOfBirth *flexDate         `json:"dateOfBirth"`
	Gender      string            `json:"gender"      validate:"omitempty,oneof=Male Female Other"`
	Address     addressSchema     `json:"address"`
	Company     string            `json:"company"`
	JobTitle    string            `json:"jobTitle"`
	Bio         string            `json:"bio"`
	SocialLinks socialLinksSchema `json:"socialLinks"`
	Preferences preferencesSchema `json:"preferences"`
}

type profileUpdatedResponse struct {
	Message string       `json:"message"`
	User    *domain.User `json:"user"`
}

type pictureUploadedResponse struct {
	Message        string       `json:"message"`
	User           *domain.User `json:"user"`
	ProfilePicture string       `json:"profilePicture"`
}

func (r updateProfileRequest) toDomain() domain.Profile {
	prefs := domain.DefaultPreferences()
	if r.Preferences.Language != "" {
		prefs.Language = r.Preferences.Language
	}
	if r.Preferences.Notifications != nil {
		prefs.Notifications = *r.Preferences.Notifications
	}
	if r.Preferences.Theme != "" {
		prefs.Theme = r.Preferences.Theme
	}

	return domain.Profile{
		Name:        r.Name,
		PhoneNumber: r.PhoneNumber,
		DateOfBirth: r.DateOfBirth.timePtr(),
		Gender:      r.Gender,
		Address:     domain.Address(r.Address),
		Company:     r.Company,
		JobTitle:    r.JobTitle,
		Bio:         r.Bio,
		SocialLinks: domain.SocialLinks(r.SocialLinks),
		Preferences: prefs,
	}
}
