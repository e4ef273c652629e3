package handler

import (
	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type noteSchema struct {
	Text string    `json:"text" validate:"required"`
	Date *flexDate `json:"date"`
}

type socialLinkSchema struct {
	Platform string `json:"platform" validate:"required"`
	URL      string `json:"url"      validate:"required"`
}

type contactRequest struct {
	Name        string             `json:"name"        validate:"required"`
	Company     string             `json:"company"`
	JobTitle    string             `json:"jobTitle"`
	Emails      []string           `json:"emails"      validate:"dive,email"`
	Phones      []string           `json:"phones"`
	Address     string             `json:"address"`
	Notes       []noteSchema       `json:"notes"       validate:"dive"`
	SocialLinks []socialLinkSchema `json:"socialLinks" validate:"dive"`
	Birthday    *flexDate          `json:"birthday"`
	Anniversary *flexDate          `json:"anniversary"`
	Category    string             `json:"category"`
}

func (r contactRequest) toInput() ports.ContactInput {
	in := ports.ContactInput{
		Name:        r.Name,
		Company:     r.Company,
		JobTitle:    r.JobTitle,
		Emails:      r.Emails,
		Phones:      r.Phones,
		Address:     r.Address,
		Birthday:    r.Birthday.timePtr(),
		Anniversary: r.Anniversary.timePtr(),
		Category:    r.Category,
	}
	for _, n := range r.Notes {
		note := domain.Note{Text: n.Text}
		if t := n.Date.timePtr(); t != nil {
			note.Date = *t
		}
		in.Notes = append(in.Notes, note)
	}
	for _, l := range r.SocialLinks {
		in.SocialLinks = append(in.SocialLinks, domain.SocialLink(l))
	}
	return in
}
