package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type stubContactService struct {
	createFn func(ctx context.Context, userID string, in ports.ContactInput) (*domain.Contact, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Contact, error)
	getFn    func(ctx context.Context, userID, id string) (*domain.Contact, error)
	updateFn func(ctx context.Context, userID, id string, in ports.ContactInput) (*domain.Contact, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (s *stubContactService) Create(ctx context.Context, userID string, in ports.ContactInput) (*domain.Contact, error) {
	return s.createFn(ctx, userID, in)
}

func (s *stubContactService) List(ctx context.Context, userID string) ([]*domain.Contact, error) {
	return s.listFn(ctx, userID)
}

func (s *stubContactService) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	return s.getFn(ctx, userID, id)
}

func (s *stubContactService) Update(ctx context.Context, userID, id string, in ports.ContactInput) (*domain.Contact, error) {
	return s.updateFn(ctx, userID, id, in)
}

func (s *stubContactService) Delete(ctx context.Context, userID, id string) error {
	return s.deleteFn(ctx, userID, id)
}

func TestContactHandler_Create(t *testing.T) {
	e := newTestEcho()
	var got ports.ContactInput
	h := NewContactHandler(&stubContactService{
		createFn: func(_ context.Context, userID string, in ports.ContactInput) (*domain.Contact, error) {
			got = in
			return &domain.Contact{ID: "c1", UserID: userID, Name: in.Name}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodPost, "/api/contacts",
		`{"name":"Grace","emails":["grace@example.com"],"birthday":"1906-12-09","notes":[{"text":"navy"}]}`)
	if err := h.Create(asUser(c, "u1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	want := time.Date(1906, 12, 9, 0, 0, 0, 0, time.UTC)
	if got.Birthday == nil || !got.Birthday.Equal(want) {
		t.Fatalf("birthday not parsed: %v", got.Birthday)
	}
	if len(got.Notes) != 1 || got.Notes[0].Text != "navy" {
		t.Fatalf("notes not forwarded: %+v", got.Notes)
	}
}

func TestContactHandler_Create_InvalidEmail(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{})

	c, _ := jsonRequest(e, http.MethodPost, "/api/contacts", `{"name":"Grace","emails":["nope"]}`)
	if err := h.Create(asUser(c, "u1")); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestContactHandler_List(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{
		listFn: func(_ context.Context, userID string) ([]*domain.Contact, error) {
			if userID != "u1" {
				t.Fatalf("unexpected user: %s", userID)
			}
			return []*domain.Contact{{ID: "c2"}, {ID: "c1"}}, nil
		},
	})

	c, rec := jsonRequest(e, http.MethodGet, "/api/contacts", "")
	if err := h.List(asUser(c, "u1")); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var list []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[0]["id"] != "c2" {
		t.Fatalf("unexpected list: %+v", list)
	}
}

func TestContactHandler_GetUpdateDelete(t *testing.T) {
	e := newTestEcho()
	h := NewContactHandler(&stubContactService{
		getFn: func(_ context.Context, _, id string) (*domain.Contact, error) {
			return nil, domain.ErrContactNotFound
		},
		updateFn: func(_ context.Context, userID, id string, in ports.ContactInput) (*domain.Contact, error) {
			return &domain.Contact{ID: id, UserID: userID, Name: in.Name}, nil
		},
		deleteFn: func(_ context.Context, _, id string) error {
			if id != "c1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	})

	c, _ := jsonRequest(e, http.MethodGet, "/api/contacts/c9", "")
	c.SetParamNames("id")
	c.SetParamValues("c9")
	if err := h.Get(asUser(c, "u1")); !errors.Is(err, domain.ErrContactNotFound) {
		t.Fatalf("expected ErrContactNotFound, got %v", err)
	}

	c, rec := jsonRequest(e, http.MethodPut, "/api/contacts/c1", `{"name":"Renamed"}`)
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.Update(asUser(c, "u1")); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["name"] != "Renamed" || resp["id"] != "c1" {
		t.Fatalf("unexpected body: %+v", resp)
	}

	c, rec = jsonRequest(e, http.MethodDelete, "/api/contacts/c1", "")
	c.SetParamNames("id")
	c.SetParamValues("c1")
	if err := h.Delete(asUser(c, "u1")); err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if resp := decodeBody(t, rec); resp["message"] != "Contact deleted successfully" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}
