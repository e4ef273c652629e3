package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")
	jpegHeader = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00")
)

type stubImageStore struct {
	key, contentType string
	data             []byte
	err              error
}

func (s *stubImageStore) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.key, s.contentType = key, contentType
	s.data, _ = io.ReadAll(body)
	return "https://cdn.test/" + key, nil
}

func newProfileFixture(t *testing.T, store ports.ImageStore) (*ProfileService, *domain.User) {
	t.Helper()
	repo := newStubUserRepo()
	u, err := repo.Create(context.Background(), &domain.User{
		Email:   "a@x.com",
		Profile: domain.Profile{Name: "Alice", ProfilePicture: "https://cdn.test/old.png"},
	})
	require.NoError(t, err)

	svc := NewProfileService(repo, store, zerolog.Nop())
	svc.now = (&fakeClock{t: epoch}).Now
	return svc, u
}

func TestProfileService_Update_KeepsPicture(t *testing.T) {
	svc, u := newProfileFixture(t, nil)

	updated, err := svc.Update(context.Background(), u.ID, domain.Profile{
		Name:           "Alice B.",
		Gender:         domain.GenderFemale,
		ProfilePicture: "https://evil.test/x.png",
		Preferences:    domain.Preferences{Language: "Spanish", Theme: "dark"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice B.", updated.Name)
	assert.Equal(t, "https://cdn.test/old.png", updated.ProfilePicture)
	assert.Equal(t, "dark", updated.Preferences.Theme)
}

func TestProfileService_Update_Validation(t *testing.T) {
	svc, u := newProfileFixture(t, nil)

	_, err := svc.Update(context.Background(), u.ID, domain.Profile{Name: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(context.Background(), u.ID, domain.Profile{Name: "A", Gender: "Robot"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Update(context.Background(), "missing", domain.Profile{Name: "A"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileService_UploadPicture(t *testing.T) {
	store := &stubImageStore{}
	svc, u := newProfileFixture(t, store)

	updated, err := svc.UploadPicture(context.Background(), ports.UploadInput{
		UserID: u.ID,
		Body:   bytes.NewReader(pngHeader),
		Size:   int64(len(pngHeader)),
	})
	require.NoError(t, err)

	assert.Equal(t, "image/png", store.contentType)
	assert.True(t, strings.HasPrefix(store.key, "user_profiles/"+u.ID+"/2026/03/14/"), store.key)
	assert.True(t, strings.HasSuffix(store.key, ".png"), store.key)
	assert.Equal(t, pngHeader, store.data)
	assert.Equal(t, "https://cdn.test/"+store.key, updated.ProfilePicture)
}

func TestProfileService_UploadPicture_JPEG(t *testing.T) {
	store := &stubImageStore{}
	svc, u := newProfileFixture(t, store)

	_, err := svc.UploadPicture(context.Background(), ports.UploadInput{UserID: u.ID, Body: bytes.NewReader(jpegHeader)})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", store.contentType)
	assert.True(t, strings.HasSuffix(store.key, ".jpg"), store.key)
}

func TestProfileService_UploadPicture_Rejections(t *testing.T) {
	t.Run("storage disabled", func(t *testing.T) {
		svc, u := newProfileFixture(t, nil)
		_, err := svc.UploadPicture(context.Background(), ports.UploadInput{UserID: u.ID, Body: bytes.NewReader(pngHeader)})
		assert.ErrorIs(t, err, domain.ErrStorageDisabled)
	})

	t.Run("empty body", func(t *testing.T) {
		svc, u := newProfileFixture(t, &stubImageStore{})
		_, err := svc.UploadPicture(context.Background(), ports.UploadInput{UserID: u.ID, Body: bytes.NewReader(nil)})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("not an image", func(t *testing.T) {
		svc, u := newProfileFixture(t, &stubImageStore{})
		_, err := svc.UploadPicture(context.Background(), ports.UploadInput{UserID: u.ID, Body: strings.NewReader("plain text, not a picture")})
		assert.ErrorIs(t, err, domain.ErrUnsupportedImage)
	})

	t.Run("store failure", func(t *testing.T) {
		svc, u := newProfileFixture(t, &stubImageStore{err: errors.New("s3 unavailable")})
		_, err := svc.UploadPicture(context.Background(), ports.UploadInput{UserID: u.ID, Body: bytes.NewReader(pngHeader)})
		require.Error(t, err)
		got, _ := svc.Get(context.Background(), u.ID)
		assert.Equal(t, "https://cdn.test/old.png", got.ProfilePicture)
	})
}
