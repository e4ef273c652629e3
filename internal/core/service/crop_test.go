package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

// gradientPNG encodes a w×h image whose pixel (x, y) is RGB(x, y, 0).
func gradientPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func uploadCropped(t *testing.T, data []byte, area ports.CropArea) (*stubImageStore, error) {
	t.Helper()
	store := &stubImageStore{}
	svc, u := newProfileFixture(t, store)
	_, err := svc.UploadPicture(context.Background(), ports.UploadInput{
		UserID: u.ID,
		Body:   bytes.NewReader(data),
		Crop:   &area,
	})
	return store, err
}

func TestProfileService_UploadPicture_CropsPNG(t *testing.T) {
	store, err := uploadCropped(t, gradientPNG(t, 10, 8), ports.CropArea{X: 2, Y: 1, Width: 4, Height: 3})
	require.NoError(t, err)
	assert.Equal(t, "image/png", store.contentType)

	out, err := png.Decode(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, 4, out.Bounds().Dx())
	assert.Equal(t, 3, out.Bounds().Dy())

	b := out.Bounds()
	assert.Equal(t, color.RGBA{R: 2, G: 1, A: 255}, color.RGBAModel.Convert(out.At(b.Min.X, b.Min.Y)))
	assert.Equal(t, color.RGBA{R: 5, G: 3, A: 255}, color.RGBAModel.Convert(out.At(b.Max.X-1, b.Max.Y-1)))
}

func TestProfileService_UploadPicture_CropIsClipped(t *testing.T) {
	store, err := uploadCropped(t, gradientPNG(t, 10, 8), ports.CropArea{X: 8, Y: 6, Width: 400, Height: 400})
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Width)
	assert.Equal(t, 2, cfg.Height)
}

func TestProfileService_UploadPicture_CropsJPEG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, 32, 32)), nil))

	store, err := uploadCropped(t, buf.Bytes(), ports.CropArea{Width: 16, Height: 8})
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", store.contentType)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(store.data))
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Width)
	assert.Equal(t, 8, cfg.Height)
}

func TestProfileService_UploadPicture_CropRejections(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		area ports.CropArea
	}{
		{"outside the image", gradientPNG(t, 10, 8), ports.CropArea{X: 20, Y: 20, Width: 5, Height: 5}},
		{"negative origin", gradientPNG(t, 10, 8), ports.CropArea{X: -1, Width: 5, Height: 5}},
		{"zero size", gradientPNG(t, 10, 8), ports.CropArea{Width: 0, Height: 5}},
		{"truncated image", pngHeader, ports.CropArea{Width: 5, Height: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := uploadCropped(t, tt.data, tt.area)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Empty(t, store.key, "nothing is stored")
		})
	}
}
