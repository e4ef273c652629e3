package service

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

const croppedJPEGQuality = 90

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// cropImage cuts area out of a jpeg or png and re-encodes it in the same
// format. The area is clipped to the image bounds.
func cropImage(data []byte, contentType string, area ports.CropArea) ([]byte, error) {
	if area.X < 0 || area.Y < 0 || area.Width <= 0 || area.Height <= 0 {
		return nil, fmt.Errorf("%w: crop area must have a non-negative origin and a positive size", domain.ErrValidation)
	}

	var (
		img image.Image
		err error
	)
	switch contentType {
	case "image/png":
		img, err = png.Decode(bytes.NewReader(data))
	case "image/jpeg":
		img, err = jpeg.Decode(bytes.NewReader(data))
	default:
		return nil, domain.ErrUnsupportedImage
	}
	if err != nil {
		return nil, fmt.Errorf("%w: image could not be decoded", domain.ErrValidation)
	}

	bounds := img.Bounds()
	rect := image.Rect(area.X, area.Y, area.X+area.Width, area.Y+area.Height).
		Add(bounds.Min).
		Intersect(bounds)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: crop area lies outside the image", domain.ErrValidation)
	}

	sub, ok := img.(subImager)
	if !ok {
		return nil, fmt.Errorf("crop: unsupported image model %T", img)
	}
	cropped := sub.SubImage(rect)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = png.Encode(&buf, cropped)
	} else {
		err = jpeg.Encode(&buf, cropped, &jpeg.Options{Quality: croppedJPEGQuality})
	}
	if err != nil {
		return nil, fmt.Errorf("crop: encode: %w", err)
	}
	return buf.Bytes(), nil
}
