package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-manager/internal/api/metrics"
	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

const (
	pictureField    = "profilePicture"
	defaultCropSize = 400
)

type ProfileHandler struct {
	profiles ports.ProfileService
}

func NewProfileHandler(profiles ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// Get returns the caller's profile.
//
// @Summary      Get own profile
// @Tags         profile
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/user/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.profiles.Get(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update replaces the caller's profile fields.
//
// @Summary      Update own profile
// @Tags         profile
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  profileUpdatedResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/user/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.profiles.Update(c.Request().Context(), userID, req.toDomain())
	observeWrite("profile", "update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profileUpdatedResponse{Message: "Profile updated successfully", User: user})
}

// UploadPicture stores a jpeg or png and sets it as the profile picture.
//
// @Summary      Upload profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profilePicture  formData  file  true  "jpeg or png image"
// @Success      200  {object}  pictureUploadedResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/user/upload-profile-picture [post]
func (h *ProfileHandler) UploadPicture(c echo.Context) error {
	return h.upload(c, "upload", nil, "Profile picture uploaded successfully")
}

// UploadCroppedPicture crops the uploaded image to x, y, width and height
// before storing it. Width and height default to 400.
//
// @Summary      Upload and crop profile picture
// @Tags         profile
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        profilePicture  formData  file     true   "jpeg or png image"
// @Param        x               formData  integer  false  "left edge in pixels"
// @Param        y               formData  integer  false  "top edge in pixels"
// @Param        width           formData  integer  false  "crop width in pixels"
// @Param        height          formData  integer  false  "crop height in pixels"
// @Success      200  {object}  pictureUploadedResponse
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      503  {object}  map[string]string
// @Router       /api/user/upload-profile-picture-crop [post]
func (h *ProfileHandler) UploadCroppedPicture(c echo.Context) error {
	area, err := cropArea(c)
	if err != nil {
		return err
	}
	return h.upload(c, "crop", area, "Profile picture cropped and uploaded successfully")
}

func (h *ProfileHandler) upload(c echo.Context, op string, crop *ports.CropArea, message string) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	fh, err := c.FormFile(pictureField)
	if err != nil {
		return fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	user, err := h.profiles.UploadPicture(c.Request().Context(), ports.UploadInput{
		UserID: userID,
		Body:   f,
		Size:   fh.Size,
		Crop:   crop,
	})
	observeWrite("profile", op, err)
	if err != nil {
		return err
	}
	metrics.ProfilePictureBytes.Observe(float64(fh.Size))

	return c.JSON(http.StatusOK, pictureUploadedResponse{
		Message:        message,
		User:           user,
		ProfilePicture: user.ProfilePicture,
	})
}

// cropArea reads the crop fields from the multipart form. Missing fields
// take the defaults; a zero width or height also means the default.
func cropArea(c echo.Context) (*ports.CropArea, error) {
	area := &ports.CropArea{}
	fields := []struct {
		name string
		dst  *int
	}{
		{"x", &area.X},
		{"y", &area.Y},
		{"width", &area.Width},
		{"height", &area.Height},
	}
	for _, f := range fields {
		raw := strings.TrimSpace(c.FormValue(f.name))
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrValidation, f.name)
		}
		*f.dst = n
	}
	if area.Width == 0 {
		area.Width = defaultCropSize
	}
	if area.Height == 0 {
		area.Height = defaultCropSize
	}
	return area, nil
}
