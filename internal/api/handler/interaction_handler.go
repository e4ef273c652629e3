package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type InteractionHandler struct {
	interactions ports.InteractionService
}

func NewInteractionHandler(interactions ports.InteractionService) *InteractionHandler {
	return &InteractionHandler{interactions: interactions}
}

// Create logs an interaction with one of the caller's contacts.
//
// @Summary      Create interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      interactionRequest  true  "Interaction"
// @Success      201   {object}  domain.Interaction
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/interactions [post]
func (h *InteractionHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req interactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	it, err := h.interactions.Create(c.Request().Context(), userID, req.toInput())
	observeWrite("interaction", "create", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, it)
}

// ListForContact returns a contact's interactions, most recent first.
//
// @Summary      List interactions of a contact
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        contactId  path      string  true  "Contact ID"
// @Success      200        {array}   domain.Interaction
// @Failure      404        {object}  map[string]string
// @Router       /api/interactions/{contactId} [get]
func (h *InteractionHandler) ListForContact(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	items, err := h.interactions.ListForContact(c.Request().Context(), userID, c.Param("contactId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// ListAll returns every interaction ordered by date. The route is public.
//
// @Summary      List all interactions
// @Tags         interactions
// @Produce      json
// @Success      200  {array}  domain.Interaction
// @Router       /api/interactions [get]
func (h *InteractionHandler) ListAll(c echo.Context) error {
	items, err := h.interactions.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Update edits an interaction on one of the caller's contacts.
//
// @Summary      Update interaction
// @Tags         interactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                    true  "Interaction ID"
// @Param        body  body      updateInteractionRequest  true  "Interaction"
// @Success      200   {object}  domain.Interaction
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/interactions/{id} [put]
func (h *InteractionHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateInteractionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	it, err := h.interactions.Update(c.Request().Context(), userID, c.Param("id"), req.toInput())
	observeWrite("interaction", "update", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, it)
}

// Delete removes an interaction on one of the caller's contacts.
//
// @Summary      Delete interaction
// @Tags         interactions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Interaction ID"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /api/interactions/{id} [delete]
func (h *InteractionHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	err = h.interactions.Delete(c.Request().Context(), userID, c.Param("id"))
	observeWrite("interaction", "delete", err)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Interaction deleted successfully"})
}
