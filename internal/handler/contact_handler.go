package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const contactResource = "contact"

// CreateContact handles contact creation
func (h *Handler) CreateContact(c echo.Context) error {
	var in model.ContactCreate
	if err := bind(c, &in); err != nil {
		return fail(c, contactResource, "create", err)
	}
	item, err := h.store.CreateContact(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, contactResource, "create", err)
	}
	return ok(c, contactResource, "create", http.StatusCreated, item)
}

// ListContacts handles listing contacts
func (h *Handler) ListContacts(c echo.Context) error {
	companyID, err := optionalUint(c, "company_id")
	if err != nil {
		return fail(c, contactResource, "list", err)
	}
	items, err := h.store.ListContacts(c.Request().Context(), middleware.CurrentUser(c), companyID)
	if err != nil {
		return fail(c, contactResource, "list", err)
	}
	return ok(c, contactResource, "list", http.StatusOK, items)
}

// GetContact handles fetching a contact by id
func (h *Handler) GetContact(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, contactResource, "get", err)
	}
	item, err := h.store.GetContact(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, contactResource, "get", err)
	}
	return ok(c, contactResource, "get", http.StatusOK, item)
}

// UpdateContact handles partial contact updates
func (h *Handler) UpdateContact(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, contactResource, "update", err)
	}
	var in model.ContactUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, contactResource, "update", err)
	}
	item, err := h.store.UpdateContact(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, contactResource, "update", err)
	}
	return ok(c, contactResource, "update", http.StatusOK, item)
}

// DeleteContact handles contact deletion
func (h *Handler) DeleteContact(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, contactResource, "delete", err)
	}
	if err := h.store.DeleteContact(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, contactResource, "delete", err)
	}
	return deleted(c, contactResource, "Contact")
}
