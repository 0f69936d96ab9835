package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const mandateResource = "mandate"

// CreateMandate handles mandate creation
func (h *Handler) CreateMandate(c echo.Context) error {
	var in model.MandateCreate
	if err := bind(c, &in); err != nil {
		return fail(c, mandateResource, "create", err)
	}
	item, err := h.store.CreateMandate(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, mandateResource, "create", err)
	}
	return ok(c, mandateResource, "create", http.StatusCreated, item)
}

// ListMandates handles listing mandates
func (h *Handler) ListMandates(c echo.Context) error {
	items, err := h.store.ListMandates(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, mandateResource, "list", err)
	}
	return ok(c, mandateResource, "list", http.StatusOK, items)
}

// GetMandate handles fetching a mandate by id
func (h *Handler) GetMandate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, mandateResource, "get", err)
	}
	item, err := h.store.GetMandate(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, mandateResource, "get", err)
	}
	return ok(c, mandateResource, "get", http.StatusOK, item)
}

// UpdateMandate handles partial mandate updates
func (h *Handler) UpdateMandate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, mandateResource, "update", err)
	}
	var in model.MandateUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, mandateResource, "update", err)
	}
	item, err := h.store.UpdateMandate(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, mandateResource, "update", err)
	}
	return ok(c, mandateResource, "update", http.StatusOK, item)
}

// DeleteMandate handles mandate deletion
func (h *Handler) DeleteMandate(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, mandateResource, "delete", err)
	}
	if err := h.store.DeleteMandate(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, mandateResource, "delete", err)
	}
	return deleted(c, mandateResource, "Mandate")
}
