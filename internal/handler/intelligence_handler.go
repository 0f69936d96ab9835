package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const intelligenceResource = "intelligence"

// CreateIntelligence handles intelligence item creation
func (h *Handler) CreateIntelligence(c echo.Context) error {
	var in model.IntelligenceCreate
	if err := bind(c, &in); err != nil {
		return fail(c, intelligenceResource, "create", err)
	}
	item, err := h.store.CreateIntelligence(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, intelligenceResource, "create", err)
	}
	return ok(c, intelligenceResource, "create", http.StatusCreated, item)
}

// ListIntelligence handles listing intelligence items
func (h *Handler) ListIntelligence(c echo.Context) error {
	dealID, err := optionalUint(c, "deal_id")
	if err != nil {
		return fail(c, intelligenceResource, "list", err)
	}
	items, err := h.store.ListIntelligence(c.Request().Context(), middleware.CurrentUser(c), dealID)
	if err != nil {
		return fail(c, intelligenceResource, "list", err)
	}
	return ok(c, intelligenceResource, "list", http.StatusOK, items)
}

// GetIntelligence handles fetching an intelligence item by id
func (h *Handler) GetIntelligence(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, intelligenceResource, "get", err)
	}
	item, err := h.store.GetIntelligence(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, intelligenceResource, "get", err)
	}
	return ok(c, intelligenceResource, "get", http.StatusOK, item)
}

// UpdateIntelligence handles partial intelligence item updates
func (h *Handler) UpdateIntelligence(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, intelligenceResource, "update", err)
	}
	var in model.IntelligenceUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, intelligenceResource, "update", err)
	}
	item, err := h.store.UpdateIntelligence(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, intelligenceResource, "update", err)
	}
	return ok(c, intelligenceResource, "update", http.StatusOK, item)
}

// DeleteIntelligence handles intelligence item deletion
func (h *Handler) DeleteIntelligence(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, intelligenceResource, "delete", err)
	}
	if err := h.store.DeleteIntelligence(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, intelligenceResource, "delete", err)
	}
	return deleted(c, intelligenceResource, "Intelligence")
}
