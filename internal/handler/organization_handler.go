package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const organizationResource = "organization"

// CreateOrganization handles organization creation
func (h *Handler) CreateOrganization(c echo.Context) error {
	var in model.OrganizationCreate
	if err := bind(c, &in); err != nil {
		return fail(c, organizationResource, "create", err)
	}
	item, err := h.store.CreateOrganization(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, organizationResource, "create", err)
	}
	return ok(c, organizationResource, "create", http.StatusCreated, item)
}

// ListOrganizations handles listing organizations
func (h *Handler) ListOrganizations(c echo.Context) error {
	items, err := h.store.ListOrganizations(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, organizationResource, "list", err)
	}
	return ok(c, organizationResource, "list", http.StatusOK, items)
}

// GetOrganization handles fetching an organization by id
func (h *Handler) GetOrganization(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, organizationResource, "get", err)
	}
	item, err := h.store.GetOrganization(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, organizationResource, "get", err)
	}
	return ok(c, organizationResource, "get", http.StatusOK, item)
}

// UpdateOrganization handles partial organization updates
func (h *Handler) UpdateOrganization(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, organizationResource, "update", err)
	}
	var in model.OrganizationUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, organizationResource, "update", err)
	}
	item, err := h.store.UpdateOrganization(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, organizationResource, "update", err)
	}
	return ok(c, organizationResource, "update", http.StatusOK, item)
}

// DeleteOrganization handles organization deletion
func (h *Handler) DeleteOrganization(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, organizationResource, "delete", err)
	}
	if err := h.store.DeleteOrganization(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, organizationResource, "delete", err)
	}
	return deleted(c, organizationResource, "Organization")
}
