package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const companyResource = "company"

// CreateCompany handles company creation
func (h *Handler) CreateCompany(c echo.Context) error {
	var in model.CompanyCreate
	if err := bind(c, &in); err != nil {
		return fail(c, companyResource, "create", err)
	}
	item, err := h.store.CreateCompany(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, companyResource, "create", err)
	}
	return ok(c, companyResource, "create", http.StatusCreated, item)
}

// ListCompanies handles listing companies
func (h *Handler) ListCompanies(c echo.Context) error {
	items, err := h.store.ListCompanies(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, companyResource, "list", err)
	}
	return ok(c, companyResource, "list", http.StatusOK, items)
}

// GetCompany handles fetching a company by id
func (h *Handler) GetCompany(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, companyResource, "get", err)
	}
	item, err := h.store.GetCompany(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, companyResource, "get", err)
	}
	return ok(c, companyResource, "get", http.StatusOK, item)
}

// UpdateCompany handles partial company updates
func (h *Handler) UpdateCompany(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, companyResource, "update", err)
	}
	var in model.CompanyUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, companyResource, "update", err)
	}
	item, err := h.store.UpdateCompany(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, companyResource, "update", err)
	}
	return ok(c, companyResource, "update", http.StatusOK, item)
}

// DeleteCompany handles company deletion
func (h *Handler) DeleteCompany(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, companyResource, "delete", err)
	}
	if err := h.store.DeleteCompany(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, companyResource, "delete", err)
	}
	return deleted(c, companyResource, "Company")
}
