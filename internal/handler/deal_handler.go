package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/memo"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const dealResource = "deal"

// CreateDeal opens a deal owned by the caller in the caller's organization.
func (h *Handler) CreateDeal(c echo.Context) error {
	var in model.DealCreate
	if err := bind(c, &in); err != nil {
		return fail(c, dealResource, "create", err)
	}
	deal, err := h.store.CreateDeal(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, dealResource, "create", err)
	}
	return ok(c, dealResource, "create", http.StatusCreated, deal)
}

// ListDeals handles listing deals
func (h *Handler) ListDeals(c echo.Context) error {
	deals, err := h.store.ListDeals(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, dealResource, "list", err)
	}
	return ok(c, dealResource, "list", http.StatusOK, deals)
}

// GetDeal handles fetching a deal by id
func (h *Handler) GetDeal(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, dealResource, "get", err)
	}
	deal, err := h.store.GetDeal(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, dealResource, "get", err)
	}
	return ok(c, dealResource, "get", http.StatusOK, deal)
}

// UpdateDeal handles partial deal updates
func (h *Handler) UpdateDeal(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, dealResource, "update", err)
	}
	var in model.DealUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, dealResource, "update", err)
	}
	deal, err := h.store.UpdateDeal(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, dealResource, "update", err)
	}
	return ok(c, dealResource, "update", http.StatusOK, deal)
}

// DeleteDeal handles deal deletion
func (h *Handler) DeleteDeal(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, dealResource, "delete", err)
	}
	if err := h.store.DeleteDeal(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, dealResource, "delete", err)
	}
	return deleted(c, dealResource, "Deal")
}

// DealMemo assembles the investment committee memo for a deal.
func (h *Handler) DealMemo(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, dealResource, "memo", err)
	}
	deal, mandate, company, err := h.store.DealMemoInputs(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, dealResource, "memo", err)
	}
	return ok(c, dealResource, "memo", http.StatusOK, memo.Assemble(*deal, mandate, company))
}
