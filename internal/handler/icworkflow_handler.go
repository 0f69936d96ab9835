package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const icWorkflowResource = "ic_workflow"

// CreateICWorkflow handles IC workflow creation
func (h *Handler) CreateICWorkflow(c echo.Context) error {
	var in model.ICWorkflowCreate
	if err := bind(c, &in); err != nil {
		return fail(c, icWorkflowResource, "create", err)
	}
	item, err := h.store.CreateICWorkflow(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, icWorkflowResource, "create", err)
	}
	return ok(c, icWorkflowResource, "create", http.StatusCreated, item)
}

// ListICWorkflows handles listing IC workflows
func (h *Handler) ListICWorkflows(c echo.Context) error {
	dealID, err := optionalUint(c, "deal_id")
	if err != nil {
		return fail(c, icWorkflowResource, "list", err)
	}
	items, err := h.store.ListICWorkflows(c.Request().Context(), middleware.CurrentUser(c), dealID)
	if err != nil {
		return fail(c, icWorkflowResource, "list", err)
	}
	return ok(c, icWorkflowResource, "list", http.StatusOK, items)
}

// GetICWorkflow handles fetching an IC workflow by id
func (h *Handler) GetICWorkflow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, icWorkflowResource, "get", err)
	}
	item, err := h.store.GetICWorkflow(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, icWorkflowResource, "get", err)
	}
	return ok(c, icWorkflowResource, "get", http.StatusOK, item)
}

// UpdateICWorkflow handles partial IC workflow updates
func (h *Handler) UpdateICWorkflow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, icWorkflowResource, "update", err)
	}
	var in model.ICWorkflowUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, icWorkflowResource, "update", err)
	}
	item, err := h.store.UpdateICWorkflow(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, icWorkflowResource, "update", err)
	}
	return ok(c, icWorkflowResource, "update", http.StatusOK, item)
}

// DeleteICWorkflow handles IC workflow deletion
func (h *Handler) DeleteICWorkflow(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, icWorkflowResource, "delete", err)
	}
	if err := h.store.DeleteICWorkflow(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, icWorkflowResource, "delete", err)
	}
	return deleted(c, icWorkflowResource, "IC Workflow")
}
