package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const taskResource = "task"

// CreateTask attaches a task to the deal in the path.
func (h *Handler) CreateTask(c echo.Context) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return fail(c, taskResource, "create", err)
	}
	var in model.TaskCreate
	if err := bind(c, &in); err != nil {
		return fail(c, taskResource, "create", err)
	}
	task, err := h.store.CreateTask(c.Request().Context(), middleware.CurrentUser(c), dealID, in)
	if err != nil {
		return fail(c, taskResource, "create", err)
	}
	return ok(c, taskResource, "create", http.StatusCreated, task)
}

// ListTasks returns the tasks of the deal in the path.
func (h *Handler) ListTasks(c echo.Context) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return fail(c, taskResource, "list", err)
	}
	tasks, err := h.store.ListTasks(c.Request().Context(), middleware.CurrentUser(c), dealID)
	if err != nil {
		return fail(c, taskResource, "list", err)
	}
	return ok(c, taskResource, "list", http.StatusOK, tasks)
}

// GetTask handles fetching a task by id
func (h *Handler) GetTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, taskResource, "get", err)
	}
	task, err := h.store.GetTask(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, taskResource, "get", err)
	}
	return ok(c, taskResource, "get", http.StatusOK, task)
}

// UpdateTask handles partial task updates
func (h *Handler) UpdateTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, taskResource, "update", err)
	}
	var in model.TaskUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, taskResource, "update", err)
	}
	task, err := h.store.UpdateTask(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, taskResource, "update", err)
	}
	return ok(c, taskResource, "update", http.StatusOK, task)
}

// DeleteTask handles task deletion
func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, taskResource, "delete", err)
	}
	if err := h.store.DeleteTask(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, taskResource, "delete", err)
	}
	return deleted(c, taskResource, "Task")
}
