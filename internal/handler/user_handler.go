package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const userResource = "user"

// CreateUser handles user creation
func (h *Handler) CreateUser(c echo.Context) error {
	var in model.UserCreate
	if err := bind(c, &in); err != nil {
		return fail(c, userResource, "create", err)
	}
	user, err := h.store.CreateUser(c.Request().Context(), middleware.CurrentUser(c), in)
	if err != nil {
		return fail(c, userResource, "create", err)
	}
	return ok(c, userResource, "create", http.StatusCreated, user)
}

// ListUsers handles listing users
func (h *Handler) ListUsers(c echo.Context) error {
	users, err := h.store.ListUsers(c.Request().Context(), middleware.CurrentUser(c))
	if err != nil {
		return fail(c, userResource, "list", err)
	}
	return ok(c, userResource, "list", http.StatusOK, users)
}

// GetUser handles fetching a user by id
func (h *Handler) GetUser(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, userResource, "get", err)
	}
	user, err := h.store.GetUser(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, userResource, "get", err)
	}
	return ok(c, userResource, "get", http.StatusOK, user)
}

// UpdateUser handles partial user updates
func (h *Handler) UpdateUser(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, userResource, "update", err)
	}
	var in model.UserUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, userResource, "update", err)
	}
	user, err := h.store.UpdateUser(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, userResource, "update", err)
	}
	return ok(c, userResource, "update", http.StatusOK, user)
}

// DeleteUser handles user deletion
func (h *Handler) DeleteUser(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, userResource, "delete", err)
	}
	if err := h.store.DeleteUser(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, userResource, "delete", err)
	}
	return deleted(c, userResource, "User")
}
