package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/suteetoe/kazi/internal/middleware"
	"github.com/suteetoe/kazi/internal/model"
)

const documentResource = "document"

// CreateDocument attaches a document to the deal in the path.
func (h *Handler) CreateDocument(c echo.Context) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return fail(c, documentResource, "create", err)
	}
	var in model.DocumentCreate
	if err := bind(c, &in); err != nil {
		return fail(c, documentResource, "create", err)
	}
	document, err := h.store.CreateDocument(c.Request().Context(), middleware.CurrentUser(c), dealID, in)
	if err != nil {
		return fail(c, documentResource, "create", err)
	}
	return ok(c, documentResource, "create", http.StatusCreated, document)
}

// ListDocuments returns the documents of the deal in the path.
func (h *Handler) ListDocuments(c echo.Context) error {
	dealID, err := idParam(c, "id")
	if err != nil {
		return fail(c, documentResource, "list", err)
	}
	documents, err := h.store.ListDocuments(c.Request().Context(), middleware.CurrentUser(c), dealID)
	if err != nil {
		return fail(c, documentResource, "list", err)
	}
	return ok(c, documentResource, "list", http.StatusOK, documents)
}

// GetDocument handles fetching a document by id
func (h *Handler) GetDocument(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, documentResource, "get", err)
	}
	document, err := h.store.GetDocument(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return fail(c, documentResource, "get", err)
	}
	return ok(c, documentResource, "get", http.StatusOK, document)
}

// UpdateDocument handles partial document updates
func (h *Handler) UpdateDocument(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, documentResource, "update", err)
	}
	var in model.DocumentUpdate
	if err := bind(c, &in); err != nil {
		return fail(c, documentResource, "update", err)
	}
	document, err := h.store.UpdateDocument(c.Request().Context(), middleware.CurrentUser(c), id, in)
	if err != nil {
		return fail(c, documentResource, "update", err)
	}
	return ok(c, documentResource, "update", http.StatusOK, document)
}

// DeleteDocument handles document deletion
func (h *Handler) DeleteDocument(c echo.Context) error {
	id, err := idParam(c, "id")
	if err != nil {
		return fail(c, documentResource, "delete", err)
	}
	if err := h.store.DeleteDocument(c.Request().Context(), middleware.CurrentUser(c), id); err != nil {
		return fail(c, documentResource, "delete", err)
	}
	return deleted(c, documentResource, "Document")
}
