package controller

import (
	"fmt"
	"strconv"

	"github.com/grcledger/grcledger/pkg/observability/logger"
	"github.com/grcledger/grcledger/pkg/record"
	"github.com/grcledger/grcledger/pkg/server/router"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resource exposes one record service over HTTP. Every resource shares the
// same route set; only the path segment and the record type differ.
type Resource[T any] struct {
	svc *record.Service[T]
	log logger.Logger
}

// NewResource creates the HTTP controller for one resource service.
func NewResource[T any](svc *record.Service[T], log logger.Logger) *Resource[T] {
	return &Resource[T]{svc: svc, log: log}
}

// Register mounts the resource routes on the given router group. Static
// segments (bulk, by-no) are registered alongside the :id parameter routes.
func (h *Resource[T]) Register(api router.Router) {
	g := api.Group("/" + h.svc.Descriptor().Path)

	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.POST("/bulk", h.CreateMany)
	g.PUT("/bulk", h.UpdateMany)
	g.PUT("/bulk-by-no", h.BulkUpdateByNo)
	g.PUT("/by-no/:no", h.UpdateByNo)
	g.PUT("/:id", h.Update)
	g.DELETE("/bulk", h.DeleteMany)
	g.DELETE("/:id", h.Delete)
}

// List handles GET /api/{resource}?page=&search=&pageSize=&sortByNoAsc=.
// Out-of-range paging values are clamped, never rejected; non-numeric ones
// are a validation failure before any store call.
func (h *Resource[T]) List(c router.Context) error {
	page, err := intQuery(c, "page")
	if err != nil {
		return Error(c, err)
	}
	pageSize, err := intQuery(c, "pageSize")
	if err != nil {
		return Error(c, err)
	}
	sortByNoAsc := false
	if raw := c.Query("sortByNoAsc"); raw != "" {
		sortByNoAsc, err = strconv.ParseBool(raw)
		if err != nil {
			return Error(c, NewValidationError("sortByNoAsc must be a boolean", nil))
		}
	}

	result, err := h.svc.List(c.Request().Context(), record.ListParams{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		SortByNoAsc: sortByNoAsc,
	})
	if err != nil {
		return Error(c, err)
	}
	return OK(c, result)
}

// Get handles GET /api/{resource}/{id}.
func (h *Resource[T]) Get(c router.Context) error {
	id, err := recordID(c)
	if err != nil {
		return Error(c, err)
	}
	item, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return Error(c, err)
	}
	return OK(c, item)
}

// Create handles POST /api/{resource}. The response carries the created
// record with its store-assigned identity and a Location header.
func (h *Resource[T]) Create(c router.Context) error {
	var item T
	if err := c.Bind(&item); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	if err := h.svc.Create(c.Request().Context(), &item); err != nil {
		return Error(c, err)
	}
	desc := h.svc.Descriptor()
	location := fmt.Sprintf("/api/%s/%s", desc.Path, desc.ID(&item).Hex())
	return Created(c, location, item)
}

// Update handles PUT /api/{resource}/{id}: a full replace addressed by
// surrogate identity.
func (h *Resource[T]) Update(c router.Context) error {
	id, err := recordID(c)
	if err != nil {
		return Error(c, err)
	}
	var item T
	if err := c.Bind(&item); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	if err := h.svc.Update(c.Request().Context(), id, &item); err != nil {
		return Error(c, err)
	}
	return NoContent(c)
}

// Delete handles DELETE /api/{resource}/{id}.
func (h *Resource[T]) Delete(c router.Context) error {
	id, err := recordID(c)
	if err != nil {
		return Error(c, err)
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return Error(c, err)
	}
	return NoContent(c)
}

// CreateMany handles POST /api/{resource}/bulk.
func (h *Resource[T]) CreateMany(c router.Context) error {
	var items []T
	if err := c.Bind(&items); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	created, err := h.svc.CreateMany(c.Request().Context(), items)
	if err != nil {
		return Error(c, err)
	}
	return OK(c, created)
}

// UpdateMany handles PUT /api/{resource}/bulk: full replaces, each addressed
// by the identity embedded in the item.
func (h *Resource[T]) UpdateMany(c router.Context) error {
	var items []T
	if err := c.Bind(&items); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	updated, err := h.svc.UpdateMany(c.Request().Context(), items)
	if err != nil {
		return Error(c, err)
	}
	return OK(c, map[string]int64{"updatedCount": updated})
}

// DeleteMany handles DELETE /api/{resource}/bulk with an array-of-ids body.
// Blank and malformed ids are skipped, matching the lenient batch behavior
// of the single-id path.
func (h *Resource[T]) DeleteMany(c router.Context) error {
	var rawIDs []string
	if err := c.Bind(&rawIDs); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	ids := make([]primitive.ObjectID, 0, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	deleted, err := h.svc.DeleteMany(c.Request().Context(), ids)
	if err != nil {
		return Error(c, err)
	}
	return OK(c, map[string]int64{"deletedCount": deleted})
}

// UpdateByNo handles PUT /api/{resource}/by-no/{no}: a partial update of
// every field except the business key, addressed by the key in the path.
// Any key value in the body is ignored.
func (h *Resource[T]) UpdateByNo(c router.Context) error {
	no, err := strconv.ParseFloat(c.Param("no"), 64)
	if err != nil {
		return Error(c, NewValidationError("no must be numeric", map[string]interface{}{"no": c.Param("no")}))
	}
	var item T
	if err := c.Bind(&item); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	outcome, err := h.svc.UpdateByNo(c.Request().Context(), no, &item)
	if err != nil {
		return Error(c, err)
	}
	if outcome == record.OutcomeNotFound {
		return Error(c, NewNotFoundError(fmt.Sprintf("no record with No=%v", no)))
	}
	// OutcomeUnchanged is a successful no-op, not a missing key.
	return NoContent(c)
}

// BulkUpdateByNo handles PUT /api/{resource}/bulk-by-no; each item carries
// its own business key.
func (h *Resource[T]) BulkUpdateByNo(c router.Context) error {
	var items []T
	if err := c.Bind(&items); err != nil {
		return Error(c, NewValidationError("invalid request body", nil))
	}
	updated, err := h.svc.BulkUpdateByNo(c.Request().Context(), items)
	if err != nil {
		return Error(c, err)
	}
	return OK(c, map[string]int64{"updatedCount": updated})
}

// recordID parses the :id path segment. A malformed id can never address a
// record, so it reports not-found rather than a validation failure, matching
// the opaque-identity contract.
func recordID(c router.Context) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return primitive.NilObjectID, NewNotFoundError("resource not found")
	}
	return id, nil
}

// intQuery parses an optional integer query parameter. Absent means zero;
// non-numeric input is a validation failure.
func intQuery(c router.Context, name string) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, NewValidationError(name+" must be an integer", map[string]interface{}{name: raw})
	}
	return n, nil
}
