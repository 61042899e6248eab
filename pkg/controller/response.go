package controller

import (
	"net/http"

	"github.com/grcledger/grcledger/pkg/server/router"
)

// OK sends a 200 response with the given body, unwrapped. List and bulk
// endpoints return their payloads directly; the paging envelope is the body.
func OK(c router.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}

// Created sends a 201 response with the created record as body and the
// record's canonical route in the Location header.
func Created(c router.Context, location string, body interface{}) error {
	if location != "" {
		c.Response().Header().Set("Location", location)
	}
	return c.JSON(http.StatusCreated, body)
}

// NoContent sends a 204 response with no body.
func NoContent(c router.Context) error {
	c.Response().WriteHeader(http.StatusNoContent)
	return nil
}

// Error sends an error response with the status code MapError assigns.
func Error(c router.Context, err error) error {
	statusCode, errorResponse := MapError(c.Request().Context(), err)
	return c.JSON(statusCode, errorResponse)
}
