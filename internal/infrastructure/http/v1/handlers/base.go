// Package handlers implements the HTTP endpoints of the v1 API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"packquote/internal/core/apperror"
)

// BaseHandler provides shared request/response helpers. Errors are
// pushed onto the gin error list and rendered by the error middleware.
type BaseHandler struct{}

// BindJSON binds the body and reports a validation error on failure.
func (BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		_ = c.Error(apperror.NewValidation("invalid request body").WithCause(err))
		return false
	}
	return true
}

// BindQuery binds the query string and reports a validation error on
// failure.
func (BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		_ = c.Error(apperror.NewValidation("invalid query parameters").WithCause(err))
		return false
	}
	return true
}

// Error records err for the error middleware.
func (BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
}

// OK writes a 200 response.
func (BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 response.
func (BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// NoContent writes a 204 response.
func (BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
