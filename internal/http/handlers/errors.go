package handlers

import (
	"net/http"

	"abarto-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

// RespondError sends the error envelope shared by every endpoint.
func RespondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

// RespondDomainError is the last-resort translation of tagged domain errors
// into HTTP statuses. Services return variants, never statuses; nothing here
// inspects driver-specific strings or codes.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsInvalidID(err):
		RespondError(c, http.StatusBadRequest, err.Error())
	case domain.IsNotFound(err):
		RespondError(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		RespondError(c, http.StatusConflict, err.Error())
	case domain.IsUnauthorized(err):
		RespondError(c, http.StatusUnauthorized, err.Error())
	case domain.IsForbidden(err):
		RespondError(c, http.StatusForbidden, err.Error())
	default:
		msg := "internal server error"
		if gin.Mode() != gin.ReleaseMode && err != nil {
			msg = err.Error()
		}
		RespondError(c, http.StatusInternalServerError, msg)
	}
}

// BindJSONOrError ensures body is present and parsable.
func BindJSONOrError[T any](c *gin.Context, dst *T) bool {
	if c.Request.Body == nil {
		RespondError(c, http.StatusBadRequest, "request body is empty")
		return false
	}
	if err := c.ShouldBindJSON(dst); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid request payload")
		return false
	}
	return true
}
