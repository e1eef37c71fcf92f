package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	courierdomain "github.com/gwak2837/shabangnet-sub003/internal/courier/domain"
	exclusiondomain "github.com/gwak2837/shabangnet-sub003/internal/exclusion/domain"
	manufacturerdomain "github.com/gwak2837/shabangnet-sub003/internal/manufacturer/domain"
	reconciliationdomain "github.com/gwak2837/shabangnet-sub003/internal/reconciliation/domain"
	resolutiondomain "github.com/gwak2837/shabangnet-sub003/internal/resolution/domain"
)

// APIError is the wire shape for request failures.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code }

var ErrNotFound = &APIError{Status: http.StatusNotFound, Code: "not_found", Message: "not found"}

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates domain errors into HTTP responses.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case isNotFoundError(err):
		status = http.StatusNotFound
	case isValidationError(err):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": "internal_error", "message": "internal error"}})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": gin.H{"code": err.Error(), "message": err.Error()}})
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, manufacturerdomain.ErrNotFound),
		errors.Is(err, resolutiondomain.ErrManufacturerNotFound),
		errors.Is(err, reconciliationdomain.ErrManufacturerNotFound),
		errors.Is(err, exclusiondomain.ErrPatternNotFound),
		errors.Is(err, courierdomain.ErrNotFound):
		return true
	default:
		return false
	}
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, resolutiondomain.ErrInvalidProductCode),
		errors.Is(err, resolutiondomain.ErrInvalidOptionName),
		errors.Is(err, resolutiondomain.ErrInvalidManufacturer),
		errors.Is(err, reconciliationdomain.ErrInvalidManufacturer),
		errors.Is(err, exclusiondomain.ErrInvalidPattern),
		errors.Is(err, manufacturerdomain.ErrInvalidName),
		errors.Is(err, courierdomain.ErrInvalidCode),
		errors.Is(err, courierdomain.ErrInvalidName):
		return true
	default:
		return false
	}
}
