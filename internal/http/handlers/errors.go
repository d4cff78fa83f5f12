// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// Codes are lowercase snake_case and stable; clients branch on them rather
// than on messages. Service errors are translated in one place, writeError,
// so every endpoint reports validation, missing rows and natural key
// conflicts the same way.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "requirement already exists for hotel, vegetable and date"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-veg-procurement/internal/services"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeIdempotencyReuse = "idempotency_key_reused"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific 5xx codes name the operation that failed.
	ErrCodeCreateFailed   = "create_failed"
	ErrCodeListFailed     = "list_failed"
	ErrCodeUpdateFailed   = "update_failed"
	ErrCodeDeleteFailed   = "delete_failed"
	ErrCodeDeliveryFailed = "delivery_failed"
	ErrCodeReportFailed   = "report_failed"
)

// writeError maps a service error onto the response envelope. Anything it
// does not recognise becomes 500 with internalCode.
func writeError(c *gin.Context, err error, internalCode string) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		fail(c, http.StatusBadRequest, ErrCodeValidation, ve.Error())
	case services.IsNotFound(err):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrConflict):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrIdempotencyMismatch):
		fail(c, http.StatusUnprocessableEntity, ErrCodeIdempotencyReuse, err.Error())
	default:
		fail(c, http.StatusInternalServerError, internalCode, err.Error())
	}
}
