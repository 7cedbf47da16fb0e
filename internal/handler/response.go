package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"bookingdesk/internal/backend"
	"bookingdesk/internal/domain"
	"bookingdesk/internal/repository"
	"bookingdesk/internal/service"
	"bookingdesk/internal/wizard"
)

// ErrorResponse represents an error response. Session carries the wizard
// state after the failed operation when the error is session scoped.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Kind    domain.NoticeKind `json:"kind,omitempty"`
	Session *wizard.View      `json:"session,omitempty"`
}

// respondError sends an error response with the appropriate HTTP status code.
func respondError(c *gin.Context, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(code, ErrorResponse{Error: err.Error(), Kind: service.NoticeKind(err)})
}

// respondSessionError sends an error response together with the session view.
func respondSessionError(c *gin.Context, ctrl *wizard.Controller, err error) {
	code := mapErrorToHTTPStatus(err)
	if code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	view := ctrl.View()
	c.JSON(code, ErrorResponse{Error: err.Error(), Kind: service.NoticeKind(err), Session: &view})
}

// respondBadRequest sends a 400 for malformed input that never reached the wizard.
func respondBadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Kind: domain.NoticeValidation})
}

// respondJSON sends a JSON response with the given status code.
func respondJSON(c *gin.Context, code int, data any) {
	c.JSON(code, data)
}

// mapErrorToHTTPStatus maps service/repository errors to HTTP status codes.
func mapErrorToHTTPStatus(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrSessionNotFound):
		return http.StatusNotFound

	// Validation errors - Bad Request
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest

	// Calculation must be requested again
	case errors.Is(err, service.ErrCalculationExpired):
		return http.StatusGone

	// Server refused to price the itinerary
	case errors.Is(err, service.ErrPricingRejected):
		return http.StatusUnprocessableEntity

	// Conflict errors
	case errors.Is(err, service.ErrInvalidStep),
		errors.Is(err, service.ErrNoCalculation),
		errors.Is(err, service.ErrConfirmInFlight),
		errors.Is(err, service.ErrSuperseded),
		errors.Is(err, service.ErrCalculationConsumed),
		errors.Is(err, service.ErrConfirmationLocked):
		return http.StatusConflict

	// Service unavailable
	case errors.Is(err, service.ErrGeocodingUnavailable):
		return http.StatusServiceUnavailable

	// Upstream failures
	case errors.Is(err, service.ErrSearch),
		errors.Is(err, service.ErrPricing),
		errors.Is(err, service.ErrConfirmation),
		errors.Is(err, service.ErrGeocoding),
		errors.Is(err, service.ErrUpload):
		return http.StatusBadGateway
	}

	if _, ok := backend.AsStatusError(err); ok {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
